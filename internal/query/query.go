// Package query implements the Query Engine (spec component G): bounded BFS
// traversals over an AnalysisResult's graph, with per-result caching keyed
// to the graph that produced it.
package query

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/codegraphhq/codegraph/internal/model"
)

// Engine answers graph queries against one immutable AnalysisResult. Its
// cache is scoped to that result: building a new AnalysisResult means
// constructing a new Engine, per the spec's cache-lifetime note.
type Engine struct {
	result model.AnalysisResult

	mu    sync.Mutex
	cache map[string]model.QueryResult
}

// New binds an Engine to result. result.Graph is treated as immutable.
func New(result model.AnalysisResult) *Engine {
	return &Engine{result: result, cache: make(map[string]model.QueryResult)}
}

func cacheKey(t model.QueryType, target string, maxDepth int) string {
	return fmt.Sprintf("%s|%s|%d", t, target, maxDepth)
}

// Query dispatches by query type. UnknownElement is returned (wrapped) when
// target is not present in the graph, except for centrality over a missing
// node, which simply yields a zero score, and shortest-path, which yields no
// hits when either endpoint is missing.
func (e *Engine) Query(qtype model.QueryType, target string, maxDepth int) (model.QueryResult, error) {
	key := cacheKey(qtype, target, maxDepth)
	e.mu.Lock()
	if cached, ok := e.cache[key]; ok {
		e.mu.Unlock()
		cached.Cached = true
		return cached, nil
	}
	e.mu.Unlock()

	start := time.Now()
	var hits []model.QueryHit
	var err error

	switch qtype {
	case model.QueryWhatCallsMe:
		hits, err = e.bfs(target, maxDepth, []model.EdgeKind{model.EdgeCalls}, true)
	case model.QueryWhatDependsOn:
		hits, err = e.bfs(target, maxDepth, []model.EdgeKind{model.EdgeDependsOn, model.EdgeCalls, model.EdgeImports}, false)
	case model.QueryCentrality:
		return e.centrality(target, start)
	case model.QueryShortestPath:
		hits, err = e.shortestPathHits(target, maxDepth)
	case model.QueryNeighborhood:
		hits, err = e.neighborhood(target, maxDepth)
	default:
		return model.QueryResult{}, fmt.Errorf("unknown query type %q", qtype)
	}
	if err != nil {
		return model.QueryResult{}, err
	}

	res := model.QueryResult{
		Type:          qtype,
		Target:        target,
		Results:       hits,
		Count:         len(hits),
		ExecutionTime: float64(time.Since(start).Microseconds()) / 1000.0,
		Cached:        false,
	}
	e.mu.Lock()
	e.cache[key] = res
	e.mu.Unlock()
	return res, nil
}

// bfs performs a bounded breadth-first search from target along edges of the
// given kinds. useTarget=true reads EdgesByTarget and walks predecessors
// (what-calls-me); useTarget=false reads EdgesBySource and walks successors
// (what-depends-on).
func (e *Engine) bfs(target string, maxDepth int, kinds []model.EdgeKind, useTarget bool) ([]model.QueryHit, error) {
	if _, ok := e.result.Graph.Nodes[target]; !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownElement, target)
	}
	if maxDepth <= 0 {
		maxDepth = 5
	}
	kindSet := map[model.EdgeKind]bool{}
	for _, k := range kinds {
		kindSet[k] = true
	}

	visited := map[string]int{target: 0}
	queue := []string{target}
	depth := 0

	for len(queue) > 0 && depth < maxDepth {
		depth++
		var next []string
		for _, id := range queue {
			var edges []model.GraphEdge
			if useTarget {
				edges = e.result.Graph.EdgesByTarget[id]
			} else {
				edges = e.result.Graph.EdgesBySource[id]
			}
			for _, edge := range edges {
				if !kindSet[edge.Kind] {
					continue
				}
				neighbor := edge.Source
				if !useTarget {
					neighbor = edge.Target
				}
				if _, seen := visited[neighbor]; seen {
					continue
				}
				visited[neighbor] = depth
				next = append(next, neighbor)
			}
		}
		queue = next
	}

	var hits []model.QueryHit
	for id, d := range visited {
		if id == target {
			continue
		}
		hits = append(hits, model.QueryHit{ID: id, Depth: d})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Depth != hits[j].Depth {
			return hits[i].Depth < hits[j].Depth
		}
		return hits[i].ID < hits[j].ID
	})
	return hits, nil
}

func (e *Engine) centrality(target string, start time.Time) (model.QueryResult, error) {
	n := len(e.result.Graph.Nodes)
	score := 0.0
	if n > 0 {
		score = float64(len(e.result.Graph.EdgesByTarget[target])) / float64(n)
	}
	return model.QueryResult{
		Type:          model.QueryCentrality,
		Target:        target,
		Results:       []model.QueryHit{{ID: target, Depth: 0}},
		Count:         1,
		ExecutionTime: float64(time.Since(start).Microseconds()) / 1000.0,
		Score:         score,
	}, nil
}

// shortestPathHits serves the generic Query dispatch for QueryShortestPath.
// target is encoded as "<from>::<to>", since the generic Query signature
// carries a single target string; ShortestPath is also exposed directly for
// callers that have the two endpoints already in hand.
func (e *Engine) shortestPathHits(target string, maxDepth int) ([]model.QueryHit, error) {
	from, to, ok := splitPathTarget(target)
	if !ok {
		return nil, fmt.Errorf("%w: shortest-path target must be \"from::to\"", model.ErrInvalidFormat)
	}
	path, found := e.ShortestPath(from, to, maxDepth)
	if !found {
		return nil, nil
	}
	hits := make([]model.QueryHit, 0, len(path)-1)
	for i, id := range path {
		if i == 0 {
			continue
		}
		hits = append(hits, model.QueryHit{ID: id, Depth: i})
	}
	return hits, nil
}

func splitPathTarget(target string) (from, to string, ok bool) {
	const sep = "::"
	idx := indexOf(target, sep)
	if idx < 0 {
		return "", "", false
	}
	return target[:idx], target[idx+len(sep):], true
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// neighborhood returns every node within radius hops of target in either
// direction.
func (e *Engine) neighborhood(target string, radius int) ([]model.QueryHit, error) {
	if _, ok := e.result.Graph.Nodes[target]; !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownElement, target)
	}
	if radius <= 0 {
		radius = 2
	}
	visited := map[string]int{target: 0}
	queue := []string{target}
	depth := 0
	for len(queue) > 0 && depth < radius {
		depth++
		var next []string
		for _, id := range queue {
			for _, edge := range e.result.Graph.EdgesBySource[id] {
				if _, seen := visited[edge.Target]; !seen {
					visited[edge.Target] = depth
					next = append(next, edge.Target)
				}
			}
			for _, edge := range e.result.Graph.EdgesByTarget[id] {
				if _, seen := visited[edge.Source]; !seen {
					visited[edge.Source] = depth
					next = append(next, edge.Source)
				}
			}
		}
		queue = next
	}
	var hits []model.QueryHit
	for id, d := range visited {
		if id == target {
			continue
		}
		hits = append(hits, model.QueryHit{ID: id, Depth: d})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Depth != hits[j].Depth {
			return hits[i].Depth < hits[j].Depth
		}
		return hits[i].ID < hits[j].ID
	})
	return hits, nil
}

// ShortestPath finds the shortest path between from and to, if one exists
// within maxDepth hops, returned as an ordered id slice including both
// endpoints.
func (e *Engine) ShortestPath(from, to string, maxDepth int) ([]string, bool) {
	if _, ok := e.result.Graph.Nodes[from]; !ok {
		return nil, false
	}
	if _, ok := e.result.Graph.Nodes[to]; !ok {
		return nil, false
	}
	if maxDepth <= 0 {
		maxDepth = 10
	}
	prev := map[string]string{from: ""}
	queue := []string{from}
	depth := 0
	for len(queue) > 0 && depth < maxDepth {
		depth++
		var next []string
		for _, id := range queue {
			for _, edge := range e.result.Graph.EdgesBySource[id] {
				if _, seen := prev[edge.Target]; !seen {
					prev[edge.Target] = id
					if edge.Target == to {
						return reconstruct(prev, from, to), true
					}
					next = append(next, edge.Target)
				}
			}
		}
		queue = next
	}
	return nil, false
}

func reconstruct(prev map[string]string, from, to string) []string {
	var path []string
	cur := to
	for cur != "" {
		path = append([]string{cur}, path...)
		if cur == from {
			break
		}
		cur = prev[cur]
	}
	return path
}
