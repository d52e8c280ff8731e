package graph

import (
	"sort"

	"github.com/codegraphhq/codegraph/internal/model"
)

// detectSCCs runs Tarjan's algorithm over the calls/imports/depends-on
// subgraph and returns strongly connected components of size ≥ 2 — circular
// dependencies. Directly grounded on internal/interproc/scc.go's
// strongConnect closure; generalized from a CSCallGraph keyed by
// ir.ContextNode to the codegraph DependencyGraph keyed by plain node ids.
func detectSCCs(g *model.DependencyGraph) [][]string {
	adj := map[string][]string{}
	for _, e := range g.Edges {
		switch e.Kind {
		case model.EdgeCalls, model.EdgeImports, model.EdgeDependsOn:
			adj[e.Source] = append(adj[e.Source], e.Target)
		}
	}

	type state struct {
		index, lowlink int
		onStack        bool
	}
	index := 0
	var stack []string
	states := map[string]*state{}
	var sccs [][]string

	var strongConnect func(v string)
	strongConnect = func(v string) {
		states[v] = &state{index: index, lowlink: index, onStack: true}
		index++
		stack = append(stack, v)

		for _, w := range adj[v] {
			ws, seen := states[w]
			if !seen {
				strongConnect(w)
				if states[w].lowlink < states[v].lowlink {
					states[v].lowlink = states[w].lowlink
				}
			} else if ws.onStack {
				if ws.index < states[v].lowlink {
					states[v].lowlink = ws.index
				}
			}
		}

		if states[v].lowlink == states[v].index {
			var comp []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				states[w].onStack = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			if len(comp) > 1 || hasSelfLoop(adj, comp[0]) {
				sort.Strings(comp)
				sccs = append(sccs, comp)
			}
		}
	}

	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, seen := states[id]; !seen {
			strongConnect(id)
		}
	}

	sort.Slice(sccs, func(i, j int) bool { return sccs[i][0] < sccs[j][0] })
	return sccs
}

func hasSelfLoop(adj map[string][]string, node string) bool {
	for _, w := range adj[node] {
		if w == node {
			return true
		}
	}
	return false
}
