// Package graph implements the Graph Builder (spec component F): it
// assembles a typed DependencyGraph and its derived AnalysisResult
// statistics from the elements and edge streams the scanner emits.
package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"sort"
	"strings"

	"github.com/codegraphhq/codegraph/internal/model"
	"github.com/codegraphhq/codegraph/internal/scanner"
)

// Scanned is the flattened input the builder consumes: every element and
// edge observed across the whole scan, each already carrying its own File
// field (elements always have; scanner.Scan stamps it onto every edge
// before returning, so the builder never needs per-file call grouping
// threaded in separately).
type Scanned struct {
	Files    []string
	Elements []model.Element
	Calls    []scanner.CallEdge
	Imports  []scanner.ImportEdge
}

// Build assembles a DependencyGraph and AnalysisResult from a flattened
// scan. Call resolution prefers an element in the caller's own file, then
// same-directory files, then a global name search; unresolved callees are
// dropped rather than recorded as dangling edges, per the spec's
// implementation choice.
func Build(scanned Scanned) model.AnalysisResult {
	g := model.NewDependencyGraph()

	// elementsByName: name -> list of element IDs, for global call
	// resolution. elementsByDir: directory -> name -> element IDs, for
	// same-directory resolution.
	elementsByName := map[string][]string{}
	elementsByDir := map[string]map[string][]string{}
	elementsByFile := map[string]map[string][]string{}

	for _, file := range scanned.Files {
		g.AddNode(&model.GraphNode{ID: file, Kind: model.NodeFile, File: file})
	}

	for _, el := range scanned.Elements {
		id := el.ID()
		dir := path.Dir(el.File)
		if elementsByDir[dir] == nil {
			elementsByDir[dir] = map[string][]string{}
		}
		if elementsByFile[el.File] == nil {
			elementsByFile[el.File] = map[string][]string{}
		}

		meta := map[string]any{"kind": string(el.Kind), "exported": el.Exported}
		if len(el.Parameters) > 0 {
			meta["parameters"] = el.Parameters
		}
		g.AddNode(&model.GraphNode{ID: id, Kind: model.NodeElement, File: el.File, Name: el.Name, Line: el.Line, Metadata: meta})
		if _, ok := g.Nodes[el.File]; ok {
			g.AddEdge(model.GraphEdge{Source: el.File, Target: id, Kind: model.EdgeContains})
		}

		elementsByName[el.Name] = append(elementsByName[el.Name], id)
		elementsByDir[dir][el.Name] = append(elementsByDir[dir][el.Name], id)
		elementsByFile[el.File][el.Name] = append(elementsByFile[el.File][el.Name], id)

		if el.Exported {
			g.AddEdge(model.GraphEdge{Source: id, Target: el.File, Kind: model.EdgeExports})
		}
	}

	for _, call := range scanned.Calls {
		if call.CallerFunction == "" {
			continue
		}
		callerName := call.CallerFunction
		if call.CallerClass != "" && !strings.Contains(callerName, ".") {
			callerName = call.CallerClass + "." + callerName
		}
		callerID := call.File + ":" + callerName
		if _, ok := g.Nodes[callerID]; !ok {
			continue
		}
		dir := path.Dir(call.File)
		targetID, ok := resolveCallee(call.CalleeFunction, call.File, dir, elementsByFile, elementsByDir, elementsByName)
		if !ok || targetID == callerID {
			continue
		}
		g.AddEdge(model.GraphEdge{Source: callerID, Target: targetID, Kind: model.EdgeCalls})
	}

	for _, imp := range scanned.Imports {
		target := resolveImportTarget(imp.Source, imp.File, g.Nodes)
		if target == "" {
			continue
		}
		g.AddEdge(model.GraphEdge{Source: imp.File, Target: target, Kind: model.EdgeImports})
	}

	addDependsOnEdges(g)

	stats := computeStats(g)
	return model.AnalysisResult{
		Graph:         g,
		Stats:         stats,
		GraphChecksum: checksum(g),
	}
}

func resolveCallee(name, callerFile, dir string, byFile, byDir map[string]map[string][]string, byName map[string][]string) (string, bool) {
	if ids, ok := byFile[callerFile][name]; ok && len(ids) > 0 {
		return ids[0], true
	}
	if ids, ok := byDir[dir][name]; ok && len(ids) > 0 {
		return ids[0], true
	}
	if ids, ok := byName[name]; ok && len(ids) > 0 {
		return ids[0], true
	}
	return "", false
}

// resolveImportTarget maps a (possibly relative) import specifier to a
// scanned file node id, trying the joined path as written and then with each
// of the .ts/.tsx/.js/.jsx extensions appended. Package/bare specifiers (no
// leading ".") and specifiers matching no scanned file resolve to "".
func resolveImportTarget(spec, fromFile string, nodes map[string]*model.GraphNode) string {
	if spec == "" || spec[0] != '.' {
		return ""
	}
	joined := path.Join(path.Dir(fromFile), spec)
	for _, suffix := range []string{"", ".ts", ".tsx", ".js", ".jsx"} {
		if _, ok := nodes[joined+suffix]; ok {
			return joined + suffix
		}
	}
	return ""
}

// addDependsOnEdges derives file-to-file depends-on summary edges from the
// calls/imports edges already present, so SCC detection over
// depends-on∪calls∪imports has a consistent file-level subgraph to work
// with alongside the element-level one.
func addDependsOnEdges(g *model.DependencyGraph) {
	seen := map[[2]string]bool{}
	for _, e := range g.Edges {
		if e.Kind != model.EdgeCalls {
			continue
		}
		srcFile, _ := model.SplitNodeID(e.Source)
		dstFile, _ := model.SplitNodeID(e.Target)
		if srcFile == "" || dstFile == "" || srcFile == dstFile {
			continue
		}
		key := [2]string{srcFile, dstFile}
		if seen[key] {
			continue
		}
		seen[key] = true
		g.AddEdge(model.GraphEdge{Source: srcFile, Target: dstFile, Kind: model.EdgeDependsOn})
	}
}

func computeStats(g *model.DependencyGraph) model.AnalysisStats {
	edgesByType := map[model.EdgeKind]int{}
	for _, e := range g.Edges {
		edgesByType[e.Kind]++
	}

	n := len(g.Nodes)
	density := 0.0
	if n > 1 {
		density = float64(len(g.Edges)) / float64(n*(n-1))
	}

	circular := detectSCCs(g)
	isolated := isolatedNodes(g)

	return model.AnalysisStats{
		NodeCount:            n,
		EdgeCount:            len(g.Edges),
		EdgesByType:          edgesByType,
		DensityRatio:         density,
		CircularDependencies: circular,
		IsolatedNodes:        isolated,
	}
}

func isolatedNodes(g *model.DependencyGraph) []string {
	var out []string
	for id := range g.Nodes {
		if len(g.EdgesBySource[id]) == 0 && len(g.EdgesByTarget[id]) == 0 {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func checksum(g *model.DependencyGraph) string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	edges := append([]model.GraphEdge(nil), g.Edges...)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		if edges[i].Kind != edges[j].Kind {
			return edges[i].Kind < edges[j].Kind
		}
		return edges[i].Target < edges[j].Target
	})

	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	for _, e := range edges {
		h.Write([]byte(e.Source))
		h.Write([]byte(e.Kind))
		h.Write([]byte(e.Target))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
