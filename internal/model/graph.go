package model

import "strings"

// EdgeKind enumerates the relationship types carried by a GraphEdge.
type EdgeKind string

const (
	EdgeCalls     EdgeKind = "calls"
	EdgeImports   EdgeKind = "imports"
	EdgeExports   EdgeKind = "exports"
	EdgeContains  EdgeKind = "contains"
	EdgeDependsOn EdgeKind = "depends-on"
)

// NodeKind distinguishes file nodes from element nodes in the graph.
type NodeKind string

const (
	NodeFile    NodeKind = "file"
	NodeElement NodeKind = "element"
)

// GraphNode is either a file node (one per scanned file) or an element node
// (one per Element). Id is "file:name" for element nodes, or the bare
// normalized path for file nodes.
type GraphNode struct {
	ID       string
	Kind     NodeKind
	File     string
	Name     string
	Line     int
	Metadata map[string]any
}

// SplitNodeID splits a node id on its LAST ':' so drive-letter-style paths
// (e.g. "C:/src/a.ts:doThing") survive the split.
func SplitNodeID(id string) (file, name string) {
	idx := strings.LastIndex(id, ":")
	if idx < 0 {
		return id, ""
	}
	return id[:idx], id[idx+1:]
}

// GraphEdge is a directed, typed edge between two node ids.
type GraphEdge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   EdgeKind `json:"kind"`
}

// DependencyGraph is the typed, indexed directed graph assembled by the
// Graph Builder. EdgesBySource/EdgesByTarget are maintained in lockstep with
// Edges by DependencyGraph's mutator methods; callers should not append to
// Edges directly.
type DependencyGraph struct {
	Nodes         map[string]*GraphNode
	Edges         []GraphEdge
	EdgesBySource map[string][]GraphEdge
	EdgesByTarget map[string][]GraphEdge
}

// NewDependencyGraph returns an empty, fully initialized graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		Nodes:         make(map[string]*GraphNode),
		EdgesBySource: make(map[string][]GraphEdge),
		EdgesByTarget: make(map[string][]GraphEdge),
	}
}

// AddNode inserts or overwrites a node.
func (g *DependencyGraph) AddNode(n *GraphNode) {
	g.Nodes[n.ID] = n
}

// AddEdge appends an edge and updates both indices atomically.
func (g *DependencyGraph) AddEdge(e GraphEdge) {
	g.Edges = append(g.Edges, e)
	g.EdgesBySource[e.Source] = append(g.EdgesBySource[e.Source], e)
	g.EdgesByTarget[e.Target] = append(g.EdgesByTarget[e.Target], e)
}

// Degree returns the in-degree and out-degree of a node across all edge kinds.
func (g *DependencyGraph) Degree(id string) (in, out int) {
	return len(g.EdgesByTarget[id]), len(g.EdgesBySource[id])
}

// AnalysisStats carries the derived statistics attached to an AnalysisResult.
type AnalysisStats struct {
	NodeCount            int
	EdgeCount            int
	EdgesByType          map[EdgeKind]int
	DensityRatio         float64
	CircularDependencies [][]string
	IsolatedNodes        []string
}

// AnalysisResult is the graph plus its derived statistics, owned by the
// scan invocation that produced it.
type AnalysisResult struct {
	Graph         *DependencyGraph
	Stats         AnalysisStats
	AnalysisTime  float64 // milliseconds
	GraphChecksum string
}
