// Package export implements Graph Export and the Re-ranker Plug (spec
// component K): a stable JSON serialization of the graph, and a
// weight-normalized scoring plug for external consumers such as a RAG
// retrieval layer.
package export

import (
	"sort"

	"github.com/codegraphhq/codegraph/internal/model"
)

// Document is the stable exported form of a graph.
type Document struct {
	Version    string            `json:"version"`
	ExportedAt int64             `json:"exportedAt"`
	Nodes      []NodeDoc         `json:"nodes"`
	Edges      []model.GraphEdge `json:"edges"`
}

// NodeDoc is the exported shape of a GraphNode.
type NodeDoc struct {
	ID       string         `json:"id"`
	Kind     model.NodeKind `json:"kind"`
	File     string         `json:"file"`
	Line     int            `json:"line,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

const docVersion = "1"

// Export produces a stable Document: nodes ordered by id, edges ordered by
// (source, kind, target). exportedAtMillis is supplied by the caller since
// this package never reads the wall clock.
func Export(result model.AnalysisResult, exportedAtMillis int64) Document {
	ids := make([]string, 0, len(result.Graph.Nodes))
	for id := range result.Graph.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]NodeDoc, 0, len(ids))
	for _, id := range ids {
		n := result.Graph.Nodes[id]
		nodes = append(nodes, NodeDoc{ID: n.ID, Kind: n.Kind, File: n.File, Line: n.Line, Metadata: n.Metadata})
	}

	edges := append([]model.GraphEdge(nil), result.Graph.Edges...)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		if edges[i].Kind != edges[j].Kind {
			return edges[i].Kind < edges[j].Kind
		}
		return edges[i].Target < edges[j].Target
	})

	return Document{Version: docVersion, ExportedAt: exportedAtMillis, Nodes: nodes, Edges: edges}
}
