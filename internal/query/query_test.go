package query

import (
	"testing"

	"github.com/codegraphhq/codegraph/internal/graph"
	"github.com/codegraphhq/codegraph/internal/model"
	"github.com/codegraphhq/codegraph/internal/scanner"
)

// chain builds a.ts:f0 -> a.ts:f1 -> a.ts:f2 -> a.ts:f3, all calls edges.
func chainResult() model.AnalysisResult {
	scanned := graph.Scanned{
		Files: []string{"a.ts"},
		Elements: []model.Element{
			{Kind: model.KindFunction, Name: "f0", File: "a.ts"},
			{Kind: model.KindFunction, Name: "f1", File: "a.ts"},
			{Kind: model.KindFunction, Name: "f2", File: "a.ts"},
			{Kind: model.KindFunction, Name: "f3", File: "a.ts"},
		},
		Calls: []scanner.CallEdge{
			{CallerFunction: "f0", CalleeFunction: "f1", File: "a.ts"},
			{CallerFunction: "f1", CalleeFunction: "f2", File: "a.ts"},
			{CallerFunction: "f2", CalleeFunction: "f3", File: "a.ts"},
		},
	}
	return graph.Build(scanned)
}

func TestQueryWhatCallsMeWalksBackward(t *testing.T) {
	e := New(chainResult())
	res, err := e.Query(model.QueryWhatCallsMe, "a.ts:f2", 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Count != 2 {
		t.Fatalf("expected 2 callers (direct+transitive), got %d: %+v", res.Count, res.Results)
	}
}

func TestQueryWhatCallsMeRespectsMaxDepth(t *testing.T) {
	e := New(chainResult())
	res, err := e.Query(model.QueryWhatCallsMe, "a.ts:f2", 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Count != 1 || res.Results[0].ID != "a.ts:f1" {
		t.Fatalf("expected only the direct caller at depth 1, got %+v", res.Results)
	}
}

func TestQueryUnknownElementErrors(t *testing.T) {
	e := New(chainResult())
	if _, err := e.Query(model.QueryWhatCallsMe, "a.ts:nope", 5); err == nil {
		t.Fatal("expected an error querying an unknown element")
	}
}

func TestQueryResultIsCachedOnSecondCall(t *testing.T) {
	e := New(chainResult())
	first, err := e.Query(model.QueryWhatCallsMe, "a.ts:f2", 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if first.Cached {
		t.Fatal("expected the first query not to be served from cache")
	}
	second, err := e.Query(model.QueryWhatCallsMe, "a.ts:f2", 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !second.Cached {
		t.Fatal("expected the second identical query to be served from cache")
	}
}

func TestQueryCentralityBounds(t *testing.T) {
	e := New(chainResult())
	res, err := e.Query(model.QueryCentrality, "a.ts:f2", 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Score < 0 || res.Score > 1 {
		t.Fatalf("expected centrality score in [0,1], got %v", res.Score)
	}
}

func TestQueryCentralityOnMissingNodeIsZeroNotError(t *testing.T) {
	e := New(chainResult())
	res, err := e.Query(model.QueryCentrality, "a.ts:ghost", 0)
	if err != nil {
		t.Fatalf("expected no error for centrality on a missing node, got %v", err)
	}
	if res.Score != 0 {
		t.Fatalf("expected zero score, got %v", res.Score)
	}
}

func TestQueryShortestPathEncodedTarget(t *testing.T) {
	e := New(chainResult())
	res, err := e.Query(model.QueryShortestPath, "a.ts:f0::a.ts:f3", 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Count != 3 {
		t.Fatalf("expected a 3-hop path (f1,f2,f3), got %d: %+v", res.Count, res.Results)
	}
}

func TestShortestPathDirect(t *testing.T) {
	e := New(chainResult())
	path, found := e.ShortestPath("a.ts:f0", "a.ts:f3", 10)
	if !found {
		t.Fatal("expected a path to be found")
	}
	want := []string{"a.ts:f0", "a.ts:f1", "a.ts:f2", "a.ts:f3"}
	if len(path) != len(want) {
		t.Fatalf("expected path %v, got %v", want, path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("expected path %v, got %v", want, path)
		}
	}
}

func TestShortestPathUnknownEndpointNotFound(t *testing.T) {
	e := New(chainResult())
	if _, found := e.ShortestPath("a.ts:f0", "a.ts:ghost", 10); found {
		t.Fatal("expected no path to an unknown endpoint")
	}
}

func TestNeighborhoodIncludesBothDirections(t *testing.T) {
	e := New(chainResult())
	res, err := e.Query(model.QueryNeighborhood, "a.ts:f1", 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	ids := map[string]bool{}
	for _, h := range res.Results {
		ids[h.ID] = true
	}
	if !ids["a.ts:f0"] || !ids["a.ts:f2"] {
		t.Fatalf("expected neighborhood to include both predecessor and successor, got %+v", res.Results)
	}
}
