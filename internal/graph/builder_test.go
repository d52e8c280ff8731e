package graph

import (
	"testing"

	"github.com/codegraphhq/codegraph/internal/model"
	"github.com/codegraphhq/codegraph/internal/scanner"
)

func TestBuildResolvesCallsWithinSameFile(t *testing.T) {
	scanned := Scanned{
		Files: []string{"a.ts", "b.ts"},
		Elements: []model.Element{
			{Kind: model.KindFunction, Name: "outer", File: "a.ts", Exported: true},
			{Kind: model.KindFunction, Name: "inner", File: "a.ts"},
			{Kind: model.KindFunction, Name: "unrelated", File: "b.ts"},
		},
		Calls: []scanner.CallEdge{
			{CallerFunction: "outer", CalleeFunction: "inner", File: "a.ts"},
		},
	}
	result := Build(scanned)

	calls := result.Graph.EdgesBySource["a.ts:outer"]
	var found bool
	for _, e := range calls {
		if e.Kind == model.EdgeCalls && e.Target == "a.ts:inner" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a calls edge from a.ts:outer to a.ts:inner, got %+v", calls)
	}
}

func TestBuildDropsUnresolvableCallees(t *testing.T) {
	scanned := Scanned{
		Files: []string{"a.ts"},
		Elements: []model.Element{
			{Kind: model.KindFunction, Name: "outer", File: "a.ts"},
		},
		Calls: []scanner.CallEdge{
			{CallerFunction: "outer", CalleeFunction: "doesNotExist", File: "a.ts"},
		},
	}
	result := Build(scanned)
	for _, e := range result.Graph.Edges {
		if e.Kind == model.EdgeCalls {
			t.Fatalf("expected no calls edge for an unresolvable callee, got %+v", e)
		}
	}
}

func TestBuildResolvesRelativeImports(t *testing.T) {
	scanned := Scanned{
		Files: []string{"src/a.ts", "src/b.ts"},
		Imports: []scanner.ImportEdge{
			{Source: "./b", File: "src/a.ts"},
		},
	}
	result := Build(scanned)
	edges := result.Graph.EdgesBySource["src/a.ts"]
	var found bool
	for _, e := range edges {
		if e.Kind == model.EdgeImports && e.Target == "src/b.ts" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an imports edge from src/a.ts to src/b.ts, got %+v", edges)
	}
}

func TestBuildDropsBarePackageImports(t *testing.T) {
	scanned := Scanned{
		Files: []string{"src/a.ts"},
		Imports: []scanner.ImportEdge{
			{Source: "react", File: "src/a.ts"},
		},
	}
	result := Build(scanned)
	for _, e := range result.Graph.Edges {
		if e.Kind == model.EdgeImports {
			t.Fatalf("expected no imports edge for a bare package specifier, got %+v", e)
		}
	}
}

func TestBuildDetectsIsolatedNodes(t *testing.T) {
	scanned := Scanned{
		Files: []string{"a.ts", "b.ts"},
		Elements: []model.Element{
			{Kind: model.KindFunction, Name: "lonely", File: "b.ts"},
		},
	}
	result := Build(scanned)
	var foundA bool
	for _, id := range result.Stats.IsolatedNodes {
		if id == "a.ts" {
			foundA = true
		}
	}
	if !foundA {
		t.Fatalf("expected a.ts (no edges) to be reported isolated, got %+v", result.Stats.IsolatedNodes)
	}
}

func TestBuildDetectsCircularDependency(t *testing.T) {
	scanned := Scanned{
		Files: []string{"a.ts", "b.ts"},
		Elements: []model.Element{
			{Kind: model.KindFunction, Name: "fa", File: "a.ts"},
			{Kind: model.KindFunction, Name: "fb", File: "b.ts"},
		},
		Calls: []scanner.CallEdge{
			{CallerFunction: "fa", CalleeFunction: "fb", File: "a.ts"},
			{CallerFunction: "fb", CalleeFunction: "fa", File: "b.ts"},
		},
	}
	result := Build(scanned)
	if len(result.Stats.CircularDependencies) == 0 {
		t.Fatal("expected a circular dependency between a.ts and b.ts to be detected")
	}
}

func TestBuildChecksumIsDeterministic(t *testing.T) {
	scanned := Scanned{
		Files: []string{"a.ts"},
		Elements: []model.Element{
			{Kind: model.KindFunction, Name: "fn", File: "a.ts"},
		},
	}
	first := Build(scanned).GraphChecksum
	second := Build(scanned).GraphChecksum
	if first == "" {
		t.Fatal("expected a non-empty checksum")
	}
	if first != second {
		t.Fatalf("expected checksum to be deterministic across identical builds, got %q != %q", first, second)
	}
}

func TestBuildChecksumChangesWithGraphContent(t *testing.T) {
	base := Build(Scanned{Files: []string{"a.ts"}}).GraphChecksum
	withElement := Build(Scanned{
		Files:    []string{"a.ts"},
		Elements: []model.Element{{Kind: model.KindFunction, Name: "fn", File: "a.ts"}},
	}).GraphChecksum
	if base == withElement {
		t.Fatal("expected checksum to change when graph content changes")
	}
}
