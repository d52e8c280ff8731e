package drift

import (
	"testing"

	"github.com/codegraphhq/codegraph/internal/graph"
	"github.com/codegraphhq/codegraph/internal/model"
)

func indexedRef(typ, path, element string, line int) model.IndexedReference {
	return model.IndexedReference{
		Reference: model.Reference{Type: typ, Path: path, Element: element, Line: line, HasLine: true},
	}
}

func TestDetectUnchanged(t *testing.T) {
	result := graph.Build(graph.Scanned{
		Files:    []string{"a.ts"},
		Elements: []model.Element{{Kind: model.KindFunction, Name: "handle", File: "a.ts", Line: 10}},
	})
	reports := Detect([]model.IndexedReference{indexedRef("Fn", "a.ts", "handle", 10)}, result, Options{})
	if len(reports) != 1 || reports[0].Status != model.DriftUnchanged {
		t.Fatalf("expected unchanged status, got %+v", reports)
	}
}

func TestDetectMovedSameFile(t *testing.T) {
	result := graph.Build(graph.Scanned{
		Files:    []string{"a.ts"},
		Elements: []model.Element{{Kind: model.KindFunction, Name: "handle", File: "a.ts", Line: 25}},
	})
	reports := Detect([]model.IndexedReference{indexedRef("Fn", "a.ts", "handle", 10)}, result, Options{})
	if len(reports) != 1 || reports[0].Status != model.DriftMoved {
		t.Fatalf("expected moved status, got %+v", reports)
	}
}

func TestDetectRenamedAtSameLocation(t *testing.T) {
	result := graph.Build(graph.Scanned{
		Files:    []string{"a.ts"},
		Elements: []model.Element{{Kind: model.KindFunction, Name: "handle", File: "a.ts", Line: 10}},
	})
	// "hanlde" (typo) at the same file/line as the real "handle" element:
	// close enough to be classified as a rename rather than missing.
	reports := Detect([]model.IndexedReference{indexedRef("Fn", "a.ts", "hanlde", 10)}, result, Options{SimilarityThreshold: 0.5})
	if len(reports) != 1 || reports[0].Status != model.DriftRenamed {
		t.Fatalf("expected renamed status, got %+v", reports)
	}
}

func TestDetectMissing(t *testing.T) {
	result := graph.Build(graph.Scanned{
		Files:    []string{"a.ts"},
		Elements: []model.Element{{Kind: model.KindFunction, Name: "other", File: "a.ts", Line: 40}},
	})
	reports := Detect([]model.IndexedReference{indexedRef("Fn", "a.ts", "handle", 10)}, result, Options{})
	if len(reports) != 1 || reports[0].Status != model.DriftMissing {
		t.Fatalf("expected missing status, got %+v", reports)
	}
}

func TestDetectAmbiguousWhenNameMatchesMultipleFiles(t *testing.T) {
	result := graph.Build(graph.Scanned{
		Files: []string{"a.ts", "b.ts"},
		Elements: []model.Element{
			{Kind: model.KindFunction, Name: "handle", File: "a.ts", Line: 99},
			{Kind: model.KindFunction, Name: "handle", File: "b.ts", Line: 5},
		},
	})
	reports := Detect([]model.IndexedReference{indexedRef("Fn", "c.ts", "handle", 10)}, result, Options{})
	if len(reports) != 1 || reports[0].Status != model.DriftAmbiguous {
		t.Fatalf("expected ambiguous status, got %+v", reports)
	}
}

func TestDetectEveryReferenceGetsExactlyOneStatus(t *testing.T) {
	result := graph.Build(graph.Scanned{
		Files: []string{"a.ts"},
		Elements: []model.Element{
			{Kind: model.KindFunction, Name: "handle", File: "a.ts", Line: 10},
		},
	})
	refs := []model.IndexedReference{
		indexedRef("Fn", "a.ts", "handle", 10),
		indexedRef("Fn", "a.ts", "missingFn", 50),
		indexedRef("Fn", "", "", 0),
	}
	reports := Detect(refs, result, Options{})
	if len(reports) != len(refs) {
		t.Fatalf("expected one report per indexed reference, got %d for %d refs", len(reports), len(refs))
	}
	for _, r := range reports {
		if r.Status == "" {
			t.Fatalf("expected every report to carry a status, got %+v", r)
		}
	}
}

func TestSimilarityIdenticalIsOne(t *testing.T) {
	if got := similarity("handle", "handle"); got != 1.0 {
		t.Fatalf("expected identical strings to have similarity 1.0, got %v", got)
	}
}

func TestSimilarityCompletelyDifferentIsLow(t *testing.T) {
	if got := similarity("abc", "xyz"); got != 0.0 {
		t.Fatalf("expected fully disjoint strings to have similarity 0, got %v", got)
	}
}
