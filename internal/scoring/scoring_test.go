package scoring

import (
	"testing"

	"github.com/codegraphhq/codegraph/internal/model"
)

func TestComputeZeroSignalsYieldsLowTier(t *testing.T) {
	g := model.NewDependencyGraph()
	g.AddNode(&model.GraphNode{ID: "a.ts:f", Kind: model.NodeElement})
	m := Compute("a.ts:f", g, -1)
	if m.ComplexityScore != 0 {
		t.Fatalf("expected zero complexity with no signals, got %v", m.ComplexityScore)
	}
	if m.RiskTier != model.RiskLow {
		t.Fatalf("expected low tier, got %v", m.RiskTier)
	}
}

func TestComputeComplexityStaysWithinBounds(t *testing.T) {
	g := model.NewDependencyGraph()
	g.AddNode(&model.GraphNode{ID: "a.ts:f", Kind: model.NodeElement})
	for i := 0; i < 200; i++ {
		target := model.GraphNode{ID: "a.ts:callee", Kind: model.NodeElement}
		g.AddNode(&target)
		g.AddEdge(model.GraphEdge{Source: "a.ts:f", Target: "a.ts:callee", Kind: model.EdgeCalls})
		g.AddEdge(model.GraphEdge{Source: "a.ts:caller", Target: "a.ts:f", Kind: model.EdgeCalls})
	}
	m := Compute("a.ts:f", g, -1)
	if m.ComplexityScore < 0 || m.ComplexityScore > 10 {
		t.Fatalf("expected complexity score within [0,10], got %v", m.ComplexityScore)
	}
}

func TestComputeTierCutoffs(t *testing.T) {
	cases := []struct {
		complexity float64
		want       model.RiskTier
	}{
		{0, model.RiskLow},
		{2, model.RiskLow},
		{2.5, model.RiskMedium},
		{4, model.RiskMedium},
		{5, model.RiskHigh},
		{7, model.RiskHigh},
		{8, model.RiskCritical},
		{10, model.RiskCritical},
	}
	for _, c := range cases {
		if got := deriveTier(c.complexity); got != c.want {
			t.Errorf("deriveTier(%v) = %v, want %v", c.complexity, got, c.want)
		}
	}
}

func TestComputeReadsParameterCountFromMetadata(t *testing.T) {
	g := model.NewDependencyGraph()
	g.AddNode(&model.GraphNode{
		ID:       "a.ts:f",
		Kind:     model.NodeElement,
		Metadata: map[string]any{"parameters": []model.Parameter{{Name: "a"}, {Name: "b"}, {Name: "c"}}},
	})
	m := Compute("a.ts:f", g, -1)
	if m.ParameterCount != 3 {
		t.Fatalf("expected parameter count 3, got %d", m.ParameterCount)
	}
}

func TestComputePreservesCoverageEstimate(t *testing.T) {
	g := model.NewDependencyGraph()
	g.AddNode(&model.GraphNode{ID: "a.ts:f", Kind: model.NodeElement})
	m := Compute("a.ts:f", g, 0.82)
	if m.CoverageEstimate != 0.82 {
		t.Fatalf("expected coverage estimate to pass through unchanged, got %v", m.CoverageEstimate)
	}
}
