// Package scoring implements Complexity & Scoring (spec component I): a
// bounded per-element metrics bundle mapped to a risk tier. Grounded on the
// shape of internal/priority/score.go's Compute/deriveLevel pairing — a
// composite numeric score reduced to named tiers by fixed thresholds — but
// built from structural signals (fan-out, parameter count, dependents)
// instead of capability/CVE/taint modifiers, since those are out of scope
// here.
package scoring

import (
	"math"

	"github.com/codegraphhq/codegraph/internal/model"
)

// Compute derives the metrics bundle for one element given its node id, the
// graph it belongs to, and an optional coverage estimate (-1 when
// unavailable).
func Compute(elementID string, g *model.DependencyGraph, coverageEstimate float64) model.ElementMetrics {
	node := g.Nodes[elementID]
	paramCount := 0
	if node != nil {
		if params, ok := node.Metadata["parameters"].([]model.Parameter); ok {
			paramCount = len(params)
		}
	}

	callFanOut := 0
	for _, e := range g.EdgesBySource[elementID] {
		if e.Kind == model.EdgeCalls {
			callFanOut++
		}
	}
	dependentCount := len(g.EdgesByTarget[elementID])

	complexity := structuralComplexity(paramCount, callFanOut, dependentCount)
	tier := deriveTier(complexity)

	return model.ElementMetrics{
		ElementID:        elementID,
		ComplexityScore:  complexity,
		ParameterCount:   paramCount,
		CallFanOut:       callFanOut,
		DependentCount:   dependentCount,
		CoverageEstimate: coverageEstimate,
		RiskTier:         tier,
	}
}

// structuralComplexity is a bounded 0-10 score from parameter count, call
// fan-out, and dependent count, each contributing diminishing returns via a
// log1p. The log is unbounded, so one dimension can still reach the cap of
// 10 on its own at extreme values (a call fan-out of 785 does).
func structuralComplexity(paramCount, callFanOut, dependentCount int) float64 {
	score := math.Log1p(float64(paramCount))*1.2 +
		math.Log1p(float64(callFanOut))*1.5 +
		math.Log1p(float64(dependentCount))*1.0
	if score > 10 {
		score = 10
	}
	return math.Round(score*100) / 100
}

// deriveTier maps a 0-10 complexity score to a risk tier by the cutoffs
// ≤2, ≤4, ≤7, else.
func deriveTier(complexity float64) model.RiskTier {
	switch {
	case complexity <= 2:
		return model.RiskLow
	case complexity <= 4:
		return model.RiskMedium
	case complexity <= 7:
		return model.RiskHigh
	default:
		return model.RiskCritical
	}
}
