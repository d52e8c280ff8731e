// Package impact implements the Impact Simulator (spec component H):
// cascading blast-radius computation over incoming edges, with depth-tiered
// classification, severity/risk scoring, and a cache keyed to the graph
// that produced the AnalysisResult. Grounded on gorisk's own BFS-shaped
// impact computation (internal/impact/impact.go), generalized from
// module-level dependency impact to element-level call/dependency impact.
package impact

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/codegraphhq/codegraph/internal/model"
)

// Simulator computes blast radii against one immutable AnalysisResult.
type Simulator struct {
	result model.AnalysisResult

	mu    sync.Mutex
	cache map[string]model.BlastRadius
}

// New binds a Simulator to result.
func New(result model.AnalysisResult) *Simulator {
	return &Simulator{result: result, cache: make(map[string]model.BlastRadius)}
}

func cacheKey(elementID string, maxDepth int) string {
	return fmt.Sprintf("%s|%d", elementID, maxDepth)
}

// Simulate computes the BlastRadius of changing elementID, bounded by
// maxDepth hops (default 5).
func (s *Simulator) Simulate(elementID string, maxDepth int) (model.BlastRadius, error) {
	if maxDepth <= 0 {
		maxDepth = 5
	}
	key := cacheKey(elementID, maxDepth)
	s.mu.Lock()
	if cached, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	if _, ok := s.result.Graph.Nodes[elementID]; !ok {
		return model.BlastRadius{}, fmt.Errorf("%w: %s", model.ErrUnknownElement, elementID)
	}

	start := time.Now()
	depthOf := map[string]int{elementID: 0}
	queue := []string{elementID}
	depth := 0
	for len(queue) > 0 && depth < maxDepth {
		depth++
		var next []string
		for _, id := range queue {
			for _, edge := range s.result.Graph.EdgesByTarget[id] {
				if edge.Kind != model.EdgeCalls && edge.Kind != model.EdgeDependsOn && edge.Kind != model.EdgeImports {
					continue
				}
				if _, seen := depthOf[edge.Source]; seen {
					continue
				}
				depthOf[edge.Source] = depth
				next = append(next, edge.Source)
			}
		}
		queue = next
	}

	var direct, transitive, secondary []model.ElementImpact
	for id, d := range depthOf {
		if id == elementID {
			continue
		}
		level := model.ImpactSecondary
		switch {
		case d == 1:
			level = model.ImpactDirect
		case d >= 2 && d <= 3:
			level = model.ImpactTransitive
		}
		ei := model.ElementImpact{
			ElementID:        id,
			ImpactLevel:      level,
			ImpactScore:      1.0 / (1.0 + float64(d)),
			DependentCount:   len(s.result.Graph.EdgesByTarget[id]),
			CascadeDepth:     d,
			AffectedElements: s.affectedWithin(id, maxDepth-d),
		}
		switch level {
		case model.ImpactDirect:
			direct = append(direct, ei)
		case model.ImpactTransitive:
			transitive = append(transitive, ei)
		default:
			secondary = append(secondary, ei)
		}
	}
	sortByID(direct)
	sortByID(transitive)
	sortByID(secondary)

	total := len(direct) + len(transitive) + len(secondary)
	severity := classifySeverity(total)
	riskScore := computeRiskScore(len(direct), len(transitive), len(secondary))

	br := model.BlastRadius{
		Source:         elementID,
		Direct:         direct,
		Transitive:     transitive,
		Secondary:      secondary,
		Severity:       severity,
		RiskScore:      riskScore,
		SimulationTime: float64(time.Since(start).Microseconds()) / 1000.0,
		Mitigations:    mitigations(severity),
		CascadeChain:   cascadeChain(elementID, len(direct), len(transitive), len(secondary), total),
	}

	s.mu.Lock()
	s.cache[key] = br
	s.mu.Unlock()
	return br, nil
}

func sortByID(impacts []model.ElementImpact) {
	sort.Slice(impacts, func(i, j int) bool { return impacts[i].ElementID < impacts[j].ElementID })
}

// affectedWithin returns the transitive dependents of id within the
// remaining hop budget, used to populate ElementImpact.AffectedElements.
func (s *Simulator) affectedWithin(id string, budget int) []string {
	if budget <= 0 {
		return nil
	}
	visited := map[string]bool{id: true}
	queue := []string{id}
	depth := 0
	var out []string
	for len(queue) > 0 && depth < budget {
		depth++
		var next []string
		for _, cur := range queue {
			for _, edge := range s.result.Graph.EdgesByTarget[cur] {
				if edge.Kind != model.EdgeCalls && edge.Kind != model.EdgeDependsOn && edge.Kind != model.EdgeImports {
					continue
				}
				if visited[edge.Source] {
					continue
				}
				visited[edge.Source] = true
				out = append(out, edge.Source)
				next = append(next, edge.Source)
			}
		}
		queue = next
	}
	sort.Strings(out)
	return out
}

func classifySeverity(total int) model.Severity {
	switch {
	case total >= 50:
		return model.SeverityCritical
	case total >= 20:
		return model.SeverityHigh
	case total >= 5:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

func computeRiskScore(direct, transitive, secondary int) float64 {
	score := capAt(60, 10*float64(direct)) + capAt(30, 2*float64(transitive)) + capAt(10, 0.5*float64(secondary))
	if score > 100 {
		score = 100
	}
	return score
}

func capAt(ceiling, v float64) float64 {
	if v > ceiling {
		return ceiling
	}
	return v
}

func mitigations(sev model.Severity) []string {
	switch sev {
	case model.SeverityCritical:
		return []string{
			"Run the extensive test suite before merging; this change's blast radius is unusually wide.",
			"Roll out incrementally (canary/feature-flag) rather than all at once.",
		}
	case model.SeverityHigh:
		return []string{
			"Request review from the owners of the affected modules.",
			"Coordinate the merge window with dependent teams.",
		}
	case model.SeverityMedium:
		return []string{"Standard review is sufficient; verify the directly affected callers."}
	default:
		return []string{"Routine change; no special handling required."}
	}
}

func cascadeChain(source string, direct, transitive, secondary, total int) string {
	return fmt.Sprintf("START: %s → %d direct → %d transitive → %d secondary → END: %d", source, direct, transitive, secondary, total)
}
