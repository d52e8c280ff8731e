package export

import "sort"

// QueryStrategy enumerates the boost profiles a consumer can request.
type QueryStrategy string

const (
	StrategyCentrality QueryStrategy = "centrality"
	StrategyQuality    QueryStrategy = "quality"
	StrategyUsage      QueryStrategy = "usage"
	StrategyPublic     QueryStrategy = "public"
	StrategyGeneral    QueryStrategy = "general"
)

// strategyBoost is the per-strategy multiplier applied to the combined
// score before the maxBoost cap.
var strategyBoost = map[QueryStrategy]float64{
	StrategyCentrality: 1.25,
	StrategyQuality:    1.15,
	StrategyUsage:      1.20,
	StrategyPublic:     1.10,
	StrategyGeneral:    1.0,
}

// Candidate is one result a consumer wants re-ranked.
type Candidate struct {
	ID              string
	SemanticScore   float64
	DepFactor       float64 // normalized dependency-graph proximity, 0-1
	DependentFactor float64 // normalized dependent count, 0-1
	Coverage        float64 // 0-1, or 0 if unknown
	Complexity      float64 // normalized 0-1
	Metadata        map[string]any
}

// Weights is the pre-normalization weight vector; normalized divides each by
// their sum so they combine to 1.
type Weights struct {
	Semantic   float64
	Dependency float64
	Dependent  float64
	Coverage   float64
	Complexity float64
}

func (w Weights) normalized() Weights {
	sum := w.Semantic + w.Dependency + w.Dependent + w.Coverage + w.Complexity
	if sum <= 0 {
		return Weights{Semantic: 1}
	}
	return Weights{
		Semantic:   w.Semantic / sum,
		Dependency: w.Dependency / sum,
		Dependent:  w.Dependent / sum,
		Coverage:   w.Coverage / sum,
		Complexity: w.Complexity / sum,
	}
}

// Options configures a re-rank pass.
type Options struct {
	Weights       Weights
	QueryStrategy QueryStrategy
	MaxBoost      float64 // 0 means no cap
	MinScore      float64
}

// Ranked is one re-ranked result with its scoring breakdown.
type Ranked struct {
	Candidate
	CombinedScore float64
	BoostedScore  float64
	Explanation   map[string]float64
}

// Rerank normalizes weights to sum to 1, computes a combined score per
// candidate, applies the query-strategy boost capped at MaxBoost, drops
// results below MinScore, and returns the reordered list highest-first.
func Rerank(candidates []Candidate, opts Options) []Ranked {
	w := opts.Weights.normalized()
	boost := strategyBoost[opts.QueryStrategy]
	if boost == 0 {
		boost = 1.0
	}
	if opts.MaxBoost > 0 && boost > opts.MaxBoost {
		boost = opts.MaxBoost
	}

	out := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		combined := w.Semantic*c.SemanticScore +
			w.Dependency*c.DepFactor +
			w.Dependent*c.DependentFactor +
			w.Coverage*c.Coverage -
			w.Complexity*c.Complexity

		boosted := combined * boost
		if boosted < opts.MinScore {
			continue
		}
		out = append(out, Ranked{
			Candidate:     c,
			CombinedScore: combined,
			BoostedScore:  boosted,
			Explanation: map[string]float64{
				"semantic":   w.Semantic * c.SemanticScore,
				"dependency": w.Dependency * c.DepFactor,
				"dependent":  w.Dependent * c.DependentFactor,
				"coverage":   w.Coverage * c.Coverage,
				"complexity": -w.Complexity * c.Complexity,
				"boost":      boost,
			},
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].BoostedScore > out[j].BoostedScore })
	return out
}
