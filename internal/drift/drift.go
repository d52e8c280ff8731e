// Package drift implements the Drift Detector (spec component J):
// reconciling a previously recorded set of IndexedReferences against a
// freshly scanned AnalysisResult, classifying each as unchanged, moved,
// renamed, missing, ambiguous, or unknown. Detect sees only the built graph,
// not per-file scan diagnostics, so it never assigns the error status.
package drift

import (
	"github.com/codegraphhq/codegraph/internal/model"
	"github.com/codegraphhq/codegraph/internal/reftag"
)

// Options mirrors the spec's drift configuration surface.
type Options struct {
	SimilarityThreshold float64 // default 0.7
	Verbose             bool
}

// elementIndex groups an AnalysisResult's elements for fast lookup by name
// and by (file, line).
type elementIndex struct {
	byName map[string][]*model.GraphNode
	byLoc  map[string]*model.GraphNode // "file:line"
}

func buildIndex(result model.AnalysisResult) elementIndex {
	idx := elementIndex{byName: map[string][]*model.GraphNode{}, byLoc: map[string]*model.GraphNode{}}
	for _, n := range result.Graph.Nodes {
		if n.Kind != model.NodeElement {
			continue
		}
		idx.byName[n.Name] = append(idx.byName[n.Name], n)
		idx.byLoc[locKey(n.File, n.Line)] = n
	}
	return idx
}

func locKey(file string, line int) string {
	return file + "@" + itoa(line)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Detect classifies every indexed reference against the fresh scan. Each
// indexed reference is assigned exactly one DriftStatus.
func Detect(indexed []model.IndexedReference, result model.AnalysisResult, opts Options) []model.DriftReport {
	threshold := opts.SimilarityThreshold
	if threshold <= 0 {
		threshold = 0.7
	}
	idx := buildIndex(result)

	reports := make([]model.DriftReport, 0, len(indexed))
	for _, ref := range indexed {
		reports = append(reports, classify(ref, idx, threshold))
	}
	return reports
}

func classify(ref model.IndexedReference, idx elementIndex, threshold float64) model.DriftReport {
	if ref.Element == "" {
		return model.DriftReport{Indexed: ref, Status: model.DriftUnknown, Message: "indexed reference has no element name"}
	}

	candidates := idx.byName[ref.Element]

	// unchanged: same file, line, name.
	for _, n := range candidates {
		if n.File == ref.Path && n.Line == ref.Line {
			el := toElement(n)
			return model.DriftReport{Indexed: ref, Status: model.DriftUnchanged, CurrentElement: &el, Confidence: 1.0}
		}
	}

	// moved: same file, same name, different line.
	var sameFile []*model.GraphNode
	for _, n := range candidates {
		if n.File == ref.Path {
			sameFile = append(sameFile, n)
		}
	}
	if len(sameFile) == 1 {
		n := sameFile[0]
		el := toElement(n)
		fix, _ := reftag.FormatTag(model.Reference{Type: ref.Type, Path: n.File, Element: n.Name, Line: n.Line, HasLine: true})
		return model.DriftReport{
			Indexed:        ref,
			Status:         model.DriftMoved,
			CurrentElement: &el,
			Message:        "element found in the same file at a different line",
			SuggestedFix:   fix,
			Confidence:     1.0,
		}
	}

	// renamed: no element with the indexed name in the indexed file at the
	// indexed line, but some other element occupies that exact spot with a
	// similar name.
	if n, ok := idx.byLoc[locKey(ref.Path, ref.Line)]; ok && n.Name != ref.Element {
		sim := similarity(ref.Element, n.Name)
		if sim >= threshold {
			el := toElement(n)
			fix, _ := reftag.FormatTag(model.Reference{Type: ref.Type, Path: n.File, Element: n.Name, Line: n.Line, HasLine: true})
			return model.DriftReport{
				Indexed:        ref,
				Status:         model.DriftRenamed,
				CurrentElement: &el,
				Message:        "element at the indexed location now has a different name",
				SuggestedFix:   fix,
				Confidence:     sim,
			}
		}
	}

	// missing: name not found anywhere.
	if len(candidates) == 0 {
		return model.DriftReport{Indexed: ref, Status: model.DriftMissing, Message: "no element with this name in the current scan"}
	}

	// ambiguous: name matches more than one element and none is unambiguous.
	if len(candidates) > 1 {
		return model.DriftReport{Indexed: ref, Status: model.DriftAmbiguous, Message: "name matches multiple elements across files", Confidence: 1.0 / float64(len(candidates))}
	}

	// Exactly one candidate exists, in a different file and at a different
	// line than indexed: treat as moved across files.
	n := candidates[0]
	el := toElement(n)
	fix, _ := reftag.FormatTag(model.Reference{Type: ref.Type, Path: n.File, Element: n.Name, Line: n.Line, HasLine: true})
	return model.DriftReport{
		Indexed:        ref,
		Status:         model.DriftMoved,
		CurrentElement: &el,
		Message:        "element found in a different file",
		SuggestedFix:   fix,
		Confidence:     1.0,
	}
}

func toElement(n *model.GraphNode) model.Element {
	kind := model.KindUnknown
	if n.Metadata != nil {
		if k, ok := n.Metadata["kind"].(string); ok {
			kind = model.ElementKind(k)
		}
	}
	return model.Element{Kind: kind, Name: n.Name, File: n.File, Line: n.Line}
}

// similarity returns 1 - normalized Levenshtein distance, normalized by the
// shorter name's length per the spec's configurable-threshold contract.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	shorter := len(a)
	if len(b) < shorter {
		shorter = len(b)
	}
	if shorter == 0 {
		return 0
	}
	dist := levenshtein(a, b)
	sim := 1.0 - float64(dist)/float64(shorter)
	if sim < 0 {
		sim = 0
	}
	return sim
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			cur[j] = minInt(del, minInt(ins, sub))
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
