// Package pipeline wires the Scan Orchestrator and Graph Builder together:
// the sequence every analyze/query/impact/drift/export subcommand needs
// before it can do its own work.
package pipeline

import (
	"time"

	"github.com/codegraphhq/codegraph/internal/graph"
	"github.com/codegraphhq/codegraph/internal/model"
	"github.com/codegraphhq/codegraph/internal/orchestrator"
)

// Analyze walks root and builds an AnalysisResult from the scan, timing the
// whole pipeline into AnalysisResult.AnalysisTime.
func Analyze(root string, opts orchestrator.Options) (model.AnalysisResult, orchestrator.Output, error) {
	start := time.Now()
	out, err := orchestrator.Walk(root, opts)
	if err != nil {
		return model.AnalysisResult{}, out, err
	}
	if out.Cancelled {
		return model.AnalysisResult{}, out, nil
	}

	result := graph.Build(graph.Scanned{
		Files:    out.Files,
		Elements: out.Elements,
		Calls:    out.Calls,
		Imports:  out.Imports,
	})
	result.AnalysisTime = float64(time.Since(start).Microseconds()) / 1000.0
	return result, out, nil
}
