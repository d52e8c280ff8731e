// Package impact implements the "codegraph impact" subcommand: simulate the
// blast radius of a change to a single element.
package impact

import (
	"flag"
	"fmt"
	"os"

	"github.com/codegraphhq/codegraph/internal/cache"
	impactsim "github.com/codegraphhq/codegraph/internal/impact"
	"github.com/codegraphhq/codegraph/internal/logging"
	"github.com/codegraphhq/codegraph/internal/model"
	"github.com/codegraphhq/codegraph/internal/orchestrator"
	"github.com/codegraphhq/codegraph/internal/pipeline"
	"github.com/codegraphhq/codegraph/internal/report"
)

var severityValue = map[model.Severity]int{
	model.SeverityLow:      0,
	model.SeverityMedium:   1,
	model.SeverityHigh:     2,
	model.SeverityCritical: 3,
}

func Run(args []string) int {
	fs := flag.NewFlagSet("impact", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "JSON output")
	target := fs.String("target", "", "element id to simulate a change to")
	depth := fs.Int("depth", 5, "max BFS depth")
	failOn := fs.String("fail-on", "", "fail (exit 1) when severity reaches this level: medium|high|critical")
	fs.Parse(args)

	if fs.NArg() < 1 || *target == "" {
		fmt.Fprintln(os.Stderr, "usage: codegraph impact [--json] --target <id> [--depth N] [--fail-on medium|high|critical] <root>")
		return 2
	}
	root := fs.Arg(0)

	result, _, err := pipeline.Analyze(root, orchestrator.Options{
		Recursive: true,
		Logger:    logging.Noop(),
		Cache:     cache.NewScanCache(64 << 20),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		return 2
	}

	sim := impactsim.New(result)
	radius, err := sim.Simulate(*target, *depth)
	if err != nil {
		fmt.Fprintln(os.Stderr, "impact:", err)
		return 2
	}

	if *jsonOut {
		if err := report.WriteImpactJSON(os.Stdout, radius); err != nil {
			fmt.Fprintln(os.Stderr, "write output:", err)
			return 2
		}
	} else {
		fmt.Fprintf(os.Stdout, "%s\n", radius.CascadeChain)
		fmt.Fprintf(os.Stdout, "severity: %s   risk score: %.1f\n", radius.Severity, radius.RiskScore)
		fmt.Fprintf(os.Stdout, "direct: %d   transitive: %d   secondary: %d\n", len(radius.Direct), len(radius.Transitive), len(radius.Secondary))
		for _, m := range radius.Mitigations {
			fmt.Fprintf(os.Stdout, "  - %s\n", m)
		}
	}

	if *failOn != "" {
		threshold, ok := severityValue[model.Severity(*failOn)]
		if !ok {
			fmt.Fprintf(os.Stderr, "invalid --fail-on value %q\n", *failOn)
			return 2
		}
		if severityValue[radius.Severity] >= threshold {
			return 1
		}
	}
	return 0
}
