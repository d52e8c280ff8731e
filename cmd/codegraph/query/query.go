// Package query implements the "codegraph query" subcommand: run a single
// bounded graph traversal against a freshly built analysis result.
package query

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/codegraphhq/codegraph/internal/cache"
	"github.com/codegraphhq/codegraph/internal/logging"
	"github.com/codegraphhq/codegraph/internal/model"
	"github.com/codegraphhq/codegraph/internal/orchestrator"
	"github.com/codegraphhq/codegraph/internal/pipeline"
	queryeng "github.com/codegraphhq/codegraph/internal/query"
	"github.com/codegraphhq/codegraph/internal/report"
)

func Run(args []string) int {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "JSON output")
	qtype := fs.String("type", "", "what-calls-me|what-depends-on|centrality|shortest-path|neighborhood")
	target := fs.String("target", "", "element id, or \"from::to\" for shortest-path")
	depth := fs.Int("depth", 5, "max traversal depth")
	fs.Parse(args)

	if fs.NArg() < 1 || *qtype == "" || *target == "" {
		fmt.Fprintln(os.Stderr, "usage: codegraph query [--json] --type <type> --target <id> [--depth N] <root>")
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

	eng := queryeng.New(result)
	res, err := eng.Query(model.QueryType(*qtype), *target, *depth)
	if err != nil {
		fmt.Fprintln(os.Stderr, "query:", err)
		return 2
	}

	if *jsonOut {
		if err := report.WriteQueryJSON(os.Stdout, res); err != nil {
			fmt.Fprintln(os.Stderr, "write output:", err)
			return 2
		}
		return 0
	}

	fmt.Fprintf(os.Stdout, "%s %s -> %d hits (%.2fms)\n", res.Type, res.Target, res.Count, res.ExecutionTime)
	if res.Type == model.QueryCentrality {
		fmt.Fprintf(os.Stdout, "  centrality score: %.4f\n", res.Score)
		return 0
	}
	var lines []string
	for _, hit := range res.Results {
		lines = append(lines, fmt.Sprintf("  [%d] %s", hit.Depth, hit.ID))
	}
	fmt.Fprintln(os.Stdout, strings.Join(lines, "\n"))
	return 0
}
