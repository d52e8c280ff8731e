// Package export implements the "codegraph export" subcommand: scan, build,
// and emit a stable JSON graph document for external consumers.
package export

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/codegraphhq/codegraph/internal/cache"
	exportlib "github.com/codegraphhq/codegraph/internal/export"
	"github.com/codegraphhq/codegraph/internal/logging"
	"github.com/codegraphhq/codegraph/internal/orchestrator"
	"github.com/codegraphhq/codegraph/internal/pipeline"
	"github.com/codegraphhq/codegraph/internal/report"
)

func Run(args []string) int {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "JSON output (the only supported format; flag kept for CLI-surface symmetry)")
	fs.Parse(args)
	_ = jsonOut

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: codegraph export [--json] <root>")
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

	doc := exportlib.Export(result, time.Now().UnixMilli())
	if err := report.WriteExportJSON(os.Stdout, doc); err != nil {
		fmt.Fprintln(os.Stderr, "write output:", err)
		return 2
	}
	return 0
}
