// Package analyze implements the "codegraph analyze" subcommand: scan a
// directory and build its full dependency graph and statistics.
package analyze

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/codegraphhq/codegraph/internal/cache"
	"github.com/codegraphhq/codegraph/internal/logging"
	"github.com/codegraphhq/codegraph/internal/orchestrator"
	"github.com/codegraphhq/codegraph/internal/pipeline"
	"github.com/codegraphhq/codegraph/internal/report"
)

func Run(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "JSON output")
	exts := fs.String("ext", "ts,tsx,js,jsx", "comma-separated extensions to scan")
	recursive := fs.Bool("recursive", true, "descend into subdirectories")
	timings := fs.Bool("timings", false, "print per-phase timing breakdown after output")
	verbose := fs.Bool("verbose", false, "enable verbose debug logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: codegraph analyze [--json] [--timings] <root>")
		return 2
	}
	root := fs.Arg(0)

	log := logging.Noop()
	if *verbose {
		log = logging.New(true)
	}

	t0 := time.Now()
	result, out, err := pipeline.Analyze(root, orchestrator.Options{
		Recursive:  *recursive,
		Extensions: strings.Split(*exts, ","),
		Logger:     log,
		Cache:      cache.NewScanCache(64 << 20),
	})
	analyzeDur := time.Since(t0)
	if err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		return 2
	}

	t1 := time.Now()
	var writeErr error
	if *jsonOut {
		writeErr = report.WriteAnalysisJSON(os.Stdout, result)
	} else {
		fmt.Fprintf(os.Stdout, "graph checksum: %s\n\n", result.GraphChecksum)
		fmt.Fprintf(os.Stdout, "%-22s %d\n", "files scanned", len(out.Files))
		fmt.Fprintf(os.Stdout, "%-22s %d\n", "nodes", result.Stats.NodeCount)
		fmt.Fprintf(os.Stdout, "%-22s %d\n", "edges", result.Stats.EdgeCount)
		fmt.Fprintf(os.Stdout, "%-22s %.4f\n", "density", result.Stats.DensityRatio)
		for kind, n := range result.Stats.EdgesByType {
			fmt.Fprintf(os.Stdout, "  %-20s %d\n", kind, n)
		}
		if len(result.Stats.CircularDependencies) > 0 {
			fmt.Fprintf(os.Stdout, "%-22s %d\n", "circular groups", len(result.Stats.CircularDependencies))
			for _, cyc := range result.Stats.CircularDependencies {
				fmt.Fprintf(os.Stdout, "  cycle: %s\n", strings.Join(cyc, " -> "))
			}
		}
		if len(result.Stats.IsolatedNodes) > 0 {
			fmt.Fprintf(os.Stdout, "%-22s %d\n", "isolated nodes", len(result.Stats.IsolatedNodes))
		}
		if len(out.Diagnostics) > 0 {
			fmt.Fprintf(os.Stdout, "%-22s %d\n", "diagnostics", len(out.Diagnostics))
		}
	}
	outDur := time.Since(t1)
	if writeErr != nil {
		fmt.Fprintln(os.Stderr, "write output:", writeErr)
		return 2
	}

	if *timings {
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, "=== Timings ===")
		fmt.Fprintf(os.Stdout, "%-20s  %s\n", "scan+build", fmtDur(analyzeDur))
		fmt.Fprintf(os.Stdout, "%-20s  %s\n", "output formatting", fmtDur(outDur))
	}

	if len(out.Diagnostics) > 0 {
		return 1
	}
	return 0
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
