// Package scan implements the "codegraph scan" subcommand: walk a directory
// and report the elements and edges found, without building a graph.
package scan

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/codegraphhq/codegraph/internal/cache"
	"github.com/codegraphhq/codegraph/internal/logging"
	"github.com/codegraphhq/codegraph/internal/orchestrator"
	"github.com/codegraphhq/codegraph/internal/report"
)

func Run(args []string) int {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "JSON output")
	exts := fs.String("ext", "ts,tsx,js,jsx", "comma-separated extensions to scan")
	recursive := fs.Bool("recursive", true, "descend into subdirectories")
	timings := fs.Bool("timings", false, "print per-phase timing breakdown after output")
	verbose := fs.Bool("verbose", false, "enable verbose debug logging")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: codegraph scan [--json] [--timings] [--ext ts,tsx,js,jsx] <root>")
		return 2
	}
	root := fs.Arg(0)

	log := logging.Noop()
	if *verbose {
		log = logging.New(true)
	}

	t0 := time.Now()
	out, err := orchestrator.Walk(root, orchestrator.Options{
		Recursive:  *recursive,
		Extensions: strings.Split(*exts, ","),
		Logger:     log,
		Cache:      cache.NewScanCache(64 << 20),
	})
	walkDur := time.Since(t0)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scan:", err)
		return 2
	}

	t1 := time.Now()
	var writeErr error
	if *jsonOut {
		writeErr = report.WriteScanJSON(os.Stdout, out.Elements, out.Diagnostics)
	} else {
		fmt.Fprintf(os.Stdout, "%d files scanned, %d elements found, %d diagnostics\n", len(out.Files), len(out.Elements), len(out.Diagnostics))
		for _, el := range out.Elements {
			fmt.Fprintf(os.Stdout, "  %-10s %s:%d %s\n", el.Kind, el.File, el.Line, el.Name)
		}
		for _, d := range out.Diagnostics {
			fmt.Fprintf(os.Stdout, "  ! %s\n", d.Error())
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
		fmt.Fprintf(os.Stdout, "%-20s  %s\n", "walk+scan", fmtDur(walkDur))
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
