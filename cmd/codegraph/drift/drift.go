// Package drift implements the "codegraph drift" subcommand: reconcile a
// previously recorded index of reference tags against a fresh scan.
package drift

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/codegraphhq/codegraph/internal/cache"
	driftdet "github.com/codegraphhq/codegraph/internal/drift"
	"github.com/codegraphhq/codegraph/internal/logging"
	"github.com/codegraphhq/codegraph/internal/model"
	"github.com/codegraphhq/codegraph/internal/orchestrator"
	"github.com/codegraphhq/codegraph/internal/pipeline"
	"github.com/codegraphhq/codegraph/internal/reftag"
	"github.com/codegraphhq/codegraph/internal/report"
)

func Run(args []string) int {
	fs := flag.NewFlagSet("drift", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "JSON output")
	indexFile := fs.String("index", "", "file of recorded reference tags, one per line")
	threshold := fs.Float64("threshold", 0.7, "rename-similarity threshold")
	fs.Parse(args)

	if fs.NArg() < 1 || *indexFile == "" {
		fmt.Fprintln(os.Stderr, "usage: codegraph drift [--json] --index <file> <root>")
		return 2
	}
	root := fs.Arg(0)

	indexed, err := loadIndex(*indexFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load index:", err)
		return 2
	}

	result, _, err := pipeline.Analyze(root, orchestrator.Options{
		Recursive: true,
		Logger:    logging.Noop(),
		Cache:     cache.NewScanCache(64 << 20),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		return 2
	}

	reports := driftdet.Detect(indexed, result, driftdet.Options{SimilarityThreshold: *threshold})

	if *jsonOut {
		if err := report.WriteDriftJSON(os.Stdout, reports); err != nil {
			fmt.Fprintln(os.Stderr, "write output:", err)
			return 2
		}
	} else {
		nonUnchanged := 0
		for _, r := range reports {
			if r.Status != model.DriftUnchanged {
				nonUnchanged++
			}
			fmt.Fprintf(os.Stdout, "%-10s %s#%s\n", r.Status, r.Indexed.Path, r.Indexed.Element)
			if r.Message != "" {
				fmt.Fprintf(os.Stdout, "    %s\n", r.Message)
			}
			if r.SuggestedFix != "" {
				fmt.Fprintf(os.Stdout, "    fix: %s\n", r.SuggestedFix)
			}
		}
		fmt.Fprintf(os.Stdout, "\n%d references, %d drifted\n", len(reports), nonUnchanged)
	}

	for _, r := range reports {
		if r.Status == model.DriftMissing || r.Status == model.DriftAmbiguous || r.Status == model.DriftError {
			return 1
		}
	}
	return 0
}

func loadIndex(path string) ([]model.IndexedReference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []model.IndexedReference
	scn := bufio.NewScanner(f)
	line := 0
	for scn.Scan() {
		line++
		text := strings.TrimSpace(scn.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		ref, err := reftag.ParseTag(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, model.IndexedReference{
			Reference:   ref,
			File:        path,
			IndexLine:   line,
			OriginalTag: text,
		})
	}
	if err := scn.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
