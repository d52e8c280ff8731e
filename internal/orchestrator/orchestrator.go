// Package orchestrator implements the Scan Orchestrator (spec component E):
// it walks a directory, dispatches each recognized file to the scanner in
// parallel, and reassembles results in walk order with a monotonic progress
// callback. Parallel dispatch replaces the teacher's hand-rolled
// jobs/resChan/WaitGroup worker pool (internal/health/health.go) with
// golang.org/x/sync/errgroup, the idiomatic fit already present in the
// teacher's own dependency surface.
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/codegraphhq/codegraph/internal/cache"
	"github.com/codegraphhq/codegraph/internal/convention"
	"github.com/codegraphhq/codegraph/internal/logging"
	"github.com/codegraphhq/codegraph/internal/model"
	"github.com/codegraphhq/codegraph/internal/scanner"
)

var defaultExtensions = []string{"ts", "tsx", "js", "jsx"}

// Progress is delivered to Options.OnProgress once per file, including
// cache hits.
type Progress struct {
	CurrentFile     string
	FilesProcessed  int
	TotalFiles      int
	ElementsFound   int
	PercentComplete int
}

// Options mirrors the spec's scan configuration surface.
type Options struct {
	Recursive       bool
	Extensions      []string
	Exclude         []string
	IncludeComments bool
	Verbose         bool
	OnProgress      func(Progress)
	CancelSignal    <-chan struct{}
	Logger          *logging.Logger
	Cache           *cache.ScanCache
}

// Output is the concatenated result of a directory scan.
type Output struct {
	Elements    []model.Element
	Calls       []scanner.CallEdge
	Imports     []scanner.ImportEdge
	Exports     []scanner.ExportEdge
	Files       []string
	Diagnostics []model.ScanError
	Cancelled   bool
}

type fileTask struct {
	path    string // absolute
	relPath string // forward-slash, relative to root
	idx     int
}

type fileResult struct {
	idx     int
	relPath string
	res     scanner.Result
	err     error
	skipped bool
}

// Walk scans root and returns the concatenated result.
func Walk(root string, opts Options) (Output, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Noop()
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = defaultExtensions
	}
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	excludes := opts.Exclude
	if len(excludes) == 0 {
		if conv, err := convention.Load("scan"); err == nil {
			excludes = conv.DefaultExcludes
		}
	}

	tasks, err := discover(root, extSet, excludes, opts.Recursive)
	if err != nil {
		return Output{}, err
	}

	total := len(tasks)
	pc := opts.Cache

	resultCh := make(chan fileResult, total)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, t := range tasks {
		t := t
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-opts.CancelSignal:
				return model.ErrCancelled
			default:
			}

			data, rerr := os.ReadFile(t.path)
			if rerr != nil {
				resultCh <- fileResult{idx: t.idx, relPath: t.relPath, err: rerr}
				return nil
			}

			info, serr := os.Stat(t.path)
			var mtime int64
			if serr == nil {
				mtime = info.ModTime().UnixNano()
			}

			if pc != nil {
				if entry, ok := pc.Get(t.relPath, mtime); ok {
					resultCh <- fileResult{idx: t.idx, relPath: t.relPath, skipped: true, res: scanner.Result{
						Elements: entry.Elements,
						Calls:    entry.Calls,
						Imports:  entry.Imports,
						Exports:  entry.Exports,
					}}
					return nil
				}
			}

			res, serr2 := scanner.Scan(string(data), t.relPath, scanner.Options{IncludeComments: opts.IncludeComments, Verbose: opts.Verbose})
			if serr2 != nil {
				log.Warnf("scan %s: %v", t.relPath, serr2)
				resultCh <- fileResult{idx: t.idx, relPath: t.relPath, err: serr2}
				return nil
			}
			if pc != nil {
				pc.Put(&cache.Entry{
					Path:     t.relPath,
					ModTime:  mtime,
					Size:     int64(len(data)),
					Elements: res.Elements,
					Calls:    res.Calls,
					Imports:  res.Imports,
					Exports:  res.Exports,
				})
			}
			resultCh <- fileResult{idx: t.idx, relPath: t.relPath, res: res}
			return nil
		})
	}

	go func() {
		g.Wait()
		close(resultCh)
	}()

	pending := make(map[int]fileResult, total)
	next := 0
	var out Output
	cancelled := false

	emit := func(r fileResult) {
		if r.err != nil {
			out.Diagnostics = append(out.Diagnostics, model.ScanError{File: r.relPath, Err: r.err})
		} else {
			out.Elements = append(out.Elements, r.res.Elements...)
			out.Calls = append(out.Calls, r.res.Calls...)
			out.Imports = append(out.Imports, r.res.Imports...)
			out.Exports = append(out.Exports, r.res.Exports...)
			out.Files = append(out.Files, r.relPath)
		}
		next++
		if opts.OnProgress != nil {
			select {
			case <-opts.CancelSignal:
			default:
				pct := 100
				if total > 0 {
					pct = (100 * next) / total
				}
				opts.OnProgress(Progress{
					CurrentFile:     r.relPath,
					FilesProcessed:  next,
					TotalFiles:      total,
					ElementsFound:   len(out.Elements),
					PercentComplete: pct,
				})
			}
		}
	}

	for r := range resultCh {
		pending[r.idx] = r
		for {
			nr, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			emit(nr)
		}
		select {
		case <-opts.CancelSignal:
			cancelled = true
		default:
		}
	}

	if err := g.Wait(); err != nil && err != model.ErrCancelled {
		return out, err
	}
	out.Cancelled = cancelled

	return out, nil
}

func discover(root string, extSet map[string]bool, excludes []string, recursive bool) ([]fileTask, error) {
	var tasks []fileTask
	var rel []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		r, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return nil
		}
		r = filepath.ToSlash(r)
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(r), "."))
		if !extSet[ext] {
			return nil
		}
		if anyMatch(excludes, r) {
			return nil
		}
		rel = append(rel, r)
		tasks = append(tasks, fileTask{path: path, relPath: r})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(rel)
	order := make(map[string]int, len(rel))
	for i, r := range rel {
		order[r] = i
	}
	for i := range tasks {
		tasks[i].idx = order[tasks[i].relPath]
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].idx < tasks[j].idx })
	return tasks, nil
}
