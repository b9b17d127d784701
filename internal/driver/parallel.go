package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"holoscript/internal/diag"
	"holoscript/internal/source"
)

// ScriptExt is the extension directory walks pick up.
const ScriptExt = ".holo"

// RunResult aggregates a whole run (one file or a directory tree).
type RunResult struct {
	FileSet *source.FileSet
	Results []*Result
}

// Bag merges every report into one Bag, in path order.
func (r *RunResult) Bag() *diag.Bag {
	total := 0
	for _, res := range r.Results {
		total += res.Report.Count()
	}
	bag := diag.NewBag(total)
	for _, res := range r.Results {
		bag.Merge(res.Report.Bag())
	}
	return bag
}

// HasErrors reports whether any script in the run is invalid.
func (r *RunResult) HasErrors() bool {
	for _, res := range r.Results {
		if !res.Report.Valid {
			return true
		}
	}
	return false
}

// Paths returns the validated script paths, in run order.
func (r *RunResult) Paths() []string {
	paths := make([]string, len(r.Results))
	for i, res := range r.Results {
		paths[i] = res.Path
	}
	return paths
}

// ValidatePath validates a single script or every *.holo script under a
// directory. Directory runs load files sequentially (the FileSet is not
// concurrency-safe for writes) and then validate in parallel; results come
// back sorted by path regardless of worker scheduling.
func ValidatePath(ctx context.Context, path string, opts *Options) (*RunResult, error) {
	if opts == nil {
		opts = &Options{}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(baseDirFor(path, info.IsDir()))

	if !info.IsDir() {
		res, err := ValidateFile(fileSet, path, opts)
		if err != nil {
			return nil, err
		}
		emit(opts.Progress, Event{Path: res.Path, Stage: StageDone,
			Diags: res.Report.Count(), Failed: !res.Report.Valid})
		return &RunResult{FileSet: fileSet, Results: []*Result{res}}, nil
	}

	paths, err := CollectScripts(path)
	if err != nil {
		return nil, err
	}

	// фаза 1: последовательная загрузка
	files := make([]*source.File, 0, len(paths))
	for _, p := range paths {
		id, loadErr := fileSet.Load(p)
		if loadErr != nil {
			return nil, fmt.Errorf("failed to load %q: %w", p, loadErr)
		}
		files = append(files, fileSet.Get(id))
		emit(opts.Progress, Event{Path: fileSet.Get(id).Path, Stage: StageQueued})
	}

	// фаза 2: параллельная валидация
	lint := opts.lintOptions()
	results := make([]*Result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(opts.Jobs))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			emit(opts.Progress, Event{Path: file.Path, Stage: StageValidating})

			rep := validateWithCache(file, lint, opts.Cache)
			applyPolicy(rep, opts)
			results[i] = &Result{Path: file.Path, FileID: file.ID, Report: rep}

			emit(opts.Progress, Event{Path: file.Path, Stage: StageDone,
				Diags: rep.Count(), Failed: !rep.Valid})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return &RunResult{FileSet: fileSet, Results: results}, nil
}

// CollectScripts walks root and returns every *.holo path, sorted.
func CollectScripts(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ScriptExt) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func workerCount(jobs int) int {
	if jobs > 0 {
		return jobs
	}
	return runtime.NumCPU()
}

func baseDirFor(path string, isDir bool) string {
	if isDir {
		return path
	}
	return filepath.Dir(path)
}
