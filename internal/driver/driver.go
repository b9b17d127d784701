// Package driver orchestrates validation runs: loading scripts into a
// FileSet, invoking the validator, applying warning policies, caching and
// parallel directory walks. CLI commands talk to this layer, never to the
// passes directly.
package driver

import (
	"fmt"
	"os"

	"holoscript/internal/diag"
	"holoscript/internal/source"
	"holoscript/internal/validator"
)

// Options controls one validation run.
type Options struct {
	// MaxDiagnostics bounds the total kept per file, spent on errors
	// first, then warnings, then suggestions. 0 means unlimited.
	MaxDiagnostics int
	// NoWarnings drops the warning bucket entirely.
	NoWarnings bool
	// WarningsAsErrors promotes warnings to errors (and flips Valid).
	WarningsAsErrors bool
	// Jobs caps parallel workers for directory runs; 0 picks NumCPU.
	Jobs int
	// Lint configures the validator. A zero value means DefaultOptions; a
	// partially filled Options is used verbatim, empty whitelists included.
	Lint validator.Options
	// Cache, when set, short-circuits unchanged scripts.
	Cache *Cache
	// Progress receives per-file events; nil disables reporting.
	Progress Sink
}

func (o *Options) lintOptions() validator.Options {
	if o.Lint.IsZero() {
		return validator.DefaultOptions()
	}
	return o.Lint
}

// Result is the outcome for a single script.
type Result struct {
	Path   string
	FileID source.FileID
	Report *validator.Report
}

// ValidateFile loads one script into fs and validates it.
func ValidateFile(fs *source.FileSet, path string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	file := fs.Get(id)

	lint := opts.lintOptions()
	rep := validateWithCache(file, lint, opts.Cache)
	applyPolicy(rep, opts)

	return &Result{Path: file.Path, FileID: id, Report: rep}, nil
}

func validateWithCache(file *source.File, lint validator.Options, cache *Cache) *validator.Report {
	if cache == nil {
		return validator.New(lint).Validate(file)
	}
	key := cacheKey(file, lint)
	if rep, ok := cache.Load(key, file.ID); ok {
		return rep
	}
	rep := validator.New(lint).Validate(file)
	// ошибки записи кэша не фатальны
	_ = cache.Store(key, rep)
	return rep
}

// applyPolicy rewrites the report buckets according to warning flags and
// the diagnostics budget, recomputing Valid.
func applyPolicy(rep *validator.Report, opts *Options) {
	switch {
	case opts.NoWarnings:
		rep.Warnings = nil
	case opts.WarningsAsErrors:
		for _, d := range rep.Warnings {
			d.Severity = diag.SevError
			rep.Errors = append(rep.Errors, d)
		}
		rep.Warnings = nil
	}

	if max := opts.MaxDiagnostics; max > 0 {
		budget := max
		rep.Errors, budget = truncate(rep.Errors, budget)
		rep.Warnings, budget = truncate(rep.Warnings, budget)
		rep.Suggestions, _ = truncate(rep.Suggestions, budget)
	}

	rep.Valid = len(rep.Errors) == 0
}

func truncate(diags []diag.Diagnostic, budget int) ([]diag.Diagnostic, int) {
	if len(diags) > budget {
		diags = diags[:budget]
	}
	return diags, budget - len(diags)
}
