// Package project locates and parses the holo.toml manifest that scopes a
// script project and tunes the validator.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"holoscript/internal/validator"
)

// ManifestName is the file the lookup walks up the tree for.
const ManifestName = "holo.toml"

// Manifest is a located and parsed holo.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the holo.toml layout.
type Config struct {
	Package PackageConfig `toml:"package"`
	Lint    LintConfig    `toml:"lint"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// LintConfig tunes the validator. Zero thresholds mean "keep the default";
// list fields extend the built-in whitelists rather than replacing them.
type LintConfig struct {
	MaxLoopDepth     int      `toml:"max_loop_depth"`
	LargeAllocation  int      `toml:"large_allocation"`
	LargeScriptLines int      `toml:"large_script_lines"`
	Functions        []string `toml:"functions"`
	Types            []string `toml:"types"`
}

// Find walks up from startDir looking for holo.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load discovers and parses the manifest for startDir. A missing manifest
// is not an error: callers fall back to defaults.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := parseConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func parseConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	return cfg, nil
}

// LintOptions merges the manifest's [lint] section over the validator
// defaults. A nil manifest yields the defaults untouched.
func (m *Manifest) LintOptions() validator.Options {
	opts := validator.DefaultOptions()
	if m == nil {
		return opts
	}
	lint := m.Config.Lint
	if lint.MaxLoopDepth > 0 {
		opts.MaxLoopDepth = lint.MaxLoopDepth
	}
	if lint.LargeAllocation > 0 {
		opts.LargeAllocation = lint.LargeAllocation
	}
	if lint.LargeScriptLines > 0 {
		opts.LargeScriptLines = lint.LargeScriptLines
	}
	opts.Functions = append(opts.Functions, lint.Functions...)
	opts.Types = append(opts.Types, lint.Types...)
	return opts
}
