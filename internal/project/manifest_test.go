package project

import (
	"os"
	"path/filepath"
	"testing"

	"holoscript/internal/validator"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if !ok {
		t.Fatalf("manifest not found from nested dir")
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %q, want manifest in %q", path, root)
	}
}

func TestLoadMissingManifestIsNotAnError(t *testing.T) {
	m, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if ok || m != nil {
		t.Fatalf("expected no manifest, got %+v", m)
	}
}

func TestLoadRejectsMissingPackageName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[lint]\nmax_loop_depth = 5\n")

	_, ok, err := Load(dir)
	if !ok {
		t.Fatalf("manifest should be reported as present")
	}
	if err == nil {
		t.Fatalf("expected error for missing [package].name")
	}
}

func TestLintOptionsMergeOverDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "demo"

[lint]
max_loop_depth = 5
functions = ["summonAssistant"]
types = ["Gadget"]
`)

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("Load failed: %v, %v", ok, err)
	}

	opts := m.LintOptions()
	defaults := validator.DefaultOptions()

	if opts.MaxLoopDepth != 5 {
		t.Fatalf("MaxLoopDepth = %d, want 5", opts.MaxLoopDepth)
	}
	if opts.LargeAllocation != defaults.LargeAllocation {
		t.Fatalf("unset threshold changed: %d", opts.LargeAllocation)
	}
	if len(opts.Functions) != len(defaults.Functions)+1 {
		t.Fatalf("functions not extended: %v", opts.Functions)
	}
	if opts.Functions[len(opts.Functions)-1] != "summonAssistant" {
		t.Fatalf("extra function missing: %v", opts.Functions)
	}
	if opts.Types[len(opts.Types)-1] != "Gadget" {
		t.Fatalf("extra type missing: %v", opts.Types)
	}
}

func TestNilManifestYieldsDefaults(t *testing.T) {
	var m *Manifest
	opts := m.LintOptions()
	defaults := validator.DefaultOptions()
	if opts.MaxLoopDepth != defaults.MaxLoopDepth {
		t.Fatalf("nil manifest changed defaults")
	}
}
