package driver

import (
	"os"
	"path/filepath"
	"testing"

	"holoscript/internal/diag"
	"holoscript/internal/source"
	"holoscript/internal/validator"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestValidateFileReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "broken.holo", "{ \"unterminated\n")

	fs := source.NewFileSet()
	res, err := ValidateFile(fs, path, &Options{})
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if res.Report.Valid {
		t.Fatalf("expected invalid report")
	}
	if len(res.Report.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %+v", res.Report.Errors)
	}
}

func TestValidateFileMissingPath(t *testing.T) {
	fs := source.NewFileSet()
	if _, err := ValidateFile(fs, filepath.Join(t.TempDir(), "absent.holo"), &Options{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNoWarningsPolicy(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "warn.holo", "frobnicate(1);\n")

	fs := source.NewFileSet()
	res, err := ValidateFile(fs, path, &Options{NoWarnings: true})
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if len(res.Report.Warnings) != 0 {
		t.Fatalf("warnings survived NoWarnings: %+v", res.Report.Warnings)
	}
	if !res.Report.Valid {
		t.Fatalf("dropped warnings should leave script valid")
	}
}

func TestWarningsAsErrorsPolicy(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "warn.holo", "frobnicate(1);\n")

	fs := source.NewFileSet()
	res, err := ValidateFile(fs, path, &Options{WarningsAsErrors: true})
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if res.Report.Valid {
		t.Fatalf("promoted warnings should invalidate the script")
	}
	if len(res.Report.Warnings) != 0 {
		t.Fatalf("warnings should be moved, got %+v", res.Report.Warnings)
	}
	for _, d := range res.Report.Errors {
		if d.Severity != diag.SevError {
			t.Fatalf("promoted diagnostic kept severity %v", d.Severity)
		}
	}
}

func TestThresholdOnlyLintOptionsAreHonored(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "loops.holo",
		"while (x) {\nwhile (y) {\nz = 1;\n}\n}\n")

	fs := source.NewFileSet()
	lint := validator.Options{MaxLoopDepth: 1}
	res, err := ValidateFile(fs, path, &Options{Lint: lint})
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}

	found := false
	for _, d := range res.Report.Warnings {
		if d.Code == diag.PerfDeepLoopNesting {
			found = true
		}
	}
	if !found {
		t.Fatalf("MaxLoopDepth=1 was replaced by defaults: %+v", res.Report)
	}
}

func TestMaxDiagnosticsBudget(t *testing.T) {
	dir := t.TempDir()
	// одна ошибка + одна подсказка + одно предупреждение
	path := writeScript(t, dir, "mix.holo", "{ \"open\nfrobnicate(1)\n")

	fs := source.NewFileSet()
	res, err := ValidateFile(fs, path, &Options{MaxDiagnostics: 2})
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if res.Report.Count() != 2 {
		t.Fatalf("budget ignored: %d diagnostics", res.Report.Count())
	}
	// бюджет тратится сначала на ошибки
	if len(res.Report.Errors) != 2 {
		t.Fatalf("errors should be kept first, got %+v", res.Report)
	}
}
