package diag

import (
	"testing"

	"holoscript/internal/source"
)

func TestFormatGolden(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	id := fs.Add("/workspace/scripts/sample.holo", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SemaPluginBeforeCore,
			Message:  "another",
			Primary:  source.Span{File: id, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnclosedBrace,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: id, Start: 0, End: 1},
		},
	}

	expected := "error SYN1001 scripts/sample.holo:1:1 first line second\n" +
		"warning SEM2001 scripts/sample.holo:2:1 another"

	if got := FormatGolden(diags, fs); got != expected {
		t.Fatalf("unexpected golden output:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatGoldenEmpty(t *testing.T) {
	fs := source.NewFileSet()
	if got := FormatGolden(nil, fs); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
