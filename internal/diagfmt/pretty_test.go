package diagfmt

import (
	"strings"
	"testing"

	"holoscript/internal/diag"
	"holoscript/internal/source"
	"holoscript/internal/validator"
)

func sampleBag(t *testing.T, src string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("sample.holo", []byte(src))
	rep := validator.Default().Validate(fs.Get(id))
	return rep.Bag(), fs
}

func TestPrettyBasicShape(t *testing.T) {
	bag, fs := sampleBag(t, "frobnicate(1);\n")

	var b strings.Builder
	Pretty(&b, bag, fs, PrettyOpts{ShowSource: true})
	out := b.String()

	if !strings.Contains(out, "sample.holo:1:1: warning SYN1007:") {
		t.Fatalf("missing header line:\n%s", out)
	}
	if !strings.Contains(out, "frobnicate(1);") {
		t.Fatalf("missing source context:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~~~~~~") {
		t.Fatalf("missing caret underline:\n%s", out)
	}
}

func TestPrettyWithoutSource(t *testing.T) {
	bag, fs := sampleBag(t, "frobnicate(1);\n")

	var b strings.Builder
	Pretty(&b, bag, fs, PrettyOpts{})
	out := b.String()

	if strings.Count(out, "\n") != bag.Len() {
		t.Fatalf("expected one line per diagnostic:\n%s", out)
	}
}

func TestShortFormat(t *testing.T) {
	bag, fs := sampleBag(t, "}\n")

	var b strings.Builder
	Short(&b, bag, fs)
	out := strings.TrimSpace(b.String())

	if !strings.HasPrefix(out, "error SYN1002 ") {
		t.Fatalf("unexpected short format: %q", out)
	}
}

func TestShortEmptyBagPrintsNothing(t *testing.T) {
	bag, fs := sampleBag(t, "print(\"ok\");\n")
	var b strings.Builder
	Short(&b, bag, fs)
	if b.Len() != 0 {
		t.Fatalf("expected empty output, got %q", b.String())
	}
}
