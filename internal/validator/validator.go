// Package validator implements the heuristic HoloScript checks: a syntax
// pass (balance and call scanning), a semantic pass (lifecycle ordering)
// and a performance pass (nesting, allocation and async heuristics).
//
// The passes are deliberately not a parser: they scan raw lines and bytes,
// tolerate any input without panicking, and re-derive what they need from
// the text on every call. Known limitations (template braces inside
// strings, loop-depth drift on irregular formatting, the count-difference
// leak estimate) are part of the contract.
package validator

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"holoscript/internal/diag"
	"holoscript/internal/source"
)

// Validator runs the three passes over a script. It keeps no state between
// calls; every counter and latch is local to one Validate invocation, so a
// single Validator is safe to share across goroutines.
type Validator struct {
	opts      Options
	keywords  map[string]struct{}
	functions map[string]struct{}
	types     map[string]struct{}
}

// New builds a Validator for the given options.
func New(opts Options) *Validator {
	return &Validator{
		opts:      opts,
		keywords:  toSet(opts.Keywords),
		functions: toSet(opts.Functions),
		types:     toSet(opts.Types),
	}
}

// Default returns a Validator with DefaultOptions.
func Default() *Validator {
	return New(DefaultOptions())
}

// Validate runs all passes in fixed order and aggregates the result.
// It accepts any input, including empty or binary content, and never
// panics; the worst case is an empty report.
func (v *Validator) Validate(file *source.File) *Report {
	rep := &Report{}
	lines := splitLines(file)

	v.checkSyntax(file.ID, lines, rep)
	v.checkSemantics(file.ID, lines, rep)
	v.checkPerformance(file.ID, lines, rep)

	rep.Valid = len(rep.Errors) == 0
	return rep
}

// ValidateAsync is a scheduling convenience for callers that expect a
// future-returning API. The work happens synchronously on the calling
// goroutine; the returned channel already holds the result.
func (v *Validator) ValidateAsync(file *source.File) <-chan *Report {
	ch := make(chan *Report, 1)
	ch <- v.Validate(file)
	close(ch)
	return ch
}

// ValidateSource validates an in-memory script with default options.
func ValidateSource(src string) *Report {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<memory>", []byte(src))
	return Default().Validate(fs.Get(id))
}

// Report is the aggregate result of one Validate call. The three buckets
// preserve append order; Valid is true iff Errors is empty (warnings and
// suggestions never affect validity).
type Report struct {
	Valid       bool
	Errors      []diag.Diagnostic
	Warnings    []diag.Diagnostic
	Suggestions []diag.Diagnostic
}

// add routes a diagnostic into its bucket by severity.
func (r *Report) add(d diag.Diagnostic) {
	switch d.Severity {
	case diag.SevError:
		r.Errors = append(r.Errors, d)
	case diag.SevWarning:
		r.Warnings = append(r.Warnings, d)
	default:
		r.Suggestions = append(r.Suggestions, d)
	}
}

// Count returns the total number of diagnostics across all buckets.
func (r *Report) Count() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Suggestions)
}

// Bag flattens the report into a diag.Bag, errors first, then warnings,
// then suggestions, preserving append order inside each bucket.
func (r *Report) Bag() *diag.Bag {
	bag := diag.NewBag(r.Count())
	for _, d := range r.Errors {
		bag.Add(d)
	}
	for _, d := range r.Warnings {
		bag.Add(d)
	}
	for _, d := range r.Suggestions {
		bag.Add(d)
	}
	return bag
}

// scanLine is one raw source line with its byte offset; passes share the
// slice but never mutate it.
type scanLine struct {
	text  string
	start uint32 // byte offset of the first character
	num   uint32 // 1-based
}

func splitLines(file *source.File) []scanLine {
	raw := strings.Split(string(file.Content), "\n")
	lines := make([]scanLine, len(raw))
	off := uint32(0)
	for i, text := range raw {
		num, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			panic(fmt.Errorf("line number overflow: %w", err))
		}
		lineLen, err := safecast.Conv[uint32](len(text))
		if err != nil {
			panic(fmt.Errorf("line length overflow: %w", err))
		}
		lines[i] = scanLine{text: text, start: off, num: num}
		off += lineLen + 1 // +1 за '\n'
	}
	return lines
}

// span returns the byte span of a substring of the line.
func (ln scanLine) span(file source.FileID, col, length int) source.Span {
	start := ln.start + uint32(col)
	return source.Span{File: file, Start: start, End: start + uint32(length)}
}

// lineSpan covers the whole line (empty lines get a zero-length span at
// the line start).
func (ln scanLine) lineSpan(file source.FileID) source.Span {
	return source.Span{File: file, Start: ln.start, End: ln.start + uint32(len(ln.text))}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

// containsWord reports whether word occurs in text with non-identifier
// characters (or the text edge) on both sides.
func containsWord(text, word string) bool {
	return indexWord(text, word) >= 0
}

// indexWord returns the offset of the first whole-word occurrence of word
// in text, or -1.
func indexWord(text, word string) int {
	from := 0
	for {
		i := strings.Index(text[from:], word)
		if i < 0 {
			return -1
		}
		i += from
		before := i == 0 || !isIdentByte(text[i-1])
		afterIdx := i + len(word)
		after := afterIdx >= len(text) || !isIdentByte(text[afterIdx])
		if before && after {
			return i
		}
		from = i + len(word)
		if from >= len(text) {
			return -1
		}
	}
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
