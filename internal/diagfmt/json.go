package diagfmt

import (
	"encoding/json"
	"io"

	"holoscript/internal/diag"
	"holoscript/internal/source"
)

// DiagnosticJSON is one rendered finding.
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Category string `json:"category"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	File     string `json:"file"`
	Line     uint32 `json:"line"`
	Column   uint32 `json:"column"`
}

// ReportJSON is the root structure of JSON output. Buckets mirror the
// validator report: validity depends on errors alone.
type ReportJSON struct {
	Valid       bool             `json:"valid"`
	Errors      []DiagnosticJSON `json:"errors"`
	Warnings    []DiagnosticJSON `json:"warnings"`
	Suggestions []DiagnosticJSON `json:"suggestions"`
	Count       int              `json:"count"`
}

// BuildReport shapes a bag into the JSON structure without serializing.
func BuildReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) ReportJSON {
	out := ReportJSON{
		Errors:      []DiagnosticJSON{},
		Warnings:    []DiagnosticJSON{},
		Suggestions: []DiagnosticJSON{},
	}

	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	for i := 0; i < maxItems; i++ {
		d := items[i]
		file := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)

		dj := DiagnosticJSON{
			Severity: d.Severity.Label(),
			Category: d.Code.Category().String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			File:     file.FormatPath(opts.PathMode.formatArg(), fs.BaseDir()),
			Line:     start.Line,
			Column:   start.Col,
		}
		switch d.Severity {
		case diag.SevError:
			out.Errors = append(out.Errors, dj)
		case diag.SevWarning:
			out.Warnings = append(out.Warnings, dj)
		default:
			out.Suggestions = append(out.Suggestions, dj)
		}
		out.Count++
	}

	out.Valid = len(out.Errors) == 0
	return out
}

// JSON serializes the bag as an indented report.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(bag, fs, opts))
}
