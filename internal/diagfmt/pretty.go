package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"holoscript/internal/diag"
	"holoscript/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	caretColor   = color.New(color.FgGreen)
)

// Pretty renders diagnostics in a human-readable form, one entry per
// diagnostic:
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	    <source line>
//	    ^~~~
//
// The caret underlines the primary span within its first line.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		file := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		path := file.FormatPath(opts.PathMode.formatArg(), fs.BaseDir())

		label := d.Severity.Label()
		if opts.Color {
			label = severityColor(d.Severity).Sprint(label)
		}
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, label, d.Code.ID(), d.Message)

		if opts.ShowSource {
			writeContext(w, file, start, d.Primary, opts.Color)
		}
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func writeContext(w io.Writer, file *source.File, start source.LineCol, span source.Span, colored bool) {
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	// подчёркиваем только в пределах первой строки span'а
	width := int(span.Len())
	maxWidth := len(line) - int(start.Col) + 1
	if width > maxWidth {
		width = maxWidth
	}
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if colored {
		marker = caretColor.Sprint(marker)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", int(start.Col)-1), marker)
}

// Short renders the grep-friendly one-line format shared with golden
// comparisons: "<severity> <CODE> <path>:<line>:<col> <message>".
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	out := diag.FormatGolden(bag.Items(), fs)
	if out == "" {
		return
	}
	fmt.Fprintln(w, out)
}
