package validator

import (
	"fmt"
	"regexp"
	"strings"

	"holoscript/internal/diag"
	"holoscript/internal/source"
)

// identifier immediately followed by '('
var callPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\(`)

// checkSyntax scans characters for balanced braces, parentheses and string
// literals, and lines for terminator and unknown-call heuristics. Counters
// freeze inside string literals; a backslash escapes the next quote.
// Balance errors are reported against the last non-empty line, since no
// better position is known.
func (v *Validator) checkSyntax(file source.FileID, lines []scanLine, rep *Report) {
	braceCount := 0
	parenCount := 0
	inString := false
	var stringDelim byte

	var last scanLine
	sawContent := false

	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln.text)
		if trimmed == "" || strings.HasPrefix(trimmed, commentMarker) {
			continue
		}
		last = ln
		sawContent = true

		var prev byte
		for i := 0; i < len(ln.text); i++ {
			ch := ln.text[i]
			switch {
			case ch == '"' || ch == '\'':
				if inString {
					if ch == stringDelim && prev != '\\' {
						inString = false
					}
				} else {
					inString = true
					stringDelim = ch
				}
			case inString:
				// внутри строки скобки не считаем
			case ch == '{':
				braceCount++
			case ch == '}':
				braceCount--
			case ch == '(':
				parenCount++
			case ch == ')':
				parenCount--
			}
			prev = ch
		}

		v.checkTerminator(file, ln, trimmed, rep)
		v.checkCalls(file, ln, rep)
	}

	if !sawContent {
		return
	}

	eof := last.lineSpan(file)
	switch {
	case braceCount > 0:
		rep.add(diag.NewError(diag.SynUnclosedBrace, eof,
			fmt.Sprintf("missing %d closing brace(s)", braceCount)))
	case braceCount < 0:
		rep.add(diag.NewError(diag.SynExtraClosingBrace, eof,
			fmt.Sprintf("%d extra closing brace(s)", -braceCount)))
	}
	switch {
	case parenCount > 0:
		rep.add(diag.NewError(diag.SynUnclosedParen, eof,
			fmt.Sprintf("missing %d closing parenthesis(es)", parenCount)))
	case parenCount < 0:
		rep.add(diag.NewError(diag.SynExtraClosingParen, eof,
			fmt.Sprintf("%d extra closing parenthesis(es)", -parenCount)))
	}
	if inString {
		rep.add(diag.NewError(diag.SynUnterminatedString, eof,
			fmt.Sprintf("unterminated string literal (opened with %c)", stringDelim)))
	}
}

// checkTerminator flags non-empty lines that neither end in a structural
// character nor belong to a header keyword.
func (v *Validator) checkTerminator(file source.FileID, ln scanLine, trimmed string, rep *Report) {
	switch trimmed[len(trimmed)-1] {
	case '{', '}', ';':
		return
	}
	for _, kw := range terminatorExempt {
		if containsWord(trimmed, kw) {
			return
		}
	}
	rep.add(diag.NewInfo(diag.SynMissingTerminator, ln.span(file, len(ln.text), 0),
		"consider terminating the statement with ';'"))
}

// checkCalls extracts every identifier followed by '(' and warns about the
// ones outside the whitelist. Constructor calls (`new T(...)`) are exempt,
// but an unrecognized constructed type gets its own warning.
func (v *Validator) checkCalls(file source.FileID, ln scanLine, rep *Report) {
	for _, m := range callPattern.FindAllStringSubmatchIndex(ln.text, -1) {
		start, end := m[2], m[3]
		name := ln.text[start:end]
		sp := ln.span(file, start, end-start)

		if precededByNew(ln.text, start) {
			if _, ok := v.types[name]; !ok {
				rep.add(diag.NewWarning(diag.SynUnknownType, sp,
					fmt.Sprintf("type '%s' is not recognized", name)))
			}
			continue
		}
		if _, ok := v.keywords[name]; ok {
			continue
		}
		if _, ok := v.functions[name]; ok {
			continue
		}
		rep.add(diag.NewWarning(diag.SynUnknownFunction, sp,
			fmt.Sprintf("function '%s' is not recognized", name)))
	}
}

// precededByNew reports whether the identifier at idx follows the `new`
// keyword (possibly separated by spaces or tabs).
func precededByNew(text string, idx int) bool {
	j := idx - 1
	for j >= 0 && (text[j] == ' ' || text[j] == '\t') {
		j--
	}
	if j < 2 || text[j-2:j+1] != "new" {
		return false
	}
	return j-3 < 0 || !isIdentByte(text[j-3])
}
