package validator

import (
	"fmt"
	"regexp"

	"holoscript/internal/diag"
	"holoscript/internal/source"
)

var (
	corePattern    = regexp.MustCompile(`\bnew\s+` + coreTypeName + `\s*\(`)
	pluginPattern  = regexp.MustCompile(`\b` + pluginLoad + `\s*\(`)
	allocPattern   = regexp.MustCompile(`\b` + allocCallName + `\s*\(`)
	freePattern    = regexp.MustCompile(`\b` + freeCallName + `\s*\(`)
	varDeclPattern = regexp.MustCompile(`\b` + deprecatedDecl + `\s+[A-Za-z_]`)
)

// checkSemantics scans lines in source order for lifecycle misuse: the
// core-before-plugins ordering, deprecated declarations, and the coarse
// allocation/deallocation balance. All findings are warnings or
// suggestions; semantic misuse never blocks validity.
func (v *Validator) checkSemantics(file source.FileID, lines []scanLine, rep *Report) {
	coreInitialized := false // one-way latch
	var allocations []uint32
	var deallocations []uint32
	frameworkLine := -1

	for i, ln := range lines {
		if corePattern.MatchString(ln.text) {
			coreInitialized = true
		}

		if loc := allocPattern.FindStringIndex(ln.text); loc != nil {
			allocations = append(allocations, ln.num)
		}
		if loc := freePattern.FindStringIndex(ln.text); loc != nil {
			deallocations = append(deallocations, ln.num)
		}

		if loc := pluginPattern.FindStringIndex(ln.text); loc != nil && !coreInitialized {
			rep.add(diag.NewWarning(diag.SemaPluginBeforeCore,
				ln.span(file, loc[0], loc[1]-loc[0]),
				"loading a plugin before the core is initialized"))
		}

		if loc := varDeclPattern.FindStringIndex(ln.text); loc != nil {
			rep.add(diag.NewInfo(diag.SemaDeprecatedVar,
				ln.span(file, loc[0], len(deprecatedDecl)),
				fmt.Sprintf("'%s' is deprecated, use '%s'", deprecatedDecl, modernDecl)))
		}

		if frameworkLine < 0 {
			for _, call := range v.opts.FrameworkCalls {
				if containsWord(ln.text, call) {
					frameworkLine = i
					break
				}
			}
		}
	}

	if frameworkLine >= 0 && !coreInitialized {
		rep.add(diag.NewWarning(diag.SemaCoreNotInitialized,
			lines[frameworkLine].lineSpan(file),
			fmt.Sprintf("using framework features without constructing %s", coreTypeName)))
	}

	if leak := len(allocations) - len(deallocations); leak > 0 {
		final := lines[len(lines)-1]
		rep.add(diag.NewWarning(diag.SemaMemoryLeak, final.lineSpan(file),
			fmt.Sprintf("possible memory leak: %d allocation(s) without a matching %s", leak, freeCallName)))
	}
}
