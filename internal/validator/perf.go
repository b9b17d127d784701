package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"holoscript/internal/diag"
	"holoscript/internal/source"
)

var allocSizePattern = regexp.MustCompile(`\b` + allocCallName + `\s*\(\s*(\d+)\s*\)`)

// checkPerformance tracks loop nesting with a line-level counter, watches
// for oversized allocations and suggests async/vectorized patterns.
//
// The depth counter is not brace-matched to a specific loop: a line that
// is exactly "}" closes the innermost loop if one is open. Irregular
// formatting can make the depth drift; that imprecision is accepted.
func (v *Validator) checkPerformance(file source.FileID, lines []scanLine, rep *Report) {
	loopDepth := 0
	hasAsyncUsage := false // one-way latch

	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln.text)

		isLoopLine := false
		for _, kw := range loopKeywords {
			if containsWord(ln.text, kw) {
				isLoopLine = true
				break
			}
		}

		if isLoopLine {
			loopDepth++
			if loopDepth > v.opts.MaxLoopDepth {
				rep.add(diag.NewWarning(diag.PerfDeepLoopNesting, ln.lineSpan(file),
					fmt.Sprintf("deeply nested loops (depth %d); consider restructuring", loopDepth)))
			}
			for _, call := range v.opts.ComputeCalls {
				if containsWord(ln.text, call) {
					rep.add(diag.NewInfo(diag.PerfVectorizeLoop, ln.lineSpan(file),
						fmt.Sprintf("loop around '%s' may vectorize; consider a batched call", call)))
					break
				}
			}
		} else if trimmed == "}" && loopDepth > 0 {
			loopDepth--
		}

		if !hasAsyncUsage {
			for _, kw := range asyncKeywords {
				if containsWord(ln.text, kw) {
					hasAsyncUsage = true
					break
				}
			}
		}

		if m := allocSizePattern.FindStringSubmatchIndex(ln.text); m != nil {
			size, err := strconv.Atoi(ln.text[m[2]:m[3]])
			if err == nil && size > v.opts.LargeAllocation {
				rep.add(diag.NewWarning(diag.PerfLargeAllocation,
					ln.span(file, m[0], m[1]-m[0]),
					fmt.Sprintf("allocation of %d cells exceeds the %d-cell budget; allocate in chunks",
						size, v.opts.LargeAllocation)))
			}
		}
	}

	if len(lines) > v.opts.LargeScriptLines && !hasAsyncUsage {
		final := lines[len(lines)-1]
		rep.add(diag.NewInfo(diag.PerfPreferAsync, final.lineSpan(file),
			fmt.Sprintf("script has %d lines and no async usage; consider async patterns for long work",
				len(lines))))
	}
}
