package diag

import (
	"fmt"
)

// Code is a stable numeric identifier for one kind of finding.
// Ranges encode the category: 1000s syntax, 2000s semantic, 3000s performance.
type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Синтаксические
	SynInfo               Code = 1000
	SynUnclosedBrace      Code = 1001
	SynExtraClosingBrace  Code = 1002
	SynUnclosedParen      Code = 1003
	SynExtraClosingParen  Code = 1004
	SynUnterminatedString Code = 1005
	SynMissingTerminator  Code = 1006
	SynUnknownFunction    Code = 1007
	SynUnknownType        Code = 1008

	// Семантические
	SemaInfo               Code = 2000
	SemaPluginBeforeCore   Code = 2001
	SemaCoreNotInitialized Code = 2002
	SemaMemoryLeak         Code = 2003
	SemaDeprecatedVar      Code = 2004

	// Производительность
	PerfInfo            Code = 3000
	PerfDeepLoopNesting Code = 3001
	PerfLargeAllocation Code = 3002
	PerfVectorizeLoop   Code = 3003
	PerfPreferAsync     Code = 3004
)

// Category groups codes the way the report buckets them for users.
type Category uint8

const (
	CategorySyntax Category = iota
	CategorySemantic
	CategoryPerformance
	CategoryUnknown
)

func (cat Category) String() string {
	switch cat {
	case CategorySyntax:
		return "syntax"
	case CategorySemantic:
		return "semantic"
	case CategoryPerformance:
		return "performance"
	}
	return "unknown"
}

var codeDescription = map[Code]string{
	UnknownCode:            "unknown diagnostic",
	SynInfo:                "syntax note",
	SynUnclosedBrace:       "missing closing brace",
	SynExtraClosingBrace:   "extra closing brace",
	SynUnclosedParen:       "missing closing parenthesis",
	SynExtraClosingParen:   "extra closing parenthesis",
	SynUnterminatedString:  "unterminated string literal",
	SynMissingTerminator:   "statement without terminator",
	SynUnknownFunction:     "call to unrecognized function",
	SynUnknownType:         "constructor of unrecognized type",
	SemaInfo:               "semantic note",
	SemaPluginBeforeCore:   "plugin loaded before core initialization",
	SemaCoreNotInitialized: "framework features used without core",
	SemaMemoryLeak:         "allocations outnumber deallocations",
	SemaDeprecatedVar:      "deprecated declaration keyword",
	PerfInfo:               "performance note",
	PerfDeepLoopNesting:    "deeply nested loops",
	PerfLargeAllocation:    "oversized allocation",
	PerfVectorizeLoop:      "loop is a vectorization candidate",
	PerfPreferAsync:        "large script without async patterns",
}

// Category derives the diagnostic category from the code range.
func (c Code) Category() Category {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return CategorySyntax
	case ic >= 2000 && ic < 3000:
		return CategorySemantic
	case ic >= 3000 && ic < 4000:
		return CategoryPerformance
	}
	return CategoryUnknown
}

// ID returns the stable string form, e.g. "SYN1001".
func (c Code) ID() string {
	switch c.Category() {
	case CategorySyntax:
		return fmt.Sprintf("SYN%04d", int(c))
	case CategorySemantic:
		return fmt.Sprintf("SEM%04d", int(c))
	case CategoryPerformance:
		return fmt.Sprintf("PERF%04d", int(c))
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
