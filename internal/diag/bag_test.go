package diag

import (
	"testing"

	"holoscript/internal/source"
)

func TestBagRespectsLimit(t *testing.T) {
	bag := NewBag(2)
	sp := source.Span{File: 0, Start: 0, End: 1}

	if !bag.Add(NewWarning(SynUnknownFunction, sp, "one")) {
		t.Fatalf("first Add rejected")
	}
	if !bag.Add(NewWarning(SynUnknownFunction, sp, "two")) {
		t.Fatalf("second Add rejected")
	}
	if bag.Add(NewWarning(SynUnknownFunction, sp, "three")) {
		t.Fatalf("Add over limit accepted")
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bag.Len())
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	bag := NewBag(10)
	sp := source.Span{File: 0, Start: 0, End: 1}

	bag.Add(NewInfo(SemaDeprecatedVar, sp, "hint"))
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatalf("info-only bag reports errors/warnings")
	}

	bag.Add(NewWarning(SemaPluginBeforeCore, sp, "warn"))
	if bag.HasErrors() {
		t.Fatalf("warning promoted to error")
	}
	if !bag.HasWarnings() {
		t.Fatalf("warning not detected")
	}

	bag.Add(NewError(SynUnclosedBrace, sp, "err"))
	if !bag.HasErrors() {
		t.Fatalf("error not detected")
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewWarning(SynUnknownFunction, source.Span{File: 1, Start: 5, End: 6}, "b"))
	bag.Add(NewError(SynUnclosedBrace, source.Span{File: 0, Start: 9, End: 10}, "c"))
	bag.Add(NewInfo(SynMissingTerminator, source.Span{File: 0, Start: 2, End: 3}, "a"))
	bag.Sort()

	items := bag.Items()
	if items[0].Message != "a" || items[1].Message != "c" || items[2].Message != "b" {
		t.Fatalf("unexpected sort order: %+v", items)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	sp := source.Span{File: 0, Start: 0, End: 4}
	bag.Add(NewWarning(SynUnknownFunction, sp, "dup"))
	bag.Add(NewWarning(SynUnknownFunction, sp, "dup"))
	bag.Add(NewWarning(SynUnknownFunction, sp, "other"))
	bag.Dedup()

	if bag.Len() != 2 {
		t.Fatalf("expected 2 after dedup, got %d", bag.Len())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	b := NewBag(2)
	sp := source.Span{}
	a.Add(NewInfo(PerfPreferAsync, sp, "x"))
	b.Add(NewInfo(PerfPreferAsync, sp, "y"))
	b.Add(NewInfo(PerfPreferAsync, sp, "z"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("expected merged length 3, got %d", a.Len())
	}
	if a.Cap() < 3 {
		t.Fatalf("merge did not grow limit: %d", a.Cap())
	}
}

func TestCodeCategoryAndID(t *testing.T) {
	cases := []struct {
		code Code
		cat  Category
		id   string
	}{
		{SynUnclosedBrace, CategorySyntax, "SYN1001"},
		{SemaMemoryLeak, CategorySemantic, "SEM2003"},
		{PerfDeepLoopNesting, CategoryPerformance, "PERF3001"},
		{UnknownCode, CategoryUnknown, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.Category(); got != tc.cat {
			t.Fatalf("%d Category = %v, want %v", tc.code, got, tc.cat)
		}
		if got := tc.code.ID(); got != tc.id {
			t.Fatalf("%d ID = %q, want %q", tc.code, got, tc.id)
		}
	}
}
