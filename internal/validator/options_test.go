package validator

import "testing"

func TestOptionsIsZero(t *testing.T) {
	if !(Options{}).IsZero() {
		t.Fatal("empty Options must be zero")
	}
	if DefaultOptions().IsZero() {
		t.Fatal("DefaultOptions must not be zero")
	}
	if (Options{MaxLoopDepth: 5}).IsZero() {
		t.Fatal("a set threshold must make Options non-zero")
	}
	if (Options{ComputeCalls: []string{"render"}}).IsZero() {
		t.Fatal("a set whitelist must make Options non-zero")
	}
}
