package main

import (
	"fmt"
	"os"
)

// uiFlag picks whether directory runs get the interactive progress view.
// It implements pflag.Value, so cobra rejects bad values at parse time.
type uiFlag int

const (
	uiAuto uiFlag = iota
	uiAlways
	uiNever
)

func (f *uiFlag) String() string {
	switch *f {
	case uiAlways:
		return "on"
	case uiNever:
		return "off"
	}
	return "auto"
}

func (f *uiFlag) Set(value string) error {
	switch value {
	case "", "auto":
		*f = uiAuto
	case "on":
		*f = uiAlways
	case "off":
		*f = uiNever
	default:
		return fmt.Errorf("must be auto, on or off (got %q)", value)
	}
	return nil
}

func (f *uiFlag) Type() string {
	return "string"
}

// enabled resolves auto against the terminal state of stdout.
func (f uiFlag) enabled() bool {
	switch f {
	case uiAlways:
		return true
	case uiNever:
		return false
	}
	return isTerminal(os.Stdout)
}
