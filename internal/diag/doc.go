// Package diag defines the diagnostic model shared by the validator passes,
// the driver and the output formatters.
//
// Diagnostic is the central record: severity, stable numeric code, message
// and a primary source.Span. Codes live in fixed ranges per category
// (1000s syntax, 2000s semantic, 3000s performance) so a diagnostic's
// category is derived from its code and never stored separately.
//
// Producers emit through the Reporter interface; BagReporter collects into
// a Bag, which supports ordering, deduplication and merging across files.
// The package performs no formatting and no IO — rendering lives in
// internal/diagfmt, orchestration in internal/driver.
package diag
