// Package output provides deterministic encoding for nodelens reports.
//
// Identical inspections produce byte-identical JSON and YAML, which keeps
// watch-mode output diffable and lets tests compare rendered reports.
//
// # Encoding Rules
//
//  1. Stable key ordering: object keys are sorted alphabetically
//  2. Float formatting: rounded to at most 6 decimal places
//  3. Not-a-number: NaN and infinite values are treated as absent
//  4. Null handling: nil fields and empty collections are omitted
//
// Metric values use NaN for "not applicable". JSON cannot carry NaN, so
// such values disappear from encoded output and FormatMetric renders them
// as "n/a" in human output.
package output
