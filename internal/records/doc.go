// Package records turns raw input text into uniform key/value records.
//
// Two input shapes are understood:
//
//   - a JSON list of flat objects, detected when the trimmed text starts with '['
//   - delimited text (CSV or TSV) whose first row names the fields
//
// Values are kept as strings. The first record's keys are the canonical field
// set used for role selection, see [Fields].
package records
