package records

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ParseDelimited parses text with a header row followed by one record per row.
func ParseDelimited(text string, opts Options) ([]Record, error) {
	format := FormatCSV
	if opts.Delimiter == '\t' {
		format = FormatTSV
	}
	text = strings.TrimPrefix(text, "\ufeff")
	trimmed := strings.TrimLeft(text, " \t\r\n")
	skipped := strings.Count(text[:len(text)-len(trimmed)], "\n")
	text = trimmed
	if strings.TrimSpace(text) == "" {
		return []Record{}, nil
	}

	reader := csv.NewReader(strings.NewReader(text))
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Ragged == RaggedPad {
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
	}

	header, err := reader.Read()
	if err != nil {
		return nil, wrapCSVError(format, skipped, err)
	}

	recs := make([]Record, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError(format, skipped, err)
		}

		rec := NewRecord()
		for i, name := range header {
			if i < len(row) {
				rec.Set(name, row[i])
			} else {
				rec.declare(name)
			}
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

// wrapCSVError reports lines of the untrimmed input; skipped is the number of
// leading blank lines removed before parsing.
func wrapCSVError(format string, skipped int, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Format: format, Line: pe.Line + skipped, Wrapped: pe.Err}
	}
	return &ParseError{Format: format, Wrapped: err}
}
