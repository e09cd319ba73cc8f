package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseJSON parses a JSON list of flat objects, keeping each object's key order.
func ParseJSON(text string, opts Options) ([]Record, error) {
	if opts.Repair {
		repaired, err := jsonrepair.JSONRepair(text)
		if err != nil {
			return nil, &ParseError{Format: FormatJSON, Wrapped: fmt.Errorf("json repair failed: %w", err)}
		}
		text = repaired
	}

	dec := json.NewDecoder(strings.NewReader(text))
	fail := func(err error) error {
		return &ParseError{Format: FormatJSON, Line: lineAt(text, dec.InputOffset()), Wrapped: err}
	}

	if err := expectDelim(dec, '['); err != nil {
		return nil, fail(err)
	}

	recs := make([]Record, 0)
	for dec.More() {
		rec, err := decodeObject(dec)
		if err != nil {
			return nil, fail(fmt.Errorf("record %d: %w", len(recs), err))
		}
		recs = append(recs, rec)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, fail(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fail(errors.New("unexpected data after list"))
	}

	return recs, nil
}

func decodeObject(dec *json.Decoder) (Record, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return Record{}, err
	}

	rec := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Record{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Record{}, fmt.Errorf("expected field name, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Record{}, err
		}

		value, present, err := scalar(raw)
		if err != nil {
			return Record{}, fmt.Errorf("field %q: %w", key, err)
		}
		if present {
			rec.Set(key, value)
		} else {
			rec.declare(key)
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// scalar renders a raw JSON value as a string. Nested values keep their
// compact JSON text; null reports absent.
func scalar(raw json.RawMessage) (string, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false, errors.New("empty value")
	}

	switch raw[0] {
	case 'n':
		return "", false, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", false, err
		}
		return buf.String(), true, nil
	default:
		// numbers and booleans keep their literal text
		return string(raw), true, nil
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return fmt.Errorf("expected %q, got end of input", want)
		}
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func lineAt(text string, offset int64) int {
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}
	return strings.Count(text[:offset], "\n") + 1
}
