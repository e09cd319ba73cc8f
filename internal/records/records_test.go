package records

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseDelimited(t *testing.T) {
	text := "source,target,year\na,b,2020\nb,c,2021\n"

	recs, err := Parse(text, DefaultOptions())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	want := []string{"source", "target", "year"}
	if got := Fields(recs); !reflect.DeepEqual(got, want) {
		t.Errorf("expected fields %v, got %v", want, got)
	}

	if v, _ := recs[1].Get("target"); v != "c" {
		t.Errorf("expected target c, got %q", v)
	}
}

func TestParseDelimitedMismatchedColumns(t *testing.T) {
	text := "source,target,year\na,b,2020\nb,c\n"

	_, err := Parse(text, DefaultOptions())
	if err == nil {
		t.Fatal("expected error for inconsistent column count")
	}
	if !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Line != 3 {
		t.Errorf("expected line 3, got %d", pe.Line)
	}
}

func TestParseDelimitedPad(t *testing.T) {
	text := "source,target,year\na,b\nb,c,2021,extra\n"

	opts := DefaultOptions()
	opts.Ragged = RaggedPad
	recs, err := Parse(text, opts)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	if _, ok := recs[0].Get("year"); ok {
		t.Error("short row should leave year absent")
	}
	if recs[0].Len() != 3 {
		t.Errorf("short row should still carry 3 fields, got %d", recs[0].Len())
	}
	if recs[1].Len() != 3 {
		t.Errorf("extra cells should be dropped, got %d fields", recs[1].Len())
	}
}

func TestParseDelimitedLeadingWhitespace(t *testing.T) {
	recs, err := Parse("\n  source,target\na,b\n", DefaultOptions())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := Fields(recs); !reflect.DeepEqual(got, []string{"source", "target"}) {
		t.Errorf("expected trimmed header, got %q", got)
	}

	_, err = Parse("\n\nsource,target\na,b\nc\n", DefaultOptions())
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Line != 5 {
		t.Errorf("expected line 5 of the original text, got %d", pe.Line)
	}
}

func TestParseTSV(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatTSV

	recs, err := Parse("from\tto\nx\ty\n", opts)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if v, _ := recs[0].Get("to"); v != "y" {
		t.Errorf("expected y, got %q", v)
	}
}

func TestParseJSON(t *testing.T) {
	text := `  [
	{"target": "b", "source": "a", "year": 2020, "w": 1.5, "ok": true, "note": null},
	{"target": "c", "source": "b", "year": "2021", "tags": ["x", "y"]}
]`

	recs, err := Parse(text, DefaultOptions())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	want := []string{"target", "source", "year", "w", "ok", "note"}
	if got := Fields(recs); !reflect.DeepEqual(got, want) {
		t.Errorf("expected key order %v, got %v", want, got)
	}

	tests := []struct {
		rec   int
		key   string
		value string
		ok    bool
	}{
		{0, "year", "2020", true},
		{0, "w", "1.5", true},
		{0, "ok", "true", true},
		{0, "note", "", false},
		{1, "year", "2021", true},
		{1, "tags", `["x","y"]`, true},
	}

	for _, tt := range tests {
		v, ok := recs[tt.rec].Get(tt.key)
		if v != tt.value || ok != tt.ok {
			t.Errorf("record %d %s: expected (%q, %v), got (%q, %v)", tt.rec, tt.key, tt.value, tt.ok, v, ok)
		}
	}
}

func TestParseJSONMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"syntax", `[{"source": "a",}]`},
		{"unterminated", `[{"source": "a"}`},
		{"not objects", `[1, 2]`},
		{"trailing data", `[{"source": "a"}] x`},
	}

	for _, tt := range tests {
		_, err := Parse(tt.text, DefaultOptions())
		if !errors.Is(err, ErrParse) {
			t.Errorf("%s: expected ErrParse, got %v", tt.name, err)
		}
	}
}

func TestParseJSONRepair(t *testing.T) {
	text := `[{"source": "a", "target": "b",}]`

	opts := DefaultOptions()
	opts.Repair = true
	recs, err := Parse(text, opts)
	if err != nil {
		t.Fatalf("repair parse failed: %v", err)
	}
	if v, _ := recs[0].Get("target"); v != "b" {
		t.Errorf("expected target b, got %q", v)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, text := range []string{"", "   \n", "[]"} {
		recs, err := Parse(text, DefaultOptions())
		if err != nil {
			t.Errorf("%q: unexpected error %v", text, err)
		}
		if len(recs) != 0 {
			t.Errorf("%q: expected no records, got %d", text, len(recs))
		}
		if f := Fields(recs); f == nil || len(f) != 0 {
			t.Errorf("%q: expected empty field set, got %v", text, f)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Get("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
	for _, name := range []string{"", FormatAuto, FormatCSV, FormatTSV, FormatJSON} {
		if _, err := r.Get(name); err != nil {
			t.Errorf("format %q: %v", name, err)
		}
	}

	if Detect("  [ {} ]") != FormatJSON {
		t.Error("expected json detection")
	}
	if Detect("a,b") != FormatCSV {
		t.Error("expected csv detection")
	}
}
