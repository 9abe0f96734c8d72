package csv

import (
	"errors"
	"strings"
	"testing"

	"salespipe/internal/parser"
)

func TestParseBasic(t *testing.T) {
	in := "ProductID,Color\n1,Black\n2,\n"
	header, rows, err := NewParser(Options{TrimSpace: true}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(header) != 2 || header[0] != "ProductID" || header[1] != "Color" {
		t.Fatalf("header = %#v", header)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if v, ok := rows[0].String("Color"); !ok || v != "Black" {
		t.Fatalf("rows[0][Color] = %#v", rows[0]["Color"])
	}
	if rows[1]["Color"] != nil {
		t.Fatalf("empty cell should be nil, got %#v", rows[1]["Color"])
	}
}

func TestParseInconsistentWidth(t *testing.T) {
	in := "a,b\n1,2\n1,2,3\n"
	_, _, err := NewParser(Options{}).Parse(strings.NewReader(in))
	if err == nil {
		t.Fatalf("expected error for inconsistent field count")
	}
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error should be *parser.ParseError, got %T: %v", err, err)
	}
	if pe.Line != 3 {
		t.Fatalf("ParseError.Line = %d, want 3", pe.Line)
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, _, err := NewParser(Options{}).Parse(strings.NewReader(""))
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("empty input should yield *parser.ParseError, got %v", err)
	}
}

func TestParseHeaderNormalization(t *testing.T) {
	// BOM on the first cell, no-break space padding, and a HeaderMap rename.
	in := "\uFEFFProductID,\u00A0Colour\u00A0\n1,Red\n"
	header, rows, err := NewParser(Options{
		HeaderMap: map[string]string{"Colour": "Color"},
	}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if header[0] != "ProductID" {
		t.Fatalf("BOM not stripped: %q", header[0])
	}
	if header[1] != "Color" {
		t.Fatalf("header not normalized/renamed: %q", header[1])
	}
	if v, _ := rows[0].String("Color"); v != "Red" {
		t.Fatalf("row keyed by canonical header, got %#v", rows[0])
	}
}

func TestParseCustomDelimiter(t *testing.T) {
	in := "a;b\n1;2\n"
	header, rows, err := NewParser(Options{Comma: ';'}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(header) != 2 || len(rows) != 1 {
		t.Fatalf("header=%v rows=%d", header, len(rows))
	}
}
