// Package csv implements a strict CSV parser for the pipeline's delimited
// inputs. Unlike lenient ingestion tools it never skips rows: an inconsistent
// field count or a reader error aborts the parse, because silently dropping
// order lines would corrupt downstream aggregates.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"salespipe/internal/parser"
	"salespipe/pkg/records"
)

// Options configures the CSV parser. Zero values give a comma-separated file
// with a header row.
type Options struct {
	// Comma is the field delimiter; ',' when zero.
	Comma rune

	// TrimSpace trims leading/trailing spaces from every field value.
	TrimSpace bool

	// HeaderMap renames source headers to canonical column names after
	// normalization, e.g. {"Colour": "Color"}.
	HeaderMap map[string]string
}

// Parser parses one CSV stream per call. It is stateless and may be reused,
// but is not safe for concurrent use.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse reads the header and all data rows from r. The first row is always
// treated as the header. Every data row must have exactly as many fields as
// the header; a mismatch or any reader error is returned as *parser.ParseError
// with the offending line number.
func (p *Parser) Parse(r io.Reader) ([]string, []records.Record, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	// FieldsPerRecord = 0 makes encoding/csv enforce the header's width on
	// every subsequent record.
	cr.FieldsPerRecord = 0

	h, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, &parser.ParseError{Line: 1, Err: errors.New("empty input: missing header row")}
		}
		return nil, nil, wrapCSVErr(err, 1)
	}
	header := normalizeHeader(h, p.opt.HeaderMap)

	var rows []records.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, wrapCSVErr(err, line)
		}
		rec := make(records.Record, len(header))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[header[i]] = emptyToNil(val)
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

// wrapCSVErr converts an encoding/csv error into *parser.ParseError,
// preferring the reader's own line number when it carries one.
func wrapCSVErr(err error, fallbackLine int) error {
	line := fallbackLine
	var ce *csv.ParseError
	if errors.As(err, &ce) && ce.Line > 0 {
		line = ce.Line
		err = ce.Err
		if errors.Is(err, csv.ErrFieldCount) {
			err = fmt.Errorf("inconsistent field count: %w", csv.ErrFieldCount)
		}
	}
	return &parser.ParseError{Line: line, Err: err}
}

// emptyToNil converts an empty string to nil; other values pass through.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
