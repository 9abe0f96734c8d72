// Package parser defines the contract between raw input bytes and tabular
// records, plus the error type shared by parser implementations.
package parser

import (
	"fmt"
	"io"

	"salespipe/pkg/records"
)

// Parser turns raw input into an ordered header plus one Record per data row.
// Implementations are strict: any malformed row fails the whole parse, since
// the pipeline is a one-shot batch job with no partial-failure tolerance.
type Parser interface {
	Parse(r io.Reader) (header []string, rows []records.Record, err error)
}

// ParseError reports a malformed input row. Line is 1-based and counts the
// header row when one is present.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
