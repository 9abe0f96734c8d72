// Package builtin contains the concrete transformers used by the pipeline:
// strict type coercion and the publish-stage cleanup rules for the product
// master.
package builtin

import (
	"fmt"
	"strconv"
	"time"

	"salespipe/internal/schema"
	"salespipe/pkg/records"
)

// CoercionError reports a raw value that could not be parsed into its target
// semantic type. It carries enough context (dataset, column, value) to
// diagnose the offending source cell.
type CoercionError struct {
	Dataset string
	Column  string
	Value   string
	Kind    schema.Kind
	Err     error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("dataset %s, column %s: cannot coerce %q to %s: %v",
		e.Dataset, e.Column, e.Value, e.Kind, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// Coerce applies a dataset's fixed per-column type map to raw string records.
// Unlike lenient ingestion coercers it never leaves an unparseable value in
// place: the first failure aborts with a *CoercionError. Nil values pass
// through untouched; nullability is not this transform's concern.
type Coerce struct {
	// Dataset names the dataset being coerced, for error context only.
	Dataset string

	// Fields carries the target type per column. Columns absent from the
	// record are ignored.
	Fields []schema.Field
}

// Apply coerces every record in place and returns the same slice.
func (c Coerce) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		for _, f := range c.Fields {
			v, ok := r[f.Name]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				// Already typed (e.g. a rerun over coerced records).
				continue
			}
			parsed, err := parseKind(s, f.Kind)
			if err != nil {
				return nil, &CoercionError{
					Dataset: c.Dataset,
					Column:  f.Name,
					Value:   s,
					Kind:    f.Kind,
					Err:     err,
				}
			}
			r[f.Name] = parsed
		}
	}
	return in, nil
}

// parseKind parses a single raw string into its semantic type. YearMonth
// accepts "2006-01" and yields the first day of that month.
func parseKind(s string, kind schema.Kind) (any, error) {
	switch kind {
	case schema.String:
		return s, nil
	case schema.Int:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		return n, nil
	case schema.Real:
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return x, nil
	case schema.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}
		return b, nil
	case schema.Date:
		t, err := time.Parse(schema.DateLayout, s)
		if err != nil {
			return nil, err
		}
		return t, nil
	case schema.YearMonth:
		t, err := time.Parse(schema.MonthLayout, s)
		if err != nil {
			return nil, err
		}
		// time.Parse of a year-month layout already pins the day to 1.
		return t, nil
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}
