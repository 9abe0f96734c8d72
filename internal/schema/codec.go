package schema

import (
	"fmt"
	"time"

	"salespipe/pkg/records"
)

// EncodeRow flattens a typed record into the ordered primitive values that
// storage backends persist: int64, float64, string, or nil. Booleans become
// 0/1 and dates become DateLayout text so that every backend stores the same
// byte representation and reruns stay byte-identical.
func EncodeRow(fields []Field, rec records.Record) ([]any, error) {
	row := make([]any, len(fields))
	for i, f := range fields {
		v := rec[f.Name]
		if v == nil {
			if !f.Nullable && f.Kind != String {
				return nil, fmt.Errorf("column %s: nil value for non-nullable column", f.Name)
			}
			row[i] = nil
			continue
		}
		switch f.Kind {
		case String:
			s, ok := v.(string)
			if !ok {
				return nil, encodeTypeErr(f, v)
			}
			row[i] = s
		case Int:
			n, ok := rec.Int(f.Name)
			if !ok {
				return nil, encodeTypeErr(f, v)
			}
			row[i] = int64(n)
		case Real:
			x, ok := rec.Float(f.Name)
			if !ok {
				return nil, encodeTypeErr(f, v)
			}
			row[i] = x
		case Bool:
			b, ok := rec.Bool(f.Name)
			if !ok {
				return nil, encodeTypeErr(f, v)
			}
			if b {
				row[i] = int64(1)
			} else {
				row[i] = int64(0)
			}
		case Date, YearMonth:
			t, ok := v.(time.Time)
			if !ok {
				return nil, encodeTypeErr(f, v)
			}
			row[i] = t.Format(DateLayout)
		default:
			return nil, fmt.Errorf("column %s: unknown kind %q", f.Name, f.Kind)
		}
	}
	return row, nil
}

// DecodeRow rebuilds a typed record from primitives read back from storage.
// It accepts the value shapes database/sql drivers commonly produce (int64
// for INTEGER, []byte for TEXT, int64 for whole REAL values).
func DecodeRow(fields []Field, row []any) (records.Record, error) {
	if len(row) != len(fields) {
		return nil, fmt.Errorf("row has %d values, schema has %d columns", len(row), len(fields))
	}
	rec := make(records.Record, len(fields))
	for i, f := range fields {
		v := row[i]
		if v == nil {
			rec[f.Name] = nil
			continue
		}
		switch f.Kind {
		case String:
			s, ok := asString(v)
			if !ok {
				return nil, decodeTypeErr(f, v)
			}
			rec[f.Name] = s
		case Int:
			switch n := v.(type) {
			case int64:
				rec[f.Name] = int(n)
			case int:
				rec[f.Name] = n
			default:
				return nil, decodeTypeErr(f, v)
			}
		case Real:
			switch x := v.(type) {
			case float64:
				rec[f.Name] = x
			case int64:
				rec[f.Name] = float64(x)
			default:
				return nil, decodeTypeErr(f, v)
			}
		case Bool:
			switch b := v.(type) {
			case bool:
				rec[f.Name] = b
			case int64:
				rec[f.Name] = b != 0
			default:
				return nil, decodeTypeErr(f, v)
			}
		case Date, YearMonth:
			s, ok := asString(v)
			if !ok {
				return nil, decodeTypeErr(f, v)
			}
			t, err := time.Parse(DateLayout, s)
			if err != nil {
				return nil, fmt.Errorf("column %s: parse stored date %q: %w", f.Name, s, err)
			}
			rec[f.Name] = t
		default:
			return nil, fmt.Errorf("column %s: unknown kind %q", f.Name, f.Kind)
		}
	}
	return rec, nil
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

func encodeTypeErr(f Field, v any) error {
	return fmt.Errorf("column %s: cannot encode %T as %s", f.Name, v, f.Kind)
}

func decodeTypeErr(f Field, v any) error {
	return fmt.Errorf("column %s: cannot decode stored %T as %s", f.Name, v, f.Kind)
}
