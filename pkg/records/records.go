// Package records defines the generic row representation passed between
// pipeline stages. A Record maps column names to values; untyped stages hold
// strings (or nil for absent values), typed stages hold int, float64, bool,
// or time.Time.
package records

import "time"

// Record is a single tabular row keyed by column name. A nil value means the
// source cell was empty.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the string value for field. ok is false when the field is
// missing, nil, or not a string.
func (r Record) String(field string) (string, bool) {
	s, ok := r[field].(string)
	return s, ok
}

// Int returns the int value for field. Values stored as int64 (the shape
// database/sql drivers return for INTEGER columns) are accepted as well.
func (r Record) Int(field string) (int, bool) {
	switch v := r[field].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// Float returns the float64 value for field.
func (r Record) Float(field string) (float64, bool) {
	switch v := r[field].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Bool returns the bool value for field. Integer 0/1 (how SQLite stores
// booleans) is accepted.
func (r Record) Bool(field string) (bool, bool) {
	switch v := r[field].(type) {
	case bool:
		return v, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	}
	return false, false
}

// Time returns the time.Time value for field.
func (r Record) Time(field string) (time.Time, bool) {
	t, ok := r[field].(time.Time)
	return t, ok
}
