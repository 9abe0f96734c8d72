// Package transformer defines the record transformation contract used between
// pipeline stages. Transforms run strictly: the first record that cannot be
// transformed fails the whole batch, because this is a one-shot pipeline with
// no partial-failure tolerance.
package transformer

import "salespipe/pkg/records"

// Transformer rewrites a batch of records. Implementations may mutate the
// input records in place and return the same slice.
type Transformer interface {
	Apply([]records.Record) ([]records.Record, error)
}

// Chain is an ordered list of transformers applied left to right.
type Chain []Transformer

// Apply runs each transformer in order, stopping at the first error.
func (c Chain) Apply(in []records.Record) ([]records.Record, error) {
	out := in
	var err error
	for _, t := range c {
		out, err = t.Apply(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
