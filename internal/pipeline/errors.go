package pipeline

import "fmt"

// SourceNotFoundError reports a missing input file. It wraps the underlying
// filesystem error so errors.Is(err, os.ErrNotExist) still holds.
type SourceNotFoundError struct {
	Dataset string
	Path    string
	Err     error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("dataset %s: source file not found: %s", e.Dataset, e.Path)
}

func (e *SourceNotFoundError) Unwrap() error { return e.Err }

// JoinIntegrityError reports an order line referencing a missing header or
// product. It is only raised in strict-joins mode; the default inner-join
// semantics silently drop unmatched lines.
type JoinIntegrityError struct {
	// Table names the referenced side that had no match.
	Table string
	// Key is the foreign key column, Value the missing id.
	Key   string
	Value int
}

func (e *JoinIntegrityError) Error() string {
	return fmt.Sprintf("order line references %s.%s=%d which does not exist", e.Table, e.Key, e.Value)
}

// EmptyDatasetError reports an aggregation requested over a table with zero
// rows.
type EmptyDatasetError struct {
	Table string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("table %s has no rows to aggregate", e.Table)
}
