// Package datasource abstracts where input datasets are read from. The
// pipeline only ever sees an io.ReadCloser; concrete sources live in
// subpackages.
package datasource

import (
	"context"
	"io"
)

// Source opens a single input dataset for reading.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
