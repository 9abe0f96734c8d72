// Package storage contains the storage-agnostic contract for the pipeline's
// shared relational store, plus a factory registry that concrete backends
// register themselves with. The rest of the application depends only on this
// package; backend-specific wiring lives in subpackages and is enabled by a
// blank import of storage/all.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind selects the backend implementation, e.g. "sqlite" or "postgres".
	Kind string

	// DSN is the backend connection string. For sqlite this is a file path
	// or ":memory:"; for postgres a pgxpool connection string.
	DSN string
}

// Column describes one column of a table using the pipeline's logical types
// ("string", "int", "real", "bool", "date", "yearmonth"). Backends map these
// onto their own SQL column types.
type Column struct {
	Name     string
	Type     string
	Nullable bool
}

// Repository is the shared store every stage reads from and writes to. The
// pipeline holds exactly one Repository per run and passes it into each stage
// explicitly.
//
// All tables follow full-overwrite semantics: Replace drops and recreates, so
// reruns never accumulate state.
type Repository interface {
	// Replace drops the table if it exists and recreates it with the given
	// columns.
	Replace(ctx context.Context, table string, cols []Column) error

	// InsertRows appends rows (aligned with columns order) to table and
	// returns the number inserted. Values are the primitive shapes produced
	// by schema.EncodeRow: nil, string, int64, float64.
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// SelectAll reads the named columns of every row in table, preserving
	// insertion order.
	SelectAll(ctx context.Context, table string, columns []string) ([][]any, error)

	// Close releases the underlying connection. Safe to call once per run on
	// every exit path.
	Close() error
}

// Factory constructs a Repository from a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs a backend factory under kind. Backends call this from
// their init functions; registering the same kind twice panics, since that is
// always a wiring bug.
func Register(kind string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	if _, dup := factories[kind]; dup {
		panic(fmt.Sprintf("storage: duplicate backend registration for %q", kind))
	}
	factories[kind] = f
}

// New opens a Repository for cfg.Kind using the registered factory.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown backend %q (registered: %v)", cfg.Kind, Kinds())
	}
	return f(ctx, cfg)
}

// Kinds lists the registered backend kinds in sorted order.
func Kinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
