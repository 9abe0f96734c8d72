// Package postgres implements the storage.Repository contract on Postgres
// using pgx v5. Inserts go through the COPY protocol, which is the fastest
// bulk path pgx offers. The pipeline's embedded default is SQLite; this
// backend exists for runs that want the scratch tables inspectable from a
// shared database.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salespipe/internal/storage"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg.DSN)
	})
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository opens a pgx connection pool for dsn and verifies it with a
// ping so invalid DSNs fail at startup rather than mid-run.
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: pool}, nil
}

// Replace drops and recreates table with the given columns. A bigserial
// ordering column is added so SelectAll can preserve insertion order, which
// Postgres does not otherwise guarantee.
func (r *Repository) Replace(ctx context.Context, table string, cols []storage.Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("postgres: replace %s: at least one column required", table)
	}
	if _, err := r.pool.Exec(ctx, "DROP TABLE IF EXISTS "+pgIdent(table)); err != nil {
		return fmt.Errorf("postgres: drop %s: %w", table, err)
	}

	defs := make([]string, 0, len(cols)+1)
	defs = append(defs, pgIdent(orderCol)+" bigserial")
	for _, c := range cols {
		def := pgIdent(c.Name) + " " + mapType(c.Type)
		if !c.Nullable {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}
	create := fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", pgIdent(table), strings.Join(defs, ",\n  "))
	if _, err := r.pool.Exec(ctx, create); err != nil {
		return fmt.Errorf("postgres: create %s: %w", table, err)
	}
	return nil
}

// orderCol preserves insertion order across SelectAll calls. It is never
// exposed to callers.
const orderCol = "__seq"

// InsertRows bulk-loads rows into table via COPY.
func (r *Repository) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("postgres: insert into %s: columns must not be empty", table)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	for _, row := range rows {
		if len(row) != len(columns) {
			return 0, fmt.Errorf("postgres: insert into %s: row length %d != columns length %d", table, len(row), len(columns))
		}
	}
	n, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{table},
		columns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return n, fmt.Errorf("postgres: copy into %s: %w", table, err)
	}
	return n, nil
}

// SelectAll reads the named columns of every row in table in insertion order.
func (r *Repository) SelectAll(ctx context.Context, table string, columns []string) ([][]any, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s",
		strings.Join(mapIdent(columns), ", "),
		pgIdent(table),
		pgIdent(orderCol),
	)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: select from %s: %w", table, err)
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("postgres: scan %s: %w", table, err)
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate %s: %w", table, err)
	}
	return out, nil
}

// Close releases the connection pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// mapType maps a logical column type onto a Postgres type. Booleans are
// stored as smallint 0/1 and dates as ISO-8601 text, matching the codec layer
// so both backends persist identical values.
func mapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "bigint"
	case "bool", "boolean":
		return "smallint"
	case "real", "float", "double":
		return "double precision"
	case "date", "yearmonth", "datetime", "timestamp":
		return "text"
	default:
		return "text"
	}
}

func pgIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func mapIdent(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = pgIdent(id)
	}
	return out
}
