// Package sqlite implements the storage.Repository contract on an embedded
// SQLite database via database/sql. SQLite has no bulk-load API like Postgres
// COPY, so inserts are batched inside a single transaction, which keeps the
// pipeline's moderate volumes fast enough.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure-Go driver, registered as "sqlite"

	"salespipe/internal/storage"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg.DSN)
	})
}

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// NewRepository opens a SQLite database at dsn. The DSN is passed through to
// database/sql, so both plain paths ("salespipe.db") and URI forms
// ("file:salespipe.db?cache=shared") work, as does ":memory:".
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls and
	// sidesteps SQLITE_BUSY between the pipeline's sequential statements.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &Repository{db: db}, nil
}

// Replace drops and recreates table with the given columns.
func (r *Repository) Replace(ctx context.Context, table string, cols []storage.Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("sqlite: replace %s: at least one column required", table)
	}
	if _, err := r.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
		return fmt.Errorf("sqlite: drop %s: %w", table, err)
	}

	defs := make([]string, len(cols))
	for i, c := range cols {
		def := quoteIdent(c.Name) + " " + mapType(c.Type)
		if !c.Nullable {
			// Raw and typed tables both tolerate NULLs for nullable source
			// cells; only structurally non-null columns get the constraint.
			def += " NOT NULL"
		}
		defs[i] = def
	}
	create := fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", quoteIdent(table), strings.Join(defs, ",\n  "))
	if _, err := r.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("sqlite: create %s: %w", table, err)
	}
	return nil
}

// InsertRows appends rows to table inside one transaction using a prepared
// statement. Either every row is inserted or none are.
func (r *Repository) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: insert into %s: columns must not be empty", table)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table),
		strings.Join(mapIdent(columns), ", "),
		strings.Join(placeholders, ", "),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			_ = tx.Rollback()
			return 0, fmt.Errorf("sqlite: insert into %s: row length %d != columns length %d", table, len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("sqlite: insert into %s: %w", table, err)
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, nil
}

// SelectAll reads the named columns of every row in table in insertion
// (rowid) order.
func (r *Repository) SelectAll(ctx context.Context, table string, columns []string) ([][]any, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY rowid",
		strings.Join(mapIdent(columns), ", "),
		quoteIdent(table),
	)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: select from %s: %w", table, err)
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		vals := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlite: scan %s: %w", table, err)
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate %s: %w", table, err)
	}
	return out, nil
}

// Close releases the database handle.
func (r *Repository) Close() error { return r.db.Close() }

// mapType maps a logical column type onto a SQLite affinity. Booleans are
// stored as 0/1 and dates as ISO-8601 text, matching the codec layer.
func mapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "INTEGER"
	case "bool", "boolean":
		return "INTEGER"
	case "real", "float", "double":
		return "REAL"
	case "date", "yearmonth", "datetime", "timestamp":
		return "TEXT"
	default:
		return "TEXT"
	}
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func mapIdent(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = quoteIdent(id)
	}
	return out
}
