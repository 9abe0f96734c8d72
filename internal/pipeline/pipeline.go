// Package pipeline orchestrates the end-to-end run: raw CSV load, type
// coercion, publish-table construction, and the two analyses. Stages run
// strictly in sequence and communicate only through the shared store, so each
// stage can be rerun and inspected independently.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"salespipe/internal/config"
	"salespipe/internal/datasource/file"
	"salespipe/internal/metrics"
	csvparser "salespipe/internal/parser/csv"
	"salespipe/internal/schema"
	"salespipe/internal/storage"
	"salespipe/internal/transformer/builtin"
	"salespipe/pkg/records"
)

// Pipeline executes one full run against a single Repository. It does not own
// the repository; the caller opens and closes it.
type Pipeline struct {
	cfg  config.Pipeline
	repo storage.Repository

	// Logf receives progress lines when set. The CLI wires it to log.Printf
	// under -v; tests and library callers may leave it nil.
	Logf func(format string, args ...any)
}

// New binds a configuration and an open repository into a runnable pipeline.
func New(cfg config.Pipeline, repo storage.Repository) *Pipeline {
	return &Pipeline{cfg: cfg, repo: repo}
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.Logf != nil {
		p.Logf(format, args...)
	}
}

// Run executes every stage in order and returns the analysis report. The
// first stage error aborts the run; the returned error is wrapped with the
// stage name but stays transparent to errors.As checks against the pipeline's
// error types.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"load_raw", p.loadRaw},
		{"coerce", p.coerceTyped},
		{"publish_product", p.publishProduct},
		{"publish_orders", p.publishOrders},
	}
	for _, s := range stages {
		start := time.Now()
		err := s.fn(ctx)
		metrics.RecordStage(p.cfg.Job, s.name, err, time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", s.name, err)
		}
		p.logf("stage %s done in %s", s.name, time.Since(start).Round(time.Millisecond))
	}

	start := time.Now()
	rep, err := p.analyze(ctx)
	metrics.RecordStage(p.cfg.Job, "analyze", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("stage analyze: %w", err)
	}
	p.logf("stage analyze done in %s", time.Since(start).Round(time.Millisecond))
	return rep, nil
}

// loadRaw reads each source file and lands it verbatim in its raw_ table:
// every column a nullable string, empty cells as NULL.
func (p *Pipeline) loadRaw(ctx context.Context) error {
	pr := csvparser.NewParser(csvparser.Options{TrimSpace: true})
	for _, ds := range schema.Datasets() {
		if err := p.loadDataset(ctx, pr, ds); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) loadDataset(ctx context.Context, pr *csvparser.Parser, ds schema.Dataset) error {
	src := file.NewLocal(p.cfg.Data.PathFor(ds.File))
	rc, err := src.Open(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &SourceNotFoundError{Dataset: ds.Name, Path: src.Path(), Err: err}
		}
		return fmt.Errorf("dataset %s: %w", ds.Name, err)
	}
	defer rc.Close()

	header, recs, err := pr.Parse(rc)
	if err != nil {
		return fmt.Errorf("dataset %s: %w", ds.Name, err)
	}
	if err := requireColumns(ds, header); err != nil {
		return err
	}

	// Project onto the schema's columns; extra source columns are dropped.
	cols := ds.Columns()
	rows := make([][]any, len(recs))
	for i, rec := range recs {
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = rec[c]
		}
		rows[i] = row
	}

	table := ds.RawTable()
	if err := p.repo.Replace(ctx, table, toColumns(ds.RawFields())); err != nil {
		return fmt.Errorf("dataset %s: %w", ds.Name, err)
	}
	n, err := p.repo.InsertRows(ctx, table, cols, rows)
	if err != nil {
		return fmt.Errorf("dataset %s: %w", ds.Name, err)
	}
	metrics.RecordRows(p.cfg.Job, table, n)
	p.logf("loaded %d rows into %s", n, table)
	return nil
}

// requireColumns verifies the parsed header carries every schema column.
func requireColumns(ds schema.Dataset, header []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	for _, c := range ds.Columns() {
		if !have[c] {
			return fmt.Errorf("dataset %s: header is missing column %q", ds.Name, c)
		}
	}
	return nil
}

// coerceTyped parses every raw_ table into its store_ counterpart using the
// dataset's fixed type map. Any unparseable cell aborts the stage with a
// *builtin.CoercionError.
func (p *Pipeline) coerceTyped(ctx context.Context) error {
	for _, ds := range schema.Datasets() {
		recs, err := p.readTable(ctx, ds.RawTable(), ds.RawFields())
		if err != nil {
			return err
		}
		typed, err := builtin.Coerce{Dataset: ds.Name, Fields: ds.Fields}.Apply(recs)
		if err != nil {
			return err
		}
		if err := p.writeTable(ctx, ds.StoreTable(), ds.Fields, typed); err != nil {
			return err
		}
	}
	return nil
}

// readTable loads a whole table back into typed records.
func (p *Pipeline) readTable(ctx context.Context, table string, fields []schema.Field) ([]records.Record, error) {
	rows, err := p.repo.SelectAll(ctx, table, schema.Names(fields))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	recs := make([]records.Record, len(rows))
	for i, row := range rows {
		rec, err := schema.DecodeRow(fields, row)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", table, err)
		}
		recs[i] = rec
	}
	return recs, nil
}

// writeTable replaces a table with the encoded records. Replace-then-insert
// keeps every table full-overwrite so reruns never accumulate state.
func (p *Pipeline) writeTable(ctx context.Context, table string, fields []schema.Field, recs []records.Record) error {
	if err := p.repo.Replace(ctx, table, toColumns(fields)); err != nil {
		return fmt.Errorf("write %s: %w", table, err)
	}
	rows := make([][]any, len(recs))
	for i, rec := range recs {
		row, err := schema.EncodeRow(fields, rec)
		if err != nil {
			return fmt.Errorf("write %s: %w", table, err)
		}
		rows[i] = row
	}
	n, err := p.repo.InsertRows(ctx, table, schema.Names(fields), rows)
	if err != nil {
		return fmt.Errorf("write %s: %w", table, err)
	}
	metrics.RecordRows(p.cfg.Job, table, n)
	p.logf("wrote %d rows into %s", n, table)
	return nil
}

func toColumns(fields []schema.Field) []storage.Column {
	cols := make([]storage.Column, len(fields))
	for i, f := range fields {
		cols[i] = storage.Column{Name: f.Name, Type: string(f.Kind), Nullable: f.Nullable}
	}
	return cols
}
