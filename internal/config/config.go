// Package config defines the JSON-serializable run configuration for the
// pipeline. It is intentionally small, explicit, and dependency-free:
// decoding is done by the standard library, defaults make a bare `salespipe`
// invocation work without any file at all.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Pipeline is the top-level run configuration, decoded from a JSON file or
// assembled from defaults plus CLI flags.
type Pipeline struct {
	// Job names the run for logging and metrics labeling.
	Job string `json:"job"`

	// Data locates the three delimited source files.
	Data Data `json:"data"`

	// Storage selects the shared store the stages read and write.
	Storage Storage `json:"storage"`

	// Publish tunes the transform stage.
	Publish Publish `json:"publish"`

	// Analysis tunes the reporting stage.
	Analysis Analysis `json:"analysis"`
}

// Data locates the source files. Each dataset is expected under Dir using its
// documented file name (products.csv, sales_order_header.csv,
// sales_order_detail.csv).
type Data struct {
	// Dir is the directory containing the source files.
	Dir string `json:"dir"`
}

// PathFor returns the full path for a dataset file name.
func (d Data) PathFor(file string) string { return filepath.Join(d.Dir, file) }

// Storage selects the store backend.
type Storage struct {
	// Kind selects the backend implementation: "sqlite" (default) or
	// "postgres".
	Kind string `json:"kind"`

	// DB carries the backend connection settings.
	DB DBConfig `json:"db"`
}

// DBConfig configures the store connection.
type DBConfig struct {
	// DSN is the connection string. For sqlite a file path or ":memory:";
	// for postgres a pgxpool connection string.
	DSN string `json:"dsn"`
}

// Publish tunes the transform stage.
type Publish struct {
	// StrictJoins aborts the run when an order line references a missing
	// header or product instead of silently dropping the line.
	StrictJoins bool `json:"strict_joins"`
}

// Analysis tunes the reporting stage.
type Analysis struct {
	// LeadTimeDecimals is the number of decimal places the average lead
	// time is rounded to. Defaults to 2.
	LeadTimeDecimals int `json:"lead_time_decimals"`
}

// Default returns the configuration used when no config file is given: data
// files under ./data, a sqlite store next to the binary, lenient joins, and
// 2-decimal lead time averages.
func Default() Pipeline {
	return Pipeline{
		Job:      "salespipe",
		Data:     Data{Dir: "data"},
		Storage:  Storage{Kind: "sqlite", DB: DBConfig{DSN: "salespipe.db"}},
		Analysis: Analysis{LeadTimeDecimals: 2},
	}
}

// Load reads a Pipeline from a JSON file, layered over Default so partial
// files only override what they mention.
func Load(path string) (Pipeline, error) {
	p := Default()
	f, err := os.Open(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Pipeline{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return p, nil
}
