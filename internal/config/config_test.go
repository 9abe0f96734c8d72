package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default()
	if p.Job != "salespipe" {
		t.Fatalf("Job = %q", p.Job)
	}
	if p.Storage.Kind != "sqlite" || p.Storage.DB.DSN == "" {
		t.Fatalf("Storage = %#v", p.Storage)
	}
	if p.Analysis.LeadTimeDecimals != 2 {
		t.Fatalf("LeadTimeDecimals = %d", p.Analysis.LeadTimeDecimals)
	}
	if issues := ValidatePipeline(p); len(issues) != 0 {
		t.Fatalf("default config should validate cleanly: %v", issues)
	}
}

func TestLoadLayersOverDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	body := `{"data": {"dir": "/srv/exports"}, "publish": {"strict_joins": true}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Data.Dir != "/srv/exports" {
		t.Fatalf("Data.Dir = %q", p.Data.Dir)
	}
	if !p.Publish.StrictJoins {
		t.Fatalf("StrictJoins not decoded")
	}
	// Untouched fields keep their defaults.
	if p.Storage.Kind != "sqlite" || p.Analysis.LeadTimeDecimals != 2 {
		t.Fatalf("defaults lost: %#v", p)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	if err := os.WriteFile(path, []byte(`{"sotrage": {}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("typo'd field should fail to decode")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("missing config file should error")
	}
}

func TestPathFor(t *testing.T) {
	d := Data{Dir: "data"}
	if got := d.PathFor("products.csv"); got != filepath.Join("data", "products.csv") {
		t.Fatalf("PathFor = %q", got)
	}
}
