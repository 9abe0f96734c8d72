// This file adds a lightweight linter for Pipeline values. It performs static
// checks over a decoded Pipeline and returns a list of issues (errors and
// warnings) that callers can surface in the CLI or in tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding worth surfacing that does not by
	// itself block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config (e.g. "storage.db.dsn").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where convenient.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// knownStorageKinds are the backends compiled into the default binary. An
// unknown kind is only a warning here; the storage factory is the runtime
// authority and will reject kinds nothing registered.
var knownStorageKinds = map[string]bool{"sqlite": true, "postgres": true}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels logs and metrics for the run",
		})
	}
	if strings.TrimSpace(p.Data.Dir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "data.dir",
			Message:  "data.dir must point at the directory containing the source files",
		})
	}
	if strings.TrimSpace(p.Storage.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
	} else if !knownStorageKinds[p.Storage.Kind] {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unrecognized storage kind %q; the run will fail unless a backend registered it", p.Storage.Kind),
		})
	}
	if strings.TrimSpace(p.Storage.DB.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  "storage.db.dsn must not be empty",
		})
	}
	if d := p.Analysis.LeadTimeDecimals; d < 0 || d > 6 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "analysis.lead_time_decimals",
			Message:  fmt.Sprintf("lead_time_decimals must be between 0 and 6, got %d", d),
		})
	}
	return issues
}
