package config

import "testing"

func findIssue(issues []Issue, path string) (Issue, bool) {
	for _, i := range issues {
		if i.Path == path {
			return i, true
		}
	}
	return Issue{}, false
}

func TestValidatePipelineErrors(t *testing.T) {
	p := Pipeline{} // everything empty
	issues := ValidatePipeline(p)

	for _, path := range []string{"job", "data.dir", "storage.kind", "storage.db.dsn"} {
		iss, ok := findIssue(issues, path)
		if !ok {
			t.Fatalf("missing issue for %s in %v", path, issues)
		}
		if iss.Severity != SeverityError {
			t.Fatalf("%s severity = %s, want error", path, iss.Severity)
		}
	}
}

func TestValidatePipelineUnknownKindWarns(t *testing.T) {
	p := Default()
	p.Storage.Kind = "oracle"
	issues := ValidatePipeline(p)
	iss, ok := findIssue(issues, "storage.kind")
	if !ok {
		t.Fatalf("expected storage.kind issue: %v", issues)
	}
	if iss.Severity != SeverityWarning {
		t.Fatalf("unknown kind severity = %s, want warning", iss.Severity)
	}
}

func TestValidatePipelineDecimalsRange(t *testing.T) {
	p := Default()
	p.Analysis.LeadTimeDecimals = 9
	if _, ok := findIssue(ValidatePipeline(p), "analysis.lead_time_decimals"); !ok {
		t.Fatalf("out-of-range decimals should be flagged")
	}
	p.Analysis.LeadTimeDecimals = 0
	if _, ok := findIssue(ValidatePipeline(p), "analysis.lead_time_decimals"); ok {
		t.Fatalf("0 decimals is valid")
	}
}

func TestIssueError(t *testing.T) {
	i := Issue{Severity: SeverityError, Path: "job", Message: "empty"}
	if got := i.Error(); got != "error at job: empty" {
		t.Fatalf("Issue.Error() = %q", got)
	}
}
