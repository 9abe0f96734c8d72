package pipeline

import (
	"strings"
	"testing"
	"time"

	"salespipe/pkg/records"
)

func TestReportRender(t *testing.T) {
	rep := &Report{
		TopColorByYear: []YearColor{
			{Year: 2021, Color: "Black", Revenue: 333.42},
			{Year: 2022, Color: "Red", Revenue: 34.99},
		},
		AvgLeadTimeByCategory: []CategoryLeadTime{
			{Category: "Accessories", AvgLeadTime: 6.5},
		},
		LeadTimeDecimals: 2,
	}
	out := rep.Render()
	for _, want := range []string{"2021", "Black", "333.42", "2022", "Red", "Accessories", "6.50"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Render() missing %q:\n%s", want, out)
		}
	}
}

func TestTopColorByYearTieBreak(t *testing.T) {
	day := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	recs := []records.Record{
		{"OrderDate": day, "Color": "Red", "TotalLineExtendedPrice": 50.0},
		{"OrderDate": day, "Color": "Blue", "TotalLineExtendedPrice": 50.0},
	}
	got := topColorByYear(recs)
	if len(got) != 1 || got[0].Color != "Blue" {
		t.Fatalf("tie should go to the lexicographically smaller color, got %+v", got)
	}
}

func TestRoundTo(t *testing.T) {
	cases := []struct {
		x        float64
		decimals int
		want     float64
	}{
		{1.005, 2, 1.0},  // 1.005*100 lands just below the half in float64
		{1.015, 1, 1.0},  // same
		{2.675, 2, 2.68}, // 2.675*100 rounds to exactly 267.5, the half goes up
		{6.5, 2, 6.5},
		{-1.25, 1, -1.3}, // half away from zero
		{7.0 / 3.0, 2, 2.33},
	}
	for _, tc := range cases {
		if got := roundTo(tc.x, tc.decimals); got != tc.want {
			t.Fatalf("roundTo(%v, %d) = %v, want %v", tc.x, tc.decimals, got, tc.want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	cols := []string{"a", "b"}
	rows := [][]any{{int64(1), "x"}, {int64(2), nil}}

	if fingerprint(cols, rows) != fingerprint(cols, rows) {
		t.Fatal("fingerprint is not deterministic")
	}
	if fingerprint(cols, rows) == fingerprint(cols, [][]any{{int64(1), "x"}, {int64(2), ""}}) {
		t.Fatal("nil and empty string should fingerprint differently")
	}
	if fingerprint(cols, rows) == fingerprint([]string{"a", "c"}, rows) {
		t.Fatal("column names should contribute to the fingerprint")
	}
}
