package pipeline

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// YearColor is one row of the revenue analysis: the highest-revenue product
// color of a calendar year.
type YearColor struct {
	Year    int
	Color   string
	Revenue float64
}

// CategoryLeadTime is one row of the lead time analysis.
type CategoryLeadTime struct {
	Category    string
	AvgLeadTime float64
}

// Report is the outcome of a full pipeline run: both analyses plus a content
// fingerprint per publish table. Fingerprints from two runs over the same
// inputs are equal, which is how rerun idempotence is checked.
type Report struct {
	TopColorByYear        []YearColor
	AvgLeadTimeByCategory []CategoryLeadTime
	Fingerprints          map[string]string

	// LeadTimeDecimals controls how averages are formatted by Render; the
	// values themselves are already rounded.
	LeadTimeDecimals int
}

// Render formats the report as aligned plain text for the CLI.
func (r *Report) Render() string {
	var b strings.Builder

	b.WriteString("Highest-revenue color per year\n")
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tCOLOR\tREVENUE")
	for _, yc := range r.TopColorByYear {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\n", yc.Year, yc.Color, yc.Revenue)
	}
	tw.Flush()

	b.WriteString("\nAverage lead time in business days per category\n")
	tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tAVG LEAD TIME")
	for _, cl := range r.AvgLeadTimeByCategory {
		fmt.Fprintf(tw, "%s\t%.*f\n", cl.Category, r.LeadTimeDecimals, cl.AvgLeadTime)
	}
	tw.Flush()

	return b.String()
}
