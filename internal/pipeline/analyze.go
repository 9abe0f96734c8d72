package pipeline

import (
	"context"
	"math"
	"sort"

	"salespipe/internal/schema"
	"salespipe/pkg/records"
)

// analyze computes the two reports over publish_orders and fingerprints both
// publish tables. Aggregating an empty publish_orders is an
// *EmptyDatasetError rather than an empty report, since zero order lines
// always indicates a broken run.
func (p *Pipeline) analyze(ctx context.Context) (*Report, error) {
	recs, err := p.readTable(ctx, schema.PublishOrdersTable, schema.PublishOrders)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, &EmptyDatasetError{Table: schema.PublishOrdersTable}
	}

	rep := &Report{
		TopColorByYear:        topColorByYear(recs),
		AvgLeadTimeByCategory: avgLeadTimeByCategory(recs, p.cfg.Analysis.LeadTimeDecimals),
		LeadTimeDecimals:      p.cfg.Analysis.LeadTimeDecimals,
		Fingerprints:          make(map[string]string, 2),
	}
	for _, t := range []struct {
		name   string
		fields []schema.Field
	}{
		{schema.PublishProductTable, schema.PublishProduct},
		{schema.PublishOrdersTable, schema.PublishOrders},
	} {
		fp, err := p.tableFingerprint(ctx, t.name, t.fields)
		if err != nil {
			return nil, err
		}
		rep.Fingerprints[t.name] = fp
		p.logf("fingerprint %s %s", t.name, fp)
	}
	return rep, nil
}

// tableFingerprint digests a table through the canonical row encoding, so the
// result is identical across storage backends and across reruns over the same
// inputs.
func (p *Pipeline) tableFingerprint(ctx context.Context, table string, fields []schema.Field) (string, error) {
	recs, err := p.readTable(ctx, table, fields)
	if err != nil {
		return "", err
	}
	rows := make([][]any, len(recs))
	for i, rec := range recs {
		row, err := schema.EncodeRow(fields, rec)
		if err != nil {
			return "", err
		}
		rows[i] = row
	}
	return fingerprint(schema.Names(fields), rows), nil
}

// topColorByYear sums TotalLineExtendedPrice per (order year, color) and
// keeps the highest-revenue color of each year. Revenue ties go to the
// lexicographically smaller color so the result is deterministic.
func topColorByYear(recs []records.Record) []YearColor {
	revenue := map[int]map[string]float64{}
	for _, r := range recs {
		od, _ := r.Time("OrderDate")
		color, _ := r.String("Color")
		ext, _ := r.Float("TotalLineExtendedPrice")
		y := od.Year()
		if revenue[y] == nil {
			revenue[y] = map[string]float64{}
		}
		revenue[y][color] += ext
	}

	years := make([]int, 0, len(revenue))
	for y := range revenue {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]YearColor, 0, len(years))
	for _, y := range years {
		var best YearColor
		first := true
		for color, rev := range revenue[y] {
			if first || rev > best.Revenue || (rev == best.Revenue && color < best.Color) {
				best = YearColor{Year: y, Color: color, Revenue: rev}
				first = false
			}
		}
		out = append(out, best)
	}
	return out
}

// avgLeadTimeByCategory averages LeadTimeInBusinessDays per product category,
// rounded to the configured number of decimals. Categories come out in
// alphabetical order.
func avgLeadTimeByCategory(recs []records.Record, decimals int) []CategoryLeadTime {
	sums := map[string]int{}
	counts := map[string]int{}
	for _, r := range recs {
		cat, _ := r.String("ProductCategoryName")
		lead, _ := r.Int("LeadTimeInBusinessDays")
		sums[cat] += lead
		counts[cat]++
	}

	cats := make([]string, 0, len(sums))
	for c := range sums {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	out := make([]CategoryLeadTime, 0, len(cats))
	for _, c := range cats {
		avg := float64(sums[c]) / float64(counts[c])
		out = append(out, CategoryLeadTime{Category: c, AvgLeadTime: roundTo(avg, decimals)})
	}
	return out
}

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}
