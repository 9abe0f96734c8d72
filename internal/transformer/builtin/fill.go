package builtin

import (
	"salespipe/internal/schema"
	"salespipe/pkg/records"
)

// FillMissing replaces nil values of Field with the With label. It is used to
// keep reporting group keys non-null in the publish tables.
type FillMissing struct {
	Field string
	With  string
}

// Apply fills records in place and returns the same slice.
func (f FillMissing) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		if r[f.Field] == nil {
			r[f.Field] = f.With
		}
	}
	return in, nil
}

// DeriveCategory fills a missing ProductCategoryName from the row's
// ProductSubCategoryName using the fixed subcategory → category mapping.
// Rows whose subcategory is unknown (or also missing) are left unchanged for
// a later FillMissing to label.
type DeriveCategory struct{}

// Apply derives categories in place and returns the same slice.
func (DeriveCategory) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		if r["ProductCategoryName"] != nil {
			continue
		}
		sub, ok := r.String("ProductSubCategoryName")
		if !ok {
			continue
		}
		if cat, ok := schema.CategoryForSubcategory(sub); ok {
			r["ProductCategoryName"] = cat
		}
	}
	return in, nil
}
