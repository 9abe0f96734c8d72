package builtin

import (
	"testing"

	"salespipe/internal/schema"
	"salespipe/pkg/records"
)

func TestFillMissing(t *testing.T) {
	in := []records.Record{
		{"Color": nil},
		{"Color": "Black"},
	}
	out, err := FillMissing{Field: "Color", With: schema.MissingLabel}.Apply(in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v, _ := out[0].String("Color"); v != "N/A" {
		t.Fatalf("nil Color not filled: %#v", out[0]["Color"])
	}
	if v, _ := out[1].String("Color"); v != "Black" {
		t.Fatalf("present Color overwritten: %#v", out[1]["Color"])
	}
}

func TestDeriveCategory(t *testing.T) {
	in := []records.Record{
		{"ProductCategoryName": "Bikes", "ProductSubCategoryName": "Road Bikes"},
		{"ProductCategoryName": nil, "ProductSubCategoryName": "Gloves"},
		{"ProductCategoryName": nil, "ProductSubCategoryName": "Mountain Frames"},
		{"ProductCategoryName": nil, "ProductSubCategoryName": "Unicycles"},
		{"ProductCategoryName": nil, "ProductSubCategoryName": nil},
	}
	out, err := DeriveCategory{}.Apply(in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []any{"Bikes", "Clothing", "Components", nil, nil}
	for i, w := range want {
		if out[i]["ProductCategoryName"] != w {
			t.Fatalf("row %d: category = %#v, want %#v", i, out[i]["ProductCategoryName"], w)
		}
	}
}

func TestChainDeriveThenFill(t *testing.T) {
	// The publish stage derives first, then labels leftovers.
	in := []records.Record{{"ProductCategoryName": nil, "ProductSubCategoryName": "Unicycles"}}
	out, err := DeriveCategory{}.Apply(in)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	out, err = (FillMissing{Field: "ProductCategoryName", With: schema.MissingLabel}).Apply(out)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if v, _ := out[0].String("ProductCategoryName"); v != "N/A" {
		t.Fatalf("leftover category = %#v", out[0]["ProductCategoryName"])
	}
}
