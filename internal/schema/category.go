package schema

import "strings"

// MissingLabel replaces absent Color and ProductCategoryName values in the
// publish tables so that reporting group keys are never null.
const MissingLabel = "N/A"

// categoryBySubcategory maps a product subcategory onto its high-level
// category for rows where the source left the category blank.
var categoryBySubcategory = map[string]string{
	// Clothing
	"Bib-Shorts": "Clothing",
	"Caps":       "Clothing",
	"Gloves":     "Clothing",
	"Jerseys":    "Clothing",
	"Shorts":     "Clothing",
	"Socks":      "Clothing",
	"Tights":     "Clothing",
	"Vests":      "Clothing",

	// Accessories
	"Bike Racks":        "Accessories",
	"Bike Stands":       "Accessories",
	"Bottles and Cages": "Accessories",
	"Cleaners":          "Accessories",
	"Fenders":           "Accessories",
	"Headsets":          "Accessories",
	"Helmets":           "Accessories",
	"Hydration Packs":   "Accessories",
	"Lights":            "Accessories",
	"Locks":             "Accessories",
	"Panniers":          "Accessories",
	"Pedals":            "Accessories",
	"Pumps":             "Accessories",

	// Components
	"Bottom Brackets": "Components",
	"Brakes":          "Components",
	"Chains":          "Components",
	"Cranksets":       "Components",
	"Derailleurs":     "Components",
	"Forks":           "Components",
	"Saddles":         "Components",
	"Tires and Tubes": "Components",
	"Wheels":          "Components",
}

// CategoryForSubcategory derives a product category from a subcategory name.
// Any subcategory mentioning frames is a component (road/mountain/touring
// frame variants all collapse there). Unknown subcategories return false.
func CategoryForSubcategory(sub string) (string, bool) {
	if c, ok := categoryBySubcategory[sub]; ok {
		return c, true
	}
	if strings.Contains(sub, "Frames") {
		return "Components", true
	}
	return "", false
}
