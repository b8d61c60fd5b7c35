// Package schema holds the declarative survey question catalogue and the
// canonical business-category vocabulary.
package schema

// CategoryCode is the short code used to prefix per-category values in
// pivoted cells (e.g. "HS: 1200 | TRADER: 300").
type CategoryCode string

// Category describes one business category a VCA can belong to.
type Category struct {
	Code   CategoryCode // short prefix code, e.g. HS
	Suffix string       // raw-key suffix, e.g. hs
	Label  string       // human label used as the q13 choice token
}

// Categories is the canonical ordered category list. The order here defines
// the merge order of per-category values in pivoted cells; it must never be
// re-sorted (not alphabetical, not selection order).
var Categories = []Category{
	{Code: "GF", Suffix: "gf", Label: "Grading facilities"},
	{Code: "HS", Suffix: "hs", Label: "Hulling station"},
	{Code: "WH", Suffix: "wh", Label: "Warehouses"},
	{Code: "MILL", Suffix: "mill", Label: "Wet mills/Pulperly"},
	{Code: "SHOP", Suffix: "shop", Label: "Coffee shops/ brewers"},
	{Code: "STORE", Suffix: "store", Label: "Stores"},
	{Code: "TRADER", Suffix: "trader", Label: "Traders"},
	{Code: "ROASTER", Suffix: "roaster", Label: "Roasters/Roasteries"},
	{Code: "EXPORTER", Suffix: "exporter", Label: "Exporters"},
	{Code: "EXTRACTOR", Suffix: "extractor", Label: "Coffee extractors"},
	{Code: "OTHER", Suffix: "other", Label: "Other"},
}

// CategoryByCode looks up a category by its short code.
func CategoryByCode(code CategoryCode) (Category, bool) {
	for _, c := range Categories {
		if c.Code == code {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryBySuffix looks up a category by its raw-key suffix.
func CategoryBySuffix(suffix string) (Category, bool) {
	for _, c := range Categories {
		if c.Suffix == suffix {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryLabels returns the labels in canonical order. These double as the
// allowed-value set for the business-category multi-choice question.
func CategoryLabels() []string {
	labels := make([]string, len(Categories))
	for i, c := range Categories {
		labels[i] = c.Label
	}
	return labels
}
