// Package category resolves a response's selected business categories and
// matches free-text "Other" labels against the controlled vocabulary.
package category

import (
	"strings"

	"github.com/runger/vcadq/internal/normalize"
	"github.com/runger/vcadq/internal/schema"
)

// Selection is the resolved category picture of one response.
type Selection struct {
	// Selected holds the chosen category codes in canonical order,
	// regardless of the order they appeared in the source record.
	Selected []schema.CategoryCode
	// OtherLabel is the trimmed free-text answer to the other-category
	// question, empty when unanswered.
	OtherLabel string
	// OtherMatch is the known category the other-label fuzzy-resolved to,
	// nil when no match was found. A match does not alter Selected: the
	// response legitimately chose "Other"; the match only upgrades the
	// corresponding verdict from invalid to passing.
	OtherMatch *schema.CategoryCode
}

// Has reports whether a category code was selected.
func (s Selection) Has(code schema.CategoryCode) bool {
	for _, c := range s.Selected {
		if c == code {
			return true
		}
	}
	return false
}

// synonym maps a lowercase stem to the category it names. Matching is
// substring-based over the stem so inflections resolve too ("hullers",
// "trading"). The table is deliberately finite and explicit: every entry is
// unit-tested, and no generic similarity score is involved, so verdicts stay
// reproducible and explainable.
type synonym struct {
	stem string
	code schema.CategoryCode
}

var synonyms = []synonym{
	{stem: "hull", code: "HS"},
	{stem: "grad", code: "GF"},
	{stem: "warehouse", code: "WH"},
	{stem: "storage", code: "WH"},
	{stem: "mill", code: "MILL"},
	{stem: "pulp", code: "MILL"},
	{stem: "shop", code: "SHOP"},
	{stem: "brew", code: "SHOP"},
	{stem: "store", code: "STORE"},
	{stem: "trad", code: "TRADER"},
	{stem: "roast", code: "ROASTER"},
	{stem: "export", code: "EXPORTER"},
	{stem: "extract", code: "EXTRACTOR"},
}

const (
	businessCategoryKey = "q13_business_category"
	otherCategoryKey    = "q14_other_category"
)

// Resolve determines the selected categories of one response. Each q13 token
// matches a category by label, code, or suffix, case-insensitively; tokens
// that match nothing are ignored here (choice validation reports them).
// Recomputed fresh per response, never cached.
func Resolve(answers *normalize.Answers) Selection {
	picked := make(map[schema.CategoryCode]bool)
	for _, tok := range answers.Get(businessCategoryKey).Tokens {
		if cat, ok := matchToken(tok); ok {
			picked[cat.Code] = true
		}
	}

	var sel Selection
	for _, c := range schema.Categories {
		if picked[c.Code] {
			sel.Selected = append(sel.Selected, c.Code)
		}
	}

	if picked["OTHER"] {
		sel.OtherLabel = strings.TrimSpace(answers.Get(otherCategoryKey).Raw)
		if sel.OtherLabel != "" {
			if code, ok := MatchLabel(sel.OtherLabel); ok {
				sel.OtherMatch = &code
			}
		}
	}
	return sel
}

// matchToken matches one q13 token against the canonical category set.
func matchToken(tok string) (schema.Category, bool) {
	t := strings.ToLower(strings.TrimSpace(tok))
	if t == "" {
		return schema.Category{}, false
	}
	for _, c := range schema.Categories {
		if t == strings.ToLower(c.Label) || t == strings.ToLower(string(c.Code)) || t == c.Suffix {
			return c, true
		}
	}
	return schema.Category{}, false
}

// MatchLabel fuzzy-resolves a free-text category label against the
// controlled vocabulary: exact case-insensitive label match first, then the
// synonym stem table.
func MatchLabel(label string) (schema.CategoryCode, bool) {
	t := strings.ToLower(strings.TrimSpace(label))
	if t == "" {
		return "", false
	}
	for _, c := range schema.Categories {
		if c.Code == "OTHER" {
			continue // "other" naming itself is not a resolution
		}
		if t == strings.ToLower(c.Label) {
			return c.Code, true
		}
	}
	for _, s := range synonyms {
		if strings.Contains(t, s.stem) {
			return s.code, true
		}
	}
	return "", false
}
