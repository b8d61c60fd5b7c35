// Package dqc is the data-quality-check engine: it evaluates every
// registry question against a response's normalized answers and emits one
// immutable verdict per (question, category) instance.
package dqc

// Failure reason codes. Codes are machine-readable and cumulative: one
// verdict can carry several, joined by ";" in the wide output.
const (
	ReasonMissing        = "missing_value"
	ReasonInvalidChoice  = "invalid_choice"
	ReasonNumberInvalid  = "number_invalid"
	ReasonNumberRange    = "number_out_of_range"
	ReasonOtherMissing   = "other_category_missing"
	ReasonOtherUnknown   = "other_category_unknown"
	ReasonBadPhone       = "bad_phone_length"
	ReasonBadEmail       = "bad_email_format"
	ReasonLatRange       = "lat_out_of_range"
	ReasonLonRange       = "lon_out_of_range"
	ReasonMalformedGPS   = "malformed_gps"
	prefixDependency     = "dependency_not_met:"   // + trigger question key
	prefixScopedCategory = "missing_for_category:" // + category code
)

// ReasonDependency builds the dependency failure code for a trigger question.
func ReasonDependency(triggerKey string) string {
	return prefixDependency + triggerKey
}

// ReasonScopedCategory builds the scoped-presence failure code for a category.
func ReasonScopedCategory(code string) string {
	return prefixScopedCategory + code
}

// Verdict is the check outcome for one (response, question, category)
// instance. Sub-checks are tri-state: nil means not applicable and is
// excluded from the overall AND, so the failure-reason list stays precise.
// A verdict is created once per evaluation pass and never updated afterward.
type Verdict struct {
	Present      *bool
	ChoiceOK     *bool
	NumericOK    *bool
	DependencyOK *bool
	FormatOK     *bool
	Pass         bool
	Reasons      []string // ordered, empty when passing
}

// CheckNames lists the sub-check column suffixes in their fixed output order.
var CheckNames = []string{"present", "valid_choice", "numeric_ok", "dependency_ok", "format_ok"}

// Check returns the named sub-check value (nil when not applicable).
func (v Verdict) Check(name string) *bool {
	switch name {
	case "present":
		return v.Present
	case "valid_choice":
		return v.ChoiceOK
	case "numeric_ok":
		return v.NumericOK
	case "dependency_ok":
		return v.DependencyOK
	case "format_ok":
		return v.FormatOK
	}
	return nil
}

// finalize computes the overall pass as the AND of every populated sub-check.
// A verdict with no applicable sub-checks passes vacuously.
func (v *Verdict) finalize() {
	v.Pass = true
	for _, name := range CheckNames {
		if c := v.Check(name); c != nil && !*c {
			v.Pass = false
			return
		}
	}
}

func boolPtr(b bool) *bool { return &b }

// Key addresses one verdict: a question plus the category dimension it was
// evaluated under (empty suffix for global questions).
type Key struct {
	Question string
	Suffix   string
}

// Result holds every verdict of one response in deterministic order:
// registry question order, then canonical category order within a question.
type Result struct {
	keys     []Key
	verdicts map[Key]Verdict
}

// Keys returns the verdict keys in evaluation order.
func (r *Result) Keys() []Key {
	return r.keys
}

// Get returns the verdict for a key.
func (r *Result) Get(k Key) (Verdict, bool) {
	v, ok := r.verdicts[k]
	return v, ok
}

func (r *Result) add(k Key, v Verdict) {
	r.keys = append(r.keys, k)
	r.verdicts[k] = v
}
