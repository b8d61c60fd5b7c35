package schema

// Shape classifies a question by the shape of its answer. The validation
// engine dispatches on this tag; adding a question is a catalogue edit, not
// a code change.
type Shape int

const (
	// ScalarChoice is a single selection from a fixed choice set.
	ScalarChoice Shape = iota
	// MultiChoice is zero or more selections from a fixed choice set.
	MultiChoice
	// FreeText is unconstrained text.
	FreeText
	// Numeric is a number, optionally bounded.
	Numeric
	// Boolean is a Yes/No answer.
	Boolean
	// GPS is a structured latitude/longitude pair.
	GPS
	// Auto is generated by the pipeline itself (e.g. a row reference) and
	// is never validated.
	Auto
)

// String returns the shape name used in diagnostics.
func (s Shape) String() string {
	switch s {
	case ScalarChoice:
		return "scalar-choice"
	case MultiChoice:
		return "multi-choice"
	case FreeText:
		return "free-text"
	case Numeric:
		return "numeric"
	case Boolean:
		return "boolean"
	case GPS:
		return "gps"
	case Auto:
		return "auto"
	}
	return "unknown"
}

// Format selects the fixed-pattern check applied to a free-text answer.
type Format int

const (
	// NoFormat applies no pattern check.
	NoFormat Format = iota
	// PhoneFormat requires 9-15 digits with an optional leading "+".
	PhoneFormat
	// EmailFormat requires the standard local@domain shape.
	EmailFormat
)

// Bounds is an inclusive numeric range.
type Bounds struct {
	Min float64
	Max float64
}

// Dependency declares that a question is required only when another
// question's answer matches one of the trigger values.
type Dependency struct {
	Key    string   // key of the trigger question; must precede the dependent
	Values []string // trigger values, matched case-insensitively
}

// Question is one declarative catalogue entry. Pure data; all behavior
// lives in the validation engine.
type Question struct {
	Key          string         // stable identifier, e.g. "q4_age"
	Text         string         // human-readable question text
	Section      int            // 1..4
	Shape        Shape          // answer shape tag
	Choices      []string       // allowed values for choice-typed shapes
	Bounds       *Bounds        // inclusive numeric bounds, nil = unbounded
	AllowUnknown bool           // accept the "unknown" sentinel as valid
	Format       Format         // fixed-pattern check for free-text answers
	Vocabulary   bool           // free text must fuzzy-resolve to a known category
	DependsOn    *Dependency    // nil = unconditional
	Scope        []CategoryCode // categories this question repeats for; nil = global
	RawKey       string         // key in the raw answer map; scoped questions append "_<suffix>"
}

// Scoped reports whether the question repeats per selected category.
func (q Question) Scoped() bool {
	return len(q.Scope) > 0
}

// InScope reports whether the question applies to the given category code.
// Global questions are in scope for every category.
func (q Question) InScope(code CategoryCode) bool {
	if !q.Scoped() {
		return true
	}
	for _, c := range q.Scope {
		if c == code {
			return true
		}
	}
	return false
}
