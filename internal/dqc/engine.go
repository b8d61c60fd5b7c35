package dqc

import (
	"regexp"
	"strings"

	"github.com/runger/vcadq/internal/category"
	"github.com/runger/vcadq/internal/normalize"
	"github.com/runger/vcadq/internal/schema"
)

const unknownSentinel = "unknown"

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Engine evaluates the declarative question catalogue against normalized
// answers. It holds only the read-only registry, so a single engine is safe
// for any number of concurrent per-response evaluations.
type Engine struct {
	reg *schema.Registry
}

// NewEngine builds a validation engine over the given registry.
func NewEngine(reg *schema.Registry) *Engine {
	return &Engine{reg: reg}
}

// Validate evaluates every applicable check for one response and returns the
// verdicts in deterministic order. Validation failures are outcomes, never
// errors; the only way this pass can abort a run is a broken registry, which
// NewRegistry already rejects.
func (e *Engine) Validate(ans *normalize.Answers, sel category.Selection) *Result {
	res := &Result{verdicts: make(map[Key]Verdict)}

	for _, q := range e.reg.Questions() {
		if q.Shape == schema.Auto {
			continue
		}
		if !q.Scoped() {
			res.add(Key{Question: q.Key}, e.validateOne(q, ans.Get(q.Key), ans, sel, ""))
			continue
		}
		// Scoped questions get one verdict per category that is either
		// selected or answered; canonical order keeps output stable.
		for _, code := range q.Scope {
			cat, ok := schema.CategoryByCode(code)
			if !ok {
				continue
			}
			a := ans.GetScoped(q.Key, cat.Suffix)
			if !sel.Has(code) && a.Missing {
				continue
			}
			res.add(Key{Question: q.Key, Suffix: cat.Suffix}, e.validateOne(q, a, ans, sel, code))
		}
	}
	return res
}

// validateOne runs the applicable sub-checks for a single answer instance.
func (e *Engine) validateOne(q schema.Question, a normalize.Answer, ans *normalize.Answers, sel category.Selection, code schema.CategoryCode) Verdict {
	var v Verdict

	// Conditional questions whose trigger is false are vacuously valid:
	// presence is not even reported.
	if q.DependsOn != nil && !e.triggered(q.DependsOn, ans) {
		v.finalize()
		return v
	}

	present := !a.Empty()
	v.Present = boolPtr(present)
	if !present {
		v.Reasons = append(v.Reasons, ReasonMissing)
		if q.DependsOn != nil {
			// The trigger fired, so absence is also a dependency failure.
			v.DependencyOK = boolPtr(false)
			v.Reasons = append(v.Reasons, e.dependencyReason(q))
		}
		if q.Scoped() && code != "" && sel.Has(code) {
			v.DependencyOK = boolPtr(false)
			v.Reasons = append(v.Reasons, ReasonScopedCategory(string(code)))
		}
		v.finalize()
		return v
	}

	// The trigger fired and an answer exists, so the dependency is satisfied.
	// Scoped instances likewise have their per-category presence met. The
	// flag is populated both ways: an empty cell means "not applicable",
	// never "applicable and fine".
	if q.DependsOn != nil || (q.Scoped() && code != "") {
		v.DependencyOK = boolPtr(true)
	}

	switch q.Shape {
	case schema.ScalarChoice, schema.Boolean:
		v.ChoiceOK = boolPtr(e.checkChoice(q, []string{a.Raw}, &v))
	case schema.MultiChoice:
		v.ChoiceOK = boolPtr(e.checkChoice(q, a.Tokens, &v))
	case schema.Numeric:
		v.NumericOK = boolPtr(e.checkNumeric(q, a, &v))
	case schema.GPS:
		v.FormatOK = boolPtr(checkGPS(a, &v))
	case schema.FreeText:
		if q.Format != schema.NoFormat {
			v.FormatOK = boolPtr(checkFormat(q.Format, a.Raw, &v))
		}
	}

	// A vocabulary answer must name a known category; the resolver's fuzzy
	// match decides whether the free text counts as one.
	if q.Vocabulary {
		matched := sel.OtherMatch != nil
		v.ChoiceOK = boolPtr(matched)
		if !matched {
			v.Reasons = append(v.Reasons, ReasonOtherUnknown)
		}
	}

	v.finalize()
	return v
}

// dependencyReason picks the dependency failure code for a question. The
// other-category question carries its own distinct code so downstream
// reporting can tell "forgot to answer" from "answered but unknown".
func (e *Engine) dependencyReason(q schema.Question) string {
	if q.Vocabulary {
		return ReasonOtherMissing
	}
	return ReasonDependency(q.DependsOn.Key)
}

// triggered reports whether a dependency's trigger question currently holds
// one of the trigger values. Multi-choice triggers match on any token.
func (e *Engine) triggered(dep *schema.Dependency, ans *normalize.Answers) bool {
	trigger := ans.Get(dep.Key)
	if trigger.Empty() {
		return false
	}
	values := trigger.Tokens
	if len(values) == 0 {
		values = []string{trigger.Raw}
	}
	for _, want := range dep.Values {
		for _, got := range values {
			if strings.EqualFold(strings.TrimSpace(got), want) {
				return true
			}
		}
	}
	return false
}

// checkChoice verifies every token against the allowed set,
// case-insensitively. One bad token fails the whole check.
func (e *Engine) checkChoice(q schema.Question, tokens []string, v *Verdict) bool {
	for _, tok := range tokens {
		if !allowedChoice(q.Choices, tok) {
			v.Reasons = append(v.Reasons, ReasonInvalidChoice)
			return false
		}
	}
	return true
}

func allowedChoice(choices []string, tok string) bool {
	tok = strings.TrimSpace(tok)
	for _, c := range choices {
		if strings.EqualFold(c, tok) {
			return true
		}
	}
	return false
}

// checkNumeric parses the answer and applies inclusive bounds. The "unknown"
// sentinel is accepted for questions that declare AllowUnknown.
func (e *Engine) checkNumeric(q schema.Question, a normalize.Answer, v *Verdict) bool {
	if q.AllowUnknown && strings.EqualFold(strings.TrimSpace(a.Raw), unknownSentinel) {
		return true
	}
	n, ok := normalize.CleanNumber(a.Raw)
	if !ok {
		v.Reasons = append(v.Reasons, ReasonNumberInvalid)
		return false
	}
	if q.Bounds != nil && (n < q.Bounds.Min || n > q.Bounds.Max) {
		v.Reasons = append(v.Reasons, ReasonNumberRange)
		return false
	}
	return true
}

// checkFormat applies the fixed phone/email patterns.
func checkFormat(f schema.Format, raw string, v *Verdict) bool {
	raw = strings.TrimSpace(raw)
	switch f {
	case schema.PhoneFormat:
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, raw)
		cleaned := digits
		if strings.HasPrefix(raw, "+") {
			cleaned = "+" + digits
		}
		if !phonePattern.MatchString(cleaned) {
			v.Reasons = append(v.Reasons, ReasonBadPhone)
			return false
		}
	case schema.EmailFormat:
		if !emailPattern.MatchString(raw) {
			v.Reasons = append(v.Reasons, ReasonBadEmail)
			return false
		}
	}
	return true
}

// checkGPS validates a decoded coordinate pair by inclusive range. A payload
// that could not be decoded at all fails here as malformed rather than
// aborting the batch.
func checkGPS(a normalize.Answer, v *Verdict) bool {
	if a.MalformedGPS || a.GPS == nil {
		v.Reasons = append(v.Reasons, ReasonMalformedGPS)
		return false
	}
	ok := true
	if a.GPS.Latitude < -90 || a.GPS.Latitude > 90 {
		v.Reasons = append(v.Reasons, ReasonLatRange)
		ok = false
	}
	if a.GPS.Longitude < -180 || a.GPS.Longitude > 180 {
		v.Reasons = append(v.Reasons, ReasonLonRange)
		ok = false
	}
	return ok
}
