package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownQuestion is returned by Lookup for keys not in the registry.
var ErrUnknownQuestion = errors.New("unknown question")

// SchemaError reports a malformed or self-contradictory question definition.
// It is fatal: a broken catalogue means the engine is misconfigured, and the
// run must abort before producing any output.
type SchemaError struct {
	Key    string
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in %q: %s", e.Key, e.Detail)
}

// Registry is the immutable question catalogue. It is built once at process
// start and safe to share across any number of concurrent evaluations.
type Registry struct {
	questions []Question
	byKey     map[string]int
}

// NewRegistry validates the catalogue and builds a registry from it.
// Rejected at load time: duplicate keys, duplicate allowed values
// (case-insensitive), dependency references to unknown or later-defined
// questions, and scope codes outside the canonical category set.
func NewRegistry(questions []Question) (*Registry, error) {
	byKey := make(map[string]int, len(questions))
	for i, q := range questions {
		if q.Key == "" {
			return nil, &SchemaError{Key: q.Key, Detail: "empty question key"}
		}
		if _, dup := byKey[q.Key]; dup {
			return nil, &SchemaError{Key: q.Key, Detail: "duplicate question key"}
		}

		seen := make(map[string]bool, len(q.Choices))
		for _, c := range q.Choices {
			lc := strings.ToLower(strings.TrimSpace(c))
			if seen[lc] {
				return nil, &SchemaError{Key: q.Key, Detail: fmt.Sprintf("duplicate allowed value %q", c)}
			}
			seen[lc] = true
		}

		if q.DependsOn != nil {
			target, ok := byKey[q.DependsOn.Key]
			if !ok {
				return nil, &SchemaError{Key: q.Key, Detail: fmt.Sprintf("dependency on unknown question %q", q.DependsOn.Key)}
			}
			if target >= i {
				return nil, &SchemaError{Key: q.Key, Detail: fmt.Sprintf("dependency on %q which does not precede it", q.DependsOn.Key)}
			}
			if len(q.DependsOn.Values) == 0 {
				return nil, &SchemaError{Key: q.Key, Detail: "dependency with no trigger values"}
			}
		}

		for _, code := range q.Scope {
			if _, ok := CategoryByCode(code); !ok {
				return nil, &SchemaError{Key: q.Key, Detail: fmt.Sprintf("unknown category code %q in scope", code)}
			}
		}

		if q.Section < 1 || q.Section > 4 {
			return nil, &SchemaError{Key: q.Key, Detail: fmt.Sprintf("section %d out of range", q.Section)}
		}

		byKey[q.Key] = i
	}

	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &Registry{questions: qs, byKey: byKey}, nil
}

// Default builds the registry from the built-in catalogue.
func Default() (*Registry, error) {
	return NewRegistry(Catalog)
}

// Lookup returns the definition for the given question key.
func (r *Registry) Lookup(key string) (Question, error) {
	i, ok := r.byKey[key]
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, key)
	}
	return r.questions[i], nil
}

// Questions returns every question in catalogue (evaluation) order.
func (r *Registry) Questions() []Question {
	qs := make([]Question, len(r.questions))
	copy(qs, r.questions)
	return qs
}

// Section returns the questions of one section, in catalogue order.
func (r *Registry) Section(n int) []Question {
	var qs []Question
	for _, q := range r.questions {
		if q.Section == n {
			qs = append(qs, q)
		}
	}
	return qs
}

// Len returns the number of questions in the registry.
func (r *Registry) Len() int {
	return len(r.questions)
}
