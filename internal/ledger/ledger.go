// Package ledger collects every non-passing verdict of a run into a failure
// ledger a reviewer can walk back to the source rows from.
package ledger

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/runger/vcadq/internal/dqc"
	"github.com/runger/vcadq/internal/normalize"
	"github.com/runger/vcadq/internal/schema"
)

// Entry is one (response, question, failure-reason) triple.
type Entry struct {
	RunID        string
	ResponseID   string
	RowRef       int // 1-based source row including the header, for "jump to row N"
	QuestionKey  string
	QuestionText string
	Category     string // category code for scoped instances, empty otherwise
	Value        string // the offending value as rendered
	Reason       string
	ValidOptions string // allowed choices, comma-joined, empty for non-choice questions
}

// Ledger accumulates failures across responses. Not safe for concurrent use;
// the batch model adds responses one at a time.
type Ledger struct {
	runID   string
	reg     *schema.Registry
	entries []Entry
}

// New creates an empty ledger stamped with a fresh run identifier.
func New(reg *schema.Registry) *Ledger {
	return &Ledger{runID: uuid.NewString(), reg: reg}
}

// RunID returns the identifier stamped on every entry of this run.
func (l *Ledger) RunID() string {
	return l.runID
}

// Add records every failing verdict of one response.
func (l *Ledger) Add(ans *normalize.Answers, res *dqc.Result) {
	for _, k := range res.Keys() {
		v, _ := res.Get(k)
		if v.Pass {
			continue
		}

		q, err := l.reg.Lookup(k.Question)
		if err != nil {
			continue // verdicts only ever carry registry keys
		}
		code := ""
		if k.Suffix != "" {
			if cat, ok := schema.CategoryBySuffix(k.Suffix); ok {
				code = string(cat.Code)
			}
		}
		a := ans.GetScoped(k.Question, k.Suffix)
		value := a.Raw
		if len(a.Tokens) > 0 {
			value = strings.Join(a.Tokens, ", ")
		}

		for _, reason := range v.Reasons {
			l.entries = append(l.entries, Entry{
				RunID:        l.runID,
				ResponseID:   ans.ResponseID,
				RowRef:       ans.RowRef,
				QuestionKey:  k.Question,
				QuestionText: q.Text,
				Category:     code,
				Value:        value,
				Reason:       reason,
				ValidOptions: strings.Join(q.Choices, ", "),
			})
		}
	}
}

// Entries returns the collected failures sorted by (row, question, category,
// reason) so the export is stable across runs.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RowRef != out[j].RowRef {
			return out[i].RowRef < out[j].RowRef
		}
		if out[i].QuestionKey != out[j].QuestionKey {
			return out[i].QuestionKey < out[j].QuestionKey
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}

// Summary returns per-question failure counts, sorted by question key.
func (l *Ledger) Summary() []QuestionCount {
	counts := make(map[string]int)
	for _, e := range l.entries {
		counts[e.QuestionKey]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]QuestionCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, QuestionCount{QuestionKey: k, Failures: counts[k]})
	}
	return out
}

// QuestionCount is one summary line.
type QuestionCount struct {
	QuestionKey string
	Failures    int
}

// Len returns the number of collected failure entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}
