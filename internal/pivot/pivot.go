// Package pivot assembles the wide analytical table (one row per response,
// one column block per question) and the long audit format. Output is
// deterministic: column order follows the registry, merged per-category
// cells follow the canonical category order, and no map iteration order
// leaks into the result.
package pivot

import (
	"fmt"
	"strings"

	"github.com/runger/vcadq/internal/dqc"
	"github.com/runger/vcadq/internal/normalize"
	"github.com/runger/vcadq/internal/schema"
)

// MetaColumns is the fixed metadata block at the front of every output row.
var MetaColumns = []string{
	"response_id", "project_id", "questionnaire_id", "uai_id",
	"submitted_by_id", "created", "modified", "start_time", "end_time", "is_test",
}

// Boolean cell literals. One convention, applied uniformly.
const (
	boolTrue  = "True"
	boolFalse = "False"
)

// DefaultJoiner separates merged per-category values inside one cell.
const DefaultJoiner = " | "

// reasonJoiner separates failure reasons inside the dq_failed_reason cell.
const reasonJoiner = ";"

// Options controls the wide output surface.
type Options struct {
	Joiner          string // cell joiner for merged values; DefaultJoiner when empty
	LabelCategories bool   // prefix merged values with "CODE: "
	IncludeDQC      bool   // append per-question dq flag columns
}

func (o Options) joiner() string {
	if o.Joiner == "" {
		return DefaultJoiner
	}
	return o.Joiner
}

// CollisionError reports a category suffix the pivoter cannot place in the
// canonical order. It is fatal: it means the resolver and the pivoter have
// drifted out of sync on the category set.
type CollisionError struct {
	Question string
	Suffix   string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("pivot collision: question %q carries unknown category suffix %q", e.Question, e.Suffix)
}

// Row is one pivoted response.
type Row struct {
	ResponseID string
	cells      map[string]string
}

// Cell returns the rendered value of one column, empty string when unset.
func (r Row) Cell(column string) string {
	return r.cells[column]
}

// Table is the assembled wide output.
type Table struct {
	Header []string
	Rows   [][]string
}

// Pivoter builds wide rows from normalized answers and verdicts.
type Pivoter struct {
	reg  *schema.Registry
	opts Options
}

// New builds a pivoter over the given registry.
func New(reg *schema.Registry, opts Options) *Pivoter {
	return &Pivoter{reg: reg, opts: opts}
}

// Header returns the canonical column order: the metadata block, then one
// block per question in registry order — value column, declared dq flag
// columns, dq_pass, dq_failed_reason.
func (p *Pivoter) Header() []string {
	header := append([]string{}, MetaColumns...)
	for _, q := range p.reg.Questions() {
		header = append(header, q.Key)
		if !p.opts.IncludeDQC {
			continue
		}
		for _, check := range dqc.ApplicableChecks(q) {
			header = append(header, q.Key+"__dq_"+check)
		}
		if q.Shape != schema.Auto {
			header = append(header, q.Key+"__dq_pass", q.Key+"__dq_failed_reason")
		}
	}
	return header
}

// Pivot merges one response's answers and verdicts into a wide row.
func (p *Pivoter) Pivot(ans *normalize.Answers, res *dqc.Result) (Row, error) {
	row := Row{ResponseID: ans.ResponseID, cells: make(map[string]string)}

	row.cells["response_id"] = ans.ResponseID
	for _, m := range MetaColumns[1:] {
		row.cells[m] = ans.Meta[m]
	}

	for _, q := range p.reg.Questions() {
		if err := p.pivotQuestion(q, ans, res, row.cells); err != nil {
			return Row{}, err
		}
	}
	return row, nil
}

// pivotQuestion fills the cells of one question block.
func (p *Pivoter) pivotQuestion(q schema.Question, ans *normalize.Answers, res *dqc.Result, cells map[string]string) error {
	var (
		values   []string
		verdicts []dqc.Verdict
	)

	if !q.Scoped() {
		a := ans.Get(q.Key)
		values = renderValues(a, "", p.opts.LabelCategories)
		if v, ok := res.Get(dqc.Key{Question: q.Key}); ok {
			verdicts = append(verdicts, v)
		}
	} else {
		for _, code := range q.Scope {
			cat, ok := schema.CategoryByCode(code)
			if !ok {
				return &CollisionError{Question: q.Key, Suffix: string(code)}
			}
			a := ans.GetScoped(q.Key, cat.Suffix)
			values = append(values, renderValues(a, string(cat.Code), p.opts.LabelCategories)...)
			if v, ok := res.Get(dqc.Key{Question: q.Key, Suffix: cat.Suffix}); ok {
				verdicts = append(verdicts, v)
			}
		}
	}

	cells[q.Key] = joinDistinct(values, p.opts.joiner())
	if !p.opts.IncludeDQC || q.Shape == schema.Auto {
		return nil
	}

	for _, check := range dqc.ApplicableChecks(q) {
		cells[q.Key+"__dq_"+check] = renderBool(mergeCheck(verdicts, check))
	}
	cells[q.Key+"__dq_pass"] = renderBool(mergePass(verdicts))
	cells[q.Key+"__dq_failed_reason"] = joinDistinct(mergeReasons(verdicts), reasonJoiner)
	return nil
}

// renderValues renders one answer instance as cell fragments, optionally
// category-prefixed.
func renderValues(a normalize.Answer, code string, label bool) []string {
	var raw []string
	switch {
	case a.Missing:
		return nil
	case len(a.Tokens) > 0:
		raw = a.Tokens
	case a.GPS != nil:
		raw = []string{fmt.Sprintf("%g, %g", a.GPS.Latitude, a.GPS.Longitude)}
	case a.Raw != "":
		raw = []string{a.Raw}
	default:
		return nil
	}

	if !label || code == "" {
		return raw
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = code + ": " + v
	}
	return out
}

// joinDistinct joins non-empty values with the joiner, dropping duplicates
// while preserving first-seen order.
func joinDistinct(values []string, joiner string) string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return strings.Join(out, joiner)
}

// mergeCheck ANDs one sub-check across category instances. Instances where
// the check was not applicable are skipped; nil means no instance had it.
func mergeCheck(verdicts []dqc.Verdict, check string) *bool {
	var merged *bool
	for _, v := range verdicts {
		c := v.Check(check)
		if c == nil {
			continue
		}
		if merged == nil {
			t := true
			merged = &t
		}
		if !*c {
			*merged = false
		}
	}
	return merged
}

// mergePass ANDs the overall pass across instances.
func mergePass(verdicts []dqc.Verdict) *bool {
	if len(verdicts) == 0 {
		return nil
	}
	pass := true
	for _, v := range verdicts {
		if !v.Pass {
			pass = false
		}
	}
	return &pass
}

// mergeReasons concatenates reasons across instances in instance order.
func mergeReasons(verdicts []dqc.Verdict) []string {
	var reasons []string
	for _, v := range verdicts {
		reasons = append(reasons, v.Reasons...)
	}
	return reasons
}

func renderBool(b *bool) string {
	if b == nil {
		return ""
	}
	if *b {
		return boolTrue
	}
	return boolFalse
}

// Assemble renders pivoted rows into the final table, in input row order.
func (p *Pivoter) Assemble(rows []Row) Table {
	header := p.Header()
	t := Table{Header: header}
	for _, r := range rows {
		cells := make([]string, len(header))
		for i, col := range header {
			cells[i] = r.Cell(col)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}
