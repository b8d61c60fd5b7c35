package pivot

import (
	"strconv"

	"github.com/runger/vcadq/internal/dqc"
	"github.com/runger/vcadq/internal/normalize"
	"github.com/runger/vcadq/internal/schema"
)

// LongHeader is the audit-trail column order: one row per
// (response, question, category) instance.
var LongHeader = []string{
	"response_id", "row_ref", "question_key", "category", "value",
	"dq_present", "dq_valid_choice", "dq_numeric_ok", "dq_dependency_ok",
	"dq_format_ok", "dq_pass", "dq_failed_reason",
}

// Long renders one response as long-format rows, mirroring the verdict set:
// every global question, plus each scoped instance that was selected or
// answered.
func (p *Pivoter) Long(ans *normalize.Answers, res *dqc.Result) [][]string {
	var rows [][]string
	for _, k := range res.Keys() {
		v, _ := res.Get(k)
		a := ans.GetScoped(k.Question, k.Suffix)

		code := ""
		if k.Suffix != "" {
			if cat, ok := schema.CategoryBySuffix(k.Suffix); ok {
				code = string(cat.Code)
			}
		}

		rows = append(rows, []string{
			ans.ResponseID,
			strconv.Itoa(ans.RowRef),
			k.Question,
			code,
			joinDistinct(renderValues(a, "", false), p.opts.joiner()),
			renderBool(v.Present),
			renderBool(v.ChoiceOK),
			renderBool(v.NumericOK),
			renderBool(v.DependencyOK),
			renderBool(v.FormatOK),
			renderBool(&v.Pass),
			joinDistinct(v.Reasons, reasonJoiner),
		})
	}
	return rows
}
