package dqc

import "github.com/runger/vcadq/internal/schema"

// ApplicableChecks returns the sub-check names a question can populate, in
// the fixed output order. The pivoter uses this to lay out flag columns; it
// must agree with what validateOne actually evaluates.
func ApplicableChecks(q schema.Question) []string {
	if q.Shape == schema.Auto {
		return nil
	}
	checks := []string{"present"}
	switch q.Shape {
	case schema.ScalarChoice, schema.MultiChoice, schema.Boolean:
		checks = append(checks, "valid_choice")
	case schema.Numeric:
		checks = append(checks, "numeric_ok")
	case schema.FreeText:
		if q.Vocabulary {
			checks = append(checks, "valid_choice")
		}
	}
	if q.DependsOn != nil || q.Scoped() {
		checks = append(checks, "dependency_ok")
	}
	if q.Shape == schema.GPS || q.Format != schema.NoFormat {
		checks = append(checks, "format_ok")
	}
	return checks
}
