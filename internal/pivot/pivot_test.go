package pivot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/vcadq/internal/category"
	"github.com/runger/vcadq/internal/dqc"
	"github.com/runger/vcadq/internal/normalize"
	"github.com/runger/vcadq/internal/schema"
)

func pipelineRow(t *testing.T, raw map[string]any, opts Options) (Row, *Pivoter) {
	t.Helper()
	reg, err := schema.Default()
	require.NoError(t, err)
	ans := normalize.Normalize(reg, normalize.RawRecord{ResponseID: "r1", RowRef: 2, Answers: raw})
	sel := category.Resolve(ans)
	res := dqc.NewEngine(reg).Validate(ans, sel)
	p := New(reg, opts)
	row, err := p.Pivot(ans, res)
	require.NoError(t, err)
	return row, p
}

func TestMergedCellCanonicalOrder(t *testing.T) {
	// Source selection order is Traders then Stores; the merged cell must
	// still render STORE before TRADER (canonical order, never selection
	// order).
	row, _ := pipelineRow(t, map[string]any{
		"q_business_category":    []any{"Traders", "Stores"},
		"q_business_name_trader": "Trade Co",
		"q_business_name_store":  "Store Co",
	}, Options{LabelCategories: true})

	assert.Equal(t, "STORE: Store Co | TRADER: Trade Co", row.Cell("q15_business_name"))
}

func TestMergedCellWithoutLabels(t *testing.T) {
	row, _ := pipelineRow(t, map[string]any{
		"q_business_category":    []any{"Traders", "Stores"},
		"q_business_name_trader": "Trade Co",
		"q_business_name_store":  "Store Co",
	}, Options{})

	assert.Equal(t, "Store Co | Trade Co", row.Cell("q15_business_name"))
}

func TestCustomJoiner(t *testing.T) {
	row, _ := pipelineRow(t, map[string]any{
		"q_business_category":    []any{"Traders", "Stores"},
		"q_business_name_trader": "Trade Co",
		"q_business_name_store":  "Store Co",
	}, Options{Joiner: " / "})

	assert.Equal(t, "Store Co / Trade Co", row.Cell("q15_business_name"))
}

func TestMultiChoiceTokensJoined(t *testing.T) {
	row, _ := pipelineRow(t, map[string]any{
		"q_business_category": []any{"Stores", "Traders"},
	}, Options{})

	assert.Equal(t, "Stores | Traders", row.Cell("q13_business_category"))
}

func TestDQCColumns(t *testing.T) {
	row, _ := pipelineRow(t, map[string]any{
		"q_type_of_vca": "Sole Trader",
		"fr_age":        "42",
	}, Options{IncludeDQC: true})

	assert.Equal(t, "True", row.Cell("q1_type_of_vca__dq_present"))
	assert.Equal(t, "False", row.Cell("q1_type_of_vca__dq_valid_choice"))
	assert.Equal(t, "False", row.Cell("q1_type_of_vca__dq_pass"))
	assert.Equal(t, "invalid_choice", row.Cell("q1_type_of_vca__dq_failed_reason"))

	assert.Equal(t, "True", row.Cell("q4_age__dq_numeric_ok"))
	assert.Equal(t, "True", row.Cell("q4_age__dq_pass"))
	assert.Equal(t, "", row.Cell("q4_age__dq_failed_reason"))
}

func TestVacuousConditionalRendersEmptyFlags(t *testing.T) {
	row, _ := pipelineRow(t, map[string]any{
		"q_vca_id_number_available": "No",
	}, Options{IncludeDQC: true})

	// Trigger false: no sub-check applies, so flag cells stay empty and
	// only the overall pass is rendered.
	assert.Equal(t, "", row.Cell("q9_national_id_number__dq_present"))
	assert.Equal(t, "", row.Cell("q9_national_id_number__dq_dependency_ok"))
	assert.Equal(t, "True", row.Cell("q9_national_id_number__dq_pass"))
}

func TestSatisfiedConditionalRendersTrueFlags(t *testing.T) {
	row, _ := pipelineRow(t, map[string]any{
		"q_vca_id_number_available": "Yes",
		"q_vca_id_number":           "CM123456789",
	}, Options{IncludeDQC: true})

	// Trigger true and answered: the dependency flag cell reads True, so it
	// cannot be confused with the vacuous empty cell.
	assert.Equal(t, "True", row.Cell("q9_national_id_number__dq_present"))
	assert.Equal(t, "True", row.Cell("q9_national_id_number__dq_dependency_ok"))
	assert.Equal(t, "True", row.Cell("q9_national_id_number__dq_pass"))
}

func TestScopedDQCFlagsAreANDedAcrossCategories(t *testing.T) {
	row, _ := pipelineRow(t, map[string]any{
		"q_business_category":   []any{"Stores", "Hulling station"},
		"q_business_name_store": "Store Co",
		// hs name missing while HS is selected -> that instance fails.
	}, Options{IncludeDQC: true})

	assert.Equal(t, "False", row.Cell("q15_business_name__dq_present"))
	assert.Equal(t, "False", row.Cell("q15_business_name__dq_pass"))
	assert.Contains(t, row.Cell("q15_business_name__dq_failed_reason"), "missing_for_category:HS")
}

func TestHeaderLayout(t *testing.T) {
	reg, err := schema.Default()
	require.NoError(t, err)
	p := New(reg, Options{IncludeDQC: true})
	header := p.Header()

	// Metadata block first.
	require.GreaterOrEqual(t, len(header), len(MetaColumns))
	assert.Equal(t, MetaColumns, header[:len(MetaColumns)])

	// Each question's value column is immediately followed by its declared
	// flag columns, then pass, then failed_reason.
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}
	i, ok := idx["q4_age"]
	require.True(t, ok)
	assert.Equal(t, "q4_age__dq_present", header[i+1])
	assert.Equal(t, "q4_age__dq_numeric_ok", header[i+2])
	assert.Equal(t, "q4_age__dq_pass", header[i+3])
	assert.Equal(t, "q4_age__dq_failed_reason", header[i+4])

	// Registry order: q1 before q2 before q4.
	assert.Less(t, idx["q1_type_of_vca"], idx["q2_vca_position"])
	assert.Less(t, idx["q2_vca_position"], idx["q4_age"])
}

func TestHeaderWithoutDQC(t *testing.T) {
	reg, err := schema.Default()
	require.NoError(t, err)
	header := New(reg, Options{}).Header()

	assert.Equal(t, len(MetaColumns)+reg.Len(), len(header))
	for _, col := range header {
		assert.NotContains(t, col, "__dq_")
	}
}

func TestAssembleDeterminism(t *testing.T) {
	raw := map[string]any{
		"q_business_category":    []any{"Traders", "Stores"},
		"q_business_name_trader": "Trade Co",
		"q_type_of_vca":          "Individual",
		"fr_age":                 "42",
		"q_vca_gps":              map[string]any{"latitude": 0.32, "longitude": 32.58},
	}

	build := func() Table {
		row, p := pipelineRow(t, raw, Options{IncludeDQC: true, LabelCategories: true})
		return p.Assemble([]Row{row})
	}

	first := build()
	second := build()
	assert.Equal(t, first.Header, second.Header)
	assert.Equal(t, first.Rows, second.Rows)
}

func TestMetadataCells(t *testing.T) {
	reg, err := schema.Default()
	require.NoError(t, err)
	ans := normalize.Normalize(reg, normalize.RawRecord{
		ResponseID: "r42",
		RowRef:     2,
		Meta:       map[string]string{"project_id": "p7", "created": "2024-01-01"},
		Answers:    map[string]any{},
	})
	res := dqc.NewEngine(reg).Validate(ans, category.Selection{})
	p := New(reg, Options{})
	row, err := p.Pivot(ans, res)
	require.NoError(t, err)

	assert.Equal(t, "r42", row.Cell("response_id"))
	assert.Equal(t, "p7", row.Cell("project_id"))
	assert.Equal(t, "2024-01-01", row.Cell("created"))
	assert.Equal(t, "", row.Cell("uai_id"))
}

func TestLongFormat(t *testing.T) {
	reg, err := schema.Default()
	require.NoError(t, err)
	ans := normalize.Normalize(reg, normalize.RawRecord{ResponseID: "r1", RowRef: 5, Answers: map[string]any{
		"q_type_of_vca": "Individual",
	}})
	sel := category.Resolve(ans)
	res := dqc.NewEngine(reg).Validate(ans, sel)
	p := New(reg, Options{})

	rows := p.Long(ans, res)
	require.NotEmpty(t, rows)
	assert.Len(t, rows[0], len(LongHeader))

	byQuestion := make(map[string][]string)
	for _, r := range rows {
		byQuestion[r[2]] = r
	}
	q1 := byQuestion["q1_type_of_vca"]
	require.NotNil(t, q1)
	assert.Equal(t, "r1", q1[0])
	assert.Equal(t, "5", q1[1])
	assert.Equal(t, "Individual", q1[4])
	assert.Equal(t, "True", q1[10]) // dq_pass
}
