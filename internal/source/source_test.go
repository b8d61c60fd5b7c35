package source

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "extract.csv",
		"response_id,project_id,responses,q_business_name_hs\n"+
			`r1,p7,"{""q_type_of_vca"": ""Individual"", ""fr_age"": 42}",Kasese Hullers`+"\n"+
			"r2,p7,,\n")

	records, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	r1 := records[0]
	assert.Equal(t, "r1", r1.ResponseID)
	assert.Equal(t, 2, r1.RowRef) // header is row 1
	assert.Equal(t, "p7", r1.Meta["project_id"])
	assert.Equal(t, "Individual", r1.Answers["q_type_of_vca"])
	assert.Equal(t, float64(42), r1.Answers["fr_age"])
	assert.Equal(t, "Kasese Hullers", r1.Answers["q_business_name_hs"])

	r2 := records[1]
	assert.Equal(t, "r2", r2.ResponseID)
	assert.Equal(t, 3, r2.RowRef)
	assert.Empty(t, r2.Answers)
}

func TestLoadCSVRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ragged.csv",
		"response_id,project_id,q_type_of_vca\n"+
			"r1,p7\n")

	records, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "r1", records[0].ResponseID)
	_, ok := records[0].Answers["q_type_of_vca"]
	assert.False(t, ok)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadCSVEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.csv", "")
	_, err := LoadCSV(path)
	assert.Error(t, err)
}

func TestBuildRecordUnparseableResponses(t *testing.T) {
	rec := buildRecord(
		[]string{"response_id", "responses"},
		[]string{"r1", "{not json"},
		2,
	)
	assert.Equal(t, "r1", rec.ResponseID)
	assert.Empty(t, rec.Answers)
}

func TestLoadQueries(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "queries.sql", `
-- QUERY_RAW_EXTRACT_START
SELECT response_id, responses FROM survey_responses
-- QUERY_RAW_EXTRACT_END

-- QUERY_COUNTS_START
SELECT COUNT(*) FROM survey_responses
-- QUERY_COUNTS_END
`)

	queries, err := LoadQueries(path)
	require.NoError(t, err)
	assert.Len(t, queries, 2)
	assert.Contains(t, queries["RAW_EXTRACT"], "SELECT response_id")

	q, err := LoadQuery(path, "COUNTS")
	require.NoError(t, err)
	assert.Contains(t, q, "COUNT(*)")

	_, err = LoadQuery(path, "MISSING")
	assert.Error(t, err)
}

func TestLoadQueriesNoMarkers(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.sql", "SELECT 1")
	_, err := LoadQueries(path)
	assert.Error(t, err)
}

func TestSQLiteExtract(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "extract.db")

	seed, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = seed.Exec(`CREATE TABLE survey_responses (response_id TEXT, project_id TEXT, responses TEXT)`)
	require.NoError(t, err)
	_, err = seed.Exec(`INSERT INTO survey_responses VALUES
		('r1', 'p7', '{"q_type_of_vca": "Individual"}'),
		('r2', 'p7', NULL)`)
	require.NoError(t, err)
	require.NoError(t, seed.Close())

	src, err := OpenSQLite(dbPath)
	require.NoError(t, err)
	defer src.Close()

	records, err := src.Extract(context.Background(), `SELECT response_id, project_id, responses FROM survey_responses ORDER BY response_id`)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "r1", records[0].ResponseID)
	assert.Equal(t, 2, records[0].RowRef)
	assert.Equal(t, "Individual", records[0].Answers["q_type_of_vca"])
	assert.Equal(t, "r2", records[1].ResponseID)
	assert.Empty(t, records[1].Answers)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "VCADQ_TEST_SENTINEL=from_env_file\n")
	t.Setenv("VCADQ_TEST_SENTINEL", "")
	os.Unsetenv("VCADQ_TEST_SENTINEL")

	require.NoError(t, LoadDotEnv(dir))
	assert.Equal(t, "from_env_file", os.Getenv("VCADQ_TEST_SENTINEL"))

	// A directory without a .env file is fine.
	require.NoError(t, LoadDotEnv(t.TempDir()))
}
