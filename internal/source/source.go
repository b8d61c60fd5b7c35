// Package source loads raw survey records from a pre-extracted CSV or
// directly from a SQLite extract database. It is the boundary the core
// pipeline sees: everything downstream consumes normalize.RawRecord.
package source

import (
	"encoding/json"
	"strings"

	"github.com/runger/vcadq/internal/normalize"
)

// responsesColumn is the column holding the nested JSON answer object.
const responsesColumn = "responses"

// metaColumnSet marks columns carried as metadata rather than answers.
var metaColumnSet = map[string]bool{
	"response_id": true, "project_id": true, "questionnaire_id": true,
	"questionnaire_id_text": true, "uai_id": true, "adm_2_id": true,
	"submitted_by_id": true, "user_id": true, "created": true,
	"modified": true, "date_modified": true, "start_time": true,
	"end_time": true, "is_test": true, "farm_id": true,
}

// buildRecord assembles one raw record from a header and a value row.
// A "responses" column holding a JSON object is parsed into the answer map;
// any other non-metadata column becomes a direct answer keyed by its header.
// rowRef is the 1-based source row number including the header row, so it
// matches what a reviewer sees in a spreadsheet.
func buildRecord(header, values []string, rowRef int) normalize.RawRecord {
	rec := normalize.RawRecord{
		RowRef:  rowRef,
		Meta:    make(map[string]string),
		Answers: make(map[string]any),
	}

	for i, col := range header {
		if i >= len(values) {
			break
		}
		val := strings.TrimSpace(values[i])
		switch {
		case col == "response_id":
			rec.ResponseID = val
			rec.Meta[col] = val
		case col == responsesColumn:
			mergeResponses(rec.Answers, val)
		case metaColumnSet[col]:
			rec.Meta[col] = val
		default:
			if val != "" {
				rec.Answers[col] = val
			}
		}
	}
	return rec
}

// mergeResponses parses the JSON answer object into the answer map. An
// unparseable payload is dropped rather than failing the batch; the
// validation engine reports the resulting missing answers per question.
func mergeResponses(answers map[string]any, payload string) {
	if payload == "" {
		return
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return
	}
	for k, v := range obj {
		answers[k] = v
	}
}
