package source

import (
	"fmt"
	"os"
	"regexp"
)

// queryMarker matches one named query delimited by
// "-- QUERY_<name>_START" / "-- QUERY_<name>_END" comment markers, the
// convention the extraction SQL files use so analysts can keep several
// queries in one reviewed file.
var queryMarker = regexp.MustCompile(`(?s)-- QUERY_(\w+)_START\n(.*?)\n-- QUERY_\w+_END`)

// LoadQueries parses every marker-delimited query from a SQL file.
func LoadQueries(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", err)
	}

	queries := make(map[string]string)
	for _, m := range queryMarker.FindAllStringSubmatch(string(content), -1) {
		queries[m[1]] = m[2]
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("no marker-delimited queries found in %s", path)
	}
	return queries, nil
}

// LoadQuery returns one named query from a marker-delimited SQL file.
func LoadQuery(path, name string) (string, error) {
	queries, err := LoadQueries(path)
	if err != nil {
		return "", err
	}
	q, ok := queries[name]
	if !ok {
		return "", fmt.Errorf("query %q not found in %s", name, path)
	}
	return q, nil
}
