// Package normalize turns raw survey records into typed, uniformly keyed
// answers that the validation engine and pivoter can consume.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/runger/vcadq/internal/schema"
)

// RawRecord is one extracted survey response, as supplied by the source
// layer. Answers is the parsed JSON response object; values may be strings,
// numbers, booleans, lists, or nested objects. The record is never mutated
// after loading.
type RawRecord struct {
	ResponseID string
	RowRef     int               // 1-based source row, +1 for the header row
	Meta       map[string]string // fixed metadata columns (timestamps, ids)
	Answers    map[string]any
}

// GPS is a decoded coordinate pair.
type GPS struct {
	Latitude  float64
	Longitude float64
}

// Answer is one question's normalized value for one response. Missing is an
// explicit marker distinct from an empty string: the key was absent from the
// raw record.
type Answer struct {
	Missing      bool
	Raw          string   // scalar rendering, trimmed
	Tokens       []string // multi-choice tokens, trimmed, order preserved
	GPS          *GPS     // decoded pair for GPS-shaped questions
	MalformedGPS bool     // GPS payload present but undecodable
}

// Empty reports whether the answer carries no usable value.
func (a Answer) Empty() bool {
	return a.Missing || (a.Raw == "" && len(a.Tokens) == 0 && a.GPS == nil)
}

// Key addresses an answer by question and category dimension. Global answers
// use an empty Suffix.
type Key struct {
	Question string
	Suffix   string
}

// Answers holds every normalized answer of one response, indexed by
// (question, category suffix).
type Answers struct {
	ResponseID string
	RowRef     int
	Meta       map[string]string
	byKey      map[Key]Answer
}

// Get returns the answer for a question's global value.
func (a *Answers) Get(question string) Answer {
	return a.GetScoped(question, "")
}

// GetScoped returns the answer for a question within one category.
func (a *Answers) GetScoped(question, suffix string) Answer {
	ans, ok := a.byKey[Key{Question: question, Suffix: suffix}]
	if !ok {
		return Answer{Missing: true}
	}
	return ans
}

// Normalize extracts every registry question's answer from the raw record.
// Category-scoped questions are probed once per canonical category using the
// "<rawkey>_<suffix>" key convention. Absent keys yield the Missing marker;
// undecodable GPS payloads yield MalformedGPS instead of an error so a single
// bad record cannot abort the batch.
func Normalize(reg *schema.Registry, rec RawRecord) *Answers {
	out := &Answers{
		ResponseID: rec.ResponseID,
		RowRef:     rec.RowRef,
		Meta:       rec.Meta,
		byKey:      make(map[Key]Answer),
	}

	for _, q := range reg.Questions() {
		if q.Shape == schema.Auto {
			out.byKey[Key{Question: q.Key}] = Answer{Raw: strconv.Itoa(rec.RowRef)}
			continue
		}
		if !q.Scoped() {
			out.byKey[Key{Question: q.Key}] = normalizeOne(q, rec.Answers, q.RawKey)
			continue
		}
		for _, code := range q.Scope {
			cat, ok := schema.CategoryByCode(code)
			if !ok {
				continue // registry construction already rejects this
			}
			k := Key{Question: q.Key, Suffix: cat.Suffix}
			out.byKey[k] = normalizeOne(q, rec.Answers, q.RawKey+"_"+cat.Suffix)
		}
	}
	return out
}

// normalizeOne extracts and shapes a single raw value.
func normalizeOne(q schema.Question, raw map[string]any, key string) Answer {
	v, ok := raw[key]
	if !ok || v == nil {
		return Answer{Missing: true}
	}

	switch q.Shape {
	case schema.MultiChoice:
		return Answer{Tokens: toTokens(v), Raw: asString(v)}
	case schema.GPS:
		return decodeGPS(v)
	default:
		return Answer{Raw: asString(v)}
	}
}

// asString renders a raw value as a trimmed string. Structured values fall
// back to their JSON rendering, matching how the extractor serializes them.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		// encoding/json decodes every number as float64.
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return strings.TrimSpace(fmt.Sprint(v))
		}
		return string(b)
	}
}

// toTokens normalizes a multi-choice raw value to an ordered token list.
// Accepted shapes: a JSON array (decoded or still a string), a Go slice,
// or a single delimiter-joined string. Tokens are trimmed; empty tokens are
// dropped; original order is preserved.
func toTokens(v any) []string {
	switch t := v.(type) {
	case []any:
		var tokens []string
		for _, item := range t {
			if s := asString(item); s != "" {
				tokens = append(tokens, s)
			}
		}
		return tokens
	case []string:
		var tokens []string
		for _, item := range t {
			if s := strings.TrimSpace(item); s != "" {
				tokens = append(tokens, s)
			}
		}
		return tokens
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
			var arr []any
			if err := json.Unmarshal([]byte(s), &arr); err == nil {
				return toTokens(arr)
			}
		}
		return splitJoined(s)
	default:
		if s := asString(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

// splitJoined splits a delimiter-joined multi-choice string. The pipe is
// checked first since it is the joiner the pivoter itself emits.
func splitJoined(s string) []string {
	sep := ""
	for _, cand := range []string{"|", ";", ","} {
		if strings.Contains(s, cand) {
			sep = cand
			break
		}
	}
	if sep == "" {
		return []string{s}
	}
	var tokens []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// decodeGPS decodes a coordinate payload: either a decoded JSON object or a
// JSON string holding one, with latitude/longitude as numbers or numeric
// strings. Anything else is flagged malformed, not raised.
func decodeGPS(v any) Answer {
	obj, ok := v.(map[string]any)
	if !ok {
		s, isStr := v.(string)
		if !isStr {
			return Answer{Raw: asString(v), MalformedGPS: true}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return Answer{Missing: true}
		}
		if err := json.Unmarshal([]byte(s), &obj); err != nil {
			return Answer{Raw: s, MalformedGPS: true}
		}
	}

	lat, okLat := numField(obj, "latitude")
	lon, okLon := numField(obj, "longitude")
	if !okLat || !okLon {
		return Answer{Raw: asString(obj), MalformedGPS: true}
	}
	return Answer{
		Raw: asString(obj),
		GPS: &GPS{Latitude: lat, Longitude: lon},
	}
}

func numField(obj map[string]any, key string) (float64, bool) {
	v, ok := obj[key]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// truthyTokens are the raw spellings accepted as "true" for boolean-ish
// flag fields in legacy extracts.
var truthyTokens = map[string]bool{
	"yes": true, "true": true, "1": true, "y": true, "on": true, "checked": true,
}

// Truthy reports whether a raw value spells an affirmative.
func Truthy(v string) bool {
	return truthyTokens[strings.ToLower(strings.TrimSpace(v))]
}

// CleanNumber parses a numeric answer, tolerating thousand separators and
// trailing unit junk ("1,200 kgs" -> 1200). Returns false when no number can
// be recovered.
func CleanNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// First word with thousand separators stripped.
	first := strings.Fields(strings.ReplaceAll(s, ",", ""))
	if len(first) > 0 {
		if f, err := strconv.ParseFloat(first[0], 64); err == nil {
			return f, true
		}
	}
	// Fall back to stripping everything non-numeric.
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
