// Package records implements the selection and normalization engine for
// LubeLogger API records: loosely-schemed JSON objects whose field names
// vary in casing across categories and API versions.
package records

// Record is one API entry in a category. Fields hold strings, numbers, or
// nil; records carry no identity beyond their fields.
type Record map[string]interface{}

// Probe returns the first non-nil, non-empty value among the candidate
// keys, in order. The API is inconsistent about field casing (both "Id" and
// "id" occur), so every lookup goes through an ordered candidate list.
func (r Record) Probe(keys ...string) (interface{}, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// ProbeString is Probe for fields expected to be strings. Non-string values
// are skipped.
func (r Record) ProbeString(keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s != "" {
			return s, true
		}
	}
	return "", false
}

// Filter keeps only the well-formed (map-shaped) entries of a raw JSON
// list. Malformed entries are discarded silently.
func Filter(raw []interface{}) []Record {
	out := make([]Record, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]interface{}); ok && len(m) > 0 {
			out = append(out, Record(m))
		}
	}
	return out
}
