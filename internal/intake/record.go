// Package intake holds the applicant intake payload and the accessors the
// field mapper reads it through.
package intake

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"
)

// Record is an untyped tree of named intake fields as decoded from JSON.
// Scalars are expected to be strings; numbers and booleans are accepted and
// rendered in their textual form. A missing key, null and "" all mean
// "not provided".
type Record map[string]any

// Decode reads a single JSON object from r.
func Decode(r io.Reader) (Record, error) {
	var rec Record
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("invalid intake payload: %w", err)
	}
	return rec, nil
}

// Parse decodes a JSON object held in data.
func Parse(data []byte) (Record, error) {
	return Decode(bytes.NewReader(data))
}

// Empty reports whether the record carries no keys at all.
func (r Record) Empty() bool {
	return len(r) == 0
}

// String returns the scalar stored under key, or "" when the key is absent,
// null or holds a non-scalar value.
func (r Record) String(key string) string {
	if r == nil {
		return ""
	}
	return scalar(r[key])
}

// Has reports whether key holds a non-empty scalar or a non-empty list.
func (r Record) Has(key string) bool {
	if r.String(key) != "" {
		return true
	}
	return len(r.List(key)) > 0
}

// Lower returns the scalar under key lower-cased and trimmed, for matching
// against closed option tables.
func (r Record) Lower(key string) string {
	return strings.ToLower(strings.TrimSpace(r.String(key)))
}

// List returns the repeated group stored under key. Elements that are not
// objects are skipped but keep their position as an empty record so that
// ordinals stay aligned with the input. A string value is accepted when it
// holds a JSON-encoded array of objects.
func (r Record) List(key string) []Record {
	if r == nil {
		return nil
	}

	var items []any
	switch v := r[key].(type) {
	case []any:
		items = v
	case []map[string]any:
		out := make([]Record, len(v))
		for i, m := range v {
			out[i] = Record(m)
		}
		return out
	case []Record:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(v), &items); err != nil {
			return nil
		}
	default:
		return nil
	}

	out := make([]Record, 0, len(items))
	for _, item := range items {
		switch m := item.(type) {
		case map[string]any:
			out = append(out, Record(m))
		case Record:
			out = append(out, m)
		default:
			out = append(out, Record{})
		}
	}
	return out
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case map[string]any, []any:
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}
