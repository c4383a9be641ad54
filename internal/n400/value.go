// Package n400 maps an applicant intake record onto the field identifiers of
// the USCIS N-400 PDF template.
package n400

import (
	"encoding/json"
	"sort"
	"strings"
)

// Value is what a single template field is set to: either free text or the
// on-state token of a checkbox or radio widget. The zero Value is never
// written; an unset field is simply absent from Fields.
type Value struct {
	text  string
	token string
}

// Text returns a free-text value.
func Text(s string) Value {
	return Value{text: s}
}

// On returns the on-state value for a button field. The token may be given
// with or without its leading slash.
func On(token string) Value {
	return Value{token: strings.TrimPrefix(token, "/")}
}

// IsToken reports whether v selects a checkbox or radio state.
func (v Value) IsToken() bool {
	return v.token != ""
}

// Token returns the on-state name without its leading slash.
func (v Value) Token() string {
	return v.token
}

// String renders tokens as PDF names ("/Y") and text as-is.
func (v Value) String() string {
	if v.token != "" {
		return "/" + v.token
	}
	return v.text
}

// MarshalJSON encodes v as its String form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// Fields maps template field identifiers to values.
type Fields map[string]Value

// Names returns the field identifiers in lexical order.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Strings flattens the mapping to its rendered string form.
func (f Fields) Strings() map[string]string {
	out := make(map[string]string, len(f))
	for name, v := range f {
		out[name] = v.String()
	}
	return out
}

func (f Fields) setText(field, value string) {
	if value == "" {
		return
	}
	f[field] = Text(value)
}

func (f Fields) setOn(field, token string) {
	f[field] = On(token)
}
