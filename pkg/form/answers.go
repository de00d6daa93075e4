package form

import (
	"sort"
	"strings"
)

// AnswerMap is the flattened set of answers assembled at submission time,
// keyed by field id.
type AnswerMap map[string]string

// Get returns the answer for id, or "" when absent.
func (a AnswerMap) Get(id string) string {
	return a[id]
}

// Present reports whether id has a non-blank answer.
func (a AnswerMap) Present(id string) bool {
	return strings.TrimSpace(a[id]) != ""
}

// Keys returns the answer keys in sorted order.
func (a AnswerMap) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy.
func (a AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Redacted returns a copy with the given ids replaced by marker when set.
func (a AnswerMap) Redacted(marker string, ids ...string) AnswerMap {
	out := a.Clone()
	for _, id := range ids {
		if _, ok := out[id]; ok && out[id] != "" {
			out[id] = marker
		}
	}
	return out
}

// Payload returns the flat key to value object sent by submission hooks.
// Every value is a string because field ids are unique within a schema.
func (a AnswerMap) Payload() map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
