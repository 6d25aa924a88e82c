// Package casing rewrites snake_case record keys into the camelCase keys used
// on the wire.
package casing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CamelKey joins the '_'-separated segments of key, upper-casing the first
// letter of every segment after the first and lower-casing the first letter
// of the result: "comments_count" -> "commentsCount".
func CamelKey(key string) string {
	if !strings.Contains(key, "_") {
		return lowerFirst(key)
	}
	var b strings.Builder
	b.Grow(len(key))
	for _, seg := range strings.Split(key, "_") {
		if seg == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(seg[size:])
	}
	return lowerFirst(b.String())
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// CamelizeKeys returns a copy of m with every key rewritten by CamelKey.
// Nested maps are rewritten recursively; slices and all other values are
// copied as they are. When several keys map to the same camelCase key, a key
// already in that form wins, otherwise the first in sorted order does.
func CamelizeKeys(m map[string]interface{}) map[string]interface{} {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]interface{}, len(m))
	for _, k := range keys {
		ck := CamelKey(k)
		if _, clash := out[ck]; clash && k != ck {
			continue
		}
		v := m[k]
		if nested, ok := v.(map[string]interface{}); ok {
			v = CamelizeKeys(nested)
		}
		out[ck] = v
	}
	return out
}

// FromStruct encodes v through its json tags into a generic map and camelizes
// the keys. v must encode to a JSON object.
func FromStruct(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("casing: marshal %T: %w", v, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("casing: %T is not an object: %w", v, err)
	}
	return CamelizeKeys(m), nil
}
