// Package tags normalizes skill tags supplied either as a list or a comma-separated string.
package tags

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Normalize trims every tag, drops empty ones and removes case-insensitive duplicates.
// The first spelling of a tag wins and order is preserved.
func Normalize(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, tag := range in {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// Parse splits a comma-separated string into normalized tags.
func Parse(s string) []string {
	return Normalize(strings.Split(s, ","))
}

// FromForm accepts the values of a repeated form field, each of which may itself be comma-separated.
func FromForm(values []string) []string {
	var parts []string
	for _, v := range values {
		parts = append(parts, strings.Split(v, ",")...)
	}
	return Normalize(parts)
}

// List decodes from a JSON array of strings or a single comma-separated string.
type List []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *List) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var asSlice []string
	if err := json.Unmarshal(data, &asSlice); err == nil {
		*l = Normalize(asSlice)
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return fmt.Errorf("tags must be a list of strings or a comma-separated string")
	}
	*l = Parse(asString)
	return nil
}
