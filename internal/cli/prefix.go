// Package cli provides CLI infrastructure for tasklist.
package cli

import (
	"strings"
)

// MatchID resolves a task id from a prefix.
// An exact match always wins; otherwise the prefix must match exactly one id.
// Matching is case-insensitive.
func MatchID(prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", &ValidationError{Message: "task id is required"}
	}
	lower := strings.ToLower(prefix)

	for _, id := range ids {
		if strings.ToLower(id) == lower {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(strings.ToLower(id), lower) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ID: prefix}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Prefix: prefix, Matches: matches}
	}
}
