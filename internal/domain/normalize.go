package domain

import "strings"

// NormalizeHumanName trims leading/trailing whitespace and collapses internal whitespace runs.
// It is used for first/middle/last name normalization.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// JoinName joins the non-empty name parts with single spaces.
func JoinName(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = NormalizeHumanName(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
