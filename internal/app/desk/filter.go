package desk

import (
	"strings"

	"github.com/samber/lo"

	"github.com/coopdesk/memberdesk/internal/domain"
)

// Filter returns the members whose full name contains query (ignoring case)
// or whose account number contains query verbatim. Order is preserved and an
// empty query returns every member.
func Filter(members []domain.Member, query string) []domain.Member {
	if query == "" {
		return members
	}
	q := strings.ToLower(query)
	return lo.Filter(members, func(m domain.Member, _ int) bool {
		return Matches(m, q, query)
	})
}

// Matches is the predicate behind Filter. lowerQuery must be strings.ToLower(query).
func Matches(m domain.Member, lowerQuery, query string) bool {
	if strings.Contains(strings.ToLower(m.FullName()), lowerQuery) {
		return true
	}
	return m.AccountNumber != "" && strings.Contains(m.AccountNumber, query)
}
