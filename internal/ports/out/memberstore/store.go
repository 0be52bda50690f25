// Package memberstore is the desk's view of the remote member-storage API.
package memberstore

import (
	"context"
	"errors"

	"github.com/coopdesk/memberdesk/internal/domain"
)

var (
	// ErrNotFound indicates the store has no member with the addressed ID.
	ErrNotFound = errors.New("member not found in store")

	// ErrRejected indicates the store refused the payload (validation or conflict).
	ErrRejected = errors.New("member rejected by store")
)

// Store is a REST-style member collection owned by someone else.
//
// Implementations must not retry or de-duplicate requests: every call is one request.
type Store interface {
	// List returns the whole collection in store order.
	List(ctx context.Context) ([]domain.Member, error)
	// Create asks the store to create a member; the result carries the store-assigned ID
	// and any store-computed fields such as the account number.
	Create(ctx context.Context, f domain.MemberFields) (domain.Member, error)
	// Update replaces the member addressed by m.ID with m's fields.
	Update(ctx context.Context, m domain.Member) (domain.Member, error)
	Delete(ctx context.Context, id domain.MemberID) error
}
