package memberrepo

import (
	"context"
	"time"

	"github.com/coopdesk/memberdesk/internal/domain"
)

// Member is the persistence shape used by the member repository.
// It's used as an internal record, not an HTTP DTO.
type Member struct {
	ID domain.MemberID
	// AccountNumber is assigned by the repository on Create and never changes afterwards.
	AccountNumber int64

	domain.MemberFields

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository provides access to persisted members.
//
// Result ordering expectations:
// - List returns members in account-number order, which is creation order.
type Repository interface {
	// Create stores m and returns the stored row, including its assigned AccountNumber.
	// m.AccountNumber is ignored.
	Create(ctx context.Context, m Member) (Member, error)
	// Update replaces every client-supplied field of an existing member.
	// AccountNumber and CreatedAt are preserved.
	Update(ctx context.Context, m Member) (Member, error)
	Delete(ctx context.Context, id domain.MemberID) error

	GetByID(ctx context.Context, id domain.MemberID) (Member, error)
	List(ctx context.Context) ([]Member, error)
}
