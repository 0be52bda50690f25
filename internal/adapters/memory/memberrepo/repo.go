package memberrepo

import (
	"context"
	"slices"
	"sync"

	"github.com/coopdesk/memberdesk/internal/domain"
	"github.com/coopdesk/memberdesk/internal/ports/out/memberrepo"
)

// Repo is an in-memory implementation of memberrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID  map[domain.MemberID]memberrepo.Member
	order []domain.MemberID

	lastAccount int64
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.MemberID]memberrepo.Member),
	}
}

func (r *Repo) Create(ctx context.Context, m memberrepo.Member) (memberrepo.Member, error) {
	_ = ctx
	if m.ID == "" {
		return memberrepo.Member{}, memberrepo.ErrAlreadyExists // treat empty ID as invalid; the app layer always assigns one
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[m.ID]; ok {
		return memberrepo.Member{}, memberrepo.ErrAlreadyExists
	}

	r.lastAccount++
	m.AccountNumber = r.lastAccount
	r.byID[m.ID] = m
	r.order = append(r.order, m.ID)
	return m, nil
}

func (r *Repo) Update(ctx context.Context, m memberrepo.Member) (memberrepo.Member, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[m.ID]
	if !ok {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	// Account number and creation time are owned by the repository.
	m.AccountNumber = existing.AccountNumber
	m.CreatedAt = existing.CreatedAt

	r.byID[m.ID] = m
	return m, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.MemberID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return memberrepo.ErrNotFound
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(v domain.MemberID) bool { return v == id })
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (memberrepo.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return memberrepo.Member{}, memberrepo.ErrNotFound
	}
	return m, nil
}

func (r *Repo) List(ctx context.Context) ([]memberrepo.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]memberrepo.Member, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
