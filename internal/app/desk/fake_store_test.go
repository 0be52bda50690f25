package desk

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/coopdesk/memberdesk/internal/domain"
	"github.com/coopdesk/memberdesk/internal/ports/out/memberstore"
)

var errBoom = errors.New("boom")

// fakeStore is an in-memory memberstore.Store that counts calls and can be told to fail.
type fakeStore struct {
	mu      sync.Mutex
	members []domain.Member
	nextID  int

	listErr, createErr, updateErr, deleteErr error

	listCalls, createCalls, updateCalls, deleteCalls int
	lastUpdate                                       domain.Member
}

var _ memberstore.Store = (*fakeStore)(nil)

func newFakeStore(ms ...domain.Member) *fakeStore {
	return &fakeStore{members: slices.Clone(ms), nextID: 100}
}

func (f *fakeStore) List(context.Context) ([]domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.members), nil
}

func (f *fakeStore) Create(_ context.Context, fields domain.MemberFields) (domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return domain.Member{}, f.createErr
	}
	f.nextID++
	m := domain.Member{
		ID:            domain.MemberID(fmt.Sprint(f.nextID)),
		AccountNumber: fmt.Sprint(f.nextID * 10),
		MemberFields:  fields,
	}
	f.members = append(f.members, m)
	return m, nil
}

func (f *fakeStore) Update(_ context.Context, m domain.Member) (domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastUpdate = m
	if f.updateErr != nil {
		return domain.Member{}, f.updateErr
	}
	i := slices.IndexFunc(f.members, func(x domain.Member) bool { return x.ID == m.ID })
	if i < 0 {
		return domain.Member{}, memberstore.ErrNotFound
	}
	m.AccountNumber = f.members[i].AccountNumber
	f.members[i] = m
	return m, nil
}

func (f *fakeStore) Delete(_ context.Context, id domain.MemberID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.members = slices.DeleteFunc(f.members, func(x domain.Member) bool { return x.ID == id })
	return nil
}

func (f *fakeStore) calls() (list, create, update, del int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls, f.updateCalls, f.deleteCalls
}
