package memberrepo

import (
	"context"
	"testing"
	"time"

	"github.com/coopdesk/memberdesk/internal/domain"
	"github.com/coopdesk/memberdesk/internal/ports/out/memberrepo"
)

func TestRepo_CreateAndGet(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	now := time.Unix(100, 0).UTC()

	m := memberrepo.Member{
		ID: domain.MemberID("m1"),
		MemberFields: domain.MemberFields{
			FirstName: "Alice",
			LastName:  "Smith",
			Email:     "alice@example.com",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := r.Create(context.Background(), m)
	if err != nil {
		t.Fatalf("Create() err=%v", err)
	}
	if created.AccountNumber != 1 {
		t.Fatalf("Create().AccountNumber=%d, want 1", created.AccountNumber)
	}

	got, err := r.GetByID(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("GetByID() err=%v", err)
	}
	if got.ID != m.ID || got.FirstName != "Alice" || got.AccountNumber != 1 {
		t.Fatalf("GetByID()=%+v, want %+v", got, created)
	}
}

func TestRepo_CreateRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	m1 := memberrepo.Member{ID: "m1", MemberFields: domain.MemberFields{FirstName: "A", LastName: "A"}}
	m2 := memberrepo.Member{ID: "m1", MemberFields: domain.MemberFields{FirstName: "B", LastName: "B"}}

	if _, err := r.Create(context.Background(), m1); err != nil {
		t.Fatalf("Create(m1) err=%v", err)
	}
	if _, err := r.Create(context.Background(), m2); err != memberrepo.ErrAlreadyExists {
		t.Fatalf("Create(m2) err=%v, want %v", err, memberrepo.ErrAlreadyExists)
	}
}

func TestRepo_UpdatePreservesAccountNumberAndCreatedAt(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	created := time.Unix(100, 0).UTC()
	if _, err := r.Create(context.Background(), memberrepo.Member{
		ID:           "m1",
		MemberFields: domain.MemberFields{FirstName: "A", LastName: "A"},
		CreatedAt:    created,
	}); err != nil {
		t.Fatalf("Create() err=%v", err)
	}

	updated, err := r.Update(context.Background(), memberrepo.Member{
		ID:            "m1",
		AccountNumber: 999,
		MemberFields:  domain.MemberFields{FirstName: "B", LastName: "B"},
		CreatedAt:     time.Unix(500, 0).UTC(),
		UpdatedAt:     time.Unix(500, 0).UTC(),
	})
	if err != nil {
		t.Fatalf("Update() err=%v", err)
	}
	if updated.AccountNumber != 1 || !updated.CreatedAt.Equal(created) || updated.FirstName != "B" {
		t.Fatalf("Update()=%+v", updated)
	}

	if _, err := r.Update(context.Background(), memberrepo.Member{ID: "missing"}); err != memberrepo.ErrNotFound {
		t.Fatalf("Update(missing) err=%v, want %v", err, memberrepo.ErrNotFound)
	}
}

func TestRepo_ListKeepsCreationOrderAcrossDeletes(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	for _, id := range []domain.MemberID{"c", "a", "b"} {
		if _, err := r.Create(context.Background(), memberrepo.Member{ID: id}); err != nil {
			t.Fatalf("Create(%s) err=%v", id, err)
		}
	}
	if err := r.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("Delete() err=%v", err)
	}
	if err := r.Delete(context.Background(), "a"); err != memberrepo.ErrNotFound {
		t.Fatalf("second Delete() err=%v, want %v", err, memberrepo.ErrNotFound)
	}

	ms, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("List() err=%v", err)
	}
	if len(ms) != 2 || ms[0].ID != "c" || ms[1].ID != "b" {
		t.Fatalf("List()=%+v", ms)
	}
	if ms[0].AccountNumber != 1 || ms[1].AccountNumber != 3 {
		t.Fatalf("account numbers=%d,%d want 1,3", ms[0].AccountNumber, ms[1].AccountNumber)
	}
}
