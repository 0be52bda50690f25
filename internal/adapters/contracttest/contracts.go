package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/coopdesk/memberdesk/internal/domain"
	idempotencyport "github.com/coopdesk/memberdesk/internal/ports/out/idempotency"
	memberrepoport "github.com/coopdesk/memberdesk/internal/ports/out/memberrepo"
)

type CleanupFunc = func()

type MemberRepoFactory func(t *testing.T) (memberrepoport.Repository, CleanupFunc)
type IdemStoreFactory func(t *testing.T) (idempotencyport.Store, CleanupFunc)

func RunIdempotencyStore(t *testing.T, newStore IdemStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	// Unique key per run so shared backends (Postgres/Redis) don't see stale rows.
	fp := idempotencyport.Fingerprint{
		Key:      idempotencyport.Key("k-" + uuid.NewString()),
		Method:   "POST",
		Route:    "/members",
		BodyHash: "",
	}
	if _, ok, err := store.Get(ctx, fp); err != nil || ok {
		t.Fatalf("Get before Put: ok=%v err=%v", ok, err)
	}

	rec := idempotencyport.Record{
		StatusCode:  0,
		ContentType: "text/plain",
		Body:        []byte("hash-abc"),
		CreatedAt:   time.Unix(123, 0).UTC(),
	}
	if err := store.Put(ctx, fp, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := store.Get(ctx, fp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if string(got.Body) != "hash-abc" || got.ContentType != "text/plain" || got.StatusCode != 0 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Overwrite semantics.
	rec2 := rec
	rec2.Body = []byte("hash-def")
	if err := store.Put(ctx, fp, rec2); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, ok, err = store.Get(ctx, fp)
	if err != nil || !ok || string(got.Body) != "hash-def" {
		t.Fatalf("expected overwritten record, got ok=%v err=%v body=%q", ok, err, string(got.Body))
	}

	// Body hash is part of the fingerprint.
	respFP := fp
	respFP.BodyHash = "hash-def"
	if _, ok, err := store.Get(ctx, respFP); err != nil || ok {
		t.Fatalf("Get with different body hash: ok=%v err=%v", ok, err)
	}
}

func RunMemberRepo(t *testing.T, newRepo MemberRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	aID := domain.MemberID(uuid.NewString())
	a, err := repo.Create(ctx, memberrepoport.Member{
		ID: aID,
		MemberFields: domain.MemberFields{
			FirstName:          "Alice",
			LastName:           "Johnson",
			Email:              "alice@example.com",
			BirthDate:          "1990-04-01",
			Gender:             domain.GenderFemale,
			RelationshipStatus: domain.StatusSingle,
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if a.AccountNumber <= 0 {
		t.Fatalf("expected assigned account number, got %d", a.AccountNumber)
	}
	got, err := repo.GetByID(ctx, aID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FirstName != "Alice" || got.BirthDate != "1990-04-01" || got.Gender != domain.GenderFemale {
		t.Fatalf("unexpected member: %#v", got)
	}

	// ID uniqueness.
	if _, err := repo.Create(ctx, memberrepoport.Member{
		ID:           aID,
		MemberFields: domain.MemberFields{FirstName: "Alice", LastName: "Again"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}); !errors.Is(err, memberrepoport.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// Account numbers grow with creation order and List follows them.
	bID := domain.MemberID(uuid.NewString())
	b, err := repo.Create(ctx, memberrepoport.Member{
		ID:           bID,
		MemberFields: domain.MemberFields{FirstName: "bob", LastName: "Stone"},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Create b: %v", err)
	}
	if b.AccountNumber <= a.AccountNumber {
		t.Fatalf("account numbers not increasing: a=%d b=%d", a.AccountNumber, b.AccountNumber)
	}
	ms, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if idx(ms, aID) < 0 || idx(ms, bID) < 0 || idx(ms, aID) > idx(ms, bID) {
		t.Fatalf("unexpected ordering: %#v", ms)
	}

	// Update replaces fields but keeps the account number.
	later := now.Add(time.Hour)
	upd, err := repo.Update(ctx, memberrepoport.Member{
		ID:           aID,
		MemberFields: domain.MemberFields{FirstName: "Alicia", LastName: "Johnson"},
		UpdatedAt:    later,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if upd.AccountNumber != a.AccountNumber || upd.FirstName != "Alicia" || upd.Email != "" {
		t.Fatalf("unexpected update result: %#v", upd)
	}
	if _, err := repo.Update(ctx, memberrepoport.Member{ID: domain.MemberID(uuid.NewString())}); !errors.Is(err, memberrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}

	// Delete.
	if err := repo.Delete(ctx, aID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, aID); !errors.Is(err, memberrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, aID); !errors.Is(err, memberrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func idx(ms []memberrepoport.Member, id domain.MemberID) int {
	for i, m := range ms {
		if m.ID == id {
			return i
		}
	}
	return -1
}
