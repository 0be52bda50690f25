package itest

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/coopdesk/memberdesk/internal/adapters/restclient"
	"github.com/coopdesk/memberdesk/internal/app/desk"
	"github.com/coopdesk/memberdesk/internal/domain"
	"github.com/coopdesk/memberdesk/internal/ports/out/memberstore"
)

func TestDesk_ITest(t *testing.T) {
	for _, b := range backendsFromEnv(t) {
		t.Run(string(b), func(t *testing.T) {
			srv := newTestServer(t, b)
			ctx := context.Background()
			log := zaptest.NewLogger(t)
			client := restclient.New(srv.baseURL, restclient.WithHTTPClient(srv.client), restclient.WithLogger(log))

			// Seed one member before the desk loads.
			ana, err := client.Create(ctx, domain.MemberFields{FirstName: "Ana", LastName: "Cruz"})
			if err != nil {
				t.Fatalf("seed: %v", err)
			}

			s := desk.New(client, desk.WithLogger(log))
			if err := s.Load(ctx); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := len(s.Snapshot().Members); got != 1 {
				t.Fatalf("loaded %d members, want 1", got)
			}

			// Create appends the server record with its assigned id and account number.
			s.StartCompose()
			s.SetField(domain.FieldFirstName, "Ben")
			s.SetField(domain.FieldLastName, "Stone")
			s.SetField(domain.FieldEmail, "ben@example.com")
			if err := s.Submit(ctx); err != nil {
				t.Fatalf("create: %v", err)
			}
			snap := s.Snapshot()
			if len(snap.Members) != 2 {
				t.Fatalf("members=%d want 2", len(snap.Members))
			}
			ben := snap.Members[1]
			if ben.ID == "" || ben.AccountNumber == "" || ben.Email != "ben@example.com" {
				t.Fatalf("created member missing server fields: %+v", ben)
			}

			// Search by name and by account number.
			s.SetQuery("ana")
			if v := s.Visible(); len(v) != 1 || v[0].ID != ana.ID {
				t.Fatalf("name search=%+v", v)
			}
			s.SetQuery(ben.AccountNumber)
			if v := s.Visible(); len(v) == 0 || v[len(v)-1].ID != ben.ID {
				t.Fatalf("account search=%+v", v)
			}
			s.SetQuery("")

			// Update goes through PUT and replaces the record in place.
			if !s.StartEdit(ana.ID) {
				t.Fatalf("StartEdit(%s) = false", ana.ID)
			}
			s.SetField(domain.FieldLastName, "Santos")
			s.SetField(domain.FieldGender, string(domain.GenderFemale))
			if err := s.Submit(ctx); err != nil {
				t.Fatalf("update: %v", err)
			}
			got, _ := s.Lookup(ana.ID)
			if got.LastName != "Santos" || got.Gender != domain.GenderFemale || got.AccountNumber != ana.AccountNumber {
				t.Fatalf("updated member=%+v", got)
			}

			// A server-side rejection surfaces as a mutation failure and keeps the draft.
			s.StartEdit(ana.ID)
			s.SetField(domain.FieldEmail, "not-an-email")
			err = s.Submit(ctx)
			if !desk.IsKind(err, desk.MutationFailure) || !errors.Is(err, memberstore.ErrRejected) {
				t.Fatalf("expected rejected mutation, got %v", err)
			}
			if s.Snapshot().Mode != desk.EditingExisting {
				t.Fatalf("mode=%s want EditingExisting", s.Snapshot().Mode)
			}
			s.CancelDraft()

			// Delete.
			if err := s.Delete(ctx, ben.ID, desk.AlwaysConfirm); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok := s.Lookup(ben.ID); ok {
				t.Fatalf("deleted member still present")
			}

			// A member removed behind the desk's back fails the delete and stays listed.
			if err := client.Delete(ctx, ana.ID); err != nil {
				t.Fatalf("direct delete: %v", err)
			}
			err = s.Delete(ctx, ana.ID, desk.AlwaysConfirm)
			if !errors.Is(err, memberstore.ErrNotFound) {
				t.Fatalf("expected not found, got %v", err)
			}
			if _, ok := s.Lookup(ana.ID); !ok {
				t.Fatalf("failed delete removed the member")
			}
			if pe := s.Snapshot().PageError; pe == nil || pe.Message != desk.MsgDeleteFailed {
				t.Fatalf("page error=%v", pe)
			}

			// Server state matches.
			remaining, err := client.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(remaining) != 0 {
				t.Fatalf("server still has %d members", len(remaining))
			}
		})
	}
}
