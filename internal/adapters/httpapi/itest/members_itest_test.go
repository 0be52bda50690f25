package itest

import (
	"encoding/json"
	"net/http"
	"testing"
)

type memberBody struct {
	MemID     string      `json:"memId"`
	AccountN  json.Number `json:"accountN"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	BirthDate string      `json:"birth_date"`
}

func TestMembers_ITest(t *testing.T) {
	for _, b := range backendsFromEnv(t) {
		t.Run(string(b), func(t *testing.T) {
			srv := newTestServer(t, b)

			// Unknown member => 404 with the error envelope.
			{
				status, body, hdr := srv.doJSON(t, http.MethodGet, "/members/00000000-0000-0000-0000-000000000000/", nil)
				requireErrorCode(t, status, body, http.StatusNotFound, "MEMBER_NOT_FOUND")
				requireHeaderPresent(t, hdr, "Content-Type")
			}

			// Create.
			var created memberBody
			{
				status, body, _ := srv.doJSON(t, http.MethodPost, "/members/", map[string]any{
					"first_name": "Ana",
					"last_name":  "Cruz",
					"email":      "ana@example.com",
					"birth_date": "1990-01-02",
				})
				if status != http.StatusCreated {
					t.Fatalf("status=%d want=%d body=%s", status, http.StatusCreated, string(body))
				}
				created = mustUnmarshal[memberBody](t, body)
				if created.MemID == "" || created.AccountN == "" {
					t.Fatalf("expected memId and accountN to be set; body=%s", string(body))
				}
			}

			// Validation failures are 422.
			{
				status, body, _ := srv.doJSON(t, http.MethodPost, "/members/", map[string]any{
					"first_name": "Ben",
				})
				requireErrorCode(t, status, body, http.StatusUnprocessableEntity, "VALIDATION_ERROR")
			}

			// List includes the created member.
			{
				status, body, _ := srv.doJSON(t, http.MethodGet, "/members/", nil)
				if status != http.StatusOK {
					t.Fatalf("status=%d want=%d body=%s", status, http.StatusOK, string(body))
				}
				list := mustUnmarshal[[]memberBody](t, body)
				found := false
				for _, m := range list {
					if m.MemID == created.MemID {
						found = true
						if m.BirthDate != "1990-01-02" || m.AccountN != created.AccountN {
							t.Fatalf("unexpected listed member: %+v", m)
						}
					}
				}
				if !found {
					t.Fatalf("expected created member in list; body=%s", string(body))
				}
			}

			// Replace.
			{
				status, body, _ := srv.doJSON(t, http.MethodPut, "/members/"+created.MemID+"/", map[string]any{
					"first_name": "Ana Maria",
					"last_name":  "Cruz",
				})
				if status != http.StatusOK {
					t.Fatalf("status=%d want=%d body=%s", status, http.StatusOK, string(body))
				}
				got := mustUnmarshal[memberBody](t, body)
				if got.FirstName != "Ana Maria" || got.Email != "" || got.AccountN != created.AccountN {
					t.Fatalf("unexpected updated member: %+v", got)
				}
			}

			// Delete, then it is gone.
			{
				status, body, _ := srv.doJSON(t, http.MethodDelete, "/members/"+created.MemID+"/", nil)
				if status != http.StatusNoContent {
					t.Fatalf("status=%d want=%d body=%s", status, http.StatusNoContent, string(body))
				}
				status, body, _ = srv.doJSON(t, http.MethodGet, "/members/"+created.MemID+"/", nil)
				requireErrorCode(t, status, body, http.StatusNotFound, "MEMBER_NOT_FOUND")
			}
		})
	}
}
