package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopdesk/memberdesk/internal/adapters/httpapi"
	memidempotency "github.com/coopdesk/memberdesk/internal/adapters/memory/idempotency"
	memmemberrepo "github.com/coopdesk/memberdesk/internal/adapters/memory/memberrepo"
	"github.com/coopdesk/memberdesk/internal/adapters/restclient"
	"github.com/coopdesk/memberdesk/internal/app/members"
	"github.com/coopdesk/memberdesk/internal/domain"
	"github.com/coopdesk/memberdesk/internal/platform/clock"
)

// newAPI starts a members API over an in-memory repository.
func newAPI(t *testing.T) (*httptest.Server, *restclient.Client) {
	t.Helper()
	svc := members.NewService(memmemberrepo.NewRepo(), clock.NewSystemClock())
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewServer(svc, memidempotency.NewStore(), nil)))
	t.Cleanup(srv.Close)
	return srv, restclient.New(srv.URL)
}

func seed(t *testing.T, c *restclient.Client, first, last string) domain.Member {
	t.Helper()
	m, err := c.Create(context.Background(), domain.MemberFields{FirstName: first, LastName: last})
	require.NoError(t, err)
	return m
}

func execute(t *testing.T, baseURL, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--api-url", baseURL}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestList_FiltersByQuery(t *testing.T) {
	srv, c := newAPI(t)
	seed(t, c, "Ana", "Cruz")
	seed(t, c, "Ben", "Stone")

	out, _, err := execute(t, srv.URL, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Cruz")
	assert.Contains(t, out, "Ben Stone")

	out, _, err = execute(t, srv.URL, "", "list", "--query", "ANA")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Cruz")
	assert.NotContains(t, out, "Ben Stone")

	out, _, err = execute(t, srv.URL, "", "list", "-q", "nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "No members found.")
}

func TestAdd_RequiresNames(t *testing.T) {
	srv, c := newAPI(t)

	_, _, err := execute(t, srv.URL, "", "add", "--first-name", "Ana")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "First and last names are required.")

	ms, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ms)
}

func TestAdd_ShowEdit(t *testing.T) {
	srv, c := newAPI(t)

	out, _, err := execute(t, srv.URL, "", "add", "--first-name", "Ana", "--last-name", "Cruz", "--gender", "Female", "--birth-date", "1990-04-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Female")

	ms, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, ms, 1)
	id := string(ms[0].ID)
	assert.Equal(t, "1990-04-01", ms[0].BirthDate)

	out, _, err = execute(t, srv.URL, "", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Cruz")
	assert.Contains(t, out, ms[0].AccountNumber)

	out, _, err = execute(t, srv.URL, "", "edit", id, "--last-name", "Santos", "--pstatus", "Married")
	require.NoError(t, err)
	assert.Contains(t, out, "Santos")

	ms, err = c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Santos", ms[0].LastName)
	assert.Equal(t, domain.StatusMarried, ms[0].RelationshipStatus)
	assert.Equal(t, domain.GenderFemale, ms[0].Gender, "unchanged fields are kept")

	_, _, err = execute(t, srv.URL, "", "edit", id, "--first-name", "")
	require.Error(t, err)

	_, _, err = execute(t, srv.URL, "", "show", "missing")
	require.Error(t, err)
}

func TestDelete_ConfirmAndYes(t *testing.T) {
	srv, c := newAPI(t)
	a := seed(t, c, "Ana", "Cruz")
	b := seed(t, c, "Ben", "Stone")

	_, errOut, err := execute(t, srv.URL, "n\n", "delete", string(a.ID))
	require.NoError(t, err)
	assert.Contains(t, errOut, "Are you sure you want to delete this member?")

	out, _, err := execute(t, srv.URL, "y\n", "delete", string(a.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted member")

	_, _, err = execute(t, srv.URL, "", "delete", "--yes", string(b.ID))
	require.NoError(t, err)

	ms, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ms)

	_, errOut, err = execute(t, srv.URL, "", "delete", "--yes", string(b.ID))
	require.NoError(t, err)
	assert.Contains(t, errOut, "nothing deleted")
}

func TestPrint_BlankAndPrefilled(t *testing.T) {
	srv, c := newAPI(t)
	a := seed(t, c, "Ana", "Cruz")

	out, _, err := execute(t, srv.URL, "", "print")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>Membership Form</title>")

	path := filepath.Join(t.TempDir(), "form.html")
	_, _, err = execute(t, srv.URL, "", "print", string(a.ID), "--out", path)
	require.NoError(t, err)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Membership Form - Ana Cruz")
}

func TestLoadFailureIsReported(t *testing.T) {
	srv, _ := newAPI(t)
	url := srv.URL
	srv.Close()

	_, _, err := execute(t, url, "", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error loading members.")
}

func TestPromptConfirmer(t *testing.T) {
	var out bytes.Buffer
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false} {
		ok, err := promptConfirmer(strings.NewReader(input), &out).Confirm(context.Background(), "Sure?")
		require.NoError(t, err)
		assert.Equal(t, want, ok, "input %q", input)
	}
	assert.Contains(t, out.String(), "Sure? [y/N]: ")
}
