package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyphaxBN/pointage-admin/pkg/apiclient"
	"github.com/SyphaxBN/pointage-admin/pkg/session"
)

// runCommand executes one pointagectl invocation with a fresh App, the way
// each process run wires itself from the environment.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(&App{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newPortalServer(t *testing.T) *httptest.Server {
	t.Helper()

	const userBody = `{"id":"1","name":"Alice","email":"alice@x.com","role":"ADMIN"}`
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/admin-login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok-1","user":` + userBody + `}`))
	})
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"user":` + userBody + `}`))
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[` + userBody + `]`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRootCmd_LoginWhoamiLogout(t *testing.T) {
	server := newPortalServer(t)
	t.Setenv("API_BASE_URL", server.URL)
	t.Setenv("SESSION_DIR", t.TempDir())

	out, err := runCommand(t, "pw\n", "login", "--email", "alice@x.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Alice")

	// The session survives into the next invocation through the store.
	out, err = runCommand(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "alice@x.com")
	assert.Contains(t, out, "ADMIN")

	_, err = runCommand(t, "", "logout")
	require.NoError(t, err)

	_, err = runCommand(t, "", "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestRootCmd_UsersListRendersTable(t *testing.T) {
	server := newPortalServer(t)
	t.Setenv("API_BASE_URL", server.URL)
	t.Setenv("SESSION_DIR", t.TempDir())

	_, err := runCommand(t, "pw\n", "login", "--email", "alice@x.com")
	require.NoError(t, err)

	out, err := runCommand(t, "", "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "EMAIL")
	assert.Contains(t, out, "alice@x.com")
}

func TestRootCmd_AuthenticatedCommandWithoutSession(t *testing.T) {
	server := newPortalServer(t)
	t.Setenv("API_BASE_URL", server.URL)
	t.Setenv("SESSION_DIR", t.TempDir())

	_, err := runCommand(t, "", "users", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestRootCmd_LoginRequiresEmail(t *testing.T) {
	server := newPortalServer(t)
	t.Setenv("API_BASE_URL", server.URL)
	t.Setenv("SESSION_DIR", t.TempDir())

	// An empty line at the email prompt is refused before any prompt for a
	// password.
	_, err := runCommand(t, "\n", "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestCommandError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, commandError(nil))

	err := commandError(errors.Join(apiclient.ErrUnreachable, errors.New("dial tcp")))
	assert.Contains(t, err.Error(), "server unreachable")

	err = commandError(&apiclient.APIError{Status: 401, Message: "token invalide"})
	assert.Contains(t, err.Error(), "session expired")

	err = commandError(apiclient.ErrAuthenticationRequired)
	assert.Contains(t, err.Error(), "not logged in")

	passthrough := errors.New("boom")
	assert.Equal(t, passthrough, commandError(passthrough))
}

func TestLoginFailureMessages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		reason session.Reason
		want   string
	}{
		{session.ReasonUnknownEmail, "does not exist"},
		{session.ReasonWrongPassword, "incorrect"},
		{session.ReasonInsufficientRole, "administrator rights"},
		{session.ReasonUnknown, "login refused"},
	}
	for _, tc := range cases {
		err := loginFailure(&session.RejectedError{Message: "msg", Reason: tc.reason})
		assert.Contains(t, err.Error(), tc.want, "reason %s", tc.reason)
	}

	err := loginFailure(errors.Join(apiclient.ErrUnreachable, errors.New("refused")))
	assert.Contains(t, err.Error(), "server unreachable")
}
