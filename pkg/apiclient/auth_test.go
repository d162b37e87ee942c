package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyphaxBN/pointage-admin/pkg/apiclient"
)

func loginServer(t *testing.T, status int, body string) *apiclient.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/admin-login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		// Login must not carry a bearer header.
		require.Empty(t, r.Header.Get("Authorization"))

		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		require.NotEmpty(t, creds.Email)

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.URL)
	require.NoError(t, err)
	return client
}

func TestClient_Login_TokenFieldFallbacks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"token", `{"token":"tok","user":{"id":"1","name":"A"}}`},
		{"access_token", `{"access_token":"tok","user":{"id":"1","name":"A"}}`},
		{"accessToken", `{"accessToken":"tok","user":{"id":"1","name":"A"}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client := loginServer(t, http.StatusOK, tc.body)

			result, err := client.Login(context.Background(), "a@x.com", "pw")
			require.NoError(t, err)
			assert.Equal(t, "tok", result.Token)
			require.NotNil(t, result.User)
			assert.Equal(t, "1", result.User.ID)
		})
	}
}

func TestClient_Login_UserPayloadFallbacks(t *testing.T) {
	t.Parallel()

	t.Run("userData field", func(t *testing.T) {
		t.Parallel()
		client := loginServer(t, http.StatusOK, `{"token":"tok","userData":{"id":"2","name":"Bob"}}`)

		result, err := client.Login(context.Background(), "a@x.com", "pw")
		require.NoError(t, err)
		require.NotNil(t, result.User)
		assert.Equal(t, "Bob", result.User.Name)
	})

	t.Run("whole body as user", func(t *testing.T) {
		t.Parallel()
		client := loginServer(t, http.StatusOK, `{"token":"tok","id":"3","name":"Carol","role":"ADMIN"}`)

		result, err := client.Login(context.Background(), "a@x.com", "pw")
		require.NoError(t, err)
		require.NotNil(t, result.User)
		assert.Equal(t, "Carol", result.User.Name)
	})

	t.Run("no user payload", func(t *testing.T) {
		t.Parallel()
		client := loginServer(t, http.StatusOK, `{"token":"tok"}`)

		result, err := client.Login(context.Background(), "a@x.com", "pw")
		require.NoError(t, err)
		assert.Nil(t, result.User)
	})
}

func TestClient_Login_TokenMissing(t *testing.T) {
	t.Parallel()
	client := loginServer(t, http.StatusOK, `{"user":{"id":"1"}}`)

	_, err := client.Login(context.Background(), "a@x.com", "pw")
	assert.ErrorIs(t, err, apiclient.ErrTokenMissing)
}

func TestClient_Login_ExplicitErrorPayload(t *testing.T) {
	t.Parallel()
	client := loginServer(t, http.StatusOK, `{"error":true,"message":"mot de passe incorrect"}`)

	_, err := client.Login(context.Background(), "a@x.com", "bad")

	var rejection *apiclient.RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "mot de passe incorrect", rejection.Message)
}

func TestClient_Login_RejectedStatus(t *testing.T) {
	t.Parallel()
	client := loginServer(t, http.StatusUnauthorized, `{"message":"email inexistant"}`)

	_, err := client.Login(context.Background(), "a@x.com", "pw")

	var rejection *apiclient.RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "email inexistant", rejection.Message)
}

func TestClient_Login_ServerErrorIsNotARejection(t *testing.T) {
	t.Parallel()
	client := loginServer(t, http.StatusInternalServerError, `{"message":"db down"}`)

	_, err := client.Login(context.Background(), "a@x.com", "pw")

	var rejection *apiclient.RejectionError
	assert.NotErrorAs(t, err, &rejection)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestClient_Login_Unreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := apiclient.New(server.URL)
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "a@x.com", "pw")
	assert.True(t, apiclient.IsUnreachable(err))
}

func TestClient_CurrentUser(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth", r.URL.Path)
		w.Write([]byte(`{"user":{"id":"1","name":"Alice","email":"alice@x.com","role":"ADMIN","photo":"uploads/alice.png"}}`))
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL, apiclient.WithCredentials(apiclient.StaticToken("tok")))
	require.NoError(t, err)

	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	// Relative asset paths resolve against the API origin.
	assert.Equal(t, client.Origin()+"/uploads/alice.png", user.Photo)
	assert.Equal(t, user.Photo, user.Avatar)
}
