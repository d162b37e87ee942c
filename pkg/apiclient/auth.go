package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// LoginResult is the outcome of a successful admin login. User is nil when
// the response embeds no user payload; callers fetch it with CurrentUser.
type LoginResult struct {
	Token string
	User  *User
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse covers every field spelling the API has used for the issued
// token and the embedded user payload.
type loginResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`

	Token            string `json:"token"`
	AccessTokenSnake string `json:"access_token"`
	AccessTokenCamel string `json:"accessToken"`

	User     json.RawMessage `json:"user"`
	UserData json.RawMessage `json:"userData"`
}

// Login authenticates an administrator. It is the single call that does not
// require a prior credential. Rejected credentials or an insufficient role
// come back as *RejectionError; a response with no recognizable token field
// fails with ErrTokenMissing.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	raw, err := c.send(ctx, http.MethodPost, "/auth/admin-login", loginRequest{Email: email, Password: password}, "")
	if err != nil {
		return nil, loginError(err)
	}

	var payload loginResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrTokenMissing
	}
	if payload.Error {
		return nil, &RejectionError{Message: payload.Message}
	}

	token := firstNonEmpty(payload.Token, payload.AccessTokenSnake, payload.AccessTokenCamel)
	if token == "" {
		return nil, ErrTokenMissing
	}

	result := &LoginResult{Token: token}
	if user := decodeUser(payload.User, payload.UserData, raw); user != nil {
		normalized := NormalizeUser(*user, c.Origin())
		result.User = &normalized
	}
	return result, nil
}

// loginError reclassifies a 4xx status on the login endpoint as a rejection:
// the server was reachable and said no. Everything else passes through.
func loginError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return &RejectionError{Message: apiErr.Message}
	}
	return err
}

// decodeUser tries the known homes for the embedded user payload in order:
// "user", "userData", then the whole body when it itself looks like a record.
func decodeUser(user, userData, whole json.RawMessage) *User {
	for _, candidate := range []json.RawMessage{user, userData, whole} {
		if len(candidate) == 0 {
			continue
		}
		var u User
		if err := json.Unmarshal(candidate, &u); err == nil && u.ID != "" {
			return &u
		}
	}
	return nil
}

// CurrentUser fetches the authoritative record for the signed-in account.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var payload struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth", nil, &payload); err != nil {
		return nil, err
	}
	normalized := NormalizeUser(payload.User, c.Origin())
	return &normalized, nil
}

type roleChangeRequest struct {
	UserID string `json:"userId"`
}

// PromoteToAdmin grants the administrator role to a user.
func (c *Client) PromoteToAdmin(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/auth/promote-to-admin", roleChangeRequest{UserID: userID}, nil)
}

// DemoteFromAdmin revokes the administrator role from a user.
func (c *Client) DemoteFromAdmin(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/auth/demote-from-admin", roleChangeRequest{UserID: userID}, nil)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
