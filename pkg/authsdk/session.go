package authsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Session performs authenticated calls with a session token. Sessions are
// not refreshed; log in again once the token expires.
type Session struct {
	client *SDKClient
	token  string
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// doAuthRequest performs an HTTP request carrying the session token.
func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// Me returns the account the session belongs to.
func (s *Session) Me(ctx context.Context) (*User, error) {
	return s.userCall(ctx, http.MethodGet, "/auth/me")
}

// GetUser loads any account. Requires the admin or superadmin role.
func (s *Session) GetUser(ctx context.Context, id string) (*User, error) {
	return s.userCall(ctx, http.MethodGet, "/auth/users/"+url.PathEscape(id))
}

// ConfirmEmail marks an account verified. Requires the admin marker.
func (s *Session) ConfirmEmail(ctx context.Context, id string) (*User, error) {
	return s.userCall(ctx, http.MethodPost, "/auth/users/"+url.PathEscape(id)+"/verify-email")
}

func (s *Session) userCall(ctx context.Context, method, path string) (*User, error) {
	resp, err := s.doAuthRequest(ctx, method, path, nil)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}
