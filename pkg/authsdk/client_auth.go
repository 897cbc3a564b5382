package authsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Signup registers an Individual or Corporate account.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	var out SignupResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signup", req, nil, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns the response body. When the body is
// sealed and an Opener is configured, it is unsealed in place.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}

	if out.EncryptedData != "" && c.Opener != nil {
		var plain LoginResponse
		if err := c.Opener.Decrypt(out.EncryptedData, &plain); err != nil {
			return nil, fmt.Errorf("failed to open login response: %w", err)
		}
		return &plain, nil
	}
	return &out, nil
}

// LoginSession logs in and wraps the session token. It requires either a
// plaintext response or an Opener.
func (c *SDKClient) LoginSession(ctx context.Context, req LoginRequest) (*Session, error) {
	resp, err := c.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil || resp.Data.Token == "" {
		return nil, fmt.Errorf("login response is sealed and no opener is configured")
	}
	return c.NewSession(resp.Data.Token), nil
}

// VerifyEmail redeems an email verification token.
func (c *SDKClient) VerifyEmail(ctx context.Context, token string) (*MessageResponse, error) {
	var out MessageResponse
	err := c.doJSON(ctx, http.MethodGet, "/auth/verify-email/"+url.PathEscape(token), nil, nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword requests a reset link.
func (c *SDKClient) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", req, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword redeems a reset token.
func (c *SDKClient) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password", req, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckUser reports whether an account uses phone.
func (c *SDKClient) CheckUser(ctx context.Context, phone string) (bool, error) {
	var out CheckUserResponse
	err := c.doJSON(ctx, http.MethodGet, "/auth/check-user/"+url.PathEscape(phone), nil, nil, &out, http.StatusOK)
	if err != nil {
		return false, err
	}
	return out.Exists, nil
}

// CheckUserEmail looks an account up by email.
func (c *SDKClient) CheckUserEmail(ctx context.Context, email string) (*CheckUserEmailResponse, error) {
	var out CheckUserEmailResponse
	err := c.doJSON(ctx, http.MethodGet, "/auth/check-user-email/"+url.PathEscape(email), nil, nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
