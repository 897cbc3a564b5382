package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
)

type ExistsResult struct {
	Exists bool `json:"exists"`
}

// UserSummary is the minimal profile returned by the email lookup.
type UserSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name,omitempty"`
	Email    string          `json:"email"`
	UserType domain.UserType `json:"userType"`
}

type EmailLookupResult struct {
	Exists bool         `json:"exists"`
	User   *UserSummary `json:"user,omitempty"`
}

// CheckUserExists reports whether an account uses phone.
func (s *AuthService) CheckUserExists(ctx context.Context, phone string) (ExistsResult, error) {
	_, err := s.Store.Users().GetUserByPhone(ctx, normalizePhone(phone))
	switch {
	case err == nil:
		return ExistsResult{Exists: true}, nil
	case errors.Is(err, store.ErrNotFound):
		return ExistsResult{Exists: false}, nil
	default:
		return ExistsResult{}, internal(err)
	}
}

// CheckUserByEmail reports whether an account uses email and, if so,
// returns its summary.
func (s *AuthService) CheckUserByEmail(ctx context.Context, email string) (EmailLookupResult, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
		return EmailLookupResult{
			Exists: true,
			User:   &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, UserType: u.UserType},
		}, nil
	case errors.Is(err, store.ErrNotFound):
		return EmailLookupResult{Exists: false}, nil
	default:
		return EmailLookupResult{}, internal(err)
	}
}

// GetPrincipal loads a user without the password hash.
func (s *AuthService) GetPrincipal(ctx context.Context, userID string) (domain.Principal, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Principal{}, ErrNotFound.wrap(err)
		}
		return domain.Principal{}, internal(err)
	}
	return u.Principal(), nil
}
