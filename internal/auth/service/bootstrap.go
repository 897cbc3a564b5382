package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

var (
	ErrBootstrapAlready = &Error{
		Kind: KindAlreadyBootstrapped, StatusCode: http.StatusConflict,
		Message: "System already bootstrapped",
	}
	ErrBootstrapUnauthorized = ErrUnauthenticated.withMessage("Invalid bootstrap token")
)

// BootstrapService creates the first SuperAdmin. Admin accounts cannot come
// from public signup, so this is the only way in; customer sign-ups made
// before it runs do not block it.
type BootstrapService struct {
	Store store.Store
	Token string // Pre-configured bootstrap token; empty disables bootstrap
}

// IsBootstrapped reports whether a SuperAdmin exists.
func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	return s.Store.Users().HasSuperAdmin(ctx)
}

func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req domain.BootstrapData) (domain.Principal, error) {
	l := slogx.FromContext(ctx)

	// 1. Validate provided token before revealing anything about state
	if s.Token == "" || !cryptox.EqualSecret(token, s.Token) {
		l.Warn("unauthorized bootstrap attempt")
		return domain.Principal{}, ErrBootstrapUnauthorized
	}

	// 2. Check if already bootstrapped
	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		return domain.Principal{}, internal(err)
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.Principal{}, ErrBootstrapAlready
	}

	// 3. Validate the admin account
	email := normalizeEmail(req.Email)
	phone := normalizePhone(req.Phone)
	switch {
	case email == "":
		return domain.Principal{}, ErrValidation.withMessage("Email is required.")
	case !validEmail(email):
		return domain.Principal{}, ErrValidation.withMessage("Invalid email address.")
	case phone != "" && !validPhone(phone):
		return domain.Principal{}, ErrValidation.withMessage("Invalid phone number.")
	case req.Password == "":
		return domain.Principal{}, ErrValidation.withMessage("Password is required.")
	}

	// 4. Hash password
	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return domain.Principal{}, internal(err)
	}

	now := time.Now().UTC()
	admin := domain.User{
		ID:            idx.New().String(),
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		Phone:         phone,
		PasswordHash:  hash,
		UserType:      domain.UserTypeSuperAdmin,
		Role:          domain.RoleSuperAdmin,
		IsAdmin:       domain.AdminMarker,
		EmailVerified: true,
		VerifiedAt:    &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// 5. Create the admin, re-checking inside the transaction
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		exists, err := tx.Users().HasSuperAdmin(ctx)
		if err != nil {
			return err
		}
		if exists {
			return ErrBootstrapAlready
		}
		if err := tx.Users().CreateUser(ctx, admin); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUserExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Principal{}, AsError(err)
	}

	l.Info("successfully bootstrapped system", slog.String("admin_user_id", admin.ID))
	return admin.Principal(), nil
}
