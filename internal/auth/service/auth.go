package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// Cipher seals and opens JSON payloads. *cryptox.Envelope implements it.
type Cipher interface {
	Encrypt(payload any) (string, error)
	Decrypt(ciphertext string, v any) error
}

// AuthService implements registration, login and the account recovery
// flows. Every dependency is injected.
type AuthService struct {
	Store    store.Store
	Tokens   *TokenService
	Cipher   Cipher
	Notifier Notifier
}

type RegisterInput struct {
	UserType domain.UserType `json:"userType"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Password string          `json:"password"`

	// EncryptedData, when set, is an envelope holding the fields above.
	EncryptedData string `json:"encryptedData,omitempty"`
}

type RegisterResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    RegisterData `json:"data"`
}

type RegisterData struct {
	User domain.Principal `json:"user"`
}

type LoginInput struct {
	UserType domain.UserType `json:"userType"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Password string          `json:"password"`
}

type LoginData struct {
	User  domain.Principal `json:"user"`
	Token string           `json:"token"`
}

// LoginResult is the login response body. Exactly one of EncryptedData or
// Data is set.
type LoginResult struct {
	Success       bool       `json:"success"`
	EncryptedData string     `json:"encryptedData,omitempty"`
	Message       string     `json:"message,omitempty"`
	Data          *LoginData `json:"data,omitempty"`
}

// Encrypted reports whether the body went out sealed.
func (r LoginResult) Encrypted() bool { return r.EncryptedData != "" }

// Register creates an Individual or Corporate account. No session token is
// issued; accounts with an email get a verification link instead.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	l := slogx.FromContext(ctx)

	// 1. Only customer-facing account types may self-register. The outer
	// userType is checked before anything is decrypted.
	if !in.UserType.CanSelfRegister() {
		return RegisterResult{}, ErrForbiddenSignup
	}

	// 2. Unwrap the envelope, if any. The sealed payload is gated again.
	if in.EncryptedData != "" {
		var sealed RegisterInput
		if err := s.decrypt(in.EncryptedData, &sealed); err != nil {
			l.Info("register: encrypted payload rejected", slog.Any("error", err))
			return RegisterResult{}, ErrInvalidEncryptedData.wrap(err)
		}
		if sealed.UserType == "" {
			sealed.UserType = in.UserType
		}
		if !sealed.UserType.CanSelfRegister() {
			l.Warn("register: sealed payload requests a staff account", slog.String("user_type", string(sealed.UserType)))
			return RegisterResult{}, ErrForbiddenSignup
		}
		in = sealed
	}

	// 3. Per-type identity fields
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Phone = normalizePhone(in.Phone)
	if err := validateRegistration(in); err != nil {
		return RegisterResult{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return RegisterResult{}, internal(err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		UserType:     in.UserType,
		Role:         in.UserType.DefaultRole(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 4. Uniqueness check and insert in one transaction
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := ensureUnused(ctx, tx.Users(), user.Email, user.Phone); err != nil {
			return err
		}
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUserExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return RegisterResult{}, AsError(err)
	}

	l.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("user_type", string(user.UserType)),
	)

	// 5. Verification link for accounts with an email
	if user.Email != "" {
		s.sendVerification(ctx, user)
	}

	return RegisterResult{
		Success: true,
		Message: "Registration successful",
		Data:    RegisterData{User: user.Principal()},
	}, nil
}

func validateRegistration(in RegisterInput) error {
	if in.Password == "" {
		return ErrValidation.withMessage("Password is required.")
	}
	switch in.UserType {
	case domain.UserTypeIndividual:
		if in.Phone == "" {
			return ErrValidation.withMessage("Phone is required for Individual users.")
		}
	case domain.UserTypeCorporate:
		if in.Email == "" {
			return ErrValidation.withMessage("Email is required for Corporate users.")
		}
	}
	if in.Phone != "" && !validPhone(in.Phone) {
		return ErrValidation.withMessage("Invalid phone number.")
	}
	if in.Email != "" && !validEmail(in.Email) {
		return ErrValidation.withMessage("Invalid email address.")
	}
	return nil
}

// ensureUnused fails with ErrUserExists if email or phone is taken.
func ensureUnused(ctx context.Context, users store.Users, email, phone string) error {
	if phone != "" {
		if _, err := users.GetUserByPhone(ctx, phone); err == nil {
			return ErrUserExists
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	if email != "" {
		if _, err := users.GetUserByEmail(ctx, email); err == nil {
			return ErrUserExists
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *AuthService) sendVerification(ctx context.Context, u domain.User) {
	l := slogx.FromContext(ctx)

	token, err := s.Tokens.IssueVerification(u.ID)
	if err != nil {
		l.Error("failed to issue verification token", slog.String("user_id", u.ID), slog.Any("error", err))
		return
	}
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendVerificationEmail(ctx, u, token); err != nil {
		l.Error("failed to send verification email", slog.String("user_id", u.ID), slog.Any("error", err))
	}
}

// Login authenticates by the login key of the requested user type and
// returns a session token. The response body is sealed with the Cipher
// when possible and falls back to plaintext when sealing fails.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	// 1. Required-field gate; no store access before this passes
	var (
		lookup func(context.Context, string) (domain.User, error)
		key    string
	)
	switch in.UserType {
	case domain.UserTypeAdmin, domain.UserTypeSuperAdmin, domain.UserTypeCorporate:
		key = normalizeEmail(in.Email)
		if key == "" || in.Password == "" {
			return LoginResult{}, ErrMissingCredentials.withMessage(msgEmailAndPassword)
		}
		lookup = s.Store.Users().GetUserByEmail
	case domain.UserTypeIndividual:
		key = normalizePhone(in.Phone)
		if key == "" || in.Password == "" {
			return LoginResult{}, ErrMissingCredentials.withMessage(msgPhoneAndPassword)
		}
		lookup = s.Store.Users().GetUserByPhone
	default:
		return LoginResult{}, ErrInvalidUserType
	}

	// 2. Authenticate. Unknown user, wrong type and wrong password all
	// look the same to the caller.
	user, err := lookup(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, ErrLoginFailed.wrap(err)
	}
	if user.UserType != in.UserType {
		l.Info("login: user type mismatch", slog.String("user_id", user.ID))
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := cryptox.VerifyPassword(in.Password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("login: stored password hash unreadable", slog.String("user_id", user.ID), slog.Any("error", err))
		}
		return LoginResult{}, ErrInvalidCredentials
	}

	// 3. Session token
	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return LoginResult{}, ErrLoginFailed.wrap(err)
	}

	plain := LoginResult{
		Success: true,
		Message: "Login successful",
		Data:    &LoginData{User: user.Principal(), Token: token},
	}

	// 4. Seal the body; fall back to plaintext if that fails
	sealed, err := s.encrypt(plain)
	if err != nil {
		l.Error("login: response encryption failed, returning plaintext",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return plain, nil
	}

	l.Info("user logged in", slog.String("user_id", user.ID))
	return LoginResult{Success: true, EncryptedData: sealed}, nil
}

func (s *AuthService) encrypt(v any) (string, error) {
	if s.Cipher == nil {
		return "", cryptox.ErrEncoding
	}
	return s.Cipher.Encrypt(v)
}

func (s *AuthService) decrypt(ciphertext string, v any) error {
	if s.Cipher == nil {
		return cryptox.ErrInvalidEnvelope
	}
	return s.Cipher.Decrypt(ciphertext, v)
}
