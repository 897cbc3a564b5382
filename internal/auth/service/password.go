package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const msgResetRequested = "If an account matches, a password reset link has been sent."

type ForgotPasswordInput struct {
	UserType domain.UserType `json:"userType"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
}

type ResetPasswordInput struct {
	Token    string `json:"token"`
	Password string `json:"password"`

	// EncryptedData, when set, is an envelope holding token and password.
	EncryptedData string `json:"encryptedData,omitempty"`
}

// ForgotPassword sends a reset link to the account matching the login key
// of the given user type. The response is the same whether or not an
// account matched.
func (s *AuthService) ForgotPassword(ctx context.Context, in ForgotPasswordInput) (MessageResult, error) {
	l := slogx.FromContext(ctx)
	ok := MessageResult{Success: true, Message: msgResetRequested}

	var (
		user domain.User
		err  error
	)
	switch {
	case !in.UserType.Valid():
		return MessageResult{}, ErrInvalidUserType
	case in.UserType.LoginByPhone():
		phone := normalizePhone(in.Phone)
		if phone == "" {
			return MessageResult{}, ErrValidation.withMessage("Phone is required for Individual users.")
		}
		user, err = s.Store.Users().GetUserByPhone(ctx, phone)
	default:
		email := normalizeEmail(in.Email)
		if email == "" {
			return MessageResult{}, ErrValidation.withMessage("Email is required for this user type.")
		}
		user, err = s.Store.Users().GetUserByEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ok, nil
		}
		return MessageResult{}, internal(err)
	}
	if user.UserType != in.UserType {
		return ok, nil
	}

	token, err := s.Tokens.IssueReset(user.ID, user.PasswordHash)
	if err != nil {
		return MessageResult{}, internal(err)
	}
	if s.Notifier != nil {
		if err := s.Notifier.SendPasswordReset(ctx, user, token); err != nil {
			l.Error("failed to send password reset", slog.String("user_id", user.ID), slog.Any("error", err))
		}
	}
	return ok, nil
}

// ResetPassword replaces the password of the account a reset token was
// issued for. The token dies with the password it was bound to.
func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) (MessageResult, error) {
	l := slogx.FromContext(ctx)

	// 1. Unwrap the envelope, if any
	if in.EncryptedData != "" {
		var sealed ResetPasswordInput
		if err := s.decrypt(in.EncryptedData, &sealed); err != nil {
			l.Info("reset password: encrypted payload rejected", slog.Any("error", err))
			return MessageResult{}, ErrInvalidEncryptedData.wrap(err)
		}
		in = sealed
	}

	// 2. Inputs
	if in.Token == "" {
		return MessageResult{}, ErrInvalidResetRequest
	}
	if in.Password == "" {
		return MessageResult{}, ErrValidation.withMessage("Password is required.")
	}

	// 3. Token
	userID, fp, err := s.Tokens.VerifyReset(in.Token)
	if err != nil {
		l.Info("reset password: token rejected", slog.Any("error", err))
		return MessageResult{}, ErrInvalidResetRequest
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return MessageResult{}, internal(err)
	}

	// 4. Swap the hash if the token still matches the stored one
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidResetRequest
			}
			return err
		}
		if !cryptox.EqualSecret(fp, cryptox.FingerprintToken(user.PasswordHash)) {
			return ErrInvalidResetRequest
		}
		return tx.Users().UpdatePasswordHash(ctx, user.ID, hash)
	})
	if err != nil {
		return MessageResult{}, AsError(err)
	}

	l.Info("password reset", slog.String("user_id", userID))
	return MessageResult{Success: true, Message: "Password reset successful"}, nil
}
