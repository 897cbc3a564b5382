package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// MessageResult is the body of operations that only report success.
type MessageResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyEmail redeems an email verification token. A token is consumed
// once the account is verified, so replaying it fails.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (MessageResult, error) {
	l := slogx.FromContext(ctx)

	userID, err := s.Tokens.VerifyVerification(token)
	if err != nil {
		l.Info("verify email: token rejected", slog.Any("error", err))
		return MessageResult{}, ErrInvalidVerificationToken
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidVerificationToken
			}
			return err
		}
		if user.EmailVerified {
			return ErrInvalidVerificationToken
		}
		return tx.Users().MarkEmailVerified(ctx, user.ID, time.Now().UTC())
	})
	if err != nil {
		return MessageResult{}, AsError(err)
	}

	l.Info("email verified", slog.String("user_id", userID))
	return MessageResult{Success: true, Message: "Email verified successfully"}, nil
}

// ConfirmEmail marks an account verified without a token. It is the
// admin-side override and is idempotent.
func (s *AuthService) ConfirmEmail(ctx context.Context, userID string) (domain.Principal, error) {
	var user domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		user, err = tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if user.EmailVerified {
			return nil
		}

		now := time.Now().UTC()
		if err := tx.Users().MarkEmailVerified(ctx, user.ID, now); err != nil {
			return err
		}
		user.EmailVerified = true
		user.VerifiedAt = &now
		return nil
	})
	if err != nil {
		return domain.Principal{}, AsError(err)
	}

	slogx.FromContext(ctx).Info("email confirmed by admin", slog.String("user_id", userID))
	return user.Principal(), nil
}
