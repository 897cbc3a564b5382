package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// Notifier delivers out-of-band links to users. Delivery failures are
// logged by the caller and never fail the request that triggered them.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, u domain.User, token string) error
	SendPasswordReset(ctx context.Context, u domain.User, token string) error
}

// LogNotifier records deliveries in the request log instead of sending
// them. Tokens are logged as fingerprints only.
type LogNotifier struct{}

func (LogNotifier) SendVerificationEmail(ctx context.Context, u domain.User, token string) error {
	slogx.FromContext(ctx).Info("verification email queued",
		slog.String("user_id", u.ID),
		slog.String("token_fp", cryptox.FingerprintToken(token)),
	)
	return nil
}

func (LogNotifier) SendPasswordReset(ctx context.Context, u domain.User, token string) error {
	slogx.FromContext(ctx).Info("password reset queued",
		slog.String("user_id", u.ID),
		slog.String("token_fp", cryptox.FingerprintToken(token)),
	)
	return nil
}
