package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/stretchr/testify/require"
)

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.registerCorporate(t, "ops@acme.example", "hunter22")
	tok := f.mail.verification(u.ID)
	require.NotEmpty(t, tok)

	res, err := f.svc.VerifyEmail(ctx, tok)
	require.NoError(t, err)
	require.Equal(t, service.MessageResult{Success: true, Message: "Email verified successfully"}, res)

	p, err := f.svc.GetPrincipal(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, p.EmailVerified)
	require.NotNil(t, p.VerifiedAt)

	// A token is consumed by the first successful use.
	_, err = f.svc.VerifyEmail(ctx, tok)
	se := requireKind(t, err, service.ErrInvalidVerificationToken)
	require.Equal(t, "Invalid or expired verification token", se.Message)
}

func TestVerifyEmailRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.registerCorporate(t, "ops@acme.example", "hunter22")

	session, err := f.tokens.Issue(u.ID)
	require.NoError(t, err)
	ghost, err := f.tokens.IssueVerification("01HZX00000000000000000GHST")
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":         "",
		"malformed":     "abc.def.ghi",
		"session token": session,
		"unknown user":  ghost,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.VerifyEmail(ctx, tok)
			requireKind(t, err, service.ErrInvalidVerificationToken)
		})
	}
}

func TestConfirmEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.registerIndividual(t, "0400000001", "hunter22")

	p, err := f.svc.ConfirmEmail(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, p.EmailVerified)
	require.NotNil(t, p.VerifiedAt)

	again, err := f.svc.ConfirmEmail(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, again.EmailVerified)

	_, err = f.svc.ConfirmEmail(ctx, "missing")
	requireKind(t, err, service.ErrNotFound)
}
