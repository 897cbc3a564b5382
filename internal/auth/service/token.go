package service

import (
	"errors"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

// ErrInvalidToken is returned for every verification failure. Callers are
// not told why a token was rejected.
var ErrInvalidToken = errors.New("invalid_token")

// TokenService issues and verifies the three token kinds: sessions, email
// verification links and password reset links. Each lives in its own
// purpose namespace.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string

	SessionTTL      time.Duration
	VerificationTTL time.Duration
	ResetTTL        time.Duration

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// NewTokenService builds an HS256 token service. Zero TTLs fall back to
// the jwtx defaults.
func NewTokenService(secret, issuer string, sessionTTL, verificationTTL, resetTTL time.Duration) (*TokenService, error) {
	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, err
	}
	if sessionTTL <= 0 {
		sessionTTL = jwtx.DefaultSessionTTL
	}
	if verificationTTL <= 0 {
		verificationTTL = jwtx.DefaultVerificationTTL
	}
	if resetTTL <= 0 {
		resetTTL = jwtx.DefaultResetTTL
	}
	return &TokenService{
		Signer:          signer,
		Verifier:        jwtx.NewVerifierHS256(secret, issuer, 0),
		Issuer:          issuer,
		SessionTTL:      sessionTTL,
		VerificationTTL: verificationTTL,
		ResetTTL:        resetTTL,
	}, nil
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *TokenService) issue(subjectID string, purpose jwtx.Purpose, ttl time.Duration, pwdFP string) (string, error) {
	claims := jwtx.NewClaims(subjectID, purpose, ttl, s.Issuer, s.now())
	claims.PasswordFP = pwdFP
	return s.Signer.Sign(claims)
}

// Issue mints a session token for subjectID.
func (s *TokenService) Issue(subjectID string) (string, error) {
	return s.issue(subjectID, jwtx.PurposeSession, s.SessionTTL, "")
}

// Verify returns the subject of a valid session token.
func (s *TokenService) Verify(token string) (string, error) {
	claims, err := s.Verifier.Verify(token, jwtx.PurposeSession)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	return claims.Subject, nil
}

// IssueVerification mints an email verification token.
func (s *TokenService) IssueVerification(subjectID string) (string, error) {
	return s.issue(subjectID, jwtx.PurposeEmailVerification, s.VerificationTTL, "")
}

// VerifyVerification returns the subject of a valid email verification token.
func (s *TokenService) VerifyVerification(token string) (string, error) {
	claims, err := s.Verifier.Verify(token, jwtx.PurposeEmailVerification)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	return claims.Subject, nil
}

// IssueReset mints a password reset token bound to the current password
// hash. Once the password changes the token no longer matches.
func (s *TokenService) IssueReset(subjectID, passwordHash string) (string, error) {
	return s.issue(subjectID, jwtx.PurposePasswordReset, s.ResetTTL, cryptox.FingerprintToken(passwordHash))
}

// VerifyReset returns the subject and password fingerprint of a valid reset
// token.
func (s *TokenService) VerifyReset(token string) (subjectID, passwordFP string, err error) {
	claims, err := s.Verifier.Verify(token, jwtx.PurposePasswordReset)
	if err != nil {
		return "", "", errors.Join(ErrInvalidToken, err)
	}
	if claims.PasswordFP == "" {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.PasswordFP, nil
}
