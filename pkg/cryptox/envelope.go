package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

var (
	// ErrEncoding is returned when a payload cannot be sealed, either because
	// it does not serialise to JSON or because no key is configured.
	ErrEncoding = errors.New("cryptox: encoding failed")

	// ErrInvalidEnvelope is returned when a ciphertext cannot be opened:
	// malformed encoding, truncated input, wrong key or non-JSON plaintext.
	ErrInvalidEnvelope = errors.New("cryptox: invalid envelope")
)

// envelopeInfo binds derived keys to this use so the same process secret can
// never produce a key that is valid elsewhere.
const envelopeInfo = "storefront/envelope/v1"

// Envelope seals JSON payloads with AES-256-GCM. The key is derived from a
// process secret with HKDF-SHA256. Output format is base64url of
// [12-byte nonce][ciphertext][16-byte tag].
//
// An Envelope is immutable and safe for concurrent use.
type Envelope struct {
	aead cipher.AEAD
}

// NewEnvelope derives the envelope key from secret.
func NewEnvelope(secret string) (*Envelope, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: missing encryption key", ErrEncoding)
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(envelopeInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive envelope key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Envelope{aead: gcm}, nil
}

// Encrypt serialises payload to JSON and seals it.
func (e *Envelope) Encrypt(payload any) (string, error) {
	if e == nil || e.aead == nil {
		return "", fmt.Errorf("%w: missing encryption key", ErrEncoding)
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: failed to generate nonce: %w", ErrEncoding, err)
	}

	sealed := e.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens ciphertext and unmarshals the plaintext JSON into v.
func (e *Envelope) Decrypt(ciphertext string, v any) error {
	if e == nil || e.aead == nil {
		return fmt.Errorf("%w: missing encryption key", ErrInvalidEnvelope)
	}

	raw, err := base64.RawURLEncoding.DecodeString(ciphertext)
	if err != nil {
		return fmt.Errorf("%w: bad encoding", ErrInvalidEnvelope)
	}

	nonceSize := e.aead.NonceSize()
	if len(raw) < nonceSize+e.aead.Overhead() {
		return fmt.Errorf("%w: ciphertext too short", ErrInvalidEnvelope)
	}

	nonce, sealed := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := e.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return fmt.Errorf("%w: decryption failed", ErrInvalidEnvelope)
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	return nil
}
