package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// Opener opens sealed response bodies. *cryptox.Envelope implements it.
type Opener interface {
	Decrypt(ciphertext string, v any) error
}

// SDKClient is a client for the storefront authentication service.
// It provides access to unauthenticated operations and can create
// authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Opener unseals encrypted login responses. Without it Login returns
	// the sealed body as-is.
	Opener Opener
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSession wraps an existing session token.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}
