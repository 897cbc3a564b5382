package authsdk

import (
	"context"
	"net/http"
)

// Bootstrap creates the first SuperAdmin on an empty service.
func (c *SDKClient) Bootstrap(
	ctx context.Context,
	token string,
	req BootstrapRequest,
) (*BootstrapResponse, error) {
	var out BootstrapResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/bootstrap", req,
		map[string]string{"X-Bootstrap-Token": token},
		&out, http.StatusCreated,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
