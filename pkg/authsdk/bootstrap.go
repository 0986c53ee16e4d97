package authsdk

import (
	"context"
	"net/http"
)

// Bootstrap creates the first administrator. It only works while the
// service has a bootstrap token configured and no admin exists yet.
func (c *SDKClient) Bootstrap(
	ctx context.Context,
	token string,
	req BootstrapRequest,
) (*BootstrapResponse, error) {
	var out BootstrapResponse
	err := c.postJSON(ctx, "/v1/bootstrap", req, &out, http.StatusCreated,
		map[string]string{"X-Bootstrap-Token": token},
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
