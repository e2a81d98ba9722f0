package authsdk

import (
	"context"
	"net/http"
)

// Register creates an account and returns its first token pair.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthSuccessResponse, error) {
	return c.authenticate(ctx, "/api/v1/identity/register", req)
}

// Login exchanges email and password for a token pair.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthSuccessResponse, error) {
	return c.authenticate(ctx, "/api/v1/identity/login", req)
}

// Refresh exchanges an expired access token and its refresh token for a new
// pair. Each refresh token can be used once.
func (c *Client) Refresh(ctx context.Context, req RefreshRequest) (*AuthSuccessResponse, error) {
	return c.authenticate(ctx, "/api/v1/identity/refresh", req)
}

// Revoke invalidates a refresh token.
func (c *Client) Revoke(ctx context.Context, refreshToken string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/identity/revoke", "", RevokeRequest{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*AuthSuccessResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return nil, err
	}

	var out AuthSuccessResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
