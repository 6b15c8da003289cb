// Package authclient rotates token pairs against a storefront auth endpoint
// running in another deployment.
package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jwthelp "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/jwt"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/tokens"
)

// ErrRejected means the auth endpoint refused the refresh token.
var ErrRejected = errors.New("refresh rejected")

const refreshPath = "auth/refresh"

type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient targets baseURL + "/auth/refresh". An unparsable base URL
// surfaces on the first RefreshTokens call.
func NewClient(baseURL string) *Client {
	endpoint, err := url.JoinPath(baseURL, refreshPath)
	if err != nil {
		endpoint = ""
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// RefreshTokens satisfies the auto refresh middleware. Only the refresh
// cookie is forwarded; the expired access token is not needed to rotate.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken, _ string) (*tokens.Pair, error) {
	if c.endpoint == "" {
		return nil, errors.New("auth endpoint is not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: jwthelp.RefreshCookie, Value: refreshToken})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, message(resp.Body))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("refresh failed: status %d: %s", resp.StatusCode, message(resp.Body))
	}

	var pair tokens.Pair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	if pair.AccessToken == "" {
		return nil, errors.New("refresh response has no access token")
	}
	return &pair, nil
}

// message pulls the echo error message out of a failed response.
func message(body io.Reader) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4<<10)).Decode(&e); err != nil {
		return "no message"
	}
	return e.Message
}
