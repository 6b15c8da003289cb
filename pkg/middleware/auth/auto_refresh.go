// Package middleware authenticates cookie sessions and applies the admin
// policy to protected route groups.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	jwthelp "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/jwt"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/tokens"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
)

// Refresher rotates an expired access token using the refresh cookie.
// Both the local auth service and the remote authclient satisfy it.
type Refresher interface {
	RefreshTokens(ctx context.Context, refreshToken, accessToken string) (*tokens.Pair, error)
}

type AutoRefreshMiddleware struct {
	JWTSecret []byte
	Refresher Refresher
}

func NewAutoRefreshMiddleware(secret []byte, refresher Refresher) *AutoRefreshMiddleware {
	return &AutoRefreshMiddleware{JWTSecret: secret, Refresher: refresher}
}

// Policy decides whether authenticated claims may reach a route group.
type Policy func(claims *tokens.AccessClaims) error

func AdminOnly(claims *tokens.AccessClaims) error {
	if !tokens.IsAdmin(claims) {
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	}
	return nil
}

func (m *AutoRefreshMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.guard(next, nil)
}

func (m *AutoRefreshMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.guard(next, AdminOnly)
}

func (m *AutoRefreshMiddleware) guard(next echo.HandlerFunc, policy Policy) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.authenticate(c)
		if err != nil {
			return err
		}
		if policy != nil {
			if err := policy(claims); err != nil {
				return err
			}
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxEmail, claims.Email)
		return next(c)
	}
}

// authenticate returns the caller's claims. An access token that has only
// expired is rotated through the Refresher and the new pair is written back.
func (m *AutoRefreshMiddleware) authenticate(c echo.Context) (*tokens.AccessClaims, error) {
	access, err := c.Cookie(jwthelp.AccessCookie)
	if err != nil || access.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	claims, err := tokens.AccessClaimsFromToken(access.Value, m.JWTSecret)
	switch {
	case err == nil:
		return claims, nil
	case !errors.Is(err, jwt.ErrTokenExpired):
		jwthelp.ClearPair(c)
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	case m.Refresher == nil:
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "access token expired")
	}

	refresh, err := c.Cookie(jwthelp.RefreshCookie)
	if err != nil || refresh.Value == "" {
		jwthelp.ClearPair(c)
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}

	ctx := c.Request().Context()
	pair, err := m.Refresher.RefreshTokens(ctx, refresh.Value, access.Value)
	if err != nil {
		logging.FromContext(ctx).Warn("auto_refresh_failed", "status", 401, "error", err)
		jwthelp.ClearPair(c)
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "refresh failed")
	}

	claims, err = tokens.AccessClaimsFromToken(pair.AccessToken, m.JWTSecret)
	if err != nil {
		jwthelp.ClearPair(c)
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "new access token invalid")
	}
	jwthelp.SetPair(c, pair)
	return claims, nil
}
