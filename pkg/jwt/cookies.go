// Package jwt carries the storefront token pair in HttpOnly cookies.
package jwt

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/tokens"
)

const (
	AccessCookie  = "bs_access"
	RefreshCookie = "bs_refresh"
)

func CreateCookie(name, value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteCookie(name string) *http.Cookie {
	ck := CreateCookie(name, "", time.Unix(0, 0))
	ck.MaxAge = -1
	return ck
}

// SetPair writes both cookies. Both live as long as the refresh token, so an
// expired access token still reaches the server and can be refreshed there.
func SetPair(c echo.Context, pair *tokens.Pair) {
	c.SetCookie(CreateCookie(AccessCookie, pair.AccessToken, time.Unix(pair.RefreshExp, 0)))
	c.SetCookie(CreateCookie(RefreshCookie, pair.RefreshToken, time.Unix(pair.RefreshExp, 0)))
}

func ClearPair(c echo.Context) {
	c.SetCookie(DeleteCookie(AccessCookie))
	c.SetCookie(DeleteCookie(RefreshCookie))
}

// Sha256Hex is the at-rest form of a refresh token.
func Sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func NewJTI() string { return uuid.NewString() }
