package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/tokens"
)

func TestCookies(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	c := CreateCookie(AccessCookie, "tok", exp)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)

	d := DeleteCookie(RefreshCookie)
	assert.Equal(t, -1, d.MaxAge)
	assert.Empty(t, d.Value)
	assert.Equal(t, "/", d.Path)
}

func TestSetAndClearPair(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/login", nil), rec)

	refreshExp := time.Now().Add(time.Hour).Unix()
	SetPair(c, &tokens.Pair{
		AccessToken:  "a1",
		RefreshToken: "r1",
		AccessExp:    time.Now().Add(time.Minute).Unix(),
		RefreshExp:   refreshExp,
	})
	got := map[string]string{}
	for _, ck := range rec.Result().Cookies() {
		got[ck.Name] = ck.Value
		// the access cookie outlives its token so the refresh path can see it
		assert.Equal(t, refreshExp, ck.Expires.Unix(), ck.Name)
	}
	assert.Equal(t, map[string]string{AccessCookie: "a1", RefreshCookie: "r1"}, got)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), rec)
	ClearPair(c)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, ck := range cookies {
		assert.Equal(t, -1, ck.MaxAge)
	}
}

func TestSha256HexStable(t *testing.T) {
	assert.Equal(t, Sha256Hex("abc"), Sha256Hex("abc"))
	assert.Len(t, Sha256Hex("abc"), 64)
	assert.NotEqual(t, NewJTI(), NewJTI())
}
