package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwthelp "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/jwt"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/tokens"
)

func TestRefreshTokens_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		ck, err := r.Cookie(jwthelp.RefreshCookie)
		require.NoError(t, err)
		assert.Equal(t, "r1", ck.Value)
		_, err = r.Cookie(jwthelp.AccessCookie)
		assert.Error(t, err)

		_ = json.NewEncoder(w).Encode(tokens.Pair{AccessToken: "a2", RefreshToken: "r2", AccessExp: 10, RefreshExp: 20})
	}))
	defer srv.Close()

	pair, err := NewClient(srv.URL).RefreshTokens(context.Background(), "r1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "a2", pair.AccessToken)
	assert.Equal(t, "r2", pair.RefreshToken)
	assert.EqualValues(t, 20, pair.RefreshExp)
}

func TestRefreshTokens_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"refresh token expired or revoked"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL+"/").RefreshTokens(context.Background(), "r1", "a1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "revoked")
}

func TestRefreshTokens_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RefreshTokens(context.Background(), "r1", "a1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRejected))
	assert.Contains(t, err.Error(), "503")
}
