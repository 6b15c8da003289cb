package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/firebaseauth"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/tokens"
)

type fakeVerifier struct {
	id  *firebaseauth.Identity
	err error
}

func (f *fakeVerifier) Verify(context.Context, string) (*firebaseauth.Identity, error) {
	return f.id, f.err
}

func newTestAuthService(t *testing.T) *AuthService {
	return &AuthService{
		Repo:          newRepo(t),
		AccessSecret:  []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
		AdminEmails:   []string{"boss@boltandspark.test"},
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "secret-pass"},
		{name: "bad email", email: "not-an-email", password: "secret-pass"},
		{name: "short password", email: "user@example.com", password: "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_RegisterLoginRefresh(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, " User@Example.com ", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, tokens.RoleUser, user.Role)

	_, err = svc.Register(ctx, "user@example.com", "another-pass")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Login(ctx, "user@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrUnauthorized)

	pair, err := svc.Login(ctx, "USER@example.com", "secret-pass")
	require.NoError(t, err)
	assert.False(t, pair.IsAdmin)

	claims, err := tokens.AccessClaimsFromToken(pair.AccessToken, svc.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "user@example.com", claims.Email)

	rotated, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.LogOut(ctx, rotated.RefreshToken))
	_, err = svc.RefreshTokens(ctx, rotated.RefreshToken, rotated.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_AdminRoleFromConfig(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Boss@BoltAndSpark.test", "secret-pass")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "boss@boltandspark.test", "secret-pass")
	require.NoError(t, err)
	assert.True(t, pair.IsAdmin)

	claims, err := tokens.AccessClaimsFromToken(pair.AccessToken, svc.AccessSecret)
	require.NoError(t, err)
	assert.True(t, tokens.IsAdmin(claims))
}

func TestAuthService_FirebaseSignIn(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.FirebaseSignIn(ctx, "token")
	assert.ErrorIs(t, err, ErrValidation)

	svc.Verifier = &fakeVerifier{err: errors.New("expired")}
	_, err = svc.FirebaseSignIn(ctx, "token")
	assert.ErrorIs(t, err, ErrUnauthorized)

	svc.Verifier = &fakeVerifier{id: &firebaseauth.Identity{UID: "abc", Email: "Buyer@Example.com", EmailVerified: true}}
	first, err := svc.FirebaseSignIn(ctx, "token")
	require.NoError(t, err)
	second, err := svc.FirebaseSignIn(ctx, "token")
	require.NoError(t, err)

	a, err := tokens.AccessClaimsFromToken(first.AccessToken, svc.AccessSecret)
	require.NoError(t, err)
	b, err := tokens.AccessClaimsFromToken(second.AccessToken, svc.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, a.Subject, b.Subject)

	_, err = svc.Login(ctx, "buyer@example.com", "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_FirebaseRejectsUnverifiedEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	svc.Verifier = &fakeVerifier{id: &firebaseauth.Identity{UID: "u1", Email: "boss@boltandspark.test"}}
	_, err := svc.FirebaseSignIn(ctx, "token")
	assert.ErrorIs(t, err, ErrUnauthorized)

	var n int64
	require.NoError(t, svc.Repo.DB.Model(&models.User{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestAuthService_FirebaseDoesNotTakeOverPasswordAccount(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	owner, err := svc.Register(ctx, "boss@boltandspark.test", "secret-pass")
	require.NoError(t, err)

	svc.Verifier = &fakeVerifier{id: &firebaseauth.Identity{UID: "u1", Email: "boss@boltandspark.test", EmailVerified: true}}
	_, err = svc.FirebaseSignIn(ctx, "token")
	assert.ErrorIs(t, err, ErrConflict)

	pair, err := svc.Login(ctx, "boss@boltandspark.test", "secret-pass")
	require.NoError(t, err)
	claims, err := tokens.AccessClaimsFromToken(pair.AccessToken, svc.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, owner.ID.String(), claims.Subject)
}
