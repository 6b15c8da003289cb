package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/firebaseauth"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/repo"
	pkg_hash "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/hash"
	jwthelp "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/jwt"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/logging"
	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	AdminEmails   []string
	Verifier      firebaseauth.Verifier
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RoleFor is the role an account with this email signs in with.
func (s *AuthService) RoleFor(email string) string {
	if slices.Contains(s.AdminEmails, normalizeEmail(email)) {
		return tokens.RoleAdmin
	}
	return tokens.RoleUser
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", ErrValidation)
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: pwHash,
		Provider:     models.ProviderPassword,
		Role:         s.RoleFor(email),
	}

	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "status", 409, "reason", "user already exists")
			return nil, fmt.Errorf("user already exists: %w", ErrConflict)
		}
		l.Error("register_error", "status", 500, "error", err)
		return nil, storeErr("register", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*tokens.Pair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.Authenticate(ctx, normalizeEmail(email), password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("login failed", "status", 401, "reason", "invalid email or password")
			return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
		}
		l.Error("login failed", "status", 500, "error", err)
		return nil, storeErr("login", err)
	}
	return s.issue(ctx, user, "")
}

// FirebaseSignIn signs in with a verified Firebase ID token, creating the
// account on first use. The token's email must be verified.
func (s *AuthService) FirebaseSignIn(ctx context.Context, idToken string) (*tokens.Pair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.firebase")

	if s.Verifier == nil {
		return nil, fmt.Errorf("firebase sign-in is not configured: %w", ErrValidation)
	}
	id, err := s.Verifier.Verify(ctx, idToken)
	if err != nil {
		l.Warn("firebase_verify_failed", "status", 401, "error", err)
		return nil, fmt.Errorf("id token rejected: %w", ErrUnauthorized)
	}

	if !id.EmailVerified {
		l.Warn("firebase_verify_failed", "status", 401, "reason", "email not verified")
		return nil, fmt.Errorf("firebase email is not verified: %w", ErrUnauthorized)
	}

	email := normalizeEmail(id.Email)
	user, err := s.Repo.UpsertExternalUser(ctx, email, models.ProviderFirebase, s.RoleFor(email))
	if err != nil {
		if errors.Is(err, repo.ErrProviderMismatch) {
			l.Warn("firebase_signin_failed", "status", 409, "reason", "email registered with a password")
			return nil, fmt.Errorf("email is registered with a password: %w", ErrConflict)
		}
		return nil, storeErr("upsert firebase user", err)
	}
	return s.issue(ctx, user, "")
}

// Refresh exchanges a refresh token for a new pair. The old token is revoked
// in the same transaction the new one is stored in, so it works only once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*tokens.Pair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		l.Warn("refresh_failed", "status", 401, "reason", "invalid refresh token", "error", err)
		return nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
	}

	stored, err := s.Repo.FindRefreshByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("refresh token not found: %w", ErrUnauthorized)
		}
		return nil, storeErr("find refresh token", err)
	}
	if stored.Token != jwthelp.Sha256Hex(refreshToken) {
		return nil, fmt.Errorf("refresh token mismatch: %w", ErrUnauthorized)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("malformed subject: %w", ErrUnauthorized)
	}
	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user is gone: %w", ErrUnauthorized)
		}
		return nil, storeErr("get user", err)
	}
	return s.issue(ctx, user, claims.ID)
}

// RefreshTokens lets the auto refresh middleware rotate tokens in process.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken, _ string) (*tokens.Pair, error) {
	return s.Refresh(ctx, refreshToken)
}

func (s *AuthService) LogOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return storeErr("logout", s.Repo.LogOut(ctx, refreshToken))
}

// issue signs a new pair for user. A non-empty rotateFrom revokes that jti.
func (s *AuthService) issue(ctx context.Context, user *models.User, rotateFrom string) (*tokens.Pair, error) {
	now := time.Now()
	accessExp := now.Add(s.AccessTTL)
	refreshExp := now.Add(s.RefreshTTL)
	role := s.RoleFor(user.Email)

	access, err := tokens.SignAccess(user.ID.String(), role, user.Email, accessExp, s.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	jti := jwthelp.NewJTI()
	refresh, err := tokens.SignRefresh(user.ID.String(), jti, refreshExp, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	row := &models.RefreshToken{
		Token:     jwthelp.Sha256Hex(refresh),
		UserID:    user.ID,
		JTI:       jti,
		ExpiresAt: refreshExp.Unix(),
	}
	if rotateFrom == "" {
		err = s.Repo.AddRefreshToDB(ctx, row)
	} else {
		err = s.Repo.RotateRefreshToken(ctx, rotateFrom, row)
	}
	if errors.Is(err, repo.ErrTokenExpiredOrRevoked) {
		return nil, fmt.Errorf("refresh token expired or revoked: %w", ErrUnauthorized)
	}
	if err != nil {
		return nil, storeErr("store refresh token", err)
	}

	return &tokens.Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp.Unix(),
		RefreshExp:   refreshExp.Unix(),
		IsAdmin:      role == tokens.RoleAdmin,
	}, nil
}
