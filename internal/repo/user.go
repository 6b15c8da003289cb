package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shauryam-singh/bolt-and-spark-web-sub000/internal/models"
	pkghash "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/hash"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExist   = errors.New("user already exists")
	ErrProviderMismatch   = errors.New("email belongs to an account of another provider")
)

// Authenticate returns the password account behind email. Accounts created
// by an external provider have no password hash and never match.
func (r *GormRepo) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, err
	}
	if user.PasswordHash == "" || !pkghash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	err := r.DB.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserAlreadyExist
	}
	return err
}

// UpsertExternalUser finds the user by email or creates it for an external
// identity provider. An existing account of another provider is never
// merged. The stored role is refreshed from role on every sign-in.
func (r *GormRepo) UpsertExternalUser(ctx context.Context, email, provider, role string) (*models.User, error) {
	user := models.User{Email: email, Provider: provider, Role: role}
	if err := r.DB.WithContext(ctx).Where("email = ?", email).FirstOrCreate(&user).Error; err != nil {
		return nil, err
	}
	if user.Provider != provider {
		return nil, ErrProviderMismatch
	}
	if user.Role != role {
		if err := r.DB.WithContext(ctx).Model(&user).Update("role", role).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func (r *GormRepo) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
