package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProviderPassword = "password"
	ProviderFirebase = "firebase"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"    json:"id"`
	Email        string    `gorm:"not null;uniqueIndex"    json:"email"`
	PasswordHash string    `gorm:"not null;default:''"     json:"-"`
	Provider     string    `gorm:"not null"                json:"provider"`
	Role         string    `gorm:"not null"                json:"role"`
	CreatedAt    time.Time `                               json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"               json:"id"`
	Token     string    `gorm:"not null;uniqueIndex"     json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	JTI       string    `gorm:"not null;uniqueIndex"     json:"jti"`
	ExpiresAt int64     `gorm:"not null"                 json:"expires_at"`
	Revoked   bool      `gorm:"default:false"            json:"revoked"`
}

type Profile struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	FullName  string    `gorm:"not null;default:''"  json:"full_name"`
	Phone     string    `gorm:"not null;default:''"  json:"phone"`
	Company   string    `gorm:"not null;default:''"  json:"company"`
	UpdatedAt time.Time `                            json:"updated_at"`
}

type Address struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"  json:"user_id"`
	Label      string    `gorm:"not null;default:''"       json:"label"`
	Line1      string    `gorm:"not null"                  json:"line1"`
	Line2      string    `gorm:"not null;default:''"       json:"line2"`
	City       string    `gorm:"not null"                  json:"city"`
	State      string    `gorm:"not null;default:''"       json:"state"`
	PostalCode string    `gorm:"not null"                  json:"postal_code"`
	Country    string    `gorm:"not null"                  json:"country"`
	IsDefault  bool      `gorm:"not null;default:false"    json:"is_default"`
	CreatedAt  time.Time `                                 json:"created_at"`
}

type Contact struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Email     string    `gorm:"not null"                 json:"email"`
	Phone     string    `gorm:"not null;default:''"      json:"phone"`
	Subject   string    `gorm:"not null;default:''"      json:"subject"`
	Message   string    `gorm:"not null"                 json:"message"`
	CreatedAt time.Time `gorm:"index"                    json:"created_at"`
}
