// internal/models/access_token.go
package models

import (
	"time"
)

// AccessToken is an issued API key. Only the SHA-256 hash of the key is
// stored; the plaintext is shown to the caller once.
type AccessToken struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	SessionID string    `json:"session_id" gorm:"size:36;not null;index"`
	TokenHash string    `json:"-" gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (t *AccessToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
