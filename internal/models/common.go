// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CatalogModels lists the read-only catalog tables in migration order.
func CatalogModels() []interface{} {
	return []interface{}{
		&Game{},
		&Rating{},
		&GameMedia{},
		&Genre{},
		&GameGenre{},
		&Platform{},
		&GamePlatform{},
		&Category{},
		&GameCategory{},
		&SteamSpyTag{},
		&GameSteamSpyTag{},
	}
}

// AccountModels lists the tables owned by the account capability.
func AccountModels() []interface{} {
	return []interface{}{
		&User{},
		&AccessToken{},
	}
}
