// internal/models/game.go
package models

import (
	"math"
)

// Game is a catalog product keyed by its store app id. Rows are written by
// the external ingestion job; the API only reads them.
type Game struct {
	AppID            int      `json:"appid" gorm:"column:appid;primaryKey;autoIncrement:false"`
	Name             string   `json:"name" gorm:"not null"`
	ReleaseDate      *string  `json:"release_date"`
	Developer        *string  `json:"developer"`
	Publisher        *string  `json:"publisher"`
	English          *int     `json:"english"`
	ShortDescription *string  `json:"short_description" gorm:"type:text"`
	Price            *float64 `json:"price"`

	Rating *Rating    `json:"rating,omitempty" gorm:"foreignKey:AppID;references:AppID"`
	Media  *GameMedia `json:"media,omitempty" gorm:"foreignKey:AppID;references:AppID"`
}

func (Game) TableName() string { return "games" }

type Rating struct {
	AppID           int     `json:"appid" gorm:"column:appid;primaryKey;autoIncrement:false"`
	PositiveRatings int64   `json:"positive_ratings" gorm:"not null;default:0"`
	NegativeRatings int64   `json:"negative_ratings" gorm:"not null;default:0"`
	AveragePlaytime *int    `json:"average_playtime"`
	MedianPlaytime  *int    `json:"median_playtime"`
	Owners          *string `json:"owners" gorm:"type:text"`
	Achievements    *int    `json:"achievements"`
	RequiredAge     *int    `json:"required_age"`
}

func (Rating) TableName() string { return "ratings" }

// ApprovalPercentage returns positive/(positive+negative)*100 rounded to two
// decimals. ok is false when the game has no ratings at all.
func ApprovalPercentage(positive, negative int64) (pct float64, ok bool) {
	total := positive + negative
	if total <= 0 {
		return 0, false
	}
	raw := float64(positive) / float64(total) * 100
	return math.Round(raw*100) / 100, true
}

func (r *Rating) ApprovalPercentage() (float64, bool) {
	return ApprovalPercentage(r.PositiveRatings, r.NegativeRatings)
}

type GameMedia struct {
	AppID       int     `json:"appid" gorm:"column:appid;primaryKey;autoIncrement:false"`
	HeaderImage *string `json:"header_image" gorm:"type:text"`
}

func (GameMedia) TableName() string { return "game_media" }
