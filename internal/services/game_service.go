// internal/services/game_service.go
package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/games-api/internal/models"
)

type GameService struct {
	db    *gorm.DB
	cache *CacheService
	media *MediaService
}

// GameDetail is one result of the general search.
type GameDetail struct {
	AppID         int      `json:"appid"`
	Name          string   `json:"name"`
	ReleaseDate   *string  `json:"release_date"`
	Developer     *string  `json:"developer"`
	Publisher     *string  `json:"publisher"`
	Price         *float64 `json:"price"`
	OverallRating *float64 `json:"overall_rating"`
	HeaderImage   *string  `json:"header_image"`
	Genres        []string `json:"genres"`
	Categories    []string `json:"categories"`
	Platforms     []string `json:"platforms"`
}

// GameSummary is the narrower projection returned by the tag search.
type GameSummary struct {
	AppID         int      `json:"appid"`
	Name          string   `json:"name"`
	ReleaseDate   *string  `json:"release_date"`
	Price         *float64 `json:"price"`
	OverallRating *float64 `json:"overall_rating"`
	HeaderImage   *string  `json:"header_image"`
	Platforms     []string `json:"platforms"`
}

type GameSearchResult struct {
	Count   int          `json:"count"`
	Results []GameDetail `json:"results"`
}

type TagSearchResult struct {
	Tag     string        `json:"tag"`
	Count   int           `json:"count"`
	Results []GameSummary `json:"results"`
}

type TagListResult struct {
	Count   int      `json:"count"`
	Results []string `json:"results"`
}

func NewGameService(db *gorm.DB, cache *CacheService, media *MediaService) *GameService {
	return &GameService{
		db:    db,
		cache: cache,
		media: media,
	}
}

// SearchGames runs the general search: one composed query for the games,
// then one batched lookup per facet kind.
func (s *GameService) SearchGames(ctx context.Context, filter GameFilter) (*GameSearchResult, error) {
	return Remember(ctx, s.cache, filter.CacheKey(), func() (*GameSearchResult, error) {
		query := gameQueryFor(filter)
		logrus.WithField("clauses", query.Names()).Debug("Searching games")

		rows, err := query.find(s.db.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to search games: %w", err)
		}

		facets, err := loadFacets(ctx, s.db, appIDs(rows),
			models.FacetGenre, models.FacetCategory, models.FacetPlatform)
		if err != nil {
			return nil, err
		}

		results := make([]GameDetail, 0, len(rows))
		for _, row := range rows {
			results = append(results, GameDetail{
				AppID:         row.AppID,
				Name:          row.Name,
				ReleaseDate:   row.ReleaseDate,
				Developer:     row.Developer,
				Publisher:     row.Publisher,
				Price:         row.Price,
				OverallRating: overallRating(row),
				HeaderImage:   s.media.ResolveHeaderImage(row.HeaderImage),
				Genres:        facets[models.FacetGenre].namesFor(row.AppID),
				Categories:    facets[models.FacetCategory].namesFor(row.AppID),
				Platforms:     facets[models.FacetPlatform].namesFor(row.AppID),
			})
		}

		return &GameSearchResult{Count: len(results), Results: results}, nil
	})
}

// SearchGamesByTag runs the tag search. Only platforms are resolved for
// the narrower projection.
func (s *GameService) SearchGamesByTag(ctx context.Context, filter TagFilter) (*TagSearchResult, error) {
	return Remember(ctx, s.cache, filter.CacheKey(), func() (*TagSearchResult, error) {
		query := tagQueryFor(filter)
		logrus.WithField("clauses", query.Names()).Debug("Searching games by tag")

		rows, err := query.find(s.db.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to search games by tag: %w", err)
		}

		facets, err := loadFacets(ctx, s.db, appIDs(rows), models.FacetPlatform)
		if err != nil {
			return nil, err
		}

		results := make([]GameSummary, 0, len(rows))
		for _, row := range rows {
			results = append(results, GameSummary{
				AppID:         row.AppID,
				Name:          row.Name,
				ReleaseDate:   row.ReleaseDate,
				Price:         row.Price,
				OverallRating: overallRating(row),
				HeaderImage:   s.media.ResolveHeaderImage(row.HeaderImage),
				Platforms:     facets[models.FacetPlatform].namesFor(row.AppID),
			})
		}

		return &TagSearchResult{Tag: filter.Tag, Count: len(results), Results: results}, nil
	})
}

// ListTags returns every known tag name, sorted and de-duplicated.
func (s *GameService) ListTags(ctx context.Context) (*TagListResult, error) {
	return Remember(ctx, s.cache, "tags", func() (*TagListResult, error) {
		var tags []string
		err := s.db.WithContext(ctx).
			Model(&models.SteamSpyTag{}).
			Distinct().
			Where("tag_name IS NOT NULL AND tag_name <> ''").
			Pluck("tag_name", &tags).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list tags: %w", err)
		}

		// Byte order regardless of the database collation
		slices.Sort(tags)
		tags = slices.Compact(tags)
		if tags == nil {
			tags = []string{}
		}

		return &TagListResult{Count: len(tags), Results: tags}, nil
	})
}

func overallRating(row gameRow) *float64 {
	pct, ok := models.ApprovalPercentage(row.PositiveRatings, row.NegativeRatings)
	if !ok {
		return nil
	}
	return &pct
}

func appIDs(rows []gameRow) []int {
	ids := make([]int, len(rows))
	for i, row := range rows {
		ids[i] = row.AppID
	}
	return ids
}
