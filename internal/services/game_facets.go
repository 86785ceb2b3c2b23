// internal/services/game_facets.go
package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/javajoker/games-api/internal/metrics"
	"github.com/javajoker/games-api/internal/models"
)

// facetBatchSize bounds the IN list of one facet lookup; SQLite caps bound
// parameters per statement.
const facetBatchSize = 500

type facetRow struct {
	AppID int    `gorm:"column:appid"`
	Name  string `gorm:"column:name"`
}

// facetNames maps appid to that game's facet names, sorted.
type facetNames map[int][]string

// namesFor never returns nil so empty collections encode as [].
func (f facetNames) namesFor(appID int) []string {
	if names, ok := f[appID]; ok {
		return names
	}
	return []string{}
}

// loadFacetNames fetches one facet kind for all games in appIDs with one
// query per batch.
func loadFacetNames(ctx context.Context, db *gorm.DB, kind models.FacetKind, appIDs []int) (facetNames, error) {
	t := models.FacetTableFor(kind)
	names := make(facetNames, len(appIDs))

	for start := 0; start < len(appIDs); start += facetBatchSize {
		end := min(start+facetBatchSize, len(appIDs))

		var rows []facetRow
		err := db.WithContext(ctx).
			Table(t.Table+" AS ref").
			Select(fmt.Sprintf("link.appid AS appid, ref.%s AS name", t.NameColumn)).
			Joins(fmt.Sprintf("JOIN %s AS link ON link.%s = ref.%s", t.LinkTable, t.LinkIDColumn, t.IDColumn)).
			Where("link.appid IN ?", appIDs[start:end]).
			Where(fmt.Sprintf("ref.%s IS NOT NULL", t.NameColumn)).
			Order("link.appid").
			Order("ref." + t.NameColumn).
			Scan(&rows).Error
		metrics.FacetQueriesTotal.WithLabelValues(string(kind)).Inc()
		if err != nil {
			return nil, fmt.Errorf("failed to load %s names: %w", kind, err)
		}

		for _, row := range rows {
			existing := names[row.AppID]
			// rows arrive sorted, so duplicates are adjacent
			if n := len(existing); n > 0 && existing[n-1] == row.Name {
				continue
			}
			names[row.AppID] = append(existing, row.Name)
		}
	}

	return names, nil
}

// loadFacets resolves several facet kinds concurrently.
func loadFacets(ctx context.Context, db *gorm.DB, appIDs []int, kinds ...models.FacetKind) (map[models.FacetKind]facetNames, error) {
	result := make(map[models.FacetKind]facetNames, len(kinds))
	if len(appIDs) == 0 {
		for _, kind := range kinds {
			result[kind] = facetNames{}
		}
		return result, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		kind := kind
		g.Go(func() error {
			names, err := loadFacetNames(gctx, db, kind, appIDs)
			if err != nil {
				return err
			}
			mu.Lock()
			result[kind] = names
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
