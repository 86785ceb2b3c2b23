package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/games-api/internal/models"
	"github.com/javajoker/games-api/internal/testutil"
)

func TestLoadFacets_SortedAndDeduplicated(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedCatalog(t, db)

	facets, err := loadFacets(context.Background(), db,
		[]int{testutil.Portal2AppID, testutil.MelAppID},
		models.FacetGenre, models.FacetPlatform, models.FacetCategory)
	require.NoError(t, err)
	require.Len(t, facets, 3)

	assert.Equal(t, []string{"Action", "Puzzle"}, facets[models.FacetGenre].namesFor(testutil.Portal2AppID))
	assert.Equal(t, []string{"linux", "mac", "windows"}, facets[models.FacetPlatform].namesFor(testutil.Portal2AppID))
	assert.Equal(t, []string{"Co-op", "Multi-player", "Single-player"}, facets[models.FacetCategory].namesFor(testutil.Portal2AppID))

	for _, kind := range []models.FacetKind{models.FacetGenre, models.FacetPlatform, models.FacetCategory} {
		names := facets[kind].namesFor(testutil.MelAppID)
		assert.NotNil(t, names, kind)
		assert.Empty(t, names, kind)
	}
}

func TestLoadFacets_NoGames(t *testing.T) {
	db := testutil.NewTestDB(t)

	facets, err := loadFacets(context.Background(), db, nil, models.FacetPlatform)
	require.NoError(t, err)
	require.Contains(t, facets, models.FacetPlatform)
	assert.Equal(t, []string{}, facets[models.FacetPlatform].namesFor(42))
}

func TestLoadFacetNames_SpansBatches(t *testing.T) {
	db := testutil.NewTestDB(t)
	require.NoError(t, db.Create(&models.Platform{PlatformID: 1, PlatformName: "windows"}).Error)

	const games = facetBatchSize*2 + 37
	links := make([]models.GamePlatform, 0, games)
	appIDs := make([]int, 0, games)
	for appID := 1; appID <= games; appID++ {
		links = append(links, models.GamePlatform{AppID: appID, PlatformID: 1})
		appIDs = append(appIDs, appID)
	}
	require.NoError(t, db.CreateInBatches(links, 200).Error)

	names, err := loadFacetNames(context.Background(), db, models.FacetPlatform, appIDs)
	require.NoError(t, err)
	assert.Len(t, names, games)
	assert.Equal(t, []string{"windows"}, names.namesFor(1))
	assert.Equal(t, []string{"windows"}, names.namesFor(games))
}
