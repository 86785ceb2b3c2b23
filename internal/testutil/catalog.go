package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/games-api/internal/models"
)

// App ids of the seeded catalog.
const (
	CounterStrikeAppID = 10
	PortalAppID        = 400
	Portal2AppID       = 620
	UnratedAppID       = 1000 // 0 positive, 0 negative
	NoMediaAppID       = 2000 // no game_media row
	OrangeJuiceAppID   = 3000 // name contains a LIKE wildcard
	MelAppID           = 4000 // no facets, no price
	CafeAppID          = 5000 // non-ASCII name
	TomJerryAppID      = 6000 // markup in name
)

func str(s string) *string      { return &s }
func price(p float64) *float64 { return &p }

type seedGame struct {
	game       models.Game
	positive   int64
	negative   int64
	media      bool
	header     *string
	genres     []int
	platforms  []int
	categories []int
	tags       []int
}

// SeedCatalog inserts a small catalog exercising every filter.
//
// Genre 4 and tag 6 repeat the names of genre 1 and tag 1 so a game can be
// linked to the same facet name twice. Tag 7 has an empty name.
func SeedCatalog(t testing.TB, db *gorm.DB) {
	t.Helper()

	genres := []models.Genre{
		{GenreID: 1, GenreName: "Action"},
		{GenreID: 2, GenreName: "Puzzle"},
		{GenreID: 3, GenreName: "Indie"},
		{GenreID: 4, GenreName: "Action"},
	}
	platforms := []models.Platform{
		{PlatformID: 1, PlatformName: "windows"},
		{PlatformID: 2, PlatformName: "mac"},
		{PlatformID: 3, PlatformName: "linux"},
	}
	categories := []models.Category{
		{CategoryID: 1, CategoryName: "Single-player"},
		{CategoryID: 2, CategoryName: "Multi-player"},
		{CategoryID: 3, CategoryName: "Co-op"},
	}
	tags := []models.SteamSpyTag{
		{TagID: 1, TagName: "Puzzle"},
		{TagID: 2, TagName: "Co-op"},
		{TagID: 3, TagName: "Sci-fi"},
		{TagID: 4, TagName: "Action"},
		{TagID: 5, TagName: "Indie"},
		{TagID: 6, TagName: "Puzzle"},
		{TagID: 7, TagName: ""},
	}
	require.NoError(t, db.Create(&genres).Error)
	require.NoError(t, db.Create(&platforms).Error)
	require.NoError(t, db.Create(&categories).Error)
	require.NoError(t, db.Create(&tags).Error)

	games := []seedGame{
		{
			game: models.Game{AppID: CounterStrikeAppID, Name: "Counter-Strike", ReleaseDate: str("2000-11-01"),
				Developer: str("Valve"), Publisher: str("Valve"), Price: price(7.19)},
			positive: 124534, negative: 3339, media: true,
			header:    str("https://cdn.example.com/apps/10/header.jpg"),
			genres:    []int{1},
			platforms: []int{1, 2, 3}, categories: []int{2}, tags: []int{4},
		},
		{
			game: models.Game{AppID: PortalAppID, Name: "Portal", ReleaseDate: str("2007-10-10"),
				Developer: str("Valve"), Publisher: str("Valve"), Price: price(7.19)},
			positive: 500, negative: 50, media: true,
			header:    str("apps/400/header.jpg"),
			genres:    []int{1},
			platforms: []int{1, 2, 3}, categories: []int{1}, tags: []int{1, 3},
		},
		{
			game: models.Game{AppID: Portal2AppID, Name: "Portal 2", ReleaseDate: str("2011-04-18"),
				Developer: str("Valve"), Publisher: str("Valve"), Price: price(7.19)},
			positive: 1000, negative: 10, media: true,
			header:    str("https://cdn.example.com/apps/620/header.jpg"),
			genres:    []int{2, 1, 4},
			platforms: []int{3, 1, 2}, categories: []int{3, 1, 2}, tags: []int{1, 2, 3, 6},
		},
		{
			game: models.Game{AppID: UnratedAppID, Name: "Unrated Portal Adventure", ReleaseDate: str("2019-01-01"),
				Developer: str("Nobody"), Publisher: str("Nobody"), Price: price(0)},
			media:     true,
			genres:    []int{3},
			platforms: []int{1}, tags: []int{5},
		},
		{
			game: models.Game{AppID: NoMediaAppID, Name: "Mediafree Portal Tale", ReleaseDate: str("2016-02-02"),
				Price: price(1.99)},
			positive: 10, media: false,
			genres:    []int{2},
			platforms: []int{1}, tags: []int{1},
		},
		{
			game: models.Game{AppID: OrangeJuiceAppID, Name: "100% Orange Juice", ReleaseDate: str("2014-08-01"),
				Developer: str("Orange_Juice"), Publisher: str("Fruitbat Factory"), Price: price(4.99)},
			positive: 80, negative: 20, media: true,
			header:    str("apps/3000/header.jpg"),
			genres:    []int{3},
			platforms: []int{1}, categories: []int{2}, tags: []int{5, 2},
		},
		{
			game: models.Game{AppID: MelAppID, Name: "Portal Stories: Mel", ReleaseDate: str("2015-06-25"),
				Developer: str("Prism3D Studios"), Publisher: str("Prism3D Studios")},
			positive: 300, negative: 100, media: true,
		},
		{
			game: models.Game{AppID: CafeAppID, Name: "Café Crème Détective", ReleaseDate: str("2020-03-03"),
				Developer: str("Studio Été"), Price: price(9.99)},
			positive: 2, negative: 1, media: true,
			platforms: []int{1},
		},
		{
			game: models.Game{AppID: TomJerryAppID, Name: "Tom & Jerry <Deluxe>", ReleaseDate: str("2011-05-05"),
				Price: price(2.5)},
			positive: 1, negative: 1, media: true,
			platforms: []int{2},
		},
	}

	for _, g := range games {
		require.NoError(t, db.Create(&g.game).Error)
		require.NoError(t, db.Create(&models.Rating{
			AppID:           g.game.AppID,
			PositiveRatings: g.positive,
			NegativeRatings: g.negative,
		}).Error)
		if g.media {
			require.NoError(t, db.Create(&models.GameMedia{AppID: g.game.AppID, HeaderImage: g.header}).Error)
		}
		for _, id := range g.genres {
			require.NoError(t, db.Create(&models.GameGenre{AppID: g.game.AppID, GenreID: id}).Error)
		}
		for _, id := range g.platforms {
			require.NoError(t, db.Create(&models.GamePlatform{AppID: g.game.AppID, PlatformID: id}).Error)
		}
		for _, id := range g.categories {
			require.NoError(t, db.Create(&models.GameCategory{AppID: g.game.AppID, CategoryID: id}).Error)
		}
		for _, id := range g.tags {
			require.NoError(t, db.Create(&models.GameSteamSpyTag{AppID: g.game.AppID, SteamSpyTagID: id}).Error)
		}
	}
}
