// internal/models/facet.go
package models

// Reference tables

type Genre struct {
	GenreID   int    `json:"genre_id" gorm:"column:genre_id;primaryKey;autoIncrement:false"`
	GenreName string `json:"genre_name" gorm:"type:text"`
}

func (Genre) TableName() string { return "genres" }

type Platform struct {
	PlatformID   int    `json:"platform_id" gorm:"column:platform_id;primaryKey;autoIncrement:false"`
	PlatformName string `json:"platform_name" gorm:"type:text"`
}

func (Platform) TableName() string { return "platforms" }

type Category struct {
	CategoryID   int    `json:"category_id" gorm:"column:category_id;primaryKey;autoIncrement:false"`
	CategoryName string `json:"category_name" gorm:"type:text"`
}

func (Category) TableName() string { return "categories" }

type SteamSpyTag struct {
	TagID   int    `json:"tag_id" gorm:"column:tag_id;primaryKey;autoIncrement:false"`
	TagName string `json:"tag_name" gorm:"type:text"`
}

func (SteamSpyTag) TableName() string { return "steamspy_tags" }

// Association tables

type GameGenre struct {
	AppID   int `gorm:"column:appid;primaryKey;autoIncrement:false"`
	GenreID int `gorm:"column:genre_id;primaryKey;autoIncrement:false"`
}

func (GameGenre) TableName() string { return "game_genres" }

type GamePlatform struct {
	AppID      int `gorm:"column:appid;primaryKey;autoIncrement:false"`
	PlatformID int `gorm:"column:platform_id;primaryKey;autoIncrement:false"`
}

func (GamePlatform) TableName() string { return "game_platforms" }

type GameCategory struct {
	AppID      int `gorm:"column:appid;primaryKey;autoIncrement:false"`
	CategoryID int `gorm:"column:category_id;primaryKey;autoIncrement:false"`
}

func (GameCategory) TableName() string { return "game_categories" }

type GameSteamSpyTag struct {
	AppID         int `gorm:"column:appid;primaryKey;autoIncrement:false"`
	SteamSpyTagID int `gorm:"column:steamspy_tag_id;primaryKey;autoIncrement:false"`
}

func (GameSteamSpyTag) TableName() string { return "game_steamspy_tags" }

// FacetKind names a many-to-many classification dimension.
type FacetKind string

const (
	FacetGenre    FacetKind = "genre"
	FacetPlatform FacetKind = "platform"
	FacetCategory FacetKind = "category"
	FacetTag      FacetKind = "tag"
)

// FacetTable describes how a facet is stored: a reference table of
// (id, name) pairs and a link table of (appid, id) pairs.
type FacetTable struct {
	Kind         FacetKind
	Table        string
	IDColumn     string
	NameColumn   string
	LinkTable    string
	LinkIDColumn string
}

var facetTables = map[FacetKind]FacetTable{
	FacetGenre: {
		Kind: FacetGenre, Table: "genres", IDColumn: "genre_id", NameColumn: "genre_name",
		LinkTable: "game_genres", LinkIDColumn: "genre_id",
	},
	FacetPlatform: {
		Kind: FacetPlatform, Table: "platforms", IDColumn: "platform_id", NameColumn: "platform_name",
		LinkTable: "game_platforms", LinkIDColumn: "platform_id",
	},
	FacetCategory: {
		Kind: FacetCategory, Table: "categories", IDColumn: "category_id", NameColumn: "category_name",
		LinkTable: "game_categories", LinkIDColumn: "category_id",
	},
	FacetTag: {
		Kind: FacetTag, Table: "steamspy_tags", IDColumn: "tag_id", NameColumn: "tag_name",
		LinkTable: "game_steamspy_tags", LinkIDColumn: "steamspy_tag_id",
	},
}

// FacetTableFor returns the storage layout of kind. It panics on an unknown
// kind since the set is closed.
func FacetTableFor(kind FacetKind) FacetTable {
	t, ok := facetTables[kind]
	if !ok {
		panic("models: unknown facet kind " + string(kind))
	}
	return t
}
