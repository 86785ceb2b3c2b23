// internal/services/game_query.go
package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/javajoker/games-api/internal/models"
)

// Columns projected by every game search. Rating counters are coalesced so
// a NULL counter reads as zero.
const gameSelect = "games.appid, games.name, games.release_date, games.developer, games.publisher, games.price, " +
	"COALESCE(ratings.positive_ratings, 0) AS positive_ratings, " +
	"COALESCE(ratings.negative_ratings, 0) AS negative_ratings, " +
	"game_media.header_image"

// approvalExpr is NULL when a game has no ratings, so any comparison
// against it is false and the row drops out.
const approvalExpr = "COALESCE(ratings.positive_ratings, 0) * 100.0 / " +
	"NULLIF(COALESCE(ratings.positive_ratings, 0) + COALESCE(ratings.negative_ratings, 0), 0)"

var baseJoins = []string{
	"JOIN ratings ON ratings.appid = games.appid",
	"JOIN game_media ON game_media.appid = games.appid",
}

// gameRow is one matched game with its 1:1 facts.
type gameRow struct {
	AppID           int `gorm:"column:appid"`
	Name            string
	ReleaseDate     *string
	Developer       *string
	Publisher       *string
	Price           *float64
	PositiveRatings int64
	NegativeRatings int64
	HeaderImage     *string
}

// queryClause is a self-contained filter: the joins it needs and the
// predicate it contributes. Joins are keyed by appid so clauses commute.
type queryClause struct {
	name  string
	joins []string
	where string
	args  []interface{}
}

// gameQuery accumulates clauses and folds them into one statement.
type gameQuery struct {
	clauses []queryClause
}

func newGameQuery() *gameQuery {
	return &gameQuery{}
}

func (q *gameQuery) add(c queryClause) *gameQuery {
	q.clauses = append(q.clauses, c)
	return q
}

// Names lists the applied clauses in order; used for logging and tests.
func (q *gameQuery) Names() []string {
	names := make([]string, len(q.clauses))
	for i, c := range q.clauses {
		names[i] = c.name
	}
	return names
}

func (q *gameQuery) nameContains(name string) *gameQuery {
	if name == "" {
		return q
	}
	return q.add(queryClause{
		name:  "name",
		where: "LOWER(games.name) LIKE LOWER(?) ESCAPE '\\'",
		args:  []interface{}{"%" + escapeLike(name) + "%"},
	})
}

func (q *gameQuery) releasedIn(year string) *gameQuery {
	if year == "" {
		return q
	}
	return q.add(queryClause{
		name:  "release_year",
		where: "games.release_date LIKE ? ESCAPE '\\'",
		args:  []interface{}{escapeLike(year) + "%"},
	})
}

// facetNamed joins the facet through its link table under kind-specific
// aliases and constrains the facet name. Tags compare case-insensitively,
// the other facets exactly.
func (q *gameQuery) facetNamed(kind models.FacetKind, name string) *gameQuery {
	if name == "" {
		return q
	}

	t := models.FacetTableFor(kind)
	link := string(kind) + "_link"
	ref := string(kind) + "_ref"

	where := fmt.Sprintf("%s.%s = ?", ref, t.NameColumn)
	if kind == models.FacetTag {
		where = fmt.Sprintf("LOWER(%s.%s) = LOWER(?)", ref, t.NameColumn)
	}

	return q.add(queryClause{
		name: string(kind),
		joins: []string{
			fmt.Sprintf("JOIN %s AS %s ON %s.appid = games.appid", t.LinkTable, link, link),
			fmt.Sprintf("JOIN %s AS %s ON %s.%s = %s.%s", t.Table, ref, ref, t.IDColumn, link, t.LinkIDColumn),
		},
		where: where,
		args:  []interface{}{name},
	})
}

func (q *gameQuery) approvalBetween(lo, hi *float64) *gameQuery {
	if lo != nil {
		q.add(queryClause{name: "rating_min", where: approvalExpr + " >= ?", args: []interface{}{*lo}})
	}
	if hi != nil {
		q.add(queryClause{name: "rating_max", where: approvalExpr + " <= ?", args: []interface{}{*hi}})
	}
	return q
}

func (q *gameQuery) priceBetween(lo, hi *float64) *gameQuery {
	if lo != nil {
		q.add(queryClause{name: "price_min", where: "games.price >= ?", args: []interface{}{*lo}})
	}
	if hi != nil {
		q.add(queryClause{name: "price_max", where: "games.price <= ?", args: []interface{}{*hi}})
	}
	return q
}

func (q *gameQuery) ranges(r RangeFilter) *gameQuery {
	return q.approvalBetween(r.RatingMin, r.RatingMax).priceBetween(r.PriceMin, r.PriceMax)
}

// build folds the clauses onto the base join. DISTINCT keeps one row per
// game even if the data assigns the same facet name twice.
func (q *gameQuery) build(db *gorm.DB) *gorm.DB {
	stmt := db.Table("games").Distinct(gameSelect)
	for _, join := range baseJoins {
		stmt = stmt.Joins(join)
	}
	for _, c := range q.clauses {
		for _, join := range c.joins {
			stmt = stmt.Joins(join)
		}
		if c.where != "" {
			stmt = stmt.Where(c.where, c.args...)
		}
	}
	return stmt.Order("games.appid")
}

func (q *gameQuery) find(db *gorm.DB) ([]gameRow, error) {
	var rows []gameRow
	if err := q.build(db).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// gameQueryFor composes the general search.
func gameQueryFor(f GameFilter) *gameQuery {
	return newGameQuery().
		nameContains(f.Name).
		releasedIn(f.ReleaseYear).
		facetNamed(models.FacetGenre, f.Genre).
		facetNamed(models.FacetPlatform, f.Platform).
		facetNamed(models.FacetCategory, f.Category).
		ranges(f.RangeFilter)
}

// tagQueryFor composes the tag search.
func tagQueryFor(f TagFilter) *gameQuery {
	return newGameQuery().
		facetNamed(models.FacetTag, f.Tag).
		facetNamed(models.FacetPlatform, f.Platform).
		ranges(f.RangeFilter)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
