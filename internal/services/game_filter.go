// internal/services/game_filter.go
package services

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ErrMissingParameter is returned when a required query parameter is absent.
var ErrMissingParameter = errors.New("missing required parameter")

// MissingParameterError names the parameter that was not supplied.
type MissingParameterError struct {
	Param string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Param)
}

func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// RangeFilter carries the shared numeric bounds. A nil bound is inactive.
type RangeFilter struct {
	RatingMin *float64 `json:"rating_min,omitempty"`
	RatingMax *float64 `json:"rating_max,omitempty"`
	PriceMin  *float64 `json:"price_min,omitempty"`
	PriceMax  *float64 `json:"price_max,omitempty"`
}

// RatingBounded reports whether either approval bound is active.
func (r RangeFilter) RatingBounded() bool {
	return r.RatingMin != nil || r.RatingMax != nil
}

// GameFilter holds the parameters accepted by the general game search.
type GameFilter struct {
	Name        string `json:"name"`
	ReleaseYear string `json:"release_year,omitempty"`
	Platform    string `json:"platform,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Category    string `json:"category,omitempty"`
	RangeFilter
}

// TagFilter holds the parameters accepted by the tag search.
type TagFilter struct {
	Tag      string `json:"tag"`
	Platform string `json:"platform,omitempty"`
	RangeFilter
}

// ParseGameFilter reads the general search parameters. name is required;
// unparseable numeric bounds are dropped.
func ParseGameFilter(values url.Values) (GameFilter, error) {
	filter := GameFilter{
		Name:        queryText(values, "name"),
		ReleaseYear: queryText(values, "release_year"),
		Platform:    queryText(values, "platform"),
		Genre:       queryText(values, "genre"),
		Category:    queryText(values, "category"),
		RangeFilter: parseRangeFilter(values),
	}

	if filter.Name == "" {
		return GameFilter{}, &MissingParameterError{Param: "name"}
	}

	return filter, nil
}

// ParseTagFilter reads the tag search parameters. tag is required.
func ParseTagFilter(values url.Values) (TagFilter, error) {
	filter := TagFilter{
		Tag:         queryText(values, "tag"),
		Platform:    queryText(values, "platform"),
		RangeFilter: parseRangeFilter(values),
	}

	if filter.Tag == "" {
		return TagFilter{}, &MissingParameterError{Param: "tag"}
	}

	return filter, nil
}

func parseRangeFilter(values url.Values) RangeFilter {
	return RangeFilter{
		RatingMin: parseOptionalFloat(values.Get("rating_min")),
		RatingMax: parseOptionalFloat(values.Get("rating_max")),
		PriceMin:  parseOptionalFloat(values.Get("price_min")),
		PriceMax:  parseOptionalFloat(values.Get("price_max")),
	}
}

func queryText(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// parseOptionalFloat returns nil for empty, malformed, NaN or infinite input.
func parseOptionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

// CacheKey renders the filter as a stable string for response caching.
func (f GameFilter) CacheKey() string {
	return canonicalKey("games", map[string]string{
		"name":         f.Name,
		"release_year": f.ReleaseYear,
		"platform":     f.Platform,
		"genre":        f.Genre,
		"category":     f.Category,
	}, f.RangeFilter)
}

// CacheKey renders the filter as a stable string for response caching.
func (f TagFilter) CacheKey() string {
	return canonicalKey("games-by-tag", map[string]string{
		"tag":      f.Tag,
		"platform": f.Platform,
	}, f.RangeFilter)
}

func canonicalKey(prefix string, text map[string]string, bounds RangeFilter) string {
	params := url.Values{}
	for k, v := range text {
		if v != "" {
			params.Set(k, v)
		}
	}
	setBound := func(key string, v *float64) {
		if v != nil {
			params.Set(key, strconv.FormatFloat(*v, 'g', -1, 64))
		}
	}
	setBound("rating_min", bounds.RatingMin)
	setBound("rating_max", bounds.RatingMax)
	setBound("price_min", bounds.PriceMin)
	setBound("price_max", bounds.PriceMax)

	return prefix + "?" + params.Encode()
}
