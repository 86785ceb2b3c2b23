package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApprovalPercentage(t *testing.T) {
	for _, tc := range []struct {
		positive, negative int64
		want               float64
		ok                 bool
	}{
		{1000, 10, 99.01, true},
		{124534, 3339, 97.39, true},
		{2, 1, 66.67, true},
		{1, 2, 33.33, true},
		{0, 5, 0, true},
		{5, 0, 100, true},
		{0, 0, 0, false},
	} {
		got, ok := ApprovalPercentage(tc.positive, tc.negative)
		assert.Equal(t, tc.ok, ok, "%d/%d", tc.positive, tc.negative)
		assert.Equal(t, tc.want, got, "%d/%d", tc.positive, tc.negative)
	}

	r := &Rating{PositiveRatings: 500, NegativeRatings: 50}
	pct, ok := r.ApprovalPercentage()
	assert.True(t, ok)
	assert.Equal(t, 90.91, pct)
}

func TestFacetTableFor(t *testing.T) {
	tag := FacetTableFor(FacetTag)
	assert.Equal(t, "steamspy_tags", tag.Table)
	assert.Equal(t, "game_steamspy_tags", tag.LinkTable)
	assert.Equal(t, "steamspy_tag_id", tag.LinkIDColumn)

	assert.Panics(t, func() { FacetTableFor("publisher") })
}

func TestUserPassword(t *testing.T) {
	u := &User{}
	assert.NoError(t, u.SetPassword("crowbar123"))
	assert.NotEqual(t, "crowbar123", u.PasswordHash)
	assert.NoError(t, u.CheckPassword("crowbar123"))
	assert.Error(t, u.CheckPassword("crowbar124"))
}
