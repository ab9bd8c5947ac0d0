package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreForLabel(t *testing.T) {
	cases := map[string]float64{
		"excellent":  5,
		"good":       4,
		"average":    3,
		"poor":       2,
		"Excellent":  DefaultRatingScore,
		" good ":     DefaultRatingScore,
		"outrageous": DefaultRatingScore,
		"":           DefaultRatingScore,
	}
	for label, want := range cases {
		assert.Equal(t, want, ScoreForLabel(label), label)
	}
}

func TestRatingDistributionBoundaries(t *testing.T) {
	var d RatingDistribution
	for _, score := range []float64{5, 4.5, 4.49, 3.5, 3, 2.5, 2.49, 1} {
		d.Add(score)
	}
	assert.Equal(t, RatingDistribution{Excellent: 2, Good: 2, Average: 2, Poor: 2}, d)
}

func TestExportJobParamsRoundTrip(t *testing.T) {
	params := ExportJobParams{Format: "csv", Filters: map[string]string{"status": "submitted"}}
	raw, err := params.Value()
	require.NoError(t, err)

	var decoded ExportJobParams
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, params, decoded)

	require.NoError(t, decoded.Scan(nil))
	assert.Equal(t, ExportJobParams{}, decoded)
	assert.Error(t, decoded.Scan(42))
}

func TestUserRoles(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.False(t, UserRole("admin").Valid())
	assert.True(t, RolePrincipal.IsReviewer())
	assert.False(t, RoleStudent.IsReviewer())
	assert.True(t, ExportDataset("assigned-courses").Valid())
	assert.False(t, ExportDataset("users").Valid())
}
