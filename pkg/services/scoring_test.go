package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domy415/singapore-property-hub-sub003/pkg/apperrors"
	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
)

func primeDistrictFacts() *models.PropertyFacts {
	return &models.PropertyFacts{
		Name:           "The Arcadia Gardens",
		District:       10,
		DeveloperTier:  1,
		UnitCount:      520,
		Tenure:         "freehold",
		AvgPSF:         2300,
		DistrictAvgPSF: 2600,
		GreenMark:      "Platinum",
		FacilityRating: 4.5,
	}
}

func TestPropertyScoring_WeightedComposite(t *testing.T) {
	svc := NewPropertyScoringService(ScoringWeights{})

	score, err := svc.Score(primeDistrictFacts())
	require.NoError(t, err)

	// Sub-scores: location 90 (CCR), developer 95 (tier 1), value 90
	// (2300/2600 <= 0.90), facilities 100 (4.5*20 + 10), tenure 95 (freehold).
	assert.Equal(t, 90, score.Breakdown.Location)
	assert.Equal(t, 95, score.Breakdown.Developer)
	assert.Equal(t, 90, score.Breakdown.Value)
	assert.Equal(t, 100, score.Breakdown.Facilities)
	assert.Equal(t, 95, score.Breakdown.Tenure)

	// 90*.25 + 95*.20 + 90*.25 + 100*.15 + 95*.15 = 93.25 -> 93
	assert.Equal(t, 93, score.Overall)
}

func TestPropertyScoring_Deterministic(t *testing.T) {
	svc := NewPropertyScoringService(ScoringWeights{})

	first, err := svc.Score(primeDistrictFacts())
	require.NoError(t, err)
	second, err := svc.Score(primeDistrictFacts())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPropertyScoring_StrengthsAndConcerns(t *testing.T) {
	svc := NewPropertyScoringService(ScoringWeights{})

	facts := &models.PropertyFacts{
		Name:                "Fringe Heights",
		District:            19, // OCR -> location 60, neither strength nor concern
		DeveloperTier:       4,  // 50
		UnitCount:           300,
		Tenure:              "leasehold",
		RemainingLeaseYears: 45, // 30 -> concern
		AvgPSF:              1500,
		DistrictAvgPSF:      1600, // ratio ~0.94 -> 80 -> strength
		FacilityRating:      1.5,  // 30 -> concern
	}

	score, err := svc.Score(facts)
	require.NoError(t, err)

	assert.Contains(t, score.Strengths, "pricing versus district average")
	assert.Contains(t, score.Concerns, "tenure and remaining lease")
	assert.Contains(t, score.Concerns, "facilities and sustainability")
	assert.NotContains(t, score.Strengths, "location and accessibility")
	assert.NotContains(t, score.Concerns, "location and accessibility")
}

func TestPropertyScoring_SubScoresClamped(t *testing.T) {
	svc := NewPropertyScoringService(ScoringWeights{})

	facts := primeDistrictFacts()
	facts.FacilityRating = 5 // 5*20 + 10 (Platinum) = 110 before clamping

	score, err := svc.Score(facts)
	require.NoError(t, err)

	assert.Equal(t, 100, score.Breakdown.Facilities)
	assert.LessOrEqual(t, score.Overall, 100)
}

func TestPropertyScoring_MissingFacts(t *testing.T) {
	svc := NewPropertyScoringService(ScoringWeights{})

	tests := []struct {
		name  string
		facts *models.PropertyFacts
	}{
		{"nil facts", nil},
		{"missing name", &models.PropertyFacts{District: 10, AvgPSF: 2000, DistrictAvgPSF: 2100}},
		{"district out of range", &models.PropertyFacts{Name: "X", District: 30, AvgPSF: 2000, DistrictAvgPSF: 2100}},
		{"missing comparables", &models.PropertyFacts{Name: "X", District: 10}},
		{"unknown tenure", &models.PropertyFacts{
			Name: "X", District: 10, AvgPSF: 2000, DistrictAvgPSF: 2100,
			Tenure: "999-year", FacilityRating: 3,
		}},
		{"missing tenure", &models.PropertyFacts{
			Name: "X", District: 10, AvgPSF: 2000, DistrictAvgPSF: 2100,
			FacilityRating: 3,
		}},
		{"missing facility rating", &models.PropertyFacts{
			Name: "X", District: 10, AvgPSF: 2000, DistrictAvgPSF: 2100,
			Tenure: "freehold",
		}},
		{"facility rating above scale", &models.PropertyFacts{
			Name: "X", District: 10, AvgPSF: 2000, DistrictAvgPSF: 2100,
			Tenure: "freehold", FacilityRating: 5.5,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Score(tt.facts)
			assert.ErrorIs(t, err, apperrors.ErrMissingPropertyFacts)
		})
	}
}
