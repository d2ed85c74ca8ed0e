package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/domy415/singapore-property-hub-sub003/pkg/apperrors"
	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
)

// PropertyScoringService computes a structured rating for a development from
// its facts. Deterministic given identical facts; no side effects.
type PropertyScoringService interface {
	Score(facts *models.PropertyFacts) (*models.PropertyScore, error)
}

// ScoringWeights is the static configuration table for the weighted composite.
// Weights must sum to 1.
type ScoringWeights struct {
	Location   float64
	Developer  float64
	Value      float64
	Facilities float64
	Tenure     float64
}

// DefaultScoringWeights returns the production weight table.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Location:   0.25,
		Developer:  0.20,
		Value:      0.25,
		Facilities: 0.15,
		Tenure:     0.15,
	}
}

// Sub-score thresholds for deriving strengths and concerns.
const (
	strengthThreshold = 80
	concernThreshold  = 40
)

// Core Central Region districts score highest for location; Rest of Central
// Region next; Outside Central Region lowest.
var ccrDistricts = map[int]bool{1: true, 2: true, 4: true, 6: true, 9: true, 10: true, 11: true}
var rcrDistricts = map[int]bool{3: true, 5: true, 7: true, 8: true, 12: true, 13: true, 14: true, 15: true, 20: true}

type propertyScoringService struct {
	weights ScoringWeights
}

// NewPropertyScoringService creates a scoring service with the given weights.
// Pass the zero value to use the default table.
func NewPropertyScoringService(weights ScoringWeights) PropertyScoringService {
	if weights == (ScoringWeights{}) {
		weights = DefaultScoringWeights()
	}
	return &propertyScoringService{weights: weights}
}

var _ PropertyScoringService = (*propertyScoringService)(nil)

func (s *propertyScoringService) Score(facts *models.PropertyFacts) (*models.PropertyScore, error) {
	if err := validateFacts(facts); err != nil {
		return nil, err
	}

	breakdown := models.ScoreBreakdown{
		Location:   clampScore(locationScore(facts.District)),
		Developer:  clampScore(developerScore(facts.DeveloperTier)),
		Value:      clampScore(valueScore(facts.AvgPSF, facts.DistrictAvgPSF)),
		Facilities: clampScore(facilitiesScore(facts.FacilityRating, facts.GreenMark)),
		Tenure:     clampScore(tenureScore(facts.Tenure, facts.RemainingLeaseYears)),
	}

	overall := float64(breakdown.Location)*s.weights.Location +
		float64(breakdown.Developer)*s.weights.Developer +
		float64(breakdown.Value)*s.weights.Value +
		float64(breakdown.Facilities)*s.weights.Facilities +
		float64(breakdown.Tenure)*s.weights.Tenure

	score := &models.PropertyScore{
		Overall:   clampScore(int(math.Round(overall))),
		Breakdown: breakdown,
	}

	for _, entry := range []struct {
		label string
		value int
	}{
		{"location and accessibility", breakdown.Location},
		{"developer track record", breakdown.Developer},
		{"pricing versus district average", breakdown.Value},
		{"facilities and sustainability", breakdown.Facilities},
		{"tenure and remaining lease", breakdown.Tenure},
	} {
		switch {
		case entry.value >= strengthThreshold:
			score.Strengths = append(score.Strengths, entry.label)
		case entry.value <= concernThreshold:
			score.Concerns = append(score.Concerns, entry.label)
		}
	}

	return score, nil
}

// validateFacts rejects incomplete facts rather than substituting defaults
// that could produce a misleading rating.
func validateFacts(facts *models.PropertyFacts) error {
	if facts == nil {
		return apperrors.ErrMissingPropertyFacts
	}
	if facts.Name == "" {
		return fmt.Errorf("%w: development name missing", apperrors.ErrMissingPropertyFacts)
	}
	if facts.District < 1 || facts.District > 28 {
		return fmt.Errorf("%w: district %d outside 1-28", apperrors.ErrMissingPropertyFacts, facts.District)
	}
	if facts.AvgPSF <= 0 || facts.DistrictAvgPSF <= 0 {
		return fmt.Errorf("%w: PSF comparables missing", apperrors.ErrMissingPropertyFacts)
	}
	if !strings.EqualFold(facts.Tenure, "freehold") && !strings.EqualFold(facts.Tenure, "leasehold") {
		return fmt.Errorf("%w: tenure %q is neither freehold nor leasehold", apperrors.ErrMissingPropertyFacts, facts.Tenure)
	}
	if facts.FacilityRating <= 0 || facts.FacilityRating > 5 {
		return fmt.Errorf("%w: facility rating %.1f outside (0,5]", apperrors.ErrMissingPropertyFacts, facts.FacilityRating)
	}
	return nil
}

func locationScore(district int) int {
	switch {
	case ccrDistricts[district]:
		return 90
	case rcrDistricts[district]:
		return 75
	default:
		return 60
	}
}

func developerScore(tier int) int {
	switch tier {
	case 1:
		return 95
	case 2:
		return 80
	case 3:
		return 65
	default:
		return 50
	}
}

func valueScore(avgPSF, districtAvgPSF float64) int {
	ratio := avgPSF / districtAvgPSF
	switch {
	case ratio <= 0.90:
		return 90
	case ratio <= 1.00:
		return 80
	case ratio <= 1.10:
		return 65
	case ratio <= 1.25:
		return 50
	default:
		return 35
	}
}

func facilitiesScore(rating float64, greenMark string) int {
	score := int(math.Round(rating * 20))
	switch strings.ToLower(greenMark) {
	case "platinum":
		score += 10
	case "goldplus", "gold plus":
		score += 5
	case "gold":
		score += 3
	}
	return score
}

func tenureScore(tenure string, remainingLeaseYears int) int {
	if strings.EqualFold(tenure, "freehold") {
		return 95
	}
	switch {
	case remainingLeaseYears >= 90:
		return 85
	case remainingLeaseYears >= 70:
		return 70
	case remainingLeaseYears >= 50:
		return 50
	default:
		return 30
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
