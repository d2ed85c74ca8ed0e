package models

// PropertyFacts holds the structured facts about a development that property
// scoring needs. District follows Singapore postal district numbering (1-28).
type PropertyFacts struct {
	Name                string  `json:"name"`
	District            int     `json:"district"`
	DeveloperTier       int     `json:"developer_tier"` // 1 = established, 3 = boutique
	UnitCount           int     `json:"unit_count"`
	Tenure              string  `json:"tenure"` // "freehold" or "leasehold"
	RemainingLeaseYears int     `json:"remaining_lease_years,omitempty"`
	AvgPSF              float64 `json:"avg_psf"`
	DistrictAvgPSF      float64 `json:"district_avg_psf"`
	GreenMark           string  `json:"green_mark,omitempty"` // "", "Gold", "GoldPlus", "Platinum"
	FacilityRating      float64 `json:"facility_rating"`      // 0-5
}

// ScoreBreakdown holds the clamped sub-scores that make up a property score.
type ScoreBreakdown struct {
	Location   int `json:"location"`
	Developer  int `json:"developer"`
	Value      int `json:"value"`
	Facilities int `json:"facilities"`
	Tenure     int `json:"tenure"`
}

// PropertyScore is the structured rating attached to a new-launch review.
type PropertyScore struct {
	Overall   int            `json:"overall"` // 0-100 weighted composite
	Strengths []string       `json:"strengths"`
	Concerns  []string       `json:"concerns"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}
