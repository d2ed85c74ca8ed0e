package models

// Category identifies the editorial angle of a piece of content.
type Category string

const (
	CategoryMarketInsights  Category = "MARKET_INSIGHTS"
	CategoryBuyingGuide     Category = "BUYING_GUIDE"
	CategorySellingGuide    Category = "SELLING_GUIDE"
	CategoryInvestment      Category = "INVESTMENT"
	CategoryNeighborhood    Category = "NEIGHBORHOOD"
	CategoryPropertyNews    Category = "PROPERTY_NEWS"
	CategoryNewLaunchReview Category = "NEW_LAUNCH_REVIEW"
	CategoryLocationGuide   Category = "LOCATION_GUIDE"
)

// AllCategories returns every valid category in stable order.
func AllCategories() []Category {
	return []Category{
		CategoryMarketInsights,
		CategoryBuyingGuide,
		CategorySellingGuide,
		CategoryInvestment,
		CategoryNeighborhood,
		CategoryPropertyNews,
		CategoryNewLaunchReview,
		CategoryLocationGuide,
	}
}

// IsValid reports whether c is one of the enumerated categories.
func (c Category) IsValid() bool {
	for _, cat := range AllCategories() {
		if c == cat {
			return true
		}
	}
	return false
}

// RequiresScoring reports whether content in this category reviews a specific
// development and therefore needs a property score attached.
func (c Category) RequiresScoring() bool {
	return c == CategoryNewLaunchReview
}

// ContentBrief is the input to drafting. Immutable once created; revisions
// derive a new brief via WithGuidance rather than mutating in place.
type ContentBrief struct {
	Category      Category       `json:"category"`
	Topic         string         `json:"topic,omitempty"`
	PropertyFacts *PropertyFacts `json:"property_facts,omitempty"`

	// PropertyScore is the computed rating for review content, so the draft
	// cites the published rating instead of inventing one.
	PropertyScore *PropertyScore `json:"property_score,omitempty"`

	// Guidance carries corrective notes from a failed fact check into the
	// next drafting attempt.
	Guidance []string `json:"guidance,omitempty"`
}

// WithGuidance returns a copy of the brief with the given corrective notes
// appended. The receiver is not modified.
func (b *ContentBrief) WithGuidance(notes []string) *ContentBrief {
	next := &ContentBrief{
		Category:      b.Category,
		Topic:         b.Topic,
		PropertyFacts: b.PropertyFacts,
		PropertyScore: b.PropertyScore,
	}
	next.Guidance = append(next.Guidance, b.Guidance...)
	next.Guidance = append(next.Guidance, notes...)
	return next
}
