package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Q1 Market Outlook", "q1-market-outlook"},
		{"punctuation collapsed", "Buying vs. Renting: What's Right?", "buying-vs-renting-what-s-right"},
		{"leading and trailing noise", "  -- District 9 Guide -- ", "district-9-guide"},
		{"unicode stripped", "Café living in Tiong Bahru", "caf-living-in-tiong-bahru"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, cat := range AllCategories() {
		assert.True(t, cat.IsValid(), "category %s should be valid", cat)
	}

	assert.False(t, Category("LIFESTYLE").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestCategoryRequiresScoring(t *testing.T) {
	assert.True(t, CategoryNewLaunchReview.RequiresScoring())
	assert.False(t, CategoryMarketInsights.RequiresScoring())
	assert.False(t, CategoryLocationGuide.RequiresScoring())
}

func TestContentBriefWithGuidance(t *testing.T) {
	brief := &ContentBrief{
		Category:      CategoryMarketInsights,
		Topic:         "Q1 outlook",
		PropertyScore: &PropertyScore{Overall: 82},
	}

	revised := brief.WithGuidance([]string{"fix ABSD rate", "split merged sentences"})

	assert.Empty(t, brief.Guidance, "original brief must not be mutated")
	assert.Equal(t, []string{"fix ABSD rate", "split merged sentences"}, revised.Guidance)
	assert.Equal(t, brief.Topic, revised.Topic)
	require.NotNil(t, revised.PropertyScore)
	assert.Equal(t, 82, revised.PropertyScore.Overall)

	again := revised.WithGuidance([]string{"cite district average"})
	assert.Len(t, again.Guidance, 3)
}

func TestArticleStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusDraft.IsTerminal())
	assert.False(t, StatusReview.IsTerminal())
	assert.True(t, StatusPublished.IsTerminal())
}
