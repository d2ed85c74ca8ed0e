package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domy415/singapore-property-hub-sub003/pkg/apperrors"
	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
	"github.com/domy415/singapore-property-hub-sub003/pkg/testhelpers"
)

func articleFixture(slug string) *models.Article {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &models.Article{
		ID:             uuid.New(),
		Slug:           slug,
		Title:          "District 15 Condo Market Guide",
		Content:        "## Overview\n\nEast Coast demand held steady through the quarter.",
		Excerpt:        "District 15 pricing and supply for buyers this year.",
		SEOTitle:       "District 15 Condo Market Guide",
		SEODescription: "District 15 condo prices and buyer considerations.",
		SEOKeywords:    []string{"district 15", "condo"},
		Tags:           []string{"market"},
		Category:       models.CategoryMarketInsights,
		Report: models.FactCheckReport{
			Score:  92,
			Passed: true,
		},
		Image: models.ImageAssignment{
			Category:  models.CategoryMarketInsights,
			Identity:  slug,
			URL:       "https://images.unsplash.com/photo-123",
			PoolIndex: 2,
		},
		Status:      models.StatusPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: &now,
	}
}

func uniqueSlug(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

func TestArticleRepository_UpsertAndGet(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	repo := NewArticleRepository(testDB.DB)
	ctx := context.Background()

	slug := uniqueSlug("upsert-get")
	article := articleFixture(slug)
	article.PropertyScore = &models.PropertyScore{
		Overall:   88,
		Strengths: []string{"location and accessibility"},
		Breakdown: models.ScoreBreakdown{Location: 90, Developer: 95, Value: 80, Facilities: 85, Tenure: 95},
	}

	inserted, err := repo.Upsert(ctx, article)
	require.NoError(t, err)
	assert.True(t, inserted)

	got, err := repo.GetBySlug(ctx, slug)
	require.NoError(t, err)

	assert.Equal(t, article.Title, got.Title)
	assert.Equal(t, article.Category, got.Category)
	assert.Equal(t, article.SEOKeywords, got.SEOKeywords)
	assert.Equal(t, article.Tags, got.Tags)
	assert.Equal(t, 92, got.Report.Score)
	assert.True(t, got.Report.Passed)
	assert.Equal(t, article.Image.URL, got.Image.URL)
	assert.Equal(t, article.Image.PoolIndex, got.Image.PoolIndex)
	assert.Equal(t, models.StatusPublished, got.Status)
	require.NotNil(t, got.PropertyScore)
	assert.Equal(t, 88, got.PropertyScore.Overall)
	require.NotNil(t, got.PublishedAt)
}

func TestArticleRepository_UpsertIdempotent(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	repo := NewArticleRepository(testDB.DB)
	ctx := context.Background()

	slug := uniqueSlug("idempotent")

	first := articleFixture(slug)
	inserted, err := repo.Upsert(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	// Second write under the same slug is a no-op; the original record wins.
	second := articleFixture(slug)
	second.Title = "A Different Title For The Same Slug"
	inserted, err = repo.Upsert(ctx, second)
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := repo.GetBySlug(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, first.Title, got.Title)
	assert.Equal(t, first.ID, got.ID)
}

func TestArticleRepository_UpsertConcurrentSameSlug(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	repo := NewArticleRepository(testDB.DB)
	ctx := context.Background()

	slug := uniqueSlug("concurrent")
	const writers = 8

	results := make([]bool, writers)
	errs := make([]error, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.Upsert(ctx, articleFixture(slug))
		}(i)
	}
	wg.Wait()

	inserted := 0
	for i := 0; i < writers; i++ {
		require.NoError(t, errs[i])
		if results[i] {
			inserted++
		}
	}
	assert.Equal(t, 1, inserted, "exactly one concurrent writer should win the slug")

	_, err := repo.GetBySlug(ctx, slug)
	require.NoError(t, err)
}

func TestArticleRepository_GetBySlugNotFound(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	repo := NewArticleRepository(testDB.DB)

	_, err := repo.GetBySlug(context.Background(), uniqueSlug("missing"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestArticleRepository_ListRecentTitles(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	repo := NewArticleRepository(testDB.DB)
	ctx := context.Background()

	article := articleFixture(uniqueSlug("recent"))
	article.Category = models.CategoryNeighborhood
	article.Title = "Living in Tiong Bahru: A Resident's View"

	inserted, err := repo.Upsert(ctx, article)
	require.NoError(t, err)
	require.True(t, inserted)

	titles, err := repo.ListRecentTitles(ctx, models.CategoryNeighborhood, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Contains(t, titles, article.Title)

	// Articles older than the window are excluded.
	titles, err = repo.ListRecentTitles(ctx, models.CategoryNeighborhood, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.NotContains(t, titles, article.Title)
}

func TestArticleRepository_ListByStatus(t *testing.T) {
	testDB := testhelpers.GetTestDB(t)
	repo := NewArticleRepository(testDB.DB)
	ctx := context.Background()

	article := articleFixture(uniqueSlug("by-status"))
	inserted, err := repo.Upsert(ctx, article)
	require.NoError(t, err)
	require.True(t, inserted)

	articles, err := repo.ListByStatus(ctx, models.StatusPublished, 100)
	require.NoError(t, err)

	var found bool
	for _, a := range articles {
		if a.Slug == article.Slug {
			found = true
		}
	}
	assert.True(t, found)
}
