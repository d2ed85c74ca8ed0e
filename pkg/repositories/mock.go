package repositories

import (
	"context"
	"time"

	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
)

// MockArticleRepository is a configurable mock for testing repository
// consumers. Set the function fields to control behavior.
type MockArticleRepository struct {
	UpsertFunc           func(ctx context.Context, article *models.Article) (bool, error)
	GetBySlugFunc        func(ctx context.Context, slug string) (*models.Article, error)
	ListByStatusFunc     func(ctx context.Context, status models.ArticleStatus, limit int) ([]*models.Article, error)
	ListRecentTitlesFunc func(ctx context.Context, category models.Category, since time.Time) ([]string, error)

	// Call tracking for verification
	UpsertCalls int
}

// Upsert implements ArticleRepository.
func (m *MockArticleRepository) Upsert(ctx context.Context, article *models.Article) (bool, error) {
	m.UpsertCalls++
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, article)
	}
	return true, nil
}

// GetBySlug implements ArticleRepository.
func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

// ListByStatus implements ArticleRepository.
func (m *MockArticleRepository) ListByStatus(ctx context.Context, status models.ArticleStatus, limit int) ([]*models.Article, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status, limit)
	}
	return nil, nil
}

// ListRecentTitles implements ArticleRepository.
func (m *MockArticleRepository) ListRecentTitles(ctx context.Context, category models.Category, since time.Time) ([]string, error) {
	if m.ListRecentTitlesFunc != nil {
		return m.ListRecentTitlesFunc(ctx, category, since)
	}
	return nil, nil
}

var _ ArticleRepository = (*MockArticleRepository)(nil)
