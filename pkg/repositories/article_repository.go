package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/domy415/singapore-property-hub-sub003/pkg/apperrors"
	"github.com/domy415/singapore-property-hub-sub003/pkg/database"
	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
)

// ArticleRepository provides data access for published content records.
type ArticleRepository interface {
	// Upsert persists an article keyed by slug. If an article with the same
	// slug already exists the call is a no-op and returns inserted=false;
	// concurrent writers for the same identity resolve as first-write-wins.
	Upsert(ctx context.Context, article *models.Article) (inserted bool, err error)

	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	ListByStatus(ctx context.Context, status models.ArticleStatus, limit int) ([]*models.Article, error)

	// ListRecentTitles returns titles of articles in the category created
	// since the given time. Used by the content calendar to avoid repeats.
	ListRecentTitles(ctx context.Context, category models.Category, since time.Time) ([]string, error)
}

type articleRepository struct {
	db *database.DB
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(db *database.DB) ArticleRepository {
	return &articleRepository{db: db}
}

var _ ArticleRepository = (*articleRepository)(nil)

const articleColumns = `id, slug, title, content, excerpt, seo_title, seo_description,
	seo_keywords, tags, category, quality_score, fact_check, property_score,
	image_url, image_pool_index, status, created_at, updated_at, published_at`

func (r *articleRepository) Upsert(ctx context.Context, article *models.Article) (bool, error) {
	query := `
		INSERT INTO articles (
			id, slug, title, content, excerpt, seo_title, seo_description,
			seo_keywords, tags, category, quality_score, fact_check,
			property_score, image_url, image_pool_index, status,
			created_at, updated_at, published_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (slug) DO NOTHING`

	factCheck, err := json.Marshal(article.Report)
	if err != nil {
		return false, fmt.Errorf("marshal fact check: %w", err)
	}

	var propertyScore []byte
	if article.PropertyScore != nil {
		propertyScore, err = json.Marshal(article.PropertyScore)
		if err != nil {
			return false, fmt.Errorf("marshal property score: %w", err)
		}
	}

	result, err := r.db.Exec(ctx, query,
		article.ID,
		article.Slug,
		article.Title,
		article.Content,
		article.Excerpt,
		article.SEOTitle,
		article.SEODescription,
		jsonbStrings(article.SEOKeywords),
		jsonbStrings(article.Tags),
		string(article.Category),
		article.Report.Score,
		factCheck,
		propertyScore,
		article.Image.URL,
		article.Image.PoolIndex,
		string(article.Status),
		article.CreatedAt,
		article.UpdatedAt,
		article.PublishedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert article: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE slug = $1`, articleColumns)

	row := r.db.QueryRow(ctx, query, slug)
	article, err := scanArticle(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return article, nil
}

func (r *articleRepository) ListByStatus(ctx context.Context, status models.ArticleStatus, limit int) ([]*models.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2`, articleColumns)

	rows, err := r.db.Query(ctx, query, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	return articles, nil
}

func (r *articleRepository) ListRecentTitles(ctx context.Context, category models.Category, since time.Time) ([]string, error) {
	query := `
		SELECT title FROM articles
		WHERE category = $1 AND created_at >= $2
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, string(category), since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating titles: %w", err)
	}

	return titles, nil
}

func scanArticle(row pgx.Row) (*models.Article, error) {
	var a models.Article
	var category, status string
	var seoKeywords, tags, factCheck, propertyScore []byte
	var qualityScore int

	err := row.Scan(
		&a.ID,
		&a.Slug,
		&a.Title,
		&a.Content,
		&a.Excerpt,
		&a.SEOTitle,
		&a.SEODescription,
		&seoKeywords,
		&tags,
		&category,
		&qualityScore,
		&factCheck,
		&propertyScore,
		&a.Image.URL,
		&a.Image.PoolIndex,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.PublishedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan article: %w", err)
	}

	a.Category = models.Category(category)
	a.Status = models.ArticleStatus(status)
	a.Image.Category = a.Category
	a.Image.Identity = a.Slug

	if len(seoKeywords) > 0 && string(seoKeywords) != "null" {
		if err := json.Unmarshal(seoKeywords, &a.SEOKeywords); err != nil {
			return nil, fmt.Errorf("failed to unmarshal seo_keywords: %w", err)
		}
	}
	if len(tags) > 0 && string(tags) != "null" {
		if err := json.Unmarshal(tags, &a.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	if len(factCheck) > 0 && string(factCheck) != "null" {
		if err := json.Unmarshal(factCheck, &a.Report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fact_check: %w", err)
		}
	}
	if len(propertyScore) > 0 && string(propertyScore) != "null" {
		a.PropertyScore = &models.PropertyScore{}
		if err := json.Unmarshal(propertyScore, a.PropertyScore); err != nil {
			return nil, fmt.Errorf("failed to unmarshal property_score: %w", err)
		}
	}

	return &a, nil
}

// jsonbStrings converts a string slice to JSONB format for database insertion.
// Returns nil for empty slices to store NULL in the database.
func jsonbStrings(values []string) any {
	if len(values) == 0 {
		return nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return data
}
