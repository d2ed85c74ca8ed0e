package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArticleStatus tracks the publication lifecycle of an article.
// DRAFT -> REVIEW -> PUBLISHED; PUBLISHED is terminal. Edits to published
// content go through the repair flow, never silent mutation.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusReview    ArticleStatus = "REVIEW"
	StatusPublished ArticleStatus = "PUBLISHED"
)

// IsTerminal reports whether the status permits no further transitions.
func (s ArticleStatus) IsTerminal() bool {
	return s == StatusPublished
}

// Article is the persisted record produced by the pipeline after the quality
// gate passes. Stored in the articles table keyed by unique slug.
type Article struct {
	ID             uuid.UUID `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Excerpt        string    `json:"excerpt"`
	SEOTitle       string    `json:"seo_title"`
	SEODescription string    `json:"seo_description"`
	SEOKeywords    []string  `json:"seo_keywords"`
	Tags           []string  `json:"tags"`
	Category       Category  `json:"category"`

	Report        FactCheckReport `json:"fact_check"`
	PropertyScore *PropertyScore  `json:"property_score,omitempty"`
	Image         ImageAssignment `json:"image"`

	Status      ArticleStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
}

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugDashRuns     = regexp.MustCompile(`-{2,}`)
)

// Slugify derives the stable identity key for a title: lowercase, runs of
// non-alphanumerics collapsed to single dashes, trimmed.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = slugDashRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
