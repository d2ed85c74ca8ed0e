package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/domy415/singapore-property-hub-sub003/pkg/apperrors"
	"github.com/domy415/singapore-property-hub-sub003/pkg/config"
	"github.com/domy415/singapore-property-hub-sub003/pkg/llm"
	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
	"github.com/domy415/singapore-property-hub-sub003/pkg/repositories"
	"github.com/domy415/singapore-property-hub-sub003/pkg/retry"
)

// Outcome is the terminal status of a generation run.
type Outcome string

const (
	OutcomePublished Outcome = "published"
	OutcomeAbandoned Outcome = "abandoned"
)

// GenerateRequest drives one generation run. Topic is optional; the calendar
// supplies one when empty. PropertyFacts are required whenever scoring runs.
type GenerateRequest struct {
	Category      models.Category       `json:"category"`
	Topic         string                `json:"topic,omitempty"`
	UseScoring    bool                  `json:"use_scoring,omitempty"`
	PropertyFacts *models.PropertyFacts `json:"property_facts,omitempty"`
}

// GenerateResult is the structured outcome every caller receives, published
// or not.
type GenerateResult struct {
	Status        Outcome               `json:"status"`
	Slug          string                `json:"slug,omitempty"`
	QualityScore  int                   `json:"quality_score"`
	Issues        []string              `json:"issues,omitempty"`
	ImageURL      string                `json:"image_url,omitempty"`
	PropertyScore *models.PropertyScore `json:"property_score,omitempty"`

	// Duplicate is set when a passing article already existed under the same
	// slug and the persist step was a no-op.
	Duplicate bool `json:"duplicate,omitempty"`
}

// ContentOrchestrator runs the full pipeline for one piece of content:
// topic selection, drafting, optional scoring, verification with bounded
// revision, image assignment, gated persistence and publish notification.
type ContentOrchestrator interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)
}

type contentOrchestrator struct {
	calendar ContentCalendar
	drafting DraftingService
	scoring  PropertyScoringService
	verifier FactVerificationService
	images   ImageAssignmentService
	articles repositories.ArticleRepository
	notifier PublishNotifier
	cfg      config.PipelineConfig
	logger   *zap.Logger
}

// NewContentOrchestrator wires the pipeline stages together.
func NewContentOrchestrator(
	calendar ContentCalendar,
	drafting DraftingService,
	scoring PropertyScoringService,
	verifier FactVerificationService,
	images ImageAssignmentService,
	articles repositories.ArticleRepository,
	notifier PublishNotifier,
	cfg config.PipelineConfig,
	logger *zap.Logger,
) ContentOrchestrator {
	return &contentOrchestrator{
		calendar: calendar,
		drafting: drafting,
		scoring:  scoring,
		verifier: verifier,
		images:   images,
		articles: articles,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger.Named("orchestrator"),
	}
}

var _ ContentOrchestrator = (*contentOrchestrator)(nil)

func (o *contentOrchestrator) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidCategory, req.Category)
	}

	topic := req.Topic
	if topic == "" {
		selected, err := o.calendar.NextTopic(ctx, req.Category)
		if err != nil {
			return nil, fmt.Errorf("select topic: %w", err)
		}
		topic = selected
	}

	// Scoring runs for review categories and on explicit request; either way
	// it needs facts, and the failure is terminal rather than silently skipped.
	var propertyScore *models.PropertyScore
	if req.Category.RequiresScoring() || req.UseScoring {
		if req.PropertyFacts == nil {
			return nil, fmt.Errorf("%w: scoring requested without development facts", apperrors.ErrMissingPropertyFacts)
		}
		score, err := o.scoring.Score(req.PropertyFacts)
		if err != nil {
			return nil, fmt.Errorf("score development: %w", err)
		}
		propertyScore = score
	}

	brief := &models.ContentBrief{
		Category:      req.Category,
		Topic:         topic,
		PropertyFacts: req.PropertyFacts,
		PropertyScore: propertyScore,
	}

	o.logger.Info("Generation run started",
		zap.String("category", string(req.Category)),
		zap.String("topic", topic),
		zap.Bool("scoring", propertyScore != nil))

	draft, err := o.draftWithRetry(ctx, brief)
	if err != nil {
		if !isRetryableLLMError(err) {
			return nil, err
		}
		// Retryable failures exhausted the attempt budget; the run ends with
		// a structured abandonment, not an opaque error.
		o.logger.Warn("Drafting abandoned after bounded attempts", zap.Error(err))
		return &GenerateResult{
			Status: OutcomeAbandoned,
			Issues: []string{fmt.Sprintf("drafting failed after %d attempts: %v", o.cfg.DraftAttempts, err)},
		}, nil
	}

	report, err := o.verifyWithRetry(ctx, draft)
	if err != nil {
		if !isRetryableLLMError(err) {
			return nil, fmt.Errorf("verify draft: %w", err)
		}
		o.logger.Warn("Verification abandoned after bounded attempts", zap.Error(err))
		return &GenerateResult{
			Status: OutcomeAbandoned,
			Issues: []string{fmt.Sprintf("verification failed after %d attempts: %v", o.cfg.DraftAttempts, err)},
		}, nil
	}

	// Bounded revision loop. Each revision redrafts from the same brief with
	// the prior issues appended as corrective guidance.
	for revision := 0; !report.Passed && revision < o.cfg.MaxRevisions; revision++ {
		o.logger.Info("Draft failed verification, revising",
			zap.Int("score", report.Score),
			zap.Int("revision", revision+1),
			zap.Strings("issues", report.IssueDescriptions()))

		brief = brief.WithGuidance(report.IssueDescriptions())
		draft, err = o.draftWithRetry(ctx, brief)
		if err != nil {
			if !isRetryableLLMError(err) {
				return nil, err
			}
			return &GenerateResult{
				Status:       OutcomeAbandoned,
				QualityScore: report.Score,
				Issues:       report.IssueDescriptions(),
			}, nil
		}

		revised, err := o.verifyWithRetry(ctx, draft)
		if err != nil {
			if !isRetryableLLMError(err) {
				return nil, fmt.Errorf("verify revised draft: %w", err)
			}
			return &GenerateResult{
				Status:       OutcomeAbandoned,
				QualityScore: report.Score,
				Issues: append(report.IssueDescriptions(),
					fmt.Sprintf("verification failed after %d attempts: %v", o.cfg.DraftAttempts, err)),
			}, nil
		}
		report = revised
	}

	if !report.Passed {
		o.logger.Warn("Generation abandoned below quality gate",
			zap.Int("score", report.Score),
			zap.Strings("issues", report.IssueDescriptions()))
		return &GenerateResult{
			Status:       OutcomeAbandoned,
			QualityScore: report.Score,
			Issues:       report.IssueDescriptions(),
		}, nil
	}

	return o.publish(ctx, req.Category, draft, report, propertyScore)
}

// publish assigns the image, persists the passing draft and fires the
// best-effort notification.
func (o *contentOrchestrator) publish(
	ctx context.Context,
	category models.Category,
	draft *models.Draft,
	report *models.FactCheckReport,
	propertyScore *models.PropertyScore,
) (*GenerateResult, error) {
	slug := models.Slugify(draft.Title)

	image, err := o.images.Assign(category, slug, draft.Title)
	if err != nil {
		return nil, fmt.Errorf("assign image: %w", err)
	}

	now := time.Now().UTC()
	article := &models.Article{
		ID:             uuid.New(),
		Slug:           slug,
		Title:          draft.Title,
		Content:        draft.Content,
		Excerpt:        draft.Excerpt,
		SEOTitle:       draft.SEOTitle,
		SEODescription: draft.SEODescription,
		SEOKeywords:    draft.SEOKeywords,
		Tags:           draft.Tags,
		Category:       category,
		Report:         *report,
		PropertyScore:  propertyScore,
		Image:          *image,
		Status:         models.StatusPublished,
		CreatedAt:      now,
		UpdatedAt:      now,
		PublishedAt:    &now,
	}

	inserted, err := o.persistWithRetry(ctx, article)
	if err != nil {
		if !retry.IsRetryable(err) {
			return nil, fmt.Errorf("persist article: %w", err)
		}
		// The draft passed the gate but storage stayed unreachable; surface
		// the score so the run can be replayed, not just an opaque failure.
		o.logger.Warn("Persist abandoned after retries",
			zap.String("slug", slug), zap.Error(err))
		return &GenerateResult{
			Status:       OutcomeAbandoned,
			QualityScore: report.Score,
			Issues:       []string{fmt.Sprintf("persisting article failed: %v", err)},
		}, nil
	}

	result := &GenerateResult{
		Status:        OutcomePublished,
		Slug:          slug,
		QualityScore:  report.Score,
		Issues:        report.IssueDescriptions(),
		ImageURL:      image.URL,
		PropertyScore: propertyScore,
		Duplicate:     !inserted,
	}

	if !inserted {
		o.logger.Info("Article already published under slug, skipping notification",
			zap.String("slug", slug))
		return result, nil
	}

	o.notifier.NotifyPublished(ctx, article)

	o.logger.Info("Article published",
		zap.String("slug", slug),
		zap.Int("qualityScore", report.Score),
		zap.String("imageUrl", image.URL))

	return result, nil
}

// draftWithRetry runs the bounded drafting loop. Parse failures and timeouts
// burn an attempt; terminal errors return immediately.
func (o *contentOrchestrator) draftWithRetry(ctx context.Context, brief *models.ContentBrief) (*models.Draft, error) {
	attempts := o.cfg.DraftAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		draft, err := o.drafting.Draft(ctx, brief)
		if err == nil {
			return draft, nil
		}
		lastErr = err
		if !isRetryableLLMError(err) {
			return nil, err
		}
		o.logger.Warn("Draft attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", attempts),
			zap.Error(err))
	}
	return nil, lastErr
}

// verifyWithRetry runs the fact check under the same attempt budget as
// drafting. A malformed checker response or timeout burns an attempt;
// terminal errors return immediately.
func (o *contentOrchestrator) verifyWithRetry(ctx context.Context, draft *models.Draft) (*models.FactCheckReport, error) {
	attempts := o.cfg.DraftAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		report, err := o.verifier.Verify(ctx, draft)
		if err == nil {
			return report, nil
		}
		lastErr = err
		if !isRetryableLLMError(err) {
			return nil, err
		}
		o.logger.Warn("Verification attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", attempts),
			zap.Error(err))
	}
	return nil, lastErr
}

// persistWithRetry upserts with backoff on transient storage errors. A
// permanent error (constraint violation, bad data) stops the loop at once.
func (o *contentOrchestrator) persistWithRetry(ctx context.Context, article *models.Article) (bool, error) {
	var inserted bool
	var permErr error
	err := retry.Do(ctx, retry.DefaultConfig(), func() error {
		var upsertErr error
		inserted, upsertErr = o.articles.Upsert(ctx, article)
		if upsertErr != nil && !retry.IsRetryable(upsertErr) {
			permErr = upsertErr
			return nil
		}
		return upsertErr
	})
	if permErr != nil {
		return false, permErr
	}
	return inserted, err
}

// isRetryableLLMError separates burn-an-attempt failures (malformed
// completions, timeouts, transient transport errors) from terminal ones
// (invalid input, auth or model misconfiguration).
func isRetryableLLMError(err error) bool {
	if errors.Is(err, apperrors.ErrInvalidCategory) {
		return false
	}
	var llmErr *llm.Error
	if errors.As(err, &llmErr) {
		return llmErr.Retryable
	}
	return true
}
