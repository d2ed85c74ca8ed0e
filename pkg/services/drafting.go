package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/domy415/singapore-property-hub-sub003/pkg/apperrors"
	"github.com/domy415/singapore-property-hub-sub003/pkg/llm"
	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
	"github.com/domy415/singapore-property-hub-sub003/pkg/prompts"
)

// DraftingService produces one article draft from a brief. A single call is a
// single model invocation; retry policy lives with the caller.
type DraftingService interface {
	Draft(ctx context.Context, brief *models.ContentBrief) (*models.Draft, error)
}

// minContentChars rejects completions that parsed but carry no usable body.
const minContentChars = 400

type draftingService struct {
	client      llm.LLMClient
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewDraftingService creates a drafting service.
func NewDraftingService(client llm.LLMClient, temperature float64, timeout time.Duration, logger *zap.Logger) DraftingService {
	return &draftingService{
		client:      client,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger.Named("drafting"),
	}
}

var _ DraftingService = (*draftingService)(nil)

func (s *draftingService) Draft(ctx context.Context, brief *models.ContentBrief) (*models.Draft, error) {
	if brief == nil {
		return nil, fmt.Errorf("brief is required")
	}
	if !brief.Category.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidCategory, brief.Category)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	result, err := s.client.GenerateResponse(ctx, prompts.Drafting(brief), prompts.DraftingSystem(), s.temperature)
	if err != nil {
		return nil, fmt.Errorf("generate draft: %w", err)
	}

	draft, err := llm.ParseJSONResponse[models.Draft](result.Content)
	if err != nil {
		return nil, fmt.Errorf("parse draft response: %w", err)
	}
	if err := validateDraft(&draft); err != nil {
		return nil, fmt.Errorf("draft incomplete: %w", err)
	}

	s.logger.Info("Draft generated",
		zap.String("category", string(brief.Category)),
		zap.String("title", draft.Title),
		zap.Int("contentChars", len(draft.Content)),
		zap.Int("totalTokens", result.TotalTokens),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("revision", len(brief.Guidance) > 0))

	return &draft, nil
}

// validateDraft rejects structurally unusable completions so the caller can
// retry instead of persisting a hollow article.
func validateDraft(draft *models.Draft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return fmt.Errorf("title missing")
	}
	if len(strings.TrimSpace(draft.Content)) < minContentChars {
		return fmt.Errorf("content shorter than %d characters", minContentChars)
	}
	if strings.TrimSpace(draft.Excerpt) == "" {
		return fmt.Errorf("excerpt missing")
	}
	return nil
}
