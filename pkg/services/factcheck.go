package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/domy415/singapore-property-hub-sub003/pkg/llm"
	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
	"github.com/domy415/singapore-property-hub-sub003/pkg/prompts"
)

// FactVerificationService evaluates a draft's factual claims and stylistic
// compliance, returning a normalized quality score and itemized issues.
type FactVerificationService interface {
	Verify(ctx context.Context, draft *models.Draft) (*models.FactCheckReport, error)
}

// Scoring starts at 100. Each structural occurrence deducts a small fixed
// penalty, capped per check so one pathology cannot dominate the score. The
// semantic sub-score shortfall is folded in at a fixed weight.
const (
	structuralPenalty = 3
	structuralCap     = 12
	stylePenalty      = 5
	styleCap          = 10
	semanticWeight    = 0.4
)

// structuralCheck is one named, regex-detectable defect pattern. New defect
// patterns get a new named check with its own cap, not an ad hoc patch.
type structuralCheck struct {
	name        string
	pattern     *regexp.Regexp
	description string
	severity    string
}

var structuralChecks = []structuralCheck{
	{
		name:        "heading_glued",
		pattern:     regexp.MustCompile(`(?m)^#{1,6}[^\n]*\n[^\n#\s]`),
		description: "heading glued to the following paragraph without a blank line",
		severity:    models.SeverityMajor,
	},
	{
		name:        "merged_sentences",
		pattern:     regexp.MustCompile(`[a-z][.!?][A-Z]`),
		description: "sentences merged without a space after the terminator",
		severity:    models.SeverityMajor,
	},
	{
		name:        "stray_bold_markup",
		pattern:     regexp.MustCompile(`\*\*[^*\n]+\*\*`),
		description: "literal bold markup left unconverted in body text",
		severity:    models.SeverityMinor,
	},
	{
		name:        "stray_code_fence",
		pattern:     regexp.MustCompile("```"),
		description: "markdown code fence left in body text",
		severity:    models.SeverityMinor,
	},
}

// aiClosings are generic AI-style closings flagged as style issues.
var aiClosings = []string{
	"in conclusion",
	"to summarize",
	"to sum up",
	"in summary",
	"all in all",
}

type factVerificationService struct {
	client    llm.LLMClient
	threshold int
	timeout   time.Duration
	logger    *zap.Logger
}

// NewFactVerificationService creates a fact verification service gated at the
// given pass threshold.
func NewFactVerificationService(client llm.LLMClient, threshold int, timeout time.Duration, logger *zap.Logger) FactVerificationService {
	return &factVerificationService{
		client:    client,
		threshold: threshold,
		timeout:   timeout,
		logger:    logger.Named("factcheck"),
	}
}

var _ FactVerificationService = (*factVerificationService)(nil)

// semanticResult is the expected shape of the semantic check completion.
type semanticResult struct {
	AccuracyScore  int            `json:"accuracy_score"`
	Issues         []models.Issue `json:"issues"`
	ClaimsToVerify []string       `json:"claims_to_verify"`
}

func (s *factVerificationService) Verify(ctx context.Context, draft *models.Draft) (*models.FactCheckReport, error) {
	if draft == nil {
		return nil, fmt.Errorf("draft is required")
	}

	report := &models.FactCheckReport{}
	deductions := 0

	// Structural battery over the draft body.
	for _, check := range structuralChecks {
		occurrences := len(check.pattern.FindAllStringIndex(draft.Content, -1))
		if occurrences == 0 {
			continue
		}

		penalty := occurrences * structuralPenalty
		if penalty > structuralCap {
			penalty = structuralCap
		}
		deductions += penalty

		report.Issues = append(report.Issues, models.Issue{
			Description: fmt.Sprintf("%s (%d occurrence(s))", check.description, occurrences),
			Severity:    check.severity,
		})

		s.logger.Debug("Structural check failed",
			zap.String("check", check.name),
			zap.Int("occurrences", occurrences),
			zap.Int("penalty", penalty))
	}

	// Style check for generic AI closings.
	lowerContent := strings.ToLower(draft.Content)
	stylePenaltyTotal := 0
	for _, closing := range aiClosings {
		if strings.Contains(lowerContent, closing) {
			stylePenaltyTotal += stylePenalty
			report.Issues = append(report.Issues, models.Issue{
				Description: fmt.Sprintf("generic closing phrase %q", closing),
				Severity:    models.SeverityMinor,
			})
		}
	}
	if stylePenaltyTotal > styleCap {
		stylePenaltyTotal = styleCap
	}
	deductions += stylePenaltyTotal

	// Semantic check against known domain constraints.
	semantic, err := s.runSemanticCheck(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("semantic check: %w", err)
	}

	report.Issues = append(report.Issues, semantic.Issues...)
	report.ClaimsToVerify = semantic.ClaimsToVerify

	// The semantic shortfall is weighted into the composite; structural and
	// style deductions apply at full value.
	semanticDeduction := int(math.Round(float64(100-clampScore(semantic.AccuracyScore)) * semanticWeight))
	report.Score = clampScore(100 - deductions - semanticDeduction)
	report.Passed = report.Score >= s.threshold

	// A failing report must never have an empty issue list.
	if !report.Passed && len(report.Issues) == 0 {
		report.Issues = append(report.Issues, models.Issue{
			Description: fmt.Sprintf("composite quality score %d below threshold %d", report.Score, s.threshold),
			Severity:    models.SeverityMajor,
		})
	}

	s.logger.Info("Draft verified",
		zap.String("title", draft.Title),
		zap.Int("score", report.Score),
		zap.Bool("passed", report.Passed),
		zap.Int("issues", len(report.Issues)))

	return report, nil
}

func (s *factVerificationService) runSemanticCheck(ctx context.Context, draft *models.Draft) (*semanticResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.client.GenerateResponse(ctx, prompts.FactCheck(draft), prompts.FactCheckSystem(), 0.2)
	if err != nil {
		return nil, err
	}

	parsed, err := llm.ParseJSONResponse[semanticResult](result.Content)
	if err != nil {
		return nil, fmt.Errorf("parse semantic check response: %w", err)
	}

	return &parsed, nil
}
