package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/domy415/singapore-property-hub-sub003/pkg/apperrors"
	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
	"github.com/domy415/singapore-property-hub-sub003/pkg/repositories"
)

// ContentCalendar proposes the next topic to write for a category, skipping
// topics covered recently.
type ContentCalendar interface {
	NextTopic(ctx context.Context, category models.Category) (string, error)
}

const (
	// Window of persisted articles considered "recent" when rotating topics.
	recentTitleWindow = 30 * 24 * time.Hour

	// TTL of the generated-topic marker. Covers in-flight and failed runs
	// that never persisted an article.
	topicMarkerTTL = 7 * 24 * time.Hour
)

// categoryTopics is the rotating editorial backlog per category.
var categoryTopics = map[models.Category][]string{
	models.CategoryMarketInsights: {
		"Singapore private residential price index: quarterly movements and what they signal",
		"Resale volume trends across CCR, RCR and OCR",
		"How interest rate shifts are reshaping Singapore mortgage demand",
		"New launch take-up rates versus resale momentum",
	},
	models.CategoryBuyingGuide: {
		"ABSD, BSD and the true upfront cost of buying in Singapore",
		"TDSR and LTV limits: how much can you actually borrow",
		"Buying your first condo: a step-by-step timeline",
		"HDB upgrader's guide to timing the move to private property",
	},
	models.CategorySellingGuide: {
		"SSD timelines and when selling early costs you",
		"Pricing your resale unit against recent district transactions",
		"Preparing a condo unit for viewing: what actually moves offers",
	},
	models.CategoryInvestment: {
		"Rental yield versus capital appreciation: picking your strategy",
		"Districts with the strongest rental demand this year",
		"En bloc potential: reading the signs before the market does",
	},
	models.CategoryNeighborhood: {
		"Living in Tiong Bahru: heritage charm meets city fringe convenience",
		"Living in Punggol: the waterfront town that grew up",
		"Living in Bukit Timah: schools, nature and landed enclaves",
	},
	models.CategoryPropertyNews: {
		"Latest URA master plan updates and what they mean for homeowners",
		"Cooling measures recap: the rules shaping today's market",
		"GLS programme: upcoming sites and supply implications",
	},
	models.CategoryNewLaunchReview: {
		"New launch review: location, pricing and developer track record",
	},
	models.CategoryLocationGuide: {
		"One-North area guide: tech hub living and rental prospects",
		"Jurong Lake District guide: the second CBD takes shape",
		"Greater Southern Waterfront: what the long game looks like",
	},
}

type contentCalendar struct {
	articles repositories.ArticleRepository
	cache    *redis.Client
	logger   *zap.Logger
}

// NewContentCalendar creates a calendar. The cache client may be nil, in which
// case only persisted articles inform rotation.
func NewContentCalendar(articles repositories.ArticleRepository, cache *redis.Client, logger *zap.Logger) ContentCalendar {
	return &contentCalendar{
		articles: articles,
		cache:    cache,
		logger:   logger.Named("calendar"),
	}
}

var _ ContentCalendar = (*contentCalendar)(nil)

func (c *contentCalendar) NextTopic(ctx context.Context, category models.Category) (string, error) {
	if !category.IsValid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidCategory, category)
	}

	topics := categoryTopics[category]
	recent, err := c.articles.ListRecentTitles(ctx, category, time.Now().Add(-recentTitleWindow))
	if err != nil {
		return "", fmt.Errorf("list recent titles: %w", err)
	}

	for _, topic := range topics {
		if coveredRecently(topic, recent) {
			continue
		}
		if c.markedRecently(ctx, category, topic) {
			continue
		}
		c.markGenerated(ctx, category, topic)
		return topic, nil
	}

	// Every topic was used recently; rotate by day rather than stalling the
	// pipeline.
	fallback := topics[time.Now().YearDay()%len(topics)]
	c.logger.Info("Topic backlog exhausted, rotating",
		zap.String("category", string(category)),
		zap.String("topic", fallback))
	return fallback, nil
}

// coveredRecently reports whether a recent title plausibly covers the topic.
// Matching is on the topic's leading clause, lowercased.
func coveredRecently(topic string, recentTitles []string) bool {
	key := strings.ToLower(topic)
	if idx := strings.IndexAny(key, ":,"); idx > 0 {
		key = key[:idx]
	}
	for _, title := range recentTitles {
		lower := strings.ToLower(title)
		if strings.Contains(lower, key) || strings.Contains(key, lower) {
			return true
		}
	}
	return false
}

func (c *contentCalendar) markedRecently(ctx context.Context, category models.Category, topic string) bool {
	if c.cache == nil {
		return false
	}
	n, err := c.cache.Exists(ctx, topicMarkerKey(category, topic)).Result()
	if err != nil {
		c.logger.Warn("Topic marker lookup failed", zap.Error(err))
		return false
	}
	return n > 0
}

func (c *contentCalendar) markGenerated(ctx context.Context, category models.Category, topic string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, topicMarkerKey(category, topic), 1, topicMarkerTTL).Err(); err != nil {
		c.logger.Warn("Topic marker write failed", zap.Error(err))
	}
}

func topicMarkerKey(category models.Category, topic string) string {
	return fmt.Sprintf("calendar:%s:%s", category, models.Slugify(topic))
}
