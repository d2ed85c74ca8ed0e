package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/domy415/singapore-property-hub-sub003/pkg/config"
	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
)

// PublishNotifier tells the publishing collaborator that an article went live.
// Notification is best effort; failures are logged and never fail the run.
type PublishNotifier interface {
	NotifyPublished(ctx context.Context, article *models.Article)
}

// publishEvent is the webhook payload.
type publishEvent struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	URL     string `json:"url"`
}

type publishNotifier struct {
	webhookURL string
	baseURL    string
	client     *http.Client
	logger     *zap.Logger
}

// NewPublishNotifier creates a notifier. An empty webhook URL yields a
// notifier that logs and skips the POST.
func NewPublishNotifier(cfg *config.PublisherConfig, baseURL string, logger *zap.Logger) PublishNotifier {
	return &publishNotifier{
		webhookURL: cfg.WebhookURL,
		baseURL:    baseURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger.Named("notifier"),
	}
}

var _ PublishNotifier = (*publishNotifier)(nil)

func (n *publishNotifier) NotifyPublished(ctx context.Context, article *models.Article) {
	if n.webhookURL == "" {
		n.logger.Debug("Publish webhook not configured, skipping",
			zap.String("slug", article.Slug))
		return
	}

	event := publishEvent{
		Slug:    article.Slug,
		Title:   article.Title,
		Excerpt: article.Excerpt,
		URL:     fmt.Sprintf("%s/articles/%s", n.baseURL, article.Slug),
	}

	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("Failed to marshal publish event", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("Failed to build publish notification", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("Publish notification failed",
			zap.String("slug", article.Slug),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		n.logger.Warn("Publish notification rejected",
			zap.String("slug", article.Slug),
			zap.Int("status", resp.StatusCode))
		return
	}

	n.logger.Info("Publish notification delivered",
		zap.String("slug", article.Slug))
}
