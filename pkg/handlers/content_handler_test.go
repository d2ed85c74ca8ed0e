package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/domy415/singapore-property-hub-sub003/pkg/apperrors"
	"github.com/domy415/singapore-property-hub-sub003/pkg/models"
	"github.com/domy415/singapore-property-hub-sub003/pkg/services"
)

type stubOrchestrator struct {
	fn       func(req *services.GenerateRequest) (*services.GenerateResult, error)
	requests []*services.GenerateRequest
}

func (s *stubOrchestrator) Generate(ctx context.Context, req *services.GenerateRequest) (*services.GenerateResult, error) {
	s.requests = append(s.requests, req)
	return s.fn(req)
}

func postGenerate(t *testing.T, handler *ContentHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/content/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)
	return rec
}

func TestContentHandler_PublishedResponse(t *testing.T) {
	orch := &stubOrchestrator{fn: func(req *services.GenerateRequest) (*services.GenerateResult, error) {
		return &services.GenerateResult{
			Status:       services.OutcomePublished,
			Slug:         "district-15-condo-market-guide",
			QualityScore: 92,
			ImageURL:     "https://images.unsplash.com/photo-123",
		}, nil
	}}
	handler := NewContentHandler(orch, zap.NewNop())

	rec := postGenerate(t, handler, `{"category": "MARKET_INSIGHTS", "topic": "District 15"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result services.GenerateResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, services.OutcomePublished, result.Status)
	assert.Equal(t, "district-15-condo-market-guide", result.Slug)
	assert.Equal(t, 92, result.QualityScore)

	require.Len(t, orch.requests, 1)
	assert.Equal(t, models.CategoryMarketInsights, orch.requests[0].Category)
	assert.Equal(t, "District 15", orch.requests[0].Topic)
}

func TestContentHandler_AbandonedIsStillOK(t *testing.T) {
	orch := &stubOrchestrator{fn: func(req *services.GenerateRequest) (*services.GenerateResult, error) {
		return &services.GenerateResult{
			Status:       services.OutcomeAbandoned,
			QualityScore: 62,
			Issues:       []string{"fabricated transaction figures"},
		}, nil
	}}
	handler := NewContentHandler(orch, zap.NewNop())

	rec := postGenerate(t, handler, `{"category": "MARKET_INSIGHTS"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result services.GenerateResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, services.OutcomeAbandoned, result.Status)
	assert.Equal(t, []string{"fabricated transaction figures"}, result.Issues)
}

func TestContentHandler_DefaultsCategory(t *testing.T) {
	orch := &stubOrchestrator{fn: func(req *services.GenerateRequest) (*services.GenerateResult, error) {
		return &services.GenerateResult{Status: services.OutcomePublished}, nil
	}}
	handler := NewContentHandler(orch, zap.NewNop())

	rec := postGenerate(t, handler, `{}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, orch.requests, 1)
	assert.Equal(t, models.CategoryMarketInsights, orch.requests[0].Category)
}

func TestContentHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"invalid category", apperrors.ErrInvalidCategory, "invalid_category"},
		{"missing facts", apperrors.ErrMissingPropertyFacts, "missing_property_facts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch := &stubOrchestrator{fn: func(req *services.GenerateRequest) (*services.GenerateResult, error) {
				return nil, tt.err
			}}
			handler := NewContentHandler(orch, zap.NewNop())

			rec := postGenerate(t, handler, `{"category": "NEW_LAUNCH_REVIEW"}`)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body["error"])
		})
	}
}

func TestContentHandler_InternalError(t *testing.T) {
	orch := &stubOrchestrator{fn: func(req *services.GenerateRequest) (*services.GenerateResult, error) {
		return nil, errors.New("database unavailable")
	}}
	handler := NewContentHandler(orch, zap.NewNop())

	rec := postGenerate(t, handler, `{"category": "MARKET_INSIGHTS"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContentHandler_MalformedBody(t *testing.T) {
	handler := NewContentHandler(&stubOrchestrator{}, zap.NewNop())

	rec := postGenerate(t, handler, `{"category":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContentHandler_MethodNotAllowed(t *testing.T) {
	handler := NewContentHandler(&stubOrchestrator{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/content/generate", nil)
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
