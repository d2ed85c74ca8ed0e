package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_Shape(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, ErrorResponse(rec, http.StatusBadRequest, "invalid_request", "category is not recognized"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "invalid_request", body["error"])
	assert.Equal(t, "category is not recognized", body["message"])
}

func TestWriteJSON_SetsStatusAndBody(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteJSON(rec, http.StatusCreated, map[string]int{"count": 3}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteJSON(rec, http.StatusOK, map[string]any{"bad": func() {}})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
