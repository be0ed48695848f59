package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(ErrSyncJobNotFound))
	assert.Equal(t, http.StatusConflict, StatusOf(ErrSyncJobClosed))
	assert.Equal(t, http.StatusServiceUnavailable, StatusOf(ErrSyncDisabled))
	assert.Equal(t, http.StatusInternalServerError, StatusOf("XYZ_999"))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrInvalidRequest, "Período inválido", map[string]string{"reason": "invalid_payload"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrInvalidRequest, body.Code)
	assert.Equal(t, "Período inválido", body.Message)
	assert.Equal(t, map[string]any{"reason": "invalid_payload"}, body.Details)
}
