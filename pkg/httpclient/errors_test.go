package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tadarrab/storefront/pkg/errors"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_StructuredBody(t *testing.T) {
	resp := fakeResponse(http.StatusUnauthorized, `{"error":"invalid credentials"}`)

	err := ParseResponseError(resp, "marketplace")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestParseResponseError_UnstructuredBody(t *testing.T) {
	resp := fakeResponse(http.StatusBadRequest, `bad request`)

	err := ParseResponseError(resp, "marketplace")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "bad request")
}

func TestParseResponseError_StatusMapping(t *testing.T) {
	tests := []struct {
		status   int
		sentinel error
	}{
		{http.StatusNotFound, apperrors.ErrNotFound},
		{http.StatusConflict, apperrors.ErrConflict},
		{http.StatusForbidden, apperrors.ErrForbidden},
		{http.StatusServiceUnavailable, apperrors.ErrServiceUnavail},
	}

	for _, tt := range tests {
		resp := fakeResponse(tt.status, `{"error":"nope"}`)
		err := ParseResponseError(resp, "marketplace")
		assert.True(t, errors.Is(err, tt.sentinel), "status %d", tt.status)
	}
}

func TestParseResponseError_5xxIsPlainError(t *testing.T) {
	resp := fakeResponse(http.StatusBadGateway, `{"error":"upstream down"}`)

	err := ParseResponseError(resp, "marketplace")
	require.Error(t, err)
	var appErr *apperrors.AppError
	assert.False(t, errors.As(err, &appErr))
	assert.Contains(t, err.Error(), "502")
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(http.StatusBadRequest))
	assert.True(t, IsClientError(http.StatusNotFound))
	assert.False(t, IsClientError(http.StatusOK))
	assert.False(t, IsClientError(http.StatusInternalServerError))
}
