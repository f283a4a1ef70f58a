package httputil

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "pulseboard/pkg/domain-errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unknown table maps to 400",
			err:        dErrors.New(dErrors.CodeUnknownTable, "no table named foo"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"error":"unknown_table"`,
		},
		{
			name:       "upstream error maps to 502",
			err:        dErrors.New(dErrors.CodeUpstream, "airtable returned 500"),
			wantStatus: http.StatusBadGateway,
			wantBody:   `"error":"upstream_error"`,
		},
		{
			name:       "timeout maps to 504",
			err:        dErrors.New(dErrors.CodeTimeout, "deadline exceeded"),
			wantStatus: http.StatusGatewayTimeout,
			wantBody:   `"error":"timeout"`,
		},
		{
			name:       "plain error maps to 500 without detail",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"error":"internal_error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Action string `json:"action"`
	}

	t.Run("decodes valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"action":"audit"}`))
		rec := httptest.NewRecorder()

		got, ok := DecodeJSON[payload](rec, r, discardLogger())
		require.True(t, ok)
		assert.Equal(t, "audit", got.Action)
	})

	t.Run("writes 400 for malformed body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{"action":`)))
		rec := httptest.NewRecorder()

		_, ok := DecodeJSON[payload](rec, r, discardLogger())
		require.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
