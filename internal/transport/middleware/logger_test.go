package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLog(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m), "log line: %s", buf.String())
	return m
}

func TestLogger_Success(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(SessionHeader, "sess-1")
		_, _ = w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	Chain(RequestID, Logger(logger))(handler).ServeHTTP(httptest.NewRecorder(), req)

	m := decodeLog(t, &buf)
	assert.Equal(t, "http.request", m["msg"])
	assert.Equal(t, "INFO", m["level"])
	assert.Equal(t, http.MethodGet, m["method"])
	assert.Equal(t, "/api/search", m["path"])
	assert.EqualValues(t, 200, m["status"])
	assert.EqualValues(t, 5, m["bytes"])
	assert.Equal(t, "sess-1", m["session_id"])
	assert.NotEmpty(t, m["request_id"])
	assert.Contains(t, m, "duration")
}

func TestLogger_ServerError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.WriteHeader(http.StatusOK)
	})

	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

	m := decodeLog(t, &buf)
	assert.Equal(t, "ERROR", m["level"])
	assert.EqualValues(t, 500, m["status"])
	assert.NotContains(t, m, "session_id")
}

func TestLogger_NoContent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/search", nil))

	m := decodeLog(t, &buf)
	assert.EqualValues(t, 204, m["status"])
	assert.EqualValues(t, 0, m["bytes"])
}
