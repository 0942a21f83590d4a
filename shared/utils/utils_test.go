package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithError(w, http.StatusNotFound, "missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "missing", body.Error)
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	handler := PanicRecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("UTILS_TEST_STR", "value")
	t.Setenv("UTILS_TEST_INT", "42")
	t.Setenv("UTILS_TEST_BAD_INT", "forty-two")
	t.Setenv("UTILS_TEST_BOOL", "Yes")
	t.Setenv("UTILS_TEST_DURATION", "3s")

	assert.Equal(t, "value", GetEnvOrDefault("UTILS_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnvOrDefault("UTILS_TEST_UNSET", "fallback"))
	assert.Equal(t, 42, GetEnvIntOrDefault("UTILS_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvIntOrDefault("UTILS_TEST_BAD_INT", 1))
	assert.True(t, GetEnvBoolOrDefault("UTILS_TEST_BOOL", false))
	assert.True(t, GetEnvBoolOrDefault("UTILS_TEST_UNSET", true))
	assert.Equal(t, 3*time.Second, GetEnvDurationOrDefault("UTILS_TEST_DURATION", time.Second))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, SplitAndTrim(" http://a, ,http://b,"))
	assert.Nil(t, SplitAndTrim(""))
}
