package logging_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/stretchr/testify/assert"

	"github.com/todoflow-labs/fragment-service/internal/logging"
)

func TestNewLevels(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logging.New("debug").GetLevel())
	assert.Equal(t, zerolog.WarnLevel, logging.New(" WARN ").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, logging.New("").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, logging.New("loud").GetLevel())
}

func TestMiddlewareSetsRequestID(t *testing.T) {
	var sawID bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawID = hlog.IDFromRequest(r)
		w.WriteHeader(http.StatusTeapot)
	})

	resp := httptest.NewRecorder()
	logging.Middleware(logging.Nop())(next).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, resp.Code)
	assert.True(t, sawID)
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))
}
