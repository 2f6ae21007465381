package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/todoflow-labs/fragment-service/internal/logging"
	"github.com/todoflow-labs/fragment-service/internal/metrics"
)

const apiPrefix = "/api/"

// Route binds a method and path pattern to a handler. Patterns use chi
// syntax; {id} matches any single non-slash segment.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Routes returns the API route table in evaluation order.
func (h *Handler) Routes() []Route {
	return []Route{
		{http.MethodGet, "/api/tasks", h.ListTasks},
		{http.MethodPost, "/api/tasks", h.CreateTask},
		{http.MethodGet, "/api/tasks/{id}", h.GetTask},
		{http.MethodPut, "/api/tasks/{id}", h.UpdateTask},
		{http.MethodDelete, "/api/tasks/{id}", h.DeleteTask},
		{http.MethodGet, "/api/tasks/{id}/edit", h.EditTask},
		{http.MethodPut, "/api/tasks/{id}/toggle", h.ToggleTask},
	}
}

// NewRouter mounts the route table on a chi mux. Requests that match no
// route are answered with an API error under /api/ and passed to static
// otherwise.
func NewRouter(h *Handler, static http.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(h.logger))
	r.Use(h.Recover)
	r.Use(metrics.Middleware)
	r.Use(CORS)

	// Routes
	for _, rt := range h.Routes() {
		r.Method(rt.Method, rt.Pattern, rt.Handler)
	}

	// Error handlers
	fallback := func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiPrefix) || r.URL.Path == strings.TrimSuffix(apiPrefix, "/") {
			h.logger.Warn().Str("method", r.Method).Str("path", r.URL.Path).Msg("404 api route not found")
			h.writeError(w, r, http.StatusNotFound, "API endpoint not found")
			return
		}
		static.ServeHTTP(w, r)
	}
	r.NotFound(fallback)
	r.MethodNotAllowed(fallback)

	return r
}

// Static serves files from dir. Missing files get the file server's
// plain-text 404.
func Static(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}
