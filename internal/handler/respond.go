package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/todoflow-labs/fragment-service/internal/dto"
	"github.com/todoflow-labs/fragment-service/internal/metrics"
	"github.com/todoflow-labs/fragment-service/internal/render"
	"github.com/todoflow-labs/fragment-service/internal/task"
)

// writeOutcome turns a failed operation into a response. The cause of an
// unexpected failure is logged and never sent to the client.
func (h *Handler) writeOutcome(w http.ResponseWriter, r *http.Request, op string, err error) {
	outcome := task.Classify(err)
	metrics.TaskOperations.WithLabelValues(op, outcome.String()).Inc()

	switch outcome {
	case task.Invalid:
		var verr *task.ValidationError
		errors.As(err, &verr)
		h.logger.Warn().Str("op", op).Str("field", verr.Field).Msg(verr.Reason)
		h.writeError(w, r, http.StatusBadRequest, verr.Reason)
	case task.NotFound:
		h.logger.Warn().Str("op", op).Str("path", r.URL.Path).Msg("task not found")
		h.writeError(w, r, http.StatusNotFound, "Task not found")
	default:
		h.logger.Error().Err(err).Str("op", op).Msg("unexpected failure")
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

// writeError picks the JSON envelope for non-hypermedia clients that ask for
// JSON and the HTML error fragment for everyone else.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if wantsJSON(r) {
		writeJSON(w, status, dto.ErrorResponse{Error: msg})
		return
	}
	severity := render.SeverityDanger
	if status == http.StatusBadRequest {
		severity = render.SeverityWarning
	}
	writeHTML(w, status, render.Error(msg, severity))
}

func wantsJSON(r *http.Request) bool {
	if r.Header.Get("HX-Request") != "" {
		return false
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
