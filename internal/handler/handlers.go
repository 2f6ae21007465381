package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/todoflow-labs/fragment-service/internal/dto"
	"github.com/todoflow-labs/fragment-service/internal/events"
	"github.com/todoflow-labs/fragment-service/internal/logging"
	"github.com/todoflow-labs/fragment-service/internal/metrics"
	"github.com/todoflow-labs/fragment-service/internal/render"
	"github.com/todoflow-labs/fragment-service/internal/task"
)

const publishTimeout = 2 * time.Second

// TaskStore is the repository surface the handlers depend on.
type TaskStore interface {
	List(f task.Filter) []task.Task
	Get(id string) (task.Task, error)
	Create(in task.Fields) (task.Task, error)
	Update(id string, in task.Fields) (task.Task, error)
	ToggleCompletion(id string) (task.Task, error)
	Delete(id string) bool
}

type Handler struct {
	store  TaskStore
	events events.Publisher
	logger *logging.Logger
}

func New(store TaskStore, pub events.Publisher, logger *logging.Logger) *Handler {
	if pub == nil {
		pub = events.Nop{}
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{store: store, events: pub, logger: logger}
}

// statusFilter maps the status query value to a filter. Unknown values list everything.
func statusFilter(status string) task.Filter {
	var completed bool
	switch status {
	case "active":
		completed = false
	case "completed":
		completed = true
	default:
		return task.Filter{}
	}
	return task.Filter{Completed: &completed}
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	h.logger.Debug().Str("status", status).Msg("handling list tasks")

	tasks := h.store.List(statusFilter(status))
	metrics.TaskOperations.WithLabelValues("list", task.OK.String()).Inc()

	w.Header().Set("X-Total-Count", strconv.Itoa(len(tasks)))
	writeHTML(w, http.StatusOK, render.TaskList(tasks))
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug().Msg("handling create task")

	fields, err := parseFields(r)
	if err != nil {
		h.writeOutcome(w, r, "create", err)
		return
	}
	t, err := h.store.Create(fields)
	if err != nil {
		h.writeOutcome(w, r, "create", err)
		return
	}

	h.logger.Info().Str("task_id", t.ID).Msg("task created")
	metrics.TaskOperations.WithLabelValues("create", task.OK.String()).Inc()
	h.publish(r.Context(), dto.TaskCreated, t.ID, &t)
	writeHTML(w, http.StatusOK, render.Task(t))
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.Debug().Str("task_id", id).Msg("handling get task")

	t, err := h.store.Get(id)
	if err != nil {
		h.writeOutcome(w, r, "get", err)
		return
	}
	metrics.TaskOperations.WithLabelValues("get", task.OK.String()).Inc()
	writeHTML(w, http.StatusOK, render.Task(t))
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.Debug().Str("task_id", id).Msg("handling update task")

	fields, err := parseFields(r)
	if err != nil {
		h.writeOutcome(w, r, "update", err)
		return
	}
	t, err := h.store.Update(id, fields)
	if err != nil {
		h.writeOutcome(w, r, "update", err)
		return
	}

	metrics.TaskOperations.WithLabelValues("update", task.OK.String()).Inc()
	h.publish(r.Context(), dto.TaskUpdated, t.ID, &t)
	writeHTML(w, http.StatusOK, render.Task(t))
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.Debug().Str("task_id", id).Msg("handling delete task")

	if !h.store.Delete(id) {
		h.writeOutcome(w, r, "delete", task.ErrNotFound)
		return
	}

	h.logger.Info().Str("task_id", id).Msg("task deleted")
	metrics.TaskOperations.WithLabelValues("delete", task.OK.String()).Inc()
	h.publish(r.Context(), dto.TaskDeleted, id, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) EditTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.Debug().Str("task_id", id).Msg("handling edit form")

	t, err := h.store.Get(id)
	if err != nil {
		h.writeOutcome(w, r, "edit", err)
		return
	}
	metrics.TaskOperations.WithLabelValues("edit", task.OK.String()).Inc()
	writeHTML(w, http.StatusOK, render.EditForm(t))
}

func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.Debug().Str("task_id", id).Msg("handling toggle task")

	t, err := h.store.ToggleCompletion(id)
	if err != nil {
		h.writeOutcome(w, r, "toggle", err)
		return
	}

	metrics.TaskOperations.WithLabelValues("toggle", task.OK.String()).Inc()
	h.publish(r.Context(), dto.TaskToggled, t.ID, &t)
	writeHTML(w, http.StatusOK, render.Task(t))
}

// publish emits a task event. The mutation already happened, so failures
// are only logged.
func (h *Handler) publish(ctx context.Context, typ dto.EventType, id string, t *task.Task) {
	evt := dto.TaskEvent{Type: typ, TaskID: id, OccurredAt: time.Now().UTC()}
	if t != nil {
		evt.Task = dto.FromTask(*t)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := h.events.Publish(ctx, evt); err != nil {
		h.logger.Error().Err(err).Str("type", string(typ)).Str("task_id", id).Msg("failed to publish task event")
	}
}
