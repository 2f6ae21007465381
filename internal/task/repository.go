package task

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// Repository is an in-memory task store. Every method runs under the
// repository lock, so each call is observed as a single step.
type Repository struct {
	mu     sync.RWMutex
	tasks  map[string]Task
	nextID int
	now    func() time.Time
}

type Option func(*Repository)

// WithClock replaces the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		tasks: make(map[string]Task),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Seed stores tasks verbatim, keeping their IDs and timestamps, and moves the
// ID counter past them.
func (r *Repository) Seed(tasks ...Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
	r.nextID += len(tasks)
}

// List returns the tasks matching f, newest first.
func (r *Repository) List(f Filter) []Task {
	r.mu.RLock()
	out := make([]Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if f.match(t) {
			out = append(out, t)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return idGreater(out[i].ID, out[j].ID)
	})
	return out
}

func (r *Repository) Get(id string) (Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (r *Repository) Create(in Fields) (Task, error) {
	var t Task
	var err error

	if in.Title == nil {
		return Task{}, &ValidationError{Field: "title", Reason: "title is required"}
	}
	if t.Title, err = validateTitle(*in.Title); err != nil {
		return Task{}, err
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	t.Priority = PriorityMedium
	if in.Priority != nil {
		if t.Priority, err = validatePriority(*in.Priority); err != nil {
			return Task{}, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.allocateID()
	t.CreatedAt = r.now()
	r.tasks[t.ID] = t
	return t, nil
}

// Update merges the submitted fields over the stored task. Fields that were
// not submitted keep their value.
func (r *Repository) Update(id string, in Fields) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}

	var err error
	if in.Title != nil {
		if t.Title, err = validateTitle(*in.Title); err != nil {
			return Task{}, err
		}
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		if t.Priority, err = validatePriority(*in.Priority); err != nil {
			return Task{}, err
		}
	}

	r.tasks[id] = t
	return t, nil
}

func (r *Repository) ToggleCompletion(id string) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	t.Completed = !t.Completed
	r.tasks[id] = t
	return t, nil
}

// Delete removes the task and reports whether it existed.
func (r *Repository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return false
	}
	delete(r.tasks, id)
	return true
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

// allocateID must be called with mu held.
func (r *Repository) allocateID() string {
	for {
		r.nextID++
		id := strconv.Itoa(r.nextID)
		if _, taken := r.tasks[id]; !taken {
			return id
		}
	}
}

// idGreater orders counter IDs numerically and falls back to byte order.
func idGreater(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}
