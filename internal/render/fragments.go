// Package render turns tasks into the HTML fragments the browser swaps into
// the page. Every function is pure; user text is always escaped.
package render

import (
	"strings"

	"github.com/todoflow-labs/fragment-service/internal/task"
)

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// ElementID is the DOM id of the fragment that represents t.
func ElementID(id string) string {
	return "task-" + id
}

func taskURL(id string) string {
	return "/api/tasks/" + id
}

// PriorityVariant maps a priority to the badge variant shown for it.
func PriorityVariant(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "danger"
	case task.PriorityLow:
		return "success"
	default:
		return "primary"
	}
}

func Task(t task.Task) string {
	elemID := ElementID(t.ID)
	target := "#" + elemID

	class := "task-item"
	completed := "false"
	if t.Completed {
		class += " completed"
		completed = "true"
	}

	toggle := Element("sl-checkbox", Attrs{
		Class:   "task-toggle",
		Checked: t.Completed,
		Hx: Hx{
			Put:    taskURL(t.ID) + "/toggle",
			Target: target,
			Swap:   "outerHTML",
		},
	})

	body := Element("div", Attrs{Class: "task-content"},
		Element("h3", Attrs{Class: "task-title"}, Text(t.Title)),
		Element("p", Attrs{Class: "task-description"}, Text(t.Description)),
		Element("sl-badge", Attrs{Class: "task-priority", Variant: PriorityVariant(t.Priority), Extra: map[string]string{"pill": ""}},
			Text(string(t.Priority))),
	)

	actions := Element("sl-dropdown", Attrs{Class: "task-actions"},
		Element("sl-icon-button", Attrs{Name: "three-dots-vertical", Label: "Actions", Extra: map[string]string{"slot": "trigger"}}),
		Element("sl-menu", Attrs{},
			Element("sl-menu-item", Attrs{
				Class: "task-edit",
				Hx:    Hx{Get: taskURL(t.ID) + "/edit", Target: target, Swap: "outerHTML"},
			}, "Edit"),
			Element("sl-menu-item", Attrs{
				Class: "task-delete",
				Hx: Hx{
					Delete:  taskURL(t.ID),
					Target:  target,
					Swap:    "outerHTML",
					Confirm: "Delete this task?",
				},
			}, "Delete"),
		),
	)

	return Element("div", Attrs{
		ID:    elemID,
		Class: class,
		Extra: map[string]string{"data-completed": completed},
	}, toggle, body, actions)
}

// TaskList renders tasks in order, or the empty state when there are none.
func TaskList(tasks []task.Task) string {
	if len(tasks) == 0 {
		return EmptyState()
	}
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(Task(t))
	}
	return b.String()
}

func EditForm(t task.Task) string {
	elemID := ElementID(t.ID)
	target := "#" + elemID

	options := make([]string, 0, 3)
	for _, p := range task.Priorities() {
		options = append(options, Element("sl-option", Attrs{
			Value:    string(p),
			Selected: p == t.Priority,
		}, Text(strings.ToUpper(string(p[:1]))+string(p[1:]))))
	}

	return Element("form", Attrs{
		ID:    elemID,
		Class: "task-item task-edit-form",
		Hx:    Hx{Put: taskURL(t.ID), Target: target, Swap: "outerHTML"},
	},
		Element("sl-input", Attrs{Name: "title", Label: "Title", Value: t.Title, Required: true}),
		Element("sl-textarea", Attrs{Name: "description", Label: "Description", Value: t.Description}),
		Element("sl-select", Attrs{Name: "priority", Label: "Priority", Value: string(t.Priority)}, options...),
		Element("div", Attrs{Class: "form-actions"},
			Element("sl-button", Attrs{Type: "submit", Variant: "primary"}, "Save"),
			Element("sl-button", Attrs{
				Type: "button",
				Hx:   Hx{Get: taskURL(t.ID), Target: target, Swap: "outerHTML"},
			}, "Cancel"),
		),
	)
}

func EmptyState() string {
	return Element("div", Attrs{Class: "empty-state"},
		Element("sl-alert", Attrs{Variant: "primary", Open: true},
			Element("strong", Attrs{}, "No tasks found."),
			" Add a task to get started.",
		),
	)
}

func Error(message string, severity Severity) string {
	if severity != SeverityWarning {
		severity = SeverityDanger
	}
	return Element("sl-alert", Attrs{Class: "error-message", Variant: string(severity), Open: true},
		Element("strong", Attrs{}, "Error:"),
		" "+Text(message),
	)
}
