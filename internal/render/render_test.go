package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/todoflow-labs/fragment-service/internal/render"
	"github.com/todoflow-labs/fragment-service/internal/task"
)

func sample() task.Task {
	return task.Task{
		ID:          "7",
		Title:       "Buy milk",
		Description: "semi-skimmed",
		Priority:    task.PriorityLow,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestElement(t *testing.T) {
	got := render.Element("div", render.Attrs{
		ID:       "x",
		Class:    "a b",
		Disabled: true,
		Hx:       render.Hx{Get: "/y", Target: "#x"},
		Extra:    map[string]string{"data-z": `"q"`, "aria-label": "L"},
	}, "child")
	assert.Equal(t, `<div id="x" class="a b" hx-get="/y" hx-target="#x" disabled aria-label="L" data-z="&#34;q&#34;">child</div>`, got)

	assert.Equal(t, `<input type="text" name="title">`, render.Void("input", render.Attrs{Type: "text", Name: "title"}))
	assert.Equal(t, "&lt;b&gt; &amp; &#39;", render.Text("<b> & '"))
}

func TestElementSkipsUnsafeExtraKeys(t *testing.T) {
	got := render.Element("div", render.Attrs{
		Extra: map[string]string{
			"data-ok":                      "1",
			`x" onclick="alert(1)`:         "v",
			"a b":                          "v",
			"x=y":                          "v",
			"><script>alert(1)</script><i": "v",
			"tab\there":                   "v",
			"":                             "v",
		},
	})
	assert.Equal(t, `<div data-ok="1"></div>`, got)
}

func TestTaskFragment(t *testing.T) {
	out := render.Task(sample())

	assert.True(t, strings.HasPrefix(out, `<div id="task-7" class="task-item" data-completed="false">`))
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "semi-skimmed")
	assert.Contains(t, out, `variant="success"`)
	assert.Contains(t, out, `hx-put="/api/tasks/7/toggle" hx-target="#task-7"`)
	assert.Contains(t, out, `hx-get="/api/tasks/7/edit" hx-target="#task-7"`)
	assert.Contains(t, out, `hx-delete="/api/tasks/7" hx-target="#task-7"`)
	assert.NotContains(t, out, " checked")
}

func TestTaskFragmentCompleted(t *testing.T) {
	tk := sample()
	tk.Completed = true
	out := render.Task(tk)

	assert.Contains(t, out, `class="task-item completed" data-completed="true"`)
	assert.Contains(t, out, " checked")
}

func TestPriorityVariant(t *testing.T) {
	assert.Equal(t, "danger", render.PriorityVariant(task.PriorityHigh))
	assert.Equal(t, "primary", render.PriorityVariant(task.PriorityMedium))
	assert.Equal(t, "success", render.PriorityVariant(task.PriorityLow))
}

func TestTaskFragmentEscapes(t *testing.T) {
	tk := sample()
	tk.Title = "<script>alert(1)</script>"
	tk.Description = `"quoted" & <b>bold</b>`
	out := render.Task(tk)

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, out, "&#34;quoted&#34; &amp; &lt;b&gt;bold&lt;/b&gt;")
}

func TestEditForm(t *testing.T) {
	tk := sample()
	tk.Title = `Say "hi"`
	out := render.EditForm(tk)

	assert.True(t, strings.HasPrefix(out, `<form id="task-7"`))
	assert.Contains(t, out, `hx-put="/api/tasks/7" hx-target="#task-7" hx-swap="outerHTML"`)
	assert.Contains(t, out, `name="title" value="Say &#34;hi&#34;" label="Title" required`)
	assert.Contains(t, out, `name="description" value="semi-skimmed" label="Description"`)
	assert.Contains(t, out, `<sl-option value="low" selected>Low</sl-option>`)
	assert.Contains(t, out, `<sl-option value="high">High</sl-option>`)
	assert.Contains(t, out, `hx-get="/api/tasks/7" hx-target="#task-7"`)
}

func TestTaskList(t *testing.T) {
	assert.Equal(t, render.EmptyState(), render.TaskList(nil))
	assert.Contains(t, render.EmptyState(), "No tasks found")

	a, b := sample(), sample()
	b.ID = "8"
	out := render.TaskList([]task.Task{b, a})
	assert.Less(t, strings.Index(out, `id="task-8"`), strings.Index(out, `id="task-7"`))
}

func TestError(t *testing.T) {
	out := render.Error("Task <1> not found", render.SeverityWarning)
	assert.Contains(t, out, `variant="warning"`)
	assert.Contains(t, out, "Task &lt;1&gt; not found")

	assert.Contains(t, render.Error("boom", "unknown"), `variant="danger"`)
}
