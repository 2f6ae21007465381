package task

import "time"

// SeedTasks returns the example tasks loaded at startup.
func SeedTasks() []Task {
	base := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	return []Task{
		{
			ID:          "1",
			Title:       "Learn HTMX",
			Description: "Work through the hypermedia examples and swap fragments from the server",
			Priority:    PriorityHigh,
			CreatedAt:   base,
		},
		{
			ID:          "2",
			Title:       "Build web components",
			Description: "Wire the task list to the component library",
			Priority:    PriorityMedium,
			CreatedAt:   base.Add(time.Hour),
		},
		{
			ID:          "3",
			Title:       "Write documentation",
			Description: "Describe the API endpoints and the fragments they return",
			Priority:    PriorityLow,
			Completed:   true,
			CreatedAt:   base.Add(2 * time.Hour),
		},
	}
}
