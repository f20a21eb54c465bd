package storage

import "github.com/taskflow/core/internal/domain/entities"

// The sanitizers enforce a schema-with-defaults at the deserialization
// boundary. Fields that can be repaired are defaulted; records that cannot
// be addressed or rendered are dropped rather than propagated.

func sanitizeTasks(tasks []entities.Task) []entities.Task {
	out := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" || t.Title == "" {
			continue
		}
		t.Category = entities.NormalizeCategory(t.Category)
		if !t.Priority.IsValid() {
			t.Priority = entities.PriorityMedium
		}
		out = append(out, t)
	}
	return out
}

func sanitizeProjects(projects []entities.Project) []entities.Project {
	out := make([]entities.Project, 0, len(projects))
	for _, p := range projects {
		if p.ID == "" || p.Name == "" {
			continue
		}
		if p.Color == "" {
			p.Color = entities.DefaultProjectColor
		}
		out = append(out, p)
	}
	return out
}

func sanitizeEvents(events []entities.CalendarEvent) []entities.CalendarEvent {
	out := make([]entities.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.ID == "" || e.Title == "" {
			continue
		}
		if e.Start.IsZero() || e.End.IsZero() || e.End.Before(e.Start) {
			continue
		}
		if e.Color == "" {
			e.Color = entities.DefaultEventColor
		}
		out = append(out, e)
	}
	return out
}
