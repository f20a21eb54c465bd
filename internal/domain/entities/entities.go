package entities

import (
	"strings"
	"time"
)

// Priority orders tasks from least to most urgent.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DeletePolicy decides what happens to tasks that reference a project when
// the project is deleted. It is a required argument to ProjectStore.Delete;
// there is no implicit default.
type DeletePolicy string

const (
	// CascadeTasks deletes every task assigned to the project.
	CascadeTasks DeletePolicy = "cascade"
	// DetachTasks keeps the tasks and clears their project reference.
	DetachTasks DeletePolicy = "detach"
)

// DefaultCategory is substituted for a blank task category.
const DefaultCategory = "Uncategorized"

// DefaultProjectColor is the color assigned to projects created without one.
const DefaultProjectColor = "blue"

// DefaultEventColor is the color assigned to calendar events created without one.
const DefaultEventColor = "#6366f1"

// Task is a single to-do item. ProjectID is a weak reference: it may be
// empty (unassigned) and never owns the referenced project.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Category    string    `json:"category"`
	ProjectID   string    `json:"projectId,omitempty"`
}

// Project groups tasks for display. Color is a presentation token with no
// behavioral effect.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CalendarEvent is a scheduled event. End is never before Start.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
}

// IsOverdue reports whether the task's due day is strictly before the
// current calendar day. Time of day is ignored; completed tasks are never
// overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate.IsZero() {
		return false
	}
	return StartOfDay(t.DueDate).Before(StartOfDay(now))
}

// IsMultiDay reports whether the event spans more than one calendar day.
func (e *CalendarEvent) IsMultiDay() bool {
	return !SameDay(e.Start, e.End)
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank maps priorities onto a total order: low < medium < high.
func (p Priority) Rank() int {
	switch p {
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	default:
		return 0
	}
}

func (p DeletePolicy) IsValid() bool {
	switch p {
	case CascadeTasks, DetachTasks:
		return true
	default:
		return false
	}
}

// NormalizeCategory trims the category and substitutes DefaultCategory when
// the result is blank.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	return category
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}
