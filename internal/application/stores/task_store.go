// Package stores holds the owning components for the three entity
// collections. A store mutates its in-memory collection and mirrors it to
// the persistence adapter inline, within the same synchronous call. When a
// write fails the mutation stands; the failure surfaces as a StorageError
// and a warning notification rather than a rollback.
package stores

import (
	"context"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskflow/core/internal/adapters/storage"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// Status filter values for TaskQuery.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// Sort keys for TaskQuery.
type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByDueDate   SortKey = "dueDate"
	SortByTitle     SortKey = "title"
	SortByPriority  SortKey = "priority"
)

// Sort directions for TaskQuery.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Category and project filter values with reserved meaning. Any other value
// selects tasks with that exact category or project id.
const (
	CategoryFilterAll = "all"
	ProjectFilterAll  = "all"
	ProjectFilterNone = ""
)

// TaskQuery selects and orders a view of the task collection. Filters apply
// conjunctively: status, then category, then project. Note the zero value of
// Project means "unassigned only"; use ProjectFilterAll to bypass.
type TaskQuery struct {
	Status   StatusFilter
	Category string
	Project  string
	SortBy   SortKey
	Order    SortOrder
}

// DefaultTaskQuery matches every task, newest first.
func DefaultTaskQuery() TaskQuery {
	return TaskQuery{
		Status:   FilterAll,
		Category: CategoryFilterAll,
		Project:  ProjectFilterAll,
		SortBy:   SortByCreatedAt,
		Order:    Descending,
	}
}

// TaskStats are aggregate counts over the full collection.
type TaskStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Active     int `json:"active"`
	Overdue    int `json:"overdue"`
	Completion int `json:"completion"` // percentage, 0 when empty
}

// CreateTaskInput carries the fields accepted when adding a task.
type CreateTaskInput struct {
	Title       string `validate:"required"`
	Description string
	DueDate     time.Time
	Priority    entities.Priority `validate:"omitempty,oneof=low medium high"`
	Category    string
	ProjectID   string
}

// UpdateTaskInput replaces a task's editable fields. ID, CreatedAt, and
// Completed are immutable through this path.
type UpdateTaskInput struct {
	Title       string `validate:"required"`
	Description string
	DueDate     time.Time
	Priority    entities.Priority `validate:"omitempty,oneof=low medium high"`
	Category    string
	ProjectID   string
}

// TaskStore owns the task collection.
type TaskStore struct {
	mu       sync.RWMutex
	tasks    []entities.Task
	adapter  *storage.Adapter
	notifier ports.Notifier
	logger   *logger.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewTaskStore loads the persisted collection and returns a store owning it.
// Unreadable stored data degrades to an empty collection.
func NewTaskStore(ctx context.Context, adapter *storage.Adapter, notifier ports.Notifier, log *logger.Logger) *TaskStore {
	return &TaskStore{
		tasks:    adapter.LoadTasks(ctx),
		adapter:  adapter,
		notifier: notifier,
		logger:   log.WithComponent("tasks"),
		validate: validator.New(),
		now:      time.Now,
	}
}

// Add validates, normalizes, and prepends a new task so the collection stays
// newest-first. The task is persisted inline; a storage failure leaves it in
// memory and is returned as a warning-grade error.
func (s *TaskStore) Add(ctx context.Context, in CreateTaskInput) (entities.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Priority == "" {
		in.Priority = entities.PriorityMedium
	}
	if err := s.validateInput(in); err != nil {
		return entities.Task{}, err
	}

	task := entities.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		CreatedAt:   s.now(),
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Category:    entities.NormalizeCategory(in.Category),
		ProjectID:   in.ProjectID,
	}

	s.mu.Lock()
	s.tasks = append([]entities.Task{task}, s.tasks...)
	s.mu.Unlock()

	s.logger.LogMutation("tasks", "add", task.ID)
	s.notifier.Success("Task added successfully!")
	return task, s.persist(ctx)
}

// Update replaces the editable fields of the task with the given id,
// preserving id, creation time, and completion state.
func (s *TaskStore) Update(ctx context.Context, id string, in UpdateTaskInput) (entities.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Priority == "" {
		in.Priority = entities.PriorityMedium
	}
	if err := s.validateInput(in); err != nil {
		return entities.Task{}, err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return entities.Task{}, &entities.NotFoundError{Entity: "task", ID: id}
	}
	task := s.tasks[i]
	task.Title = in.Title
	task.Description = in.Description
	task.DueDate = in.DueDate
	task.Priority = in.Priority
	task.Category = entities.NormalizeCategory(in.Category)
	task.ProjectID = in.ProjectID
	s.tasks[i] = task
	s.mu.Unlock()

	s.logger.LogMutation("tasks", "update", id)
	s.notifier.Success("Task updated successfully!")
	return task, s.persist(ctx)
}

// Delete removes the task with the given id.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return &entities.NotFoundError{Entity: "task", ID: id}
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.mu.Unlock()

	s.logger.LogMutation("tasks", "delete", id)
	s.notifier.Info("Task deleted")
	return s.persist(ctx)
}

// ToggleComplete flips the completion flag. The congratulatory notification
// fires only on the incomplete-to-complete transition.
func (s *TaskStore) ToggleComplete(ctx context.Context, id string) (entities.Task, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return entities.Task{}, &entities.NotFoundError{Entity: "task", ID: id}
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	task := s.tasks[i]
	s.mu.Unlock()

	s.logger.LogMutation("tasks", "toggle", id)
	if task.Completed {
		s.notifier.Success("Nice job! Task completed.")
	}
	return task, s.persist(ctx)
}

// Query returns a filtered, sorted view of the collection. It never mutates
// stored order; ties keep their stored relative order.
func (s *TaskStore) Query(q TaskQuery) []entities.Task {
	s.mu.RLock()
	snapshot := make([]entities.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	s.mu.RUnlock()

	out := snapshot[:0:0]
	for _, t := range snapshot {
		if !matchStatus(t, q.Status) {
			continue
		}
		if q.Category != CategoryFilterAll && q.Category != "" && t.Category != q.Category {
			continue
		}
		if q.Project != ProjectFilterAll && t.ProjectID != q.Project {
			continue
		}
		out = append(out, t)
	}

	sortTasks(out, q.SortBy, q.Order)
	return out
}

// Stats derives aggregate counts from a snapshot of the collection.
func (s *TaskStore) Stats() TaskStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	stats := TaskStats{Total: len(s.tasks)}
	for i := range s.tasks {
		t := &s.tasks[i]
		if t.Completed {
			stats.Completed++
		} else {
			stats.Active++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
	}
	if stats.Total > 0 {
		stats.Completion = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}

// Categories returns the distinct task categories in collection order, for
// populating a category filter.
func (s *TaskStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.tasks))
	var out []string
	for _, t := range s.tasks {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}

// Get returns the task with the given id.
func (s *TaskStore) Get(id string) (entities.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return entities.Task{}, &entities.NotFoundError{Entity: "task", ID: id}
	}
	return s.tasks[i], nil
}

// Len reports the collection size.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// All returns a snapshot copy of the collection in stored order.
func (s *TaskStore) All() []entities.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// removeByProject deletes every task referencing the project. Used by
// ProjectStore.Delete under the cascade policy.
func (s *TaskStore) removeByProject(ctx context.Context, projectID string) error {
	s.mu.Lock()
	kept := s.tasks[:0:0]
	for _, t := range s.tasks {
		if t.ProjectID != projectID {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.mu.Unlock()

	s.logger.LogMutation("tasks", "cascade", projectID)
	return s.persist(ctx)
}

// detachProject clears the project reference on every task pointing at the
// project. Used by ProjectStore.Delete under the detach policy.
func (s *TaskStore) detachProject(ctx context.Context, projectID string) error {
	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ProjectID == projectID {
			s.tasks[i].ProjectID = ""
		}
	}
	s.mu.Unlock()

	s.logger.LogMutation("tasks", "detach", projectID)
	return s.persist(ctx)
}

func (s *TaskStore) persist(ctx context.Context) error {
	if err := s.adapter.SaveTasks(ctx, s.All()); err != nil {
		s.logger.WithError(err).Warn("Task collection not persisted; in-memory state kept")
		s.notifier.Warn("Changes kept in memory only: storage write failed")
		return err
	}
	return nil
}

func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) validateInput(in interface{}) error {
	return translateValidation(s.validate, in)
}

func matchStatus(t entities.Task, f StatusFilter) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterActive:
		return !t.Completed
	default:
		return true
	}
}

func sortTasks(tasks []entities.Task, key SortKey, order SortOrder) {
	cmpFn := func(a, b entities.Task) int {
		switch key {
		case SortByDueDate:
			return a.DueDate.Compare(b.DueDate)
		case SortByTitle:
			return strings.Compare(a.Title, b.Title)
		case SortByPriority:
			return a.Priority.Rank() - b.Priority.Rank()
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	slices.SortStableFunc(tasks, func(a, b entities.Task) int {
		c := cmpFn(a, b)
		if order == Descending {
			return -c
		}
		return c
	})
}
