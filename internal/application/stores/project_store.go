package stores

import (
	"context"
	"fmt"
	"math"
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

// CreateProjectInput carries the fields accepted when adding a project.
type CreateProjectInput struct {
	Name        string `validate:"required"`
	Description string
	Color       string
}

// UpdateProjectInput replaces a project's editable fields.
type UpdateProjectInput struct {
	Name        string `validate:"required"`
	Description string
	Color       string
}

// ProjectTaskCounts summarizes the tasks referencing one project.
type ProjectTaskCounts struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Completion int `json:"completion"` // percentage, 0 when empty
}

// ProjectStore owns the project collection. It depends on the TaskStore to
// resolve referencing tasks when a project is deleted, so that no surviving
// task ever dangles.
type ProjectStore struct {
	mu       sync.RWMutex
	projects []entities.Project
	tasks    *TaskStore
	adapter  *storage.Adapter
	notifier ports.Notifier
	logger   *logger.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewProjectStore loads the persisted collection and returns a store owning it.
func NewProjectStore(ctx context.Context, adapter *storage.Adapter, tasks *TaskStore, notifier ports.Notifier, log *logger.Logger) *ProjectStore {
	return &ProjectStore{
		projects: adapter.LoadProjects(ctx),
		tasks:    tasks,
		adapter:  adapter,
		notifier: notifier,
		logger:   log.WithComponent("projects"),
		validate: validator.New(),
		now:      time.Now,
	}
}

// Add validates and appends a new project.
func (s *ProjectStore) Add(ctx context.Context, in CreateProjectInput) (entities.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validateInput(in); err != nil {
		return entities.Project{}, err
	}
	if in.Color == "" {
		in.Color = entities.DefaultProjectColor
	}

	project := entities.Project{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		CreatedAt:   s.now(),
	}

	s.mu.Lock()
	s.projects = append(s.projects, project)
	s.mu.Unlock()

	s.logger.LogMutation("projects", "add", project.ID)
	s.notifier.Success(fmt.Sprintf("Project %q created", project.Name))
	return project, s.persist(ctx)
}

// Update replaces the editable fields of the project with the given id,
// preserving id and creation time.
func (s *ProjectStore) Update(ctx context.Context, id string, in UpdateProjectInput) (entities.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validateInput(in); err != nil {
		return entities.Project{}, err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return entities.Project{}, &entities.NotFoundError{Entity: "project", ID: id}
	}
	project := s.projects[i]
	project.Name = in.Name
	project.Description = in.Description
	if in.Color != "" {
		project.Color = in.Color
	}
	s.projects[i] = project
	s.mu.Unlock()

	s.logger.LogMutation("projects", "update", id)
	s.notifier.Success(fmt.Sprintf("Project %q updated", project.Name))
	return project, s.persist(ctx)
}

// Delete removes the project after resolving its tasks under the given
// policy. The policy is mandatory: cascade deletes referencing tasks, detach
// clears their project reference. Both collections are persisted.
func (s *ProjectStore) Delete(ctx context.Context, id string, policy entities.DeletePolicy) error {
	if !policy.IsValid() {
		return entities.NewValidationError("policy", "must be cascade or detach")
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return &entities.NotFoundError{Entity: "project", ID: id}
	}
	name := s.projects[i].Name
	s.mu.Unlock()

	// Resolve dependent tasks first so a failure here leaves the project in
	// place instead of dangling references.
	var taskErr error
	switch policy {
	case entities.CascadeTasks:
		taskErr = s.tasks.removeByProject(ctx, id)
	case entities.DetachTasks:
		taskErr = s.tasks.detachProject(ctx, id)
	}

	s.mu.Lock()
	if i = s.indexOf(id); i >= 0 {
		s.projects = append(s.projects[:i], s.projects[i+1:]...)
	}
	s.mu.Unlock()

	s.logger.LogMutation("projects", "delete", id)
	s.notifier.Info(fmt.Sprintf("Project %q deleted", name))
	if err := s.persist(ctx); err != nil {
		return err
	}
	return taskErr
}

// TaskCounts summarizes the tasks referencing the given project.
func (s *ProjectStore) TaskCounts(projectID string) ProjectTaskCounts {
	var counts ProjectTaskCounts
	for _, t := range s.tasks.All() {
		if t.ProjectID != projectID {
			continue
		}
		counts.Total++
		if t.Completed {
			counts.Completed++
		}
	}
	if counts.Total > 0 {
		counts.Completion = int(math.Round(float64(counts.Completed) / float64(counts.Total) * 100))
	}
	return counts
}

// Get returns the project with the given id.
func (s *ProjectStore) Get(id string) (entities.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return entities.Project{}, &entities.NotFoundError{Entity: "project", ID: id}
	}
	return s.projects[i], nil
}

// All returns a snapshot copy of the collection in stored order.
func (s *ProjectStore) All() []entities.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Len reports the collection size.
func (s *ProjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

func (s *ProjectStore) persist(ctx context.Context) error {
	if err := s.adapter.SaveProjects(ctx, s.All()); err != nil {
		s.logger.WithError(err).Warn("Project collection not persisted; in-memory state kept")
		s.notifier.Warn("Changes kept in memory only: storage write failed")
		return err
	}
	return nil
}

func (s *ProjectStore) indexOf(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *ProjectStore) validateInput(in interface{}) error {
	return translateValidation(s.validate, in)
}
