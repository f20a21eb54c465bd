// Package storage translates in-memory entity collections to and from a
// durable key-value backend. Each collection is serialized as one JSON
// document under its own key; loads never fail hard, they degrade to a
// default collection when the stored text is missing or unreadable.
package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// Adapter mirrors store state onto a KV backend. It holds no copy of truth:
// it is written on every mutation and read once at startup.
type Adapter struct {
	kv     ports.KV
	logger *logger.Logger
}

// NewAdapter creates a persistence adapter over the given backend.
func NewAdapter(kv ports.KV, log *logger.Logger) *Adapter {
	return &Adapter{kv: kv, logger: log.WithComponent("storage")}
}

// LoadTasks returns the persisted task collection, sanitized at the
// boundary. Missing or malformed data yields an empty collection.
func (a *Adapter) LoadTasks(ctx context.Context) []entities.Task {
	var tasks []entities.Task
	if !a.load(ctx, ports.KeyTasks, &tasks) {
		return []entities.Task{}
	}
	return sanitizeTasks(tasks)
}

// SaveTasks overwrites the persisted task collection.
func (a *Adapter) SaveTasks(ctx context.Context, tasks []entities.Task) error {
	return a.save(ctx, ports.KeyTasks, tasks)
}

// LoadProjects returns the persisted project collection.
func (a *Adapter) LoadProjects(ctx context.Context) []entities.Project {
	var projects []entities.Project
	if !a.load(ctx, ports.KeyProjects, &projects) {
		return []entities.Project{}
	}
	return sanitizeProjects(projects)
}

// SaveProjects overwrites the persisted project collection.
func (a *Adapter) SaveProjects(ctx context.Context, projects []entities.Project) error {
	return a.save(ctx, ports.KeyProjects, projects)
}

// LoadEvents returns the persisted calendar event collection.
func (a *Adapter) LoadEvents(ctx context.Context) []entities.CalendarEvent {
	var events []entities.CalendarEvent
	if !a.load(ctx, ports.KeyCalendarEvents, &events) {
		return []entities.CalendarEvent{}
	}
	return sanitizeEvents(events)
}

// SaveEvents overwrites the persisted calendar event collection.
func (a *Adapter) SaveEvents(ctx context.Context, events []entities.CalendarEvent) error {
	return a.save(ctx, ports.KeyCalendarEvents, events)
}

// DarkMode reads the boolean-as-text presentation preference. Absent or
// unparseable values default to false.
func (a *Adapter) DarkMode(ctx context.Context) bool {
	raw, ok, err := a.kv.Load(ctx, ports.KeyDarkMode)
	if err != nil || !ok {
		if err != nil {
			a.logger.LogStorageFallback(ports.KeyDarkMode, err)
		}
		return false
	}
	enabled, err := strconv.ParseBool(string(raw))
	if err != nil {
		a.logger.LogStorageFallback(ports.KeyDarkMode, err)
		return false
	}
	return enabled
}

// SetDarkMode persists the presentation preference.
func (a *Adapter) SetDarkMode(ctx context.Context, enabled bool) error {
	if err := a.kv.Save(ctx, ports.KeyDarkMode, []byte(strconv.FormatBool(enabled))); err != nil {
		return &entities.StorageError{Key: ports.KeyDarkMode, Err: err}
	}
	return nil
}

// load decodes the value under key into dest. It reports false, without an
// error, whenever the caller should fall back to the default collection.
func (a *Adapter) load(ctx context.Context, key string, dest interface{}) bool {
	raw, ok, err := a.kv.Load(ctx, key)
	if err != nil {
		a.logger.LogStorageFallback(key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		a.logger.LogStorageFallback(key, err)
		return false
	}
	return true
}

func (a *Adapter) save(ctx context.Context, key string, collection interface{}) error {
	raw, err := json.Marshal(collection)
	if err != nil {
		return &entities.StorageError{Key: key, Err: err}
	}
	if err := a.kv.Save(ctx, key, raw); err != nil {
		return &entities.StorageError{Key: key, Err: err}
	}
	return nil
}
