package ports

import "context"

// Persisted keys. Each collection lives under its own key; there is no
// cross-key atomicity.
const (
	KeyTasks          = "tasks"
	KeyProjects       = "projects"
	KeyCalendarEvents = "calendarEvents"
	KeyDarkMode       = "darkMode"
)

// KV is a durable key-value backend holding serialized collections. Load
// returns ok=false when the key has never been written. Save overwrites the
// prior value unconditionally (last-writer-wins, no merge).
type KV interface {
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}
