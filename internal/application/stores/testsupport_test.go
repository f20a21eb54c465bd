package stores

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/taskflow/core/internal/adapters/storage"
	"github.com/taskflow/core/internal/infrastructure/logger"
)

// memKV is an in-memory key-value store with optional write failure
// injection, standing in for the real backends in tests.
type memKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	failPut bool
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (kv *memKV) Load(ctx context.Context, key string) ([]byte, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	raw, ok := kv.data[key]
	return raw, ok, nil
}

func (kv *memKV) Save(ctx context.Context, key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.failPut {
		return errors.New("disk full")
	}
	kv.data[key] = value
	return nil
}

func (kv *memKV) Close() error { return nil }

// recorder captures notifications for assertions.
type recorder struct {
	successes []string
	infos     []string
	warns     []string
}

func (r *recorder) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recorder) Info(msg string)    { r.infos = append(r.infos, msg) }
func (r *recorder) Warn(msg string)    { r.warns = append(r.warns, msg) }

func (r *recorder) lastSuccess() string {
	if len(r.successes) == 0 {
		return ""
	}
	return r.successes[len(r.successes)-1]
}

type fixture struct {
	kv       *memKV
	notes    *recorder
	tasks    *TaskStore
	projects *ProjectStore
	events   *CalendarStore
}

// newFixture wires the three stores over an in-memory backend with a fixed
// clock so overdue and ordering assertions are deterministic.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOver(t, newMemKV())
}

// newFixtureOver builds the stores on top of an existing backend, simulating
// a fresh session over previously persisted state.
func newFixtureOver(t *testing.T, kv *memKV) *fixture {
	t.Helper()

	ctx := context.Background()
	notes := &recorder{}
	log := logger.NewNop()
	adapter := storage.NewAdapter(kv, log)

	tasks := NewTaskStore(ctx, adapter, notes, log)
	tasks.now = fixedClock()
	projects := NewProjectStore(ctx, adapter, tasks, notes, log)
	projects.now = fixedClock()
	events := NewCalendarStore(ctx, adapter, notes, log)

	return &fixture{kv: kv, notes: notes, tasks: tasks, projects: projects, events: events}
}

// fixedClock returns a clock that advances one second per call, starting at a
// known instant. Successive Adds therefore get distinct creation times.
func fixedClock() func() time.Time {
	base := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
