// Package commands wires the CLI. Each command builds the application from
// the composition root in newApp: configuration, logger, storage backend,
// persistence adapter, then the three stores with their dependencies
// injected. Nothing here is a singleton.
package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/taskflow/core/internal/adapters/notify"
	"github.com/taskflow/core/internal/adapters/storage"
	"github.com/taskflow/core/internal/application/stores"
	"github.com/taskflow/core/internal/infrastructure/config"
	"github.com/taskflow/core/internal/infrastructure/database"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB
	kv       ports.KV
	adapter  *storage.Adapter
	tasks    *stores.TaskStore
	projects *stores.ProjectStore
	events   *stores.CalendarStore
	darkMode bool
}

// newApp builds the full application for one command invocation.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, log: log}
	if err := a.openKV(cfg); err != nil {
		log.Close()
		return nil, err
	}

	notifier := notify.NewWriter(os.Stdout)
	a.adapter = storage.NewAdapter(a.kv, log)
	a.tasks = stores.NewTaskStore(ctx, a.adapter, notifier, log)
	a.projects = stores.NewProjectStore(ctx, a.adapter, a.tasks, notifier, log)
	a.events = stores.NewCalendarStore(ctx, a.adapter, notifier, log)
	a.darkMode = a.adapter.DarkMode(ctx)
	return a, nil
}

func (a *app) openKV(cfg *config.Config) error {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		kv, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return err
		}
		a.kv = kv
	case config.BackendPostgres:
		db, err := database.New(cfg.Database)
		if err != nil {
			return err
		}
		a.db = db
		a.kv = storage.NewPGStore(db.DB)
	case config.BackendRedis:
		kv, err := storage.NewRedisStore(cfg.Redis)
		if err != nil {
			return err
		}
		a.kv = kv
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return nil
}

func (a *app) Close() {
	if a.kv != nil {
		a.kv.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.log != nil {
		a.log.Close()
	}
}

// parseDay reads a YYYY-MM-DD argument.
func parseDay(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}

// parseStamp reads a timestamp argument, accepting a bare day or a
// day-and-time form.
func parseStamp(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (want YYYY-MM-DD or YYYY-MM-DD HH:MM)", value)
}
