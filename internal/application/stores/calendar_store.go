package stores

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/core/internal/adapters/storage"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// CreateEventInput carries the fields accepted when adding a calendar event.
type CreateEventInput struct {
	Title       string
	Start       time.Time
	End         time.Time
	Description string
	Color       string
}

// UpdateEventInput replaces an event's fields, preserving its id.
type UpdateEventInput = CreateEventInput

// CalendarStore owns the calendar event collection.
type CalendarStore struct {
	mu       sync.RWMutex
	events   []entities.CalendarEvent
	adapter  *storage.Adapter
	notifier ports.Notifier
	logger   *logger.Logger
}

// NewCalendarStore loads the persisted collection and returns a store owning it.
func NewCalendarStore(ctx context.Context, adapter *storage.Adapter, notifier ports.Notifier, log *logger.Logger) *CalendarStore {
	return &CalendarStore{
		events:   adapter.LoadEvents(ctx),
		adapter:  adapter,
		notifier: notifier,
		logger:   log.WithComponent("calendar"),
	}
}

// Add validates and appends a new event.
func (s *CalendarStore) Add(ctx context.Context, in CreateEventInput) (entities.CalendarEvent, error) {
	normalized, err := validateEventInput(in)
	if err != nil {
		return entities.CalendarEvent{}, err
	}
	if normalized.Color == "" {
		normalized.Color = entities.DefaultEventColor
	}

	event := entities.CalendarEvent{
		ID:          uuid.NewString(),
		Title:       normalized.Title,
		Start:       normalized.Start,
		End:         normalized.End,
		Description: normalized.Description,
		Color:       normalized.Color,
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()

	s.logger.LogMutation("calendarEvents", "add", event.ID)
	s.notifier.Success("Event created successfully")
	return event, s.persist(ctx)
}

// Update replaces the fields of the event with the given id.
func (s *CalendarStore) Update(ctx context.Context, id string, in UpdateEventInput) (entities.CalendarEvent, error) {
	normalized, err := validateEventInput(in)
	if err != nil {
		return entities.CalendarEvent{}, err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return entities.CalendarEvent{}, &entities.NotFoundError{Entity: "event", ID: id}
	}
	event := s.events[i]
	event.Title = normalized.Title
	event.Start = normalized.Start
	event.End = normalized.End
	event.Description = normalized.Description
	if normalized.Color != "" {
		event.Color = normalized.Color
	}
	s.events[i] = event
	s.mu.Unlock()

	s.logger.LogMutation("calendarEvents", "update", id)
	s.notifier.Success("Event updated successfully")
	return event, s.persist(ctx)
}

// Delete removes the event with the given id.
func (s *CalendarStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return &entities.NotFoundError{Entity: "event", ID: id}
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	s.mu.Unlock()

	s.logger.LogMutation("calendarEvents", "delete", id)
	s.notifier.Success("Event deleted successfully")
	return s.persist(ctx)
}

// Get returns the event with the given id.
func (s *CalendarStore) Get(id string) (entities.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return entities.CalendarEvent{}, &entities.NotFoundError{Entity: "event", ID: id}
	}
	return s.events[i], nil
}

// All returns a snapshot copy of the collection in stored order.
func (s *CalendarStore) All() []entities.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.CalendarEvent, len(s.events))
	copy(out, s.events)
	return out
}

// EventsInRange returns events whose start falls inside the inclusive
// day window [from, to]. Times of day on the bounds are ignored.
func (s *CalendarStore) EventsInRange(from, to time.Time) []entities.CalendarEvent {
	first := entities.StartOfDay(from)
	last := entities.StartOfDay(to)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.CalendarEvent
	for _, e := range s.events {
		day := entities.StartOfDay(e.Start)
		if day.Before(first) || day.After(last) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// EventsOnDay returns events whose start falls on the given calendar day.
func (s *CalendarStore) EventsOnDay(date time.Time) []entities.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.CalendarEvent
	for _, e := range s.events {
		if entities.SameDay(e.Start, date) {
			out = append(out, e)
		}
	}
	return out
}

// EventsInMonthView returns the events visible on the month grid containing
// the given date, including the leading and trailing days of adjacent months.
func (s *CalendarStore) EventsInMonthView(month time.Time) []entities.CalendarEvent {
	grid := MonthGrid(month)
	return s.EventsInRange(grid[0], grid[len(grid)-1])
}

// MonthGrid returns the day sequence for a month view: from the Sunday at or
// before the first of the month through the Saturday at or after its last
// day. The result is always a whole number of weeks.
func MonthGrid(month time.Time) []time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	last := first.AddDate(0, 1, -1)

	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	gridEnd := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var days []time.Time
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

func (s *CalendarStore) persist(ctx context.Context) error {
	if err := s.adapter.SaveEvents(ctx, s.All()); err != nil {
		s.logger.WithError(err).Warn("Event collection not persisted; in-memory state kept")
		s.notifier.Warn("Changes kept in memory only: storage write failed")
		return err
	}
	return nil
}

func (s *CalendarStore) indexOf(id string) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

// validateEventInput trims and checks an event payload, naming the offending
// field in the returned error.
func validateEventInput(in CreateEventInput) (CreateEventInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if in.Title == "" {
		return in, entities.NewValidationError("title", "cannot be empty")
	}
	if in.Start.IsZero() {
		return in, entities.NewValidationError("start", "is required")
	}
	if in.End.IsZero() {
		return in, entities.NewValidationError("end", "is required")
	}
	if in.End.Before(in.Start) {
		return in, entities.NewValidationError("end", "must not be before start")
	}
	return in, nil
}
