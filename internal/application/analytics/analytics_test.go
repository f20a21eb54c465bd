package analytics

import (
	"testing"
	"time"

	"github.com/taskflow/core/internal/domain/entities"
)

var now = time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)

func taskCreated(d time.Time) entities.Task {
	return entities.Task{ID: "t", Title: "t", CreatedAt: d}
}

func TestActivitySeries(t *testing.T) {
	tasks := []entities.Task{
		taskCreated(now),                                  // today
		taskCreated(now.Add(-2 * time.Hour)),              // today again
		taskCreated(now.AddDate(0, 0, -1)),                // yesterday
		taskCreated(now.AddDate(0, 0, -6)),                // oldest day in window
		taskCreated(now.AddDate(0, 0, -7)),                // outside the window
		taskCreated(now.AddDate(0, 0, 1)),                 // future, outside
	}

	series := ActivitySeries(tasks, 7, now)
	if len(series) != 7 {
		t.Fatalf("len = %d, want 7", len(series))
	}

	first := entities.StartOfDay(now.AddDate(0, 0, -6))
	if !series[0].Day.Equal(first) {
		t.Errorf("series[0].Day = %v, want %v", series[0].Day, first)
	}
	last := entities.StartOfDay(now)
	if !series[6].Day.Equal(last) {
		t.Errorf("series[6].Day = %v, want %v", series[6].Day, last)
	}

	want := []int{1, 0, 0, 0, 0, 1, 2}
	for i, n := range want {
		if series[i].Created != n {
			t.Errorf("series[%d].Created = %d, want %d", i, series[i].Created, n)
		}
	}
}

func TestActivitySeriesDegenerateWindow(t *testing.T) {
	if got := ActivitySeries(nil, 0, now); got != nil {
		t.Errorf("zero-day window = %v, want nil", got)
	}
	if got := ActivitySeries(nil, -3, now); got != nil {
		t.Errorf("negative window = %v, want nil", got)
	}
}

func TestStatusSeries(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tasks := []entities.Task{
		{ID: "a", Title: "a", Completed: true, DueDate: yesterday},
		{ID: "b", Title: "b", DueDate: yesterday},
		{ID: "c", Title: "c", DueDate: tomorrow},
		{ID: "d", Title: "d"},
	}

	b := StatusSeries(tasks, now)
	if b.Completed != 1 {
		t.Errorf("completed = %d", b.Completed)
	}
	if b.Active != 3 {
		t.Errorf("active = %d", b.Active)
	}
	// Overdue tasks also count as active; a completed overdue task counts as
	// neither.
	if b.Overdue != 1 {
		t.Errorf("overdue = %d", b.Overdue)
	}
}

func TestProjectSeries(t *testing.T) {
	projects := []entities.Project{
		{ID: "p1", Name: "Alpha"},
		{ID: "p2", Name: "Beta"},
	}
	tasks := []entities.Task{
		{ID: "1", Title: "1", ProjectID: "p1", Completed: true},
		{ID: "2", Title: "2", ProjectID: "p1", Completed: true},
		{ID: "3", Title: "3", ProjectID: "p1"},
		{ID: "4", Title: "4"}, // unassigned, no row
	}

	rows := ProjectSeries(projects, tasks)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want one per project", len(rows))
	}

	alpha := rows[0]
	if alpha.Name != "Alpha" || alpha.Completed != 2 || alpha.Pending != 1 {
		t.Errorf("alpha = %+v", alpha)
	}
	if alpha.Progress != 67 {
		t.Errorf("alpha progress = %d, want 67", alpha.Progress)
	}

	beta := rows[1]
	if beta.Completed != 0 || beta.Pending != 0 || beta.Progress != 0 {
		t.Errorf("beta = %+v, want empty row", beta)
	}
}
