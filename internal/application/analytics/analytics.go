// Package analytics derives chart series from snapshots of the entity
// collections. Every function is pure: the series are recomputed on demand
// and never cached where they could drift from the source collections.
package analytics

import (
	"math"
	"time"

	"github.com/taskflow/core/internal/domain/entities"
)

// DailyActivity is one point of the activity chart.
type DailyActivity struct {
	Day     time.Time `json:"day"`
	Created int       `json:"created"`
}

// StatusBreakdown feeds the task status donut chart. Overdue tasks are also
// counted as active; the three buckets are not disjoint by design of the
// chart.
type StatusBreakdown struct {
	Completed int `json:"completed"`
	Active    int `json:"active"`
	Overdue   int `json:"overdue"`
}

// ProjectProgress is one row of the per-project progress chart.
type ProjectProgress struct {
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Completed int    `json:"tasksCompleted"`
	Pending   int    `json:"tasksPending"`
	Progress  int    `json:"progress"` // percentage, 0 when the project has no tasks
}

// ActivitySeries counts tasks created per calendar day over the trailing
// window of the given length, ending today. The slice is ordered oldest
// first and always has exactly days entries.
func ActivitySeries(tasks []entities.Task, days int, now time.Time) []DailyActivity {
	if days <= 0 {
		return nil
	}

	today := entities.StartOfDay(now)
	series := make([]DailyActivity, days)
	index := make(map[time.Time]int, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i-days+1)
		series[i] = DailyActivity{Day: day}
		index[day] = i
	}

	for _, t := range tasks {
		if i, ok := index[entities.StartOfDay(t.CreatedAt)]; ok {
			series[i].Created++
		}
	}
	return series
}

// StatusSeries buckets the collection into completed, active, and overdue.
func StatusSeries(tasks []entities.Task, now time.Time) StatusBreakdown {
	var b StatusBreakdown
	for i := range tasks {
		t := &tasks[i]
		if t.Completed {
			b.Completed++
			continue
		}
		b.Active++
		if t.IsOverdue(now) {
			b.Overdue++
		}
	}
	return b
}

// ProjectSeries computes per-project completion rows in project order.
// Unassigned tasks contribute to no row.
func ProjectSeries(projects []entities.Project, tasks []entities.Task) []ProjectProgress {
	rows := make([]ProjectProgress, len(projects))
	index := make(map[string]int, len(projects))
	for i, p := range projects {
		rows[i] = ProjectProgress{ProjectID: p.ID, Name: p.Name}
		index[p.ID] = i
	}

	for _, t := range tasks {
		i, ok := index[t.ProjectID]
		if !ok {
			continue
		}
		if t.Completed {
			rows[i].Completed++
		} else {
			rows[i].Pending++
		}
	}

	for i := range rows {
		total := rows[i].Completed + rows[i].Pending
		if total > 0 {
			rows[i].Progress = int(math.Round(float64(rows[i].Completed) / float64(total) * 100))
		}
	}
	return rows
}
