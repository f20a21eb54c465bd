package stores

import (
	"context"
	"testing"
	"time"

	"github.com/taskflow/core/internal/domain/entities"
)

func TestTaskStoreAdd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	task, err := f.tasks.Add(ctx, CreateTaskInput{Title: "  Write report  "})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if task.Title != "Write report" {
		t.Errorf("title = %q, want trimmed %q", task.Title, "Write report")
	}
	if task.Priority != entities.PriorityMedium {
		t.Errorf("priority = %q, want default medium", task.Priority)
	}
	if task.Category != entities.DefaultCategory {
		t.Errorf("category = %q, want %q", task.Category, entities.DefaultCategory)
	}
	if task.ID == "" {
		t.Error("expected a generated id")
	}
	if task.Completed {
		t.Error("new task must start incomplete")
	}
	if f.notes.lastSuccess() != "Task added successfully!" {
		t.Errorf("notification = %q", f.notes.lastSuccess())
	}
}

func TestTaskStoreAddRejectsBlankTitle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := f.tasks.Add(ctx, CreateTaskInput{Title: title}); !entities.IsValidation(err) {
			t.Errorf("Add(%q): err = %v, want validation error", title, err)
		}
	}
	if f.tasks.Len() != 0 {
		t.Errorf("collection grew to %d after rejected adds", f.tasks.Len())
	}
	if len(f.notes.successes) != 0 {
		t.Errorf("unexpected notifications %v", f.notes.successes)
	}
}

func TestTaskStoreAddPrepends(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, title := range []string{"first", "second", "third"} {
		if _, err := f.tasks.Add(ctx, CreateTaskInput{Title: title}); err != nil {
			t.Fatalf("Add(%q): %v", title, err)
		}
	}

	all := f.tasks.All()
	want := []string{"third", "second", "first"}
	for i, title := range want {
		if all[i].Title != title {
			t.Errorf("all[%d] = %q, want %q", i, all[i].Title, title)
		}
	}
}

func TestTaskStoreUpdatePreservesIdentity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	task, err := f.tasks.Add(ctx, CreateTaskInput{Title: "draft", Category: "Work"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := f.tasks.ToggleComplete(ctx, task.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}

	updated, err := f.tasks.Update(ctx, task.ID, UpdateTaskInput{Title: "final", Priority: entities.PriorityHigh})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != task.ID {
		t.Errorf("id changed: %q -> %q", task.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Errorf("createdAt changed: %v -> %v", task.CreatedAt, updated.CreatedAt)
	}
	if !updated.Completed {
		t.Error("update must not reset completion state")
	}
	if updated.Title != "final" || updated.Priority != entities.PriorityHigh {
		t.Errorf("fields not replaced: %+v", updated)
	}
	if updated.Category != entities.DefaultCategory {
		t.Errorf("blank category = %q, want %q", updated.Category, entities.DefaultCategory)
	}
}

func TestTaskStoreUpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.tasks.Update(ctx, "nope", UpdateTaskInput{Title: "x"}); !entities.IsNotFound(err) {
		t.Errorf("err = %v, want not-found", err)
	}
}

func TestTaskStoreDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	task, _ := f.tasks.Add(ctx, CreateTaskInput{Title: "temp"})
	if err := f.tasks.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if f.tasks.Len() != 0 {
		t.Errorf("len = %d after delete", f.tasks.Len())
	}
	if len(f.notes.infos) == 0 || f.notes.infos[len(f.notes.infos)-1] != "Task deleted" {
		t.Errorf("infos = %v", f.notes.infos)
	}

	if err := f.tasks.Delete(ctx, task.ID); !entities.IsNotFound(err) {
		t.Errorf("second delete err = %v, want not-found", err)
	}
}

func TestTaskStoreToggleComplete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	task, _ := f.tasks.Add(ctx, CreateTaskInput{Title: "flip me"})

	done, err := f.tasks.ToggleComplete(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if !done.Completed {
		t.Error("first toggle should complete the task")
	}
	if f.notes.lastSuccess() != "Nice job! Task completed." {
		t.Errorf("notification = %q", f.notes.lastSuccess())
	}

	before := len(f.notes.successes)
	undone, err := f.tasks.ToggleComplete(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if undone.Completed {
		t.Error("second toggle should reopen the task")
	}
	if len(f.notes.successes) != before {
		t.Error("reopening a task must not notify")
	}
}

func TestTaskStoreQueryStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a, _ := f.tasks.Add(ctx, CreateTaskInput{Title: "open one"})
	b, _ := f.tasks.Add(ctx, CreateTaskInput{Title: "done one"})
	f.tasks.ToggleComplete(ctx, b.ID)

	q := DefaultTaskQuery()

	q.Status = FilterActive
	active := f.tasks.Query(q)
	if len(active) != 1 || active[0].ID != a.ID {
		t.Errorf("active = %v", titles(active))
	}

	q.Status = FilterCompleted
	completed := f.tasks.Query(q)
	if len(completed) != 1 || completed[0].ID != b.ID {
		t.Errorf("completed = %v", titles(completed))
	}

	q.Status = FilterAll
	if got := len(f.tasks.Query(q)); got != 2 {
		t.Errorf("all = %d, want 2", got)
	}
}

func TestTaskStoreQueryCategoryAndProject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.tasks.Add(ctx, CreateTaskInput{Title: "w1", Category: "Work", ProjectID: "p1"})
	f.tasks.Add(ctx, CreateTaskInput{Title: "w2", Category: "Work"})
	f.tasks.Add(ctx, CreateTaskInput{Title: "h1", Category: "Home", ProjectID: "p2"})

	q := DefaultTaskQuery()
	q.Category = "Work"
	if got := titles(f.tasks.Query(q)); len(got) != 2 {
		t.Errorf("Work = %v", got)
	}

	q = DefaultTaskQuery()
	q.Project = "p1"
	if got := titles(f.tasks.Query(q)); len(got) != 1 || got[0] != "w1" {
		t.Errorf("p1 = %v", got)
	}

	// The zero value selects unassigned tasks only.
	q = DefaultTaskQuery()
	q.Project = ProjectFilterNone
	if got := titles(f.tasks.Query(q)); len(got) != 1 || got[0] != "w2" {
		t.Errorf("unassigned = %v", got)
	}

	// Filters stack.
	q = DefaultTaskQuery()
	q.Category = "Work"
	q.Project = "p2"
	if got := titles(f.tasks.Query(q)); len(got) != 0 {
		t.Errorf("Work+p2 = %v, want none", got)
	}
}

func TestTaskStoreQueryFilterSentinels(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.tasks.Add(ctx, CreateTaskInput{Title: "w", Category: "Work", ProjectID: "p1"})
	f.tasks.Add(ctx, CreateTaskInput{Title: "h", Category: "Home"})
	f.tasks.Add(ctx, CreateTaskInput{Title: "u"})

	// The default query matches every task regardless of category or project.
	if got := f.tasks.Query(DefaultTaskQuery()); len(got) != 3 {
		t.Errorf("default query = %v, want all 3", titles(got))
	}

	q := DefaultTaskQuery()
	q.Category = CategoryFilterAll
	q.Project = ProjectFilterAll
	if got := f.tasks.Query(q); len(got) != 3 {
		t.Errorf("explicit 'all' sentinels = %v, want all 3", titles(got))
	}

	// A category literally named "all" is unreachable as an equality filter;
	// the sentinel always bypasses.
	f.tasks.Add(ctx, CreateTaskInput{Title: "odd", Category: "all"})
	q = DefaultTaskQuery()
	q.Category = CategoryFilterAll
	if got := f.tasks.Query(q); len(got) != 4 {
		t.Errorf("sentinel with literal category = %v, want all 4", titles(got))
	}
}

func TestTaskStoreQuerySorting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	day := func(d int) time.Time {
		return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
	}
	f.tasks.Add(ctx, CreateTaskInput{Title: "banana", DueDate: day(20), Priority: entities.PriorityLow})
	f.tasks.Add(ctx, CreateTaskInput{Title: "apple", DueDate: day(10), Priority: entities.PriorityHigh})
	f.tasks.Add(ctx, CreateTaskInput{Title: "cherry", DueDate: day(15), Priority: entities.PriorityMedium})

	cases := []struct {
		name string
		key  SortKey
		ord  SortOrder
		want []string
	}{
		{"title asc", SortByTitle, Ascending, []string{"apple", "banana", "cherry"}},
		{"title desc", SortByTitle, Descending, []string{"cherry", "banana", "apple"}},
		{"due asc", SortByDueDate, Ascending, []string{"apple", "cherry", "banana"}},
		{"due desc", SortByDueDate, Descending, []string{"banana", "cherry", "apple"}},
		{"priority asc", SortByPriority, Ascending, []string{"banana", "cherry", "apple"}},
		{"priority desc", SortByPriority, Descending, []string{"apple", "cherry", "banana"}},
		{"created desc", SortByCreatedAt, Descending, []string{"cherry", "apple", "banana"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := DefaultTaskQuery()
			q.SortBy = tc.key
			q.Order = tc.ord
			got := titles(f.tasks.Query(q))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestTaskStoreStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	yesterday := testNow.AddDate(0, 0, -1)
	tomorrow := testNow.AddDate(0, 0, 1)

	f.tasks.Add(ctx, CreateTaskInput{Title: "late", DueDate: yesterday})
	f.tasks.Add(ctx, CreateTaskInput{Title: "ahead", DueDate: tomorrow})
	done, _ := f.tasks.Add(ctx, CreateTaskInput{Title: "finished", DueDate: yesterday})
	f.tasks.ToggleComplete(ctx, done.ID)

	stats := f.tasks.Stats()
	if stats.Total != 3 || stats.Active != 2 || stats.Completed != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Overdue != 1 {
		t.Errorf("overdue = %d, want 1 (completed tasks are never overdue)", stats.Overdue)
	}
	if stats.Completion != 33 {
		t.Errorf("completion = %d, want 33", stats.Completion)
	}
}

func TestTaskStoreStatsEmpty(t *testing.T) {
	f := newFixture(t)
	stats := f.tasks.Stats()
	if stats.Total != 0 || stats.Completion != 0 {
		t.Errorf("stats = %+v, want zeroes", stats)
	}
}

func TestTaskStoreCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.tasks.Add(ctx, CreateTaskInput{Title: "a", Category: "Work"})
	f.tasks.Add(ctx, CreateTaskInput{Title: "b", Category: "Home"})
	f.tasks.Add(ctx, CreateTaskInput{Title: "c", Category: "Work"})
	f.tasks.Add(ctx, CreateTaskInput{Title: "d"})

	got := f.tasks.Categories()
	want := []string{entities.DefaultCategory, "Work", "Home"}
	if len(got) != len(want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("categories = %v, want %v", got, want)
		}
	}
}

func TestTaskStorePersistFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.kv.failPut = true
	task, err := f.tasks.Add(ctx, CreateTaskInput{Title: "stranded"})
	if !entities.IsStorage(err) {
		t.Fatalf("err = %v, want storage error", err)
	}
	if _, getErr := f.tasks.Get(task.ID); getErr != nil {
		t.Errorf("task lost after failed persist: %v", getErr)
	}
	if len(f.notes.warns) == 0 {
		t.Error("expected a warning notification")
	}

	// Recovery: the next successful mutation persists the whole collection.
	f.kv.failPut = false
	if _, err := f.tasks.Add(ctx, CreateTaskInput{Title: "saved"}); err != nil {
		t.Fatalf("Add after recovery: %v", err)
	}
	if _, ok := f.kv.data["tasks"]; !ok {
		t.Error("tasks key missing after recovery")
	}
}

func TestTaskStoreReload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.tasks.Add(ctx, CreateTaskInput{Title: "survives", Category: "Work"})

	reloaded := newFixtureOver(t, f.kv)
	if reloaded.tasks.Len() != 1 {
		t.Fatalf("reloaded len = %d", reloaded.tasks.Len())
	}
	got := reloaded.tasks.All()[0]
	if got.Title != "survives" || got.Category != "Work" {
		t.Errorf("reloaded task = %+v", got)
	}
}

func titles(tasks []entities.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}
