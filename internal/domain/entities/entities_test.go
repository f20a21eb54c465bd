package entities

import (
	"testing"
	"time"
)

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"due yesterday", Task{DueDate: now.AddDate(0, 0, -1)}, true},
		{"due earlier today", Task{DueDate: now.Add(-3 * time.Hour)}, false},
		{"due later today", Task{DueDate: now.Add(3 * time.Hour)}, false},
		{"due tomorrow", Task{DueDate: now.AddDate(0, 0, 1)}, false},
		{"no due date", Task{}, false},
		{"completed and past due", Task{Completed: true, DueDate: now.AddDate(0, 0, -5)}, false},
		{"due last midnight", Task{DueDate: StartOfDay(now).Add(-time.Second)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.task.IsOverdue(now); got != tc.want {
				t.Errorf("IsOverdue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityLow.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityHigh.Rank()) {
		t.Error("priority ranks out of order")
	}
	if Priority("bogus").Rank() != PriorityLow.Rank() {
		t.Error("unknown priority should rank lowest")
	}
}

func TestPriorityIsValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.IsValid() {
			t.Errorf("%q should be valid", p)
		}
	}
	for _, p := range []Priority{"", "urgent", "LOW"} {
		if p.IsValid() {
			t.Errorf("%q should be invalid", p)
		}
	}
}

func TestDeletePolicyIsValid(t *testing.T) {
	if !CascadeTasks.IsValid() || !DetachTasks.IsValid() {
		t.Error("named policies should be valid")
	}
	if DeletePolicy("").IsValid() || DeletePolicy("orphan").IsValid() {
		t.Error("unknown policies should be invalid")
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]string{
		"":          DefaultCategory,
		"   ":       DefaultCategory,
		"Work":      "Work",
		"  Work  ":  "Work",
		"deep work": "deep work",
	}
	for in, want := range cases {
		if got := NormalizeCategory(in); got != want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.March, 15, 0, 0, 1, 0, time.UTC)
	b := time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC)
	c := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("same calendar day not recognized")
	}
	if SameDay(b, c) {
		t.Error("one second across midnight is a different day")
	}
}

func TestEventIsMultiDay(t *testing.T) {
	start := time.Date(2024, time.March, 15, 22, 0, 0, 0, time.UTC)

	sameDay := CalendarEvent{Start: start, End: start.Add(time.Hour)}
	if sameDay.IsMultiDay() {
		t.Error("one-hour evening event is not multi-day")
	}

	overnight := CalendarEvent{Start: start, End: start.Add(3 * time.Hour)}
	if !overnight.IsMultiDay() {
		t.Error("event crossing midnight is multi-day")
	}
}
