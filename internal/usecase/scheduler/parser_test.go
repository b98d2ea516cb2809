package scheduler

import (
	"testing"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
)

func TestParseIntent_PlainJSON(t *testing.T) {
	payload := `{"intent":"schedule","title":"Sync","new_date":"2026-09-01","new_time":"10:00","attendees":["a@example.com"],"is_sender_required":true}`
	intent, err := ParseIntent(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.Kind != entities.IntentSchedule {
		t.Fatalf("expected schedule intent, got %q", intent.Kind)
	}
	if intent.Title != "Sync" || intent.NewDate != "2026-09-01" || intent.NewTime != "10:00" {
		t.Fatalf("unexpected intent fields: %+v", intent)
	}
	if !intent.SenderRequired {
		t.Fatal("expected is_sender_required to be set")
	}
}

func TestParseIntent_FencedJSON(t *testing.T) {
	payload := "```json\n{\"intent\":\"RESCHEDULE\",\"title\":\"Sync\",\"old_date\":\"2026-09-01\",\"old_time\":\"10:00\",\"new_date\":\"2026-09-02\",\"new_time\":\"11:00\"}\n```"
	intent, err := ParseIntent(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.Kind != entities.IntentReschedule {
		t.Fatalf("expected reschedule intent, got %q", intent.Kind)
	}
	if intent.OldDate != "2026-09-01" || intent.NewTime != "11:00" {
		t.Fatalf("unexpected intent fields: %+v", intent)
	}
}

func TestParseIntent_DefaultsTitle(t *testing.T) {
	intent, err := ParseIntent(`{"intent":"schedule","new_date":"2026-09-01","new_time":"10:00"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.Title != "Meeting" {
		t.Fatalf("expected default title, got %q", intent.Title)
	}
}

func TestParseIntent_RejectsNonJSON(t *testing.T) {
	if _, err := ParseIntent("I could not determine an intent, sorry."); err == nil {
		t.Fatal("expected an error for prose output")
	}
}

func TestParseTasks_DefaultsAndForcedStatus(t *testing.T) {
	payload := `[
		{"title":"Send report","project":"","assignee":["alice"],"dueDate":"2026-09-05","status":"Done"},
		{"title":"","project":"X"},
		{"title":"Review PR","status":"In progress"}
	]`
	tasks, err := ParseTasks("msg-1", payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks (untitled entry dropped), got %d", len(tasks))
	}
	if tasks[0].Project != "General" {
		t.Fatalf("expected default project, got %q", tasks[0].Project)
	}
	for _, task := range tasks {
		if task.Status != entities.TaskStatusNotStarted {
			t.Fatalf("expected forced status, got %q", task.Status)
		}
		if task.MessageID != "msg-1" {
			t.Fatalf("expected message id stamped on task, got %q", task.MessageID)
		}
	}
}

func TestParseTasks_EmptyArray(t *testing.T) {
	tasks, err := ParseTasks("msg-1", "```json\n[]\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}

func TestParseTasks_RejectsNonArray(t *testing.T) {
	if _, err := ParseTasks("msg-1", `{"title":"x"}`); err == nil {
		t.Fatal("expected an error for a non-array payload")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      `{"a":1}`,
		"```json\n{\"a\":1}\n```":        `{"a":1}`,
		"```\n{\"a\":1}\n```":            `{"a":1}`,
		"  \n```json\n{\"a\":1}\n```\n ": `{"a":1}`,
	}
	for in, want := range cases {
		if got := extractJSON(in); got != want {
			t.Fatalf("extractJSON(%q): expected %q, got %q", in, want, got)
		}
	}
}
