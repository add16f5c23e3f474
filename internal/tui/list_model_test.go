package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/listr/internal/db"
	"github.com/balkashynov/listr/internal/history"
	"github.com/balkashynov/listr/internal/models"
)

func setupBrowser(t *testing.T, texts ...string) (ListModel, *history.Controller) {
	t.Helper()

	now := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Minute)
		return now
	}

	store, err := db.Open(filepath.Join(t.TempDir(), "listr.db"), db.WithClock(clock))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	c := history.NewController(store)
	for _, text := range texts {
		if _, err := c.Create(db.CreateTaskRequest{Text: text}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	return NewListModel(c), c
}

func press(t *testing.T, m ListModel, keys ...string) ListModel {
	t.Helper()
	for _, key := range keys {
		var msg tea.KeyMsg
		switch key {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		next, _ := m.Update(msg)
		m = next.(ListModel)
	}
	return m
}

func TestListModel_ToggleDoneAndUndo(t *testing.T) {
	m, c := setupBrowser(t, "only task")

	m = press(t, m, "d")
	task, err := c.Read(1)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if task.Status != models.StatusDone {
		t.Fatalf("status = %s, want Done", task.Status)
	}

	m = press(t, m, "u")
	task, _ = c.Read(1)
	if task.Status != models.StatusUndone {
		t.Errorf("status after undo = %s, want Undone", task.Status)
	}
	if m.failed {
		t.Errorf("unexpected failure: %s", m.message)
	}
}

func TestListModel_DeleteAndRedo(t *testing.T) {
	m, c := setupBrowser(t, "first", "second")

	// newest first, so the cursor starts on "second"
	m = press(t, m, "x")
	if len(m.tasks) != 1 || m.tasks[0].Text != "first" {
		t.Fatalf("unexpected tasks after delete: %+v", m.tasks)
	}

	m = press(t, m, "u")
	if len(m.tasks) != 2 {
		t.Fatalf("expected task restored, got %+v", m.tasks)
	}

	m = press(t, m, "r")
	tasks, _ := c.ReadAll()
	if len(tasks) != 1 {
		t.Errorf("expected redo to delete again, got %+v", tasks)
	}
}

func TestListModel_NothingToUndo(t *testing.T) {
	m, _ := setupBrowser(t)

	m = press(t, m, "u")
	if m.failed || m.message != "Nothing to undo" {
		t.Errorf("message = %q failed=%v", m.message, m.failed)
	}
}

func TestListModel_AddAndSearch(t *testing.T) {
	m, c := setupBrowser(t, "walk the dog")

	m = press(t, m, "n", "Buy milk #errands", "enter")
	tasks, _ := c.ReadAll()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %+v", tasks)
	}
	if tasks[1].Tag == nil || *tasks[1].Tag != "errands" || tasks[1].Text != "Buy milk" {
		t.Errorf("unexpected created task %+v", tasks[1])
	}

	m = press(t, m, "/", "DOG", "enter")
	if len(m.tasks) != 1 || m.tasks[0].Text != "walk the dog" {
		t.Fatalf("unexpected search result %+v", m.tasks)
	}

	m = press(t, m, "esc")
	if len(m.tasks) != 2 {
		t.Errorf("expected esc to clear search, got %+v", m.tasks)
	}
}

func TestListModel_ArchiveToggle(t *testing.T) {
	m, c := setupBrowser(t, "shelve me")

	m = press(t, m, "a")
	task, _ := c.Read(1)
	if task.Status != models.StatusArchived {
		t.Fatalf("status = %s, want Archived", task.Status)
	}

	press(t, m, "a")
	task, _ = c.Read(1)
	if task.Status != models.StatusUndone {
		t.Errorf("status = %s, want Undone", task.Status)
	}
}

func TestListModel_View(t *testing.T) {
	m, _ := setupBrowser(t, "render me")

	view := m.View()
	for _, want := range []string{"Tasks", "render me", "u undo"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
