package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/balkashynov/listr/internal/db"
	"github.com/balkashynov/listr/internal/models"
)

func testClock() func() time.Time {
	t := time.Date(2025, time.January, 2, 9, 30, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func setupController(t *testing.T, opts ...Option) (*Controller, *db.Store) {
	t.Helper()

	store, err := db.Open(filepath.Join(t.TempDir(), "listr.db"), db.WithClock(testClock()))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewController(store, opts...), store
}

func mustCreate(t *testing.T, c *Controller, text string) *models.Task {
	t.Helper()
	task, err := c.Create(db.CreateTaskRequest{Text: text})
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", text, err)
	}
	return task
}

func mustUndo(t *testing.T, c *Controller) Step {
	t.Helper()
	step, ok, err := c.Undo()
	if err != nil || !ok {
		t.Fatalf("Undo: ok=%v err=%v", ok, err)
	}
	return step
}

func mustRedo(t *testing.T, c *Controller) Step {
	t.Helper()
	step, ok, err := c.Redo()
	if err != nil || !ok {
		t.Fatalf("Redo: ok=%v err=%v", ok, err)
	}
	return step
}

func readAll(t *testing.T, c *Controller) []models.Task {
	t.Helper()
	tasks, err := c.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	return tasks
}

func assertTasks(t *testing.T, got, want []models.Task) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d\ngot:  %+v\nwant: %+v", len(got), len(want), got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("task %d:\ngot:  %+v\nwant: %+v", i, got[i], want[i])
		}
	}
}

func TestUndoRedo_EmptyLogs(t *testing.T) {
	c, _ := setupController(t)

	if _, ok, err := c.Undo(); ok || err != nil {
		t.Errorf("Undo on empty log: ok=%v err=%v", ok, err)
	}
	if _, ok, err := c.Redo(); ok || err != nil {
		t.Errorf("Redo on empty log: ok=%v err=%v", ok, err)
	}
}

func TestCreateThenUndo(t *testing.T) {
	c, _ := setupController(t)

	mustCreate(t, c, "Buy milk")
	step := mustUndo(t, c)

	if step.Applied.Kind() != KindRemove || step.Task != nil {
		t.Errorf("unexpected step %+v", step)
	}
	if tasks := readAll(t, c); len(tasks) != 0 {
		t.Errorf("expected empty task list, got %+v", tasks)
	}
}

func TestDeleteThenUndo(t *testing.T) {
	c, _ := setupController(t)

	original := mustCreate(t, c, "X")
	if _, err := c.Delete(original.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	step := mustUndo(t, c)
	if step.Applied.Kind() != KindRecreate {
		t.Errorf("applied %s, want recreate", step.Applied.Kind())
	}

	got, err := c.Read(original.ID)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !got.Equal(*original) {
		t.Errorf("got %+v, want %+v", got, original)
	}
}

func TestUpdateThenUndo(t *testing.T) {
	c, _ := setupController(t)

	tag := "shop"
	original, err := c.Create(db.CreateTaskRequest{Text: "X", Tag: &tag})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := c.Modify(original.ID, func(f *models.TaskFields) { f.Text = "Y" }); err != nil {
		t.Fatalf("Modify failed: %v", err)
	}

	mustUndo(t, c)

	got, err := c.Read(original.ID)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !got.Equal(*original) {
		t.Errorf("got %+v, want %+v", got, original)
	}
}

func TestUpdate_ReplacesEveryField(t *testing.T) {
	c, _ := setupController(t)

	tag := "shop"
	original, err := c.Create(db.CreateTaskRequest{Text: "X", Tag: &tag})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := c.Update(original.ID, models.TaskFields{Text: "Y", Status: models.StatusArchived})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Tag != nil || updated.Status != models.StatusArchived {
		t.Errorf("unexpected result %+v", updated)
	}
	if !updated.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("created_at changed")
	}
}

func TestMultiStep_UndoAllThenRedoAll(t *testing.T) {
	c, _ := setupController(t)

	a := mustCreate(t, c, "A")
	mustCreate(t, c, "B")
	if _, err := c.Modify(a.ID, func(f *models.TaskFields) { f.Status = models.StatusDone }); err != nil {
		t.Fatalf("Modify failed: %v", err)
	}
	end := readAll(t, c)

	for i := 0; i < 3; i++ {
		mustUndo(t, c)
	}
	if tasks := readAll(t, c); len(tasks) != 0 {
		t.Fatalf("expected empty store after three undos, got %+v", tasks)
	}
	if _, ok, _ := c.Undo(); ok {
		t.Fatal("expected nothing left to undo")
	}

	for i := 0; i < 3; i++ {
		mustRedo(t, c)
	}
	assertTasks(t, readAll(t, c), end)

	if _, ok, _ := c.Redo(); ok {
		t.Fatal("expected nothing left to redo")
	}
}

func TestRedoCancelsUndo(t *testing.T) {
	c, _ := setupController(t)

	task := mustCreate(t, c, "X")
	if _, err := c.Delete(task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	after := readAll(t, c)

	mustUndo(t, c)
	mustRedo(t, c)

	assertTasks(t, readAll(t, c), after)
}

func TestNewMutation_ClearsRedoByDefault(t *testing.T) {
	c, _ := setupController(t)

	mustCreate(t, c, "A")
	mustUndo(t, c)
	mustCreate(t, c, "B")

	if _, ok, err := c.Redo(); ok || err != nil {
		t.Fatalf("expected empty redo log, ok=%v err=%v", ok, err)
	}
}

func TestNewMutation_KeepsRedoWhenConfigured(t *testing.T) {
	c, _ := setupController(t, WithClearRedoOnWrite(false))

	a := mustCreate(t, c, "A")
	b := mustCreate(t, c, "B")
	mustUndo(t, c) // removes B
	if _, err := c.Modify(a.ID, func(f *models.TaskFields) { f.Text = "A2" }); err != nil {
		t.Fatalf("Modify failed: %v", err)
	}

	_, redo, err := c.Pending()
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if redo != 1 {
		t.Fatalf("redo depth = %d, want 1", redo)
	}

	step := mustRedo(t, c)
	if step.Task == nil || !step.Task.Equal(*b) {
		t.Errorf("redo restored %+v, want %+v", step.Task, b)
	}
}

func TestFailedUndo_KeepsEntryAndData(t *testing.T) {
	c, store := setupController(t)

	task := mustCreate(t, c, "X")

	// Delete the row behind the controller's back so the logged remove no
	// longer applies.
	if err := store.DeleteTask(task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	_, ok, err := c.Undo()
	if ok || !errors.Is(err, ErrCorruptHistory) {
		t.Fatalf("expected ErrCorruptHistory, ok=%v err=%v", ok, err)
	}
	if !errors.Is(err, db.ErrTaskNotFound) {
		t.Errorf("expected the cause to be ErrTaskNotFound, got %v", err)
	}

	undo, redo, err := c.Pending()
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if undo != 1 || redo != 0 {
		t.Errorf("pending = %d/%d, want 1/0", undo, redo)
	}
}

func TestUndo_UndecodableEntry(t *testing.T) {
	c, store := setupController(t)

	if _, err := store.PushUndo(models.HistoryEntry{Op: "DELETE FROM Tasks", TaskID: 1}); err != nil {
		t.Fatalf("PushUndo failed: %v", err)
	}

	_, _, err := c.Undo()
	if !errors.Is(err, ErrCorruptHistory) {
		t.Fatalf("expected ErrCorruptHistory, got %v", err)
	}
	if n, _ := store.CountHistory(db.UndoLog); n != 1 {
		t.Errorf("corrupt entry was dropped")
	}
}

func TestRecreate_ConflictingID(t *testing.T) {
	c, store := setupController(t)

	task := mustCreate(t, c, "X")
	if _, err := c.Delete(task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.InsertTask(models.Task{ID: task.ID, Text: "squatter", Status: models.StatusUndone, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("InsertTask failed: %v", err)
	}

	if _, _, err := c.Undo(); !errors.Is(err, ErrCorruptHistory) {
		t.Fatalf("expected ErrCorruptHistory, got %v", err)
	}
}

func TestMutations_NotFoundWritesNoHistory(t *testing.T) {
	c, _ := setupController(t)

	if _, err := c.Delete(5); !errors.Is(err, db.ErrTaskNotFound) {
		t.Errorf("Delete: expected ErrTaskNotFound, got %v", err)
	}
	if _, err := c.Modify(5, func(*models.TaskFields) {}); !errors.Is(err, db.ErrTaskNotFound) {
		t.Errorf("Modify: expected ErrTaskNotFound, got %v", err)
	}

	undo, _, _ := c.Pending()
	if undo != 0 {
		t.Errorf("failed mutations left %d history entries", undo)
	}
}

func TestModify_InvalidStatusWritesNothing(t *testing.T) {
	c, _ := setupController(t)
	task := mustCreate(t, c, "X")

	_, err := c.Modify(task.ID, func(f *models.TaskFields) { f.Status = "Later" })
	if !errors.Is(err, models.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	undo, _, _ := c.Pending()
	if undo != 1 {
		t.Errorf("undo depth = %d, want 1 (the create)", undo)
	}
}

func TestHistorySurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listr.db")

	store, err := db.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c := NewController(store)
	task := mustCreate(t, c, "persist me")
	if _, err := c.Modify(task.ID, func(f *models.TaskFields) { f.Text = "changed" }); err != nil {
		t.Fatalf("Modify failed: %v", err)
	}
	store.Close()

	store, err = db.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	c = NewController(store)

	mustUndo(t, c)
	got, err := c.Read(task.ID)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !got.Equal(*task) {
		t.Errorf("got %+v, want %+v", got, task)
	}
}

func TestEntriesAndClearHistory(t *testing.T) {
	c, _ := setupController(t)

	a := mustCreate(t, c, "A")
	if _, err := c.Delete(a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	mustUndo(t, c)

	undo, err := c.Entries(db.UndoLog, 0)
	if err != nil {
		t.Fatalf("Entries(undo) failed: %v", err)
	}
	if len(undo) != 1 || undo[0].Op != string(KindRemove) {
		t.Fatalf("undo entries = %+v, want a single remove", undo)
	}

	redo, err := c.Entries(db.RedoLog, 0)
	if err != nil {
		t.Fatalf("Entries(redo) failed: %v", err)
	}
	if len(redo) != 1 || redo[0].Op != string(KindRemove) {
		t.Fatalf("redo entries = %+v, want a single remove", redo)
	}

	if err := c.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	u, r, err := c.Pending()
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if u != 0 || r != 0 {
		t.Errorf("after clear: undo=%d redo=%d, want 0 and 0", u, r)
	}
	if got := readAll(t, c); len(got) != 1 {
		t.Errorf("clear touched tasks: %+v", got)
	}
}
