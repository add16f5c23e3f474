package history

import (
	"errors"
	"fmt"

	"github.com/balkashynov/listr/internal/db"
	"github.com/balkashynov/listr/internal/models"
)

// Controller applies task mutations and keeps the undo and redo logs in step
// with them. Each mutation, undo or redo runs in one store transaction, so a
// task change is never visible without its history entry or the reverse.
type Controller struct {
	store            *db.Store
	clearRedoOnWrite bool
}

// Option configures a Controller
type Option func(*Controller)

// WithClearRedoOnWrite controls whether a new create, update or delete
// empties the redo log. Enabled by default.
func WithClearRedoOnWrite(clear bool) Option {
	return func(c *Controller) {
		c.clearRedoOnWrite = clear
	}
}

// NewController wraps store
func NewController(store *db.Store, opts ...Option) *Controller {
	c := &Controller{
		store:            store,
		clearRedoOnWrite: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step describes one replayed history entry.
type Step struct {
	// Applied is the operation that was replayed.
	Applied Inverse
	// Task is the task after the replay, nil when the replay removed it.
	Task *models.Task
}

// Create adds a task and records its removal as the undo
func (c *Controller) Create(req db.CreateTaskRequest) (*models.Task, error) {
	var created *models.Task

	err := c.store.Transaction(func(tx *db.Store) error {
		task, err := tx.CreateTask(req)
		if err != nil {
			return err
		}
		if err := c.record(tx, ForCreate(task.ID)); err != nil {
			return err
		}
		created = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update overwrites the mutable fields of task id
func (c *Controller) Update(id uint, fields models.TaskFields) (*models.Task, error) {
	return c.Modify(id, func(f *models.TaskFields) {
		*f = fields
	})
}

// Modify reads task id, lets change edit its fields and writes them back
func (c *Controller) Modify(id uint, change func(*models.TaskFields)) (*models.Task, error) {
	var updated *models.Task

	err := c.store.Transaction(func(tx *db.Store) error {
		before, err := tx.GetTask(id)
		if err != nil {
			return err
		}

		fields := before.Fields()
		change(&fields)
		if err := tx.UpdateTask(id, fields); err != nil {
			return err
		}
		if err := c.record(tx, ForUpdate(*before)); err != nil {
			return err
		}

		updated = &models.Task{
			ID:        before.ID,
			Text:      fields.Text,
			Status:    fields.Status,
			Tag:       fields.Tag,
			DueDate:   fields.DueDate,
			CreatedAt: before.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes task id and returns the row as it was
func (c *Controller) Delete(id uint) (*models.Task, error) {
	var deleted *models.Task

	err := c.store.Transaction(func(tx *db.Store) error {
		before, err := tx.GetTask(id)
		if err != nil {
			return err
		}
		if err := tx.DeleteTask(id); err != nil {
			return err
		}
		if err := c.record(tx, ForDelete(*before)); err != nil {
			return err
		}
		deleted = before
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// Read returns task id
func (c *Controller) Read(id uint) (*models.Task, error) {
	return c.store.GetTask(id)
}

// ReadAll returns every task in storage order
func (c *Controller) ReadAll() ([]models.Task, error) {
	return c.store.GetTasks()
}

// Search returns tasks whose text contains query
func (c *Controller) Search(query string) ([]models.Task, error) {
	return c.store.SearchTasks(query)
}

// Undo replays the newest undo entry and files its inverse in the redo log.
// ok is false when there is nothing to undo.
func (c *Controller) Undo() (Step, bool, error) {
	step, ok, err := c.replay(db.UndoLog, db.RedoLog)
	if err != nil {
		return Step{}, false, fmt.Errorf("undo: %w", err)
	}
	return step, ok, nil
}

// Redo replays the newest redo entry and files its inverse in the undo log.
// ok is false when there is nothing to redo.
func (c *Controller) Redo() (Step, bool, error) {
	step, ok, err := c.replay(db.RedoLog, db.UndoLog)
	if err != nil {
		return Step{}, false, fmt.Errorf("redo: %w", err)
	}
	return step, ok, nil
}

// Pending returns the depth of the undo and redo logs
func (c *Controller) Pending() (undo, redo int64, err error) {
	if undo, err = c.store.CountHistory(db.UndoLog); err != nil {
		return 0, 0, err
	}
	if redo, err = c.store.CountHistory(db.RedoLog); err != nil {
		return 0, 0, err
	}
	return undo, redo, nil
}

// Entries returns up to limit entries of log, newest first. A limit of zero
// or less returns the whole log.
func (c *Controller) Entries(log db.Log, limit int) ([]models.HistoryEntry, error) {
	return c.store.ListHistory(log, limit)
}

// ClearHistory empties both logs. Tasks are left untouched.
func (c *Controller) ClearHistory() error {
	return c.store.Transaction(func(tx *db.Store) error {
		if err := tx.ClearLog(db.UndoLog); err != nil {
			return err
		}
		return tx.ClearLog(db.RedoLog)
	})
}

// replay pops from one log, applies the entry and pushes its inverse onto the
// other. A failure rolls the whole step back, leaving the entry in place.
func (c *Controller) replay(from, to db.Log) (Step, bool, error) {
	var (
		step Step
		ok   bool
	)

	err := c.store.Transaction(func(tx *db.Store) error {
		entry, found, err := tx.Pop(from)
		if err != nil || !found {
			return err
		}

		inv, err := Decode(*entry)
		if err != nil {
			return err
		}

		next, task, err := apply(tx, inv)
		if err != nil {
			return fmt.Errorf("entry %d (%s #%d): %w", entry.ID, inv.Kind(), inv.TaskID(), err)
		}

		if _, err := tx.Push(to, Encode(next)); err != nil {
			return err
		}

		step = Step{Applied: inv, Task: task}
		ok = true
		return nil
	})
	if err != nil {
		return Step{}, false, err
	}

	return step, ok, nil
}

// record pushes inv onto the undo log for a fresh mutation
func (c *Controller) record(tx *db.Store, inv Inverse) error {
	if _, err := tx.PushUndo(Encode(inv)); err != nil {
		return err
	}
	if c.clearRedoOnWrite {
		return tx.ClearLog(db.RedoLog)
	}
	return nil
}

// apply performs inv and returns the inverse of what it just did.
func apply(tx *db.Store, inv Inverse) (Inverse, *models.Task, error) {
	switch v := inv.(type) {
	case Recreate:
		_, err := tx.GetTask(v.Task.ID)
		if err == nil {
			return nil, nil, fmt.Errorf("%w: task #%d already exists", ErrCorruptHistory, v.Task.ID)
		}
		if !errors.Is(err, db.ErrTaskNotFound) {
			return nil, nil, err
		}
		if err := tx.InsertTask(v.Task); err != nil {
			return nil, nil, err
		}
		task := v.Task
		return ForCreate(task.ID), &task, nil

	case Remove:
		before, err := current(tx, v.ID)
		if err != nil {
			return nil, nil, err
		}
		if err := tx.DeleteTask(v.ID); err != nil {
			return nil, nil, err
		}
		return ForDelete(*before), nil, nil

	case Reinstate:
		before, err := current(tx, v.Task.ID)
		if err != nil {
			return nil, nil, err
		}
		if err := tx.ReinstateTask(v.Task); err != nil {
			return nil, nil, err
		}
		task := v.Task
		return ForUpdate(*before), &task, nil

	default:
		return nil, nil, fmt.Errorf("%w: unsupported operation %T", ErrCorruptHistory, inv)
	}
}

// current reads the task an entry refers to. A missing task means the log no
// longer matches the store.
func current(tx *db.Store, id uint) (*models.Task, error) {
	task, err := tx.GetTask(id)
	if errors.Is(err, db.ErrTaskNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrCorruptHistory, err)
	}
	return task, err
}
