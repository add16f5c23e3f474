package history

import (
	"errors"
	"fmt"

	"github.com/balkashynov/listr/internal/models"
)

// ErrCorruptHistory is returned when a logged entry cannot be decoded or no
// longer applies to the task store.
var ErrCorruptHistory = errors.New("corrupt history entry")

// Encode converts an inverse into its persisted row. The entry id and
// created_at are assigned when the row is pushed.
func Encode(inv Inverse) models.HistoryEntry {
	entry := models.HistoryEntry{
		Op:     string(inv.Kind()),
		TaskID: inv.TaskID(),
	}

	switch v := inv.(type) {
	case Recreate:
		withSnapshot(&entry, v.Task)
	case Reinstate:
		withSnapshot(&entry, v.Task)
	}

	return entry
}

func withSnapshot(entry *models.HistoryEntry, task models.Task) {
	createdAt := task.CreatedAt
	fields := task.Fields()

	entry.HasSnapshot = true
	entry.Text = fields.Text
	entry.Status = string(fields.Status)
	entry.Tag = fields.Tag
	entry.DueDate = fields.DueDate
	entry.TaskCreatedAt = &createdAt
}

// Decode converts a persisted row back into an inverse.
func Decode(entry models.HistoryEntry) (Inverse, error) {
	if entry.TaskID == 0 {
		return nil, corrupt(entry, errors.New("missing task id"))
	}

	switch Kind(entry.Op) {
	case KindRemove:
		return Remove{ID: entry.TaskID}, nil
	case KindRecreate:
		task, err := snapshot(entry)
		if err != nil {
			return nil, err
		}
		return Recreate{Task: task}, nil
	case KindReinstate:
		task, err := snapshot(entry)
		if err != nil {
			return nil, err
		}
		return Reinstate{Task: task}, nil
	default:
		return nil, corrupt(entry, fmt.Errorf("unknown operation %q", entry.Op))
	}
}

func snapshot(entry models.HistoryEntry) (models.Task, error) {
	if !entry.HasSnapshot || entry.TaskCreatedAt == nil {
		return models.Task{}, corrupt(entry, errors.New("missing task snapshot"))
	}

	status, err := models.ParseStatus(entry.Status)
	if err != nil {
		return models.Task{}, corrupt(entry, err)
	}

	return models.Task{
		ID:        entry.TaskID,
		Text:      entry.Text,
		Status:    status,
		Tag:       entry.Tag,
		DueDate:   entry.DueDate,
		CreatedAt: *entry.TaskCreatedAt,
	}, nil
}

func corrupt(entry models.HistoryEntry, err error) error {
	return fmt.Errorf("%w: entry %d: %w", ErrCorruptHistory, entry.ID, err)
}
