package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/balkashynov/listr/internal/models"
)

// Log selects one of the two history logs
type Log int

const (
	UndoLog Log = iota
	RedoLog
)

func (l Log) String() string {
	if l == RedoLog {
		return "redo"
	}
	return "undo"
}

func (l Log) table() string {
	if l == RedoLog {
		return models.RedoTable
	}
	return models.UndoTable
}

// Push appends entry to the tail of log and returns the stored row
func (s *Store) Push(log Log, entry models.HistoryEntry) (*models.HistoryEntry, error) {
	entry.ID = 0
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.timestamp()
	}
	if err := s.db.Table(log.table()).Create(&entry).Error; err != nil {
		return nil, storageErr(fmt.Sprintf("push %s entry", log), err)
	}
	return &entry, nil
}

// Pop removes and returns the most recently pushed entry of log.
// ok is false when the log is empty.
func (s *Store) Pop(log Log) (entry *models.HistoryEntry, ok bool, err error) {
	var e models.HistoryEntry

	err = s.db.Table(log.table()).Order("id DESC").Limit(1).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr(fmt.Sprintf("read %s log", log), err)
	}

	res := s.db.Table(log.table()).Where("id = ?", e.ID).Delete(&models.HistoryEntry{})
	if res.Error != nil {
		return nil, false, storageErr(fmt.Sprintf("pop %s entry", log), res.Error)
	}

	return &e, true, nil
}

// PushUndo appends to the undo log
func (s *Store) PushUndo(entry models.HistoryEntry) (*models.HistoryEntry, error) {
	return s.Push(UndoLog, entry)
}

// PushRedo appends to the redo log
func (s *Store) PushRedo(entry models.HistoryEntry) (*models.HistoryEntry, error) {
	return s.Push(RedoLog, entry)
}

// PopUndo removes the newest undo entry
func (s *Store) PopUndo() (*models.HistoryEntry, bool, error) {
	return s.Pop(UndoLog)
}

// PopRedo removes the newest redo entry
func (s *Store) PopRedo() (*models.HistoryEntry, bool, error) {
	return s.Pop(RedoLog)
}

// ClearLog deletes every entry of log
func (s *Store) ClearLog(log Log) error {
	err := s.db.Table(log.table()).Where("1 = 1").Delete(&models.HistoryEntry{}).Error
	if err != nil {
		return storageErr(fmt.Sprintf("clear %s log", log), err)
	}
	return nil
}

// ListHistory returns up to limit entries of log, newest first.
// A limit of zero or less returns the whole log.
func (s *Store) ListHistory(log Log, limit int) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry

	q := s.db.Table(log.table()).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, storageErr(fmt.Sprintf("list %s log", log), err)
	}

	return entries, nil
}

// CountHistory returns the number of entries in log
func (s *Store) CountHistory(log Log) (int64, error) {
	var n int64
	if err := s.db.Table(log.table()).Count(&n).Error; err != nil {
		return 0, storageErr(fmt.Sprintf("count %s log", log), err)
	}
	return n, nil
}
