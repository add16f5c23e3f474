package models

import "time"

// History log table names
const (
	UndoTable = "undo_history"
	RedoTable = "redo_history"
)

// HistoryEntry is one persisted inverse operation. Undo and redo logs share
// this shape and live in separate tables.
//
// The snapshot columns hold the task state carried by the operation: the row
// to reinstate for a recreate, the prior fields for a reinstate. A remove
// carries no snapshot.
type HistoryEntry struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Op     string `gorm:"not null" json:"op"`
	TaskID uint   `gorm:"not null" json:"task_id"`

	HasSnapshot   bool       `gorm:"not null;default:false" json:"has_snapshot"`
	Text          string     `json:"text,omitempty"`
	Status        string     `json:"status,omitempty"`
	Tag           *string    `json:"tag,omitempty"`
	DueDate       *string    `json:"due_date,omitempty"`
	TaskCreatedAt *time.Time `json:"task_created_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
