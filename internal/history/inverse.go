// Package history records every task mutation as the operation that reverses
// it, and replays those operations to undo and redo changes.
//
// An inverse is one of three variants:
//   - Recreate reinstates a deleted task row with its original id
//   - Remove deletes a created task
//   - Reinstate writes back every column of a task as it was before an update
package history

import "github.com/balkashynov/listr/internal/models"

// Kind names an inverse variant. It is the value persisted in the op column.
type Kind string

const (
	KindRecreate  Kind = "recreate"
	KindRemove    Kind = "remove"
	KindReinstate Kind = "reinstate"
)

// Inverse is an operation that restores the task store to the state it had
// before one mutation. The set of implementations is closed.
type Inverse interface {
	Kind() Kind
	TaskID() uint
	isInverse()
}

// Recreate undoes a delete.
type Recreate struct {
	Task models.Task
}

func (Recreate) Kind() Kind { return KindRecreate }
func (r Recreate) TaskID() uint { return r.Task.ID }
func (Recreate) isInverse() {}

// Remove undoes a create.
type Remove struct {
	ID uint
}

func (Remove) Kind() Kind { return KindRemove }
func (r Remove) TaskID() uint { return r.ID }
func (Remove) isInverse() {}

// Reinstate undoes an update. Task holds the full row before the update.
type Reinstate struct {
	Task models.Task
}

func (Reinstate) Kind() Kind { return KindReinstate }
func (r Reinstate) TaskID() uint { return r.Task.ID }
func (Reinstate) isInverse() {}

// ForCreate returns the inverse of creating the task with id.
func ForCreate(id uint) Inverse {
	return Remove{ID: id}
}

// ForUpdate returns the inverse of updating a task whose prior state was before.
func ForUpdate(before models.Task) Inverse {
	return Reinstate{Task: before}
}

// ForDelete returns the inverse of deleting before.
func ForDelete(before models.Task) Inverse {
	return Recreate{Task: before}
}
