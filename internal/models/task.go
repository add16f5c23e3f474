package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidStatus is returned when a stored or supplied status is not one of
// Undone, Done or Archived.
var ErrInvalidStatus = errors.New("invalid task status")

// Status is the lifecycle state of a task
type Status string

const (
	StatusUndone   Status = "Undone"
	StatusDone     Status = "Done"
	StatusArchived Status = "Archived"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusUndone, StatusDone, StatusArchived}
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// ParseStatus converts a stored string to a Status. Unknown values are a
// data-corruption error, never silently defaulted.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

func (s Status) String() string {
	return string(s)
}

// Scan implements sql.Scanner.
func (s *Status) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("%w: NULL", ErrInvalidStatus)
	default:
		return fmt.Errorf("%w: unexpected type %T", ErrInvalidStatus, value)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return string(s), nil
}

// MarshalText keeps json/yaml output aligned with the stored representation.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText rejects unknown statuses.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Task represents a todo item
type Task struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id" yaml:"id"`
	Text      string    `gorm:"not null" json:"text" yaml:"text"`
	Status    Status    `gorm:"type:text;not null" json:"status" yaml:"status"`
	Tag       *string   `json:"tag,omitempty" yaml:"tag,omitempty"`
	DueDate   *string   `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at" yaml:"created_at"`
}

// Fields returns the mutable part of the task.
func (t Task) Fields() TaskFields {
	return TaskFields{
		Text:    t.Text,
		Status:  t.Status,
		Tag:     cloneString(t.Tag),
		DueDate: cloneString(t.DueDate),
	}
}

// Equal compares every column, including created_at at full precision.
func (t Task) Equal(other Task) bool {
	return t.ID == other.ID &&
		t.Fields().Equal(other.Fields()) &&
		t.CreatedAt.Equal(other.CreatedAt)
}

// TaskFields are the columns an update overwrites. ID and CreatedAt are never
// part of an update.
type TaskFields struct {
	Text    string
	Status  Status
	Tag     *string
	DueDate *string
}

// Equal compares two field sets, treating nil and non-nil optionals as different.
func (f TaskFields) Equal(other TaskFields) bool {
	return f.Text == other.Text &&
		f.Status == other.Status &&
		equalString(f.Tag, other.Tag) &&
		equalString(f.DueDate, other.DueDate)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
