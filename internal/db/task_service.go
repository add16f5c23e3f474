package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/listr/internal/models"
)

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Text    string
	Status  models.Status // empty means Undone
	Tag     *string
	DueDate *string
}

// CreateTask inserts a new task, letting the database assign its id
func (s *Store) CreateTask(req CreateTaskRequest) (*models.Task, error) {
	status := req.Status
	if status == "" {
		status = models.StatusUndone
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}

	task := models.Task{
		Text:      req.Text,
		Status:    status,
		Tag:       req.Tag,
		DueDate:   req.DueDate,
		CreatedAt: s.timestamp(),
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, storageErr("create task", err)
	}

	return &task, nil
}

// InsertTask writes task exactly as given, including its id and created_at.
// It fails if a task with the same id already exists.
func (s *Store) InsertTask(task models.Task) error {
	if task.ID == 0 {
		return fmt.Errorf("insert task: explicit id required")
	}
	if !task.Status.IsValid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidStatus, task.Status)
	}
	if err := s.db.Create(&task).Error; err != nil {
		return storageErr(fmt.Sprintf("insert task #%d", task.ID), err)
	}
	return nil
}

// GetTask retrieves a task by ID
func (s *Store) GetTask(id uint) (*models.Task, error) {
	var task models.Task

	err := s.db.First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: #%d", ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, storageErr(fmt.Sprintf("read task #%d", id), err)
	}

	return &task, nil
}

// GetTasks retrieves every task in id order
func (s *Store) GetTasks() ([]models.Task, error) {
	var tasks []models.Task

	if err := s.db.Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, storageErr("read tasks", err)
	}

	return tasks, nil
}

// SearchTasks returns tasks whose text contains query, case-insensitively
func (s *Store) SearchTasks(query string) ([]models.Task, error) {
	tasks, err := s.GetTasks()
	if err != nil {
		return nil, err
	}

	// SQLite's lower() only folds ASCII, so match in Go.
	needle := strings.ToLower(query)
	matches := []models.Task{}
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Text), needle) {
			matches = append(matches, task)
		}
	}
	return matches, nil
}

// UpdateTask overwrites text, status, tag and due_date of a task.
// The id and created_at are never touched.
func (s *Store) UpdateTask(id uint, fields models.TaskFields) error {
	if !fields.Status.IsValid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidStatus, fields.Status)
	}
	return s.updateColumns(id, "update", map[string]any{
		"text":     fields.Text,
		"status":   fields.Status,
		"tag":      fields.Tag,
		"due_date": fields.DueDate,
	})
}

// ReinstateTask writes every column of snapshot back onto the task with the
// same id, created_at included.
func (s *Store) ReinstateTask(snapshot models.Task) error {
	if !snapshot.Status.IsValid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidStatus, snapshot.Status)
	}
	return s.updateColumns(snapshot.ID, "reinstate", map[string]any{
		"text":       snapshot.Text,
		"status":     snapshot.Status,
		"tag":        snapshot.Tag,
		"due_date":   snapshot.DueDate,
		"created_at": snapshot.CreatedAt,
	})
}

func (s *Store) updateColumns(id uint, op string, columns map[string]any) error {
	res := s.db.Model(&models.Task{}).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return storageErr(fmt.Sprintf("%s task #%d", op, id), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: #%d", ErrTaskNotFound, id)
	}
	return nil
}

// DeleteTask removes a task
func (s *Store) DeleteTask(id uint) error {
	res := s.db.Delete(&models.Task{}, id)
	if res.Error != nil {
		return storageErr(fmt.Sprintf("delete task #%d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: #%d", ErrTaskNotFound, id)
	}
	return nil
}
