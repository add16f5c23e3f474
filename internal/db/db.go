package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/listr/internal/models"
)

var (
	// ErrTaskNotFound is returned when no task has the requested id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrStorage wraps every failure reported by the database driver.
	ErrStorage = errors.New("storage failure")
)

// Store owns a database handle and exposes the tasks table and the two
// history logs. A Store obtained inside Transaction is bound to that
// transaction.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

type options struct {
	logLevel logger.LogLevel
	now      func() time.Time
}

// Option configures a Store
type Option func(*options)

// WithLogLevel sets the gorm logger level. Silent by default.
func WithLogLevel(level logger.LogLevel) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// WithClock overrides the clock used for created_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func defaultOptions() options {
	return options{
		logLevel: logger.Silent, // Quiet by default
		now:      time.Now,
	}
}

// Open opens (creating if needed) the SQLite database at path and runs migrations
func Open(path string, opts ...Option) (*Store, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return open(path, false, opts...)
}

// OpenMemory opens a private in-memory database. Everything is lost on Close.
func OpenMemory(opts ...Option) (*Store, error) {
	return open(":memory:", true, opts...)
}

func open(dsn string, memory bool, opts ...Option) (*Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  o.logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if memory {
		// Each connection to :memory: is a separate database.
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	s := &Store{db: gdb, now: o.now}
	if err := s.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// runMigrations creates/updates the database schema
func (s *Store) runMigrations() error {
	if err := s.db.AutoMigrate(&models.Task{}); err != nil {
		return err
	}
	for _, table := range []string{models.UndoTable, models.RedoTable} {
		if err := s.db.Table(table).AutoMigrate(&models.HistoryEntry{}); err != nil {
			return err
		}
	}
	return nil
}

// Transaction runs fn against a Store bound to a single database
// transaction. The transaction commits only if fn returns nil.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	var fnErr error
	err := s.db.Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&Store{db: tx, now: s.now})
		return fnErr
	})
	if err != nil && fnErr == nil {
		// begin or commit failed
		return storageErr("transaction", err)
	}
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) timestamp() time.Time {
	return s.now().Truncate(time.Microsecond)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
