package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/quillfort/trak/pkg/types"
)

// dbFileName is the SQLite database file created inside the data directory.
const dbFileName = "trak.db"

// Backend owns the SQLite connection and hands out table accessors.
// All mutating accessor operations run inside a transaction so a failure
// leaves storage exactly as it was before the operation began.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, opens the database, enables foreign
// key enforcement, applies the idempotent schema, and seeds the initial
// bookstore inventory on first run.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return types.NewStorageError("open", err)
	}

	// Required for ON DELETE behavior on the tracker tables.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return types.NewStorageError("enable foreign keys", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return types.NewStorageError("enable WAL", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return types.NewStorageError("set busy timeout", err)
	}

	// One interactive session, one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return types.NewStorageError("create schema", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return types.NewStorageError("create indexes", err)
		}
	}

	if err := seedBooks(db); err != nil {
		db.Close()
		return fmt.Errorf("seed books: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach releases all resources held by the backend.
// After Detach, all table operations return ErrStoreDetached.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return types.NewStorageError("close", err)
		}
		b.db = nil
	}

	b.attached = false
	return nil
}

// handle returns the live database handle, or ErrStoreDetached.
func (b *Backend) handle() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.db, nil
}

// Table accessors. Each is a thin struct over the backend; operations check
// attachment on every call.

// Categories returns the accessor for workout categories.
func (b *Backend) Categories() *CategoriesTable { return &CategoriesTable{backend: b} }

// Exercises returns the accessor for exercises.
func (b *Backend) Exercises() *ExercisesTable { return &ExercisesTable{backend: b} }

// Routines returns the accessor for routines and their assignments.
func (b *Backend) Routines() *RoutinesTable { return &RoutinesTable{backend: b} }

// GoalCategories returns the accessor for goal categories.
func (b *Backend) GoalCategories() *GoalCategoriesTable { return &GoalCategoriesTable{backend: b} }

// Goals returns the accessor for goals.
func (b *Backend) Goals() *GoalsTable { return &GoalsTable{backend: b} }

// Logs returns the accessor for workout logs.
func (b *Backend) Logs() *LogsTable { return &LogsTable{backend: b} }

// Books returns the accessor for the bookstore inventory.
func (b *Backend) Books() *BooksTable { return &BooksTable{backend: b} }

// Reports returns the read-mostly progress reporting queries.
func (b *Backend) Reports() *Reports { return &Reports{backend: b} }
