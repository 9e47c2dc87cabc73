// Package store provides blueprint and journal persistence with a SQLite
// implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rcliao/blueprint-planner/internal/model"
)

// ErrNotFound is returned when a blueprint does not exist in a book.
var ErrNotFound = errors.New("blueprint not found")

// DefaultBook is the book used when none is given.
const DefaultBook = "default"

// Record is a stored blueprint with its bookkeeping columns.
type Record struct {
	Book      string          `json:"book"`
	Position  int             `json:"position"`
	Blueprint model.Blueprint `json:"blueprint"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt *time.Time      `json:"deleted_at,omitempty"`
}

// PutParams holds parameters for storing a blueprint.
type PutParams struct {
	Book      string
	Blueprint model.Blueprint
}

// GetParams holds parameters for retrieving a blueprint.
type GetParams struct {
	Book string
	ID   string
}

// ListParams holds parameters for listing blueprints.
type ListParams struct {
	Book     string
	Priority *model.Priority // only this priority when set
	Limit    int             // 0 means all
}

// RmParams holds parameters for deleting a blueprint.
type RmParams struct {
	Book string
	ID   string
	Hard bool
}

// JournalParams holds parameters for appending a journal entry.
type JournalParams struct {
	Book        string
	BlueprintID string
	Kind        model.JournalKind
	At          time.Time
}

// JournalQuery holds parameters for reading the journal.
type JournalQuery struct {
	Book        string
	BlueprintID string    // all blueprints when empty
	Since       time.Time // no lower bound when zero
	Limit       int       // 0 means all
}

// Store defines the blueprint and journal storage interface.
type Store interface {
	// Put inserts or replaces a blueprint. A new blueprint goes to the end
	// of its book; a replaced one keeps its position.
	Put(ctx context.Context, p PutParams) (*Record, error)

	// Get retrieves a live blueprint by book and id.
	Get(ctx context.Context, p GetParams) (*Record, error)

	// List lists live blueprints in book order.
	List(ctx context.Context, p ListParams) ([]Record, error)

	// Book loads a whole book in order, ready for scheduling.
	Book(ctx context.Context, book string) (model.Book, error)

	// Rm soft-deletes (or hard-deletes) a blueprint.
	Rm(ctx context.Context, p RmParams) error

	// AppendJournal records a completed or postponed occurrence.
	AppendJournal(ctx context.Context, p JournalParams) (*model.JournalEntry, error)

	// Journal reads journal entries in append order.
	Journal(ctx context.Context, q JournalQuery) (model.Journal, error)

	// Close closes the store.
	Close() error
}
