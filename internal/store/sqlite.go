package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/blueprint-planner/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy io.Reader
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS blueprints (
		book        TEXT NOT NULL,
		id          TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		duration    TEXT NOT NULL,
		priority    TEXT NOT NULL DEFAULT 'NORM',
		recurrence  TEXT NOT NULL,
		slot        TEXT NOT NULL,
		position    INTEGER NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		deleted_at  TEXT,
		PRIMARY KEY (book, id)
	);
	CREATE INDEX IF NOT EXISTS idx_blueprints_book_pos ON blueprints(book, position);
	CREATE INDEX IF NOT EXISTS idx_blueprints_deleted ON blueprints(deleted_at);

	CREATE TABLE IF NOT EXISTS journal (
		id           TEXT PRIMARY KEY,
		book         TEXT NOT NULL,
		blueprint_id TEXT NOT NULL,
		kind         TEXT NOT NULL,
		journaled_at TEXT NOT NULL,
		created_at   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_journal_book ON journal(book, blueprint_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

func bookOrDefault(book string) string {
	if book == "" {
		return DefaultBook
	}
	return book
}

func (s *SQLiteStore) Put(ctx context.Context, p PutParams) (*Record, error) {
	bp := p.Blueprint
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	book := bookOrDefault(p.Book)
	now := time.Now().UTC()
	ts := now.Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Existing live row keeps its slot in the book order.
	var position int
	var createdAt string
	var deletedAt sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT position, created_at, deleted_at FROM blueprints WHERE book = ? AND id = ?`,
		book, bp.ID).Scan(&position, &createdAt, &deletedAt)

	switch {
	case errors.Is(err, sql.ErrNoRows) || (err == nil && deletedAt.Valid):
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), 0) + 1 FROM blueprints WHERE book = ?`, book).Scan(&position); err != nil {
			return nil, fmt.Errorf("next position: %w", err)
		}
		createdAt = ts
	case err != nil:
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO blueprints (book, id, description, duration, priority, recurrence, slot, position, created_at, updated_at, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
		 ON CONFLICT(book, id) DO UPDATE SET
		   description = excluded.description,
		   duration    = excluded.duration,
		   priority    = excluded.priority,
		   recurrence  = excluded.recurrence,
		   slot        = excluded.slot,
		   position    = excluded.position,
		   created_at  = excluded.created_at,
		   updated_at  = excluded.updated_at,
		   deleted_at  = NULL`,
		book, bp.ID, bp.Description, bp.EstimatedDuration.String(), bp.Priority.String(),
		bp.Recurrence.String(), bp.PreferredSlot.String(), position, createdAt, ts)
	if err != nil {
		return nil, fmt.Errorf("insert blueprint: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	rec := &Record{
		Book:      book,
		Position:  position,
		Blueprint: bp,
		UpdatedAt: now,
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return rec, nil
}

const recordColumns = `book, id, description, duration, priority, recurrence, slot,
	position, created_at, updated_at, deleted_at`

func (s *SQLiteStore) Get(ctx context.Context, p GetParams) (*Record, error) {
	book := bookOrDefault(p.Book)
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM blueprints
		 WHERE book = ? AND id = ? AND deleted_at IS NULL`, book, p.ID)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, book, p.ID)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]Record, error) {
	where := []string{"book = ?", "deleted_at IS NULL"}
	args := []interface{}{bookOrDefault(p.Book)}

	if p.Priority != nil {
		where = append(where, "priority = ?")
		args = append(args, p.Priority.String())
	}

	query := `SELECT ` + recordColumns + ` FROM blueprints
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY position`
	if p.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, p.Limit)
	}

	return s.queryRecords(ctx, query, args...)
}

func (s *SQLiteStore) Book(ctx context.Context, book string) (model.Book, error) {
	records, err := s.List(ctx, ListParams{Book: book})
	if err != nil {
		return model.Book{}, err
	}
	entries := make([]model.Blueprint, len(records))
	for i, r := range records {
		entries[i] = r.Blueprint
	}
	return model.NewBook(entries...), nil
}

func (s *SQLiteStore) Rm(ctx context.Context, p RmParams) error {
	book := bookOrDefault(p.Book)

	var res sql.Result
	var err error
	if p.Hard {
		res, err = s.db.ExecContext(ctx,
			`DELETE FROM blueprints WHERE book = ? AND id = ?`, book, p.ID)
	} else {
		now := time.Now().UTC().Format(time.RFC3339)
		res, err = s.db.ExecContext(ctx,
			`UPDATE blueprints SET deleted_at = ? WHERE book = ? AND id = ? AND deleted_at IS NULL`,
			now, book, p.ID)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, book, p.ID)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) queryRecords(ctx context.Context, query string, args ...interface{}) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (Record, error) {
	var r Record
	var id, description, duration, priority, recurrence, slot string
	var createdAt, updatedAt string
	var deletedAt sql.NullString

	err := row.Scan(
		&r.Book, &id, &description, &duration, &priority, &recurrence, &slot,
		&r.Position, &createdAt, &updatedAt, &deletedAt,
	)
	if err != nil {
		return r, err
	}

	r.Blueprint, err = model.ParseBlueprint(id, description, duration, priority, recurrence, slot)
	if err != nil {
		return r, fmt.Errorf("decode %s/%s: %w", r.Book, id, err)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if deletedAt.Valid {
		t, _ := time.Parse(time.RFC3339, deletedAt.String)
		r.DeletedAt = &t
	}
	return r, nil
}
