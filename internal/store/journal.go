package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rcliao/blueprint-planner/internal/model"
)

// AppendJournal records a journal entry. The blueprint must be live in the book.
func (s *SQLiteStore) AppendJournal(ctx context.Context, p JournalParams) (*model.JournalEntry, error) {
	if !model.ValidJournalKinds[p.Kind] {
		return nil, fmt.Errorf("invalid journal kind %q", p.Kind)
	}
	book := bookOrDefault(p.Book)
	if _, err := s.Get(ctx, GetParams{Book: book, ID: p.BlueprintID}); err != nil {
		return nil, err
	}

	at := p.At
	if at.IsZero() {
		at = time.Now()
	}
	entry := &model.JournalEntry{
		ID:          s.newID(),
		Kind:        p.Kind,
		BlueprintID: p.BlueprintID,
		JournaledAt: at.UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal (id, book, blueprint_id, kind, journaled_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, book, entry.BlueprintID, string(entry.Kind),
		entry.JournaledAt.Format(time.RFC3339Nano), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert journal entry: %w", err)
	}
	return entry, nil
}

// Journal reads entries in append order. ULID ids sort by creation time.
func (s *SQLiteStore) Journal(ctx context.Context, q JournalQuery) (model.Journal, error) {
	where := []string{"book = ?"}
	args := []interface{}{bookOrDefault(q.Book)}

	if q.BlueprintID != "" {
		where = append(where, "blueprint_id = ?")
		args = append(args, q.BlueprintID)
	}

	query := `SELECT id, blueprint_id, kind, journaled_at FROM journal
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return model.Journal{}, err
	}
	defer rows.Close()

	var entries []model.JournalEntry
	for rows.Next() {
		var e model.JournalEntry
		var kind, at string
		if err := rows.Scan(&e.ID, &e.BlueprintID, &kind, &at); err != nil {
			return model.Journal{}, err
		}
		e.Kind = model.JournalKind(kind)
		e.JournaledAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return model.Journal{}, fmt.Errorf("decode journal entry %s: %w", e.ID, err)
		}
		if !q.Since.IsZero() && e.JournaledAt.Before(q.Since) {
			continue
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return model.Journal{}, err
	}

	// Keep the most recent entries when limited.
	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[len(entries)-q.Limit:]
	}
	return model.NewJournal(entries...), nil
}
