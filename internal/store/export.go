package store

import (
	"context"
	"fmt"

	"github.com/rcliao/blueprint-planner/internal/model"
)

// ExportAll returns a book and its journal.
func (s *SQLiteStore) ExportAll(ctx context.Context, book string) (model.Book, model.Journal, error) {
	b, err := s.Book(ctx, book)
	if err != nil {
		return model.Book{}, model.Journal{}, err
	}
	j, err := s.Journal(ctx, JournalQuery{Book: book})
	if err != nil {
		return model.Book{}, model.Journal{}, err
	}
	return b, j, nil
}

// Import stores a book and journal from an export. Blueprints already in the
// book are replaced in place; journal entries are appended.
func (s *SQLiteStore) Import(ctx context.Context, book string, b model.Book, j model.Journal) (int, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}

	imported := 0
	for _, bp := range b.Entries() {
		if _, err := s.Put(ctx, PutParams{Book: book, Blueprint: bp}); err != nil {
			return imported, fmt.Errorf("import %s: %w", bp.ID, err)
		}
		imported++
	}
	for _, e := range j.Entries() {
		_, err := s.AppendJournal(ctx, JournalParams{
			Book:        book,
			BlueprintID: e.BlueprintID,
			Kind:        e.Kind,
			At:          e.JournaledAt,
		})
		if err != nil {
			return imported, fmt.Errorf("import journal entry for %s: %w", e.BlueprintID, err)
		}
	}
	return imported, nil
}
