package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath           string      `json:"db_path"`
	DBSizeBytes      int64       `json:"db_size_bytes"`
	TotalBlueprints  int         `json:"total_blueprints"`
	ActiveBlueprints int         `json:"active_blueprints"`
	JournalEntries   int         `json:"journal_entries"`
	Books            []BookStats `json:"books"`
}

// BookStats holds per-book counts.
type BookStats struct {
	Book       string `json:"book"`
	Blueprints int    `json:"blueprints"`
	Journal    int    `json:"journal"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blueprints`).Scan(&st.TotalBlueprints)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blueprints WHERE deleted_at IS NULL`).Scan(&st.ActiveBlueprints)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal`).Scan(&st.JournalEntries)

	books, err := s.ListBooks(ctx)
	if err != nil {
		return st, err
	}
	st.Books = books
	return st, nil
}

// ListBooks returns every book that has live blueprints or journal entries.
func (s *SQLiteStore) ListBooks(ctx context.Context) ([]BookStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT book, SUM(bp) AS blueprints, SUM(j) AS journal FROM (
			SELECT book, 1 AS bp, 0 AS j FROM blueprints WHERE deleted_at IS NULL
			UNION ALL
			SELECT book, 0 AS bp, 1 AS j FROM journal
		)
		GROUP BY book ORDER BY book`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []BookStats
	for rows.Next() {
		var b BookStats
		if err := rows.Scan(&b.Book, &b.Blueprints, &b.Journal); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
