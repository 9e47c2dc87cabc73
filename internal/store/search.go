package store

import (
	"context"
	"strings"
)

// SearchParams holds parameters for searching blueprints.
type SearchParams struct {
	Book  string // all books when empty
	Query string
	Limit int
}

// Search finds live blueprints whose id or description contains the query.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]Record, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	query := "%" + p.Query + "%"
	where := []string{"deleted_at IS NULL", "(id LIKE ? OR description LIKE ?)"}
	args := []interface{}{query, query}

	if p.Book != "" {
		where = append(where, "book = ?")
		args = append(args, p.Book)
	}

	sql := `SELECT ` + recordColumns + ` FROM blueprints
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY book, position
		LIMIT ?`
	args = append(args, limit)

	return s.queryRecords(ctx, sql, args...)
}
