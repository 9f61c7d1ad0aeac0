package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"

	"fakenews-detector/models"
)

// PostgresSource pulls extra labeled rows from a table with title, text and
// label columns. Rows with labels other than FAKE/REAL are skipped by the query.
type PostgresSource struct {
	db    *sql.DB
	table string
}

func NewPostgresSource(db *sql.DB, table string) *PostgresSource {
	return &PostgresSource{db: db, table: table}
}

func (s *PostgresSource) query() (string, []interface{}, error) {
	return sq.Select("title", "text", "label").
		From(s.table).
		Where(sq.Eq{"label": []string{string(models.LabelFake), string(models.LabelReal)}}).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

func (s *PostgresSource) Load(ctx context.Context) ([]Document, error) {
	if s.db == nil {
		return nil, nil
	}

	query, args, err := s.query()
	if err != nil {
		return nil, fmt.Errorf("build corpus query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query corpus: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var title, text sql.NullString
		var rawLabel string
		if err := rows.Scan(&title, &text, &rawLabel); err != nil {
			return nil, fmt.Errorf("scan corpus row: %w", err)
		}
		label, err := models.ParseLabel(rawLabel)
		if err != nil {
			return nil, err
		}
		docs = append(docs, NewDocument(title.String, text.String, label))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("corpus rows: %w", err)
	}

	log.Printf("[CORPUS] ✓ %s: %d documents from PostgreSQL", s.table, len(docs))
	return docs, nil
}
