package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// InitDB opens the optional labeled-news store used as an extra training
// source. An empty url leaves DB nil.
func InitDB(ctx context.Context, url string) error {
	if url == "" {
		log.Println("[DB] ⚠ DB_URL not set, training from CSV files only")
		return nil
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS labeled_news (
			id         SERIAL PRIMARY KEY,
			title      TEXT,
			text       TEXT,
			label      TEXT NOT NULL CHECK (label IN ('FAKE', 'REAL')),
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("create labeled_news: %w", err)
	}

	DB = db
	log.Println("[DB] ✓ connected to PostgreSQL")
	return nil
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
