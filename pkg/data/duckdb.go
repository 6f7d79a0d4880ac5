package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS stories (
	id              VARCHAR PRIMARY KEY,
	user_id         VARCHAR NOT NULL,
	title           VARCHAR NOT NULL,
	theme           VARCHAR NOT NULL,
	mood            VARCHAR NOT NULL,
	setting         VARCHAR NOT NULL,
	created_at      TIMESTAMP NOT NULL,
	rating          INTEGER,
	audio_generated BOOLEAN NOT NULL DEFAULT false
);
CREATE TABLE IF NOT EXISTS story_characters (
	story_id VARCHAR NOT NULL,
	ordinal  INTEGER NOT NULL,
	name     VARCHAR NOT NULL
);
CREATE TABLE IF NOT EXISTS story_pages (
	story_id     VARCHAR NOT NULL,
	page_number  INTEGER NOT NULL,
	body         VARCHAR NOT NULL,
	illustration VARCHAR NOT NULL
);
`

// InitDuckDB opens the database at path, creating parent directories and the
// schema when missing.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

type Repository struct {
	db *sql.DB
}

func NewDuckDBRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
