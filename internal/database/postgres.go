package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore backs the metadata store with PostgreSQL, selected with
// DATABASE_DRIVER=postgres.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := NewMigrator(db).Run(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Save(ctx context.Context, rec *ImageRecord) error {
	rec.CreatedAt = time.Now()
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO image_records (original_name, storage_name, storage_path, tags, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		rec.OriginalName, rec.StorageName, rec.StoragePath, rec.Tags, rec.Description, rec.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to save image record: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]ImageRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original_name, storage_name, storage_path, tags, description, created_at
		 FROM image_records
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list image records: %w", err)
	}
	defer rows.Close()

	var records []ImageRecord
	for rows.Next() {
		var rec ImageRecord
		if err := rows.Scan(&rec.ID, &rec.OriginalName, &rec.StorageName, &rec.StoragePath,
			&rec.Tags, &rec.Description, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate image records: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
