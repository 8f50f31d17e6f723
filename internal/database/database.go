package database

import (
	"context"
	"time"
)

// ImageRecord is the durable metadata row committed once per successful
// ingest. StorageName is unique across all records, past and present; the
// original name is display-only and never used as a path.
type ImageRecord struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	OriginalName string    `gorm:"not null" json:"original_name"`
	StorageName  string    `gorm:"uniqueIndex;not null" json:"storage_name"`
	StoragePath  string    `gorm:"not null" json:"storage_path"`
	Tags         string    `gorm:"size:1000" json:"tags"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImageStore is the metadata store contract: a single atomic save per
// record and a stable, total listing.
type ImageStore interface {
	// Save commits the record and assigns its ID and CreatedAt. A record is
	// either fully visible afterwards or not at all.
	Save(ctx context.Context, rec *ImageRecord) error
	// FindAll returns every record in primary-key order.
	FindAll(ctx context.Context) ([]ImageRecord, error)
	Close() error
}
