package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-card-share/internal/config"
	"github.com/MKhiriev/go-card-share/internal/logger"
	"github.com/MKhiriev/go-card-share/migrations"
)

// Storages aggregates every persistence component the services depend on.
type Storages struct {
	UserRepository         UserRepository
	LoginAttemptRepository LoginAttemptRepository
	CardRepository         CardRepository
	BlobStore              BlobStore
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// all repositories plus the S3 blob store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := migrations.Migrate(db.DB); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	blobStore, err := NewS3BlobStore(ctx, cfg.S3, log)
	if err != nil {
		return nil, fmt.Errorf("error creating blob store: %w", err)
	}

	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		LoginAttemptRepository: NewLoginAttemptRepository(db, log),
		CardRepository:         NewCardRepository(db, log),
		BlobStore:              blobStore,
	}, nil
}
