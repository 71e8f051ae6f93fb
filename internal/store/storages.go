package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// Storages groups the server's persistence backends.
type Storages struct {
	UserRepository UserRepository
	NoteStore      NoteStore
	ObjectStore    ObjectStore

	db *DB
}

// NewStorages connects to PostgreSQL, runs the migrations and constructs the
// object store selected by cfg: Google Cloud Storage when a bucket is set,
// the local filesystem otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	objects, err := newObjectStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		NoteStore:      NewNoteRepository(db, logger),
		ObjectStore:    objects,
		db:             db,
	}, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func newObjectStore(ctx context.Context, cfg config.Storage, logger *logger.Logger) (ObjectStore, error) {
	if cfg.GCS.Bucket != "" {
		return NewGCSObjectStore(ctx, cfg.GCS, logger)
	}
	return NewFileObjectStore(cfg.Files.Dir, cfg.Files.PublicURL, logger)
}
