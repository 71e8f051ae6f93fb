package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// ClientStorages groups the client-side repositories kept in the local
// SQLite database.
type ClientStorages struct {
	// SessionRepository persists the sign-in state between runs.
	SessionRepository SessionRepository

	// NoteStore is the offline note store used by the --offline mode.
	NoteStore NoteStore

	// ObjectStore keeps offline note images next to the database file.
	ObjectStore ObjectStore

	db *DB
}

// NewClientStorages opens the SQLite database at cfg.DB.DSN, creating the
// file if needed, runs the client migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	filesDir := filepath.Join(filepath.Dir(cfg.DB.DSN), "files")
	objects, err := NewFileObjectStore(filesDir, "file://"+filesDir, logger)
	if err != nil {
		return nil, err
	}

	return &ClientStorages{
		SessionRepository: NewSessionRepository(db, logger),
		NoteStore:         NewNoteRepository(db, logger),
		ObjectStore:       objects,
		db:                db,
	}, nil
}

// Close releases the database connection.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
