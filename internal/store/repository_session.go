package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// sessionRepository keeps the client's single session row in SQLite.
type sessionRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// client's SQLite database.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (s *sessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, saveSession,
		session.Token,
		session.Principal.ID,
		session.Principal.Email,
		session.Principal.DisplayName,
		session.UpdatedAt,
	)
	if err != nil {
		s.logger.Err(err).Str("func", "*sessionRepository.SaveSession").Msg("error saving session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sessionRepository) LoadSession(ctx context.Context) (models.Session, error) {
	var session models.Session
	err := s.db.QueryRowContext(ctx, loadSession).Scan(
		&session.Token,
		&session.Principal.ID,
		&session.Principal.Email,
		&session.Principal.DisplayName,
		&session.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "*sessionRepository.LoadSession").Msg("error loading session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if session.Principal.ID == "" {
		return models.Session{}, ErrSessionNotFound
	}

	return session, nil
}

func (s *sessionRepository) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, clearSession); err != nil {
		s.logger.Err(err).Str("func", "*sessionRepository.ClearSession").Msg("error clearing session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
