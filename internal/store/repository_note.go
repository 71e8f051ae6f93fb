// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/jackc/pgerrcode"
)

// noteRepository is the SQL implementation of [NoteStore]. The same code
// serves PostgreSQL on the server and SQLite in the client's offline mode;
// the dialect of [DB] selects placeholders and the array-contains predicate.
type noteRepository struct {
	db     *DB
	ids    *utils.UUIDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteStore] backed by db.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteStore {
	logger.Debug().Str("dialect", string(db.dialect)).Msg("creating note repository")
	return &noteRepository{
		db:     db,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: logger,
	}
}

// Create assigns a UUIDv7 id when note.ID is empty and fills zero
// timestamps with the current time before inserting.
func (r *noteRepository) Create(ctx context.Context, note models.Note) (string, error) {
	log := logger.FromContext(ctx)

	if note.ID == "" {
		note.ID = r.ids.Generate()
	}
	now := r.now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}
	if note.SharedWith == nil {
		note.SharedWith = models.EmailList{}
	}
	if note.Permissions == nil {
		note.Permissions = models.PermissionMap{}
	}

	query, args, err := buildInsertNoteQuery(r.db.builder(), note)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.Create").Msg("error building insert query")
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*noteRepository.Create").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error inserting note")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().Str("func", "*noteRepository.Create").Str("note_id", note.ID).Msg("note created")
	return note.ID, nil
}

// Get returns the note with id or [ErrNoteNotFound].
func (r *noteRepository) Get(ctx context.Context, id string) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetNoteQuery(r.db.builder(), id)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.Get").Msg("error building select query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	note, err := scanNote(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) || malformedID(err) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.Get").Str("note_id", id).Msg("error scanning note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return note, nil
}

// Update writes the non-nil fields of patch.
func (r *noteRepository) Update(ctx context.Context, id string, patch models.NotePatch) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateNoteQuery(r.db.builder(), id, patch)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.Update").Msg("error building update query")
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if malformedID(err) {
		return ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.Update").
			Bool("retryable", r.db.IsRetryable(err)).
			Str("note_id", id).
			Msg("error updating note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return checkAffected(res, "*noteRepository.Update", log)
}

// Delete removes the note permanently.
func (r *noteRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteNoteQuery(r.db.builder(), id)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.Delete").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if malformedID(err) {
		return ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.Delete").Str("note_id", id).Msg("error deleting note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return checkAffected(res, "*noteRepository.Delete", log)
}

// malformedID reports whether PostgreSQL rejected an id that is not a UUID.
// No note can have such an id.
func malformedID(err error) bool {
	return postgresError(err) == pgerrcode.InvalidTextRepresentation
}

// Query lists the notes matching q.
func (r *noteRepository) Query(ctx context.Context, q models.NoteQuery) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildQueryNotesQuery(r.db.builder(), r.db.dialect, q)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.Query").Msg("error building notes query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.Query").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error querying notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Err(err).Str("func", "*noteRepository.Query").Msg("error scanning note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*noteRepository.Query").Msg("error iterating note rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var (
		note       models.Note
		copiedFrom sql.NullString
	)

	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.Emoji,
		&note.OwnerID,
		&note.OwnerName,
		&note.OwnerEmail,
		&note.CreatedAt,
		&note.UpdatedAt,
		&note.IsPublic,
		&note.AllowCopy,
		&note.SharedWith,
		&note.Permissions,
		&copiedFrom,
	)
	if err != nil {
		return models.Note{}, err
	}

	if copiedFrom.Valid && copiedFrom.String != "" {
		from := copiedFrom.String
		note.CopiedFrom = &from
	}

	return note, nil
}

func checkAffected(res sql.Result, fn string, log *logger.Logger) error {
	affected, err := res.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}
