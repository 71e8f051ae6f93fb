package store

import (
	"encoding/json"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-note-keeper/migrations"
	"github.com/MKhiriev/go-note-keeper/models"
)

const (
	createUser = `INSERT INTO users (user_id, email, display_name, password_hash)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, email, display_name, password_hash, created_at;`

	findUserByEmail = `SELECT user_id, email, display_name, password_hash, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, email, display_name, password_hash, created_at
    FROM users
    WHERE user_id = $1;`

	saveSession = `INSERT INTO session (id, token, user_id, email, display_name, updated_at)
    VALUES (1, ?, ?, ?, ?, ?)
    ON CONFLICT (id) DO UPDATE SET
        token = excluded.token,
        user_id = excluded.user_id,
        email = excluded.email,
        display_name = excluded.display_name,
        updated_at = excluded.updated_at;`

	loadSession = `SELECT token, user_id, email, display_name, updated_at
    FROM session
    WHERE id = 1;`

	clearSession = `DELETE FROM session WHERE id = 1;`
)

const notesTable = "notes"

// noteColumns is the column order shared by every note SELECT and by
// scanNote.
var noteColumns = []string{
	"id",
	"title",
	"content",
	"emoji",
	"owner_id",
	"owner_name",
	"owner_email",
	"created_at",
	"updated_at",
	"is_public",
	"allow_copy",
	"shared_with",
	"shared_with_permissions",
	"copied_from",
}

// buildInsertNoteQuery builds the INSERT for a fully populated note.
func buildInsertNoteQuery(b sq.StatementBuilderType, note models.Note) (string, []any, error) {
	return b.Insert(notesTable).
		Columns(noteColumns...).
		Values(
			note.ID,
			note.Title,
			note.Content,
			note.Emoji,
			note.OwnerID,
			note.OwnerName,
			note.OwnerEmail,
			note.CreatedAt,
			note.UpdatedAt,
			note.IsPublic,
			note.AllowCopy,
			note.SharedWith,
			note.Permissions,
			note.CopiedFrom,
		).
		ToSql()
}

// buildGetNoteQuery builds the SELECT of a single note by id.
func buildGetNoteQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Select(noteColumns...).
		From(notesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildUpdateNoteQuery dynamically builds the UPDATE of the non-nil patch
// fields.
func buildUpdateNoteQuery(b sq.StatementBuilderType, id string, patch models.NotePatch) (string, []any, error) {
	ub := b.Update(notesTable)
	fields := 0

	set := func(column string, value any) {
		ub = ub.Set(column, value)
		fields++
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Content != nil {
		set("content", *patch.Content)
	}
	if patch.Emoji != nil {
		set("emoji", *patch.Emoji)
	}
	if patch.IsPublic != nil {
		set("is_public", *patch.IsPublic)
	}
	if patch.AllowCopy != nil {
		set("allow_copy", *patch.AllowCopy)
	}
	if patch.SharedWith != nil {
		set("shared_with", *patch.SharedWith)
	}
	if patch.Permissions != nil {
		set("shared_with_permissions", *patch.Permissions)
	}
	if patch.UpdatedAt != nil {
		set("updated_at", *patch.UpdatedAt)
	}

	if fields == 0 {
		return "", nil, fmt.Errorf("%w: empty patch", ErrBuildingSQLQuery)
	}

	return ub.Where(sq.Eq{"id": id}).ToSql()
}

// buildDeleteNoteQuery builds the DELETE of a single note by id.
func buildDeleteNoteQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Delete(notesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildQueryNotesQuery translates a [models.NoteQuery] into a SELECT.
// Field names are validated against the queryable set before they reach the
// SQL text. Predicates are emitted in field-name order.
func buildQueryNotesQuery(b sq.StatementBuilderType, dialect migrations.Dialect, q models.NoteQuery) (string, []any, error) {
	sb := b.Select(noteColumns...).From(notesTable)

	for _, field := range sortedFields(q.Equal) {
		if !field.IsValid() || field == models.FieldSharedWith {
			return "", nil, fmt.Errorf("%w: equality on %q", ErrInvalidQuery, field)
		}
		sb = sb.Where(sq.Eq{string(field): q.Equal[field]})
	}

	for _, field := range sortedFields(q.ArrayContains) {
		if field != models.FieldSharedWith {
			return "", nil, fmt.Errorf("%w: array-contains on %q", ErrInvalidQuery, field)
		}
		expr, err := arrayContains(dialect, string(field), q.ArrayContains[field])
		if err != nil {
			return "", nil, err
		}
		sb = sb.Where(expr)
	}

	if q.OrderByDesc != "" {
		if !q.OrderByDesc.IsValid() || q.OrderByDesc == models.FieldSharedWith {
			return "", nil, fmt.Errorf("%w: order by %q", ErrInvalidQuery, q.OrderByDesc)
		}
		sb = sb.OrderBy(string(q.OrderByDesc) + " DESC")
	}

	return sb.ToSql()
}

// arrayContains builds a membership predicate over a JSON array column.
func arrayContains(dialect migrations.Dialect, column, value string) (sq.Sqlizer, error) {
	switch dialect {
	case migrations.Postgres:
		raw, err := json.Marshal([]string{value})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		return sq.Expr(column+" @> ?::jsonb", string(raw)), nil
	default:
		return sq.Expr("EXISTS (SELECT 1 FROM json_each("+notesTable+"."+column+") WHERE json_each.value = ?)", value), nil
	}
}

func sortedFields[V any](m map[models.NoteField]V) []models.NoteField {
	fields := make([]models.NoteField, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}
