package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-note-keeper/internal/access"
	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/cache"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/models"
)

// emojiSnippetLength is how many runes of content accompany the title in
// an emoji suggestion request.
const emojiSnippetLength = 200

// NoteRepository exposes the note operations of one client session.
//
// Every mutation reads the current note, checks the principal's capability
// with package access, writes through the [store.NoteStore] and then
// reconciles the cached result sets in place. Checks run before any write,
// and a failed call leaves the cache untouched.
type NoteRepository struct {
	notes     store.NoteStore
	objects   store.ObjectStore
	generator adapter.TextGenerator
	auth      PrincipalSource
	validator validators.Validator
	cache     *cache.Cache
	now       func() time.Time

	mu        sync.Mutex
	loading   bool
	lastErr   error
	lastStamp time.Time

	logger *logger.Logger
}

// NewNoteRepository wires a repository over the given collaborators. The
// text generator may be nil, in which case every note gets the default
// emoji.
func NewNoteRepository(
	notes store.NoteStore,
	objects store.ObjectStore,
	generator adapter.TextGenerator,
	auth PrincipalSource,
	logger *logger.Logger,
) *NoteRepository {
	return &NoteRepository{
		notes:     notes,
		objects:   objects,
		generator: generator,
		auth:      auth,
		validator: validators.NewNoteValidator(),
		cache:     cache.New(),
		now:       time.Now,
		logger:    logger,
	}
}

// OnPrincipalChange drops the cache of the previous principal and loads the
// result sets of the new one. Subscribe it to the [AuthSession].
func (r *NoteRepository) OnPrincipalChange(ctx context.Context, principal *models.Principal) {
	r.cache.Reset()
	if err := r.Load(ctx); err != nil {
		r.logger.Err(err).Str("func", "*NoteRepository.OnPrincipalChange").Msg("error loading notes for new principal")
	}
}

// Load re-populates Owned, SharedWithMe and Public with three concurrent
// queries. Without a principal only Public is loaded.
func (r *NoteRepository) Load(ctx context.Context) error {
	r.setLoading(true)
	defer r.setLoading(false)

	principal := r.auth.Principal()

	var sets cache.ResultSets
	g, gctx := errgroup.WithContext(ctx)

	if principal != nil {
		g.Go(func() error {
			owned, err := r.notes.Query(gctx, models.OwnedBy(principal.ID))
			sets.Owned = owned
			return err
		})
		if email := models.NormalizeEmail(principal.Email); email != "" {
			g.Go(func() error {
				shared, err := r.notes.Query(gctx, models.SharedWithEmail(email))
				sets.SharedWithMe = shared
				return err
			})
		}
	}
	g.Go(func() error {
		public, err := r.notes.Query(gctx, models.PublicNotes())
		sets.Public = public
		return err
	})

	if err := g.Wait(); err != nil {
		r.logger.Err(err).Str("func", "*NoteRepository.Load").Msg("error querying result sets")
		return r.finish(upstream("load notes", err))
	}

	r.cache.Replace(sets)
	return r.finish(nil)
}

// CreateNote writes a new private note owned by the caller and prepends it
// to Owned. An empty title becomes [models.DefaultNoteTitle].
func (r *NoteRepository) CreateNote(ctx context.Context, title, content string) (models.Note, error) {
	principal := r.auth.Principal()
	if principal == nil {
		return models.Note{}, r.finish(unauthenticated("create note"))
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = models.DefaultNoteTitle
	}

	stamp := r.stamp(time.Time{})
	note := models.Note{
		Title:       title,
		Content:     content,
		Emoji:       r.suggestEmoji(ctx, title, content),
		OwnerID:     principal.ID,
		OwnerName:   principal.Name(),
		OwnerEmail:  principal.Email,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
		SharedWith:  models.EmailList{},
		Permissions: models.PermissionMap{},
	}

	id, err := r.notes.Create(ctx, note)
	if err != nil {
		r.logger.Err(err).Str("func", "*NoteRepository.CreateNote").Msg("error creating note")
		return models.Note{}, r.finish(upstream("create note", err))
	}
	note.ID = id

	r.cache.Apply(cache.MutationCreate, nil, &note)
	return note, r.finish(nil)
}

// UpdateNote merges patch into the note. Owners may patch every field; a
// shared editor may only change title, content and emoji.
func (r *NoteRepository) UpdateNote(ctx context.Context, id string, patch models.NotePatch) (models.Note, error) {
	if patch.IsEmpty() {
		return models.Note{}, r.finish(&ValidationError{Field: "patch", Err: validators.ErrEmptyPatch})
	}
	if err := r.validator.Validate(ctx, patch, validators.FieldSharedWith, validators.FieldPermissions); err != nil {
		return models.Note{}, r.finish(&ValidationError{Field: "patch", Err: err})
	}

	kind := cache.MutationPatch
	if patch.IsPublic != nil || patch.AllowCopy != nil {
		kind = cache.MutationVisibility
	}

	return r.mutate(ctx, "edit", id, access.CanEdit, kind, func(before models.Note, principal *models.Principal) (models.NotePatch, bool, error) {
		if patch.TouchesOwnerFields() && !access.IsOwner(before, principal) {
			return models.NotePatch{}, false, denied("edit sharing and visibility", id)
		}
		if patch.SharedWith != nil && patch.SharedWith.Contains(before.OwnerEmail) {
			return models.NotePatch{}, false, &ValidationError{Field: "shared_with", Err: ErrShareWithOwner}
		}

		out := patch
		if patch.SharedWith != nil {
			shared := patch.SharedWith.Normalized()
			out.SharedWith = &shared
		}
		if patch.Permissions != nil {
			permissions := patch.Permissions.Normalized()
			out.Permissions = &permissions
		}
		return out, true, nil
	})
}

// DeleteNote removes the note permanently. Only the owner may delete.
func (r *NoteRepository) DeleteNote(ctx context.Context, id string) error {
	principal := r.auth.Principal()

	before, err := r.get(ctx, "delete note", id)
	if err != nil {
		return r.finish(err)
	}
	if !access.CanDelete(before, principal) {
		return r.finish(denied("delete", id))
	}

	if err = r.notes.Delete(ctx, id); err != nil {
		r.logger.Err(err).Str("func", "*NoteRepository.DeleteNote").Str("note_id", id).Msg("error deleting note")
		return r.finish(r.storeError("delete note", id, err))
	}

	r.cache.Apply(cache.MutationDelete, &before, nil)
	return r.finish(nil)
}

// ShareNote grants email the given permission. Sharing is a set: a repeated
// call with the same email only updates the permission.
func (r *NoteRepository) ShareNote(ctx context.Context, id, email string, permission models.Permission) (models.Note, error) {
	email = models.NormalizeEmail(email)
	if err := r.validator.Validate(ctx, models.Share{Email: email, Permission: permission}); err != nil {
		return models.Note{}, r.finish(&ValidationError{Field: "share", Err: err})
	}

	return r.mutate(ctx, "share", id, access.CanShare, cache.MutationPatch, func(before models.Note, _ *models.Principal) (models.NotePatch, bool, error) {
		if strings.EqualFold(email, strings.TrimSpace(before.OwnerEmail)) {
			return models.NotePatch{}, false, &ValidationError{Field: "email", Err: ErrShareWithOwner}
		}

		shared := before.SharedWith.With(email)
		permissions := before.Permissions.Normalized()
		permissions[email] = permission

		return models.NotePatch{SharedWith: &shared, Permissions: &permissions}, true, nil
	})
}

// RemoveNoteSharing revokes the access of email. Revoking an email that was
// never shared succeeds without writing.
func (r *NoteRepository) RemoveNoteSharing(ctx context.Context, id, email string) (models.Note, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.Note{}, r.finish(&ValidationError{Field: "email", Err: ErrEmptyEmail})
	}

	return r.mutate(ctx, "unshare", id, access.CanShare, cache.MutationPatch, func(before models.Note, _ *models.Principal) (models.NotePatch, bool, error) {
		_, granted := before.Permissions.For(email)
		if !before.SharedWith.Contains(email) && !granted {
			return models.NotePatch{}, false, nil
		}

		shared := before.SharedWith.Without(email)
		permissions := before.Permissions.Normalized()
		delete(permissions, models.NormalizeEmail(email))

		return models.NotePatch{SharedWith: &shared, Permissions: &permissions}, true, nil
	})
}

// TogglePublicStatus publishes or unpublishes the note and reconciles the
// Public set.
func (r *NoteRepository) TogglePublicStatus(ctx context.Context, id string, isPublic bool) (models.Note, error) {
	return r.mutate(ctx, "change visibility", id, access.CanToggleVisibility, cache.MutationVisibility, func(models.Note, *models.Principal) (models.NotePatch, bool, error) {
		return models.NotePatch{IsPublic: &isPublic}, true, nil
	})
}

// ToggleAllowCopy enables or disables copying the note as a template.
func (r *NoteRepository) ToggleAllowCopy(ctx context.Context, id string, allowCopy bool) (models.Note, error) {
	return r.mutate(ctx, "change copy permission", id, access.CanToggleVisibility, cache.MutationVisibility, func(models.Note, *models.Principal) (models.NotePatch, bool, error) {
		return models.NotePatch{AllowCopy: &allowCopy}, true, nil
	})
}

// CopyNoteAsTemplate creates a private copy of the note owned by the caller.
// The copy records the source in CopiedFrom and starts with no sharing.
func (r *NoteRepository) CopyNoteAsTemplate(ctx context.Context, id string) (models.Note, error) {
	principal := r.auth.Principal()
	if principal == nil {
		return models.Note{}, r.finish(unauthenticated("copy note"))
	}

	source, err := r.get(ctx, "copy note", id)
	if err != nil {
		return models.Note{}, r.finish(err)
	}
	if !access.CanCopy(source, principal) {
		return models.Note{}, r.finish(denied("copy", id))
	}

	stamp := r.stamp(time.Time{})
	sourceID := source.ID
	note := models.Note{
		Title:       models.CopyTitlePrefix + source.Title,
		Content:     source.Content,
		Emoji:       source.Emoji,
		OwnerID:     principal.ID,
		OwnerName:   principal.Name(),
		OwnerEmail:  principal.Email,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
		SharedWith:  models.EmailList{},
		Permissions: models.PermissionMap{},
		CopiedFrom:  &sourceID,
	}

	newID, err := r.notes.Create(ctx, note)
	if err != nil {
		r.logger.Err(err).Str("func", "*NoteRepository.CopyNoteAsTemplate").Str("note_id", id).Msg("error creating copy")
		return models.Note{}, r.finish(upstream("copy note", err))
	}
	note.ID = newID

	r.cache.Apply(cache.MutationCreate, nil, &note)
	return note, r.finish(nil)
}

// GetNoteByID fetches the note and makes it the open note. It returns nil
// without error when the note does not exist. Read access is not checked
// here; callers decide what to show with [access.CanRead].
func (r *NoteRepository) GetNoteByID(ctx context.Context, id string) (*models.Note, error) {
	note, err := r.notes.Get(ctx, id)
	if errors.Is(err, store.ErrNoteNotFound) {
		r.cache.SetCurrent(nil)
		return nil, r.finish(nil)
	}
	if err != nil {
		r.logger.Err(err).Str("func", "*NoteRepository.GetNoteByID").Str("note_id", id).Msg("error fetching note")
		return nil, r.finish(upstream("get note", err))
	}

	r.cache.SetCurrent(&note)
	return &note, r.finish(nil)
}

// UploadImage stores an image for the note and returns its URL. Objects are
// kept under notes/{noteID}/images/{unixMillis}-{filename}.
func (r *NoteRepository) UploadImage(ctx context.Context, noteID, filename string, data []byte) (string, error) {
	if r.auth.Principal() == nil {
		return "", r.finish(unauthenticated("upload image"))
	}

	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return "", r.finish(&ValidationError{Field: "filename", Err: ErrEmptyFilename})
	}
	if len(data) == 0 {
		return "", r.finish(&ValidationError{Field: "file", Err: ErrEmptyFile})
	}

	objectPath := fmt.Sprintf("notes/%s/images/%d-%s", noteID, r.now().UnixMilli(), name)
	url, err := r.objects.Put(ctx, objectPath, data)
	if err != nil {
		r.logger.Err(err).Str("func", "*NoteRepository.UploadImage").Str("path", objectPath).Msg("error uploading image")
		return "", r.finish(upstream("upload image", err))
	}

	return url, r.finish(nil)
}

// Owned returns the cached notes owned by the principal.
func (r *NoteRepository) Owned() []models.Note {
	return r.cache.Owned()
}

// SharedWithMe returns the cached notes shared with the principal.
func (r *NoteRepository) SharedWithMe() []models.Note {
	return r.cache.SharedWithMe()
}

// Public returns the cached public notes.
func (r *NoteRepository) Public() []models.Note {
	return r.cache.Public()
}

// Current returns the open note, or nil.
func (r *NoteRepository) Current() *models.Note {
	return r.cache.Current()
}

// SetCurrent moves the open-note cursor without fetching.
func (r *NoteRepository) SetCurrent(note *models.Note) {
	r.cache.SetCurrent(note)
}

// Loading reports whether a Load is in flight.
func (r *NoteRepository) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loading
}

// LastError returns the error of the most recent operation, or nil when it
// succeeded.
func (r *NoteRepository) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lastErr
}

// patchBuilder derives the patch for a checked mutation. Returning false
// skips the write and leaves the note unchanged.
type patchBuilder func(before models.Note, principal *models.Principal) (models.NotePatch, bool, error)

// mutate runs the shared read, check, write, reconcile sequence.
func (r *NoteRepository) mutate(
	ctx context.Context,
	op, id string,
	allowed func(models.Note, *models.Principal) bool,
	kind cache.MutationKind,
	build patchBuilder,
) (models.Note, error) {
	principal := r.auth.Principal()

	before, err := r.get(ctx, op+" note", id)
	if err != nil {
		return models.Note{}, r.finish(err)
	}
	if !allowed(before, principal) {
		return models.Note{}, r.finish(denied(op, id))
	}

	patch, write, err := build(before, principal)
	if err != nil {
		return models.Note{}, r.finish(err)
	}
	if !write {
		return before, r.finish(nil)
	}

	stamp := r.stamp(before.UpdatedAt)
	patch.UpdatedAt = &stamp

	if err = r.notes.Update(ctx, id, patch); err != nil {
		r.logger.Err(err).Str("func", "*NoteRepository.mutate").Str("op", op).Str("note_id", id).Msg("error updating note")
		return models.Note{}, r.finish(r.storeError(op+" note", id, err))
	}

	after := before.Apply(patch)
	r.cache.Apply(kind, &before, &after)
	r.logger.Debug().Str("op", op).Str("note_id", id).Stringer("reconcile", kind).Msg("note updated")

	return after, r.finish(nil)
}

func (r *NoteRepository) get(ctx context.Context, op, id string) (models.Note, error) {
	note, err := r.notes.Get(ctx, id)
	if err != nil {
		return models.Note{}, r.storeError(op, id, err)
	}
	return note, nil
}

func (r *NoteRepository) storeError(op, id string, err error) error {
	if errors.Is(err, store.ErrNoteNotFound) {
		return &NotFoundError{NoteID: id}
	}
	return upstream(op, err)
}

// suggestEmoji asks the generator for a glyph and falls back to
// models.DefaultNoteEmoji on any failure.
func (r *NoteRepository) suggestEmoji(ctx context.Context, title, content string) string {
	if r.generator == nil {
		return models.DefaultNoteEmoji
	}

	emoji, err := r.generator.SuggestEmoji(ctx, title, truncate(content, emojiSnippetLength))
	emoji = strings.TrimSpace(emoji)
	if err != nil || emoji == "" {
		r.logger.Warn().Err(err).Str("func", "*NoteRepository.suggestEmoji").Msg("emoji suggestion failed, using default")
		return models.DefaultNoteEmoji
	}
	return emoji
}

// stamp returns the next updatedAt value. It never goes back in time within
// the session and is strictly later than prev.
func (r *NoteRepository) stamp(prev time.Time) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.now().UTC().Truncate(time.Millisecond)
	floor := r.lastStamp
	if prev.After(floor) {
		floor = prev
	}
	if !floor.IsZero() && !t.After(floor) {
		t = floor.Add(time.Millisecond)
	}
	r.lastStamp = t
	return t
}

func (r *NoteRepository) finish(err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastErr = err
	return err
}

func (r *NoteRepository) setLoading(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loading = loading
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
