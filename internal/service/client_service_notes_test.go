// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/access"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	u1 = &models.Principal{ID: "u1", Email: "u1@x.com", DisplayName: "User One"}
	u2 = &models.Principal{ID: "u2", Email: "u2@x.com", DisplayName: "User Two"}
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type repoFixture struct {
	repo  *NoteRepository
	store *memNoteStore
	who   *switchablePrincipal
}

func newRepoFixture(t *testing.T) *repoFixture {
	t.Helper()

	st := newMemNoteStore()
	who := &switchablePrincipal{}
	repo := NewNoteRepository(st, nil, nil, who, logger.Nop())
	repo.now = func() time.Time { return baseTime }

	return &repoFixture{repo: repo, store: st, who: who}
}

func (f *repoFixture) create(t *testing.T, as *models.Principal, title, content string) models.Note {
	t.Helper()
	f.who.as(as)
	note, err := f.repo.CreateNote(context.Background(), title, content)
	require.NoError(t, err)
	return note
}

func ptr[T any](v T) *T { return &v }

func ids(notes []models.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

// ---------------------------------------------------------------------------
// CreateNote
// ---------------------------------------------------------------------------

func TestCreateNote_Defaults(t *testing.T) {
	f := newRepoFixture(t)
	existing := f.create(t, u1, "First", "")

	note := f.create(t, u1, "  ", "<p>body</p>")

	assert.NotEmpty(t, note.ID)
	assert.Equal(t, models.DefaultNoteTitle, note.Title)
	assert.Equal(t, models.DefaultNoteEmoji, note.Emoji)
	assert.Equal(t, u1.ID, note.OwnerID)
	assert.Equal(t, u1.Email, note.OwnerEmail)
	assert.Equal(t, u1.DisplayName, note.OwnerName)
	assert.False(t, note.IsPublic)
	assert.False(t, note.AllowCopy)
	assert.Empty(t, note.SharedWith)
	assert.Nil(t, note.CopiedFrom)

	assert.Equal(t, []string{note.ID, existing.ID}, ids(f.repo.Owned()))

	stored, ok := f.store.stored(note.ID)
	require.True(t, ok)
	assert.Equal(t, note, stored)
}

func TestCreateNote_AnonymousOwnerName(t *testing.T) {
	f := newRepoFixture(t)

	note := f.create(t, &models.Principal{ID: "u3", Email: "u3@x.com"}, "t", "")

	assert.Equal(t, models.AnonymousOwnerName, note.OwnerName)
}

func TestCreateNote_Unauthenticated(t *testing.T) {
	f := newRepoFixture(t)

	_, err := f.repo.CreateNote(context.Background(), "t", "c")

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, f.store.writeCount())
	assert.Empty(t, f.repo.Owned())
	assert.Equal(t, err, f.repo.LastError())
}

func TestCreateNote_EmojiSuggestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := mock.NewMockTextGenerator(ctrl)

	f := newRepoFixture(t)
	f.repo.generator = generator
	f.who.as(u1)

	content := strings.Repeat("ж", 300)
	generator.EXPECT().
		SuggestEmoji(gomock.Any(), "Recipe", strings.Repeat("ж", emojiSnippetLength)).
		Return(" 🍰 ", nil)

	note, err := f.repo.CreateNote(context.Background(), "Recipe", content)
	require.NoError(t, err)
	assert.Equal(t, "🍰", note.Emoji)
}

func TestCreateNote_EmojiFailureFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := mock.NewMockTextGenerator(ctrl)

	f := newRepoFixture(t)
	f.repo.generator = generator
	f.who.as(u1)

	generator.EXPECT().SuggestEmoji(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("quota exceeded"))

	note, err := f.repo.CreateNote(context.Background(), "Recipe", "flour")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultNoteEmoji, note.Emoji)
	assert.NoError(t, f.repo.LastError())
}

func TestCreateNote_StoreFailure(t *testing.T) {
	f := newRepoFixture(t)
	f.who.as(u1)
	f.store.failWith = errors.New("db down")

	_, err := f.repo.CreateNote(context.Background(), "t", "c")

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "create note", upErr.Op)
	assert.Empty(t, f.repo.Owned())
}

// ---------------------------------------------------------------------------
// UpdateNote
// ---------------------------------------------------------------------------

func TestUpdateNote_ShareUpgradeScenario(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	recipe := f.create(t, u1, "Recipe", "flour")

	_, err := f.repo.ShareNote(ctx, recipe.ID, "u2@x.com", models.PermissionViewer)
	require.NoError(t, err)

	f.who.as(u2)
	_, err = f.repo.UpdateNote(ctx, recipe.ID, models.NotePatch{Content: ptr("flour, sugar")})
	var perr *PermissionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, recipe.ID, perr.NoteID)

	f.who.as(u1)
	shared, err := f.repo.ShareNote(ctx, recipe.ID, "u2@x.com", models.PermissionEditor)
	require.NoError(t, err)
	assert.Equal(t, models.EmailList{"u2@x.com"}, shared.SharedWith)

	f.who.as(u2)
	updated, err := f.repo.UpdateNote(ctx, recipe.ID, models.NotePatch{Content: ptr("flour, sugar")})
	require.NoError(t, err)
	assert.Equal(t, "flour, sugar", updated.Content)
	assert.True(t, updated.UpdatedAt.After(shared.UpdatedAt))
	assert.Equal(t, u1.ID, updated.OwnerID)

	stored, _ := f.store.stored(recipe.ID)
	assert.Equal(t, "flour, sugar", stored.Content)
}

func TestUpdateNote_EditorCannotTouchOwnerFields(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")
	_, err := f.repo.ShareNote(ctx, note.ID, u2.Email, models.PermissionEditor)
	require.NoError(t, err)
	writes := f.store.writeCount()

	f.who.as(u2)
	_, err = f.repo.UpdateNote(ctx, note.ID, models.NotePatch{Title: ptr("x"), IsPublic: ptr(true)})

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, writes, f.store.writeCount())
}

func TestUpdateNote_RejectsDuplicateShares(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")
	writes := f.store.writeCount()

	for _, shared := range []models.EmailList{
		{"u2@x.com", "u2@x.com"},
		{"u2@x.com", "U2@x.com"},
	} {
		_, err := f.repo.UpdateNote(ctx, note.ID, models.NotePatch{SharedWith: &shared})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ErrorIs(t, err, validators.ErrDuplicateEmail)
	}

	assert.Equal(t, writes, f.store.writeCount())
	stored, _ := f.store.stored(note.ID)
	assert.Empty(t, stored.SharedWith)
}

func TestUpdateNote_OwnerPatchStoresCanonicalShares(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")

	shared := models.EmailList{" U2@x.com"}
	permissions := models.PermissionMap{"U2@X.COM": models.PermissionEditor}
	_, err := f.repo.UpdateNote(ctx, note.ID, models.NotePatch{SharedWith: &shared, Permissions: &permissions})
	require.NoError(t, err)

	stored, _ := f.store.stored(note.ID)
	assert.Equal(t, models.EmailList{"u2@x.com"}, stored.SharedWith)
	assert.Equal(t, models.PermissionMap{"u2@x.com": models.PermissionEditor}, stored.Permissions)

	f.who.as(u2)
	_, err = f.repo.UpdateNote(ctx, note.ID, models.NotePatch{Content: ptr("edited")})
	assert.NoError(t, err)
}

func TestUpdateNote_OwnerEmailInShareListAnyCase(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")

	shared := models.EmailList{"U1@x.com"}
	_, err := f.repo.UpdateNote(ctx, note.ID, models.NotePatch{SharedWith: &shared})

	assert.ErrorIs(t, err, ErrShareWithOwner)
}

func TestUpdateNote_NotFound(t *testing.T) {
	f := newRepoFixture(t)
	f.who.as(u1)

	_, err := f.repo.UpdateNote(context.Background(), "missing", models.NotePatch{Title: ptr("x")})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.NoteID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestUpdateNote_EmptyPatch(t *testing.T) {
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")

	_, err := f.repo.UpdateNote(context.Background(), note.ID, models.NotePatch{})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateNote_PatchesCachesAndCursor(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	a := f.create(t, u1, "A", "")
	b := f.create(t, u1, "B", "")

	opened, err := f.repo.GetNoteByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, opened)

	_, err = f.repo.UpdateNote(ctx, a.ID, models.NotePatch{Title: ptr("A2")})
	require.NoError(t, err)

	owned := f.repo.Owned()
	assert.Equal(t, []string{b.ID, a.ID}, ids(owned), "patches keep the cached order")
	assert.Equal(t, "A2", owned[1].Title)
	require.NotNil(t, f.repo.Current())
	assert.Equal(t, "A2", f.repo.Current().Title)
}

func TestUpdateNote_StoreFailureLeavesCache(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "A", "")

	f.store.failWith = errors.New("timeout")
	_, err := f.repo.UpdateNote(ctx, note.ID, models.NotePatch{Title: ptr("A2")})

	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, "A", f.repo.Owned()[0].Title)
	assert.ErrorIs(t, f.repo.LastError(), ErrUpstream)
}

func TestUpdateNote_AnonymousDenied(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Public Doc", "")
	_, err := f.repo.TogglePublicStatus(ctx, note.ID, true)
	require.NoError(t, err)

	f.who.as(nil)
	got, err := f.repo.GetNoteByID(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, access.CanRead(*got, nil))

	_, err = f.repo.UpdateNote(ctx, note.ID, models.NotePatch{Title: ptr("defaced")})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

// ---------------------------------------------------------------------------
// ShareNote / RemoveNoteSharing
// ---------------------------------------------------------------------------

func TestShareNote_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")

	for i := 0; i < 2; i++ {
		_, err := f.repo.ShareNote(ctx, note.ID, "u2@x.com", models.PermissionViewer)
		require.NoError(t, err)
	}

	stored, _ := f.store.stored(note.ID)
	assert.Equal(t, models.EmailList{"u2@x.com"}, stored.SharedWith)
	assert.Equal(t, models.PermissionMap{"u2@x.com": models.PermissionViewer}, stored.Permissions)
}

func TestShareNote_StoresCanonicalEmail(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")

	_, err := f.repo.ShareNote(ctx, note.ID, " U2@X.com", models.PermissionViewer)
	require.NoError(t, err)
	_, err = f.repo.ShareNote(ctx, note.ID, "u2@x.com", models.PermissionEditor)
	require.NoError(t, err)

	stored, _ := f.store.stored(note.ID)
	assert.Equal(t, models.EmailList{"u2@x.com"}, stored.SharedWith)
	assert.Equal(t, models.PermissionMap{"u2@x.com": models.PermissionEditor}, stored.Permissions)

	_, err = f.repo.RemoveNoteSharing(ctx, note.ID, "U2@x.com")
	require.NoError(t, err)
	stored, _ = f.store.stored(note.ID)
	assert.Empty(t, stored.SharedWith)
	assert.Empty(t, stored.Permissions)
}

func TestShareNote_Validation(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")
	writes := f.store.writeCount()

	tests := []struct {
		name       string
		email      string
		permission models.Permission
	}{
		{"empty email", "", models.PermissionViewer},
		{"malformed email", "not-an-email", models.PermissionViewer},
		{"unknown permission", "u2@x.com", "owner"},
		{"owner email", u1.Email, models.PermissionEditor},
		{"owner email in other case", " U1@X.com ", models.PermissionEditor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.repo.ShareNote(ctx, note.ID, tt.email, tt.permission)

			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Equal(t, writes, f.store.writeCount())
		})
	}
}

func TestShareNote_OnlyOwner(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")
	_, err := f.repo.ShareNote(ctx, note.ID, u2.Email, models.PermissionEditor)
	require.NoError(t, err)

	f.who.as(u2)
	_, err = f.repo.ShareNote(ctx, note.ID, "u3@x.com", models.PermissionViewer)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.repo.RemoveNoteSharing(ctx, note.ID, u2.Email)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRemoveNoteSharing(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")
	_, err := f.repo.ShareNote(ctx, note.ID, "u2@x.com", models.PermissionEditor)
	require.NoError(t, err)
	_, err = f.repo.ShareNote(ctx, note.ID, "u3@x.com", models.PermissionViewer)
	require.NoError(t, err)

	updated, err := f.repo.RemoveNoteSharing(ctx, note.ID, "u2@x.com")
	require.NoError(t, err)

	assert.Equal(t, models.EmailList{"u3@x.com"}, updated.SharedWith)
	assert.Equal(t, models.PermissionMap{"u3@x.com": models.PermissionViewer}, updated.Permissions)
}

func TestRemoveNoteSharing_AbsentEmailIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")
	before, _ := f.store.stored(note.ID)
	writes := f.store.writeCount()

	got, err := f.repo.RemoveNoteSharing(ctx, note.ID, "nobody@x.com")

	require.NoError(t, err)
	assert.Equal(t, before, got)
	assert.Equal(t, writes, f.store.writeCount())
}

// ---------------------------------------------------------------------------
// Visibility
// ---------------------------------------------------------------------------

func TestTogglePublicStatus_ReconcilesPublic(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")

	for i := 0; i < 2; i++ {
		_, err := f.repo.TogglePublicStatus(ctx, note.ID, true)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{note.ID}, ids(f.repo.Public()))
	assert.True(t, f.repo.Owned()[0].IsPublic)

	_, err := f.repo.TogglePublicStatus(ctx, note.ID, false)
	require.NoError(t, err)
	assert.Empty(t, f.repo.Public())
	assert.False(t, f.repo.Owned()[0].IsPublic)
}

func TestTogglePublicStatus_OnlyOwner(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")
	_, err := f.repo.ShareNote(ctx, note.ID, u2.Email, models.PermissionEditor)
	require.NoError(t, err)

	f.who.as(u2)
	_, err = f.repo.TogglePublicStatus(ctx, note.ID, true)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.repo.ToggleAllowCopy(ctx, note.ID, true)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestToggleAllowCopy(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")

	updated, err := f.repo.ToggleAllowCopy(ctx, note.ID, true)
	require.NoError(t, err)

	assert.True(t, updated.AllowCopy)
	assert.True(t, f.repo.Owned()[0].AllowCopy)
	assert.Empty(t, f.repo.Public())
}

// ---------------------------------------------------------------------------
// CopyNoteAsTemplate
// ---------------------------------------------------------------------------

func TestCopyNoteAsTemplate_Scenario(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	source := f.create(t, u1, "Template Note", "<h1>Plan</h1>")
	_, err := f.repo.ShareNote(ctx, source.ID, "u3@x.com", models.PermissionViewer)
	require.NoError(t, err)
	_, err = f.repo.ToggleAllowCopy(ctx, source.ID, true)
	require.NoError(t, err)

	f.who.as(u2)
	clone, err := f.repo.CopyNoteAsTemplate(ctx, source.ID)
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, clone.ID)
	assert.Equal(t, "Copy of Template Note", clone.Title)
	assert.Equal(t, source.Content, clone.Content)
	assert.Equal(t, source.Emoji, clone.Emoji)
	assert.Equal(t, u2.ID, clone.OwnerID)
	require.NotNil(t, clone.CopiedFrom)
	assert.Equal(t, source.ID, *clone.CopiedFrom)
	assert.Empty(t, clone.SharedWith)
	assert.Empty(t, clone.Permissions)
	assert.False(t, clone.IsPublic)
	assert.False(t, clone.AllowCopy)
	assert.Equal(t, clone.ID, f.repo.Owned()[0].ID)
}

func TestCopyNoteAsTemplate_DeniedWithoutAllowCopy(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	source := f.create(t, u1, "Private", "")
	writes := f.store.writeCount()

	f.who.as(u2)
	_, err := f.repo.CopyNoteAsTemplate(ctx, source.ID)

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, writes, f.store.writeCount())
}

func TestCopyNoteAsTemplate_OwnerMayAlwaysCopy(t *testing.T) {
	f := newRepoFixture(t)
	source := f.create(t, u1, "Mine", "")

	clone, err := f.repo.CopyNoteAsTemplate(context.Background(), source.ID)

	require.NoError(t, err)
	assert.Equal(t, u1.ID, clone.OwnerID)
}

// ---------------------------------------------------------------------------
// DeleteNote / GetNoteByID
// ---------------------------------------------------------------------------

func TestDeleteNote(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	keep := f.create(t, u1, "Keep", "")
	gone := f.create(t, u1, "Gone", "")
	_, err := f.repo.GetNoteByID(ctx, gone.ID)
	require.NoError(t, err)

	require.NoError(t, f.repo.DeleteNote(ctx, gone.ID))

	assert.Equal(t, []string{keep.ID}, ids(f.repo.Owned()))
	assert.Nil(t, f.repo.Current())

	got, err := f.repo.GetNoteByID(ctx, gone.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteNote_Checks(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")
	_, err := f.repo.ShareNote(ctx, note.ID, u2.Email, models.PermissionEditor)
	require.NoError(t, err)

	f.who.as(u2)
	assert.ErrorIs(t, f.repo.DeleteNote(ctx, note.ID), ErrPermissionDenied)

	f.who.as(u1)
	assert.ErrorIs(t, f.repo.DeleteNote(ctx, "missing"), ErrNoteNotFound)

	_, ok := f.store.stored(note.ID)
	assert.True(t, ok)
}

func TestGetNoteByID_SetsCursorWithoutReadCheck(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Private", "secret")

	f.who.as(u2)
	got, err := f.repo.GetNoteByID(ctx, note.ID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, access.CanRead(*got, u2))
	assert.Equal(t, note.ID, f.repo.Current().ID)
}

// ---------------------------------------------------------------------------
// Invariants
// ---------------------------------------------------------------------------

func TestOwnerIDInvariantAcrossMutations(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")

	steps := []func() error{
		func() error { _, err := f.repo.UpdateNote(ctx, note.ID, models.NotePatch{Title: ptr("t2")}); return err },
		func() error {
			_, err := f.repo.ShareNote(ctx, note.ID, u2.Email, models.PermissionEditor)
			return err
		},
		func() error { _, err := f.repo.TogglePublicStatus(ctx, note.ID, true); return err },
		func() error { _, err := f.repo.ToggleAllowCopy(ctx, note.ID, true); return err },
		func() error {
			f.who.as(u2)
			defer f.who.as(u1)
			_, err := f.repo.UpdateNote(ctx, note.ID, models.NotePatch{Content: ptr("by editor")})
			return err
		},
		func() error { _, err := f.repo.RemoveNoteSharing(ctx, note.ID, u2.Email); return err },
	}

	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		stored, _ := f.store.stored(note.ID)
		assert.Equal(t, u1.ID, stored.OwnerID, "step %d", i)
	}
}

func TestUpdatedAtMonotonic(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")

	clock := []time.Time{baseTime.Add(-time.Hour), baseTime.Add(-2 * time.Hour), baseTime.Add(time.Hour)}
	prev := note.UpdatedAt
	for _, now := range clock {
		f.repo.now = func() time.Time { return now }

		updated, err := f.repo.UpdateNote(ctx, note.ID, models.NotePatch{Title: ptr(now.String())})
		require.NoError(t, err)
		assert.True(t, updated.UpdatedAt.After(prev), "%v must follow %v", updated.UpdatedAt, prev)
		prev = updated.UpdatedAt
	}
	assert.Equal(t, baseTime.Add(time.Hour), prev)
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad_PopulatesResultSets(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)

	mine := f.create(t, u1, "Mine", "")
	public := f.create(t, u1, "Public", "")
	_, err := f.repo.TogglePublicStatus(ctx, public.ID, true)
	require.NoError(t, err)
	theirs := f.create(t, u2, "Theirs", "")
	_, err = f.repo.ShareNote(ctx, theirs.ID, u1.Email, models.PermissionViewer)
	require.NoError(t, err)

	f.who.as(u1)
	require.NoError(t, f.repo.Load(ctx))

	assert.ElementsMatch(t, []string{mine.ID, public.ID}, ids(f.repo.Owned()))
	assert.Equal(t, []string{theirs.ID}, ids(f.repo.SharedWithMe()))
	assert.Equal(t, []string{public.ID}, ids(f.repo.Public()))
	assert.False(t, f.repo.Loading())
}

func TestLoad_OrderedByUpdatedAtDesc(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	first := f.create(t, u1, "First", "")
	second := f.create(t, u1, "Second", "")
	_, err := f.repo.UpdateNote(ctx, first.ID, models.NotePatch{Title: ptr("First again")})
	require.NoError(t, err)

	require.NoError(t, f.repo.Load(ctx))

	assert.Equal(t, []string{first.ID, second.ID}, ids(f.repo.Owned()))
}

func TestLoad_WithoutPrincipalOnlyPublic(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	public := f.create(t, u1, "Public", "")
	_, err := f.repo.TogglePublicStatus(ctx, public.ID, true)
	require.NoError(t, err)
	f.create(t, u1, "Private", "")

	f.who.as(nil)
	f.repo.OnPrincipalChange(ctx, nil)

	assert.Empty(t, f.repo.Owned())
	assert.Empty(t, f.repo.SharedWithMe())
	assert.Equal(t, []string{public.ID}, ids(f.repo.Public()))
}

func TestLoad_FailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	f := newRepoFixture(t)
	note := f.create(t, u1, "Doc", "")

	f.store.failWith = errors.New("offline")
	err := f.repo.Load(ctx)

	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, []string{note.ID}, ids(f.repo.Owned()))
}

// ---------------------------------------------------------------------------
// UploadImage
// ---------------------------------------------------------------------------

func TestUploadImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mock.NewMockObjectStore(ctrl)

	f := newRepoFixture(t)
	f.repo.objects = objects
	f.who.as(u1)

	wantPath := "notes/n1/images/1772366400000-cat.png"
	objects.EXPECT().Put(gomock.Any(), wantPath, []byte{1, 2, 3}).Return("https://cdn/"+wantPath, nil)

	url, err := f.repo.UploadImage(context.Background(), "n1", "../../cat.png", []byte{1, 2, 3})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn/"+wantPath, url)
}

func TestUploadImage_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newRepoFixture(t)
	f.repo.objects = mock.NewMockObjectStore(ctrl)

	_, err := f.repo.UploadImage(context.Background(), "n1", "a.png", []byte{1})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	f.who.as(u1)
	_, err = f.repo.UploadImage(context.Background(), "n1", " ", []byte{1})
	assert.ErrorIs(t, err, ErrEmptyFilename)

	_, err = f.repo.UploadImage(context.Background(), "n1", "a.png", nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestUploadImage_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	objects := mock.NewMockObjectStore(ctrl)
	f := newRepoFixture(t)
	f.repo.objects = objects
	f.who.as(u1)

	objects.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bucket missing"))

	_, err := f.repo.UploadImage(context.Background(), "n1", "a.png", []byte{1})
	assert.ErrorIs(t, err, ErrUpstream)
}
