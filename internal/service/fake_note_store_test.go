package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// memNoteStore is an in-memory store.NoteStore with the query semantics of
// the SQL repository. writes counts successful Create, Update and Delete
// calls.
type memNoteStore struct {
	mu     sync.Mutex
	notes  map[string]models.Note
	seq    int
	writes int

	// failWith, when set, is returned by every call.
	failWith error
}

func newMemNoteStore() *memNoteStore {
	return &memNoteStore{notes: map[string]models.Note{}}
}

func (m *memNoteStore) Create(_ context.Context, note models.Note) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return "", m.failWith
	}
	m.seq++
	note.ID = fmt.Sprintf("note-%d", m.seq)
	m.notes[note.ID] = note.Clone()
	m.writes++
	return note.ID, nil
}

func (m *memNoteStore) Get(_ context.Context, id string) (models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return models.Note{}, m.failWith
	}
	note, ok := m.notes[id]
	if !ok {
		return models.Note{}, store.ErrNoteNotFound
	}
	return note.Clone(), nil
}

func (m *memNoteStore) Update(_ context.Context, id string, patch models.NotePatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	note, ok := m.notes[id]
	if !ok {
		return store.ErrNoteNotFound
	}
	m.notes[id] = note.Apply(patch)
	m.writes++
	return nil
}

func (m *memNoteStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.notes[id]; !ok {
		return store.ErrNoteNotFound
	}
	delete(m.notes, id)
	m.writes++
	return nil
}

func (m *memNoteStore) Query(_ context.Context, q models.NoteQuery) ([]models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	out := []models.Note{}
	for _, note := range m.notes {
		if owner, ok := q.Equal[models.FieldOwnerID]; ok && note.OwnerID != owner {
			continue
		}
		if public, ok := q.Equal[models.FieldIsPublic]; ok && note.IsPublic != public {
			continue
		}
		if email, ok := q.ArrayContains[models.FieldSharedWith]; ok && !note.SharedWith.Contains(email) {
			continue
		}
		out = append(out, note.Clone())
	}

	if q.OrderByDesc == models.FieldUpdatedAt {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		})
	}
	return out, nil
}

func (m *memNoteStore) stored(id string) (models.Note, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.notes[id]
	return note, ok
}

func (m *memNoteStore) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.writes
}

// switchablePrincipal is a PrincipalSource tests can re-point between users.
type switchablePrincipal struct {
	mu sync.Mutex
	p  *models.Principal
}

func (s *switchablePrincipal) Principal() *models.Principal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.p
}

func (s *switchablePrincipal) as(p *models.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.p = p
}
