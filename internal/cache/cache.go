package cache

import (
	"sync"

	"github.com/MKhiriev/go-note-keeper/models"
)

// Cache holds the result sets and the open-note cursor of one session.
//
// The note repository is the only writer. The mutex lets background readers
// (the refresh worker, CLI output) observe a consistent snapshot. Accessors
// return copies.
type Cache struct {
	mu      sync.RWMutex
	sets    ResultSets
	current *models.Note
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{}
}

// Replace swaps in freshly loaded result sets.
func (c *Cache) Replace(sets ResultSets) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sets = sets.Clone()
}

// Reset clears every set and the cursor.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sets = ResultSets{}
	c.current = nil
}

// Apply reconciles a successful mutation into the cached sets and keeps the
// open-note cursor in step: a patched note replaces the cursor when ids
// match and a deleted note clears it.
func (c *Cache) Apply(kind MutationKind, before, after *models.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sets = Reconcile(c.sets, kind, before, after)

	if c.current == nil {
		return
	}

	switch kind {
	case MutationPatch, MutationVisibility:
		if after != nil && after.ID == c.current.ID {
			n := after.Clone()
			c.current = &n
		}
	case MutationDelete:
		if noteID(before, after) == c.current.ID {
			c.current = nil
		}
	}
}

// Find returns the cached copy of the note with id from any set.
func (c *Cache) Find(id string) (models.Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current != nil && c.current.ID == id {
		return c.current.Clone(), true
	}
	for _, set := range [][]models.Note{c.sets.Owned, c.sets.SharedWithMe, c.sets.Public} {
		if i := indexByID(set, id); i >= 0 {
			return set[i].Clone(), true
		}
	}
	return models.Note{}, false
}

// Sets returns a snapshot of the three result sets.
func (c *Cache) Sets() ResultSets {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.sets.Clone()
}

// Owned returns the notes owned by the principal.
func (c *Cache) Owned() []models.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return cloneNotes(c.sets.Owned)
}

// SharedWithMe returns the notes shared with the principal's email.
func (c *Cache) SharedWithMe() []models.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return cloneNotes(c.sets.SharedWithMe)
}

// Public returns every public note.
func (c *Cache) Public() []models.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return cloneNotes(c.sets.Public)
}

// Current returns the open note, or nil.
func (c *Cache) Current() *models.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return nil
	}
	n := c.current.Clone()
	return &n
}

// SetCurrent moves the open-note cursor. A nil note closes it.
func (c *Cache) SetCurrent(note *models.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if note == nil {
		c.current = nil
		return
	}
	n := note.Clone()
	c.current = &n
}
