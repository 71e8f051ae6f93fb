// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"github.com/MKhiriev/go-note-keeper/models"
)

// MutationKind selects the reconciliation algorithm for a mutation.
type MutationKind int

const (
	// MutationPatch replaces the note in place wherever it is cached.
	// Sets are not re-sorted.
	MutationPatch MutationKind = iota

	// MutationVisibility patches in place and additionally inserts the note
	// at the front of Public when it became public, or removes it from
	// Public when it became private.
	MutationVisibility

	// MutationDelete removes the note from Owned.
	MutationDelete

	// MutationCreate prepends the new note to Owned. Used for create and
	// copy-as-template.
	MutationCreate
)

// String returns the kind name used in logs.
func (k MutationKind) String() string {
	switch k {
	case MutationPatch:
		return "patch"
	case MutationVisibility:
		return "visibility"
	case MutationDelete:
		return "delete"
	case MutationCreate:
		return "create"
	default:
		return "unknown"
	}
}

// ResultSets groups the three cached listings of a session.
type ResultSets struct {
	Owned        []models.Note
	SharedWithMe []models.Note
	Public       []models.Note
}

// Clone returns a deep copy of the sets.
func (s ResultSets) Clone() ResultSets {
	return ResultSets{
		Owned:        cloneNotes(s.Owned),
		SharedWithMe: cloneNotes(s.SharedWithMe),
		Public:       cloneNotes(s.Public),
	}
}

// Reconcile returns the result sets after a successful mutation. before is
// the note as cached prior to the mutation and after is the note as
// written; delete passes a nil after and create passes a nil before.
// The input sets are never modified.
func Reconcile(sets ResultSets, kind MutationKind, before, after *models.Note) ResultSets {
	out := sets.Clone()

	switch kind {
	case MutationPatch:
		if after == nil {
			return out
		}
		out.Owned = replaceByID(out.Owned, *after)
		out.SharedWithMe = replaceByID(out.SharedWithMe, *after)
		out.Public = replaceByID(out.Public, *after)

	case MutationVisibility:
		if after == nil {
			return out
		}
		out.Owned = replaceByID(out.Owned, *after)
		out.SharedWithMe = replaceByID(out.SharedWithMe, *after)
		if after.IsPublic {
			if indexByID(out.Public, after.ID) >= 0 {
				out.Public = replaceByID(out.Public, *after)
			} else {
				out.Public = prepend(out.Public, *after)
			}
		} else {
			out.Public = removeByID(out.Public, after.ID)
		}

	case MutationDelete:
		id := noteID(before, after)
		if id == "" {
			return out
		}
		out.Owned = removeByID(out.Owned, id)

	case MutationCreate:
		if after == nil {
			return out
		}
		out.Owned = prepend(out.Owned, *after)
	}

	return out
}

func noteID(before, after *models.Note) string {
	if before != nil {
		return before.ID
	}
	if after != nil {
		return after.ID
	}
	return ""
}

func indexByID(notes []models.Note, id string) int {
	for i := range notes {
		if notes[i].ID == id {
			return i
		}
	}
	return -1
}

func replaceByID(notes []models.Note, note models.Note) []models.Note {
	for i := range notes {
		if notes[i].ID == note.ID {
			notes[i] = note.Clone()
		}
	}
	return notes
}

func removeByID(notes []models.Note, id string) []models.Note {
	out := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

func prepend(notes []models.Note, note models.Note) []models.Note {
	out := make([]models.Note, 0, len(notes)+1)
	out = append(out, note.Clone())
	return append(out, notes...)
}

func cloneNotes(notes []models.Note) []models.Note {
	if notes == nil {
		return nil
	}
	out := make([]models.Note, len(notes))
	for i := range notes {
		out[i] = notes[i].Clone()
	}
	return out
}
