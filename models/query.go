package models

// NoteField names a queryable note attribute.
type NoteField string

// Queryable note fields.
const (
	FieldOwnerID    NoteField = "owner_id"
	FieldIsPublic   NoteField = "is_public"
	FieldSharedWith NoteField = "shared_with"
	FieldUpdatedAt  NoteField = "updated_at"
)

// IsValid reports whether f is a known queryable field.
func (f NoteField) IsValid() bool {
	switch f {
	case FieldOwnerID, FieldIsPublic, FieldSharedWith, FieldUpdatedAt:
		return true
	default:
		return false
	}
}

// NoteQuery describes a filtered, ordered listing of notes.
//
// All Equal and ArrayContains predicates are combined with AND. When
// OrderByDesc is set, results are sorted by that field, most recent first.
type NoteQuery struct {
	// Equal filters by scalar equality (owner_id, is_public).
	Equal map[NoteField]any `json:"equal,omitempty"`

	// ArrayContains filters by membership of a value in an array field
	// (shared_with).
	ArrayContains map[NoteField]string `json:"array_contains,omitempty"`

	// OrderByDesc sorts descending by the given field.
	OrderByDesc NoteField `json:"order_by_desc,omitempty"`
}

// OwnedBy lists the notes owned by ownerID, most recently updated first.
func OwnedBy(ownerID string) NoteQuery {
	return NoteQuery{
		Equal:       map[NoteField]any{FieldOwnerID: ownerID},
		OrderByDesc: FieldUpdatedAt,
	}
}

// SharedWithEmail lists the notes whose share list contains email.
func SharedWithEmail(email string) NoteQuery {
	return NoteQuery{
		ArrayContains: map[NoteField]string{FieldSharedWith: email},
		OrderByDesc:   FieldUpdatedAt,
	}
}

// PublicNotes lists every public note.
func PublicNotes() NoteQuery {
	return NoteQuery{
		Equal:       map[NoteField]any{FieldIsPublic: true},
		OrderByDesc: FieldUpdatedAt,
	}
}
