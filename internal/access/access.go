package access

import "github.com/MKhiriev/go-note-keeper/models"

// CanRead reports whether p may view note. Public notes are readable by
// anyone, including an absent principal.
func CanRead(note models.Note, p *models.Principal) bool {
	if note.IsPublic {
		return true
	}
	if p == nil {
		return false
	}
	return isOwner(note, p) || isShared(note, p)
}

// CanEdit reports whether p may change the title, content or emoji of note.
func CanEdit(note models.Note, p *models.Principal) bool {
	if p == nil {
		return false
	}
	if isOwner(note, p) {
		return true
	}
	if !isShared(note, p) {
		return false
	}
	permission, _ := note.Permissions.For(p.Email)
	return permission == models.PermissionEditor
}

// CanDelete reports whether p may permanently delete note.
func CanDelete(note models.Note, p *models.Principal) bool {
	return isOwner(note, p)
}

// CanShare reports whether p may grant or revoke access to note.
func CanShare(note models.Note, p *models.Principal) bool {
	return isOwner(note, p)
}

// CanToggleVisibility reports whether p may change the public and
// allow-copy flags of note.
func CanToggleVisibility(note models.Note, p *models.Principal) bool {
	return isOwner(note, p)
}

// CanCopy reports whether p may clone note as a template.
func CanCopy(note models.Note, p *models.Principal) bool {
	if p == nil {
		return false
	}
	return isOwner(note, p) || note.AllowCopy
}

// IsOwner reports whether p owns note.
func IsOwner(note models.Note, p *models.Principal) bool {
	return isOwner(note, p)
}

func isOwner(note models.Note, p *models.Principal) bool {
	return p != nil && p.ID != "" && note.OwnerID == p.ID
}

func isShared(note models.Note, p *models.Principal) bool {
	return note.SharedWith.Contains(p.Email)
}
