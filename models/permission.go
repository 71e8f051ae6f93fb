package models

// Permission is the grant level attached to a shared email.
type Permission string

const (
	// PermissionViewer allows reading a shared note.
	PermissionViewer Permission = "viewer"

	// PermissionEditor allows reading and editing a shared note.
	PermissionEditor Permission = "editor"
)

// IsValid reports whether p is one of the known grant levels.
func (p Permission) IsValid() bool {
	switch p {
	case PermissionViewer, PermissionEditor:
		return true
	default:
		return false
	}
}

// String returns the grant level as stored.
func (p Permission) String() string {
	return string(p)
}

// Share is a request to grant email access to a note.
type Share struct {
	Email      string     `json:"email"`
	Permission Permission `json:"permission"`
}
