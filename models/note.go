// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"
)

const (
	// DefaultNoteTitle is used when a note is created without a title.
	DefaultNoteTitle = "Untitled Note"

	// DefaultNoteEmoji is the glyph used when no emoji could be suggested.
	DefaultNoteEmoji = "📝"

	// AnonymousOwnerName is the owner display name recorded when the
	// principal has no display name.
	AnonymousOwnerName = "Anonymous"

	// CopyTitlePrefix is prepended to the title of a note cloned as a template.
	CopyTitlePrefix = "Copy of "
)

// Note is the central entity of the application: a rich-text document owned
// by exactly one principal and optionally shared with others.
type Note struct {
	// ID is assigned by the document store on creation and never changes.
	ID string `json:"id"`

	// Title is the user-editable title.
	Title string `json:"title"`

	// Content is rich text serialized as markup.
	Content string `json:"content"`

	// Emoji is a single glyph suggested at creation time.
	Emoji string `json:"emoji"`

	// OwnerID identifies the creating principal. Set once at creation.
	OwnerID string `json:"owner_id"`

	// OwnerName and OwnerEmail are a snapshot of the owner's identity taken
	// at creation time. They are not kept in sync with the identity provider.
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// IsPublic governs inclusion in the public result set.
	IsPublic bool `json:"is_public"`

	// AllowCopy governs whether non-owners may clone the note as a template.
	AllowCopy bool `json:"allow_copy"`

	// SharedWith lists the emails granted at least read access.
	SharedWith EmailList `json:"shared_with"`

	// Permissions maps a shared email to its grant level.
	Permissions PermissionMap `json:"shared_with_permissions"`

	// CopiedFrom references the source note of a template copy.
	CopiedFrom *string `json:"copied_from,omitempty"`
}

// TableName returns the name of the database table associated with Note.
func (n Note) TableName() string {
	return "notes"
}

// Clone returns a deep copy of the note so cached values never alias slices
// or maps owned by a caller.
func (n Note) Clone() Note {
	c := n
	c.SharedWith = slices.Clone(n.SharedWith)
	if n.Permissions != nil {
		c.Permissions = make(PermissionMap, len(n.Permissions))
		for k, v := range n.Permissions {
			c.Permissions[k] = v
		}
	}
	if n.CopiedFrom != nil {
		from := *n.CopiedFrom
		c.CopiedFrom = &from
	}
	return c
}

// Apply returns a copy of n with every non-nil field of patch merged in.
func (n Note) Apply(patch NotePatch) Note {
	merged := n.Clone()

	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Content != nil {
		merged.Content = *patch.Content
	}
	if patch.Emoji != nil {
		merged.Emoji = *patch.Emoji
	}
	if patch.IsPublic != nil {
		merged.IsPublic = *patch.IsPublic
	}
	if patch.AllowCopy != nil {
		merged.AllowCopy = *patch.AllowCopy
	}
	if patch.SharedWith != nil {
		merged.SharedWith = slices.Clone(*patch.SharedWith)
	}
	if patch.Permissions != nil {
		merged.Permissions = make(PermissionMap, len(*patch.Permissions))
		for k, v := range *patch.Permissions {
			merged.Permissions[k] = v
		}
	}
	if patch.UpdatedAt != nil {
		merged.UpdatedAt = *patch.UpdatedAt
	}

	return merged
}

// NotePatch is a partial update of a note. Only non-nil fields are written.
// OwnerID, CreatedAt and CopiedFrom are deliberately absent: they are fixed
// at creation.
type NotePatch struct {
	Title       *string        `json:"title,omitempty"`
	Content     *string        `json:"content,omitempty"`
	Emoji       *string        `json:"emoji,omitempty"`
	IsPublic    *bool          `json:"is_public,omitempty"`
	AllowCopy   *bool          `json:"allow_copy,omitempty"`
	SharedWith  *EmailList     `json:"shared_with,omitempty"`
	Permissions *PermissionMap `json:"shared_with_permissions,omitempty"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

// IsEmpty reports whether the patch carries no field besides UpdatedAt.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Emoji == nil &&
		p.IsPublic == nil && p.AllowCopy == nil &&
		p.SharedWith == nil && p.Permissions == nil
}

// TouchesOwnerFields reports whether the patch changes a field that only the
// owner may mutate.
func (p NotePatch) TouchesOwnerFields() bool {
	return p.IsPublic != nil || p.AllowCopy != nil || p.SharedWith != nil || p.Permissions != nil
}

// EmailList is an ordered set of email addresses persisted as a JSON array.
// Addresses compare case-insensitively.
type EmailList []string

// NormalizeEmail returns the canonical form of email used for share grants
// and share queries: trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Contains reports whether email is present in the list.
func (l EmailList) Contains(email string) bool {
	return l.Index(email) >= 0
}

// Index returns the position of email in the list, or -1.
func (l EmailList) Index(email string) int {
	email = NormalizeEmail(email)
	if email == "" {
		return -1
	}
	return slices.IndexFunc(l, func(e string) bool { return NormalizeEmail(e) == email })
}

// Duplicate returns the first address that occurs more than once, or "".
func (l EmailList) Duplicate() string {
	seen := make(map[string]struct{}, len(l))
	for _, e := range l {
		key := NormalizeEmail(e)
		if _, ok := seen[key]; ok {
			return e
		}
		seen[key] = struct{}{}
	}
	return ""
}

// Normalized returns a copy with every address in canonical form and
// duplicates dropped, keeping first occurrences in order.
func (l EmailList) Normalized() EmailList {
	out := make(EmailList, 0, len(l))
	for _, e := range l {
		out = out.With(e)
	}
	return out
}

// With returns a copy of the list with email appended in canonical form
// when not yet present.
func (l EmailList) With(email string) EmailList {
	out := slices.Clone(l)
	if out == nil {
		out = EmailList{}
	}
	if !out.Contains(email) {
		out = append(out, NormalizeEmail(email))
	}
	return out
}

// Without returns a copy of the list with email removed.
func (l EmailList) Without(email string) EmailList {
	email = NormalizeEmail(email)
	out := make(EmailList, 0, len(l))
	for _, e := range l {
		if NormalizeEmail(e) != email {
			out = append(out, e)
		}
	}
	return out
}

// Value implements driver.Valuer.
func (l EmailList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *EmailList) Scan(value any) error {
	raw, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*l = EmailList{}
		return nil
	}
	var out []string
	if err = json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

// PermissionMap maps a shared email to its grant level, persisted as a JSON
// object.
type PermissionMap map[string]Permission

// For returns the permission granted to email, matching case-insensitively.
func (m PermissionMap) For(email string) (Permission, bool) {
	email = NormalizeEmail(email)
	if p, ok := m[email]; ok {
		return p, true
	}
	for e, p := range m {
		if NormalizeEmail(e) == email {
			return p, true
		}
	}
	return "", false
}

// Normalized returns a copy keyed by canonical addresses.
func (m PermissionMap) Normalized() PermissionMap {
	out := make(PermissionMap, len(m))
	for e, p := range m {
		out[NormalizeEmail(e)] = p
	}
	return out
}

// Value implements driver.Valuer.
func (m PermissionMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]Permission(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *PermissionMap) Scan(value any) error {
	raw, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if raw == nil {
		*m = PermissionMap{}
		return nil
	}
	out := PermissionMap{}
	if err = json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

func jsonBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported json column type")
	}
}
