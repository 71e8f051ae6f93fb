package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidPermission = errors.New("invalid permission")
	ErrEmptyPassword     = errors.New("password is required")
	ErrShortPassword     = errors.New("password is too short")
	ErrEmptyPatch        = errors.New("at least one field must be provided for update")
	ErrPermissionOrphan  = errors.New("permission granted to an email the note is not shared with")
	ErrDuplicateEmail    = errors.New("email is listed more than once")
)
