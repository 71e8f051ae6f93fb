package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/models"
)

// ErrUnknownSet is returned by ParseSet for a name that is not a result set.
var ErrUnknownSet = errors.New("unknown note set")

// Set names one of the three cached result sets.
type Set int

const (
	SetOwned Set = iota
	SetShared
	SetPublic
)

var setNames = [...]string{"owned", "shared", "public"}

func (s Set) String() string {
	if s < SetOwned || s > SetPublic {
		return fmt.Sprintf("Set(%d)", int(s))
	}
	return setNames[s]
}

// ParseSet resolves "owned", "shared" or "public". The empty name is owned.
func ParseSet(name string) (Set, error) {
	if name == "" {
		return SetOwned, nil
	}
	for i, n := range setNames {
		if n == name {
			return Set(i), nil
		}
	}
	return SetOwned, fmt.Errorf("%w: %q", ErrUnknownSet, name)
}

// NoteSource is the client-side note repository as seen by the browser.
type NoteSource interface {
	Owned() []models.Note
	SharedWithMe() []models.Note
	Public() []models.Note
	Loading() bool
	LastError() error
	Load(ctx context.Context) error
}

// Notes returns the snapshot of set held by source.
func Notes(source NoteSource, set Set) []models.Note {
	switch set {
	case SetShared:
		return source.SharedWithMe()
	case SetPublic:
		return source.Public()
	default:
		return source.Owned()
	}
}
