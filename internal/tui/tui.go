package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// TUI runs the full-screen note browser.
type TUI struct {
	source NoteSource

	logger *logger.Logger
}

func New(source NoteSource, logger *logger.Logger) *TUI {
	return &TUI{source: source, logger: logger}
}

// Browse shows set until the user quits or ctx is cancelled.
func (t *TUI) Browse(ctx context.Context, principal *models.Principal, set Set) error {
	model := newBrowserModel(ctx, t.source, principal, set)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		t.logger.Debug().Msg("note browser closed by context")
		return nil
	}
	return err
}
