// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pollInterval  = 500 * time.Millisecond
	statusTimeout = 2 * time.Second
)

var writeClipboard = clipboard.WriteAll

// browserModel renders the live result sets. It never writes to the cache:
// a background refresh worker keeps the source current and the model polls
// it.
type browserModel struct {
	ctx       context.Context
	source    NoteSource
	principal *models.Principal

	set     Set
	cursor  int
	opened  string
	status  string
	spinner spinner.Model
	help    help.Model
}

func newBrowserModel(ctx context.Context, source NoteSource, principal *models.Principal, set Set) browserModel {
	return browserModel{
		ctx:       ctx,
		source:    source,
		principal: principal,
		set:       set,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
	}
}

func (m browserModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, pollCmd())
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case pollMsg:
		m.clampCursor()
		if m.opened != "" && m.openedNote() == nil {
			m.opened = ""
			m.status = "note is no longer available"
			return m, tea.Batch(pollCmd(), clearStatusCmd())
		}
		return m, pollCmd()

	case reloadedMsg:
		m.clampCursor()
		if msg.err != nil {
			m.status = RenderError(msg.err)
		} else {
			m.status = "reloaded"
		}
		return m, clearStatusCmd()

	case copiedMsg:
		if msg.err != nil {
			m.status = RenderError(msg.err)
		} else {
			m.status = "content copied to clipboard"
		}
		return m, clearStatusCmd()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m browserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.reload):
		return m, m.reloadCmd()
	}

	if m.opened != "" {
		switch {
		case key.Matches(msg, keys.esc):
			m.opened = ""
		case key.Matches(msg, keys.copy):
			if note := m.openedNote(); note != nil {
				return m, copyCmd(note.Content)
			}
		}
		return m, nil
	}

	notes := Notes(m.source, m.set)
	switch {
	case key.Matches(msg, keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.down):
		if m.cursor < len(notes)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.tab):
		m.set = (m.set + 1) % 3
		m.cursor = 0
	case key.Matches(msg, keys.backtab):
		m.set = (m.set + 2) % 3
		m.cursor = 0
	case key.Matches(msg, keys.enter):
		if m.cursor < len(notes) {
			m.opened = notes[m.cursor].ID
		}
	}
	return m, nil
}

func (m browserModel) View() string {
	var b strings.Builder

	b.WriteString(m.tabs())
	b.WriteString("\n\n")

	if note := m.openedNote(); note != nil {
		b.WriteString(RenderNote(*note))
		b.WriteString("\n\n")
		b.WriteString(m.help.ShortHelpView(keys.detailHelp()))
	} else {
		b.WriteString(m.list())
		b.WriteString("\n\n")
		b.WriteString(m.help.ShortHelpView(keys.listHelp()))
	}

	b.WriteString("\n")
	if m.source.Loading() {
		b.WriteString(m.spinner.View() + " loading…  ")
	} else if err := m.source.LastError(); err != nil {
		b.WriteString(RenderError(err) + "  ")
	}
	b.WriteString(m.status)

	return appStyle.Render(b.String())
}

func (m browserModel) tabs() string {
	labels := make([]string, 0, 3)
	for s := SetOwned; s <= SetPublic; s++ {
		label := fmt.Sprintf("%s (%d)", s, len(Notes(m.source, s)))
		if s == m.set {
			labels = append(labels, activeTab.Render(label))
		} else {
			labels = append(labels, inactiveTab.Render(label))
		}
	}

	who := "signed out"
	if m.principal != nil {
		who = m.principal.Email
	}
	return strings.Join(labels, "   ") + "   " + helpStyle.Render(who)
}

func (m browserModel) list() string {
	notes := Notes(m.source, m.set)
	if len(notes) == 0 {
		return helpStyle.Render("no notes")
	}

	lines := make([]string, 0, len(notes))
	for i, note := range notes {
		line := fmt.Sprintf("%s %s  %s", note.Emoji, fitText(titleOrUntitled(note.Title), titleWidth), helpStyle.Render(preview(note.Content)))
		if i == m.cursor {
			line = selectedStyle.Render("› ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m browserModel) openedNote() *models.Note {
	if m.opened == "" {
		return nil
	}
	for _, note := range Notes(m.source, m.set) {
		if note.ID == m.opened {
			return &note
		}
	}
	return nil
}

func (m *browserModel) clampCursor() {
	n := len(Notes(m.source, m.set))
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m browserModel) reloadCmd() tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		return reloadedMsg{err: source.Load(ctx)}
	}
}

func pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) error {
	return writeClipboard(text)
}
