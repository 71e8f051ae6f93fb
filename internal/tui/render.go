// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-note-keeper/models"
)

const (
	timeLayout    = "2006-01-02 15:04"
	titleWidth    = 40
	previewLength = 60
)

// RenderNoteList formats notes one per line: id, emoji, title, owner and
// last update.
func RenderNoteList(notes []models.Note) string {
	if len(notes) == 0 {
		return helpStyle.Render("no notes")
	}

	var b strings.Builder
	for i, note := range notes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(noteLine(note))
	}
	return b.String()
}

func noteLine(note models.Note) string {
	return fmt.Sprintf("%s  %s %s  %s",
		badgeStyle.Render(note.ID),
		note.Emoji,
		titleStyle.Render(fitText(titleOrUntitled(note.Title), titleWidth)),
		helpStyle.Render(fmt.Sprintf("%s · %s", note.OwnerName, note.UpdatedAt.Local().Format(timeLayout))),
	)
}

// RenderNote formats the full note with its sharing state.
func RenderNote(note models.Note) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", note.Emoji, titleStyle.Render(titleOrUntitled(note.Title)))
	fmt.Fprintf(&b, "%s\n", helpStyle.Render(fmt.Sprintf("id %s · by %s <%s> · updated %s",
		note.ID, note.OwnerName, note.OwnerEmail, note.UpdatedAt.Local().Format(timeLayout))))

	var flags []string
	if note.IsPublic {
		flags = append(flags, "public")
	}
	if note.AllowCopy {
		flags = append(flags, "copy allowed")
	}
	if note.CopiedFrom != nil {
		flags = append(flags, "copy of "+*note.CopiedFrom)
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, "%s\n", badgeStyle.Render(strings.Join(flags, " · ")))
	}

	if len(note.SharedWith) > 0 {
		b.WriteString("shared with:\n")
		emails := slices.Clone([]string(note.SharedWith))
		slices.Sort(emails)
		for _, email := range emails {
			permission := note.Permissions[email]
			if permission == "" {
				permission = models.PermissionViewer
			}
			fmt.Fprintf(&b, "  %s (%s)\n", email, permission)
		}
	}

	b.WriteString("\n")
	if strings.TrimSpace(note.Content) == "" {
		b.WriteString(helpStyle.Render("(empty)"))
	} else {
		b.WriteString(note.Content)
	}

	return noteBoxStyle.Render(b.String())
}

// RenderError formats err for the terminal.
func RenderError(err error) string {
	return errorStyle.Render("error: " + err.Error())
}

func titleOrUntitled(title string) string {
	if strings.TrimSpace(title) == "" {
		return models.DefaultNoteTitle
	}
	return title
}

// fitText shortens v to max runes, marking the cut with an ellipsis.
func fitText(v string, max int) string {
	if max <= 0 || utf8.RuneCountInString(v) <= max {
		return v
	}
	runes := []rune(v)
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func preview(content string) string {
	return fitText(strings.Join(strings.Fields(content), " "), previewLength)
}
