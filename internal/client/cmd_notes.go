package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-note-keeper/internal/access"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/tui"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/spf13/cobra"
)

func (c *cli) noteCommands() []*cobra.Command {
	return []*cobra.Command{
		c.listCommand(),
		c.createCommand(),
		c.openCommand(),
		c.editCommand(),
		c.deleteCommand(),
		c.shareCommand(),
		c.unshareCommand(),
		c.visibilityCommand("publish", "Make a note visible to everyone", true),
		c.visibilityCommand("unpublish", "Make a note private again", false),
		c.allowCopyCommand(),
		c.copyCommand(),
		c.uploadImageCommand(),
		c.watchCommand(),
	}
}

func (c *cli) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [owned|shared|public]",
		Short: "List notes of a result set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := tui.ParseSet(firstArg(args))
			if err != nil {
				return err
			}
			if set != tui.SetPublic && c.app.services.Auth.Principal() == nil {
				return service.ErrNotSignedIn
			}

			if err = c.app.services.Notes.Load(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderNoteList(tui.Notes(c.app.services.Notes, set)))
			return nil
		},
	}
}

func (c *cli) createCommand() *cobra.Command {
	var content, contentFile string

	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a private note",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readContent(content, contentFile)
			if err != nil {
				return err
			}

			note, err := c.app.services.Notes.CreateNote(cmd.Context(), firstArg(args), body)
			if err != nil {
				return err
			}
			return c.printNote(cmd, note)
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "note body")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "read the note body from a file")

	return cmd
}

func (c *cli) openCommand() *cobra.Command {
	var clip bool

	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.readableNote(cmd, args[0])
			if err != nil {
				return err
			}

			if clip {
				if err = tui.CopyToClipboard(note.Content); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
			}
			return c.printNote(cmd, *note)
		},
	}
	cmd.Flags().BoolVar(&clip, "clip", false, "copy the note body to the clipboard")

	return cmd
}

func (c *cli) editCommand() *cobra.Command {
	var title, content, contentFile, emoji string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, body or emoji of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.NotePatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("emoji") {
				patch.Emoji = &emoji
			}
			if cmd.Flags().Changed("content") || contentFile != "" {
				body, err := readContent(content, contentFile)
				if err != nil {
					return err
				}
				patch.Content = &body
			}

			note, err := c.app.services.Notes.UpdateNote(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return c.printNote(cmd, note)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new body")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "read the new body from a file")
	cmd.Flags().StringVar(&emoji, "emoji", "", "new emoji")

	return cmd
}

func (c *cli) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.services.Notes.DeleteNote(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func (c *cli) shareCommand() *cobra.Command {
	var permission string

	cmd := &cobra.Command{
		Use:   "share <id> <email>",
		Short: "Share a note with another user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.app.services.Notes.ShareNote(cmd.Context(), args[0], args[1], models.Permission(permission))
			if err != nil {
				return err
			}
			return c.printNote(cmd, note)
		},
	}
	cmd.Flags().StringVarP(&permission, "permission", "p", string(models.PermissionViewer), "viewer or editor")

	return cmd
}

func (c *cli) unshareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unshare <id> <email>",
		Short: "Stop sharing a note with a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.app.services.Notes.RemoveNoteSharing(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return c.printNote(cmd, note)
		},
	}
}

func (c *cli) visibilityCommand(use, short string, public bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.app.services.Notes.TogglePublicStatus(cmd.Context(), args[0], public)
			if err != nil {
				return err
			}
			return c.printNote(cmd, note)
		},
	}
}

func (c *cli) allowCopyCommand() *cobra.Command {
	var disable bool

	cmd := &cobra.Command{
		Use:   "allow-copy <id>",
		Short: "Let readers copy a public note as a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.app.services.Notes.ToggleAllowCopy(cmd.Context(), args[0], !disable)
			if err != nil {
				return err
			}
			return c.printNote(cmd, note)
		},
	}
	cmd.Flags().BoolVar(&disable, "disable", false, "forbid copying instead")

	return cmd
}

func (c *cli) copyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a note into a new private note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.app.services.Notes.CopyNoteAsTemplate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printNote(cmd, note)
		},
	}
}

func (c *cli) uploadImageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload-image <id> <file>",
		Short: "Attach an image to a note and print its URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			url, err := c.app.services.Notes.UploadImage(cmd.Context(), args[0], filepath.Base(args[1]), data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

func (c *cli) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [owned|shared|public]",
		Short: "Browse notes and follow changes live",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := tui.ParseSet(firstArg(args))
			if err != nil {
				return err
			}
			return c.app.Watch(cmd.Context(), set)
		},
	}
}

// readableNote fetches id and checks that the caller may read it.
func (c *cli) readableNote(cmd *cobra.Command, id string) (*models.Note, error) {
	note, err := c.app.services.Notes.GetNoteByID(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("%w: %s", service.ErrNoteNotFound, id)
	}
	if !access.CanRead(*note, c.app.services.Auth.Principal()) {
		return nil, &service.PermissionError{Op: "read", NoteID: id}
	}
	return note, nil
}

func (c *cli) printNote(cmd *cobra.Command, note models.Note) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), tui.RenderNote(note))
	return err
}

func readContent(content, contentFile string) (string, error) {
	if contentFile == "" {
		return content, nil
	}
	data, err := os.ReadFile(contentFile)
	if err != nil {
		return "", fmt.Errorf("read content file: %w", err)
	}
	return string(data), nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
