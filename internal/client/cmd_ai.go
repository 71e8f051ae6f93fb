package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/spf13/cobra"
)

func (c *cli) aiCommands() []*cobra.Command {
	return []*cobra.Command{
		c.summarizeCommand(),
		c.quizCommand(),
		c.translateCommand(),
		c.chatCommand(),
		c.mindMapCommand(),
		c.reviewCommand(),
	}
}

func (c *cli) summarizeCommand() *cobra.Command {
	var length string

	cmd := &cobra.Command{
		Use:   "summarize <id>",
		Short: "Summarize a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.readableNote(cmd, args[0])
			if err != nil {
				return err
			}

			summary, err := c.app.services.AI.Summarize(cmd.Context(), note.Content, models.SummaryLength(length))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}
	cmd.Flags().StringVarP(&length, "length", "l", string(models.SummaryMedium), "short, medium or long")

	return cmd
}

func (c *cli) quizCommand() *cobra.Command {
	var opts models.QuizOptions
	var quizType string

	cmd := &cobra.Command{
		Use:   "quiz <id>",
		Short: "Generate study questions from a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.readableNote(cmd, args[0])
			if err != nil {
				return err
			}

			opts.Type = models.QuizType(quizType)
			questions, err := c.app.services.AI.GenerateQuiz(cmd.Context(), note.Content, opts)
			if err != nil {
				return err
			}
			writeQuiz(cmd.OutOrStdout(), questions)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Count, "count", 0, "number of questions")
	cmd.Flags().StringVar(&opts.Difficulty, "difficulty", "", "easy, medium or hard")
	cmd.Flags().StringVar(&quizType, "type", string(models.QuizMixed), "mcq, short or mixed")

	return cmd
}

func (c *cli) translateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "translate <id> <language>",
		Short: "Translate a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.readableNote(cmd, args[0])
			if err != nil {
				return err
			}

			translated, err := c.app.services.AI.Translate(cmd.Context(), note.Content, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), translated)
			return nil
		},
	}
}

func (c *cli) chatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <id>",
		Short: "Ask the assistant about a note, one question per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.readableNote(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var history []models.ChatMessage

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				question := strings.TrimSpace(scanner.Text())
				if question == "" {
					continue
				}

				history = append(history, models.ChatMessage{Role: models.ChatRoleUser, Content: question})
				answer, err := c.app.services.AI.Chat(cmd.Context(), history, note.Content)
				if err != nil {
					return err
				}
				history = append(history, models.ChatMessage{Role: models.ChatRoleAssistant, Content: answer})
				fmt.Fprintln(out, answer)
			}
		},
	}
}

func (c *cli) mindMapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mindmap <id>",
		Short: "Outline the topics of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.readableNote(cmd, args[0])
			if err != nil {
				return err
			}

			mindMap, err := c.app.services.AI.GenerateMindMap(cmd.Context(), note.Content)
			if err != nil {
				return err
			}
			writeMindMap(cmd.OutOrStdout(), mindMap)
			return nil
		},
	}
}

func (c *cli) reviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review <id>",
		Short: "Check a note for grammar and style issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := c.readableNote(cmd, args[0])
			if err != nil {
				return err
			}

			items, err := c.app.services.AI.ReviewText(cmd.Context(), note.Content)
			if err != nil {
				return err
			}
			writeReview(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func writeQuiz(w io.Writer, questions []models.QuizQuestion) {
	for i, q := range questions {
		fmt.Fprintf(w, "%d. %s\n", i+1, q.Question)
		for j, option := range q.Options {
			fmt.Fprintf(w, "   %c) %s\n", 'a'+j, option)
		}
		fmt.Fprintf(w, "   answer: %s\n", q.Answer)
	}
}

func writeMindMap(w io.Writer, m models.MindMap) {
	fmt.Fprintln(w, m.Central)
	writeMindMapNodes(w, m.Nodes, 1)
}

func writeMindMapNodes(w io.Writer, nodes []models.MindMapNode, depth int) {
	for _, node := range nodes {
		fmt.Fprintf(w, "%s- %s\n", strings.Repeat("  ", depth), node.Title)
		writeMindMapNodes(w, node.Children, depth+1)
	}
}

func writeReview(w io.Writer, items []models.ReviewItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no issues found")
		return
	}
	for _, item := range items {
		fmt.Fprintf(w, "[%s] %q -> %q\n", item.Type, item.Snippet, item.Suggestion)
		if item.Explanation != "" {
			fmt.Fprintf(w, "    %s\n", item.Explanation)
		}
	}
}
