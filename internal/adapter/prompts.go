package adapter

import (
	"fmt"

	"github.com/MKhiriev/go-note-keeper/models"
)

const systemPrompt = "You are the writing assistant of a note-taking application."

// chatContextLimit caps the note content used to prime a chat, in runes.
const chatContextLimit = 1000

var summaryLengths = map[models.SummaryLength]string{
	models.SummaryShort:  "a brief summary of two or three sentences",
	models.SummaryMedium: "a summary of one paragraph",
	models.SummaryLong:   "a detailed summary of several paragraphs listing the key points",
}

func emojiPrompt(title, snippet string) string {
	return fmt.Sprintf(`Suggest a single emoji that best represents this note.
Title: %s
Content: %s...

Answer with the emoji only.`, title, snippet)
}

func summaryPrompt(text string, length models.SummaryLength) string {
	hint, ok := summaryLengths[length]
	if !ok {
		hint = summaryLengths[models.SummaryMedium]
	}
	return fmt.Sprintf(`Write %s of the text below. Mark the key points in bold using markdown.

Text:
%s`, hint, text)
}

func quizPrompt(text string, opts models.QuizOptions) string {
	var kind string
	switch opts.Type {
	case models.QuizMultipleChoice:
		kind = "Use multiple-choice questions only, each with 4 options."
	case models.QuizShortAnswer:
		kind = "Use short-answer questions only."
	default:
		kind = "Mix multiple-choice questions (4 options each) with short-answer questions."
	}

	return fmt.Sprintf(`Write a quiz of %d questions at %s difficulty about the content below.
%s

Answer with a JSON array only, each element shaped as
{"id": "1", "type": "mcq" or "short", "question": "...", "options": ["A", "B", "C", "D"], "answer": "..."}.
Omit "options" for short-answer questions. For multiple-choice questions "answer" is the option letter.

Content:
%s`, opts.Count, opts.Difficulty, kind, text)
}

func translatePrompt(text, language string) string {
	return fmt.Sprintf(`Translate the text below into %s. Answer with the translation only.

%s`, language, text)
}

func mindMapPrompt(text string) string {
	return fmt.Sprintf(`Build a mind map of the content below. Answer with JSON only, shaped as
{"central": "Main topic", "nodes": [{"id": "1", "title": "Branch", "color": "#3b82f6",
"children": [{"id": "1-1", "title": "Sub topic", "color": "#60a5fa"}]}]}.
Give each branch its own color.

Content:
%s`, text)
}

func reviewPrompt(text string) string {
	return fmt.Sprintf(`Review the text below for grammar, style and content problems. Answer with a JSON array only,
each element shaped as {"type": "grammar" or "style" or "content", "snippet": "...", "suggestion": "...", "explanation": "..."}.
Answer with [] when nothing needs to change.

Text:
%s`, text)
}

func chatContextPrompt(noteContent string) string {
	return fmt.Sprintf("I am working on a note with the following content: %s... Keep it in mind when answering my questions.",
		truncateRunes(noteContent, chatContextLimit))
}

const chatContextAck = "I will keep this note in mind. What would you like to know?"

// truncateRunes returns at most n runes of s.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
