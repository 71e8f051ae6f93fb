package models

// SummaryLength is the target length hint for a summary.
type SummaryLength string

const (
	SummaryShort  SummaryLength = "short"
	SummaryMedium SummaryLength = "medium"
	SummaryLong   SummaryLength = "long"
)

// QuizType selects the kind of questions in a generated quiz.
type QuizType string

const (
	QuizMultipleChoice QuizType = "mcq"
	QuizShortAnswer    QuizType = "short"
	QuizMixed          QuizType = "mixed"
)

// QuizOptions tunes quiz generation.
type QuizOptions struct {
	Difficulty string   `json:"difficulty"`
	Count      int      `json:"count"`
	Type       QuizType `json:"type"`
}

// DefaultQuizOptions returns the options used when the caller gives none.
func DefaultQuizOptions() QuizOptions {
	return QuizOptions{
		Difficulty: "medium",
		Count:      5,
		Type:       QuizMultipleChoice,
	}
}

// ChatRole is the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a conversation with the assistant.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// MindMap is a two-level topic tree extracted from a note.
type MindMap struct {
	Central string        `json:"central"`
	Nodes   []MindMapNode `json:"nodes"`
}

// MindMapNode is a branch of a [MindMap]. Color is a CSS hex color.
type MindMapNode struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Color    string        `json:"color,omitempty"`
	Children []MindMapNode `json:"children,omitempty"`
}

// QuizQuestion is one generated question. Options is only set for
// multiple-choice questions.
type QuizQuestion struct {
	ID       string   `json:"id"`
	Type     QuizType `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Answer   string   `json:"answer"`
}

// ReviewKind classifies a review finding.
type ReviewKind string

const (
	ReviewGrammar ReviewKind = "grammar"
	ReviewStyle   ReviewKind = "style"
	ReviewContent ReviewKind = "content"
)

// ReviewItem is a single grammar, style or content finding.
type ReviewItem struct {
	Type        ReviewKind `json:"type"`
	Snippet     string     `json:"snippet"`
	Suggestion  string     `json:"suggestion"`
	Explanation string     `json:"explanation"`
}
