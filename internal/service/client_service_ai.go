package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// AIService runs the user-invoked AI helpers. Unlike the emoji suggestion,
// failures here are returned to the caller as [UpstreamError] so the
// surface can show them inline.
type AIService struct {
	generator adapter.TextGenerator

	logger *logger.Logger
}

func NewAIService(generator adapter.TextGenerator, logger *logger.Logger) *AIService {
	return &AIService{generator: generator, logger: logger}
}

// Summarize condenses text. An empty length means medium.
func (s *AIService) Summarize(ctx context.Context, text string, length models.SummaryLength) (string, error) {
	if err := requireText(text); err != nil {
		return "", err
	}
	if length == "" {
		length = models.SummaryMedium
	}
	switch length {
	case models.SummaryShort, models.SummaryMedium, models.SummaryLong:
	default:
		return "", &ValidationError{Field: "length", Err: ErrUnknownLength}
	}

	summary, err := s.generator.Summarize(ctx, text, length)
	if err != nil {
		return "", s.fail("summarize", err)
	}
	return summary, nil
}

// GenerateQuiz builds questions about text. Zero option fields take their
// defaults from [models.DefaultQuizOptions].
func (s *AIService) GenerateQuiz(ctx context.Context, text string, opts models.QuizOptions) ([]models.QuizQuestion, error) {
	if err := requireText(text); err != nil {
		return nil, err
	}

	defaults := models.DefaultQuizOptions()
	if opts.Difficulty == "" {
		opts.Difficulty = defaults.Difficulty
	}
	if opts.Count <= 0 {
		opts.Count = defaults.Count
	}
	if opts.Type == "" {
		opts.Type = defaults.Type
	}

	quiz, err := s.generator.GenerateQuiz(ctx, text, opts)
	if err != nil {
		return nil, s.fail("generate quiz", err)
	}
	return quiz, nil
}

func (s *AIService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if err := requireText(text); err != nil {
		return "", err
	}
	targetLanguage = strings.TrimSpace(targetLanguage)
	if targetLanguage == "" {
		return "", &ValidationError{Field: "language", Err: ErrEmptyLanguage}
	}

	translated, err := s.generator.Translate(ctx, text, targetLanguage)
	if err != nil {
		return "", s.fail("translate", err)
	}
	return translated, nil
}

// Chat answers the last message of history. noteContext may be empty.
func (s *AIService) Chat(ctx context.Context, history []models.ChatMessage, noteContext string) (string, error) {
	if len(history) == 0 {
		return "", &ValidationError{Field: "history", Err: adapter.ErrEmptyChat}
	}

	answer, err := s.generator.Chat(ctx, history, noteContext)
	if err != nil {
		return "", s.fail("chat", err)
	}
	return answer, nil
}

func (s *AIService) GenerateMindMap(ctx context.Context, text string) (models.MindMap, error) {
	if err := requireText(text); err != nil {
		return models.MindMap{}, err
	}

	mindMap, err := s.generator.GenerateMindMap(ctx, text)
	if err != nil {
		return models.MindMap{}, s.fail("generate mind map", err)
	}
	return mindMap, nil
}

func (s *AIService) ReviewText(ctx context.Context, text string) ([]models.ReviewItem, error) {
	if err := requireText(text); err != nil {
		return nil, err
	}

	items, err := s.generator.ReviewText(ctx, text)
	if err != nil {
		return nil, s.fail("review text", err)
	}
	return items, nil
}

func (s *AIService) fail(op string, err error) error {
	s.logger.Err(err).Str("func", "*AIService").Str("op", op).Msg("text generation failed")
	return &UpstreamError{Op: op, Err: err}
}

func requireText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Err: ErrEmptyText}
	}
	return nil
}
