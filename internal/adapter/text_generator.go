package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/sashabaranov/go-openai"
)

type openAITextGenerator struct {
	client *openai.Client
	model  string
	logger *logger.Logger
}

// NewOpenAITextGenerator constructs a [TextGenerator] talking to an
// OpenAI-compatible chat completion API. Without an API key every method
// returns [ErrAIUnavailable].
func NewOpenAITextGenerator(cfg config.ClientAI, logger *logger.Logger) TextGenerator {
	g := &openAITextGenerator{model: cfg.Model, logger: logger}
	if cfg.APIKey == "" {
		logger.Warn().Msg("AI API key not set, text generation disabled")
		return g
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.RequestTimeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	g.client = openai.NewClientWithConfig(clientCfg)

	logger.Debug().Str("model", cfg.Model).Msg("creating text generator")
	return g
}

func (g *openAITextGenerator) SuggestEmoji(ctx context.Context, title, contentSnippet string) (string, error) {
	out, err := g.complete(ctx, "SuggestEmoji", userMessage(emojiPrompt(title, contentSnippet)))
	if err != nil {
		return "", err
	}

	emoji := strings.TrimSpace(out)
	if emoji == "" {
		return "", ErrEmptyCompletion
	}
	return emoji, nil
}

func (g *openAITextGenerator) Summarize(ctx context.Context, text string, length models.SummaryLength) (string, error) {
	return g.complete(ctx, "Summarize", userMessage(summaryPrompt(text, length)))
}

func (g *openAITextGenerator) GenerateQuiz(ctx context.Context, text string, opts models.QuizOptions) ([]models.QuizQuestion, error) {
	defaults := models.DefaultQuizOptions()
	if opts.Count <= 0 {
		opts.Count = defaults.Count
	}
	if opts.Difficulty == "" {
		opts.Difficulty = defaults.Difficulty
	}
	if opts.Type == "" {
		opts.Type = defaults.Type
	}

	var quiz []models.QuizQuestion
	if err := g.completeJSON(ctx, "GenerateQuiz", quizPrompt(text, opts), &quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (g *openAITextGenerator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	return g.complete(ctx, "Translate", userMessage(translatePrompt(text, targetLanguage)))
}

func (g *openAITextGenerator) Chat(ctx context.Context, history []models.ChatMessage, noteContext string) (string, error) {
	if len(history) == 0 {
		return "", ErrEmptyChat
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	if strings.TrimSpace(noteContext) != "" {
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: chatContextPrompt(noteContext)},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: chatContextAck},
		)
	}
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == models.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	return g.complete(ctx, "Chat", messages...)
}

func (g *openAITextGenerator) GenerateMindMap(ctx context.Context, text string) (models.MindMap, error) {
	var mindMap models.MindMap
	if err := g.completeJSON(ctx, "GenerateMindMap", mindMapPrompt(text), &mindMap); err != nil {
		return models.MindMap{}, err
	}
	return mindMap, nil
}

func (g *openAITextGenerator) ReviewText(ctx context.Context, text string) ([]models.ReviewItem, error) {
	var review []models.ReviewItem
	if err := g.completeJSON(ctx, "ReviewText", reviewPrompt(text), &review); err != nil {
		return nil, err
	}
	return review, nil
}

func (g *openAITextGenerator) complete(ctx context.Context, fn string, messages ...openai.ChatCompletionMessage) (string, error) {
	if g.client == nil {
		return "", ErrAIUnavailable
	}

	log := logger.FromContext(ctx)

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: append([]openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		}, messages...),
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*openAITextGenerator."+fn).Msg("completion request failed")
		return "", fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		log.Warn().Str("func", "*openAITextGenerator."+fn).Msg("completion returned no choices")
		return "", ErrEmptyCompletion
	}

	log.Debug().Str("func", "*openAITextGenerator."+fn).
		Str("finish_reason", string(resp.Choices[0].FinishReason)).
		Msg("completion received")
	return resp.Choices[0].Message.Content, nil
}

func (g *openAITextGenerator) completeJSON(ctx context.Context, fn, prompt string, out any) error {
	raw, err := g.complete(ctx, fn, userMessage(prompt))
	if err != nil {
		return err
	}

	if err = json.Unmarshal([]byte(stripCodeFence(raw)), out); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*openAITextGenerator."+fn).Msg("error decoding completion")
		return fmt.Errorf("%w: %w", ErrMalformedCompletion, err)
	}
	return nil
}

func userMessage(content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: content}
}

// stripCodeFence removes a surrounding markdown code fence such as
// "```json ... ```" from a model answer.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
