// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the client's outbound collaborators: the note
// server reached over HTTP and the OpenAI-compatible text-generation API.
//
// [ServerAdapter] decouples the service layer from the transport. It serves
// as the remote document store, object store and identity provider at
// once. HTTP status codes are mapped by mapHTTPError to the sentinels in
// errors.go so callers can use [errors.Is] without knowing the protocol.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// IdentityProvider signs principals in and out.
type IdentityProvider interface {
	// Register creates an account and returns the session issued for it.
	Register(ctx context.Context, email, password, displayName string) (models.Session, error)

	// Login authenticates with email and password.
	Login(ctx context.Context, email, password string) (models.Session, error)

	// Logout forgets the bearer token. It never fails for an anonymous
	// caller.
	Logout(ctx context.Context) error

	// Current asks the provider who the bearer token belongs to. It returns
	// nil without error when no token is set.
	Current(ctx context.Context) (*models.Principal, error)

	// SetToken restores a token persisted by a previous session.
	SetToken(token string)

	// Token returns the bearer token attached to authenticated requests.
	Token() string
}

// ServerAdapter is the complete remote surface of the note server.
type ServerAdapter interface {
	IdentityProvider
	store.NoteStore
	store.ObjectStore
}

// TextGenerator is the generative-AI collaborator. Every method is a single
// blocking completion request.
type TextGenerator interface {
	// SuggestEmoji returns one emoji describing the note.
	SuggestEmoji(ctx context.Context, title, contentSnippet string) (string, error)

	// Summarize condenses text to the requested length.
	Summarize(ctx context.Context, text string, length models.SummaryLength) (string, error)

	// GenerateQuiz builds questions about text.
	GenerateQuiz(ctx context.Context, text string, opts models.QuizOptions) ([]models.QuizQuestion, error)

	// Translate renders text in targetLanguage.
	Translate(ctx context.Context, text, targetLanguage string) (string, error)

	// Chat answers the last message of history, optionally primed with the
	// content of the open note.
	Chat(ctx context.Context, history []models.ChatMessage, noteContext string) (string, error)

	// GenerateMindMap extracts a topic tree from text.
	GenerateMindMap(ctx context.Context, text string) (models.MindMap, error)

	// ReviewText lists grammar, style and content findings.
	ReviewText(ctx context.Context, text string) ([]models.ReviewItem, error)
}
