package adapter

import "errors"

// Transport errors returned by the HTTP server adapter.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrInvalidAddress      = errors.New("invalid server address")
)

// Text-generation errors.
var (
	// ErrAIUnavailable is returned by every generator method when no API key
	// is configured.
	ErrAIUnavailable = errors.New("text generation is not configured")

	// ErrEmptyCompletion is returned when the API answered without choices.
	ErrEmptyCompletion = errors.New("text generation returned no choices")

	// ErrMalformedCompletion is returned when a structured answer cannot be
	// decoded.
	ErrMalformedCompletion = errors.New("text generation returned malformed output")

	// ErrEmptyChat is returned by Chat for an empty history.
	ErrEmptyChat = errors.New("chat history is empty")
)
