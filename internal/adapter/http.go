package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of
// [ServerAdapter]. The base URL is taken from cfg.HTTPAddress; a missing
// scheme defaults to http.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	logger.Debug().Str("base_url", baseURL).Msg("creating http server adapter")
	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register posts to /api/user/register and keeps the bearer token returned
// in the Authorization header.
func (h *httpServerAdapter) Register(ctx context.Context, email, password, displayName string) (models.Session, error) {
	return h.authenticate(ctx, "/api/user/register", models.User{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	})
}

// Login posts to /api/user/login and keeps the bearer token returned in the
// Authorization header.
func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (models.Session, error) {
	return h.authenticate(ctx, "/api/user/login", models.User{
		Email:    email,
		Password: password,
	})
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (models.Session, error) {
	var principal models.Principal

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&principal).
		Post(path)
	if err != nil {
		return models.Session{}, fmt.Errorf("auth request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Session{}, fmt.Errorf("auth parse bearer token: %w", err)
	}

	if principal.ID == "" {
		parsed, err := utils.ParseUnverifiedJWTToken(token)
		if err != nil {
			return models.Session{}, fmt.Errorf("auth parse token claims: %w", err)
		}
		principal = *parsed.Principal()
	}

	h.SetToken(token)
	return models.Session{Token: token, Principal: principal, UpdatedAt: time.Now().UTC()}, nil
}

// Logout drops the bearer token. The server keeps no session state.
func (h *httpServerAdapter) Logout(_ context.Context) error {
	h.SetToken("")
	return nil
}

// Current resolves the token's principal with GET /api/user/me.
func (h *httpServerAdapter) Current(ctx context.Context) (*models.Principal, error) {
	if h.Token() == "" {
		return nil, nil
	}

	var principal models.Principal
	resp, err := h.authedRequest(ctx).SetResult(&principal).Get("/api/user/me")
	if err != nil {
		return nil, fmt.Errorf("current user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return &principal, nil
}

// Create posts the note to /api/notes/ and returns the assigned id.
func (h *httpServerAdapter) Create(ctx context.Context, note models.Note) (string, error) {
	var created models.CreateNoteResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(note).
		SetResult(&created).
		Post("/api/notes/")
	if err != nil {
		return "", fmt.Errorf("create note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return created.ID, nil
}

func (h *httpServerAdapter) Get(ctx context.Context, id string) (models.Note, error) {
	var note models.Note

	resp, err := h.authedRequest(ctx).
		SetResult(&note).
		SetPathParam("id", id).
		Get("/api/notes/{id}")
	if err != nil {
		return models.Note{}, fmt.Errorf("get note request: %w", err)
	}
	if err = noteError(mapHTTPError(resp)); err != nil {
		return models.Note{}, err
	}

	return note, nil
}

func (h *httpServerAdapter) Update(ctx context.Context, id string, patch models.NotePatch) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(patch).
		SetPathParam("id", id).
		Patch("/api/notes/{id}")
	if err != nil {
		return fmt.Errorf("update note request: %w", err)
	}

	return noteError(mapHTTPError(resp))
}

func (h *httpServerAdapter) Delete(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		Delete("/api/notes/{id}")
	if err != nil {
		return fmt.Errorf("delete note request: %w", err)
	}

	return noteError(mapHTTPError(resp))
}

// Query posts q to /api/notes/query.
func (h *httpServerAdapter) Query(ctx context.Context, q models.NoteQuery) ([]models.Note, error) {
	var list models.NoteListResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(q).
		SetResult(&list).
		Post("/api/notes/query")
	if err != nil {
		return nil, fmt.Errorf("query notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrBadRequest) {
			return nil, fmt.Errorf("%w: %w", store.ErrInvalidQuery, err)
		}
		return nil, err
	}

	if list.Notes == nil {
		list.Notes = []models.Note{}
	}
	return list.Notes, nil
}

// Put uploads data as the raw body of POST /api/files/{path}.
func (h *httpServerAdapter) Put(ctx context.Context, path string, data []byte) (string, error) {
	var uploaded models.UploadResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data).
		SetResult(&uploaded).
		Post("/api/files/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return uploaded.URL, nil
}

// Open downloads an object from GET /api/files/{path}.
func (h *httpServerAdapter) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	resp, err := h.authedRequest(ctx).Get("/api/files/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", store.ErrObjectNotFound, err)
		}
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(resp.Body())), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// noteError keeps the NoteStore contract: a missing note is reported as
// store.ErrNoteNotFound whichever backend served the call.
func noteError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %w", store.ErrNoteNotFound, err)
	}
	return err
}
