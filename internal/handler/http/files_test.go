package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFile(t *testing.T) {
	files := &fakeFileService{
		uploadFn: func(_ context.Context, path string, data []byte) (string, error) {
			if len(data) == 0 {
				return "", service.ErrInvalidDataProvided
			}
			assert.Equal(t, "notes/n1/images/1-cat.png", path)
			return "http://files/" + path, nil
		},
	}
	h := newTestHandler(&service.Services{FileService: files})

	rr := serve(t, h, http.MethodPost, "/api/files/notes/n1/images/1-cat.png", "png-bytes", "valid-token")
	require.Equal(t, http.StatusCreated, rr.Code)
	var got models.UploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "http://files/notes/n1/images/1-cat.png", got.URL)

	requireBody(t, serve(t, h, http.MethodPost, "/api/files/notes/n1/images/1-cat.png", "", "valid-token"), http.StatusBadRequest, app.MsgInvalidDataProvided)
	requireBody(t, serve(t, h, http.MethodPost, "/api/files/notes/n1/images/1-cat.png", "png", ""), http.StatusUnauthorized, app.MsgAuthenticationRequired)
}

func TestDownloadFile(t *testing.T) {
	files := &fakeFileService{
		openFn: func(_ context.Context, path string) (io.ReadCloser, error) {
			if path != "notes/n1/images/1-cat.png" {
				return nil, store.ErrObjectNotFound
			}
			return io.NopCloser(strings.NewReader("png-bytes")), nil
		},
	}
	h := newTestHandler(&service.Services{FileService: files})

	rr := serve(t, h, http.MethodGet, "/api/files/notes/n1/images/1-cat.png", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rr.Body.String())

	requireBody(t, serve(t, h, http.MethodGet, "/api/files/notes/n1/images/other.png", "", ""), http.StatusNotFound, app.MsgObjectNotFound)
}
