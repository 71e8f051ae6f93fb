package http

import (
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
)

// maxUploadSize caps the body of a single image upload.
const maxUploadSize = 10 << 20

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadSize))
	if err != nil {
		log.Err(err).Str("func", "*Handler.uploadFile").Msg("failed to read upload body")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	url, err := h.services.FileService.Upload(r.Context(), chi.URLParam(r, "*"), data)
	if err != nil {
		writeError(w, log, "*Handler.uploadFile", err)
		return
	}

	utils.WriteJSON(w, models.UploadResponse{URL: url}, http.StatusCreated)
}

func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	objectPath := chi.URLParam(r, "*")

	rc, err := h.services.FileService.Open(r.Context(), objectPath)
	if err != nil {
		writeError(w, log, "*Handler.downloadFile", err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(objectPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)

	if _, err = io.Copy(w, rc); err != nil {
		log.Err(err).Str("func", "*Handler.downloadFile").Msg("failed to stream file")
	}
}
