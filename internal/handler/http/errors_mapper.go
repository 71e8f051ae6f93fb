package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/validators"
)

type errorResponse struct {
	status  int
	message string
}

// errorStatusMap is ordered: the first matching entry wins, so more specific
// causes come before the errors that wrap them.
var errorStatusMap = []struct {
	target error
	errorResponse
}{
	{validators.ErrEmptyPatch, errorResponse{http.StatusBadRequest, app.MsgEmptyPatch}},
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrWrongPassword, errorResponse{http.StatusUnauthorized, app.MsgInvalidLoginPassword}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{service.ErrTokenCreationFailed, errorResponse{http.StatusInternalServerError, app.MsgLoginFailed}},
	{service.ErrVersionIsNotSpecified, errorResponse{http.StatusBadRequest, app.MsgVersionIsNotSpecified}},

	{store.ErrLoginAlreadyExists, errorResponse{http.StatusConflict, app.MsgEmailAlreadyExists}},
	{store.ErrNoUserWasFound, errorResponse{http.StatusUnauthorized, app.MsgInvalidLoginPassword}},
	{store.ErrNoteNotFound, errorResponse{http.StatusNotFound, app.MsgNoteNotFound}},
	{store.ErrInvalidQuery, errorResponse{http.StatusBadRequest, app.MsgInvalidQuery}},
	{store.ErrObjectNotFound, errorResponse{http.StatusNotFound, app.MsgObjectNotFound}},
	{store.ErrInvalidObjectPath, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
}

func responseFromError(err error) errorResponse {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.target) {
			return entry.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeError logs err under fn and answers with the mapped status and the
// stable plain-text body the client decodes.
func writeError(w http.ResponseWriter, log *logger.Logger, fn string, err error) {
	resp := responseFromError(err)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Msg("request failed")
	} else {
		log.Warn().Err(err).Str("func", fn).Int("status", resp.status).Msg("request rejected")
	}
	http.Error(w, resp.message, resp.status)
}
