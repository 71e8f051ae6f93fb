package http

import (
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var note models.Note
	if err := utils.DecodeJSON(r.Body, &note); err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	id, err := h.services.NoteService.Create(r.Context(), note)
	if err != nil {
		writeError(w, log, "*Handler.createNote", err)
		return
	}

	utils.WriteJSON(w, models.CreateNoteResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	note, err := h.services.NoteService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, log, "*Handler.getNote", err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var patch models.NotePatch
	if err := utils.DecodeJSON(r.Body, &patch); err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.Update(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		writeError(w, log, "*Handler.updateNote", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.NoteService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, log, "*Handler.deleteNote", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) queryNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var query models.NoteQuery
	if err := utils.DecodeJSON(r.Body, &query); err != nil {
		log.Err(err).Str("func", "*Handler.queryNotes").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	notes, err := h.services.NoteService.Query(r.Context(), query)
	if err != nil {
		writeError(w, log, "*Handler.queryNotes", err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}

	utils.WriteJSON(w, models.NoteListResponse{Notes: notes, Length: len(notes)}, http.StatusOK)
}
