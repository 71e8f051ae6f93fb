package models

// CreateNoteResponse is returned by the document store after a note was
// written.
type CreateNoteResponse struct {
	// ID is the identifier assigned by the store.
	ID string `json:"id"`
}

// UploadResponse is returned by the object store after an upload.
type UploadResponse struct {
	// URL is the retrieval address of the stored object.
	URL string `json:"url"`
}

// NoteListResponse carries the result of a note query.
type NoteListResponse struct {
	Notes []Note `json:"notes"`

	// Length is the total number of entries in Notes.
	Length int `json:"length"`
}
