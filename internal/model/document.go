package model

// Document represents an uploaded file plus its metadata.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
//
// Timestamps are stored and exchanged as UTC strings in the form
// "2006-01-02T15:04:05Z" so that listing order matches lexical order.
type Document struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	OriginalFilename string `json:"original_filename"`
	StoredFilename   string `json:"stored_filename"`
	UploadedAt       string `json:"uploaded_at"`
}

// DocumentSummary is the projection used by the index listing.
type DocumentSummary struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	UploadedAt string `json:"uploaded_at"`
}
