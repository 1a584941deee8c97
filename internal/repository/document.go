package repository

import (
	"context"

	"docshare/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller provides all fields except ID, which is assigned by the database.
	// Returns the stored document including the assigned ID.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// ListSummaries returns the index projection (id, title, uploaded_at),
	// newest first.
	ListSummaries(ctx context.Context) ([]model.DocumentSummary, error)

	// ListAll returns the full projection of every document, newest first.
	ListAll(ctx context.Context) ([]model.Document, error)
}
