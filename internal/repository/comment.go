package repository

import (
	"context"

	"docshare/internal/model"
)

// CommentRepository defines data access for comments.
// Existence of the owning document is the caller's concern; the schema-level
// foreign key is the only structural check applied here.
type CommentRepository interface {
	// Create inserts a new comment row and returns it with the assigned ID.
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)

	// ListForDocument returns all comments for a document, newest first.
	ListForDocument(ctx context.Context, documentID int64) ([]model.Comment, error)
}
