package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// ErrEmptyContent marks a comment submission with no content after trimming.
// Callers treat it as a silent no-op, not a user-visible error.
var ErrEmptyContent = errors.New("comment content is empty")

// CommentService defines the use cases for handling comments.
type CommentService interface {
	// Add attaches a comment to an existing document. Returns ErrEmptyContent
	// when the trimmed content is empty and ErrNotFound when the document does
	// not exist.
	Add(ctx context.Context, documentID int64, content string) (*model.Comment, error)

	// ListForDocument returns a document's comments, newest first. An unknown
	// document yields an empty list, not an error.
	ListForDocument(ctx context.Context, documentID int64) ([]model.Comment, error)
}

type commentService struct {
	comments  repository.CommentRepository
	documents repository.DocumentRepository
}

// NewCommentService constructs a new CommentService.
func NewCommentService(comments repository.CommentRepository, documents repository.DocumentRepository) CommentService {
	return &commentService{comments: comments, documents: documents}
}

func (s *commentService) Add(ctx context.Context, documentID int64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	// Confirm the document exists before inserting.
	if _, err := s.documents.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("check document: %w", err)
	}

	comment := &model.Comment{
		DocumentID: documentID,
		Content:    content,
		CreatedAt:  formatTimestamp(timeNow()),
	}
	return s.comments.Create(ctx, comment)
}

func (s *commentService) ListForDocument(ctx context.Context, documentID int64) ([]model.Comment, error) {
	return s.comments.ListForDocument(ctx, documentID)
}
