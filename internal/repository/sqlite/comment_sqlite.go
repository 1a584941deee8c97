package sqlite

import (
	"context"
	"database/sql"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// CommentSQLite is a SQLite implementation of repository.CommentRepository.
type CommentSQLite struct {
	db *sql.DB
}

// NewCommentSQLite creates a new CommentSQLite repository.
func NewCommentSQLite(db *sql.DB) *CommentSQLite {
	return &CommentSQLite{db: db}
}

var _ repository.CommentRepository = (*CommentSQLite)(nil)

// Create inserts a new comment row and returns the stored record.
func (r *CommentSQLite) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	const q = `
		INSERT INTO comments (document_id, content, created_at)
		VALUES (?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, q,
		comment.DocumentID,
		comment.Content,
		comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *comment
	out.ID = id
	return &out, nil
}

// ListForDocument returns all comments for a document ordered by creation time descending.
func (r *CommentSQLite) ListForDocument(ctx context.Context, documentID int64) ([]model.Comment, error) {
	const q = `
		SELECT id, document_id, content, created_at
		FROM comments
		WHERE document_id = ?
		ORDER BY datetime(created_at) DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
