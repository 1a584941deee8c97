package sqlite

import (
	"context"
	"database/sql"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// DocumentSQLite is a SQLite implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentSQLite struct {
	db *sql.DB
}

// NewDocumentSQLite creates a new DocumentSQLite repository.
func NewDocumentSQLite(db *sql.DB) *DocumentSQLite {
	return &DocumentSQLite{db: db}
}

var _ repository.DocumentRepository = (*DocumentSQLite)(nil)

// Create inserts a new document row and returns the stored record.
// An empty description is normalized to NULL.
func (r *DocumentSQLite) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (title, description, original_filename, stored_filename, uploaded_at)
		VALUES (?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, q,
		doc.Title,
		nullableText(doc.Description),
		doc.OriginalFilename,
		doc.StoredFilename,
		doc.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *doc
	out.ID = id
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentSQLite) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = `
		SELECT id, title, description, original_filename, stored_filename, uploaded_at
		FROM documents
		WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var d model.Document
	var desc sql.NullString
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&desc,
		&d.OriginalFilename,
		&d.StoredFilename,
		&d.UploadedAt,
	); err != nil {
		return nil, err
	}
	d.Description = desc.String
	return &d, nil
}

// ListSummaries returns the listing projection ordered by upload time descending.
func (r *DocumentSQLite) ListSummaries(ctx context.Context) ([]model.DocumentSummary, error) {
	const q = `
		SELECT id, title, uploaded_at
		FROM documents
		ORDER BY datetime(uploaded_at) DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentSummary, 0)
	for rows.Next() {
		var s model.DocumentSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.UploadedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListAll returns the full projection of every document, newest first.
func (r *DocumentSQLite) ListAll(ctx context.Context) ([]model.Document, error) {
	const q = `
		SELECT id, title, description, original_filename, stored_filename, uploaded_at
		FROM documents
		ORDER BY datetime(uploaded_at) DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		var desc sql.NullString
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&desc,
			&d.OriginalFilename,
			&d.StoredFilename,
			&d.UploadedAt,
		); err != nil {
			return nil, err
		}
		d.Description = desc.String
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func nullableText(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
