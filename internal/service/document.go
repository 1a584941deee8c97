package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"docshare/internal/model"
	"docshare/internal/repository"
	"docshare/internal/storage"
)

// ValidationError carries the user-facing message shown after a redirect.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrNotFound      = errors.New("document not found")
	ErrTitleRequired = &ValidationError{Message: "Título é obrigatório."}
	ErrFileRequired  = &ValidationError{Message: "Selecione um arquivo."}
	ErrInvalidFormat = &ValidationError{Message: "Formato inválido. Use PDF, JPG ou PNG."}
)

// allowedExtensions is the upload allow-list, matched case-insensitively.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// timeNow is a seam for tests.
var timeNow = time.Now

// formatTimestamp renders t as a UTC second-precision string with a literal Z.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05") + "Z"
}

// UploadInput carries the form fields of an upload request.
type UploadInput struct {
	Title            string
	Description      string
	OriginalFilename string
	Size             int64
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload validates the input, stores the file, saves metadata to the DB, and
	// rolls back the stored file if the DB save fails. Validation failures are
	// returned as *ValidationError in the order title, file, extension.
	Upload(ctx context.Context, r io.Reader, in UploadInput) (*model.Document, error)

	// List returns the index listing projection, newest first.
	List(ctx context.Context) ([]model.DocumentSummary, error)

	// ListAll returns the full projection of every document, newest first.
	ListAll(ctx context.Context) ([]model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id int64) (*model.Document, error)

	// Open returns the stored file content for download.
	Open(ctx context.Context, storedFilename string) (io.ReadCloser, storage.ObjectInfo, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, repo: repo}
}

// sanitizeFilename strips path components and reduces the name to a safe
// character set, the same rules the original filename is displayed under.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}

// storedFilenameFor derives the on-disk name: sanitized base truncated to 60
// characters ("document" when empty), an underscore, the UTC unix timestamp in
// seconds, and the lowercased extension. Two uploads of the same base name in
// the same second collide; the second write overwrites the first on disk.
func storedFilenameFor(sanitized string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(sanitized))
	base := strings.TrimSuffix(sanitized, filepath.Ext(sanitized))
	if len(base) > 60 {
		base = base[:60]
	}
	if base == "" {
		base = "document"
	}
	return fmt.Sprintf("%s_%d%s", base, now.UTC().Unix(), ext)
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, in UploadInput) (*model.Document, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if r == nil || strings.TrimSpace(in.OriginalFilename) == "" {
		return nil, ErrFileRequired
	}

	sanitized := sanitizeFilename(in.OriginalFilename)
	ext := strings.ToLower(filepath.Ext(sanitized))
	if !allowedExtensions[ext] {
		return nil, ErrInvalidFormat
	}

	now := timeNow().UTC()
	storedFilename := storedFilenameFor(sanitized, now)

	// Store the file first; a crash here leaves at most an orphaned file,
	// never a record pointing at a missing one.
	objInfo, err := s.store.Put(ctx, storedFilename, r, storage.PutOptions{
		Size:        in.Size,
		ContentType: mime.TypeByExtension(ext),
	})
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	doc := &model.Document{
		Title:            title,
		Description:      strings.TrimSpace(in.Description),
		OriginalFilename: sanitized,
		StoredFilename:   objInfo.Key,
		UploadedAt:       formatTimestamp(now),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: remove the just-stored file
		if delErr := s.store.Delete(ctx, storedFilename); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns the listing projection without exposing repository types.
func (s *documentService) List(ctx context.Context) ([]model.DocumentSummary, error) {
	return s.repo.ListSummaries(ctx)
}

// ListAll returns the full projection used by the JSON API.
func (s *documentService) ListAll(ctx context.Context) ([]model.Document, error) {
	return s.repo.ListAll(ctx)
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Open returns the stored file content. The stored filename is the sole
// addressing mechanism; no check that it belongs to a known document is made.
func (s *documentService) Open(ctx context.Context, storedFilename string) (io.ReadCloser, storage.ObjectInfo, error) {
	rc, info, err := s.store.Get(ctx, storedFilename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}
