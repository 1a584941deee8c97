package model

// Comment is a piece of free text attached to exactly one Document.
type Comment struct {
	ID         int64  `json:"id"`
	DocumentID int64  `json:"document_id"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}
