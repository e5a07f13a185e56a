package sqlite

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fwojciec/blogsumm"
	"github.com/google/uuid"
)

var _ blogsumm.DocumentStore = (*DocumentStore)(nil)

// DocumentStore archives raw article text in the documents table.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// CreateDocument fills in ID, ContentHash and CreatedAt when unset, then
// inserts doc.
func (s *DocumentStore) CreateDocument(ctx context.Context, doc *blogsumm.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.ContentHash == "" {
		doc.ContentHash = blogsumm.HashContent(doc.FullText)
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	return s.db.exec(ctx, sq.Insert("documents").
		Columns("id", "url", "title", "full_text", "content_hash", "created_at").
		Values(doc.ID, doc.URL, doc.Title, doc.FullText, doc.ContentHash, formatTime(doc.CreatedAt)))
}
