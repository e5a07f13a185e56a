package blogsumm

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Document represents the raw text of a fetched blog post archived in the
// document store.
type Document struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	FullText    string    `json:"fullText"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.FullText == "" {
		return Errorf(EINVALID, "document text required")
	}
	return nil
}

// DocumentStore archives raw documents. Writes are append-only.
type DocumentStore interface {
	// CreateDocument stores the document, assigning ID, ContentHash and
	// CreatedAt when they are empty.
	CreateDocument(ctx context.Context, doc *Document) error
}

// HashContent returns the hex encoded xxHash of content.
func HashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
