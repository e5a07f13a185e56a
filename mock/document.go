package mock

import (
	"context"

	"github.com/fwojciec/blogsumm"
)

var _ blogsumm.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of blogsumm.DocumentStore.
type DocumentStore struct {
	CreateDocumentFn func(ctx context.Context, doc *blogsumm.Document) error
}

func (s *DocumentStore) CreateDocument(ctx context.Context, doc *blogsumm.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}
