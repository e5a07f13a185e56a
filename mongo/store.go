// Package mongo archives raw blog documents in a MongoDB collection.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/blogsumm"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Defaults for the blog archive.
const (
	DefaultDatabase   = "blog_db"
	DefaultCollection = "blogs"
)

// blog is the stored shape of a document.
type blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	URL         string             `bson:"url"`
	Title       string             `bson:"title"`
	FullText    string             `bson:"fullText"`
	ContentHash string             `bson:"contentHash"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// Inserter is the subset of *mongo.Collection used by DocumentStore.
type Inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// Ensure DocumentStore implements blogsumm.DocumentStore at compile time.
var _ blogsumm.DocumentStore = (*DocumentStore)(nil)

// DocumentStore writes documents to a MongoDB collection.
type DocumentStore struct {
	coll   Inserter
	client *mongo.Client
}

// Open connects to uri and returns a store writing to database.collection.
// Empty names use DefaultDatabase and DefaultCollection.
func Open(ctx context.Context, uri, database, collection string) (*DocumentStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &DocumentStore{
		coll:   client.Database(database).Collection(collection),
		client: client,
	}, nil
}

// NewDocumentStore creates a DocumentStore writing through coll.
func NewDocumentStore(coll Inserter) *DocumentStore {
	return &DocumentStore{coll: coll}
}

// CreateDocument inserts doc. The assigned ID is the hex ObjectID.
func (s *DocumentStore) CreateDocument(ctx context.Context, doc *blogsumm.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if doc.ContentHash == "" {
		doc.ContentHash = blogsumm.HashContent(doc.FullText)
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	id := primitive.NewObjectID()
	if doc.ID != "" {
		parsed, err := primitive.ObjectIDFromHex(doc.ID)
		if err != nil {
			return blogsumm.Errorf(blogsumm.EINVALID, "document ID is not an ObjectID: %s", doc.ID)
		}
		id = parsed
	}

	_, err := s.coll.InsertOne(ctx, &blog{
		ID:          id,
		URL:         doc.URL,
		Title:       doc.Title,
		FullText:    doc.FullText,
		ContentHash: doc.ContentHash,
		CreatedAt:   doc.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return blogsumm.Errorf(blogsumm.ECONFLICT, "document %s already exists", id.Hex())
	}
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	doc.ID = id.Hex()
	return nil
}

// Close disconnects the client opened by Open.
func (s *DocumentStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
