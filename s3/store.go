// Package s3 archives raw blog documents as JSON objects in an S3 bucket.
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/fwojciec/blogsumm"
	"github.com/google/uuid"
)

// Config contains the settings for the S3 document store. Region, Profile
// and Endpoint are optional and fall back to the standard AWS chain.
type Config struct {
	Bucket string
	Prefix string

	Region  string
	Profile string

	// Endpoint overrides the service URL for S3-compatible providers.
	Endpoint string

	// UsePathStyle forces path-style addressing.
	UsePathStyle bool
}

// PutObjectAPI is the subset of the S3 client used by DocumentStore.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Ensure DocumentStore implements blogsumm.DocumentStore at compile time.
var _ blogsumm.DocumentStore = (*DocumentStore)(nil)

// DocumentStore writes each document to its own object. Keys are
// <prefix>/<yyyy>/<mm>/<dd>/<id>.json so archives are never overwritten.
type DocumentStore struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewDocumentStore creates a DocumentStore backed by an SDK client built
// from the default AWS configuration chain.
func NewDocumentStore(ctx context.Context, cfg Config) (*DocumentStore, error) {
	if cfg.Bucket == "" {
		return nil, blogsumm.Errorf(blogsumm.EINVALID, "s3 bucket required")
	}

	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewDocumentStoreWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewDocumentStoreWithClient creates a DocumentStore using client.
func NewDocumentStoreWithClient(client PutObjectAPI, bucket, prefix string) *DocumentStore {
	return &DocumentStore{client: client, bucket: bucket, prefix: prefix}
}

// CreateDocument uploads doc as JSON.
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
		doc.CreatedAt = time.Now().UTC()
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.Key(doc)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"source-url":   doc.URL,
			"content-hash": doc.ContentHash,
		},
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

// Key returns the object key for doc.
func (s *DocumentStore) Key(doc *blogsumm.Document) string {
	return path.Join(s.prefix, doc.CreatedAt.UTC().Format("2006/01/02"), doc.ID+".json")
}

// mapError translates S3 API errors to application errors.
func mapError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.ErrorCode() {
	case "NoSuchBucket":
		return blogsumm.Errorf(blogsumm.ENOTFOUND, "s3 bucket not found: %s", apiErr.ErrorMessage())
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return blogsumm.Errorf(blogsumm.EUNAUTHORIZED, "s3 access denied: %s", apiErr.ErrorMessage())
	case "SlowDown":
		return blogsumm.Errorf(blogsumm.ERATELIMIT, "s3 throttled: %s", apiErr.ErrorMessage())
	default:
		return err
	}
}
