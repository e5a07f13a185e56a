// Package fs provides file-based storage for archived blog documents.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/blogsumm"
	"github.com/google/uuid"
)

// URLToPath converts a blog URL to a relative file path rooted at its host.
// Example: https://blog.example.com/posts/go → blog.example.com/posts/go.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", blogsumm.Errorf(blogsumm.EINVALID, "document URL has no host")
	}

	host := strings.ReplaceAll(u.Host, ":", "_")

	// Cleaning against root keeps ".." segments inside the host directory.
	p := path.Clean("/" + u.Path)
	if p == "/" {
		return host + "/index.md", nil
	}
	if strings.HasSuffix(u.Path, "/") {
		return host + p + "/index.md", nil
	}
	return host + p + ".md", nil
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *blogsumm.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("id: ")
	b.WriteString(doc.ID)
	b.WriteString("\nsource: ")
	b.WriteString(doc.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(doc.Title)
	b.WriteString("\nhash: ")
	b.WriteString(doc.ContentHash)
	b.WriteString("\narchived: ")
	b.WriteString(doc.CreatedAt.Format(time.RFC3339))
	b.WriteString("\n---\n\n")
	b.WriteString(doc.FullText)
	return b.String()
}

// Ensure DocumentStore implements blogsumm.DocumentStore at compile time.
var _ blogsumm.DocumentStore = (*DocumentStore)(nil)

// DocumentStore archives documents as markdown files under a directory.
// A later archive of the same URL replaces the earlier file atomically.
type DocumentStore struct {
	baseDir string
}

// NewDocumentStore creates a new DocumentStore writing under baseDir.
func NewDocumentStore(baseDir string) *DocumentStore {
	return &DocumentStore{baseDir: baseDir}
}

// CreateDocument writes a document to disk.
func (s *DocumentStore) CreateDocument(ctx context.Context, doc *blogsumm.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(doc.URL)
	if err != nil {
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

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return writeAtomic(fullPath, []byte(FormatDocument(doc)))
}

// writeAtomic writes data to a temporary file next to name and renames it
// into place.
func writeAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}
