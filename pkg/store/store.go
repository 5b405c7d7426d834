// Package store persists named JSON documents for later inspection and
// comparison.
//
// Documents are saved verbatim, so member order and number literals survive a
// round trip. Two backends implement [Store]:
//
//   - [FileStore]: one JSON file per document, for the CLI
//   - [MongoStore]: a MongoDB collection, for the HTTP server
//
// # Usage
//
//	s, err := store.NewFileStore("")  // ~/.config/jsonscope/documents
//	doc, err := store.NewDocument("api response", raw)
//	err = s.Save(ctx, doc)
//	got, err := s.Get(ctx, doc.ID)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperr "github.com/matzehuels/jsonscope/pkg/errors"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Store saves and loads documents. Implementations are safe for concurrent use.
type Store interface {
	// Save creates or replaces doc. UpdatedAt is set by the store.
	Save(ctx context.Context, doc *Document) error

	// Get returns the document with the given id or an error wrapping ErrNotFound.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns summaries of all documents, most recently updated first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a document. A missing document wraps ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// Document is a saved JSON text.
type Document struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Summary describes a document without its content.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Size      int       `json:"size" bson:"size"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// NewDocument validates name and returns a document with a fresh random id.
func NewDocument(name, content string) (*Document, error) {
	if err := apperr.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Summary returns the summary of d.
func (d *Document) Summary() Summary {
	return Summary{ID: d.ID, Name: d.Name, Size: len(d.Content), UpdatedAt: d.UpdatedAt}
}

func notFound(id string) error {
	return apperr.Wrap(apperr.ErrCodeDocumentNotFound, ErrNotFound, "document %s not found", id)
}

func prepare(doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if err := apperr.ValidateDocumentID(doc.ID); err != nil {
		return err
	}
	if err := apperr.ValidateDocumentName(doc.Name); err != nil {
		return err
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	return nil
}
