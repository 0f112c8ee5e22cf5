package vectordb

import (
	"context"

	"github.com/askdata-labs/askdata-engine/pkg/models"
)

// Document is one embedded chunk as stored in the index.
type Document struct {
	ID        string
	Content   string
	Embedding []float32
	Metadata  models.ChunkMetadata
}

// Entry is an index row returned by metadata scans.
type Entry struct {
	ID       string
	Metadata models.ChunkMetadata
}

// Index is the persistent vector-index capability. Implementations own
// collection bootstrap (idempotent get-or-create) and must be safe for
// concurrent use.
type Index interface {
	// Add stores documents with their vectors. Existing IDs are replaced,
	// so re-ingestion of identical content is idempotent.
	Add(ctx context.Context, docs []Document) error

	// Query returns the contents of the k most similar documents,
	// optionally restricted by filter (nil means the whole collection).
	Query(ctx context.Context, vector []float32, k int, filter Filter) ([]string, error)

	// Get returns IDs and metadata for documents matching filter (nil for
	// all). limit <= 0 means no limit.
	Get(ctx context.Context, filter Filter, limit int) ([]Entry, error)

	// Delete removes documents by ID. Unknown IDs are ignored.
	Delete(ctx context.Context, ids []string) error

	// Close releases the underlying storage.
	Close() error
}
