package models

import (
	"fmt"
	"time"
)

// SourceWeb is the Source value assigned to chunks produced from scraped
// web pages. File-origin chunks carry their display name as Source instead.
const SourceWeb = "web"

// ChunkMetadata describes where a chunk came from. Exactly one of Filename
// or URL is set; the other is empty. The populated field is the grouping key
// used for filtering and deletion.
type ChunkMetadata struct {
	Filename   string    `json:"filename,omitempty"`
	URL        string    `json:"url,omitempty"`
	Title      string    `json:"title,omitempty"`
	ChunkIndex int       `json:"chunkIndex"`
	Source     string    `json:"source"`
	UploadedAt time.Time `json:"uploadedAt,omitempty"`
	ScrapedAt  time.Time `json:"scrapedAt,omitempty"`
}

// Key returns the grouping key for the chunk: the filename for file-origin
// chunks, the URL for web-origin chunks.
func (m *ChunkMetadata) Key() string {
	if m.URL != "" {
		return m.URL
	}
	return m.Filename
}

// IsWeb reports whether the chunk was produced from a scraped page.
func (m *ChunkMetadata) IsWeb() bool {
	return m.URL != ""
}

// Chunk is one bounded segment of ingested content. Chunks are immutable
// once created and are deleted only as a whole source group.
type Chunk struct {
	ID       string        `json:"id"`
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ChunkID derives the deterministic chunk identifier from the source key and
// chunk index, so re-ingesting identical content is idempotent per index.
func ChunkID(sourceKey string, index int) string {
	return fmt.Sprintf("%s-chunk-%d", sourceKey, index)
}

// UploadedItem is the derived per-source view over stored chunks, grouped by
// filename or URL. It is computed by scanning stored metadata, never stored.
type UploadedItem struct {
	Key         string    `json:"key"`
	Kind        string    `json:"kind"` // "file" or "web"
	ChunkCount  int       `json:"chunkCount"`
	FirstSeenAt time.Time `json:"firstSeenAt"`
}

const (
	// UploadedKindFile marks items grouped by filename.
	UploadedKindFile = "file"
	// UploadedKindWeb marks items grouped by URL.
	UploadedKindWeb = "web"
)
