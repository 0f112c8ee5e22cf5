package handlers

import (
	"context"

	"github.com/askdata-labs/askdata-engine/pkg/models"
	"github.com/askdata-labs/askdata-engine/pkg/sqlgen"
)

// DocumentStore is the slice of the vector store the HTTP layer needs.
type DocumentStore interface {
	AddDocuments(ctx context.Context, chunks []models.Chunk) error
	UploadedItems(ctx context.Context) ([]models.UploadedItem, error)
	Delete(ctx context.Context, key string) error
}

// FileExtractor decodes an uploaded file into chunks.
type FileExtractor interface {
	Extract(data []byte, name, mediaType string) ([]models.Chunk, error)
}

// WebScraper fetches URL batches and chunks the results.
type WebScraper interface {
	ScrapeMany(ctx context.Context, urls []string) []*models.ScrapedContent
	ProcessMany(scraped []*models.ScrapedContent) []models.Chunk
}

// ChatService answers one conversation turn.
type ChatService interface {
	Chat(ctx context.Context, message string, selectedKeys []string, multiSelect bool) (string, error)
}

// QueryService runs the natural-language-to-SQL pipeline.
type QueryService interface {
	Generate(ctx context.Context, req sqlgen.Request) (*models.GeneratedQuery, error)
}
