package vectordb

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/askdata-labs/askdata-engine/pkg/llm"
	"github.com/askdata-labs/askdata-engine/pkg/models"
)

// Store pairs an embedding client with a vector index: it embeds chunks on
// ingestion and queries on retrieval, and compiles caller-facing name sets
// into index filters.
type Store struct {
	index    Index
	embedder llm.EmbeddingClient
	logger   *zap.Logger
}

// NewStore creates a Store over the given index and embedding client.
func NewStore(index Index, embedder llm.EmbeddingClient, logger *zap.Logger) *Store {
	return &Store{
		index:    index,
		embedder: embedder,
		logger:   logger.Named("store"),
	}
}

// AddDocuments embeds every chunk and writes the batch to the index.
// Failures propagate to the caller; a partial embedding batch is never
// written.
func (s *Store) AddDocuments(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	contents := make([]string, len(chunks))
	for i, c := range chunks {
		contents[i] = c.Content
	}

	embeddings, err := s.embedder.CreateEmbeddings(ctx, contents)
	if err != nil {
		return fmt.Errorf("embed %d chunks: %w", len(chunks), err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: got %d for %d chunks", len(embeddings), len(chunks))
	}

	docs := make([]Document, len(chunks))
	for i, c := range chunks {
		docs[i] = Document{
			ID:        c.ID,
			Content:   c.Content,
			Embedding: embeddings[i],
			Metadata:  c.Metadata,
		}
	}

	if err := s.index.Add(ctx, docs); err != nil {
		return fmt.Errorf("index %d chunks: %w", len(chunks), err)
	}

	s.logger.Info("documents added",
		zap.Int("chunks", len(chunks)),
		zap.String("model", s.embedder.GetModel()))
	return nil
}

// Search returns the k most similar chunk contents across the whole corpus.
// Retrieval failures degrade to an empty result so chat can still answer
// from general knowledge; the error is logged, not returned.
func (s *Store) Search(ctx context.Context, query string, k int) []string {
	return s.search(ctx, query, k, nil)
}

// SearchInDocuments restricts Search to chunks from the named files.
func (s *Store) SearchInDocuments(ctx context.Context, query string, filenames []string, k int) []string {
	return s.search(ctx, query, k, ByFilename{Names: filenames})
}

// SearchInContent restricts Search to chunks from a mixed set of filenames
// and URLs.
func (s *Store) SearchInContent(ctx context.Context, query string, names []string, k int) []string {
	return s.search(ctx, query, k, ContentFilter(names))
}

func (s *Store) search(ctx context.Context, query string, k int, filter Filter) []string {
	vector, err := s.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		s.logger.Error("embed query failed, returning no context", zap.Error(err))
		return nil
	}

	results, err := s.index.Query(ctx, vector, k, filter)
	if err != nil {
		s.logger.Error("similarity query failed, returning no context", zap.Error(err))
		return nil
	}
	return results
}

// UploadedItems scans stored metadata and groups chunks by source key,
// producing the per-source view used for listing and selection.
func (s *Store) UploadedItems(ctx context.Context) ([]models.UploadedItem, error) {
	entries, err := s.index.Get(ctx, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("scan stored metadata: %w", err)
	}

	byKey := make(map[string]*models.UploadedItem)
	for _, e := range entries {
		key := e.Metadata.Key()
		if key == "" {
			continue
		}

		item, ok := byKey[key]
		if !ok {
			kind := models.UploadedKindFile
			if e.Metadata.IsWeb() {
				kind = models.UploadedKindWeb
			}
			item = &models.UploadedItem{Key: key, Kind: kind}
			byKey[key] = item
		}

		item.ChunkCount++
		seen := e.Metadata.UploadedAt
		if e.Metadata.IsWeb() {
			seen = e.Metadata.ScrapedAt
		}
		if item.FirstSeenAt.IsZero() || (!seen.IsZero() && seen.Before(item.FirstSeenAt)) {
			item.FirstSeenAt = seen
		}
	}

	items := make([]models.UploadedItem, 0, len(byKey))
	for _, item := range byKey {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Key < items[j].Key
	})
	return items, nil
}

// Delete removes every chunk belonging to the source key. Deleting a key
// with no stored chunks is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	entries, err := s.index.Get(ctx, KeyFilter(key), 0)
	if err != nil {
		return fmt.Errorf("resolve chunks for %q: %w", key, err)
	}
	if len(entries) == 0 {
		return nil
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	if err := s.index.Delete(ctx, ids); err != nil {
		return fmt.Errorf("delete chunks for %q: %w", key, err)
	}

	s.logger.Info("source deleted", zap.String("key", key), zap.Int("chunks", len(ids)))
	return nil
}
