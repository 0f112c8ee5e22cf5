// Package ingest turns uploaded files into chunked, metadata-tagged records
// ready for the vector store.
package ingest

import (
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/askdata-labs/askdata-engine/pkg/apperrors"
	"github.com/askdata-labs/askdata-engine/pkg/chunker"
	"github.com/askdata-labs/askdata-engine/pkg/models"
)

// Media types accepted by the extractor. text/x-markdown is the legacy
// Markdown alias some browsers still send.
const (
	MediaTypeText        = "text/plain"
	MediaTypeMarkdown    = "text/markdown"
	MediaTypeMarkdownAlt = "text/x-markdown"
)

// Extractor decodes uploaded files and splits them into chunks.
type Extractor struct {
	splitter *chunker.Splitter
	logger   *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewExtractor creates an Extractor using the given splitter.
func NewExtractor(splitter *chunker.Splitter, logger *zap.Logger) *Extractor {
	return &Extractor{
		splitter: splitter,
		logger:   logger.Named("ingest"),
		now:      time.Now,
	}
}

// Extract decodes data as UTF-8 text and returns its chunks, each carrying
// the display name as filename and source. Unsupported media types fail with
// apperrors.ErrUnsupportedMediaType; that error is user-correctable and is
// surfaced verbatim.
func (e *Extractor) Extract(data []byte, name, mediaType string) ([]models.Chunk, error) {
	switch mediaType {
	case MediaTypeText, MediaTypeMarkdown, MediaTypeMarkdownAlt:
	default:
		return nil, fmt.Errorf("%w: %s (%s); only TXT and MD files are supported",
			apperrors.ErrUnsupportedMediaType, name, mediaType)
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("extract text from %s: content is not valid UTF-8", name)
	}

	segments := e.splitter.Split(string(data))
	uploadedAt := e.now().UTC()

	chunks := make([]models.Chunk, len(segments))
	for i, segment := range segments {
		chunks[i] = models.Chunk{
			ID:      models.ChunkID(name, i),
			Content: segment,
			Metadata: models.ChunkMetadata{
				Filename:   name,
				ChunkIndex: i,
				Source:     name,
				UploadedAt: uploadedAt,
			},
		}
	}

	e.logger.Info("Extracted file",
		zap.String("filename", name),
		zap.String("media_type", mediaType),
		zap.Int("bytes", len(data)),
		zap.Int("chunks", len(chunks)))

	return chunks, nil
}
