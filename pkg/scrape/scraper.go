// Package scrape ingests web pages: it fetches HTML, extracts the readable
// content and page metadata, and turns the result into tagged chunks.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/askdata-labs/askdata-engine/pkg/chunker"
	"github.com/askdata-labs/askdata-engine/pkg/models"
)

// Renderer loads a page in a headless browser and returns the rendered DOM
// as HTML. It is used as the fallback when the plain fetch fails, since some
// target pages are client-rendered.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Config controls scraping behavior.
type Config struct {
	// RequestDelay is the fixed pause between URLs in a batch, throttling
	// against remote-server load.
	RequestDelay time.Duration
	UserAgent    string
}

// Scraper fetches and extracts web pages. Batches run sequentially with a
// fixed inter-request delay.
type Scraper struct {
	client   *http.Client
	renderer Renderer
	splitter *chunker.Splitter
	limiter  *rate.Limiter
	cfg      Config
	logger   *zap.Logger

	now func() time.Time
}

// NewScraper creates a Scraper. renderer may be nil, in which case the
// fallback path is disabled and static fetch failures are final.
func NewScraper(cfg Config, splitter *chunker.Splitter, renderer Renderer, logger *zap.Logger) *Scraper {
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = time.Second
	}
	return &Scraper{
		client:   &http.Client{Timeout: 30 * time.Second},
		renderer: renderer,
		splitter: splitter,
		limiter:  rate.NewLimiter(rate.Every(cfg.RequestDelay), 1),
		cfg:      cfg,
		logger:   logger.Named("scrape"),
		now:      time.Now,
	}
}

// ScrapeOne fetches a single URL and extracts its content. The static fetch
// is tried first; on any failure (network error or non-2xx) the rendered
// fallback runs the same extraction against the browser DOM.
func (s *Scraper) ScrapeOne(ctx context.Context, url string) (*models.ScrapedContent, error) {
	raw, fetchErr := s.fetchStatic(ctx, url)
	if fetchErr != nil {
		if s.renderer == nil {
			return nil, fmt.Errorf("fetch %s: %w", url, fetchErr)
		}
		s.logger.Warn("Static fetch failed, falling back to rendered fetch",
			zap.String("url", url),
			zap.Error(fetchErr))

		rendered, renderErr := s.renderer.Render(ctx, url)
		if renderErr != nil {
			return nil, fmt.Errorf("render %s after fetch failure (%v): %w", url, fetchErr, renderErr)
		}
		raw = rendered
	}

	content, err := extract(url, raw)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", url, err)
	}
	return content, nil
}

// ScrapeMany processes URLs sequentially in input order with a fixed
// inter-request delay. A failure on one URL is logged and skipped; it never
// aborts the batch. The caller decides whether an empty result is fatal.
func (s *Scraper) ScrapeMany(ctx context.Context, urls []string) []*models.ScrapedContent {
	results := make([]*models.ScrapedContent, 0, len(urls))

	for _, url := range urls {
		if err := s.limiter.Wait(ctx); err != nil {
			s.logger.Warn("Scrape batch canceled", zap.Error(err))
			return results
		}

		s.logger.Info("Scraping", zap.String("url", url))
		content, err := s.ScrapeOne(ctx, url)
		if err != nil {
			s.logger.Error("Failed to scrape URL, continuing batch",
				zap.String("url", url),
				zap.Error(err))
			continue
		}
		results = append(results, content)
	}

	return results
}

// ProcessMany splits scraped pages into chunks tagged with web-origin
// metadata. Chunk IDs derive from the URL so re-scraping is idempotent per
// index.
func (s *Scraper) ProcessMany(scraped []*models.ScrapedContent) []models.Chunk {
	scrapedAt := s.now().UTC()

	var chunks []models.Chunk
	for _, content := range scraped {
		for i, segment := range s.splitter.Split(content.Content) {
			chunks = append(chunks, models.Chunk{
				ID:      models.ChunkID(content.URL, i),
				Content: segment,
				Metadata: models.ChunkMetadata{
					URL:        content.URL,
					Title:      content.Title,
					ChunkIndex: i,
					Source:     models.SourceWeb,
					ScrapedAt:  scrapedAt,
				},
			})
		}
	}
	return chunks
}

// fetchStatic performs the plain HTTP fetch. Any non-2xx status is an error
// so the caller can fall back to the rendered path.
func (s *Scraper) fetchStatic(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP error: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}
