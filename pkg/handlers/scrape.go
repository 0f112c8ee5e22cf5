package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// ScrapeHandler ingests batches of web pages into the vector store.
type ScrapeHandler struct {
	scraper WebScraper
	store   DocumentStore
	maxURLs int
	logger  *zap.Logger
}

// NewScrapeHandler creates a ScrapeHandler. maxURLs caps one batch.
func NewScrapeHandler(scraper WebScraper, store DocumentStore, maxURLs int, logger *zap.Logger) *ScrapeHandler {
	return &ScrapeHandler{scraper: scraper, store: store, maxURLs: maxURLs, logger: logger}
}

// RegisterRoutes registers the scrape handler's routes on the given mux.
func (h *ScrapeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/scrape", h.Scrape)
}

type scrapeRequest struct {
	URLs []string `json:"urls"`
}

// scrapedSummary is the per-URL slice of the aggregate response.
type scrapedSummary struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	WordCount     int    `json:"wordCount"`
	Description   string `json:"description,omitempty"`
	Author        string `json:"author,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
	Links         int    `json:"links"`
}

// Scrape handles POST /api/scrape. Invalid URLs are filtered out before
// scraping; per-URL scrape failures are skipped, and only a batch where
// every URL failed is reported as an error.
func (h *ScrapeHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.URLs) == 0 {
		_ = ErrorResponse(w, http.StatusBadRequest, "Please provide a valid array of URLs")
		return
	}

	var validURLs []string
	for _, raw := range req.URLs {
		if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
			validURLs = append(validURLs, raw)
		}
	}
	if len(validURLs) == 0 {
		_ = ErrorResponse(w, http.StatusBadRequest, "No valid URLs provided")
		return
	}
	if len(validURLs) > h.maxURLs {
		_ = ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Maximum %d URLs allowed per request", h.maxURLs))
		return
	}

	h.logger.Info("Starting scrape batch", zap.Int("urls", len(validURLs)))

	scraped := h.scraper.ScrapeMany(r.Context(), validURLs)
	if len(scraped) == 0 {
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to scrape any URLs")
		return
	}

	chunks := h.scraper.ProcessMany(scraped)
	if err := h.store.AddDocuments(r.Context(), chunks); err != nil {
		h.logger.Error("Failed to store scraped content", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Failed to store scraped content")
		return
	}

	summaries := make([]scrapedSummary, len(scraped))
	for i, content := range scraped {
		summaries[i] = scrapedSummary{
			URL:           content.URL,
			Title:         content.Title,
			WordCount:     content.Metadata.WordCount,
			Description:   content.Metadata.Description,
			Author:        content.Metadata.Author,
			PublishedDate: content.Metadata.PublishedDate,
			Links:         len(content.Metadata.Links),
		}
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"message":           "Web content scraped and processed successfully",
		"scraped":           summaries,
		"totalUrls":         len(validURLs),
		"successfulScrapes": len(scraped),
		"totalChunks":       len(chunks),
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	})
}
