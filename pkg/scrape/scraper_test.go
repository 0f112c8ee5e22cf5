package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/askdata-labs/askdata-engine/pkg/chunker"
	"github.com/askdata-labs/askdata-engine/pkg/models"
)

const fixturePage = `<!DOCTYPE html>
<html>
<head>
  <title>Example Article</title>
  <meta name="description" content="A page about examples">
  <meta name="author" content="Jane Roe">
  <meta property="article:published_time" content="2024-03-01T10:00:00Z">
  <script>console.log("ignore me")</script>
  <style>.x{color:red}</style>
</head>
<body>
  <nav>Home | About</nav>
  <div class="sidebar">Related posts</div>
  <article>
    <h1>Example Article</h1>
    <p>First paragraph of the body text.</p>
    <p>Second paragraph with a <a href="https://example.org/more">link</a>
       and a <a href="/relative">relative link</a>.</p>
  </article>
  <footer>Copyright</footer>
</body>
</html>`

// stubRenderer returns canned HTML or an error.
type stubRenderer struct {
	html  string
	err   error
	calls int
}

func (r *stubRenderer) Render(_ context.Context, _ string) (string, error) {
	r.calls++
	return r.html, r.err
}

func newTestScraper(t *testing.T, renderer Renderer) *Scraper {
	t.Helper()
	splitter, err := chunker.New(1000, 200)
	require.NoError(t, err)
	return NewScraper(Config{RequestDelay: time.Millisecond, UserAgent: "test-agent"},
		splitter, renderer, zap.NewNop())
}

func TestScrapeOne_StaticFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(fixturePage))
	}))
	defer srv.Close()

	s := newTestScraper(t, nil)
	content, err := s.ScrapeOne(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "test-agent", gotUA)
	assert.Equal(t, srv.URL, content.URL)
	assert.Equal(t, "Example Article", content.Title)
	assert.Contains(t, content.Content, "First paragraph of the body text.")
	assert.Contains(t, content.Content, "Second paragraph")

	// Chrome and class-marked regions are stripped.
	assert.NotContains(t, content.Content, "console.log")
	assert.NotContains(t, content.Content, "Home | About")
	assert.NotContains(t, content.Content, "Related posts")
	assert.NotContains(t, content.Content, "Copyright")

	assert.Equal(t, "A page about examples", content.Metadata.Description)
	assert.Equal(t, "Jane Roe", content.Metadata.Author)
	assert.Equal(t, "2024-03-01T10:00:00Z", content.Metadata.PublishedDate)
	assert.Positive(t, content.Metadata.WordCount)

	// Only absolute links are collected.
	assert.Equal(t, []string{"https://example.org/more"}, content.Metadata.Links)
}

func TestScrapeOne_FallsBackToRendererOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	renderer := &stubRenderer{html: fixturePage}
	s := newTestScraper(t, renderer)

	content, err := s.ScrapeOne(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, "Example Article", content.Title)
}

func TestScrapeOne_RendererFailureIsFinal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	renderer := &stubRenderer{err: errors.New("navigation timeout")}
	s := newTestScraper(t, renderer)

	_, err := s.ScrapeOne(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "navigation timeout")
}

func TestScrapeOne_NoRendererSurfacesFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := newTestScraper(t, nil)
	_, err := s.ScrapeOne(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestScrapeMany_SkipsFailuresAndPreservesOrder(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>` + r.URL.Path + `</title></head><body><main>ok</main></body></html>`))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()

	s := newTestScraper(t, nil)
	urls := []string{good.URL + "/a", bad.URL + "/b", good.URL + "/c"}

	results := s.ScrapeMany(context.Background(), urls)
	require.Len(t, results, 2)
	assert.Equal(t, good.URL+"/a", results[0].URL)
	assert.Equal(t, good.URL+"/c", results[1].URL)
}

func TestScrapeMany_CanceledContextStopsBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScraper(t, nil)
	s.limiter.SetLimit(0.0001) // Force the limiter to block so cancellation is observed.

	results := s.ScrapeMany(ctx, []string{"http://unreachable.invalid/a", "http://unreachable.invalid/b"})
	assert.Empty(t, results)
}

func TestProcessMany_TagsChunksWithWebOrigin(t *testing.T) {
	s := newTestScraper(t, nil)
	scrapedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return scrapedAt }

	contents := []*models.ScrapedContent{
		{URL: "http://example.com/a", Title: "Page A", Content: "alpha beta gamma"},
		{URL: "http://example.com/b", Title: "Page B", Content: "delta"},
	}

	chunks := s.ProcessMany(contents)
	require.Len(t, chunks, 2)

	assert.Equal(t, "http://example.com/a-chunk-0", chunks[0].ID)
	assert.Equal(t, "http://example.com/a", chunks[0].Metadata.URL)
	assert.Equal(t, "Page A", chunks[0].Metadata.Title)
	assert.Equal(t, models.SourceWeb, chunks[0].Metadata.Source)
	assert.Equal(t, 0, chunks[0].Metadata.ChunkIndex)
	assert.Equal(t, scrapedAt, chunks[0].Metadata.ScrapedAt)
	assert.Empty(t, chunks[0].Metadata.Filename)

	assert.Equal(t, "http://example.com/b-chunk-0", chunks[1].ID)
	assert.Equal(t, "Page B", chunks[1].Metadata.Title)
}

func TestProcessMany_ChunkIndicesPerSourceAreContiguous(t *testing.T) {
	splitter, err := chunker.New(50, 10)
	require.NoError(t, err)
	s := NewScraper(Config{RequestDelay: time.Millisecond, UserAgent: "test"},
		splitter, nil, zap.NewNop())

	long := ""
	for i := 0; i < 40; i++ {
		long += "some sentence here. "
	}
	chunks := s.ProcessMany([]*models.ScrapedContent{
		{URL: "http://example.com/long", Title: "Long", Content: long},
	})
	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.Equal(t, i, c.Metadata.ChunkIndex)
	}
}
