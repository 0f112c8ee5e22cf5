package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ChromeRenderer renders client-side pages in headless Chrome. Every
// navigation runs under a hard deadline so a single slow page cannot stall
// a batch; a timeout is reported like any other fetch failure.
type ChromeRenderer struct {
	timeout   time.Duration
	userAgent string
	logger    *zap.Logger
}

// NewChromeRenderer creates a renderer with the given navigation timeout.
func NewChromeRenderer(timeout time.Duration, userAgent string, logger *zap.Logger) *ChromeRenderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromeRenderer{
		timeout:   timeout,
		userAgent: userAgent,
		logger:    logger.Named("renderer"),
	}
}

var _ Renderer = (*ChromeRenderer)(nil)

// Render navigates to url and returns the rendered DOM serialized as HTML.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(r.userAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()
	var rendered string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &rendered),
	)
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}

	r.logger.Debug("Rendered page",
		zap.String("url", url),
		zap.Int("html_len", len(rendered)),
		zap.Duration("elapsed", time.Since(start)))

	return rendered, nil
}
