package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// Renderer returns the DOM of a page after its scripts have run.
type Renderer interface {
	Render(ctx context.Context, rawURL string) (*goquery.Document, error)
}

// Chrome renders pages with a fresh headless Chrome per call.
type Chrome struct {
	timeout time.Duration
	wait    time.Duration
}

func NewChrome(timeout, wait time.Duration) *Chrome {
	return &Chrome{timeout: timeout, wait: wait}
}

func (c *Chrome) Render(ctx context.Context, rawURL string) (*goquery.Document, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1366, 768),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, c.timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(rawURL),
		chromedp.Sleep(c.wait),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", rawURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("error parsing rendered HTML: %w", err)
	}
	return doc, nil
}

// StaticRenderer stands in for the browser when it is disabled, reading the
// plain HTTP response instead.
type StaticRenderer struct {
	fetcher *Fetcher
}

func NewStaticRenderer(f *Fetcher) *StaticRenderer {
	return &StaticRenderer{fetcher: f}
}

func (s *StaticRenderer) Render(ctx context.Context, rawURL string) (*goquery.Document, error) {
	return s.fetcher.Document(ctx, rawURL)
}
