package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
)

// Stage is one extraction strategy.
type Stage interface {
	Name() string
	Extract(ctx context.Context, rawURL string) (*Article, error)
}

// Readability runs the readability heuristics over the fetched page.
type Readability struct {
	fetcher *Fetcher
}

func NewReadability(f *Fetcher) *Readability {
	return &Readability{fetcher: f}
}

func (r *Readability) Name() string { return "readability" }

// FallbackTitle names an accepted readability result whose page has no title.
func (r *Readability) FallbackTitle() string { return "Untitled" }

func (r *Readability) Extract(ctx context.Context, rawURL string) (*Article, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	data, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability extraction failed: %w", err)
	}
	var text strings.Builder
	if err := article.RenderText(&text); err != nil {
		return nil, fmt.Errorf("render readability text: %w", err)
	}

	var title string
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data)); err == nil {
		title = pageTitle(doc)
	}

	return &Article{Title: title, Content: cleanText(text.String()), URL: rawURL}, nil
}

// Browser renders the page in a headless browser before applying the site
// selector tables.
type Browser struct {
	renderer Renderer
	// OnlyVietnamese skips hosts that are not known Vietnamese news sites.
	OnlyVietnamese bool
}

func NewBrowser(r Renderer) *Browser {
	return &Browser{renderer: r}
}

func (b *Browser) Name() string { return "browser" }

func (b *Browser) Extract(ctx context.Context, rawURL string) (*Article, error) {
	host, err := Hostname(rawURL)
	if err != nil {
		return nil, err
	}
	if b.OnlyVietnamese && !IsVietnameseSite(host) {
		return nil, nil
	}

	doc, err := b.renderer.Render(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	title, content := fromRendered(doc, host)
	return &Article{Title: title, Content: content, URL: rawURL}, nil
}

// Selectors applies the basic per-site selector table to the fetched page.
type Selectors struct {
	fetcher *Fetcher
}

func NewSelectors(f *Fetcher) *Selectors {
	return &Selectors{fetcher: f}
}

func (s *Selectors) Name() string { return "selectors" }

func (s *Selectors) Extract(ctx context.Context, rawURL string) (*Article, error) {
	host, err := Hostname(rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := s.fetcher.Document(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	title, content := fromStatic(doc, host)
	return &Article{Title: title, Content: content, URL: rawURL}, nil
}
