package scraper

import (
	"context"

	"github.com/deusflow/newsroom/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Extractor is anything that turns a URL into an article, usually a
// Waterfall.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (*Article, error)
}

// ExtractLinks fetches the full text behind each link, at most parallel at a
// time. Links whose page cannot be read keep their description as content so
// the caller always gets one article per link, in order.
func ExtractLinks(ctx context.Context, ex Extractor, links []Link, parallel int) []Article {
	articles := make([]Article, len(links))
	if parallel < 1 {
		parallel = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, link := range links {
		articles[i] = Article{Title: link.Title, Content: link.Description, URL: link.URL}
		g.Go(func() error {
			article, err := ex.Extract(gctx, link.URL)
			if err != nil {
				logger.Warn("can't get article content", "url", link.URL, "error", err)
				return nil
			}
			if runeLen(article.Content) > 100 {
				articles[i].Content = article.Content
				articles[i].Stage = article.Stage
			}
			return nil
		})
	}
	_ = g.Wait()
	return articles
}
