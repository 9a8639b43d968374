package scraper

import (
	"context"
	"fmt"

	"github.com/deusflow/newsroom/internal/logger"
)

const (
	// ArticleThreshold is the content length the article summary needs: more
	// than 200 characters.
	ArticleThreshold = 201
	// TranslateThreshold is the content length URL translation needs.
	TranslateThreshold = 100
)

// fallbackTitler is a stage that names its own accepted result when no stage
// found a title.
type fallbackTitler interface {
	FallbackTitle() string
}

// StageObserver is told which stage produced an accepted result.
type StageObserver func(stage string)

// Waterfall tries stages in order and accepts the first result whose content
// reaches the threshold.
type Waterfall struct {
	stages    []Stage
	threshold int
	observe   StageObserver
}

func NewWaterfall(threshold int, stages ...Stage) *Waterfall {
	return &Waterfall{stages: stages, threshold: threshold}
}

// OnAccept registers a callback for accepted results.
func (w *Waterfall) OnAccept(fn StageObserver) *Waterfall {
	w.observe = fn
	return w
}

// Extract runs the stages. When no stage reaches the threshold, the longest
// partial result is returned as long as it has a title or some content; a
// title found by an earlier stage is kept either way.
func (w *Waterfall) Extract(ctx context.Context, rawURL string) (*Article, error) {
	if _, err := Hostname(rawURL); err != nil {
		return nil, err
	}

	var title string
	var best *Article

	for _, stage := range w.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		article, err := stage.Extract(ctx, rawURL)
		if err != nil {
			logger.Warn("extraction stage failed", "stage", stage.Name(), "url", rawURL, "error", err)
			continue
		}
		if article == nil {
			continue
		}
		article.Stage = stage.Name()
		if title == "" {
			title = article.Title
		}

		length := runeLen(article.Content)
		logger.Debug("extraction stage result", "stage", stage.Name(), "url", rawURL, "title_len", runeLen(article.Title), "content_len", length)

		if length >= w.threshold {
			if title == "" {
				if ft, ok := stage.(fallbackTitler); ok {
					title = ft.FallbackTitle()
				}
			}
			article.Title = title
			if w.observe != nil {
				w.observe(stage.Name())
			}
			return article, nil
		}
		if best == nil || length > runeLen(best.Content) {
			best = article
		}
	}

	if best != nil && (title != "" || best.Content != "") {
		best.Title = title
		return best, nil
	}
	return nil, fmt.Errorf("%s: %w", rawURL, ErrNoContent)
}
