// Package rss loads the feed list and reads Vietnamese news feeds.
package rss

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/deusflow/newsroom/internal/logger"
	"github.com/deusflow/newsroom/internal/retry"
)

// FeedsConfig is the YAML layout:
//
//	feeds:
//	  - name: VnExpress
//	    url: https://vnexpress.net/rss/tin-moi-nhat.rss
type FeedsConfig struct {
	Feeds []Feed `yaml:"feeds"`
}

type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Item is one feed entry with the fields the topic scorer needs.
type Item struct {
	Title       string
	Description string
	Link        string
	Published   time.Time
	Source      string
}

// LoadFeeds reads the feed list from a YAML file.
func LoadFeeds(path string) ([]Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	feeds := cfg.Feeds[:0]
	for _, feed := range cfg.Feeds {
		if strings.TrimSpace(feed.URL) == "" {
			continue
		}
		if feed.Name == "" {
			feed.Name = feed.URL
		}
		feeds = append(feeds, feed)
	}
	return feeds, nil
}

type Reader struct {
	client  *http.Client
	timeout time.Duration
	retry   retry.Config
}

func NewReader(timeout time.Duration) *Reader {
	return &Reader{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		retry:   retry.Config{MaxAttempts: 2, Delay: 300 * time.Millisecond, Retryable: transient},
	}
}

// transient leaves client errors alone; feeds that answer 4xx stay broken.
func transient(err error) bool {
	var he gofeed.HTTPError
	if errors.As(err, &he) {
		return he.StatusCode >= 500
	}
	return !errors.Is(err, context.Canceled)
}

// FetchAll downloads every feed concurrently. A broken feed is logged and
// skipped; items keep feed order.
func (r *Reader) FetchAll(ctx context.Context, feeds []Feed) []Item {
	perFeed := make([][]Item, len(feeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, feed := range feeds {
		g.Go(func() error {
			items, err := r.fetch(gctx, feed)
			if err != nil {
				logger.Warn("error parsing RSS", "feed", feed.URL, "error", err)
				return nil
			}
			perFeed[i] = items
			logger.Debug("loaded feed", "feed", feed.Name, "items", len(items))
			return nil
		})
	}
	_ = g.Wait()

	var all []Item
	ok := 0
	for _, items := range perFeed {
		if items != nil {
			ok++
		}
		all = append(all, items...)
	}
	logger.Info("processed RSS feeds", "ok", ok, "total", len(feeds), "items", len(all))
	return all
}

func (r *Reader) fetch(ctx context.Context, feed Feed) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.Client = r.client
	var parsed *gofeed.Feed
	err := retry.Do(ctx, r.retry, func(ctx context.Context) error {
		var err error
		parsed, err = parser.ParseURLWithContext(feed.URL, ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if it == nil || strings.TrimSpace(it.Title) == "" {
			continue
		}
		item := Item{
			Title:       strings.TrimSpace(it.Title),
			Description: it.Description,
			Link:        it.Link,
			Source:      feed.Name,
		}
		if it.PublishedParsed != nil {
			item.Published = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			item.Published = *it.UpdatedParsed
		}
		items = append(items, item)
	}
	return items, nil
}
