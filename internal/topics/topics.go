// Package topics assembles the ranked list of trending Vietnamese topics from
// curated tables, news feeds and a model-generated batch.
package topics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/deusflow/newsroom/internal/llm"
	"github.com/deusflow/newsroom/internal/logger"
	"github.com/deusflow/newsroom/internal/prompt"
	"github.com/deusflow/newsroom/internal/rss"
)

const (
	maxTopics = 15
	aiModel   = "gpt-4o-mini"
	aiBatch   = 4
)

type Topic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Score       int    `json:"score"`
	Source      string `json:"source"`
	URL         string `json:"url,omitempty"`
	Rank        int    `json:"rank,omitempty"`
}

type ScoreRanges struct {
	SuperHot int `json:"super_hot"`
	Hot      int `json:"hot"`
	Trending int `json:"trending"`
}

type Stats struct {
	Total       int            `json:"total"`
	Categories  map[string]int `json:"categories"`
	Sources     map[string]int `json:"sources"`
	ScoreRanges ScoreRanges    `json:"scoreRanges"`
}

type Result struct {
	Topics          []Topic  `json:"topics"`
	CategoryStats   Stats    `json:"categoryStats"`
	LastUpdated     string   `json:"lastUpdated"`
	Sources         []string `json:"sources"`
	SelectedSources []string `json:"selectedSources"`
	TotalCategories int      `json:"totalCategories"`
}

// FeedReader is satisfied by *rss.Reader.
type FeedReader interface {
	FetchAll(ctx context.Context, feeds []rss.Feed) []rss.Item
}

type Service struct {
	llm    llm.Completer
	reader FeedReader
	feeds  []rss.Feed
	now    func() time.Time
}

// NewService wires the sources. A nil completer replaces the model batch with
// the first fallback topics; a nil reader or empty feed list makes the news
// source use its curated table.
func NewService(completer llm.Completer, reader FeedReader, feeds []rss.Feed) *Service {
	return &Service{llm: completer, reader: reader, feeds: feeds, now: time.Now}
}

// ParseSources splits the ?sources= value, defaulting to every source.
func ParseSources(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return append([]string(nil), DefaultSources...)
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (s *Service) Hot(ctx context.Context, selected []string) *Result {
	topics := s.collect(ctx, selected)
	return &Result{
		Topics:          topics,
		CategoryStats:   CategoryStats(topics),
		LastUpdated:     s.now().UTC().Format(time.RFC3339),
		Sources:         SourceNames,
		SelectedSources: selected,
		TotalCategories: TotalCategories,
	}
}

func (s *Service) collect(ctx context.Context, selected []string) []Topic {
	want := map[string]bool{}
	for _, src := range selected {
		want[src] = true
	}

	type source struct {
		name  string
		fetch func(context.Context) ([]Topic, error)
	}
	static := func(t []Topic) func(context.Context) ([]Topic, error) {
		return func(context.Context) ([]Topic, error) { return copyTopics(t), nil }
	}
	var sources []source
	if want[SourceGoogle] {
		sources = append(sources, source{SourceGoogle, static(googleTopics)})
	}
	if want[SourceBaoMoi] {
		sources = append(sources, source{SourceBaoMoi, static(baomoiTopics)})
	}
	if want[SourceSocial] {
		sources = append(sources, source{SourceSocial, static(socialTopics)})
	}
	if want[SourceNews] {
		sources = append(sources, source{SourceNews, s.news})
	}
	sources = append(sources, source{"ai", s.generated})

	batches := make([][]Topic, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			topics, err := src.fetch(gctx)
			if err != nil {
				logger.Warn("topic source failed", "source", src.name, "error", err)
				return nil
			}
			batches[i] = topics
			return nil
		})
	}
	_ = g.Wait()

	var all []Topic
	for _, b := range batches {
		all = append(all, b...)
	}
	if len(all) == 0 {
		logger.Warn("no topics collected, using fallback")
		all = copyTopics(fallbackTopics)
	}
	return Rank(all)
}

func (s *Service) news(ctx context.Context) ([]Topic, error) {
	if s.reader != nil && len(s.feeds) > 0 {
		items := s.reader.FetchAll(ctx, s.feeds)
		if topics := newsFromItems(items, s.now(), newsTopicLimit); len(topics) > 0 {
			return topics, nil
		}
		logger.Info("no scored feed items, using curated news topics")
	}
	return copyTopics(newsTopics), nil
}

// generated asks the model for a fresh batch. Bad output yields no topics
// rather than an error.
func (s *Service) generated(ctx context.Context) ([]Topic, error) {
	if s.llm == nil {
		logger.Info("no model configured, using fallback topics")
		return copyTopics(fallbackTopics[:aiBatch]), nil
	}
	p := prompt.HotTopics(s.now())
	out, err := s.llm.Complete(ctx, llm.Request{
		System:      p.System,
		User:        p.User,
		Model:       aiModel,
		Temperature: 0.8,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate topics: %w", err)
	}
	topics, err := ParseGenerated(out)
	if err != nil {
		logger.Warn("failed to parse AI topics", "error", err)
		return nil, nil
	}
	return topics, nil
}

type generatedTopic struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
	Source      string  `json:"source"`
}

// ParseGenerated reads the model's JSON array, tolerating a Markdown fence.
func ParseGenerated(out string) ([]Topic, error) {
	out = strings.TrimSpace(out)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")

	var raw []generatedTopic
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &raw); err != nil {
		return nil, err
	}
	topics := make([]Topic, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.Title) == "" {
			continue
		}
		src := r.Source
		if src == "" {
			src = "Current Events"
		}
		topics = append(topics, Topic{
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
			Score:       int(math.Round(r.Score)),
			Source:      src,
		})
	}
	return topics, nil
}

// Rank drops near-duplicates (same first three words), sorts by score and
// numbers the best fifteen.
func Rank(all []Topic) []Topic {
	seen := map[string]bool{}
	unique := make([]Topic, 0, len(all))
	for _, t := range all {
		key := titleKey(t.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, t)
	}

	sort.SliceStable(unique, func(i, j int) bool { return unique[i].Score > unique[j].Score })
	if len(unique) > maxTopics {
		unique = unique[:maxTopics]
	}
	for i := range unique {
		unique[i].Rank = i + 1
	}
	return unique
}

func titleKey(title string) string {
	words := strings.Split(title, " ")
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.ToLower(strings.Join(words, " "))
}

func CategoryStats(topics []Topic) Stats {
	st := Stats{
		Total:      len(topics),
		Categories: map[string]int{},
		Sources:    map[string]int{},
	}
	for _, t := range topics {
		st.Categories[t.Category]++
		st.Sources[t.Source]++
		switch {
		case t.Score >= 90:
			st.ScoreRanges.SuperHot++
		case t.Score >= 80:
			st.ScoreRanges.Hot++
		default:
			st.ScoreRanges.Trending++
		}
	}
	return st
}
