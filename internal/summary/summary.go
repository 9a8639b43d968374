// Package summary condenses news categories and single articles with a chat
// model.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deusflow/newsroom/internal/llm"
	"github.com/deusflow/newsroom/internal/logger"
	"github.com/deusflow/newsroom/internal/prompt"
	"github.com/deusflow/newsroom/internal/scraper"
)

const (
	ModeCategory = "category"
	ModeArticle  = "article"

	summaryModel       = "gpt-4o"
	defaultMaxArticles = 10
	extractParallel    = 3
)

var ErrInvalidMode = errors.New("Invalid mode")

// ContentError explains, in words meant for the end user, why nothing could
// be summarised. It unwraps to scraper.ErrNoContent.
type ContentError struct {
	Message string
}

func (e *ContentError) Error() string { return e.Message }
func (e *ContentError) Unwrap() error { return scraper.ErrNoContent }

// LinkSource discovers article links on a category page.
type LinkSource interface {
	Links(ctx context.Context, rawURL string, max int) ([]scraper.Link, error)
}

type Settings struct {
	Length      string `json:"length,omitempty"`
	Focus       string `json:"focus,omitempty"`
	Style       string `json:"style,omitempty"`
	MaxArticles int    `json:"maxArticles,omitempty"`
}

type Request struct {
	Mode     string   `json:"mode"`
	URL      string   `json:"url" validate:"required"`
	Settings Settings `json:"settings"`
}

type Result struct {
	Summary   string   `json:"summary"`
	Mode      string   `json:"mode"`
	URL       string   `json:"url"`
	Settings  Settings `json:"settings"`
	Timestamp string   `json:"timestamp"`
}

type Service struct {
	llm      llm.Completer
	links    LinkSource
	articles scraper.Extractor
	now      func() time.Time
}

// NewService takes the category link finder and the article waterfall.
func NewService(completer llm.Completer, links LinkSource, articles scraper.Extractor) *Service {
	return &Service{llm: completer, links: links, articles: articles, now: time.Now}
}

func (s *Service) Summarize(ctx context.Context, req Request) (*Result, error) {
	var (
		summary string
		err     error
	)
	switch req.Mode {
	case ModeCategory:
		summary, err = s.category(ctx, req.URL, req.Settings)
	case ModeArticle:
		summary, err = s.article(ctx, req.URL, req.Settings)
	default:
		return nil, ErrInvalidMode
	}
	if err != nil {
		return nil, err
	}
	return &Result{
		Summary:   summary,
		Mode:      req.Mode,
		URL:       req.URL,
		Settings:  req.Settings,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *Service) category(ctx context.Context, categoryURL string, st Settings) (string, error) {
	length := valueOr(st.Length, "medium")
	focus := valueOr(st.Focus, "general")
	max := st.MaxArticles
	if max <= 0 {
		max = defaultMaxArticles
	}

	links, err := s.links.Links(ctx, categoryURL, max)
	if err != nil {
		logger.Warn("category link discovery failed", "url", categoryURL, "error", err)
	}
	if len(links) == 0 {
		return "", &ContentError{Message: fmt.Sprintf("Không tìm thấy bài báo nào trong chuyên mục này. URL: %s. Có thể do: 1) Trang web chặn bot, 2) Cấu trúc HTML thay đổi, 3) URL không hợp lệ. Thử với URL bài viết đơn lẻ thay vì chuyên mục.", categoryURL)}
	}
	logger.Info("summarizing category", "url", categoryURL, "articles", len(links))

	articles := scraper.ExtractLinks(ctx, s.articles, links, extractParallel)
	blocks := make([]string, 0, len(articles))
	for _, a := range articles {
		blocks = append(blocks, fmt.Sprintf("**%s**\n%s\n", a.Title, a.Content))
	}

	p := prompt.CategorySummary(strings.Join(blocks, "\n---\n\n"), len(articles), length, focus, categoryURL)
	return s.complete(ctx, p, length)
}

func (s *Service) article(ctx context.Context, articleURL string, st Settings) (string, error) {
	length := valueOr(st.Length, "short")
	style := valueOr(st.Style, "paragraph")

	a, err := s.articles.Extract(ctx, articleURL)
	if err != nil && !errors.Is(err, scraper.ErrNoContent) {
		return "", err
	}
	if a == nil || strings.TrimSpace(a.Content) == "" {
		return "", &ContentError{Message: "Không thể trích xuất nội dung từ bài viết này"}
	}
	logger.Info("summarizing article", "url", articleURL, "stage", a.Stage, "chars", len(a.Content))

	return s.complete(ctx, prompt.ArticleSummary(a.Title, a.Content, length, style), length)
}

func (s *Service) complete(ctx context.Context, p prompt.Pair, length string) (string, error) {
	if s.llm == nil {
		return "", llm.ErrNotConfigured
	}
	return s.llm.Complete(ctx, llm.Request{
		System:      p.System,
		User:        p.User,
		Model:       summaryModel,
		Temperature: 0.3,
		TopP:        0.9,
		MaxTokens:   prompt.SummaryMaxTokens(length),
	})
}

func valueOr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
