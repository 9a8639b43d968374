// Package translate translates text and whole web pages between Vietnamese
// and English and proofreads text with a chat model.
package translate

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/deusflow/newsroom/internal/llm"
	"github.com/deusflow/newsroom/internal/logger"
	"github.com/deusflow/newsroom/internal/prompt"
	"github.com/deusflow/newsroom/internal/scraper"
)

const (
	textModel = "gpt-3.5-turbo"
	pageModel = "gpt-4o-mini"

	// DefaultLanguage is used by SpellCheck when no language is given.
	DefaultLanguage = "vi"
)

// ExtractError is returned by TranslateURL when the page yielded neither a
// title nor any content.
type ExtractError struct {
	URL string
}

func (e *ExtractError) Error() string {
	return "Không thể trích xuất nội dung từ URL này. Vui lòng thử URL khác."
}

func (e *ExtractError) Unwrap() error { return scraper.ErrNoContent }

type TextRequest struct {
	Text      string `json:"text" validate:"required"`
	Direction string `json:"direction"`
}

type TextResult struct {
	TranslatedText string `json:"translatedText"`
}

type SpellRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language"`
}

type SpellResult struct {
	CorrectedText string `json:"correctedText"`
}

type URLRequest struct {
	URL       string `json:"url" validate:"required"`
	Direction string `json:"direction" validate:"required"`
}

type Page struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type URLResult struct {
	Original   Page `json:"original"`
	Translated Page `json:"translated"`
}

type Service struct {
	llm   llm.Completer
	pages scraper.Extractor
}

// NewService takes the URL-translation waterfall as pages.
func NewService(completer llm.Completer, pages scraper.Extractor) *Service {
	return &Service{llm: completer, pages: pages}
}

// Translate returns prompt.ErrUnknownDirection for anything other than en-vi
// and vi-en. An empty direction means en-vi.
func (s *Service) Translate(ctx context.Context, req TextRequest) (*TextResult, error) {
	direction := req.Direction
	if direction == "" {
		direction = prompt.DirectionEnVi
	}
	p, err := prompt.Translation(req.Text, direction)
	if err != nil {
		return nil, err
	}
	out, err := s.complete(ctx, llm.Request{User: p.User, Model: textModel})
	if err != nil {
		return nil, err
	}
	return &TextResult{TranslatedText: SanitizeAIText(out)}, nil
}

func (s *Service) SpellCheck(ctx context.Context, req SpellRequest) (*SpellResult, error) {
	language := req.Language
	if language == "" {
		language = DefaultLanguage
	}
	p := prompt.SpellCheck(req.Text, language)
	out, err := s.complete(ctx, llm.Request{User: p.User, Model: textModel})
	if err != nil {
		return nil, err
	}
	return &SpellResult{CorrectedText: out}, nil
}

// TranslateURL extracts the page and translates its title and content in
// separate calls.
func (s *Service) TranslateURL(ctx context.Context, req URLRequest) (*URLResult, error) {
	logger.Info("translating URL", "url", req.URL, "direction", req.Direction)

	a, err := s.pages.Extract(ctx, req.URL)
	if err != nil && !errors.Is(err, scraper.ErrNoContent) {
		return nil, err
	}
	if a == nil || (strings.TrimSpace(a.Title) == "" && strings.TrimSpace(a.Content) == "") {
		return nil, &ExtractError{URL: req.URL}
	}

	original := Page{Title: a.Title, Content: cleanContent(a.Content)}
	logger.Info("page extracted for translation", "url", req.URL, "stage", a.Stage, "title_len", len(original.Title), "content_len", len(original.Content))

	title, err := s.translatePage(ctx, original.Title, req.Direction)
	if err != nil {
		return nil, err
	}
	content, err := s.translatePage(ctx, original.Content, req.Direction)
	if err != nil {
		return nil, err
	}
	return &URLResult{Original: original, Translated: Page{Title: title, Content: content}}, nil
}

func (s *Service) translatePage(ctx context.Context, text, direction string) (string, error) {
	if text == "" {
		return "", nil
	}
	p := prompt.ArticleTranslation(text, direction)
	out, err := s.complete(ctx, llm.Request{
		System:      p.System,
		User:        p.User,
		Model:       pageModel,
		Temperature: 0.3,
		MaxTokens:   4000,
	})
	if err != nil {
		return "", err
	}
	return SanitizeAIText(out), nil
}

func (s *Service) complete(ctx context.Context, req llm.Request) (string, error) {
	if s.llm == nil {
		return "", llm.ErrNotConfigured
	}
	return s.llm.Complete(ctx, req)
}

var boilerplate = []string{
	"Xem thêm:",
	"Đọc thêm:",
	"Tin liên quan",
	"Bạn đang xem",
	"Chia sẻ bài viết",
	"Theo dõi chúng tôi",
}

// cleanContent drops page furniture lines that survive extraction.
func cleanContent(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isBoilerplate(trimmed) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isBoilerplate(line string) bool {
	for _, p := range boilerplate {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

var (
	wrappedNote  = regexp.MustCompile(`(?i)\s*[(\[]\s*(note|lưu ý|ghi chú)\s*:[^)\]]*[)\]]`)
	noteLine     = regexp.MustCompile(`(?im)^[ \t]*(note|translator'?s note)\s*:.*$`)
	viNoteLine   = regexp.MustCompile(`(?im)^[ \t]*(lưu ý|ghi chú)\s*:.*(bản dịch|dịch máy).*$`)
	blankRunLine = regexp.MustCompile(`\n{3,}`)
)

// SanitizeAIText strips the translation disclaimers models like to add:
// "(Note: ...)", "[Note: ...]" and whole "Note: ..." lines.
func SanitizeAIText(s string) string {
	s = wrappedNote.ReplaceAllString(s, "")
	s = noteLine.ReplaceAllString(s, "")
	s = viNoteLine.ReplaceAllString(s, "")
	s = blankRunLine.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
