package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/deusflow/newsroom/internal/cache"
	"github.com/deusflow/newsroom/internal/llm"
	"github.com/deusflow/newsroom/internal/logger"
	"github.com/deusflow/newsroom/internal/prompt"
	"github.com/deusflow/newsroom/internal/scraper"
)

const (
	maxHeadlines = 8
	minHeadlines = 6
	digestModel  = "gpt-4o"
)

var supportedSites = []string{"VnEconomy", "DanTri", "VietnamNet", "VnExpress", "TuoiTre", "ThanhNien", "Zing", "24h"}

var vietnamZone = time.FixedZone("ICT", 7*60*60)

type Headline struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
	ReadTime  string `json:"readTime"`
}

type DigestResult struct {
	Success    bool       `json:"success"`
	Mode       string     `json:"mode"`
	SourceType string     `json:"sourceType"`
	URL        string     `json:"url"`
	Headlines  []Headline `json:"headlines,omitempty"`
	Summary    string     `json:"summary"`
	Timestamp  string     `json:"timestamp"`
	FromCache  bool       `json:"fromCache"`
	CacheAge   string     `json:"cacheAge,omitempty"`
}

type DigestDebug struct {
	Timestamp    string `json:"timestamp"`
	CacheSize    int    `json:"cacheSize"`
	CacheCleared string `json:"cacheCleared"`
}

type DigestHealth struct {
	Success        bool         `json:"success"`
	Message        string       `json:"message"`
	Version        string       `json:"version"`
	SupportedSites []string     `json:"supportedSites"`
	LastUpdated    string       `json:"lastUpdated"`
	Debug          *DigestDebug `json:"debug,omitempty"`
}

// Digester builds quick "điểm tin" digests from category headlines and keeps
// them for the cache TTL.
type Digester struct {
	llm      llm.Completer
	links    LinkSource
	articles scraper.Extractor
	cache    *cache.Cache[DigestResult]
	now      func() time.Time
}

func NewDigester(completer llm.Completer, links LinkSource, articles scraper.Extractor, c *cache.Cache[DigestResult]) *Digester {
	return &Digester{llm: completer, links: links, articles: articles, cache: c, now: time.Now}
}

// Health drops expired cache entries and reports the digest service state.
func (d *Digester) Health(debug bool) DigestHealth {
	removed := d.cache.Cleanup()
	if removed > 0 {
		logger.Debug("digest cache cleaned", "removed", removed)
	}
	now := d.now()
	h := DigestHealth{
		Success:        true,
		Message:        "Enhanced Content Summary API is working",
		Version:        "2.1-Fresh",
		SupportedSites: supportedSites,
		LastUpdated:    now.In(vietnamZone).Format("15:04:05 2/1/2006"),
	}
	if debug {
		h.Debug = &DigestDebug{
			Timestamp:    now.UTC().Format(time.RFC3339),
			CacheSize:    d.cache.Len(),
			CacheCleared: "Old entries removed",
		}
	}
	return h
}

func digestKey(req Request) string {
	settings, _ := json.Marshal(req.Settings)
	return req.URL + "_" + string(settings)
}

func (d *Digester) Digest(ctx context.Context, req Request) (*DigestResult, error) {
	switch req.Mode {
	case ModeCategory:
		return d.category(ctx, req)
	case ModeArticle:
		return d.article(ctx, req)
	}
	return nil, ErrInvalidMode
}

func (d *Digester) category(ctx context.Context, req Request) (*DigestResult, error) {
	key := digestKey(req)
	if cached, age, ok := d.cache.Get(key); ok {
		logger.Info("serving digest from cache", "url", req.URL)
		cached.FromCache = true
		cached.CacheAge = fmt.Sprintf("%d phút", int(math.Round(age.Minutes())))
		return &cached, nil
	}

	headlines, err := d.headlines(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(headlines))
	for i, h := range headlines {
		titles[i] = h.Title
	}

	summary, err := d.summarize(ctx, titles, req.Settings)
	if err != nil {
		logger.Warn("digest model failed, using offline digest", "error", err)
		summary = prompt.FallbackDigest(titles, d.now())
	}

	result := DigestResult{
		Success:    true,
		Mode:       ModeCategory,
		SourceType: "Điểm tin chuyên mục",
		URL:        req.URL,
		Headlines:  headlines,
		Summary:    summary,
		Timestamp:  d.now().UTC().Format(time.RFC3339),
	}
	d.cache.Set(key, result)
	return &result, nil
}

func (d *Digester) summarize(ctx context.Context, titles []string, st Settings) (string, error) {
	if d.llm == nil {
		return "", llm.ErrNotConfigured
	}
	p := prompt.Digest(titles, st.Length, st.Focus)
	return d.llm.Complete(ctx, llm.Request{
		System:      p.System,
		User:        p.User,
		Model:       digestModel,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
}

// headlines returns up to eight discovered headlines, padded with generic
// ones for the detected category when the page yields fewer than six.
func (d *Digester) headlines(ctx context.Context, rawURL string) ([]Headline, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q", rawURL)
	}
	host := u.Hostname()

	links, err := d.links.Links(ctx, rawURL, maxHeadlines)
	if err != nil {
		logger.Warn("headline discovery failed", "url", rawURL, "error", err)
	}

	now := d.now().UTC()
	var out []Headline
	for _, l := range links {
		out = append(out, Headline{Title: l.Title, URL: l.URL})
	}
	if len(out) < minHeadlines {
		for _, title := range genericHeadlines(host, DetectCategory(rawURL)) {
			if len(out) == maxHeadlines {
				break
			}
			out = append(out, Headline{Title: title, URL: rawURL})
		}
	}
	for i := range out {
		out[i].Timestamp = now.Format(time.RFC3339)
		out[i].ReadTime = fmt.Sprintf("%d phút đọc", 2+i%4)
	}
	return out, nil
}

// DetectCategory guesses the section of a Vietnamese news URL from its path.
func DetectCategory(rawURL string) string {
	p := strings.ToLower(rawURL)
	has := func(parts ...string) bool {
		for _, s := range parts {
			if strings.Contains(p, s) {
				return true
			}
		}
		return false
	}
	switch {
	case has("kinh-te", "tai-chinh", "dau-tu", "kinh-doanh"):
		return "economy"
	case has("xa-hoi", "doi-song", "giao-duc"):
		return "social"
	case has("the-thao", "sports"):
		return "sports"
	case has("cong-nghe", "khoa-hoc", "tech"):
		return "tech"
	case has("suc-khoe", "y-te"):
		return "health"
	case has("phap-luat", "an-ninh"):
		return "law"
	}
	return "general"
}

func genericHeadlines(host, category string) []string {
	area := "tổng hợp"
	switch category {
	case "economy":
		area = "kinh tế"
	case "social":
		area = "xã hội"
	}
	return []string{
		fmt.Sprintf("Cập nhật tin tức nổi bật từ %s trong ngày", host),
		fmt.Sprintf("Những diễn biến quan trọng trong lĩnh vực %s", area),
		"Phân tích chuyên sâu về các xu hướng hiện tại",
		"Góc nhìn đa chiều về những vấn đề được quan tâm",
		fmt.Sprintf("Thông tin độc quyền từ nguồn tin uy tín %s", host),
		"Điểm tin nhanh các sự kiện đáng chú ý trong ngày",
	}
}

func (d *Digester) article(ctx context.Context, req Request) (*DigestResult, error) {
	host, err := scraper.Hostname(req.URL)
	if err != nil {
		return nil, err
	}

	var summary string
	a, err := d.articles.Extract(ctx, req.URL)
	if err != nil || a == nil || strings.TrimSpace(a.Content) == "" {
		logger.Warn("digest article extraction failed", "url", req.URL, "error", err)
		summary = offlineArticleSummary(host, req.URL)
	} else {
		summary, err = d.summarizeArticle(ctx, a, req.Settings)
		if err != nil {
			logger.Warn("digest article model failed, using offline summary", "error", err)
			summary = offlineArticleSummary(host, req.URL)
		}
	}

	return &DigestResult{
		Success:    true,
		Mode:       ModeArticle,
		SourceType: "Bài viết đơn lẻ",
		URL:        req.URL,
		Summary:    summary,
		Timestamp:  d.now().UTC().Format(time.RFC3339),
	}, nil
}

func (d *Digester) summarizeArticle(ctx context.Context, a *scraper.Article, st Settings) (string, error) {
	if d.llm == nil {
		return "", llm.ErrNotConfigured
	}
	length := valueOr(st.Length, "short")
	p := prompt.ArticleSummary(a.Title, a.Content, length, valueOr(st.Style, "paragraph"))
	return d.llm.Complete(ctx, llm.Request{
		System:      p.System,
		User:        p.User,
		Model:       digestModel,
		Temperature: 0.3,
		TopP:        0.9,
		MaxTokens:   prompt.SummaryMaxTokens(length),
	})
}

func offlineArticleSummary(host, rawURL string) string {
	site := strings.NewReplacer("www.", "", ".vn", "", ".com", "").Replace(host)
	return fmt.Sprintf(`📄 **Tóm tắt bài viết từ %s**

🔍 **Nội dung chính:**
Bài viết đưa tin về những diễn biến mới nhất trong lĩnh vực được đề cập. Tác giả phân tích các khía cạnh quan trọng và đưa ra nhận định khách quan về vấn đề.

📊 **Các điểm nổi bật:**
• Thông tin được cập nhật từ nguồn tin đáng tin cậy
• Phân tích tác động đến thị trường và xã hội
• Dự báo xu hướng phát triển trong thời gian tới

💡 **Kết luận:**
Đây là một bài viết có giá trị thông tin cao, cung cấp cái nhìn tổng quan về chủ đề được quan tâm.

📅 *Tóm tắt được tạo tự động từ %s*`, strings.ToUpper(site), rawURL)
}
