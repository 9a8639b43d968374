package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/deusflow/newsroom/internal/logger"
)

// Link is an article found on a category page.
type Link struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

var menuPatterns = []string{
	"Đăng nhập", "Đăng ký", "Trang chủ", "Liên hệ", "Giới thiệu",
	"Thể thao", "Kinh doanh", "Góc nhìn", "Video", "Podcast",
	"Facebook", "Twitter", "Youtube", "Zalo", "RSS",
}

var blockingSelectors = []string{
	".captcha", `[id*="captcha"]`, `[class*="captcha"]`,
	".blocked", `[id*="blocked"]`, `[class*="blocked"]`,
	".access-denied", `[id*="access"]`,
}

var numericSegment = regexp.MustCompile(`/\d+`)

// LinkFinder discovers article links on category pages.
type LinkFinder struct {
	renderer Renderer
}

func NewLinkFinder(r Renderer) *LinkFinder {
	return &LinkFinder{renderer: r}
}

// Links returns up to max article links from the category page at rawURL.
func (f *LinkFinder) Links(ctx context.Context, rawURL string, max int) ([]Link, error) {
	base, err := url.Parse(rawURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid URL %q", rawURL)
	}

	doc, err := f.renderer.Render(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if Blocked(doc) {
		logger.Warn("possible blocking mechanism detected", "url", rawURL)
	}

	links := LinksFromDocument(doc, base, max)
	logger.Info("extracted article links", "url", rawURL, "count", len(links))
	return links, nil
}

// Blocked reports whether the page shows captcha or access-denied markers.
func Blocked(doc *goquery.Document) bool {
	for _, selector := range blockingSelectors {
		if doc.Find(selector).Length() > 0 {
			return true
		}
	}
	return false
}

// LinksFromDocument applies the site link selectors and, when they find
// nothing, a looser scan of every anchor.
func LinksFromDocument(doc *goquery.Document, base *url.URL, max int) []Link {
	var links []Link
	seen := make(map[string]bool)

	add := func(title, href string) {
		full := resolve(base, href)
		if full == "" || seen[full] {
			return
		}
		seen[full] = true
		links = append(links, Link{Title: title, URL: full, Description: title})
	}

	for _, selector := range linkSelectorsFor(strings.ToLower(base.Hostname())) {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			title := cleanLine(s.Text())
			href, _ := s.Attr("href")
			n := runeLen(title)
			if href == "" || n <= 15 || n >= 200 || isMenuText(title) {
				return
			}
			if looksLikeArticle(resolve(base, href)) {
				add(title, href)
			}
		})
	}

	if len(links) == 0 {
		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			title := cleanLine(s.Text())
			href, _ := s.Attr("href")
			n := runeLen(title)
			if href == "" || n <= 20 || n >= 150 {
				return
			}
			full := resolve(base, href)
			if full == "" || strings.Contains(full, "#") {
				return
			}
			if looksLikeArticle(full) || strings.Contains(full, "bai-viet") {
				add(title, href)
			}
		})
	}

	if max > 0 && len(links) > max {
		links = links[:max]
	}
	return links
}

func isMenuText(title string) bool {
	lower := strings.ToLower(title)
	for _, p := range menuPatterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func looksLikeArticle(u string) bool {
	return strings.Contains(u, ".htm") || numericSegment.MatchString(u) || strings.Contains(u, "post-")
}

// resolve makes href absolute against base. Unparseable and non-http links,
// javascript: included, yield "".
func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}
