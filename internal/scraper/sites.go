package scraper

import "strings"

// Site holds the selectors known to work on one news domain.
type Site struct {
	Name string
	Host string

	// Rendered pages: first non-empty title match wins; the first container
	// with paragraphs longer than 20 characters wins.
	TitleSelectors     []string
	ContainerSelectors []string

	// Static pages: whole-element text of the first non-empty match.
	BasicTitleSelectors   []string
	BasicContentSelectors []string

	// Category pages.
	LinkSelectors []string
}

var sites = []Site{
	{
		Name: "VnExpress",
		Host: "vnexpress",

		TitleSelectors:     []string{"h1.title-detail", ".title-detail h1", "h1.title_news_detail", ".container h1", "h1"},
		ContainerSelectors: []string{".fck_detail", ".sidebar_1 .fck_detail", ".Normal", "article .fck_detail", ".content_detail .Normal"},

		BasicTitleSelectors:   []string{"h1.title-detail", ".title-detail h1", "h1"},
		BasicContentSelectors: []string{".fck_detail", ".sidebar_1 .fck_detail"},

		LinkSelectors: []string{
			`.story a[href*="/"]`, `.story-item a[href*="/"]`, `.item-news a[href*="/"]`,
			"h3.title-news a", "h2.title-news a", "article.item-news a",
		},
	},
	{
		Name: "VietnamNet",
		Host: "vietnamnet",

		TitleSelectors:     []string{".ArticleTitle", ".detail-title h1", ".maincontent h1", ".content-detail h1", "h1.title", "h1"},
		ContainerSelectors: []string{".ArticleContent", ".maincontent .ArticleContent", ".detail-content-body", ".content-article-detail", ".article-content"},

		BasicTitleSelectors:   []string{".ArticleTitle", ".detail-title h1", "h1"},
		BasicContentSelectors: []string{".ArticleContent", ".detail-content-body"},

		LinkSelectors: []string{
			".verticalPost a[href]", ".horizontalPost a[href]", ".story-box a[href]",
			".news-item a[href]", ".article-title a[href]", `h3 a[href*="vietnamnet"]`,
			`h2 a[href*="vietnamnet"]`, ".post-title a", ".article-box a", ".story-item a",
		},
	},
	{
		Name: "VnEconomy",
		Host: "vneconomy",

		TitleSelectors:     []string{"h1.detail-title", ".article-title h1", ".detail-content h1", "h1"},
		ContainerSelectors: []string{".detail-content-body", ".article-content", ".detail-content .content-body", ".post-content"},
	},
	{
		Name: "ThanhNien",
		Host: "thanhnien",

		TitleSelectors:     []string{".detail-title h1", ".article-title", "h1.title", "h1"},
		ContainerSelectors: []string{".detail-cmain", ".article-body", ".content-detail", ".post-content"},

		BasicTitleSelectors:   []string{".detail-title h1", ".article-title", "h1"},
		BasicContentSelectors: []string{".detail-cmain", ".article-body"},
	},
	{
		Name: "TuoiTre",
		Host: "tuoitre",

		TitleSelectors:     []string{".article-title h1", ".detail-title", "h1.title", "h1"},
		ContainerSelectors: []string{".detail-content article", ".article-content", ".content-article", ".post-content"},

		BasicTitleSelectors:   []string{".article-title h1", ".detail-title", "h1"},
		BasicContentSelectors: []string{".detail-content article", ".article-content"},

		LinkSelectors: []string{
			".list-news-content a[href]", ".news-item a[href]", `h3 a[href*="tuoitre"]`,
			`h2 a[href*="tuoitre"]`, ".article-title a",
		},
	},
	{
		Name: "DanTri",
		Host: "dantri",

		TitleSelectors:     []string{"h1.title-page-detail", ".detail-title h1", "h1.dt-text-title", ".article-title h1", "h1"},
		ContainerSelectors: []string{".singular-content", ".detail-content", ".article-content", ".dt-text-content", ".content-body"},

		BasicTitleSelectors:   []string{"h1.title-page-detail", ".detail-title h1", "h1.dt-text-title", "h1"},
		BasicContentSelectors: []string{".singular-content", ".detail-content", ".dt-text-content"},

		LinkSelectors: []string{
			".article-item a[href]", ".news-item a[href]", ".article-title a[href]",
			".article h3 a[href]", ".story-item a[href]", "h3.article-title a",
			"h2.article-title a", ".list-news-item a", ".news-list-item a",
			"article h3 a", "article h2 a", `.content-news a[href*="/"]`,
		},
	},
}

var genericLinkSelectors = []string{
	`article a[href*="/"]`, `.story a[href*="/"]`, `.story-item a[href*="/"]`,
	`.article-item a[href*="/"]`, `.news-item a[href*="/"]`, ".story-title a",
	".title-news a", `h3 a[href*="/"]`, `h2 a[href*="/"]`, ".item-news a", ".story a",
}

// Selectors used on rendered pages of unknown sites before the paragraph scan.
var looseContentSelectors = []string{
	".fck_detail", ".content-detail", ".article-content", ".post-content",
	".entry-content", "article .content", ".detail-content p",
}

var vietnameseHosts = []string{
	"vnexpress", "vietnamnet", "vneconomy", "zingnews", "dantri",
	"24h.com", "thanhnien", "tuoitre", "vietnamplus",
}

// SiteFor returns the selector table for host, if one exists.
func SiteFor(host string) (Site, bool) {
	host = strings.ToLower(host)
	for _, s := range sites {
		if strings.Contains(host, s.Host) {
			return s, true
		}
	}
	return Site{}, false
}

// IsVietnameseSite reports whether host belongs to a Vietnamese news site
// worth rendering in a browser.
func IsVietnameseSite(host string) bool {
	host = strings.ToLower(host)
	for _, h := range vietnameseHosts {
		if strings.Contains(host, h) {
			return true
		}
	}
	return false
}

// linkSelectorsFor falls back to the generic table for unknown sites.
func linkSelectorsFor(host string) []string {
	if s, ok := SiteFor(host); ok && len(s.LinkSelectors) > 0 {
		return s.LinkSelectors
	}
	return genericLinkSelectors
}
