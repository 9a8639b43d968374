package scraper

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var genericParagraphSelectors = []string{
	"article p",
	".article p",
	".content p",
	".post p",
	".detail p",
	"main p",
	".container p",
}

var (
	leadingDate = regexp.MustCompile(`^\d+/\d+/\d+`)
	titleSuffix = regexp.MustCompile(`\s*-\s*.*$`)
)

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// fromRendered reads a browser-rendered DOM: the site table first, then the
// loose selectors for unknown sites, then the generic paragraph scan.
func fromRendered(doc *goquery.Document, host string) (title, content string) {
	if site, ok := SiteFor(host); ok {
		title = firstText(doc, site.TitleSelectors)
		content = containerParagraphs(doc, site.ContainerSelectors)
	} else {
		content = allText(doc, looseContentSelectors)
	}
	if content == "" {
		content = genericParagraphs(doc)
	}
	if title == "" {
		title = pageTitle(doc)
	}
	return title, content
}

// fromStatic reads a plain HTTP response with the basic selector table and
// falls back to the generic paragraph scan.
func fromStatic(doc *goquery.Document, host string) (title, content string) {
	if site, ok := SiteFor(host); ok {
		title = firstText(doc, site.BasicTitleSelectors)
		content = firstBlock(doc, site.BasicContentSelectors)
	}
	if content == "" {
		content = genericParagraphs(doc)
	}
	if title == "" {
		title = pageTitle(doc)
	}
	return title, content
}

// firstText returns the text of the first element matching the earliest
// selector that yields something.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if text := cleanLine(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstBlock returns the combined text of every match of the earliest
// selector that yields something.
func firstBlock(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if text := cleanText(doc.Find(selector).Text()); text != "" {
			return text
		}
	}
	return ""
}

// allText joins the text of each element matched by the first selector that
// matches at all.
func allText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		var parts []string
		sel.Each(func(_ int, s *goquery.Selection) {
			parts = append(parts, s.Text())
		})
		return cleanText(strings.Join(parts, "\n"))
	}
	return ""
}

// containerParagraphs takes the first container whose paragraphs are longer
// than 20 characters.
func containerParagraphs(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		var paragraphs []string
		container.Find("p").Each(func(_ int, s *goquery.Selection) {
			text := cleanLine(s.Text())
			if runeLen(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) > 0 {
			return strings.Join(paragraphs, "\n\n")
		}
	}
	return ""
}

// genericParagraphs scans common article layouts and needs at least three
// real paragraphs from a single selector.
func genericParagraphs(doc *goquery.Document) string {
	for _, selector := range genericParagraphSelectors {
		var paragraphs []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := cleanLine(s.Text())
			if keepParagraph(text) {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			return strings.Join(paragraphs, "\n\n")
		}
	}
	return ""
}

func keepParagraph(text string) bool {
	if runeLen(text) < 30 {
		return false
	}
	for _, junk := range []string{"©", "Copyright", "Tags:", "Từ khóa:", "Chia sẻ:", "Share:"} {
		if strings.Contains(text, junk) {
			return false
		}
	}
	return !leadingDate.MatchString(text)
}

// pageTitle falls back to the first h1, then to <title> without its
// " - Site name" suffix.
func pageTitle(doc *goquery.Document) string {
	if h1 := cleanLine(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	title := cleanLine(doc.Find("title").First().Text())
	return strings.TrimSpace(titleSuffix.ReplaceAllString(title, ""))
}
