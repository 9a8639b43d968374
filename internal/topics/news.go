package topics

import (
	"crypto/sha1"
	"encoding/hex"
	"html"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/deusflow/newsroom/internal/rss"
)

const (
	newsSourceName = "Vietnamese News"
	newsTopicLimit = 3
	maxItemAge     = 24 * time.Hour
	maxScore       = 95
)

// keywordSet matches phrases and long words as substrings and short tokens
// (three bytes or less) as whole words, so "ai" does not match "said".
type keywordSet struct {
	substrings []string
	words      []*regexp.Regexp
}

func keywords(list ...string) keywordSet {
	var ks keywordSet
	for _, k := range list {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if !strings.Contains(k, " ") && len(k) <= 3 {
			ks.words = append(ks.words, regexp.MustCompile(`\b`+regexp.QuoteMeta(k)+`\b`))
			continue
		}
		ks.substrings = append(ks.substrings, k)
	}
	return ks
}

// match expects lower-cased text.
func (ks keywordSet) match(text string) bool {
	for _, k := range ks.substrings {
		if strings.Contains(text, k) {
			return true
		}
	}
	for _, re := range ks.words {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

type categoryRule struct {
	name  string
	base  int
	terms keywordSet
}

// Checked in order; the first matching rule names the category.
var categoryRules = []categoryRule{
	{"Crypto", 85, keywords("bitcoin", "crypto", "tiền số", "tiền mã hóa", "tiền điện tử", "blockchain")},
	{"Chứng khoán", 84, keywords("chứng khoán", "vn-index", "cổ phiếu", "hose", "trái phiếu")},
	{"Công nghệ", 82, keywords("công nghệ", "trí tuệ nhân tạo", "chatgpt", "chuyển đổi số", "startup", "bán dẫn", "5g", "chip")},
	{"Kinh tế", 82, keywords("kinh tế", "doanh nghiệp", "lãi suất", "xuất khẩu", "gdp", "ngân hàng", "lạm phát", "bất động sản", "giá vàng")},
	{"Thể thao", 80, keywords("bóng đá", "đội tuyển", "sea games", "world cup", "v-league", "hlv")},
	{"Giáo dục", 78, keywords("giáo dục", "tuyển sinh", "học sinh", "đại học", "thi tốt nghiệp", "giáo viên")},
	{"Sức khỏe", 78, keywords("y tế", "bệnh viện", "sức khỏe", "dịch bệnh", "vaccine", "bác sĩ")},
	{"Du lịch", 74, keywords("du lịch", "du khách", "lữ hành", "khách quốc tế")},
	{"Văn hóa", 74, keywords("văn hóa", "lễ hội", "di sản", "nghệ thuật", "điện ảnh")},
	{"Xã hội", 76, keywords("giao thông", "đô thị", "chính sách", "quốc hội", "chính phủ", "người dân", "môi trường")},
}

var (
	excludeKeywords = keywords("tử vi", "xổ số", "phong thủy", "horoscope", "quảng cáo", "khuyến mãi")
	boostKeywords   = keywords("kỷ lục", "lần đầu", "nóng", "khẩn cấp", "chính thức", "tăng mạnh", "giảm mạnh")
)

var textPolicy = bluemonday.StrictPolicy()

// scoreItem returns the category and score of a feed item, or "" and 0 when
// the item is not topical.
func scoreItem(item rss.Item, now time.Time) (string, int) {
	text := strings.ToLower(item.Title + " " + plainText(item.Description))
	if excludeKeywords.match(text) {
		return "", 0
	}

	var rule *categoryRule
	for i := range categoryRules {
		if categoryRules[i].terms.match(text) {
			rule = &categoryRules[i]
			break
		}
	}
	if rule == nil {
		return "", 0
	}

	score := rule.base
	if boostKeywords.match(text) {
		score += 5
	}
	if !item.Published.IsZero() && now.Sub(item.Published) < 6*time.Hour {
		score += 3
	}
	// Stories that touch several areas tend to be the ones people talk about.
	matched := 0
	for _, r := range categoryRules {
		if r.terms.match(text) {
			matched++
		}
	}
	if matched > 1 {
		score += 2 * (matched - 1)
	}
	return rule.name, min(score, maxScore)
}

func newsKey(title, description string) string {
	h := sha1.New()
	h.Write([]byte(strings.ToLower(title + description)))
	return hex.EncodeToString(h.Sum(nil))
}

func plainText(s string) string {
	s = html.UnescapeString(textPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

func shorten(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:max])) + "..."
}

type scoredItem struct {
	topic     Topic
	published time.Time
}

// newsFromItems turns fresh, deduplicated feed items into at most limit
// topics, best first.
func newsFromItems(items []rss.Item, now time.Time, limit int) []Topic {
	seenLinks := map[string]struct{}{}
	seenContent := map[string]struct{}{}
	var candidates []scoredItem

	for _, item := range items {
		if !item.Published.IsZero() && now.Sub(item.Published) > maxItemAge {
			continue
		}
		if item.Link != "" {
			if _, dup := seenLinks[item.Link]; dup {
				continue
			}
			seenLinks[item.Link] = struct{}{}
		}
		key := newsKey(item.Title, item.Description)
		if _, dup := seenContent[key]; dup {
			continue
		}
		seenContent[key] = struct{}{}

		category, score := scoreItem(item, now)
		if score == 0 {
			continue
		}
		desc := plainText(item.Description)
		if desc == "" {
			desc = item.Title
		}
		candidates = append(candidates, scoredItem{
			topic: Topic{
				Title:       item.Title,
				Description: shorten(desc, 160),
				Category:    category,
				Score:       score,
				Source:      newsSourceName,
				URL:         item.Link,
			},
			published: item.Published,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].topic.Score != candidates[j].topic.Score {
			return candidates[i].topic.Score > candidates[j].topic.Score
		}
		return candidates[i].published.After(candidates[j].published)
	})

	out := make([]Topic, 0, min(limit, len(candidates)))
	for _, c := range candidates {
		if len(out) == limit {
			break
		}
		out = append(out, c.topic)
	}
	return out
}
