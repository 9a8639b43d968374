package prompt

import (
	"fmt"
	"strings"
	"time"
)

type lengthSpec struct {
	words     string
	maxTokens int
}

var lengthSpecs = map[string]lengthSpec{
	"brief":    {"50-100 từ (siêu ngắn gọn)", 200},
	"short":    {"150-250 từ (ngắn gọn)", 400},
	"medium":   {"300-400 từ (vừa phải)", 600},
	"long":     {"600-800 từ (chi tiết)", 1000},
	"detailed": {"500+ từ (rất chi tiết)", 1200},
}

var defaultLength = lengthSpec{"300-400 từ", 600}

var focusSpecs = map[string]string{
	"general":    "Tổng quan toàn bộ nội dung",
	"highlights": "Tập trung vào những điểm nổi bật nhất",
	"analysis":   "Phân tích sâu và đưa ra nhận định",
}

var styleSpecs = map[string]string{
	"bullet":     "Dạng danh sách bullet points với các điểm chính",
	"paragraph":  "Dạng đoạn văn liền mạch, dễ đọc",
	"structured": "Dạng có cấu trúc rõ ràng với tiêu đề phụ",
}

func lookupLength(length string) lengthSpec {
	if l, ok := lengthSpecs[length]; ok {
		return l
	}
	return defaultLength
}

// SummaryMaxTokens maps a summary length to the completion budget.
func SummaryMaxTokens(length string) int {
	return lookupLength(length).maxTokens
}

func focusSpec(focus string) string {
	if f, ok := focusSpecs[focus]; ok {
		return f
	}
	return focusSpecs["general"]
}

func styleSpec(style string) string {
	if s, ok := styleSpecs[style]; ok {
		return s
	}
	return "Dạng đoạn văn liền mạch"
}

// CategorySummary summarises several articles from one section page.
func CategorySummary(content string, articleCount int, length, focus, source string) Pair {
	system := fmt.Sprintf(`Bạn là chuyên gia tóm tắt tin tức với khả năng phân tích và tổng hợp thông tin từ nhiều bài báo.

NHIỆM VỤ: Tóm tắt nội dung của %d bài báo từ một chuyên mục báo.

PHONG CÁCH TÓM TẮT:
- Ngôn ngữ rõ ràng, súc tích
- Tập trung vào thông tin chính
- Tránh lặp lại thông tin
- Sử dụng cấu trúc logic

ĐỘ DÀI: %s
TRỌNG TÂM: %s

CẤU TRÚC TÓM TẮT CHUYÊN MỤC:
1. **Tổng quan chung** - Xu hướng chính trong chuyên mục
2. **Các sự kiện nổi bật** - 3-5 sự kiện quan trọng nhất
3. **Phân tích và nhận định** - Đánh giá tác động, ý nghĩa
4. **Kết luận** - Tóm tắt điểm chính cần lưu ý

QUY TẮC:
- Không bịa đặt thông tin không có trong nguồn
- Ưu tiên thông tin có giá trị cao
- Tránh ngôn ngữ cường điệu
- Sử dụng bullet points khi cần thiết`, articleCount, lookupLength(length).words, focusSpec(focus))

	user := fmt.Sprintf(`Hãy tóm tắt nội dung của %d bài báo sau từ chuyên mục báo:

%s

Nguồn: %s

Tạo tóm tắt %s theo trọng tâm %s.`, articleCount, content, source, length, focus)

	return Pair{System: system, User: user}
}

// ArticleSummary summarises one article in the requested style.
func ArticleSummary(title, content, length, style string) Pair {
	var layout string
	switch style {
	case "bullet":
		layout = `- **Điểm chính 1**: [Thông tin quan trọng nhất]
- **Điểm chính 2**: [Thông tin quan trọng thứ hai]
- **Chi tiết**: [Các thông tin bổ sung]
- **Kết luận**: [Ý nghĩa, tác động]`
	case "structured":
		layout = `**Vấn đề chính**: [Nội dung chính của bài]
**Chi tiết quan trọng**: [Thông tin cụ thể]
**Tác động/Ý nghĩa**: [Đánh giá về ảnh hưởng]
**Kết luận**: [Tóm tắt điểm chính]`
	default:
		layout = "Viết dưới dạng đoạn văn liền mạch, bắt đầu bằng điểm chính, sau đó đi vào chi tiết và kết thúc bằng kết luận."
	}

	coverage := "Bao gồm đầy đủ thông tin quan trọng"
	if length == "brief" {
		coverage = "Chỉ nêu những điểm cực kỳ quan trọng"
	}

	system := fmt.Sprintf(`Bạn là chuyên gia tóm tắt bài báo với khả năng trích xuất thông tin quan trọng nhất.

NHIỆM VỤ: Tóm tắt một bài báo cụ thể.

PHONG CÁCH: %s
ĐỘ DÀI: %s

CẤU TRÚC TÓM TẮT BÀI BÁO:
%s

QUY TẮC:
- Giữ nguyên thông tin chính xác
- Không thêm thông tin không có trong bài gốc
- Sử dụng ngôn ngữ dễ hiểu
- %s`, styleSpec(style), lookupLength(length).words, layout, coverage)

	user := fmt.Sprintf(`Hãy tóm tắt bài báo sau:

**Tiêu đề**: %s
**Nội dung**: %s

Tạo tóm tắt %s theo định dạng %s.`, title, content, length, style)

	return Pair{System: system, User: user}
}

var digestFocus = map[string]string{
	"business": "Kinh doanh & Tài chính",
	"social":   "Xã hội & Đời sống",
	"tech":     "Công nghệ & Khoa học",
	"sports":   "Thể thao & Giải trí",
	"general":  "Tổng hợp",
}

// DigestFocus returns the display label for a digest focus key, or "" when
// the key is unknown.
func DigestFocus(focus string) string {
	return digestFocus[focus]
}

// Digest turns a list of headlines into a short news bulletin.
func Digest(headlines []string, length, focus string) Pair {
	size := "6-8 câu vừa phải"
	switch length {
	case "short":
		size = "4-5 câu tóm gọn"
	case "long":
		size = "10-12 câu chi tiết"
	}

	focusLine := DigestFocus(focus)
	section := focusLine
	if focusLine == "" {
		focusLine = "Tổng hợp các lĩnh vực"
		section = "CÁC LĨNH VỰC KHÁC"
	}

	user := fmt.Sprintf(`Bạn là một biên tập viên tin tức chuyên nghiệp của báo Việt Nam với 10 năm kinh nghiệm. Hãy tạo một bản điểm tin chất lượng cao từ các tiêu đề tin tức sau:

TIÊU ĐỀ TIN TỨC HÔM NAY:
• %s

YÊU CẦU CHUYÊN MÔN:
- Tạo điểm tin theo chuẩn báo chí Việt Nam
- Nhóm các tin tức liên quan theo chủ đề
- Sử dụng ngôn ngữ trang trọng, chuyên nghiệp và dễ hiểu
- Độ dài: %s
- Tập trung: %s
- Đưa ra nhận định ngắn về xu hướng tổng thể

ĐỊNH DẠNG XUẤT BẢN:
📰 ĐIỂM TIN NHANH

🔥 NỔI BẬT TRONG NGÀY:
• [2-3 tin quan trọng nhất]

📊 %s:
• [Những tin liên quan đến focus area]

🏛️ TIN TỨC KHÁC:
• [Các tin còn lại, được tóm gọn]

📝 NHẬN ĐỊNH: [Phân tích ngắn gọn về xu hướng chung và tác động]`,
		strings.Join(headlines, "\n• "), size, focusLine, section)

	return Pair{User: user}
}

var vietnamZone = time.FixedZone("ICT", 7*60*60)

// FallbackDigest is served when the model cannot produce a digest.
func FallbackDigest(headlines []string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📰 ĐIỂM TIN NHANH (%d tin)\n\n", len(headlines))

	top := headlines
	if len(top) > 5 {
		top = top[:5]
	}

	b.WriteString("🔥 NỔI BẬT TRONG NGÀY:\n")
	for i := 0; i < len(top) && i < 2; i++ {
		fmt.Fprintf(&b, "• %s\n", top[i])
	}
	if len(top) > 2 {
		b.WriteString("\n📊 CÁC TIN QUAN TRỌNG KHÁC:\n")
		for _, h := range top[2:] {
			fmt.Fprintf(&b, "• %s\n", h)
		}
	}

	fmt.Fprintf(&b, "\n📝 NHẬN ĐỊNH: Hôm nay có %d tin tức quan trọng được cập nhật từ nguồn báo chí uy tín, phản ánh các diễn biến đáng chú ý trong các lĩnh vực %s.\n\n",
		len(headlines), strings.Join(headlineCategories(headlines), ", "))
	fmt.Fprintf(&b, "⏰ *Cập nhật lúc: %s*", now.In(vietnamZone).Format("15:04 02/01/2006"))
	return b.String()
}

func headlineCategories(headlines []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, h := range headlines {
		lower := strings.ToLower(h)
		category := "Tổng hợp"
		switch {
		case strings.Contains(lower, "kinh tế") || strings.Contains(lower, "tài chính"):
			category = "Kinh tế"
		case strings.Contains(lower, "xã hội") || strings.Contains(lower, "giáo dục"):
			category = "Xã hội"
		case strings.Contains(lower, "thể thao"):
			category = "Thể thao"
		}
		if !seen[category] {
			seen[category] = true
			out = append(out, category)
		}
	}
	return out
}
