// Package prompt builds the system and user messages sent to the chat
// models. Everything here is pure string assembly over static tables; unknown
// table keys fall back to a default entry.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMethod    = errors.New("invalid input method")
	ErrUnknownDirection = errors.New("invalid direction")
)

// Pair is a system/user message pair. System may be empty.
type Pair struct {
	System string
	User   string
}

type ArticleSpec struct {
	Name            string `json:"name"`
	WordCount       string `json:"wordCount"`
	Structure       string `json:"structure"`
	Characteristics string `json:"characteristics"`
}

const DefaultArticleType = "tin-van"

var articleSpecs = map[string]ArticleSpec{
	"tin-van": {
		Name:            "Tin vắn",
		WordCount:       "200-400 từ",
		Structure:       "Lead paragraph + 2-3 body paragraphs + Conclusion",
		Characteristics: "Súc tích, thông tin cốt lõi, trả lời 5W1H",
	},
	"tin-tong-hop": {
		Name:            "Tin tổng hợp",
		WordCount:       "400-800 từ",
		Structure:       "Headline + Lead + Multiple sources/angles + Background + Conclusion",
		Characteristics: "Tổng hợp nhiều nguồn tin, phân tích đa chiều",
	},
	"phong-su-ngan": {
		Name:            "Phóng sự ngắn",
		WordCount:       "600-1000 từ",
		Structure:       "Hook + Context + Main story + Supporting details + Resolution",
		Characteristics: "Kể chuyện, có tính nhân văn, chi tiết sinh động",
	},
	"bai-phan-tich": {
		Name:            "Bài phân tích",
		WordCount:       "800-1200 từ",
		Structure:       "Issue setup + Analysis + Evidence + Multiple perspectives + Conclusion",
		Characteristics: "Phân tích sâu, dẫn chứng, logic rõ ràng",
	},
	"phong-su-dai": {
		Name:            "Phóng sự dài",
		WordCount:       "1000-2000 từ",
		Structure:       "Opening scene + Character development + Plot progression + Climax + Resolution",
		Characteristics: "Kể chuyện chi tiết, nhân vật sống động, cảm xúc",
	},
	"bai-binh-luan": {
		Name:            "Bài bình luận",
		WordCount:       "600-1000 từ",
		Structure:       "Position statement + Arguments + Counter-arguments + Conclusion",
		Characteristics: "Quan điểm rõ ràng, lập luận chặt chẽ, phản biện",
	},
	"bao-cao-chuyen-sau": {
		Name:            "Báo cáo chuyên sâu",
		WordCount:       "1200+ từ",
		Structure:       "Executive summary + Detailed analysis + Data/Statistics + Recommendations",
		Characteristics: "Dữ liệu chi tiết, phân tích chuyên sâu, khuyến nghị",
	},
}

var tones = map[string]string{
	"objective": "Khách quan, trung tính, không thiên vị, dựa trên sự thật",
	"engaging":  "Hấp dẫn, thu hút, sử dụng hook, storytelling elements",
	"formal":    "Trang trọng, chính thức, ngôn ngữ học thuật, chuyên nghiệp",
	"casual":    "Gần gũi, dễ hiểu, ngôn ngữ đơn giản, thân thiện",
}

var audiences = map[string]string{
	"general":      "Độc giả đại chúng, ngôn ngữ phổ thông, dễ hiểu",
	"business":     "Cộng đồng doanh nghiệp, thuật ngữ kinh doanh, phân tích thị trường",
	"tech":         "Cộng đồng công nghệ, thuật ngữ kỹ thuật, xu hướng technology",
	"youth":        "Giới trẻ, sinh viên, ngôn ngữ trẻ trung, xu hướng mới",
	"professional": "Chuyên gia, chuyên ngành, thuật ngữ chuyên môn, phân tích sâu",
}

func Article(articleType string) ArticleSpec {
	if spec, ok := articleSpecs[articleType]; ok {
		return spec
	}
	return articleSpecs[DefaultArticleType]
}

func Tone(tone string) string {
	if t, ok := tones[tone]; ok {
		return t
	}
	return tones["objective"]
}

func Audience(audience string) string {
	if a, ok := audiences[audience]; ok {
		return a
	}
	return audiences["general"]
}

// Output types for the writing assistant.
const (
	OutputOutline  = "outline"
	OutputComplete = "complete"
	OutputBoth     = "both"
)

// WritingRequest carries the already-resolved writing options.
type WritingRequest struct {
	Method   string
	Content  string
	Context  string
	Spec     ArticleSpec
	Tone     string
	Audience string
	Output   string
}

// Writing builds the prompts for one input method: topic, hottopics,
// articles or word.
func Writing(r WritingRequest) (Pair, error) {
	switch r.Method {
	case "topic":
		return topicPrompts(r), nil
	case "hottopics":
		return hotTopicPrompts(r), nil
	case "articles":
		return sourcePrompts(r, articlesSystem, articlesUser), nil
	case "word":
		return sourcePrompts(r, wordSystem, wordUser), nil
	default:
		return Pair{}, fmt.Errorf("%w: %q", ErrUnknownMethod, r.Method)
	}
}

func header(r WritingRequest) string {
	return fmt.Sprintf("CẤU TRÚC BÀI: %s\nĐẶC ĐIỂM: %s\nPHONG CÁCH: %s\nĐỐI TƯỢNG: %s",
		r.Spec.Structure, r.Spec.Characteristics, r.Tone, r.Audience)
}

func pick(output, outline, complete, both string) string {
	switch output {
	case OutputOutline:
		return outline
	case OutputComplete:
		return complete
	default:
		return both
	}
}

const topicOutline = `ĐỊNH DẠNG OUTPUT - SƯỜN BÀI:
# Tiêu đề bài viết
## I. Mở bài (Lead)
- Điểm nổi bật
- Hook để thu hút người đọc

## II. Thân bài
### 2.1 Điểm chính 1
- Chi tiết hỗ trợ
- Dẫn chứng/ví dụ

### 2.2 Điểm chính 2
- Chi tiết hỗ trợ
- Dẫn chứng/ví dụ

### 2.3 Điểm chính 3 (nếu cần)
- Chi tiết hỗ trợ
- Dẫn chứng/ví dụ

## III. Kết bài
- Tóm tắt điểm chính
- Kết luận/triển vọng
- Call-to-action (nếu cần)

## IV. Gợi ý bổ sung
- Nguồn tin cần kiểm chứng
- Ảnh/infographic đề xuất
- Keywords SEO`

const topicComplete = `ĐỊNH DẠNG OUTPUT - BÀI HOÀN CHỈNH:
Viết bài báo hoàn chỉnh với:
- Tiêu đề hấp dẫn
- Lead paragraph mạnh mẽ
- Thân bài có cấu trúc logic
- Kết bài tóm tắt và kết luận
- Ngôn ngữ báo chí chuyên nghiệp`

const bothFormat = `ĐỊNH DẠNG OUTPUT - CẢ HAI (trả về JSON hợp lệ):
{
  "outline": "%s",
  "article": "%s"
}`

func topicPrompts(r WritingRequest) Pair {
	format := pick(r.Output, topicOutline, topicComplete,
		fmt.Sprintf(bothFormat, "Sườn bài như định dạng trên", "Bài báo hoàn chỉnh như định dạng trên"))

	system := fmt.Sprintf(`Bạn là một nhà báo chuyên nghiệp với 10+ năm kinh nghiệm viết báo tại Việt Nam.

NHIỆM VỤ: Viết %s (%s) về chủ đề được cung cấp.

%s

%s

QUAN TRỌNG:
- Tuân thủ đạo đức báo chí Việt Nam
- Thông tin chính xác, có thể kiểm chứng
- Ngôn ngữ tiếng Việt chuẩn mực
- Cấu trúc rõ ràng, logic
- Phù hợp với %s`, r.Spec.Name, r.Spec.WordCount, header(r), format, r.Spec.WordCount)

	var user strings.Builder
	fmt.Fprintf(&user, "Chủ đề: %s\n\n", r.Content)
	if r.Context != "" {
		fmt.Fprintf(&user, "Bối cảnh/Góc độ: %s\n\n", r.Context)
	}
	fmt.Fprintf(&user, "Hãy viết %s theo yêu cầu trên.",
		pick(r.Output, "sườn bài báo", "bài báo hoàn chỉnh", "cả sườn và bài hoàn chỉnh"))

	return Pair{System: system, User: user.String()}
}

const hotOutline = `ĐỊNH DẠNG OUTPUT - SƯỜN BÀI HOT:
# Tiêu đề câu view (trending-friendly)
## I. Hook Opening
- Điểm nóng hiện tại
- Con số/sự kiện gây chú ý
- Kết nối với trending topic

## II. Phân tích chủ đề HOT
### 2.1 Tại sao trending?
- Nguyên nhân hot
- Tác động xã hội

### 2.2 Góc nhìn độc đáo
- Phân tích sâu
- So sánh/đối chiếu

### 2.3 Ý nghĩa rộng hơn
- Xu hướng dài hạn
- Tác động tương lai

## III. Kết luận viral
- Takeaway message mạnh
- Call-to-action/discussion trigger

## IV. Elements cho viral
- Hashtags đề xuất
- Visual content ideas
- Social sharing angles`

const hotComplete = `ĐỊNH DẠNG OUTPUT - BÀI HOT HOÀN CHỈNH:
Viết bài báo trending với:
- Tiêu đề câu view, SEO-friendly
- Opening hook cực mạnh
- Nội dung phân tích sâu sắc
- Góc độ độc đáo, fresh insight
- Kết bài memorable, shareable
- Ngôn ngữ phù hợp với trend`

func hotTopicPrompts(r WritingRequest) Pair {
	format := pick(r.Output, hotOutline, hotComplete,
		fmt.Sprintf(bothFormat, "Sườn bài HOT như định dạng trên", "Bài HOT hoàn chỉnh như định dạng trên"))

	system := fmt.Sprintf(`Bạn là một nhà báo chuyên nghiệp với 10+ năm kinh nghiệm viết báo tại Việt Nam, đặc biệt giỏi về các chủ đề HOT và TRENDING.

NHIỆM VỤ: Viết %s (%s) về chủ đề HOT đang trending.

ƯU ĐIỂM CỦA BẠN:
- Nắm bắt xu hướng xã hội nhạy bén
- Hiểu tâm lý người đọc Việt Nam
- Viết hấp dẫn, viral-worthy content
- Kết hợp thông tin và góc độ mới lạ

%s

CHIẾN LƯỢC VIẾT CHỦ ĐỀ HOT:
- Hook mạnh mẽ ngay từ đầu bài
- Kết nối với trending context hiện tại
- Đưa ra góc nhìn độc đáo, fresh perspective
- Sử dụng data/số liệu nếu có thể
- Tạo điểm nhấn thu hút social sharing

%s

QUAN TRỌNG:
- Tuân thủ đạo đức báo chí Việt Nam
- Thông tin chính xác, có thể kiểm chứng
- Tránh clickbait thái quá
- Tạo giá trị thật cho người đọc
- Phù hợp với %s
- Tối ưu cho social media sharing`, r.Spec.Name, r.Spec.WordCount, header(r), format, r.Spec.WordCount)

	var user strings.Builder
	fmt.Fprintf(&user, "CHỦ ĐỀ HOT: %s\n\n", r.Content)
	if r.Context != "" {
		fmt.Fprintf(&user, "BỐI CẢNH TRENDING: %s\n\n", r.Context)
	}
	fmt.Fprintf(&user, "Hãy viết %s theo yêu cầu trên.\n\n",
		pick(r.Output, "sườn bài báo HOT", "bài báo HOT hoàn chỉnh", "cả sườn và bài HOT hoàn chỉnh"))
	user.WriteString(`Đặc biệt chú ý:
- Khai thác tối đa tính HOT/trending của chủ đề
- Tạo content có khả năng viral cao
- Kết nối với bối cảnh xã hội Việt Nam hiện tại
- Đưa ra góc nhìn mới, không trùng lặp với các bài đã có`)

	return Pair{System: system, User: user.String()}
}

const articlesSystem = `Bạn là một editor chuyên nghiệp, chuyên viết lại và tổng hợp nhiều bài báo thành bài mới.

NHIỆM VỤ: Từ các bài báo nguồn, tạo ra %s (%s) mới.

YÊU CẦU QUAN TRỌNG:
- KHÔNG copy nguyên văn từ bài gốc
- Tổng hợp, phân tích và viết lại bằng ngôn ngữ mới
- Tạo góc nhìn mới, giá trị gia tăng
- Trích dẫn nguồn khi cần thiết
- Tránh plagiarism hoàn toàn

%s

%s`

const articlesUser = `CÁC BÀI NGUỒN:
%s

Hãy phân tích, tổng hợp và tạo ra bài báo mới từ các nguồn trên. Đảm bảo:
1. Không copy nguyên văn
2. Tạo giá trị mới, góc nhìn mới
3. Cấu trúc logic, mạch lạc
4. Phù hợp %s`

const wordSystem = `Bạn là một editor chuyên nghiệp, chuyên biến các tài liệu thành bài báo.

NHIỆM VỤ: Từ nội dung file Word, viết thành %s (%s) chuyên nghiệp.

YÊU CẦU:
- Phân tích và tái cấu trúc nội dung
- Viết theo chuẩn báo chí Việt Nam
- Tạo tiêu đề hấp dẫn
- Bổ sung context và background nếu cần
- Đảm bảo tính chính xác thông tin

%s

%s`

const wordUser = `NỘI DUNG FILE WORD:
%s

Hãy biến đổi thành bài báo chuyên nghiệp với:
1. Cấu trúc báo chí chuẩn
2. Ngôn ngữ phù hợp đối tượng
3. Thông tin chính xác, đầy đủ
4. Độ dài %s`

func sourcePrompts(r WritingRequest, systemTmpl, userTmpl string) Pair {
	task := pick(r.Output, "Tạo sườn bài chi tiết", "Viết bài hoàn chỉnh", "Tạo cả sườn và bài hoàn chỉnh")
	if r.Output == OutputBoth {
		task += "\n\n" + fmt.Sprintf(bothFormat, "Sườn bài", "Bài hoàn chỉnh")
	}
	return Pair{
		System: fmt.Sprintf(systemTmpl, r.Spec.Name, r.Spec.WordCount, header(r), task),
		User:   fmt.Sprintf(userTmpl, r.Content, r.Spec.WordCount),
	}
}
