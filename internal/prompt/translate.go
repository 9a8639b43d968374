package prompt

import "fmt"

const (
	DirectionEnVi = "en-vi"
	DirectionViEn = "vi-en"
)

const enViText = `Dịch văn bản sau từ tiếng Anh sang tiếng Việt theo chuẩn báo chí Việt Nam chuyên nghiệp. Yêu cầu chi tiết:

PHONG CÁCH VÀ VĂN PHONG:
- Sử dụng văn phong báo chí: khách quan, chính xác, súc tích, trang trọng
- Tránh ngôn ngữ thông tục, lóng, hoặc quá văn học
- Câu văn rõ ràng, logic, dễ hiểu cho đại chúng
- Sử dụng câu chủ động thay vì câu bị động khi có thể

QUY CHUẨN BÁO CHÍ VIỆT NAM:
- Tuân thủ chính tả và ngữ pháp chuẩn tiếng Việt
- Sử dụng thuật ngữ báo chí chính xác (ví dụ: "tuyên bố" thay vì "nói", "khẳng định" thay vì "bảo")
- Danh xưng và chức danh chính xác (Tổng thống, Thủ tướng, Chủ tịch...)
- Đơn vị tiền tệ, thời gian theo chuẩn Việt Nam

THUẬT NGỮ CHUYÊN NGÀNH:
- Kinh tế: GDP, lạm phát, lãi suất, chứng khoán...
- Chính trị: quốc hội, chính phủ, ngoại giao, luật pháp...
- Xã hội: giáo dục, y tế, môi trường, an sinh...
- Công nghệ: AI, blockchain, internet, mạng xã hội...

CẤU TRÚC VÀ LOGIC:
- Giữ nguyên ý nghĩa và tone gốc
- Đảm bảo tính nhất quán trong thuật ngữ
- Cấu trúc câu phù hợp với thói quen đọc của người Việt
- Sử dụng dấu câu đúng chuẩn báo chí

Văn bản gốc: %s

Chỉ trả về phần dịch, không giải thích thêm.`

const viEnText = `Translate the following Vietnamese text to English following international journalism standards. Detailed requirements:

STYLE AND TONE:
- Use professional journalism style: objective, accurate, concise, formal
- Avoid colloquialisms, slang, or overly literary language
- Clear, logical sentences that are accessible to general readers
- Prefer active voice over passive voice when possible

INTERNATIONAL JOURNALISM STANDARDS:
- Follow AP Style/Reuters guidelines for consistency
- Use standard journalism terminology
- Proper titles and designations (President, Prime Minister, Chairman...)
- Standard international units, time formats, currency

SPECIALIZED TERMINOLOGY:
- Economics: GDP, inflation, interest rates, stock market...
- Politics: parliament, government, diplomacy, legislation...
- Society: education, healthcare, environment, social welfare...
- Technology: AI, blockchain, internet, social media...

STRUCTURE AND LOGIC:
- Maintain original meaning and tone
- Ensure terminology consistency throughout
- Sentence structure suitable for international readers
- Proper punctuation according to journalism standards
- Cultural context adaptation for global audience

Original text: %s

Return only the translation, no explanations.`

// Translation builds the single user prompt for text translation.
func Translation(text, direction string) (Pair, error) {
	switch direction {
	case DirectionEnVi:
		return Pair{User: fmt.Sprintf(enViText, text)}, nil
	case DirectionViEn:
		return Pair{User: fmt.Sprintf(viEnText, text)}, nil
	default:
		return Pair{}, fmt.Errorf("%w: %q", ErrUnknownDirection, direction)
	}
}

const viEnArticleSystem = `You are a professional translator specializing in Vietnamese to English translation for journalism and financial news. Follow these guidelines:

CRITICAL REQUIREMENTS:
- Translate Vietnamese financial/business news to professional English
- Maintain journalistic tone and accuracy
- Use proper financial terminology
- Keep numbers, dates, and proper nouns accurate
- Follow Reuters/AP style guidelines
- Ensure clarity and readability for international audience

STYLE GUIDELINES:
- Professional, objective tone
- Active voice when possible
- Concise yet comprehensive
- Proper business/financial terminology
- Clear sentence structure
- Maintain original meaning and context

OUTPUT: Provide ONLY the English translation, no explanations or notes.`

const enViArticleSystem = `Bạn là một dịch giả chuyên nghiệp chuyên dịch tin tức tài chính từ tiếng Anh sang tiếng Việt theo phong cách báo VnEconomy.

YÊU CẦU QUAN TRỌNG:
- Dịch tin tức tài chính/kinh doanh từ tiếng Anh sang tiếng Việt chuyên nghiệp
- Sử dụng phong cách báo chí tài chính Việt Nam, đặc biệt là VnEconomy
- Thuật ngữ kinh tế chính xác và nhất quán
- Giữ nguyên số liệu, ngày tháng, tên riêng
- Văn phong trang trọng, khách quan
- Câu văn súc tích, dễ hiểu

PHONG CÁCH VNECONOMY:
- Tiêu đề: Ngắn gọn, có tác động, sử dụng động từ mạnh
- Nội dung: Khách quan, chính xác, sử dụng thuật ngữ kinh tế chuẩn
- Số liệu: Ghi rõ đơn vị (triệu USD, tỷ đồng, %)
- Trích dẫn: Rõ ràng nguồn tin, tên chức danh đầy đủ

KẾT QUẢ: Chỉ cung cấp bản dịch tiếng Việt, không giải thích thêm.`

// ArticleTranslation is used for translated web pages. Any direction other
// than vi-en translates into Vietnamese.
func ArticleTranslation(text, direction string) Pair {
	if direction == DirectionViEn {
		return Pair{System: viEnArticleSystem, User: text}
	}
	return Pair{System: enViArticleSystem, User: text}
}

// SpellCheck asks for a corrected copy of text; language "vi" selects
// Vietnamese, anything else English.
func SpellCheck(text, language string) Pair {
	lang := "tiếng Anh"
	if language == "vi" {
		lang = "tiếng Việt"
	}
	return Pair{User: fmt.Sprintf("Kiểm tra và sửa lỗi chính tả, ngữ pháp trong văn bản %s sau: %s. Trả về văn bản đã sửa.", lang, text)}
}
