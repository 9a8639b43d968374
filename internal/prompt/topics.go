package prompt

import (
	"fmt"
	"time"
)

// HotTopics asks for four current Vietnamese topics as a JSON array.
func HotTopics(now time.Time) Pair {
	return Pair{User: fmt.Sprintf(`Hãy tạo ra 4 chủ đề đang HOT và trending nhất hiện tại tại Việt Nam (tháng %d/%d) để viết báo.

Yêu cầu:
- Chủ đề phải thực tế, có tính thời sự cao
- Phù hợp với người Việt Nam
- Có thể viết thành bài báo hay
- Bao gồm: kinh tế, công nghệ, xã hội, văn hóa

Chỉ trả về JSON, không kèm giải thích:
[
  {
    "title": "Tiêu đề ngắn gọn",
    "description": "Mô tả chi tiết 1-2 câu",
    "category": "Loại (Kinh tế/Công nghệ/Xã hội/Văn hóa)",
    "score": 95,
    "source": "Current Events"
  }
]`, int(now.Month()), now.Year())}
}
