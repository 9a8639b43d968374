package topics

const (
	SourceGoogle   = "google"
	SourceBaoMoi   = "baomoi"
	SourceSocial   = "social"
	SourceNews     = "news"
	sourceFallback = "Fallback Topics"
)

// DefaultSources is what a request without ?sources= gets.
var DefaultSources = []string{SourceGoogle, SourceBaoMoi, SourceSocial, SourceNews}

// SourceNames is reported in every response regardless of selection.
var SourceNames = []string{"Google Trends", "BaoMoi.com", "Social Media", "Vietnamese News"}

// TotalCategories is the size of the category vocabulary shown to clients.
const TotalCategories = 10

var googleTopics = []Topic{
	{
		Title:       "Bitcoin và thị trường Crypto biến động mạnh",
		Description: "Giá Bitcoin và các đồng tiền số khác dao động mạnh, tác động đến thị trường tài chính toàn cầu và Việt Nam",
		Category:    "Crypto",
		Score:       96,
		Source:      "Google Trends",
	},
	{
		Title:       "VN-Index và thị trường chứng khoán Việt Nam",
		Description: "Diễn biến thị trường chứng khoán, các cổ phiếu hot và xu hướng đầu tư của nhà đầu tư cá nhân",
		Category:    "Chứng khoán",
		Score:       89,
		Source:      "Google Trends",
	},
	{
		Title:       "Euro 2024 và World Cup 2026 - Bóng đá châu Âu",
		Description: "Các trận đấu nổi bật, đội tuyển Việt Nam và sự phát triển bóng đá trong nước",
		Category:    "Thể thao",
		Score:       94,
		Source:      "Google Trends",
	},
}

var baomoiTopics = []Topic{
	{
		Title:       "Cải cách giáo dục và chương trình mới 2024",
		Description: "Những thay đổi trong chương trình giáo dục phổ thông và đại học, tác động đến học sinh và phụ huynh",
		Category:    "Giáo dục",
		Score:       87,
		Source:      "BaoMoi.com",
	},
	{
		Title:       "Y tế công và bảo hiểm xã hội",
		Description: "Cải cách hệ thống y tế, chi phí khám chữa bệnh và quyền lợi của người dân",
		Category:    "Sức khỏe",
		Score:       85,
		Source:      "BaoMoi.com",
	},
	{
		Title:       "Du lịch nội địa và phục hồi sau Covid",
		Description: "Sự phục hồi của ngành du lịch Việt Nam và xu hướng du lịch nội địa của người dân",
		Category:    "Du lịch",
		Score:       78,
		Source:      "BaoMoi.com",
	},
}

var socialTopics = []Topic{
	{
		Title:       "TikTok và văn hóa Gen Z Việt Nam",
		Description: "Ảnh hưởng của TikTok đến giới trẻ, xu hướng viral và những thách thức của phụ huynh",
		Category:    "Văn hóa",
		Score:       92,
		Source:      "Social Media",
	},
	{
		Title:       "Livestream bán hàng và thương mại điện tử",
		Description: "Xu hướng bán hàng qua livestream, influencer marketing và thay đổi thói quen mua sắm",
		Category:    "Kinh tế",
		Score:       90,
		Source:      "Social Media",
	},
	{
		Title:       "Mental health và áp lực xã hội của giới trẻ",
		Description: "Vấn đề sức khỏe tinh thần, stress học tập và công việc trong thời đại số",
		Category:    "Sức khỏe",
		Score:       86,
		Source:      "Social Media",
	},
}

// newsTopics stands in for the RSS source when no feed yields a scored item.
var newsTopics = []Topic{
	{
		Title:       "Chính sách kinh tế và hỗ trợ doanh nghiệp SME",
		Description: "Các gói hỗ trợ từ chính phủ cho doanh nghiệp nhỏ và vừa, khởi nghiệp trong bối cảnh phục hồi kinh tế",
		Category:    "Kinh tế",
		Score:       88,
		Source:      "Vietnamese News",
	},
	{
		Title:       "Giao thông đô thị và quy hoạch thành phố thông minh",
		Description: "Các dự án giao thông, quy hoạch đô thị và giải pháp cho tắc nghẽn tại các thành phố lớn",
		Category:    "Xã hội",
		Score:       83,
		Source:      "Vietnamese News",
	},
	{
		Title:       "Năng lượng tái tạo và phát triển bền vững",
		Description: "Các dự án năng lượng mặt trời, gió và cam kết Net Zero của Việt Nam đến 2050",
		Category:    "Xã hội",
		Score:       81,
		Source:      "Vietnamese News",
	},
}

var fallbackTopics = []Topic{
	{
		Title:       "Bitcoin tăng giá mạnh, nhà đầu tư Việt gấp rút mua vào",
		Description: "Giá Bitcoin vượt mốc $70,000, nhiều nhà đầu tư Việt Nam quan tâm đến thị trường crypto",
		Category:    "Crypto",
		Score:       95,
		Source:      sourceFallback,
	},
	{
		Title:       "VN-Index biến động, cổ phiếu ngân hàng dẫn dắt thị trường",
		Description: "Thị trường chứng khoán Việt Nam có những phiên giao dịch sôi động với thanh khoản cao",
		Category:    "Chứng khoán",
		Score:       92,
		Source:      sourceFallback,
	},
	{
		Title:       "Đội tuyển bóng đá Việt Nam chuẩn bị cho vòng loại World Cup",
		Description: "HLV Troussier công bố danh sách, người hâm mộ kỳ vọng thành tích tốt",
		Category:    "Thể thao",
		Score:       90,
		Source:      sourceFallback,
	},
	{
		Title:       "Cải cách giáo dục: Chương trình mới có gì khác biệt?",
		Description: "Bộ Giáo dục công bố những thay đổi lớn trong chương trình giáo dục phổ thông",
		Category:    "Giáo dục",
		Score:       88,
		Source:      sourceFallback,
	},
	{
		Title:       "Trí tuệ nhân tạo thay đổi thị trường lao động Việt Nam",
		Description: "AI tác động mạnh đến việc làm, nhiều nghề nghiệp cần kỹ năng mới",
		Category:    "Công nghệ",
		Score:       87,
		Source:      sourceFallback,
	},
	{
		Title:       "Y tế công: Bệnh viện quá tải, cần giải pháp cấp bách",
		Description: "Hệ thống y tế công đối mặt nhiều thách thức, đặc biệt tại các thành phố lớn",
		Category:    "Sức khỏe",
		Score:       85,
		Source:      sourceFallback,
	},
	{
		Title:       "Kinh tế số và cơ hội cho doanh nghiệp SME",
		Description: "Chuyển đổi số mở ra nhiều cơ hội mới cho doanh nghiệp nhỏ và vừa",
		Category:    "Kinh tế",
		Score:       83,
		Source:      sourceFallback,
	},
	{
		Title:       "Du lịch Việt Nam: Hồi phục sau đại dịch",
		Description: "Ngành du lịch đang từng bước phục hồi với nhiều chính sách hỗ trợ",
		Category:    "Du lịch",
		Score:       80,
		Source:      sourceFallback,
	},
	{
		Title:       "Giao thông đô thị: Tắc nghẽn và giải pháp bền vững",
		Description: "Các thành phố lớn đang tìm giải pháp cho vấn đề kẹt xe ngày càng nghiêm trọng",
		Category:    "Xã hội",
		Score:       78,
		Source:      sourceFallback,
	},
	{
		Title:       "TikTok và xu hướng văn hóa mới của giới trẻ",
		Description: "Mạng xã hội TikTok tạo ra những xu hướng văn hóa mới, ảnh hưởng mạnh đến GenZ",
		Category:    "Văn hóa",
		Score:       75,
		Source:      sourceFallback,
	},
}

// copyTopics keeps the package tables immutable.
func copyTopics(src []Topic) []Topic {
	return append([]Topic(nil), src...)
}
