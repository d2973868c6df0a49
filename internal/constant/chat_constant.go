package constant

// Search defaults.
const (
	DefaultTopK          = 5
	ScoreThreshold       = 0.80
	QueryCacheThreshold  = 0.95
	SearchExpandFactor   = 2
	Temperature          = 0.2
	MaxOutputTokens      = 512
	SmalltalkTemperature = 0.7
	SmalltalkMaxTokens   = 150
	HistoryMaxTurns      = 8
)

// Canned answers. The boundary always returns an answer; these cover the
// paths that must not depend on the language model being reachable.
const (
	AnswerGarbage      = "Câu hỏi không hợp lệ hoặc quá ngắn."
	AnswerServiceBusy  = "Hệ thống đang bận hoặc gặp sự cố kết nối."
	AnswerCriticalFail = "Xin lỗi, hệ thống đang gặp sự cố kỹ thuật. Vui lòng thử lại sau."
	AnswerNoReply      = "Xin lỗi, không có phản hồi."

	AnswerGreeting  = "Xin chào! Tôi là trợ lý thư viện AI. Tôi có thể giúp bạn tìm sách, tra cứu thông tin thư viện. Bạn cần gì nào?"
	AnswerThanks    = "Không có gì! Nếu bạn cần gì thêm, cứ hỏi nhé!"
	AnswerGoodbye   = "Tạm biệt! Hẹn gặp lại bạn!"
	AnswerWhoAmI    = "Tôi là Trợ lý AI của Thư viện. Tôi có thể giúp bạn tìm sách, tra cứu giờ mở cửa, nội quy và các thông tin khác về thư viện."
	AnswerHowAreYou = "Tôi vẫn khỏe! Cảm ơn bạn đã hỏi. Bạn cần tìm sách gì hôm nay?"
	AnswerHelp      = "Tôi có thể giúp bạn: Tìm sách theo chủ đề, tác giả hoặc thể loại; Tra cứu giờ mở cửa thư viện; Xem nội quy và quy định mượn sách. Bạn muốn làm gì?"
	AnswerOk        = "Vâng! Nếu bạn cần gì thêm, cứ hỏi nhé!"

	AnswerSmalltalkFallback   = "Xin chào! Tôi là trợ lý thư viện AI. Tôi có thể giúp gì cho bạn?"
	AnswerFollowupWhichOne    = "Bạn muốn hỏi về cuốn sách số mấy? (Ví dụ: 'cuốn số 1', 'quyển đầu tiên')"
	AnswerLibraryInfoFallback = "Thư viện mở cửa: %s. Nếu cần thông tin cụ thể, vui lòng hỏi lại."
)

// SuggestedQuestions feeds the chat UI's empty state.
var SuggestedQuestions = []string{
	"Thư viện mở cửa lúc mấy giờ?",
	"Làm sao để gia hạn sách?",
	"Có sách nào về trí tuệ nhân tạo không?",
	"Phí phạt trả sách trễ là bao nhiêu?",
}
