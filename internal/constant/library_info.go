package constant

// Static library facts. These answer LIBRARY_INFO questions directly and
// are also injected into prompts so the model never invents policy.
const OpeningHours = "Thứ 2 – Thứ 6: 08:00 – 17:00"

var LibraryRules = []string{
	"Thư viện chỉ mở cửa từ Thứ 2 đến Thứ 6, khung giờ 08:00 – 17:00",
	"Giữ trật tự trong khu vực thư viện",
	"Không ăn uống trong phòng đọc",
	"Không viết, vẽ hoặc làm hư hỏng sách",
	"Giữ gìn tài sản chung của thư viện",
}

type BorrowPolicy struct {
	Fee      string
	Duration string
	Renew    string
}

type PenaltyPolicy struct {
	LateReturn  string
	AccountLock string
	LostBook    string
}

var Borrow = BorrowPolicy{
	Fee:      "Mượn sách hoàn toàn miễn phí",
	Duration: "Thời hạn mượn tối đa 10 ngày",
	Renew:    "Có thể gia hạn nếu sách chưa có người đặt trước",
}

var Penalty = PenaltyPolicy{
	LateReturn:  "Trả sách trễ sẽ bị phạt theo số ngày trễ",
	AccountLock: "Vi phạm nhiều lần sẽ bị khóa tài khoản tạm thời",
	LostBook:    "Làm mất hoặc hư hỏng sách phải bồi thường",
}
