package intent

import "regexp"

// Keyword tables, all in folded (lowercase, diacritic-free) form. Users
// type Vietnamese with and without tone marks, so matching happens on the
// folded utterance. Single-word entries are matched against the word set,
// multi-word entries by substring.

var smalltalkKeywords = []string{
	// greetings
	"xin chao", "chao ban", "chao", "chao buoi sang", "chao buoi toi",
	"chao buoi trua", "chao buoi chieu",
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	// thanks
	"cam on", "cam on ban", "cam on nhieu",
	"thank", "thanks", "thank you", "tks", "ty",
	// farewells
	"tam biet", "hen gap lai", "gap lai sau", "bye bye",
	"bye", "goodbye", "see you", "see ya",
	// identity / wellbeing
	"ban la ai", "ten gi", "khoe khong", "ban on khong", "ban co khoe khong",
	"how are you", "what's up", "who are you", "what is your name",
	// short interjections
	"alo", "yo", "hii", "hiii", "helloo", "helo",
	// apologies / acknowledgements
	"xin loi", "sorry", "ok", "okay", "duoc", "duoc roi", "dc", "dk",
	// help
	"giup toi", "giup minh", "help", "help me", "ho tro",
}

var statsKeywords = []string{
	"bao nhieu cuon sach",
	"bao nhieu quyen sach",
	"bao nhieu sach",
	"tong so sach",
	"so luong sach",
	"thu vien co bao nhieu",
	"hien co bao nhieu",
}

// Library-info keywords cover rules and policies explicitly. A bare
// "muon sach" is ambiguous with a search and is left out on purpose.
var libraryInfoKeywords = []string{
	"gio mo cua", "thoi gian mo cua", "lich mo cua", "mo cua", "dong cua",
	"quy dinh", "noi quy", "luat thu vien",
	"phi phat", "tien phat",
	"cach muon", "thu tuc muon", "dieu kien muon", "luat muon", "huong dan muon",
	"cach tra", "thu tuc tra", "luat tra", "huong dan tra",
	"muon bao lau", "muon duoc may", "gia han",
}

var followupKeywords = []string{
	"cuon nay", "cuon do", "cuon thu", "sach nay", "sach do",
	"chi tiet", "no noi ve", "tac gia la ai", "gia bao nhieu",
	"trong so", "cuon nao", "cai nao", "de hoc", "tot nhat",
	"phu hop", "nen chon", "o tren", "vua roi", "trong danh sach",
	"hay nhat", "hay hon", "tot hon", "noi ve gi", "ve cai gi",
	"cua ai", "ai viet", "nam nao", "xuat ban nam", "may trang",
	"nen doc", "doc truoc", "doc sau", "cuon dau", "cuon cuoi",
}

// Book-search vocabulary. Used as a guard against smalltalk false
// positives ("help me find a book") and by the semantic cache to decide
// whether a cached catalog listing may serve the current question.
var bookKeywords = []string{
	"sach", "cuon", "quyen", "tai lieu", "giao trinh", "truyen",
	"tieu thuyet", "tac pham", "ebook", "pdf",
	"tim", "tim kiem", "goi y", "de xuat", "cho toi", "co khong",
	"python", "java", "programming", "lap trinh",
	"machine learning", "ai", "deep learning", "data science",
	"toan", "van", "lich su", "dia ly", "vat ly", "hoa hoc",
	"book", "novel", "textbook", "recommend", "find", "search",
}

var followupOrdinalRe = regexp.MustCompile(`(cuon|so|quyen)\s*\d+`)

// "book called/titled/named X" constructions, Vietnamese and English.
// Group 1 captures the candidate title span.
var titleSearchRes = []*regexp.Regexp{
	regexp.MustCompile(`(?:sach|cuon|quyen|truyen)\s+(?:co\s+)?(?:ten|tua de|tua|tieu de)\s+(?:la\s+)?["']?([^"']+)`),
	regexp.MustCompile(`book\s+(?:called|titled|named)\s+["']?([^"']+)`),
}
