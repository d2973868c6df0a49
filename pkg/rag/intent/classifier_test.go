package intent

import (
	"testing"
)

func testCategoryTerm(span string) bool {
	known := map[string]bool{
		"toan":     true,
		"may tinh": true,
		"python":   true,
	}
	return known[span]
}

func TestClassify(t *testing.T) {
	c := NewClassifier(testCategoryTerm)

	tests := []struct {
		name       string
		utterance  string
		hasResults bool
		want       Intent
	}{
		{name: "empty", utterance: "", want: Garbage},
		{name: "single char", utterance: "a", want: Garbage},
		{name: "punctuation only", utterance: "?!...", want: Garbage},
		{name: "whitespace", utterance: "   ", want: Garbage},

		{name: "stats with diacritics", utterance: "thư viện có bao nhiêu cuốn sách?", want: Stats},
		{name: "stats without diacritics", utterance: "tong so sach trong thu vien", want: Stats},

		{name: "greeting", utterance: "xin chào", want: Smalltalk},
		{name: "greeting ascii", utterance: "hello", want: Smalltalk},
		{name: "thanks", utterance: "cảm ơn bạn nhé", want: Smalltalk},
		{name: "identity", utterance: "bạn là ai?", want: Smalltalk},
		{name: "identity english", utterance: "who are you", want: Smalltalk},
		{name: "help alone", utterance: "help", want: Smalltalk},

		{name: "smalltalk guard english", utterance: "help me find a book on Python", want: Search},
		{name: "greeting plus search is search", utterance: "chào bạn, tìm sách python giúp mình", want: Search},
		{name: "smalltalk guard vietnamese", utterance: "giúp tôi tìm sách về lập trình", want: Search},
		{name: "hi inside word not smalltalk", utterance: "chi tiết về máy học", hasResults: true, want: Followup},

		{name: "opening hours", utterance: "thư viện mở cửa lúc mấy giờ", want: LibraryInfo},
		{name: "rules", utterance: "nội quy thư viện là gì", want: LibraryInfo},
		{name: "borrow duration", utterance: "mượn bao lâu thì phải trả", want: LibraryInfo},
		{name: "renew", utterance: "làm sao để gia hạn sách", want: LibraryInfo},
		{name: "late fee", utterance: "phí phạt trả trễ bao nhiêu", want: LibraryInfo},

		{name: "title search vietnamese", utterance: "tìm cuốn sách tên là Đắc Nhân Tâm", want: TitleSearch},
		{name: "title search english", utterance: "find the book called Sapiens", want: TitleSearch},
		{name: "title capture is category", utterance: "tìm sách tên là Python", want: Search},
		{name: "title capture starts with about", utterance: "find the book called about history", want: Search},

		{name: "followup ordinal word", utterance: "cuốn thứ hai thì sao", hasResults: true, want: Followup},
		{name: "followup ordinal digit", utterance: "cuốn 2 nói về gì", hasResults: true, want: Followup},
		{name: "followup best of", utterance: "cuốn nào hay nhất", hasResults: true, want: Followup},
		{name: "followup without results is search", utterance: "cuốn nào hay nhất", hasResults: false, want: Search},

		{name: "plain search", utterance: "sách về trí tuệ nhân tạo", want: Search},
		{name: "search beats followup wording", utterance: "tìm sách python cho người mới", hasResults: true, want: Search},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.utterance, tt.hasResults)
			if got != tt.want {
				t.Errorf("Classify(%q, hasResults=%v) = %s, want %s", tt.utterance, tt.hasResults, got, tt.want)
			}
		})
	}
}

func TestStatsBeatsSmalltalk(t *testing.T) {
	c := NewClassifier(testCategoryTerm)
	// "chao" could look like smalltalk, the stats phrasing must win.
	got := c.Classify("chào bạn, thư viện có bao nhiêu cuốn sách", false)
	if got != Stats {
		t.Errorf("got %s, want STATS: stats is checked before smalltalk", got)
	}
}

func TestContainsBookVocabulary(t *testing.T) {
	tests := []struct {
		utterance string
		want      bool
	}{
		{"xin chào", false},
		{"cảm ơn nhé", false},
		{"tìm sách về python", true},
		{"recommend a novel", true},
		{"gợi ý giúp mình", true},
	}
	for _, tt := range tests {
		if got := ContainsBookVocabulary(tt.utterance); got != tt.want {
			t.Errorf("ContainsBookVocabulary(%q) = %v, want %v", tt.utterance, got, tt.want)
		}
	}
}
