package textnorm

import (
	"strings"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain ascii", input: "Hello World", want: "hello world"},
		{name: "terminal punctuation", input: "Xin chào!?", want: "xin chao"},
		{name: "vietnamese tones", input: "Tìm sách về trí tuệ nhân tạo", want: "tim sach ve tri tue nhan tao"},
		{name: "d with stroke", input: "đọc sách đi", want: "doc sach di"},
		{name: "inner punctuation kept", input: "sach hay? hay khong?", want: "sach hay? hay khong"},
		{name: "whitespace trimmed", input: "  sách  ", want: "sach"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.input); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFoldIdempotent(t *testing.T) {
	inputs := []string{
		"Tìm sách về Máy Tính?",
		"bao nhiêu cuốn sách",
		"thư viện mở cửa lúc mấy giờ!",
		"already folded text",
	}
	for _, in := range inputs {
		once := Fold(in)
		twice := Fold(once)
		if once != twice {
			t.Errorf("Fold not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestFoldPreservesTokenCount(t *testing.T) {
	inputs := []string{
		"tìm sách về trí tuệ nhân tạo",
		"sách của Nguyễn Nhật Ánh",
		"quyển thứ hai thì sao",
	}
	for _, in := range inputs {
		before := len(strings.Fields(in))
		after := len(strings.Fields(Fold(in)))
		if before != after {
			t.Errorf("Fold(%q) changed token count from %d to %d", in, before, after)
		}
	}
}

func TestHasAlphanumeric(t *testing.T) {
	if HasAlphanumeric("?!...") {
		t.Error("punctuation-only string should not count as alphanumeric")
	}
	if !HasAlphanumeric("a?") {
		t.Error("string with a letter should count as alphanumeric")
	}
	if !HasAlphanumeric("2024") {
		t.Error("digits should count as alphanumeric")
	}
}
