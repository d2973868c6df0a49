package filter

import (
	"testing"
	"time"

	"ai-library-be/pkg/store"
)

func testFacets() *store.Facets {
	return &store.Facets{
		Categories: []string{"Máy tính", "Toán", "Trí tuệ và Dữ liệu", "Văn học"},
		Authors:    []string{"Mark Lutz", "Nguyễn Nhật Ánh", "Robert C. Martin"},
		Years:      []string{"2023", "2020", "2015"},
	}
}

func fixedExtractor() *Extractor {
	e := NewExtractor()
	e.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return e
}

func TestExtract(t *testing.T) {
	e := fixedExtractor()
	facets := testFacets()

	tests := []struct {
		name  string
		query string
		want  store.FilterSet
	}{
		{
			name:  "no filters",
			query: "sách python cho người mới",
			want:  store.FilterSet{},
		},
		{
			name:  "known year",
			query: "sách xuất bản năm 2020",
			want:  store.FilterSet{PublishYear: "2020"},
		},
		{
			name:  "plausible unknown year",
			query: "sách in năm 2019",
			want:  store.FilterSet{PublishYear: "2019"},
		},
		{
			name:  "implausible year ignored",
			query: "sách về năm 1750",
			want:  store.FilterSet{},
		},
		{
			name:  "explicit title",
			query: "tìm cuốn sách tên là đắc nhân tâm",
			want:  store.FilterSet{Title: "dac nhan tam"},
		},
		{
			name:  "title capture that is a category is rejected",
			query: "tìm sách tên là toán",
			want:  store.FilterSet{Category: "Toán"},
		},
		{
			name:  "about-span is category not title",
			query: "find the book called about machine learning",
			want:  store.FilterSet{Category: "Trí tuệ và Dữ liệu"},
		},
		{
			name:  "author validated against facets",
			query: "sách của tác giả nguyễn nhật ánh",
			want:  store.FilterSet{Authors: "Nguyễn Nhật Ánh"},
		},
		{
			name:  "author with trailing filler",
			query: "có sách của mark lutz không",
			want:  store.FilterSet{Authors: "Mark Lutz"},
		},
		{
			name:  "unknown author discarded",
			query: "sách của ông hàng xóm",
			want:  store.FilterSet{},
		},
		{
			name:  "category via synonym",
			query: "sách lập trình hay",
			want:  store.FilterSet{Category: "Máy tính"},
		},
		{
			name:  "category via english synonym",
			query: "books on deep learning",
			want:  store.FilterSet{Category: "Trí tuệ và Dữ liệu"},
		},
		{
			name:  "category via facet containment",
			query: "sách văn học việt nam",
			want:  store.FilterSet{Category: "Văn học"},
		},
		{
			name:  "short synonym needs word boundary",
			query: "sach noi ve trai tim", // "ai" inside "trai" must not fire
			want:  store.FilterSet{},
		},
		{
			name:  "title and author combined",
			query: "cuốn sách tên là clean code của robert c. martin",
			want:  store.FilterSet{Title: "clean code", Authors: "Robert C. Martin"},
		},
		{
			name:  "year and category combined",
			query: "sách lập trình năm 2023",
			want:  store.FilterSet{Category: "Máy tính", PublishYear: "2023"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.query, facets)
			if got != tt.want {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestExtractNilFacets(t *testing.T) {
	e := fixedExtractor()
	got := e.Extract("sách của mark lutz năm 2020", nil)
	// Authors cannot validate without facets; the plausible year still passes.
	want := store.FilterSet{PublishYear: "2020"}
	if got != want {
		t.Errorf("Extract with nil facets = %+v, want %+v", got, want)
	}
}

func TestCanonicalCategory(t *testing.T) {
	tests := []struct {
		term string
		want string
		ok   bool
	}{
		{term: "Machine Learning", want: "Trí tuệ và Dữ liệu", ok: true},
		{term: "lập trình", want: "Máy tính", ok: true},
		{term: "toan", want: "Toán", ok: true},
		{term: "nấu ăn", ok: false},
	}
	for _, tt := range tests {
		got, ok := CanonicalCategory(tt.term)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CanonicalCategory(%q) = (%q, %v), want (%q, %v)", tt.term, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsCategoryTerm(t *testing.T) {
	if !IsCategoryTerm("toán") {
		t.Error("canonical name with diacritics should be a category term")
	}
	if !IsCategoryTerm("programming") {
		t.Error("english synonym should be a category term")
	}
	if IsCategoryTerm("dac nhan tam") {
		t.Error("a book title is not a category term")
	}
}
