package filter

import (
	"sort"
	"strings"

	"ai-library-be/pkg/textnorm"
)

// categorySynonyms maps folded casual forms (English and toneless
// Vietnamese) to the canonical catalog category names. The canonical
// names keep their diacritics because the vector store predicate is an
// exact match.
var categorySynonyms = map[string]string{
	// Công nghệ thông tin
	"technology":             "Công nghệ thông tin",
	"information technology": "Công nghệ thông tin",
	"it":                     "Công nghệ thông tin",
	"cong nghe thong tin":    "Công nghệ thông tin",
	"cong nghe":              "Công nghệ thông tin",
	"security":               "Công nghệ thông tin",
	"cybersecurity":          "Công nghệ thông tin",
	"information security":   "Công nghệ thông tin",
	"an toan thong tin":      "Công nghệ thông tin",
	"bao mat":                "Công nghệ thông tin",

	// Máy tính
	"computer science":   "Máy tính",
	"computers":          "Máy tính",
	"may tinh":           "Máy tính",
	"khoa hoc may tinh":  "Máy tính",
	"programming":        "Máy tính",
	"software":           "Máy tính",
	"coding":             "Máy tính",
	"lap trinh":          "Máy tính",
	"phan mem":           "Máy tính",
	"network":            "Máy tính",
	"networking":         "Máy tính",
	"mang may tinh":      "Máy tính",

	// Trí tuệ và Dữ liệu
	"artificial intelligence": "Trí tuệ và Dữ liệu",
	"ai":                      "Trí tuệ và Dữ liệu",
	"machine learning":        "Trí tuệ và Dữ liệu",
	"deep learning":           "Trí tuệ và Dữ liệu",
	"data science":            "Trí tuệ và Dữ liệu",
	"big data":                "Trí tuệ và Dữ liệu",
	"data analysis":           "Trí tuệ và Dữ liệu",
	"tri tue va du lieu":      "Trí tuệ và Dữ liệu",
	"tri tue nhan tao":        "Trí tuệ và Dữ liệu",
	"hoc may":                 "Trí tuệ và Dữ liệu",
	"khoa hoc du lieu":        "Trí tuệ và Dữ liệu",
	"du lieu":                 "Trí tuệ và Dữ liệu",

	// Kỹ thuật
	"engineering": "Kỹ thuật",
	"ky thuat":    "Kỹ thuật",

	// Toán
	"mathematics": "Toán",
	"math":        "Toán",
	"toan":        "Toán",
	"toan hoc":    "Toán",

	// Vật lý
	"physics": "Vật lý",
	"vat ly":  "Vật lý",
	"vat li":  "Vật lý",

	// Hóa học
	"chemistry": "Hóa học",
	"hoa hoc":   "Hóa học",

	// Sinh học
	"biology":       "Sinh học",
	"life sciences": "Sinh học",
	"sinh hoc":      "Sinh học",
	"sinh vat":      "Sinh học",

	// Môi trường
	"environment":   "Môi trường",
	"environmental": "Môi trường",
	"moi truong":    "Môi trường",

	// Kinh tế
	"economics": "Kinh tế",
	"kinh te":   "Kinh tế",

	// Kinh doanh
	"business":            "Kinh doanh",
	"management":          "Kinh doanh",
	"entrepreneurship":    "Kinh doanh",
	"kinh doanh":          "Kinh doanh",
	"quan tri":            "Kinh doanh",
	"quan tri kinh doanh": "Kinh doanh",

	// Tài chính
	"finance":              "Tài chính",
	"banking":              "Tài chính",
	"accounting":           "Tài chính",
	"tai chinh":            "Tài chính",
	"ngan hang":            "Tài chính",
	"tai chinh - ngan hang": "Tài chính",
	"ke toan":              "Tài chính",

	// Marketing
	"marketing": "Marketing",

	// Khởi nghiệp
	"startup":     "Khởi nghiệp",
	"khoi nghiep": "Khởi nghiệp",

	// Tâm lý
	"psychology":    "Tâm lý",
	"mental health": "Tâm lý",
	"tam ly":        "Tâm lý",
	"tam ly hoc":    "Tâm lý",

	// Xã hội
	"social":     "Xã hội",
	"society":    "Xã hội",
	"sociology":  "Xã hội",
	"xa hoi":     "Xã hội",
	"xa hoi hoc": "Xã hội",

	// Lịch sử
	"history":    "Lịch sử",
	"historical": "Lịch sử",
	"lich su":    "Lịch sử",

	// Giáo dục
	"education": "Giáo dục",
	"giao duc":  "Giáo dục",

	// Ngoại ngữ
	"language":         "Ngoại ngữ",
	"foreign language": "Ngoại ngữ",
	"english":          "Ngoại ngữ",
	"linguistics":      "Ngoại ngữ",
	"ngoai ngu":        "Ngoại ngữ",
	"tieng anh":        "Ngoại ngữ",
	"ngon ngu hoc":     "Ngoại ngữ",

	// Kỹ năng
	"self-help":            "Kỹ năng",
	"self-improvement":     "Kỹ năng",
	"personal development": "Kỹ năng",
	"leadership":           "Kỹ năng",
	"communication":        "Kỹ năng",
	"skills":               "Kỹ năng",
	"ky nang":              "Kỹ năng",
	"ky nang mem":          "Kỹ năng",
	"phat trien ban than":  "Kỹ năng",
	"lanh dao":             "Kỹ năng",
	"giao tiep":            "Kỹ năng",

	// Văn học
	"literature":  "Văn học",
	"fiction":     "Văn học",
	"novel":       "Văn học",
	"poetry":      "Văn học",
	"drama":       "Văn học",
	"van hoc":     "Văn học",
	"tieu thuyet": "Văn học",
	"tho":         "Văn học",
	"kich":        "Văn học",

	// Khác
	"general": "Khác",
	"khac":    "Khác",
}

// synonymKeysByLength holds the synonym keys longest-first so that
// "khoa hoc may tinh" wins over "may tinh".
var synonymKeysByLength = func() []string {
	keys := make([]string, 0, len(categorySynonyms))
	for k := range categorySynonyms {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// CanonicalCategory resolves a term to its canonical catalog category.
func CanonicalCategory(term string) (string, bool) {
	c, ok := categorySynonyms[textnorm.Fold(term)]
	return c, ok
}

// IsCategoryTerm reports whether the folded span names a known category,
// either as a synonym or as a canonical name.
func IsCategoryTerm(span string) bool {
	folded := textnorm.Fold(span)
	if _, ok := categorySynonyms[folded]; ok {
		return true
	}
	for _, canonical := range categorySynonyms {
		if textnorm.Fold(canonical) == folded {
			return true
		}
	}
	return false
}

// matchCategorySynonym finds the longest synonym appearing as a whole
// phrase inside the folded query. Whole-token matching keeps short keys
// like "it" and "ai" from firing inside unrelated words.
func matchCategorySynonym(foldedQuery string) (string, bool) {
	for _, key := range synonymKeysByLength {
		if containsPhrase(foldedQuery, key) {
			return categorySynonyms[key], true
		}
	}
	return "", false
}

func containsPhrase(haystack, phrase string) bool {
	return strings.Contains(" "+haystack+" ", " "+phrase+" ")
}
