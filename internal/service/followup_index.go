package service

import (
	"regexp"
	"strconv"
)

// Ordinal words after diacritic folding. "nhat" and "dau tien" both mean
// the first item; "cuoi cung" resolves against the list length at parse time.
var followupTextNums = map[string]int{
	"mot": 1, "hai": 2, "ba": 3, "bon": 4, "nam": 5,
	"nhat": 1, "nhi": 2, "dau tien": 1,
}

var (
	followupTextRe  = regexp.MustCompile(`(thu|so|cuon|quyen)\s*(mot|hai|ba|bon|nam|nhat|nhi|dau tien|cuoi cung)`)
	followupDigitRe = regexp.MustCompile(`(?:thu|so|cuon|quyen|^)\s*(\d+)`)
)

// parseFollowupIndex resolves "cuốn số 2", "quyển đầu tiên" and similar
// references to a zero-based index into the last result list. The input
// must already be folded.
func parseFollowupIndex(folded string, resultCount int) (int, bool) {
	idx := -1

	if m := followupTextRe.FindStringSubmatch(folded); m != nil {
		if m[2] == "cuoi cung" {
			idx = resultCount - 1
		} else {
			idx = followupTextNums[m[2]] - 1
		}
	} else if m := followupDigitRe.FindStringSubmatch(folded); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		idx = n - 1
	}

	if idx < 0 || idx >= resultCount {
		return 0, false
	}
	return idx, true
}
