package filter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"ai-library-be/pkg/store"
	"ai-library-be/pkg/textnorm"
)

// Extractor parses free text into a structured FilterSet, validated
// against the current catalog facets. It is a best-effort classifier:
// unvalidated captures are dropped, never passed through.
type Extractor struct {
	now func() time.Time
}

func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

var (
	yearRe = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)

	titleRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:sach|cuon|quyen|truyen)\s+(?:co\s+)?(?:ten|tua de|tua|tieu de)\s+(?:la\s+)?["']?([^"',]+)`),
		regexp.MustCompile(`book\s+(?:called|titled|named)\s+["']?([^"',]+)`),
	}

	authorRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:cua tac gia|tac gia la|viet boi|sang tac boi|written by)\s+(.+)`),
		regexp.MustCompile(`(?:cua|boi|by)\s+(.+)`),
	}

	categoryAttrRe = regexp.MustCompile(`(?:ve|chu de|the loai|linh vuc|about)\s+(.+)`)

	// Trailing span parts that belong to another filter, not the title.
	titleCutRe = regexp.MustCompile(`\s+(?:cua|boi|by|written by|nam|xuat ban)\s+.*$`)

	trailingFiller = []string{"khong", "ko", "nhe", "nha", "a", "vay", "di", "the"}
)

// Extract resolves filters from the query in priority order: year,
// title, author, category. A field not present in the query is left
// empty; at most one value per field.
func (e *Extractor) Extract(query string, facets *store.Facets) store.FilterSet {
	if facets == nil {
		facets = &store.Facets{}
	}
	folded := textnorm.Fold(query)

	var fs store.FilterSet
	fs.PublishYear = e.extractYear(folded, facets.Years)
	fs.Title = extractTitle(folded)
	fs.Authors = extractAuthor(folded, facets.Authors)
	fs.Category = extractCategory(folded, facets.Categories)
	return fs
}

// extractYear accepts a 4-digit token when it is a known catalog year or
// at least a plausible calendar year.
func (e *Extractor) extractYear(folded string, knownYears []string) string {
	for _, m := range yearRe.FindAllString(folded, -1) {
		for _, y := range knownYears {
			if y == m {
				return m
			}
		}
		n, err := strconv.Atoi(m)
		if err == nil && n >= 1900 && n <= e.now().Year()+1 {
			return m
		}
	}
	return ""
}

// extractTitle only fires on an explicit "named/titled" construction.
// Captures that are really category signals are rejected: without this
// rule most category searches would be mis-captured as title filters and
// match nothing.
func extractTitle(folded string) string {
	for _, re := range titleRes {
		m := re.FindStringSubmatch(folded)
		if m == nil {
			continue
		}
		span := strings.TrimSpace(titleCutRe.ReplaceAllString(m[1], ""))
		span = trimFiller(span)
		if span == "" {
			continue
		}
		if strings.HasPrefix(span, "ve ") || strings.HasPrefix(span, "about ") {
			continue
		}
		if IsCategoryTerm(span) {
			continue
		}
		if _, hit := matchCategorySynonym(span); hit {
			continue
		}
		return span
	}
	return ""
}

// extractAuthor captures after attribution markers and keeps the capture
// only when it fuzzily matches a known author facet. The canonical facet
// value is returned, not the raw capture.
func extractAuthor(folded string, knownAuthors []string) string {
	for _, re := range authorRes {
		m := re.FindStringSubmatch(folded)
		if m == nil {
			continue
		}
		span := trimFiller(strings.TrimSpace(m[1]))
		if len(span) < 3 {
			continue
		}
		for _, author := range knownAuthors {
			fa := textnorm.Fold(author)
			if fa == "" {
				continue
			}
			if strings.Contains(span, fa) || strings.Contains(fa, span) {
				return author
			}
		}
	}
	return ""
}

// extractCategory tries the synonym table first, then the live facet
// list, then the attribution construction validated against both.
func extractCategory(folded string, knownCategories []string) string {
	if c, ok := matchCategorySynonym(folded); ok {
		return c
	}

	for _, cat := range knownCategories {
		fc := textnorm.Fold(cat)
		if fc == "" {
			continue
		}
		if containsPhrase(folded, fc) || containsPhrase(fc, folded) {
			return cat
		}
	}

	if m := categoryAttrRe.FindStringSubmatch(folded); m != nil {
		span := trimFiller(strings.TrimSpace(m[1]))
		if c, ok := matchCategorySynonym(span); ok {
			return c
		}
		for _, cat := range knownCategories {
			fc := textnorm.Fold(cat)
			if fc != "" && (strings.Contains(span, fc) || strings.Contains(fc, span)) {
				return cat
			}
		}
	}
	return ""
}

func trimFiller(span string) string {
	words := strings.Fields(span)
	for len(words) > 0 {
		last := words[len(words)-1]
		drop := false
		for _, f := range trailingFiller {
			if last == f {
				drop = true
				break
			}
		}
		if !drop {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}
