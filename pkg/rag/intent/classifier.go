package intent

import (
	"strings"
	"unicode/utf8"

	"ai-library-be/pkg/textnorm"
)

const defaultMinQueryLength = 2

// Classifier routes an utterance to an Intent. It is stateless apart from
// its configuration and safe for concurrent use.
type Classifier struct {
	minQueryLength int

	// isCategoryTerm reports whether a folded span is a known category
	// keyword; used to keep category searches out of TITLE_SEARCH.
	isCategoryTerm func(string) bool
}

func NewClassifier(isCategoryTerm func(string) bool) *Classifier {
	if isCategoryTerm == nil {
		isCategoryTerm = func(string) bool { return false }
	}
	return &Classifier{
		minQueryLength: defaultMinQueryLength,
		isCategoryTerm: isCategoryTerm,
	}
}

// Classify inspects the utterance and the presence of previous search
// results. First match wins, in this order: GARBAGE, STATS, SMALLTALK,
// LIBRARY_INFO, TITLE_SEARCH, FOLLOWUP, SEARCH.
func (c *Classifier) Classify(utterance string, hasLastResults bool) Intent {
	q := strings.ToLower(strings.TrimSpace(utterance))
	folded := textnorm.Fold(utterance)

	if utf8.RuneCountInString(q) < c.minQueryLength || !textnorm.HasAlphanumeric(folded) {
		return Garbage
	}

	if matchesAny(folded, statsKeywords) {
		return Stats
	}

	// An utterance that is exactly a smalltalk phrase skips the vocabulary
	// guard: "ban la ai" must not be vetoed by its "ai" subject token.
	if isSmalltalkPhrase(folded) {
		return Smalltalk
	}

	// Smalltalk is rejected when the utterance also carries catalog
	// vocabulary: "help me find a book" is a search, not a greeting.
	if matchesAny(folded, smalltalkKeywords) && !ContainsBookVocabulary(utterance) {
		return Smalltalk
	}

	if matchesAny(folded, libraryInfoKeywords) {
		return LibraryInfo
	}

	if _, ok := c.titleCapture(folded); ok {
		return TitleSearch
	}

	if hasLastResults {
		if matchesAny(folded, followupKeywords) || followupOrdinalRe.MatchString(folded) {
			return Followup
		}
	}

	return Search
}

// ContainsBookVocabulary reports whether the utterance mentions books,
// searching, or a known subject area.
func ContainsBookVocabulary(utterance string) bool {
	return matchesAny(textnorm.Fold(utterance), bookKeywords)
}

func isSmalltalkPhrase(folded string) bool {
	for _, k := range smalltalkKeywords {
		if folded == k {
			return true
		}
	}
	return false
}

// titleCapture extracts an explicit title span, rejecting captures that
// are really category signals.
func (c *Classifier) titleCapture(folded string) (string, bool) {
	for _, re := range titleSearchRes {
		m := re.FindStringSubmatch(folded)
		if m == nil {
			continue
		}
		span := strings.TrimSpace(m[1])
		if span == "" {
			continue
		}
		if strings.HasPrefix(span, "ve ") || strings.HasPrefix(span, "about ") {
			continue
		}
		if c.isCategoryTerm(span) {
			continue
		}
		return span, true
	}
	return "", false
}

// matchesAny applies the table convention: single words must match a
// whole token, phrases match by substring. Keeps "hi" from matching
// inside "chi tiet".
func matchesAny(folded string, keywords []string) bool {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(folded) {
		words[w] = struct{}{}
	}
	for _, k := range keywords {
		if strings.Contains(k, " ") {
			if strings.Contains(folded, k) {
				return true
			}
			continue
		}
		if _, ok := words[k]; ok {
			return true
		}
	}
	return false
}
