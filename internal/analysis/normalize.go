package analysis

import (
	"regexp"
	"strings"
)

var (
	multiSpaceRe = regexp.MustCompile(`\s+`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
)

// Normalize lowercases text and collapses all whitespace runs to single
// spaces. Non-ASCII characters pass through unchanged. The original text is
// never mutated; callers keep the raw string for extractors that need it
// (bullet detection depends on the original line structure).
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Truncate bounds text to max bytes. A non-positive max leaves the text
// uncapped. Byte truncation is deliberate: it matches the reference
// behavior and the cap exists to bound downstream cost, not to respect
// character boundaries.
func Truncate(text string, max int) string {
	if max > 0 && len(text) > max {
		return text[:max]
	}
	return text
}

// Clean produces the matcher-style normalization: lowercase, strip
// non-alphanumerics, collapse whitespace, and drop stopword tokens.
func Clean(text string, stopwords []string) string {
	stop := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stop[w] = struct{}{}
	}

	text = strings.ToLower(text)
	text = nonAlnumRe.ReplaceAllString(text, " ")

	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if _, ok := stop[w]; !ok {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
