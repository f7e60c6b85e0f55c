package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchType tags which field of a result the query matched.
type MatchType string

const (
	MatchID    MatchType = "id"
	MatchTitle MatchType = "title"
)

const (
	highlightOpen  = "<mark>"
	highlightClose = "</mark>"
)

// Classify tags a hit by the field the query matched, case-insensitively.
// An ID match wins when both fields match; ok is false when neither does.
func Classify(itemID, title, query string) (MatchType, bool) {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(itemID), q) {
		return MatchID, true
	}
	if strings.Contains(strings.ToLower(title), q) {
		return MatchTitle, true
	}
	return "", false
}

// Highlight wraps every case-insensitive occurrence of query in text with
// highlight markers. It only marks spans for display; the surrounding text
// is preserved byte for byte, and which results are shown never changes here.
func Highlight(text, query string) string {
	if query == "" {
		return text
	}
	q := strings.ToLower(query)

	// Lowering a rune can change its encoded length, so offsets into a
	// lowered copy of text are not valid in text itself. Scan the original
	// and lower per rune instead; every slice offset stays native to text.
	var b strings.Builder
	for i := 0; i < len(text); {
		end, ok := matchAt(text, i, q)
		if !ok {
			_, size := utf8.DecodeRuneInString(text[i:])
			b.WriteString(text[i : i+size])
			i += size
			continue
		}
		b.WriteString(highlightOpen)
		b.WriteString(text[i:end])
		b.WriteString(highlightClose)
		i = end
	}
	return b.String()
}

// matchAt reports whether the lowered query q occurs case-insensitively at
// byte offset i of text, returning the offset just past the match.
func matchAt(text string, i int, q string) (int, bool) {
	for len(q) > 0 {
		if i >= len(text) {
			return 0, false
		}
		tr, tsize := utf8.DecodeRuneInString(text[i:])
		qr, qsize := utf8.DecodeRuneInString(q)
		if unicode.ToLower(tr) != qr {
			return 0, false
		}
		i += tsize
		q = q[qsize:]
	}
	return i, true
}
