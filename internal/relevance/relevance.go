// Package relevance scores and highlights records against a free-text query.
//
// Matching is literal and case-insensitive. Fields are passed most
// authoritative first; earlier fields weigh more.
package relevance

import (
	"math"
	"strings"
	"unicode"
)

// Base scores per match kind.
const (
	ExactScore    = 100
	PrefixScore   = 75
	ContainsScore = 50
)

// Highlight markup.
const (
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
	Ellipsis  = "…"

	// ContextRunes is how many runes of context surround the first match.
	ContextRunes = 30
)

// Fold lower-cases s rune by rune. The result has as many runes as s.
func Fold(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// Contains reports whether field contains query, ignoring case.
func Contains(field, query string) bool {
	return strings.Contains(Fold(field), Fold(query))
}

// Score returns the relevance of fields for query. Field i of n contributes
// its base score scaled by (n-i)/n. Empty fields contribute nothing.
func Score(query string, fields []string) int {
	q := Fold(query)
	if q == "" {
		return 0
	}
	n := float64(len(fields))
	var total float64
	for i, field := range fields {
		if field == "" {
			continue
		}
		f := Fold(field)
		var base float64
		switch {
		case f == q:
			base = ExactScore
		case strings.HasPrefix(f, q):
			base = PrefixScore
		case strings.Contains(f, q):
			base = ContainsScore
		default:
			continue
		}
		total += base * (n - float64(i)) / n
	}
	return int(math.Round(total))
}

// Highlight returns one snippet per field that contains query, in field
// order. Each snippet is a window around the first match with every
// occurrence inside the window wrapped in <mark> tags.
func Highlight(query string, fields []string) []string {
	q := []rune(Fold(query))
	if len(q) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if snippet, ok := highlightField([]rune(field), q); ok {
			out = append(out, snippet)
		}
	}
	return out
}

func highlightField(field, q []rune) (string, bool) {
	folded := foldRunes(field)
	first := indexRunes(folded, q, 0)
	if first < 0 {
		return "", false
	}

	start := max(first-ContextRunes, 0)
	end := min(first+len(q)+ContextRunes, len(field))

	var b strings.Builder
	if start > 0 {
		b.WriteString(Ellipsis)
	}
	pos := start
	for pos < end {
		at := indexRunes(folded[:end], q, pos)
		if at < 0 {
			break
		}
		b.WriteString(string(field[pos:at]))
		b.WriteString(MarkOpen)
		b.WriteString(string(field[at : at+len(q)]))
		b.WriteString(MarkClose)
		pos = at + len(q)
	}
	if pos < end {
		b.WriteString(string(field[pos:end]))
	}
	if end < len(field) {
		b.WriteString(Ellipsis)
	}
	return b.String(), true
}

func foldRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// indexRunes finds q in s at or after from, or -1.
func indexRunes(s, q []rune, from int) int {
	for i := from; i+len(q) <= len(s); i++ {
		match := true
		for j := range q {
			if s[i+j] != q[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
