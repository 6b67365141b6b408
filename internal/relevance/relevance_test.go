package relevance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		fields []string
		want   int
	}{
		{"exact first field", "fraud", []string{"Fraud", "x"}, 100},
		{"prefix first field", "rom", []string{"Romance scam", "x"}, 75},
		{"contains first field", "scam", []string{"Romance scam", "x"}, 50},
		{"contains second of two", "scam", []string{"x", "a scam"}, 25},
		{"summed across fields", "scam", []string{"scam", "scam ring", "big scam"}, 100 + 50 + 17},
		{"no match", "arson", []string{"Romance scam"}, 0},
		{"empty fields skipped", "scam", []string{"", "scam"}, 50},
		{"empty query", "", []string{"anything"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.query, tt.fields))
		})
	}
}

func TestScore_MatchKindsAreMonotonic(t *testing.T) {
	exact := Score("scam", []string{"scam", ""})
	prefix := Score("scam", []string{"scam artist", ""})
	contains := Score("scam", []string{"a scam", ""})
	none := Score("scam", []string{"burglary", ""})

	assert.Greater(t, exact, prefix)
	assert.Greater(t, prefix, contains)
	assert.Greater(t, contains, none)
	assert.Zero(t, none)
}

func TestScore_EarlierFieldWeighsMore(t *testing.T) {
	first := Score("scam", []string{"a scam", "", ""})
	last := Score("scam", []string{"", "", "a scam"})

	assert.Greater(t, first, last)
}

func TestHighlight_Basic(t *testing.T) {
	got := Highlight("romance", []string{"Romance Scam Ring", "no match here", "a romance"})

	assert.Equal(t, []string{"<mark>Romance</mark> Scam Ring", "a <mark>romance</mark>"}, got)
}

func TestHighlight_Truncates(t *testing.T) {
	field := strings.Repeat("a", 40) + "needle" + strings.Repeat("b", 40)

	got := Highlight("NEEDLE", []string{field})

	want := Ellipsis + strings.Repeat("a", 30) + "<mark>needle</mark>" + strings.Repeat("b", 30) + Ellipsis
	assert.Equal(t, []string{want}, got)
}

func TestHighlight_MarksEveryOccurrenceInWindow(t *testing.T) {
	got := Highlight("ab", []string{"xab ab AB"})

	assert.Equal(t, []string{"x<mark>ab</mark> <mark>ab</mark> <mark>AB</mark>"}, got)
}

func TestHighlight_RegexMetacharactersAreLiteral(t *testing.T) {
	got := Highlight("a.b(", []string{"axb( a.b( done"})

	assert.Equal(t, []string{"axb( <mark>a.b(</mark> done"}, got)
}

func TestHighlight_MultibyteRunes(t *testing.T) {
	got := Highlight("café", []string{"Le CAFÉ du coin"})

	assert.Equal(t, []string{"Le <mark>CAFÉ</mark> du coin"}, got)
}

func TestHighlight_EmptyQuery(t *testing.T) {
	assert.Empty(t, Highlight("", []string{"anything"}))
}

func TestHighlight_ContainsQuery(t *testing.T) {
	for _, snippet := range Highlight("scam", []string{"romance scam", "Scam ring"}) {
		assert.Contains(t, strings.ToLower(snippet), "<mark>scam</mark>")
	}
}
