// Package hyphen inserts discretionary hyphens into horizontal lists.
// Finding the break points is up to a Hyphenator; this package only knows
// how to splice them into the node list.
package hyphen

import (
	"slices"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/quire/node"
)

// TeX's \lefthyphenmin and \righthyphenmin defaults.
const (
	LeftMin  = 2
	RightMin = 3
)

// Hyphenator finds the places a word may be hyphenated. Each point p means
// a break between rune p-1 and rune p.
type Hyphenator interface {
	Points(word string) []int
}

// Options control Splice.
type Options struct {
	LeftMin    int
	RightMin   int
	HyphenChar rune
}

func DefaultOptions() Options {
	return Options{LeftMin: LeftMin, RightMin: RightMin, HyphenChar: '-'}
}

// Splice puts a discretionary after the letter before every hyphenation
// point of every word in l. A word is a run of letters in one font; the
// kerns the list maker puts between letters do not end it. Ligatures count
// as the letters they stand for, and a point inside a ligature is skipped.
// The pre-break text is the hyphen character of the word's font, or
// nothing if the font lacks it; post-break and no-break texts are empty, so
// the list keeps its width. It returns the number of discretionaries
// inserted.
func Splice(l *node.List, h Hyphenator, opts Options) int {
	words := findWords(l)
	count := 0
	for i := len(words) - 1; i >= 0; i-- {
		w := words[i]
		n := len(w.text)
		points := h.Points(string(w.text))
		for j := len(points) - 1; j >= 0; j-- {
			p := points[j]
			if p < opts.LeftMin || n-p < opts.RightMin {
				continue
			}
			at, ok := w.after(p)
			if !ok {
				continue
			}
			l.InsertAt(at, discretionary(w.font, opts.HyphenChar))
			count++
		}
	}
	return count
}

type word struct {
	font node.Font
	text []rune
	// ends[k] is len(text) through letter k, pos[k] its index in the list.
	ends []int
	pos  []int
}

// after returns the list index just past the letter whose text ends at p.
func (w *word) after(p int) (int, bool) {
	k, ok := slices.BinarySearch(w.ends, p)
	if !ok {
		return 0, false
	}
	return w.pos[k] + 1, true
}

func findWords(l *node.List) []word {
	var words []word
	var cur *word
	flush := func() {
		if cur != nil {
			words = append(words, *cur)
			cur = nil
		}
	}
	for i, n := range l.All() {
		if k, ok := n.(*node.Kern); ok && !k.Explicit && cur != nil {
			continue
		}
		c, ok := n.(*node.Char)
		if !ok || !unicode.IsLetter(c.Rune) {
			flush()
			continue
		}
		if cur != nil && cur.font != c.Font {
			flush()
		}
		if cur == nil {
			cur = &word{font: c.Font}
		}
		cur.text = append(cur.text, letters(c.Rune)...)
		cur.ends = append(cur.ends, len(cur.text))
		cur.pos = append(cur.pos, i)
	}
	flush()
	return words
}

// letters spells out the Latin ligatures U+FB00 to U+FB06.
func letters(r rune) []rune {
	if r < 0xfb00 || r > 0xfb06 {
		return []rune{r}
	}
	return []rune(norm.NFKD.String(string(r)))
}

func discretionary(f node.Font, hyphenChar rune) *node.Disc {
	d := &node.Disc{}
	if c, ok := node.NewChar(f, hyphenChar); ok {
		d.Pre = node.NewHList(c)
	}
	return d
}
