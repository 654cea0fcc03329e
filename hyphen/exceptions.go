package hyphen

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Exceptions is a \hyphenation dictionary. Words are matched case-folded.
type Exceptions struct {
	words map[string][]int
	fold  cases.Caser
}

var _ Hyphenator = (*Exceptions)(nil)

// NewExceptions returns a dictionary holding the given hyphenated words.
func NewExceptions(words ...string) (*Exceptions, error) {
	e := &Exceptions{words: map[string][]int{}, fold: cases.Fold()}
	for _, w := range words {
		if err := e.Add(w); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Add records a word with its hyphens, like "as-so-ciate". A later entry
// for the same word replaces the earlier one.
func (e *Exceptions) Add(hyphenated string) error {
	var points []int
	var sb strings.Builder
	n := 0
	for _, r := range hyphenated {
		if r == '-' {
			if n == 0 || (len(points) > 0 && points[len(points)-1] == n) {
				return fmt.Errorf("hyphen: bad exception %q", hyphenated)
			}
			points = append(points, n)
			continue
		}
		sb.WriteRune(r)
		n++
	}
	if n == 0 || (len(points) > 0 && points[len(points)-1] == n) {
		return fmt.Errorf("hyphen: bad exception %q", hyphenated)
	}
	e.words[e.fold.String(sb.String())] = points
	return nil
}

func (e *Exceptions) Points(word string) []int {
	return slices.Clone(e.words[e.fold.String(word)])
}

func (e *Exceptions) Len() int { return len(e.words) }
