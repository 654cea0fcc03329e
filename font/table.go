// Package font provides in-memory font metrics for the node layer: the
// character dimensions, ligature and kerning program and space parameters
// a TFM file would supply.
package font

import (
	"unicode"

	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/node"
)

type pair struct {
	left, right rune
}

// Table is a font whose metrics are held in maps. The zero value is not
// usable; call New.
type Table struct {
	name   string
	chars  map[rune]node.CharMetrics
	ligs   map[pair]rune
	kerns  map[pair]glue.Dimen
	space  glue.Glue
	extra  glue.Dimen
	params int
}

var _ node.Font = (*Table)(nil)

// New returns an empty font. It has the seven parameters of a text font.
func New(name string) *Table {
	return &Table{
		name:   name,
		chars:  map[rune]node.CharMetrics{},
		ligs:   map[pair]rune{},
		kerns:  map[pair]glue.Dimen{},
		params: 7,
	}
}

// SetChar defines a character.
func (t *Table) SetChar(r rune, width, height, depth glue.Dimen) *Table {
	t.chars[r] = node.CharMetrics{Width: width, Height: height, Depth: depth}
	return t
}

// SetLigature makes left followed by right become lig. The ligature
// character must be defined with SetChar as well.
func (t *Table) SetLigature(left, right, lig rune) *Table {
	t.ligs[pair{left, right}] = lig
	return t
}

// SetKern puts a kern between left and right.
func (t *Table) SetKern(left, right rune, k glue.Dimen) *Table {
	t.kerns[pair{left, right}] = k
	return t
}

func (t *Table) SetSpace(g glue.Glue) *Table {
	t.space = g
	return t
}

func (t *Table) SetExtraSpace(d glue.Dimen) *Table {
	t.extra = d
	return t
}

// SetParamCount sets the number of font parameters. Math symbol fonts need
// 22, math extension fonts 13.
func (t *Table) SetParamCount(n int) *Table {
	t.params = n
	return t
}

func (t *Table) Name() string { return t.name }

func (t *Table) Metrics(r rune) (node.CharMetrics, bool) {
	m, ok := t.chars[r]
	return m, ok
}

func (t *Table) Ligature(left, right rune) (rune, bool) {
	lig, ok := t.ligs[pair{left, right}]
	return lig, ok
}

func (t *Table) Kern(left, right rune) glue.Dimen {
	return t.kerns[pair{left, right}]
}

func (t *Table) Space() glue.Glue       { return t.space }
func (t *Table) ExtraSpace() glue.Dimen { return t.extra }
func (t *Table) ParamCount() int        { return t.params }

// Monospace returns a font covering printable ASCII in which every
// character is half an em wide. Descenders get a depth. Space follows
// Computer Modern's proportions: a third of an em, plus a sixth, minus a
// ninth.
func Monospace(name string, size glue.Dimen) *Table {
	t := New(name)
	w := size / 2
	for r := rune(0x21); r < 0x7f; r++ {
		h := size * 7 / 10
		if unicode.IsLower(r) && r != 'b' && r != 'd' && r != 'f' && r != 'h' && r != 'k' && r != 'l' && r != 't' {
			h = size * 43 / 100
		}
		var d glue.Dimen
		switch r {
		case 'g', 'j', 'p', 'q', 'y', ',', ';':
			d = size / 5
		}
		t.SetChar(r, w, h, d)
	}
	t.SetSpace(glue.New(size/3, (size / 6).Component(), (size / 9).Component()))
	t.SetExtraSpace(size / 9)
	return t
}
