package glue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlueString(t *testing.T) {
	g := New(Pt(1), NewComponent(2*One, Fil), NewComponent(3*One, Fil))
	assert.Equal(t, "1.0pt plus 2.0fil minus 3.0fil", g.String())
	assert.Equal(t, "12.0pt", Rigid(Pt(12)).String())
	assert.Equal(t, "0.0pt minus 1.0pt", New(0, Component{}, Pt(1).Component()).String())
	assert.Equal(t, "0.0pt plus 1.0fill", New(0, NewComponent(One, Fill), Component{}).String())
}

// Mirrors \glueshrinkorder: the order reads as a count, and assigning it to
// a dimen gives that many scaled points.
func TestGlueShrinkOrderScenario(t *testing.T) {
	g := New(Pt(1), NewComponent(2, Fil), NewComponent(3, Fil))
	assert.Equal(t, 1, g.ShrinkOrder())
	assert.Equal(t, "0.00002pt", Dimen(g.ShrinkOrder()).String())
	assert.Equal(t, 1, g.StretchOrder())

	for order, want := range map[int8]int{Fil: 1, Fill: 2, Filll: 3} {
		g := New(0, Component{}, NewComponent(One, order))
		assert.Equal(t, want, g.ShrinkOrder())
	}
}

func TestGlueEqual(t *testing.T) {
	a := New(Pt(1), NewComponent(One, Fil), Component{})
	b := New(Pt(1), NewComponent(One, Fil), Component{})
	c := New(Pt(1), NewComponent(One, Fill), Component{})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, Zero.IsZero())
	assert.False(t, a.IsZero())
}
