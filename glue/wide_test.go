package glue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWideGlueSameOrderSums(t *testing.T) {
	glues := []Glue{
		New(Pt(1), NewComponent(One, Fil), NewComponent(One/2, Fil)),
		New(Pt(2), NewComponent(3*One, Fil), NewComponent(One/4, Fil)),
		New(Pt(3), NewComponent(-One, Fil), NewComponent(One, Fil)),
	}
	var w WideGlue
	var stretch, shrink int64
	for _, g := range glues {
		w.AddGlue(g)
		stretch += g.Stretch.Value
		shrink += g.Shrink.Value
	}
	got := w.ToGlue()
	assert.Equal(t, Pt(6), got.Length)
	assert.Equal(t, NewComponent(stretch, Fil), got.Stretch)
	assert.Equal(t, NewComponent(shrink, Fil), got.Shrink)
}

func TestWideGlueKeepsHighestOrder(t *testing.T) {
	var w WideGlue
	w.AddGlue(New(Pt(1), NewComponent(5*One, Finite), NewComponent(One, Finite)))
	w.AddGlue(New(Pt(1), NewComponent(One, Fill), NewComponent(One, Fil)))
	got := w.ToGlue()
	assert.Equal(t, NewComponent(One, Fill), got.Stretch)
	assert.Equal(t, NewComponent(One, Fil), got.Shrink)
	assert.Equal(t, Fill, w.HighestStretchOrder())
	assert.Equal(t, int64(5*One), w.StretchAt(Finite))
}

func TestWideGlueCancelledOrderFallsBack(t *testing.T) {
	fil := New(0, NewComponent(One, Fil), Component{})
	var w WideGlue
	w.AddGlue(New(Pt(2), NewComponent(3*One, Finite), Component{}))
	w.AddGlue(fil)
	w.SubtractGlue(fil)
	assert.Equal(t, NewComponent(3*One, Finite), w.ToGlue().Stretch)
}

func TestWideGlueAllZero(t *testing.T) {
	var w WideGlue
	w.AddDimen(Pt(4))
	got := w.ToGlue()
	assert.Equal(t, Rigid(Pt(4)), got)
	assert.Equal(t, Finite, got.Stretch.Order)
}

func TestWideGlueSet(t *testing.T) {
	var w WideGlue
	w.AddGlue(New(Pt(1), NewComponent(One, Fil), NewComponent(One, Fill)))
	w.SetDimen(Pt(7))
	assert.Equal(t, Rigid(Pt(7)), w.ToGlue(), "setting a plain length drops flexibility")

	g := New(Pt(2), NewComponent(One, Filll), Component{})
	w.SetGlue(g)
	assert.Equal(t, g, w.ToGlue())

	var o WideGlue
	o.SetWide(&w)
	o.AddWide(&w)
	assert.Equal(t, New(Pt(4), NewComponent(2*One, Filll), Component{}), o.ToGlue())
	o.SubtractWide(&w)
	assert.Equal(t, g, o.ToGlue())
	o.SubtractDimen(Pt(2))
	assert.Equal(t, Dimen(0), o.Length)
}

func TestWideGlueAddStretchAndShrink(t *testing.T) {
	var w WideGlue
	w.AddStretch(Pt(2))
	w.AddShrink(Pt(1))
	assert.Equal(t, int64(2*One), w.StretchAt(Finite))
	assert.Equal(t, int64(One), w.ShrinkAt(Finite))
	assert.Equal(t, New(0, Pt(2).Component(), Pt(1).Component()), w.ToGlue())
}
