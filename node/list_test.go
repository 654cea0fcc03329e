package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/quire/font"
	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/node"
)

func testFont() *font.Table {
	return font.New("test").
		SetChar('a', glue.Pt(5), glue.Pt(4), 0).
		SetChar('g', glue.Pt(5), glue.Pt(4), glue.Pt(2)).
		SetChar('H', glue.Pt(7), glue.Pt(7), 0)
}

func char(t *testing.T, f node.Font, r rune) *node.Char {
	t.Helper()
	c, ok := node.NewChar(f, r)
	require.True(t, ok, "font has no %q", r)
	return c
}

func fil(n int64) glue.Component { return glue.NewComponent(n*glue.One, glue.Fil) }

func TestHListAggregates(t *testing.T) {
	f := testFont()
	l := node.NewHList(
		char(t, f, 'H'),
		&node.Glue{Spec: glue.New(glue.Pt(3), glue.Pt(1).Component(), glue.Pt(1).Component())},
		char(t, f, 'g'),
		&node.Kern{Size: glue.Pt(-1), Explicit: true},
	)
	assert.Equal(t, glue.Pt(14), l.Width())
	assert.Equal(t, glue.Pt(7), l.Height())
	assert.Equal(t, glue.Pt(2), l.Depth())
	assert.Equal(t, 4, l.Len())
}

func TestHListShiftedBox(t *testing.T) {
	f := testFont()
	inner := node.NewHList(char(t, f, 'a'))
	inner.SetShift(glue.Pt(3))
	l := node.NewHList(char(t, f, 'a'), inner)
	assert.Equal(t, glue.Pt(4), l.Height())
	assert.Equal(t, glue.Pt(3), l.Depth(), "a box lowered by 3pt reaches 3pt below the baseline")
}

func TestVListAggregates(t *testing.T) {
	f := testFont()
	line1 := node.NewHList(char(t, f, 'g'))
	line2 := node.NewHList(char(t, f, 'H'), char(t, f, 'g'))
	v := node.NewVList(
		line1,
		&node.Glue{Spec: glue.Rigid(glue.Pt(6))},
		&node.Penalty{Value: 100},
		line2,
	)
	// 4 (height) + 2 (depth) + 6 (glue) + 7 (height); the last depth stays out.
	assert.Equal(t, glue.Pt(19), v.Height())
	assert.Equal(t, glue.Pt(2), v.Depth())
	assert.Equal(t, glue.Pt(12), v.Width())

	natural := *v
	v.Natural()
	assert.Equal(t, natural.Height(), v.Height())
	assert.Equal(t, natural.Depth(), v.Depth())
	assert.Equal(t, natural.Width(), v.Width())
}

func TestRemoveLastUnderflow(t *testing.T) {
	l := node.NewList(node.Horizontal)
	assert.Nil(t, l.LastNode())
	_, err := l.RemoveLast()
	assert.ErrorIs(t, err, node.ErrEmptyList)
	assert.ErrorIs(t, l.ReplaceLast(&node.Penalty{}), node.ErrEmptyList)

	k := &node.Kern{Size: glue.Pt(1)}
	l.Add(k)
	got, err := l.RemoveLast()
	require.NoError(t, err)
	assert.Same(t, k, got)
	assert.True(t, l.IsEmpty())
}

func TestSealedListRejectsStructuralChange(t *testing.T) {
	l := node.NewHList(&node.Kern{Size: glue.Pt(1)})
	l.Seal()
	assert.Panics(t, func() { l.Add(&node.Penalty{}) })
	assert.Panics(t, func() { _, _ = l.RemoveLast() })
	assert.NotPanics(t, func() {
		l.SetWidth(glue.Pt(10))
		l.To(glue.Pt(20))
	})
	assert.Equal(t, glue.Pt(20), l.Width())
}

func TestToStretchesHighestOrder(t *testing.T) {
	l := node.NewHList(
		&node.Glue{Spec: glue.New(glue.Pt(2), glue.Pt(5).Component(), glue.Component{})},
		&node.Rule{W: glue.Pt(10), H: glue.Pt(1), D: 0},
		&node.Glue{Spec: glue.New(0, fil(1), glue.Component{})},
		&node.Glue{Spec: glue.New(0, fil(3), glue.Component{})},
	)
	gs := l.To(glue.Pt(20))
	assert.Equal(t, glue.Pt(20), l.Width())
	assert.Equal(t, node.Stretching, gs.Sign)
	assert.Equal(t, glue.Fil, gs.Order)
	assert.InDelta(t, 2.0, gs.Ratio, 1e-9)
	assert.Equal(t, 0, gs.Badness, "infinite stretch is never bad")

	assert.Equal(t, glue.Pt(2), gs.SetSize(glue.New(glue.Pt(2), glue.Pt(5).Component(), glue.Component{})))
	assert.Equal(t, glue.Pt(6), gs.SetSize(glue.New(0, fil(3), glue.Component{})))
}

func TestToShrinkAndOverfull(t *testing.T) {
	mk := func() *node.List {
		return node.NewHList(
			&node.Rule{W: glue.Pt(10)},
			&node.Glue{Spec: glue.New(glue.Pt(4), glue.Component{}, glue.Pt(2).Component())},
			&node.Rule{W: glue.Pt(10)},
		)
	}
	l := mk()
	gs := l.To(glue.Pt(23))
	assert.Equal(t, node.Shrinking, gs.Sign)
	assert.InDelta(t, 0.5, gs.Ratio, 1e-9)
	assert.Equal(t, 12, gs.Badness)
	assert.Equal(t, glue.Dimen(0), gs.Overfull)

	l = mk()
	gs = l.To(glue.Pt(20))
	assert.Equal(t, 1.0, gs.Ratio)
	assert.Equal(t, glue.Pt(2), gs.Overfull)
	assert.Equal(t, 1000000, gs.Badness)
}

func TestSpread(t *testing.T) {
	l := node.NewHList(
		&node.Rule{W: glue.Pt(10)},
		&node.Glue{Spec: glue.New(glue.Pt(4), glue.Pt(4).Component(), glue.Component{})},
	)
	gs := l.Spread(glue.Pt(2))
	assert.Equal(t, glue.Pt(16), l.Width())
	assert.InDelta(t, 0.5, gs.Ratio, 1e-9)
	assert.Equal(t, 12, gs.Badness)
}

func TestUnderfullWithoutStretch(t *testing.T) {
	l := node.NewHList(&node.Rule{W: glue.Pt(10)})
	gs := l.To(glue.Pt(12))
	assert.Equal(t, node.Normal, gs.Sign)
	assert.Equal(t, node.InfBad, gs.Badness)
}

func TestVListTo(t *testing.T) {
	v := node.NewVList(
		&node.Rule{W: glue.Pt(5), H: glue.Pt(3), D: glue.Pt(1)},
		&node.Glue{Spec: glue.New(glue.Pt(2), fil(1), glue.Component{})},
		&node.Rule{W: glue.Pt(5), H: glue.Pt(3), D: glue.Pt(1)},
	)
	assert.Equal(t, glue.Pt(9), v.Height())
	gs := v.To(glue.Pt(15))
	assert.Equal(t, glue.Pt(15), v.Height())
	assert.Equal(t, glue.Pt(1), v.Depth())
	assert.Equal(t, glue.Pt(5), v.Width())
	assert.InDelta(t, 6.0, gs.Ratio, 1e-9)
}

func TestFlexCollapsesGlue(t *testing.T) {
	l := node.NewHList(
		&node.Glue{Spec: glue.New(glue.Pt(1), glue.Pt(1).Component(), glue.Pt(1).Component())},
		&node.Space{Spec: glue.New(glue.Pt(1), fil(2), glue.Pt(1).Component())},
		&node.Kern{Size: glue.Pt(3)},
	)
	assert.Equal(t, glue.New(glue.Pt(5), fil(2), glue.Pt(2).Component()), l.Flex())
}

func TestSplitAt(t *testing.T) {
	v := node.NewVList(
		&node.Rule{W: glue.Pt(5), H: glue.Pt(3)},
		&node.Rule{W: glue.Pt(8), H: glue.Pt(4)},
		&node.Rule{W: glue.Pt(2), H: glue.Pt(1)},
	)
	tail := v.SplitAt(1)
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 2, tail.Len())
	assert.Equal(t, glue.Pt(3), v.Height())
	assert.Equal(t, glue.Pt(5), tail.Height())
	assert.Equal(t, glue.Pt(8), tail.Width())
	assert.Equal(t, node.Vertical, tail.Kind())
}

func TestInsertAt(t *testing.T) {
	l := node.NewHList(&node.Penalty{Value: 1}, &node.Penalty{Value: 3})
	l.InsertAt(1, &node.Penalty{Value: 2})
	var got []int
	for _, n := range l.All() {
		got = append(got, n.(*node.Penalty).Value)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestCopyIsDeep(t *testing.T) {
	f := testFont()
	inner := node.NewHList(char(t, f, 'a'))
	disc := &node.Disc{Pre: node.NewHList(char(t, f, 'a'))}
	l := node.NewHList(inner, disc)
	c := l.Copy()
	require.Equal(t, l.Len(), c.Len())
	assert.NotSame(t, l.At(0), c.At(0))
	assert.NotSame(t, disc.Pre, c.At(1).(*node.Disc).Pre)
	assert.Nil(t, c.At(1).(*node.Disc).Post)
	assert.Equal(t, l.Width(), c.Width())
}

func TestBadness(t *testing.T) {
	assert.Equal(t, 0, node.Badness(0, 0))
	assert.Equal(t, node.InfBad, node.Badness(1, 0))
	assert.Equal(t, 100, node.Badness(glue.Pt(3), glue.Pt(3)))
	assert.Equal(t, node.InfBad, node.Badness(glue.Pt(30), glue.Pt(3)))
}
