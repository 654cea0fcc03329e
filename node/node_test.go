package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/node"
)

func TestVariantDimensions(t *testing.T) {
	f := testFont()
	g := glue.New(glue.Pt(3), fil(1), glue.Component{})
	cases := []struct {
		n       node.Node
		kind    string
		w, h, d glue.Dimen
	}{
		{char(t, f, 'g'), "char", glue.Pt(5), glue.Pt(4), glue.Pt(2)},
		{&node.Space{Spec: g}, "space", glue.Pt(3), 0, 0},
		{&node.Glue{Spec: g}, "glue", glue.Pt(3), 0, 0},
		{&node.Kern{Size: glue.Pt(2)}, "kern", glue.Pt(2), 0, 0},
		{&node.Rule{W: node.Running, H: glue.Pt(1), D: node.Running}, "rule", 0, glue.Pt(1), 0},
		{&node.Disc{NoBreak: node.NewHList(char(t, f, 'a'))}, "discretionary", glue.Pt(5), glue.Pt(4), 0},
		{&node.Disc{}, "discretionary", 0, 0, 0},
		{&node.Mark{Tokens: "x"}, "mark", 0, 0, 0},
		{&node.Penalty{Value: 50}, "penalty", 0, 0, 0},
		{&node.Whatsit{Payload: 1}, "whatsit", 0, 0, 0},
		{node.NewHList(char(t, f, 'a')), "hbox", glue.Pt(5), glue.Pt(4), 0},
		{node.NewVList(node.NewHList(char(t, f, 'a'))), "vbox", glue.Pt(5), glue.Pt(4), 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, node.Kind(tc.n))
		assert.Equal(t, tc.w, tc.n.Width(), tc.kind)
		assert.Equal(t, tc.h, tc.n.Height(), tc.kind)
		assert.Equal(t, tc.d, tc.n.Depth(), tc.kind)
		assert.Equal(t, glue.Dimen(0), tc.n.Shift(), tc.kind)
	}
}

func TestGlueSpecAndDiscardable(t *testing.T) {
	g := glue.Rigid(glue.Pt(1))
	spec, ok := node.GlueSpec(&node.Space{Spec: g})
	assert.True(t, ok)
	assert.Equal(t, g, spec)
	_, ok = node.GlueSpec(&node.Kern{})
	assert.False(t, ok)

	assert.True(t, node.IsDiscardable(&node.Kern{}))
	assert.True(t, node.IsDiscardable(&node.Penalty{}))
	assert.False(t, node.IsDiscardable(&node.Rule{}))
	assert.False(t, node.IsDiscardable(&node.Mark{}))
}

func TestNewCharMissing(t *testing.T) {
	_, ok := node.NewChar(testFont(), 'z')
	assert.False(t, ok)
}

func TestVoidBoxReadsZero(t *testing.T) {
	b := node.Void()
	assert.True(t, b.IsVoid())
	assert.NotPanics(t, func() {
		assert.Equal(t, glue.Dimen(0), b.Width())
		assert.Equal(t, glue.Dimen(0), b.Height())
		assert.Equal(t, glue.Dimen(0), b.Depth())
		assert.Equal(t, glue.Dimen(0), b.Shift())
		assert.Equal(t, glue.Dimen(0), b.Move())
	})
	assert.True(t, b.Copy().IsVoid())
	assert.Nil(t, b.Take())
}

func TestBoxTakeEmptiesRegister(t *testing.T) {
	l := node.NewHList(&node.Rule{W: glue.Pt(4), H: glue.Pt(2)})
	l.SetMove(glue.Pt(1))
	b := node.NewBox(l)
	assert.False(t, b.IsVoid())
	assert.Equal(t, glue.Pt(4), b.Width())
	assert.Equal(t, glue.Pt(1), b.Move())

	c := b.Copy()
	assert.NotSame(t, l, c.List())
	assert.Same(t, l, b.Take())
	assert.True(t, b.IsVoid())
	assert.False(t, c.IsVoid())
}
