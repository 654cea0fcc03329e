package breaker_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ByLCY/quire/breaker"
	"github.com/ByLCY/quire/font"
	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/hyphen"
	"github.com/ByLCY/quire/listmaker"
	"github.com/ByLCY/quire/node"
)

// unitFont has 1pt wide letters and a 1pt space that stretches by 1pt and
// shrinks by 0.5pt.
func unitFont() *font.Table {
	f := font.New("unit").
		SetSpace(glue.New(glue.Pt(1), glue.Pt(1).Component(), glue.NewComponent(glue.One/2, glue.Finite)))
	for r := 'a'; r <= 'z'; r++ {
		f.SetChar(r, glue.Pt(1), glue.Pt(5), 0)
	}
	f.SetChar('-', glue.Pt(1), glue.Pt(2), 0)
	return f
}

func newContext(h hyphen.Hyphenator) *listmaker.Context {
	ctx := listmaker.NewContext()
	ctx.Params.HSize = glue.Pt(10)
	ctx.Breaker = breaker.New(h)
	return ctx
}

func paragraph(t *testing.T, ctx *listmaker.Context, s string) *node.List {
	t.Helper()
	f := unitFont()
	lm := listmaker.New(listmaker.Horizontal, ctx)
	for _, r := range s {
		switch r {
		case ' ':
			require.NoError(t, lm.AddSpace(f))
		case '|':
			lm.AddPenalty(node.Eject)
		default:
			require.NoError(t, lm.AddLetter(f, r))
		}
	}
	lines, err := lm.Par()
	require.NoError(t, err)
	return lines
}

func text(l *node.List) string {
	var sb strings.Builder
	for _, n := range l.All() {
		switch n := n.(type) {
		case *node.Char:
			sb.WriteRune(n.Rune)
		case *node.Space:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func summary(v *node.List) []string {
	var out []string
	for _, n := range v.All() {
		switch n := n.(type) {
		case *node.List:
			out = append(out, text(n))
		case *node.Penalty:
			out = append(out, "penalty")
		}
	}
	return out
}

func TestFirstFit(t *testing.T) {
	ctx := newContext(nil)
	v := paragraph(t, ctx, "aaaa bbbb cccc")
	require.Equal(t, []string{"aaaa bbbb", "penalty", "cccc"}, summary(v))
	assert.Equal(t, 300, v.At(1).(*node.Penalty).Value, "club plus widow penalty")

	first := v.At(0).(*node.List)
	assert.Equal(t, glue.Pt(10), first.Width())
	gs := first.GlueSet()
	assert.Equal(t, node.Stretching, gs.Sign)
	assert.InDelta(t, 1.0, gs.Ratio, 1e-9)
	assert.Equal(t, 100, gs.Badness)

	last := v.At(2).(*node.List)
	assert.Equal(t, glue.Pt(10), last.Width())
	assert.Equal(t, glue.Fil, last.GlueSet().Order)
	assert.Equal(t, "parfillskip", last.LastNode().(*node.Glue).Name)
}

func TestShrinkToFit(t *testing.T) {
	ctx := newContext(nil)
	// 11pt of material with 1pt of shrink fits into 10pt.
	v := paragraph(t, ctx, "aaa bbb ccc")
	require.Equal(t, []string{"aaa bbb ccc"}, summary(v))
	gs := v.At(0).(*node.List).GlueSet()
	assert.Equal(t, node.Shrinking, gs.Sign)
	assert.InDelta(t, 1.0, gs.Ratio, 1e-9)
}

func TestForcedBreak(t *testing.T) {
	ctx := newContext(nil)
	v := paragraph(t, ctx, "aa|bb")
	assert.Equal(t, []string{"aa", "penalty", "bb"}, summary(v))
}

func TestDiscardablesDroppedAfterBreak(t *testing.T) {
	ctx := newContext(nil)
	v := paragraph(t, ctx, "aaaaaaaa  bbbb")
	require.Equal(t, []string{"aaaaaaaa", "penalty", "bbbb"}, summary(v))
	assert.Equal(t, "b", string(v.At(2).(*node.List).At(0).(*node.Char).Rune))
}

func TestHyphenatedBreak(t *testing.T) {
	e, err := hyphen.NewExceptions("abcdef-ghijkl")
	require.NoError(t, err)
	ctx := newContext(e)
	v := paragraph(t, ctx, "abcdefghijkl")
	require.Equal(t, []string{"abcdef-", "penalty", "ghijkl"}, summary(v))
	assert.Equal(t, 400, v.At(1).(*node.Penalty).Value)
}

func TestDiscretionaryPostBreak(t *testing.T) {
	f := unitFont()
	ch := func(r rune) *node.Char {
		c, ok := node.NewChar(f, r)
		require.True(t, ok)
		return c
	}
	par := node.NewHList(
		ch('a'), ch('b'),
		&node.Disc{Pre: node.NewHList(ch('x')), Post: node.NewHList(ch('y')), NoBreak: node.NewHList(ch('z'))},
		ch('c'), ch('c'), ch('c'),
		&node.Penalty{Value: node.Infinite},
	)
	ctx := newContext(nil)
	ctx.Params.HSize = glue.Pt(4)
	v, err := ctx.Breaker.Break(par, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"abx", "penalty", "yccc"}, summary(v))
}

func TestOverfullLineIsReported(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := newContext(nil)
	ctx.Logger = zap.New(core)
	v := paragraph(t, ctx, "abcdefghijkl")
	require.Equal(t, []string{"abcdefghijkl"}, summary(v))
	assert.Equal(t, glue.Pt(2), v.At(0).(*node.List).GlueSet().Overfull)
	assert.Equal(t, 1, logs.FilterMessage("overfull box").Len())
}

func TestRaggedRight(t *testing.T) {
	ctx := newContext(nil)
	ctx.Params.RightSkip = glue.New(0, glue.NewComponent(glue.One, glue.Fil), glue.Component{})
	v := paragraph(t, ctx, "aaaa bbbb cccc")
	first := v.At(0).(*node.List)
	assert.Equal(t, "rightskip", first.LastNode().(*node.Glue).Name)
	assert.Equal(t, glue.Fil, first.GlueSet().Order)
}

func TestNoPenaltiesWhenZero(t *testing.T) {
	ctx := newContext(nil)
	ctx.Params.ClubPenalty = 0
	ctx.Params.WidowPenalty = 0
	v := paragraph(t, ctx, "aaaa bbbb cccc")
	assert.Equal(t, []string{"aaaa bbbb", "cccc"}, summary(v))
}
