// Package breaker is a first-fit line breaker: every line takes as much of
// the paragraph as fits into \hsize, shrinking glue if it has to.
package breaker

import (
	"go.uber.org/zap"

	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/hyphen"
	"github.com/ByLCY/quire/listmaker"
	"github.com/ByLCY/quire/node"
)

// Greedy implements listmaker.LineBreaker.
type Greedy struct {
	// Hyphenator, when set, adds discretionaries before breaking.
	Hyphenator hyphen.Hyphenator
	LeftMin    int
	RightMin   int
}

var _ listmaker.LineBreaker = (*Greedy)(nil)

// New returns a breaker with TeX's hyphenation minima.
func New(h hyphen.Hyphenator) *Greedy {
	return &Greedy{Hyphenator: h, LeftMin: hyphen.LeftMin, RightMin: hyphen.RightMin}
}

type line struct {
	box *node.List
	// hyphenated is true when the line ends at a discretionary.
	hyphenated bool
}

// Break splits par into lines of width ctx.Params.HSize. Breaks are legal
// at glue after non-discardable material, at kerns followed by glue, at
// penalties below 10000 and at discretionaries. Penalties of -10000 or less
// force a break. Discardable items after a break are dropped.
func (g *Greedy) Break(par *node.List, ctx *listmaker.Context) (*node.List, error) {
	p := ctx.Params
	if g.Hyphenator != nil {
		hyphen.Splice(par, g.Hyphenator, hyphen.Options{LeftMin: g.LeftMin, RightMin: g.RightMin, HyphenChar: p.HyphenChar})
	}
	items := par.Nodes()

	var lines []line
	var carry []node.Node
	start := 0
	best := -1

	emit := func(b int) {
		content := g.candidate(items, carry, start, b)
		carry = nil
		hyphenated := false
		next := b
		if b < len(items) {
			next = b + 1
			if d, ok := items[b].(*node.Disc); ok {
				carry = d.Post.Nodes()
				hyphenated = true
			}
		}
		lines = append(lines, line{box: g.pack(content, ctx), hyphenated: hyphenated})
		if len(carry) == 0 {
			for next < len(items) && node.IsDiscardable(items[next]) {
				next++
			}
		}
		start = next
		best = -1
	}

	for i := 0; i <= len(items); i++ {
		final := i == len(items)
		if final && start == len(items) && len(carry) == 0 {
			break
		}
		if !final && (!legal(items, i, start) || (i == start && len(carry) == 0)) {
			continue
		}
		ok := fits(g.candidate(items, carry, start, i), &p)
		if !ok && best >= 0 {
			emit(best)
			i = start - 1
			continue
		}
		if final {
			emit(i)
			break
		}
		if pen, isPen := items[i].(*node.Penalty); !ok || (isPen && pen.Value <= node.Eject) {
			emit(i)
			i = start - 1
			continue
		}
		best = i
	}

	ctx.Log().Debug("paragraph broken", zap.Int("lines", len(lines)), zap.Stringer("hsize", p.HSize))
	return assemble(lines, &p), nil
}

// candidate returns the nodes of a line ending at breakpoint b.
func (g *Greedy) candidate(items, carry []node.Node, start, b int) []node.Node {
	out := append([]node.Node(nil), carry...)
	out = append(out, items[start:b]...)
	if b < len(items) {
		if d, ok := items[b].(*node.Disc); ok {
			out = append(out, d.Pre.Nodes()...)
		}
	}
	return out
}

func (g *Greedy) pack(content []node.Node, ctx *listmaker.Context) *node.List {
	p := ctx.Params
	box := node.NewList(node.Horizontal)
	if !p.LeftSkip.IsZero() {
		box.AddAndAdjust(&node.Glue{Spec: p.LeftSkip, Name: "leftskip"})
	}
	for _, n := range content {
		box.AddAndAdjust(n)
	}
	if !p.RightSkip.IsZero() {
		box.AddAndAdjust(&node.Glue{Spec: p.RightSkip, Name: "rightskip"})
	}
	listmaker.Report(ctx, box, box.To(p.HSize))
	return box
}

func legal(items []node.Node, i, start int) bool {
	switch n := items[i].(type) {
	case *node.Glue, *node.Space:
		return i > start && !node.IsDiscardable(items[i-1])
	case *node.Kern:
		if i+1 < len(items) {
			_, ok := node.GlueSpec(items[i+1])
			return ok
		}
	case *node.Penalty:
		return n.Value < node.Infinite
	case *node.Disc:
		return true
	}
	return false
}

// fits reports whether the nodes can be set in hsize without running out
// of shrink.
func fits(content []node.Node, p *listmaker.Params) bool {
	var w glue.WideGlue
	w.AddGlue(p.LeftSkip)
	w.AddGlue(p.RightSkip)
	for _, n := range content {
		if spec, ok := node.GlueSpec(n); ok {
			w.AddGlue(spec)
		} else {
			w.AddDimen(n.Width())
		}
	}
	if w.Length <= p.HSize {
		return true
	}
	if w.HighestShrinkOrder() > glue.Finite {
		return true
	}
	return w.Length-glue.Dimen(w.ShrinkAt(glue.Finite)) <= p.HSize
}

// assemble stacks the lines with the interline penalties of plain TeX:
// \interlinepenalty plus \clubpenalty after the first line, \widowpenalty
// before the last and \brokenpenalty after a hyphenated one.
func assemble(lines []line, p *listmaker.Params) *node.List {
	out := node.NewList(node.Vertical)
	for j, l := range lines {
		if j > 0 {
			pen := p.InterLinePenalty
			if j == 1 {
				pen += p.ClubPenalty
			}
			if j == len(lines)-1 {
				pen += p.WidowPenalty
			}
			if lines[j-1].hyphenated {
				pen += p.BrokenPenalty
			}
			if pen != 0 {
				out.Add(&node.Penalty{Value: pen})
			}
		}
		out.AddAndAdjust(l.box)
	}
	return out
}
