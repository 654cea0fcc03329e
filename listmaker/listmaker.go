// Package listmaker builds node lists the way TeX's semantic nest does: one
// ListMaker per open box or paragraph, each in a mode that decides which
// operations are legal and how material is added.
package listmaker

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/node"
)

// Observer is called after a paragraph has been broken into lines.
type Observer func(lines *node.List)

// ListMaker owns one list under construction.
type ListMaker struct {
	mode      Mode
	ctx       *Context
	list      *node.List
	sf        int
	prevDepth glue.Dimen
	observers []Observer
	eqno      node.Box
}

// New opens a list in mode m.
func New(m Mode, ctx *Context) *ListMaker {
	if ctx == nil {
		ctx = NewContext()
	}
	lm := &ListMaker{
		mode:      m,
		ctx:       ctx,
		list:      node.NewList(m.direction()),
		sf:        1000,
		prevDepth: IgnoreDepth,
	}
	ctx.Log().Debug("open list", zap.Stringer("mode", m))
	return lm
}

func (lm *ListMaker) Mode() Mode { return lm.mode }

func (lm *ListMaker) Context() *Context { return lm.ctx }

// List returns the list being built. It stays owned by the ListMaker.
func (lm *ListMaker) List() *node.List { return lm.list }

func (lm *ListMaker) require(op string, c Capability) error {
	if c.offeredBy(lm.mode) {
		return nil
	}
	return &ModeMismatchError{Op: op, Required: c, Actual: lm.mode}
}

// RequireVertical fails with a ModeMismatchError outside vertical modes.
func (lm *ListMaker) RequireVertical(op string) error { return lm.require(op, NeedsVertical) }

// RequireHorizontal fails with a ModeMismatchError in vertical modes.
func (lm *ListMaker) RequireHorizontal(op string) error { return lm.require(op, NeedsHorizontal) }

// RequireMath fails with a ModeMismatchError outside math modes.
func (lm *ListMaker) RequireMath(op string) error { return lm.require(op, NeedsMath) }

// SpaceFactor is \spacefactor.
func (lm *ListMaker) SpaceFactor() (int, error) {
	if err := lm.RequireHorizontal(`\spacefactor`); err != nil {
		return 0, err
	}
	return lm.sf, nil
}

func (lm *ListMaker) SetSpaceFactor(sf int) error {
	if err := lm.RequireHorizontal(`\spacefactor`); err != nil {
		return err
	}
	if sf <= 0 || sf > 32767 {
		return fmt.Errorf("%w: %d", ErrSpaceFactor, sf)
	}
	lm.sf = sf
	return nil
}

// PrevDepth is \prevdepth.
func (lm *ListMaker) PrevDepth() (glue.Dimen, error) {
	if err := lm.RequireVertical(`\prevdepth`); err != nil {
		return 0, err
	}
	return lm.prevDepth, nil
}

func (lm *ListMaker) SetPrevDepth(d glue.Dimen) error {
	if err := lm.RequireVertical(`\prevdepth`); err != nil {
		return err
	}
	lm.prevDepth = d
	return nil
}

// AddLetter appends r in font f. A letter following a letter of the same
// font forms a ligature with it when the font has one, otherwise the font's
// kern between the two is put in first. A ligature is not looked at again
// for kerns or further ligatures with its left neighbour.
func (lm *ListMaker) AddLetter(f node.Font, r rune) error {
	if err := lm.RequireHorizontal("letter"); err != nil {
		return err
	}
	lm.adjustSpaceFactor(r)
	c, ok := node.NewChar(f, r)
	if !ok {
		lm.ctx.Log().Warn("missing character", zap.String("font", f.Name()), zap.String("char", string(r)))
		return nil
	}
	if prev, ok := lm.list.LastNode().(*node.Char); ok && prev.Font == f {
		if lig, ok := f.Ligature(prev.Rune, r); ok {
			if lc, ok := node.NewChar(f, lig); ok {
				if err := lm.list.ReplaceLast(lc); err != nil {
					return err
				}
				lm.list.SetWidth(lm.list.Width() - prev.Width() + lc.Width())
				lm.list.SetHeight(max(lm.list.Height(), lc.Height()))
				lm.list.SetDepth(max(lm.list.Depth(), lc.Depth()))
				lm.ctx.Log().Debug("ligature", zap.String("chars", string([]rune{prev.Rune, r})), zap.String("lig", string(lig)))
				return nil
			}
		}
		if k := f.Kern(prev.Rune, r); k != 0 {
			lm.list.AddAndAdjust(&node.Kern{Size: k})
		}
	}
	lm.list.AddAndAdjust(c)
	return nil
}

func (lm *ListMaker) adjustSpaceFactor(r rune) {
	code := lm.ctx.sfcode(r)
	switch {
	case code == 1000:
		lm.sf = 1000
	case code < 1000:
		if code > 0 {
			lm.sf = code
		}
	case lm.sf < 1000:
		lm.sf = 1000
	default:
		lm.sf = code
	}
}

// AddSpace appends interword glue for a space token, using f's space
// parameters and the current space factor. Spaces are ignored in math.
func (lm *ListMaker) AddSpace(f node.Font) error {
	if err := lm.RequireHorizontal("space"); err != nil {
		return err
	}
	if lm.mode.IsMath() {
		return nil
	}
	g, ok := InterwordGlue(lm.sf, f, &lm.ctx.Params)
	if !ok {
		return nil
	}
	lm.list.AddAndAdjust(&node.Space{Spec: g})
	return nil
}

// InterwordGlue is the glue a space gets at space factor sf. It reports
// false when sf is zero and no space is added at all.
func InterwordGlue(sf int, f node.Font, p *Params) (glue.Glue, bool) {
	switch {
	case sf == 0:
		return glue.Zero, false
	case sf == 1000:
		if !p.SpaceSkip.IsZero() {
			return p.SpaceSkip, true
		}
		return f.Space(), true
	case sf >= 2000 && !p.XSpaceSkip.IsZero():
		return p.XSpaceSkip, true
	}
	g := f.Space()
	if !p.SpaceSkip.IsZero() {
		g = p.SpaceSkip
	}
	if sf >= 2000 {
		g.Length += f.ExtraSpace()
	}
	g.Stretch.Value, _ = glue.XnOverD(g.Stretch.Value, int64(sf), 1000)
	g.Shrink.Value, _ = glue.XnOverD(g.Shrink.Value, 1000, int64(sf))
	return g, true
}

// Add appends n. Boxes in a vertical list get interline glue first; boxes
// and rules in a horizontal list reset the space factor.
func (lm *ListMaker) Add(n node.Node) {
	if lm.mode.IsVertical() {
		switch n := n.(type) {
		case *node.List:
			lm.appendToVList(n)
			return
		case *node.Rule:
			lm.list.AddAndAdjust(n)
			lm.prevDepth = IgnoreDepth
			return
		}
	} else {
		switch n.(type) {
		case *node.List, *node.Rule:
			lm.sf = 1000
		}
	}
	lm.list.AddAndAdjust(n)
}

// appendToVList is TeX's append_to_vlist.
func (lm *ListMaker) appendToVList(b *node.List) {
	if lm.prevDepth > IgnoreDepth {
		p := lm.ctx.Params
		d := p.BaselineSkip.Length - lm.prevDepth - b.Height()
		var g *node.Glue
		if d < p.LineSkipLimit {
			g = &node.Glue{Spec: p.LineSkip, Name: "lineskip"}
		} else {
			spec := p.BaselineSkip
			spec.Length = d
			g = &node.Glue{Spec: spec, Name: "baselineskip"}
		}
		lm.list.AddAndAdjust(g)
	}
	lm.list.AddAndAdjust(b)
	lm.prevDepth = b.Depth()
}

func (lm *ListMaker) AddGlue(g glue.Glue) {
	lm.list.AddAndAdjust(&node.Glue{Spec: g})
}

// AddKern appends an explicit kern.
func (lm *ListMaker) AddKern(d glue.Dimen) {
	lm.list.AddAndAdjust(&node.Kern{Size: d, Explicit: true})
}

func (lm *ListMaker) AddPenalty(p int) {
	lm.list.AddAndAdjust(&node.Penalty{Value: p})
}

// AddRule appends a rule. Nil dimensions default as for \hrule in vertical
// modes (running width, 0.4pt high) and \vrule otherwise (0.4pt wide,
// running height and depth).
func (lm *ListMaker) AddRule(width, height, depth *glue.Dimen) {
	const thick glue.Dimen = 26214 // 0.4pt
	r := &node.Rule{W: node.Running, H: node.Running, D: node.Running}
	if lm.mode.IsVertical() {
		r.H, r.D = thick, 0
	} else {
		r.W = thick
	}
	if width != nil {
		r.W = *width
	}
	if height != nil {
		r.H = *height
	}
	if depth != nil {
		r.D = *depth
	}
	lm.Add(r)
}

// AddBox moves the content of b into the list, shifted perpendicular to the
// list direction. A void box adds nothing.
func (lm *ListMaker) AddBox(b *node.Box, shift glue.Dimen) {
	l := b.Take()
	if l == nil {
		return
	}
	l.SetShift(shift)
	lm.Add(l)
}

// Indent starts a paragraph with an empty box \parindent wide.
func (lm *ListMaker) Indent() error {
	if err := lm.require(`\indent`, NeedsHorizontal); err != nil {
		return err
	}
	box := node.NewList(node.Horizontal)
	box.SetWidth(lm.ctx.Params.ParIndent)
	lm.Add(box)
	return nil
}

// LastNode is \lastskip's view of the list: the last node, or nil.
func (lm *ListMaker) LastNode() node.Node { return lm.list.LastNode() }

// RemoveLastNode removes the last node. An empty list is an underflow.
func (lm *ListMaker) RemoveLastNode() (node.Node, error) {
	n, err := lm.list.RemoveLast()
	if err != nil {
		return nil, fmt.Errorf("remove last node in %s: %w", lm.mode, err)
	}
	lm.list.Natural()
	return n, nil
}

// Unskip is \unskip: it removes the last node if it is glue. Like \unkern
// and \unpenalty it does nothing when the list is empty or ends with
// something else.
func (lm *ListMaker) Unskip() {
	lm.removeIf(func(n node.Node) bool {
		_, ok := node.GlueSpec(n)
		return ok
	})
}

func (lm *ListMaker) Unkern() {
	lm.removeIf(func(n node.Node) bool {
		_, ok := n.(*node.Kern)
		return ok
	})
}

func (lm *ListMaker) Unpenalty() {
	lm.removeIf(func(n node.Node) bool {
		_, ok := n.(*node.Penalty)
		return ok
	})
}

func (lm *ListMaker) removeIf(match func(node.Node) bool) {
	if last := lm.list.LastNode(); last != nil && match(last) {
		// cannot fail, the list is not empty
		_, _ = lm.RemoveLastNode()
	}
}

// AfterParagraph registers obs to run after every paragraph of this
// ListMaker. Observers run in reverse registration order: the one added
// last sees the paragraph first.
func (lm *ListMaker) AfterParagraph(obs Observer) {
	lm.observers = append(lm.observers, obs)
}

// Par ends the paragraph: it drops trailing glue, appends \penalty10000
// \parfillskip, breaks the list into lines and returns them. The
// ListMaker then holds a fresh empty list for the next paragraph. Par only
// does this in horizontal mode; elsewhere it returns nil. Without a line
// breaker it returns ErrNoLineBreaker and leaves the paragraph in place.
func (lm *ListMaker) Par() (*node.List, error) {
	if lm.mode != Horizontal {
		return nil, nil
	}
	if lm.ctx.Breaker == nil {
		return nil, ErrNoLineBreaker
	}
	par := lm.list
	lm.list = node.NewList(node.Horizontal)
	lm.sf = 1000
	if par.IsEmpty() {
		return node.NewList(node.Vertical), nil
	}
	if _, ok := node.GlueSpec(par.LastNode()); ok {
		_, _ = par.RemoveLast()
		par.Natural()
	}
	par.AddAndAdjust(&node.Penalty{Value: node.Infinite})
	par.AddAndAdjust(&node.Glue{Spec: lm.ctx.Params.ParFillSkip, Name: "parfillskip"})
	lines, err := lm.ctx.Breaker.Break(par, lm.ctx)
	if err != nil {
		return nil, fmt.Errorf("break paragraph: %w", err)
	}
	lm.ctx.Log().Debug("paragraph", zap.Int("nodes", par.Len()), zap.Int("lines", lines.Len()))
	for _, obs := range lo.Reverse(slices.Clone(lm.observers)) {
		obs(lines)
	}
	return lines, nil
}

// AddParagraph appends the lines of a broken paragraph to a vertical list,
// preceded by \parskip. Lines get interline glue like any other box.
func (lm *ListMaker) AddParagraph(lines *node.List) error {
	if err := lm.RequireVertical("paragraph"); err != nil {
		return err
	}
	if lines.IsEmpty() {
		return nil
	}
	if !lm.list.IsEmpty() || lm.mode == Vertical {
		lm.list.AddAndAdjust(&node.Glue{Spec: lm.ctx.Params.ParSkip, Name: "parskip"})
	}
	for _, n := range lines.All() {
		lm.Add(n)
	}
	return nil
}

// SetEquationNumber gives a display its \eqno box.
func (lm *ListMaker) SetEquationNumber(b node.Box) error {
	if lm.mode != DisplayMath {
		return &ModeMismatchError{Op: `\eqno`, Required: NeedsMath, Actual: lm.mode}
	}
	lm.eqno = b
	return nil
}

// Complete seals the list at its natural size and hands it to the caller,
// who wraps it in a Box. Math lists first check that the math fonts are
// usable.
func (lm *ListMaker) Complete() (*node.List, error) {
	if err := lm.finish(); err != nil {
		return nil, err
	}
	lm.list.Natural()
	lm.list.Seal()
	return lm.list, nil
}

// CompleteTo is Complete for "to size".
func (lm *ListMaker) CompleteTo(size glue.Dimen) (*node.List, error) {
	if err := lm.finish(); err != nil {
		return nil, err
	}
	lm.report(lm.list.To(size))
	lm.list.Seal()
	return lm.list, nil
}

// CompleteSpread is Complete for "spread delta".
func (lm *ListMaker) CompleteSpread(delta glue.Dimen) (*node.List, error) {
	if err := lm.finish(); err != nil {
		return nil, err
	}
	lm.report(lm.list.Spread(delta))
	lm.list.Seal()
	return lm.list, nil
}

func (lm *ListMaker) finish() error {
	if lm.mode.IsMath() {
		if err := checkMathFonts(lm.ctx); err != nil {
			return err
		}
	}
	if lm.mode == DisplayMath && !lm.eqno.IsVoid() {
		lm.list.AddAndAdjust(&node.Glue{Spec: glue.New(0, glue.NewComponent(glue.One, glue.Fil), glue.Component{})})
		lm.list.AddAndAdjust(lm.eqno.Take())
	}
	return nil
}

func checkMathFonts(ctx *Context) error {
	need := []struct {
		family string
		font   node.Font
		params int
	}{
		{"symbol", ctx.SymbolFont, 22},
		{"extension", ctx.ExtensionFont, 13},
	}
	for _, n := range need {
		if n.font == nil {
			return &InsufficientFontsError{Family: n.family, Need: n.params, Have: -1}
		}
		if have := n.font.ParamCount(); have < n.params {
			return &InsufficientFontsError{Family: n.family, Need: n.params, Have: have}
		}
	}
	return nil
}

func (lm *ListMaker) report(gs node.GlueSet) {
	Report(lm.ctx, lm.list, gs)
}

// Report logs a warning when l, packed as gs, is overfull, or underfull or
// tight beyond \hbadness (\vbadness for vlists).
func Report(ctx *Context, l *node.List, gs node.GlueSet) {
	kind := "hbox"
	fuzz, limit := ctx.Params.HFuzz, ctx.Params.HBadness
	if l.Kind() == node.Vertical {
		kind = "vbox"
		fuzz, limit = ctx.Params.VFuzz, ctx.Params.VBadness
	}
	log := ctx.Log()
	switch {
	case gs.Overfull > fuzz:
		log.Warn("overfull box", zap.String("box", kind), zap.Stringer("by", gs.Overfull))
	case gs.Sign != node.Shrinking && gs.Badness > limit:
		log.Warn("underfull box", zap.String("box", kind), zap.Int("badness", gs.Badness))
	case gs.Sign == node.Shrinking && gs.Overfull == 0 && gs.Badness > limit:
		log.Warn("tight box", zap.String("box", kind), zap.Int("badness", gs.Badness))
	}
}
