package node

import (
	"math"

	"github.com/ByLCY/quire/glue"
)

// Sign tells whether a list's glue is stretched or shrunk.
type Sign int8

const (
	Normal Sign = iota
	Stretching
	Shrinking
)

// GlueSet records how the glue of a packed list is set: every glue of
// order Order is stretched or shrunk by Ratio times its stretch or shrink.
type GlueSet struct {
	Sign  Sign
	Order int8
	Ratio float64
	// Badness is TeX's badness of the setting; 1000000 marks an overfull
	// box.
	Badness int
	// Overfull is how much the material sticks out when the shrink ran
	// out.
	Overfull glue.Dimen
}

// InfBad is the badness of a setting that cannot be stretched at all.
const InfBad = 10000

// Badness approximates 100(t/s)^3 the way TeX does.
func Badness(t, s glue.Dimen) int {
	if t == 0 {
		return 0
	}
	if s <= 0 {
		return InfBad
	}
	var r int64
	switch {
	case t <= 7230584:
		r = int64(t) * 297 / int64(s)
	case s >= 1663497:
		r = int64(t) / (int64(s) / 297)
	default:
		r = int64(t)
	}
	if r > 1290 {
		return InfBad
	}
	return int((r*r*r + 0o400000) / 0o1000000)
}

// totals sums the list along its direction. The accumulator's length is the
// natural size, its buckets the glue.
func (l *List) totals() (w glue.WideGlue, cross, depth glue.Dimen) {
	if l.dir == Horizontal {
		for _, n := range l.items {
			if g, ok := GlueSpec(n); ok {
				w.AddGlue(g)
			} else {
				w.AddDimen(n.Width())
			}
			cross = max(cross, n.Height()-n.Shift())
			depth = max(depth, n.Depth()+n.Shift())
		}
		return w, cross, depth
	}
	var d glue.Dimen
	for _, n := range l.items {
		adv, nd, ok := vertical(n)
		if !ok {
			continue
		}
		w.AddDimen(d)
		if g, isGlue := GlueSpec(n); isGlue {
			w.AddGlue(g)
		} else {
			w.AddDimen(adv)
		}
		d = nd
		cross = max(cross, n.Width()+n.Shift())
	}
	return w, cross, d
}

// Flex returns the collapsed total of the list: natural size plus the
// highest-order stretch and shrink.
func (l *List) Flex() glue.Glue {
	w, _, _ := l.totals()
	return w.ToGlue()
}

// Natural recomputes width, height and depth from the items and resets the
// glue setting.
func (l *List) Natural() {
	w, cross, depth := l.totals()
	l.setSizes(w.Length, cross, depth)
	l.set = GlueSet{}
}

// To packs the list to an exact size along its direction: the width of an
// hlist, the height of a vlist.
func (l *List) To(size glue.Dimen) GlueSet {
	w, cross, depth := l.totals()
	l.setSizes(size, cross, depth)
	l.set = setGlue(&w, size-w.Length)
	return l.set
}

// Spread packs the list to its natural size plus delta.
func (l *List) Spread(delta glue.Dimen) GlueSet {
	w, _, _ := l.totals()
	return l.To(w.Length + delta)
}

func (l *List) setSizes(along, cross, depth glue.Dimen) {
	if l.dir == Horizontal {
		l.width, l.height, l.depth = along, cross, depth
		return
	}
	l.height, l.width, l.depth = along, cross, depth
}

func setGlue(w *glue.WideGlue, x glue.Dimen) GlueSet {
	switch {
	case x > 0:
		o := w.HighestStretchOrder()
		total := glue.Dimen(w.StretchAt(o))
		gs := GlueSet{Order: o}
		if total != 0 {
			gs.Sign = Stretching
			gs.Ratio = float64(x) / float64(total)
		}
		if o == glue.Finite {
			gs.Badness = Badness(x, total)
		}
		return gs
	case x < 0:
		o := w.HighestShrinkOrder()
		total := glue.Dimen(w.ShrinkAt(o))
		gs := GlueSet{Order: o}
		if total != 0 {
			gs.Sign = Shrinking
			gs.Ratio = float64(-x) / float64(total)
		}
		if o == glue.Finite {
			if -x > total {
				gs.Badness = 1000000
				gs.Overfull = -x - total
				if total != 0 {
					gs.Ratio = 1
				}
			} else {
				gs.Badness = Badness(-x, total)
			}
		}
		return gs
	}
	return GlueSet{}
}

// SetSize returns the size glue g takes under gs, as placed by the output
// routines.
func (gs GlueSet) SetSize(g glue.Glue) glue.Dimen {
	switch gs.Sign {
	case Stretching:
		if g.Stretch.Order == gs.Order {
			return g.Length + glue.Dimen(math.Round(gs.Ratio*float64(g.Stretch.Value)))
		}
	case Shrinking:
		if g.Shrink.Order == gs.Order {
			return g.Length - glue.Dimen(math.Round(gs.Ratio*float64(g.Shrink.Value)))
		}
	}
	return g.Length
}
