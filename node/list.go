package node

import (
	"errors"
	"iter"
	"slices"

	"github.com/ByLCY/quire/glue"
)

// ErrEmptyList is returned when the last node of an empty list is removed.
var ErrEmptyList = errors.New("node: list underflow")

// Direction of a list.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// List is an ordered run of nodes: an hlist or a vlist. A List is also a
// node, so boxes nest.
//
// Item order is typeset order. Width, height and depth are aggregates kept
// by AddAndAdjust and Natural, or set explicitly by To, Spread and the
// setters. Once sealed the items can no longer change; dimension overrides
// still apply.
type List struct {
	dir    Direction
	items  []Node
	width  glue.Dimen
	height glue.Dimen
	depth  glue.Dimen
	shift  glue.Dimen
	move   glue.Dimen
	set    GlueSet
	sealed bool
}

// NewList returns an empty list running in direction d.
func NewList(d Direction) *List {
	return &List{dir: d}
}

// NewHList returns an empty horizontal list holding nodes.
func NewHList(nodes ...Node) *List {
	l := &List{dir: Horizontal}
	for _, n := range nodes {
		l.AddAndAdjust(n)
	}
	return l
}

// NewVList returns an empty vertical list holding nodes.
func NewVList(nodes ...Node) *List {
	l := &List{dir: Vertical}
	for _, n := range nodes {
		l.AddAndAdjust(n)
	}
	return l
}

func (l *List) Kind() Direction { return l.dir }

func (l *List) Width() glue.Dimen {
	if l == nil {
		return 0
	}
	return l.width
}

func (l *List) Height() glue.Dimen {
	if l == nil {
		return 0
	}
	return l.height
}

func (l *List) Depth() glue.Dimen {
	if l == nil {
		return 0
	}
	return l.depth
}

func (l *List) Shift() glue.Dimen {
	if l == nil {
		return 0
	}
	return l.shift
}

// Move is the displacement along the direction of the enclosing list.
func (l *List) Move() glue.Dimen {
	if l == nil {
		return 0
	}
	return l.move
}

func (*List) isNode() {}

func (l *List) SetWidth(d glue.Dimen)  { l.width = d }
func (l *List) SetHeight(d glue.Dimen) { l.height = d }
func (l *List) SetDepth(d glue.Dimen)  { l.depth = d }
func (l *List) SetShift(d glue.Dimen)  { l.shift = d }
func (l *List) SetMove(d glue.Dimen)   { l.move = d }

// GlueSet returns how the list's glue was set by the last packing.
func (l *List) GlueSet() GlueSet {
	if l == nil {
		return GlueSet{}
	}
	return l.set
}

// Len returns the number of nodes.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

func (l *List) IsEmpty() bool { return l.Len() == 0 }

// At returns the i-th node.
func (l *List) At(i int) Node { return l.items[i] }

// All iterates over the nodes in typeset order.
func (l *List) All() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		if l == nil {
			return
		}
		for i, n := range l.items {
			if !yield(i, n) {
				return
			}
		}
	}
}

// Nodes returns a copy of the node slice.
func (l *List) Nodes() []Node {
	if l == nil {
		return nil
	}
	return slices.Clone(l.items)
}

// LastNode returns the last node or nil if the list is empty.
func (l *List) LastNode() Node {
	if l.Len() == 0 {
		return nil
	}
	return l.items[len(l.items)-1]
}

// Sealed reports whether the items are frozen.
func (l *List) Sealed() bool { return l.sealed }

// Seal freezes the items. The caller that sealed the list owns it.
func (l *List) Seal() { l.sealed = true }

func (l *List) mutable() {
	if l.sealed {
		panic("node: structural change of a sealed list")
	}
}

// Add appends n without touching the aggregate dimensions.
func (l *List) Add(n Node) {
	l.mutable()
	l.items = append(l.items, n)
}

// AddAndAdjust appends n and folds it into width, height and depth.
func (l *List) AddAndAdjust(n Node) {
	l.mutable()
	l.items = append(l.items, n)
	if l.dir == Horizontal {
		l.width += n.Width()
		l.height = max(l.height, n.Height()-n.Shift())
		l.depth = max(l.depth, n.Depth()+n.Shift())
		return
	}
	adv, d, ok := vertical(n)
	if !ok {
		return
	}
	l.height += l.depth + adv
	l.depth = d
	l.width = max(l.width, n.Width()+n.Shift())
}

// vertical returns how n advances a vertical list and the depth it leaves
// behind. ok is false for nodes that take no vertical space.
func vertical(n Node) (adv, depth glue.Dimen, ok bool) {
	switch n := n.(type) {
	case *Glue, *Space, *Kern:
		return n.Width(), 0, true
	case *List, *Rule, *Char:
		return n.Height(), n.Depth(), true
	}
	return 0, 0, false
}

// RemoveLast removes and returns the last node. An empty list is an
// underflow, reported as ErrEmptyList. The aggregates are not recomputed.
func (l *List) RemoveLast() (Node, error) {
	l.mutable()
	if len(l.items) == 0 {
		return nil, ErrEmptyList
	}
	n := l.items[len(l.items)-1]
	l.items[len(l.items)-1] = nil
	l.items = l.items[:len(l.items)-1]
	return n, nil
}

// ReplaceLast swaps the last node for n.
func (l *List) ReplaceLast(n Node) error {
	l.mutable()
	if len(l.items) == 0 {
		return ErrEmptyList
	}
	l.items[len(l.items)-1] = n
	return nil
}

// InsertAt inserts nodes before position i.
func (l *List) InsertAt(i int, nodes ...Node) {
	l.mutable()
	l.items = slices.Insert(l.items, i, nodes...)
}

// SplitAt cuts the list before position i and returns the tail as a new
// list of the same direction. Both parts get their natural dimensions.
func (l *List) SplitAt(i int) *List {
	l.mutable()
	tail := &List{dir: l.dir, items: slices.Clone(l.items[i:])}
	clear(l.items[i:])
	l.items = l.items[:i]
	l.Natural()
	tail.Natural()
	return tail
}

// Copy returns a deep copy. A nil list copies to nil.
func (l *List) Copy() *List {
	if l == nil {
		return nil
	}
	c := *l
	c.items = make([]Node, len(l.items))
	for i, n := range l.items {
		c.items[i] = Copy(n)
	}
	return &c
}
