package node

import "github.com/ByLCY/quire/glue"

// Box is the content of a box register: a finished list, or void. A void
// box is a normal state (a register never set) and reads as zero
// everywhere.
type Box struct {
	list *List
}

// NewBox wraps l. A nil list gives a void box.
func NewBox(l *List) Box {
	return Box{list: l}
}

// Void returns the empty register value.
func Void() Box { return Box{} }

func (b Box) IsVoid() bool { return b.list == nil }

// List returns the wrapped list, nil when void.
func (b Box) List() *List { return b.list }

func (b Box) Width() glue.Dimen  { return b.list.Width() }
func (b Box) Height() glue.Dimen { return b.list.Height() }
func (b Box) Depth() glue.Dimen  { return b.list.Depth() }
func (b Box) Shift() glue.Dimen  { return b.list.Shift() }
func (b Box) Move() glue.Dimen   { return b.list.Move() }

// Copy returns a box holding a deep copy (\copy).
func (b Box) Copy() Box {
	return Box{list: b.list.Copy()}
}

// Take empties the register and returns its list (\box).
func (b *Box) Take() *List {
	l := b.list
	b.list = nil
	return l
}
