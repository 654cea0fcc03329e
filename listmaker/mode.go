package listmaker

import "github.com/ByLCY/quire/node"

// Mode is the state a ListMaker builds its list in.
type Mode int

const (
	Vertical Mode = iota
	InternalVertical
	Horizontal
	RestrictedHorizontal
	Math
	DisplayMath
)

var modeNames = [...]string{
	Vertical:             "vertical mode",
	InternalVertical:     "internal vertical mode",
	Horizontal:           "horizontal mode",
	RestrictedHorizontal: "restricted horizontal mode",
	Math:                 "math mode",
	DisplayMath:          "display math mode",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown mode"
	}
	return modeNames[m]
}

func (m Mode) IsVertical() bool { return m == Vertical || m == InternalVertical }

// IsHorizontal reports whether the mode builds an hlist. Math lists are
// horizontal too.
func (m Mode) IsHorizontal() bool { return !m.IsVertical() }

func (m Mode) IsMath() bool { return m == Math || m == DisplayMath }

func (m Mode) direction() node.Direction {
	if m.IsVertical() {
		return node.Vertical
	}
	return node.Horizontal
}

// Capability is what an operation needs from the current list.
type Capability int

const (
	NeedsVertical Capability = iota
	NeedsHorizontal
	NeedsMath
)

func (c Capability) String() string {
	switch c {
	case NeedsVertical:
		return "vertical"
	case NeedsHorizontal:
		return "horizontal"
	case NeedsMath:
		return "math"
	}
	return "unknown"
}

func (c Capability) offeredBy(m Mode) bool {
	switch c {
	case NeedsVertical:
		return m.IsVertical()
	case NeedsHorizontal:
		return m.IsHorizontal()
	case NeedsMath:
		return m.IsMath()
	}
	return false
}
