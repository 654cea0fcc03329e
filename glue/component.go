// Package glue implements TeX's fixed-point lengths and the stretchable,
// shrinkable glue built from them.
//
// A Dimen is a plain length in scaled points (1pt = 65536sp). A Component
// couples a magnitude with an order of infinity: order 0 is finite, orders
// 1, 2 and 3 are fil, fill and filll. A Glue is the collapsed, at-rest form
// (one component per side); a WideGlue keeps one bucket per order while many
// glues are being summed.
package glue

import "strings"

// Orders of infinity.
const (
	Finite int8 = 0
	Fil    int8 = 1
	Fill   int8 = 2
	Filll  int8 = 3

	// MaxOrder is the highest order a WideGlue keeps a bucket for.
	MaxOrder = 4
)

// Component is a signed fixed-point magnitude paired with an order of
// infinity. The zero value is a finite zero.
type Component struct {
	Value int64
	Order int8
}

// NewComponent returns a component of the given value and order.
func NewComponent(value int64, order int8) Component {
	return Component{Value: value, Order: order}
}

// Eq reports whether both order and value are equal.
func (c Component) Eq(o Component) bool {
	return c.Order == o.Order && c.Value == o.Value
}

// Ne is the negation of Eq.
func (c Component) Ne(o Component) bool {
	return !c.Eq(o)
}

// Gt compares with order dominance: a higher order always wins, whatever the
// magnitudes are.
func (c Component) Gt(o Component) bool {
	return (c.Order == o.Order && c.Value > o.Value) || c.Order > o.Order
}

// Lt is Gt with the operands swapped.
func (c Component) Lt(o Component) bool {
	return o.Gt(c)
}

func (c Component) Ge(o Component) bool {
	return !c.Lt(o)
}

func (c Component) Le(o Component) bool {
	return !c.Gt(o)
}

// IsZero reports whether the magnitude is zero. The order is ignored.
func (c Component) IsZero() bool {
	return c.Value == 0
}

// Negate returns the component with its value negated.
func (c Component) Negate() Component {
	return Component{Value: -c.Value, Order: c.Order}
}

// String renders the component the way \the does, with "pt" for order 0.
func (c Component) String() string {
	var sb strings.Builder
	c.Format(&sb, 'p', 't')
	return sb.String()
}
