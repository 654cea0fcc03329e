package glue

import "strings"

// Glue is a natural length with a stretch and a shrink component. It is the
// collapsed form used for registers, font parameters and glue nodes; sums of
// glue go through WideGlue.
type Glue struct {
	Length  Dimen
	Stretch Component
	Shrink  Component
}

// Zero is 0pt plus 0pt minus 0pt.
var Zero Glue

// New returns length plus stretch minus shrink.
func New(length Dimen, stretch, shrink Component) Glue {
	return Glue{Length: length, Stretch: stretch, Shrink: shrink}
}

// Rigid returns glue of the given length without flexibility.
func Rigid(length Dimen) Glue {
	return Glue{Length: length}
}

// Equal is structural equality.
func (g Glue) Equal(o Glue) bool {
	return g.Length == o.Length && g.Stretch.Eq(o.Stretch) && g.Shrink.Eq(o.Shrink)
}

// IsZero reports whether g equals Zero (the \zeroskip test used for
// \spaceskip and \xspaceskip).
func (g Glue) IsZero() bool {
	return g.Equal(Zero)
}

// StretchOrder is \gluestretchorder.
func (g Glue) StretchOrder() int { return int(g.Stretch.Order) }

// ShrinkOrder is \glueshrinkorder.
func (g Glue) ShrinkOrder() int { return int(g.Shrink.Order) }

// String renders g like TeX's print_spec, leaving out zero stretch and
// shrink.
func (g Glue) String() string {
	var sb strings.Builder
	g.Length.Component().Format(&sb, 'p', 't')
	if !g.Stretch.IsZero() {
		sb.WriteString(" plus ")
		g.Stretch.Format(&sb, 'p', 't')
	}
	if !g.Shrink.IsZero() {
		sb.WriteString(" minus ")
		g.Shrink.Format(&sb, 'p', 't')
	}
	return sb.String()
}
