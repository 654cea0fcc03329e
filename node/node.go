// Package node holds the material TeX builds boxes from: characters, glue,
// kerns, rules, discretionaries and nested lists.
//
// Node is a closed sum type. Every variant lives in this package and the
// unexported marker method keeps others out, so a type switch over the
// variants listed in Kind is exhaustive.
package node

import (
	"fmt"

	"github.com/ByLCY/quire/glue"
)

// Node is one unit of typeset material.
type Node interface {
	Width() glue.Dimen
	Height() glue.Dimen
	Depth() glue.Dimen
	// Shift is the displacement perpendicular to the list direction. Only
	// boxes can be shifted.
	Shift() glue.Dimen
	isNode()
}

// Running marks a rule dimension that is taken from the enclosing box.
const Running glue.Dimen = -1 << 30

// Char is a character in a font.
type Char struct {
	Font    Font
	Rune    rune
	Metrics CharMetrics
}

// NewChar looks r up in f. It reports false when the font has no such
// character.
func NewChar(f Font, r rune) (*Char, bool) {
	m, ok := f.Metrics(r)
	if !ok {
		return nil, false
	}
	return &Char{Font: f, Rune: r, Metrics: m}, true
}

func (c *Char) Width() glue.Dimen  { return c.Metrics.Width }
func (c *Char) Height() glue.Dimen { return c.Metrics.Height }
func (c *Char) Depth() glue.Dimen  { return c.Metrics.Depth }
func (c *Char) Shift() glue.Dimen  { return 0 }
func (*Char) isNode()              {}

// Space is interword glue produced for a space token.
type Space struct {
	Spec glue.Glue
}

func (s *Space) Width() glue.Dimen  { return s.Spec.Length }
func (s *Space) Height() glue.Dimen { return 0 }
func (s *Space) Depth() glue.Dimen  { return 0 }
func (s *Space) Shift() glue.Dimen  { return 0 }
func (*Space) isNode()              {}

// Glue is explicit glue (\hskip, \vskip, parameter glue).
type Glue struct {
	Spec glue.Glue
	// Name is the parameter the glue came from, e.g. "parfillskip". Empty for
	// explicit skips.
	Name string
}

func (g *Glue) Width() glue.Dimen  { return g.Spec.Length }
func (g *Glue) Height() glue.Dimen { return 0 }
func (g *Glue) Depth() glue.Dimen  { return 0 }
func (g *Glue) Shift() glue.Dimen  { return 0 }
func (*Glue) isNode()              {}

// Kern is rigid space. Implicit kerns come from the font's kerning program
// and are not explicit.
type Kern struct {
	Size     glue.Dimen
	Explicit bool
}

func (k *Kern) Width() glue.Dimen  { return k.Size }
func (k *Kern) Height() glue.Dimen { return 0 }
func (k *Kern) Depth() glue.Dimen  { return 0 }
func (k *Kern) Shift() glue.Dimen  { return 0 }
func (*Kern) isNode()              {}

// Rule is a solid box. Any dimension may be Running.
type Rule struct {
	W, H, D glue.Dimen
}

func (r *Rule) Width() glue.Dimen  { return unlessRunning(r.W) }
func (r *Rule) Height() glue.Dimen { return unlessRunning(r.H) }
func (r *Rule) Depth() glue.Dimen  { return unlessRunning(r.D) }
func (r *Rule) Shift() glue.Dimen  { return 0 }
func (*Rule) isNode()              {}

func unlessRunning(d glue.Dimen) glue.Dimen {
	if d == Running {
		return 0
	}
	return d
}

// Disc is a discretionary break: Pre ends the line and Post starts the next
// one if the break is taken, NoBreak is typeset otherwise. Nil lists are
// empty.
type Disc struct {
	Pre, Post, NoBreak *List
}

func (d *Disc) Width() glue.Dimen  { return d.NoBreak.Width() }
func (d *Disc) Height() glue.Dimen { return d.NoBreak.Height() }
func (d *Disc) Depth() glue.Dimen  { return d.NoBreak.Depth() }
func (d *Disc) Shift() glue.Dimen  { return 0 }
func (*Disc) isNode()              {}

// Mark carries the token text of \mark.
type Mark struct {
	Tokens string
}

func (*Mark) Width() glue.Dimen  { return 0 }
func (*Mark) Height() glue.Dimen { return 0 }
func (*Mark) Depth() glue.Dimen  { return 0 }
func (*Mark) Shift() glue.Dimen  { return 0 }
func (*Mark) isNode()            {}

// Penalty is the cost of breaking here. 10000 and more forbids a break,
// -10000 and less forces one.
type Penalty struct {
	Value int
}

// Penalty limits.
const (
	Infinite = 10000
	Eject    = -10000
)

func (*Penalty) Width() glue.Dimen  { return 0 }
func (*Penalty) Height() glue.Dimen { return 0 }
func (*Penalty) Depth() glue.Dimen  { return 0 }
func (*Penalty) Shift() glue.Dimen  { return 0 }
func (*Penalty) isNode()            {}

// Whatsit is an extension node the core passes through untouched.
type Whatsit struct {
	Payload any
}

func (*Whatsit) Width() glue.Dimen  { return 0 }
func (*Whatsit) Height() glue.Dimen { return 0 }
func (*Whatsit) Depth() glue.Dimen  { return 0 }
func (*Whatsit) Shift() glue.Dimen  { return 0 }
func (*Whatsit) isNode()            {}

// Kind returns the \showbox name of n's variant.
func Kind(n Node) string {
	switch n := n.(type) {
	case *Char:
		return "char"
	case *Space:
		return "space"
	case *Glue:
		return "glue"
	case *Kern:
		return "kern"
	case *Rule:
		return "rule"
	case *Disc:
		return "discretionary"
	case *Mark:
		return "mark"
	case *Penalty:
		return "penalty"
	case *Whatsit:
		return "whatsit"
	case *List:
		if n.Kind() == Vertical {
			return "vbox"
		}
		return "hbox"
	default:
		panic(fmt.Sprintf("node: unknown variant %T", n))
	}
}

// GlueSpec returns the glue a node carries.
func GlueSpec(n Node) (glue.Glue, bool) {
	switch n := n.(type) {
	case *Glue:
		return n.Spec, true
	case *Space:
		return n.Spec, true
	}
	return glue.Zero, false
}

// IsDiscardable reports whether n vanishes at a line or page break.
func IsDiscardable(n Node) bool {
	switch n.(type) {
	case *Glue, *Space, *Kern, *Penalty:
		return true
	}
	return false
}

// Copy returns a deep copy of n. Fonts and whatsit payloads are shared.
func Copy(n Node) Node {
	switch n := n.(type) {
	case *Char:
		c := *n
		return &c
	case *Space:
		c := *n
		return &c
	case *Glue:
		c := *n
		return &c
	case *Kern:
		c := *n
		return &c
	case *Rule:
		c := *n
		return &c
	case *Disc:
		return &Disc{Pre: n.Pre.Copy(), Post: n.Post.Copy(), NoBreak: n.NoBreak.Copy()}
	case *Mark:
		c := *n
		return &c
	case *Penalty:
		c := *n
		return &c
	case *Whatsit:
		c := *n
		return &c
	case *List:
		return n.Copy()
	default:
		panic(fmt.Sprintf("node: unknown variant %T", n))
	}
}
