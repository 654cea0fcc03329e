package listmaker

import (
	"unicode"

	"go.uber.org/zap"

	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/node"
)

// IgnoreDepth is the \prevdepth value that suppresses interline glue.
const IgnoreDepth glue.Dimen = -1000 * glue.One

// Params are the TeX parameters the list builders read.
type Params struct {
	SpaceSkip     glue.Glue
	XSpaceSkip    glue.Glue
	ParFillSkip   glue.Glue
	ParSkip       glue.Glue
	BaselineSkip  glue.Glue
	LineSkip      glue.Glue
	LeftSkip      glue.Glue
	RightSkip     glue.Glue
	ParIndent     glue.Dimen
	HSize         glue.Dimen
	VSize         glue.Dimen
	LineSkipLimit glue.Dimen
	HFuzz         glue.Dimen
	VFuzz         glue.Dimen
	HBadness      int
	VBadness      int
	// Penalties the line breaker puts between lines.
	InterLinePenalty int
	ClubPenalty      int
	WidowPenalty     int
	BrokenPenalty    int
	// HyphenChar is the character put at the end of a hyphenated line.
	HyphenChar rune
}

// DefaultParams returns plain TeX's settings with a 345pt text block.
func DefaultParams() Params {
	return Params{
		ParFillSkip:  glue.New(0, glue.NewComponent(glue.One, glue.Fil), glue.Component{}),
		ParSkip:      glue.New(0, glue.Pt(1).Component(), glue.Component{}),
		BaselineSkip: glue.Rigid(glue.Pt(12)),
		LineSkip:     glue.Rigid(glue.Pt(1)),
		ParIndent:    glue.Pt(20),
		HSize:        glue.Pt(345),
		VSize:        glue.Pt(550),
		HFuzz:        6554, // 0.1pt
		VFuzz:        6554, // 0.1pt
		HBadness:     1000,
		VBadness:     1000,
		HyphenChar:   '-',

		ClubPenalty:   150,
		WidowPenalty:  150,
		BrokenPenalty: 100,
	}
}

// LineBreaker turns a finished paragraph into lines. par is horizontal and
// ends with \penalty10000\parfillskip. The result is a vertical list of
// hboxes packed to the line width, with penalties between them and no
// interline glue; the enclosing vertical list adds that.
type LineBreaker interface {
	Break(par *node.List, ctx *Context) (*node.List, error)
}

// Context is everything list building needs besides the list itself. It is
// passed to ListMakers explicitly; lists never point back at it.
type Context struct {
	Params Params
	// SFCode gives the \sfcode of a character. Nil means DefaultSFCode.
	SFCode  func(r rune) int
	Breaker LineBreaker
	Logger  *zap.Logger
	// SymbolFont and ExtensionFont are \textfont2 and \textfont3.
	SymbolFont    node.Font
	ExtensionFont node.Font
}

// NewContext returns a context with DefaultParams and a no-op logger.
func NewContext() *Context {
	return &Context{Params: DefaultParams(), Logger: zap.NewNop()}
}

func (c *Context) Log() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Context) sfcode(r rune) int {
	if c.SFCode != nil {
		return c.SFCode(r)
	}
	return DefaultSFCode(r)
}

// DefaultSFCode is plain TeX's \nonfrenchspacing table.
func DefaultSFCode(r rune) int {
	switch r {
	case '.', '?', '!':
		return 3000
	case ':':
		return 2000
	case ';':
		return 1500
	case ',':
		return 1250
	case ')', '\'', ']':
		return 0
	}
	if unicode.IsUpper(r) {
		return 999
	}
	return 1000
}

// FrenchSpacing is \frenchspacing: every character has code 1000.
func FrenchSpacing(r rune) int {
	if unicode.IsUpper(r) {
		return 999
	}
	return 1000
}
