package node

import "github.com/ByLCY/quire/glue"

// CharMetrics are the dimensions of one character.
type CharMetrics struct {
	Width  glue.Dimen
	Height glue.Dimen
	Depth  glue.Dimen
	Italic glue.Dimen
}

// Font is the font service the node layer consults. Fonts arrive fully
// loaded; lookups never do I/O.
type Font interface {
	Name() string
	Metrics(r rune) (CharMetrics, bool)
	// Ligature returns the character replacing the pair left, right.
	Ligature(left, right rune) (rune, bool)
	// Kern returns the implicit kern between left and right, zero if none.
	Kern(left, right rune) glue.Dimen
	// Space is the interword glue (font parameters 2 to 4).
	Space() glue.Glue
	// ExtraSpace is added after sentence ends (font parameter 7).
	ExtraSpace() glue.Dimen
	// ParamCount is the number of font parameters, checked by math mode.
	ParamCount() int
}
