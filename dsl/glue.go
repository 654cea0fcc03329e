package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/quire/glue"
)

var (
	specLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Sign", Pattern: `[+-]`},
		{Name: "Digits", Pattern: `\d+`},
		{Name: "Point", Pattern: `[.,]`},
		{Name: "Keyword", Pattern: `[A-Za-z]+`},
	})

	glueParser = participle.MustBuild[GlueSpec](
		participle.Lexer(specLexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Keyword"),
	)
	dimenParser = participle.MustBuild[DimenSpec](
		participle.Lexer(specLexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Keyword"),
	)
)

// GlueSpec is the TeX syntax of a skip: <dimen> [plus <dimen>] [minus <dimen>].
type GlueSpec struct {
	Length  DimenSpec  `parser:"@@"`
	Stretch *DimenSpec `parser:"( 'plus' @@ )?"`
	Shrink  *DimenSpec `parser:"( 'minus' @@ )?"`
}

// DimenSpec is a signed decimal number with a unit. The unit may be one of
// the fil units, written "fil", "fill", "filll" or with spaces before the
// extra l's as TeX allows.
type DimenSpec struct {
	Signs    []string `parser:"@Sign*"`
	Integer  string   `parser:"@Digits?"`
	Point    bool     `parser:"@Point?"`
	Fraction string   `parser:"@Digits?"`
	Unit     string   `parser:"@Keyword"`
	Ls       []string `parser:"@'l'*"`
}

// Component converts the spec with TeX's scan_dimen arithmetic.
func (d *DimenSpec) Component() (glue.Component, error) {
	negative := false
	for _, s := range d.Signs {
		if s == "-" {
			negative = !negative
		}
	}
	if d.Integer == "" && d.Fraction == "" {
		return glue.Component{}, fmt.Errorf("dsl: missing number before %q", d.Unit)
	}
	if d.Fraction != "" && !d.Point {
		return glue.Component{}, fmt.Errorf("dsl: missing decimal point in %s%s", d.Integer, d.Fraction)
	}
	var integer int64
	if d.Integer != "" {
		n, err := strconv.ParseInt(d.Integer, 10, 64)
		if err != nil || n > 1<<31-1 {
			return glue.Component{}, fmt.Errorf("dsl: number too big %q", d.Integer)
		}
		integer = n
	}
	fraction := d.Fraction
	unit := strings.ToLower(d.Unit) + strings.Repeat("l", len(d.Ls))
	if len(d.Ls) > 0 && glue.FilOrder(unit) < 0 {
		return glue.Component{}, fmt.Errorf("dsl: illegal unit %q", unit)
	}
	c, err := glue.Scale(negative, integer, fraction, unit)
	if err != nil {
		return glue.Component{}, fmt.Errorf("dsl: %w", err)
	}
	return c, nil
}

// Glue converts the spec. The natural length must be finite.
func (g *GlueSpec) Glue() (glue.Glue, error) {
	length, err := g.Length.Component()
	if err != nil {
		return glue.Glue{}, err
	}
	if length.Order != glue.Finite {
		return glue.Glue{}, fmt.Errorf("dsl: natural width cannot be %s", length)
	}
	out := glue.Glue{Length: glue.Dimen(length.Value)}
	if g.Stretch != nil {
		if out.Stretch, err = g.Stretch.Component(); err != nil {
			return glue.Glue{}, err
		}
	}
	if g.Shrink != nil {
		if out.Shrink, err = g.Shrink.Component(); err != nil {
			return glue.Glue{}, err
		}
	}
	return out, nil
}

// ParseGlue parses a skip such as "1pt plus 2fil minus 3pt".
func ParseGlue(s string) (glue.Glue, error) {
	spec, err := glueParser.ParseString("", s)
	if err != nil {
		return glue.Glue{}, fmt.Errorf("dsl: bad glue %q: %w", s, err)
	}
	return spec.Glue()
}

// ParseDimenSpec parses a length that may be infinite, such as "-1.5fill".
func ParseDimenSpec(s string) (glue.Component, error) {
	spec, err := dimenParser.ParseString("", s)
	if err != nil {
		return glue.Component{}, fmt.Errorf("dsl: bad dimension %q: %w", s, err)
	}
	return spec.Component()
}

// ParseDimen parses a finite length such as "12pt" or "2.5cm".
func ParseDimen(s string) (glue.Dimen, error) {
	c, err := ParseDimenSpec(s)
	if err != nil {
		return 0, err
	}
	if c.Order != glue.Finite {
		return 0, fmt.Errorf("dsl: %q is not a finite dimension", s)
	}
	return glue.Dimen(c.Value), nil
}
