package dsl

import "strings"

// Text flattens a scalar value to its source text.
func (v *Value) Text() string {
	if v == nil {
		return ""
	}
	switch {
	case v.String != nil:
		return string(*v.String)
	case v.Expr != nil:
		return joinLexemes(v.Expr.Parts)
	default:
		return ""
	}
}

// Strings flattens an array value; a scalar gives a single element.
func (v *Value) Strings() []string {
	if v == nil {
		return nil
	}
	if v.Array != nil {
		out := make([]string, 0, len(v.Array.Values))
		for _, item := range v.Array.Values {
			if s := item.Text(); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := v.Text(); s != "" {
		return []string{s}
	}
	return nil
}

// Text concatenates the text literals of a block, ignoring commands.
func (b *Block) Text() string {
	if b == nil {
		return ""
	}
	var builder strings.Builder
	for _, stmt := range b.Statements {
		if stmt.Text != nil {
			builder.WriteString(string(stmt.Text.Value))
		}
	}
	return builder.String()
}

// Assignments returns the key: value pairs of a block keyed by lower-case
// key. Later assignments win.
func (b *Block) Assignments() map[string]*Value {
	out := map[string]*Value{}
	if b == nil {
		return out
	}
	for _, stmt := range b.Statements {
		if stmt.Assignment != nil {
			out[strings.ToLower(stmt.Assignment.Key)] = stmt.Assignment.Value
		}
	}
	return out
}

// Arg returns the value of the i-th argument, or "" past the end.
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i].Value
}

// ArgText joins the arguments from index i on with single spaces, the form
// the glue and dimension parsers read.
func (c *Command) ArgText(i int) string {
	if i >= len(c.Args) {
		return ""
	}
	return joinLexemes(c.Args[i:])
}

// Keyword looks for a bare keyword argument such as "to" or "spread" and
// returns the argument that follows it.
func (c *Command) Keyword(name string) (string, bool) {
	for i, a := range c.Args {
		if a.Type == "Ident" && strings.EqualFold(a.Value, name) && i+1 < len(c.Args) {
			return c.Args[i+1].Value, true
		}
	}
	return "", false
}

// HasFlag reports whether a bare identifier argument is present.
func (c *Command) HasFlag(name string) bool {
	for _, a := range c.Args {
		if a.Type == "Ident" && strings.EqualFold(a.Value, name) {
			return true
		}
	}
	return false
}

func joinLexemes(parts []*Lexeme) string {
	var builder strings.Builder
	for i, part := range parts {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(part.Value)
	}
	return builder.String()
}
