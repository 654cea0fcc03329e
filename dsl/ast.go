package dsl

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Document is a whole script:
//
//	doc Name v1 {
//	  meta { ... }
//	  resources { ... }
//	  page A4 margin 20mm { ... }
//	}
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'doc' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

type Section struct {
	Meta      *MetaSection      `parser:"  @@"`
	Resources *ResourcesSection `parser:"| @@"`
	Page      *PageSection      `parser:"| @@"`
}

// Kind names the section for error messages.
func (s *Section) Kind() string {
	switch {
	case s == nil:
	case s.Meta != nil:
		return "meta"
	case s.Resources != nil:
		return "resources"
	case s.Page != nil:
		return "page"
	}
	return "unknown"
}

type MetaSection struct {
	Block *Block `parser:"'meta' @@"`
}

type ResourcesSection struct {
	Block *Block `parser:"'resources' @@"`
}

// PageSection is one page; its block is the page's vertical list.
type PageSection struct {
	Spec  PageSpec `parser:"'page' @@"`
	Block *Block   `parser:"@@"`
}

// PageSpec is the page header: a paper name or "custom", then loose
// parameters such as "landscape" or "margin 20mm".
type PageSpec struct {
	Size   string    `parser:"@Ident"`
	Params []*Lexeme `parser:"@@*"`
}

// Block is a braced group. Statements are separated by newlines or `;`.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

type Statement struct {
	Assignment *Assignment  `parser:"  @@"`
	Command    *Command     `parser:"| @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Assignment is `key: value`, used in meta and in font declarations.
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Command is a name, loose arguments and an optional body, e.g.
// `vbox to 100pt { ... }` or `kern -1pt`.
type Command struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Lexeme      `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value is the right-hand side of an assignment. Anything that is not a
// quoted string or a list is kept as loose tokens, so `10pt` and
// `3.33pt plus 1pt` both end up in Expr.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Array  *ArrayValue    `parser:"| @@"`
	Expr   *Expression    `parser:"| @@"`
}

// ArrayValue is `[a, b]`; newlines separate items as well as commas.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// Expression is an unquoted value, token by token.
type Expression struct {
	Parts []*Lexeme
}

func (e *Expression) Parse(lex *lexer.PeekingLexer) error {
	var parts []*Lexeme
	for !endsArgs(lex.Peek(), true) {
		l := &Lexeme{}
		if err := l.take(lex); err != nil {
			return err
		}
		parts = append(parts, l)
	}
	if len(parts) == 0 {
		return participle.NextMatch
	}
	e.Parts = parts
	return nil
}

// StringLiteral is a quoted string with Go escapes, unquoted on capture.
type StringLiteral string

func (s *StringLiteral) Capture(values []string) error {
	if len(values) != 1 {
		return fmt.Errorf("字符串记号数量错误: %d", len(values))
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return fmt.Errorf("字符串 %s 无效: %w", values[0], err)
	}
	*s = StringLiteral(val)
	return nil
}
