package dsl

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// quireLexer 的数字记号连同单位一起读入，`-1pt`、`1fil` 都是单个记号。
// 占位符 `${...}` 在字符串之外也可以出现，展开留给排版阶段。
var quireLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n+`},
	{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "HashComment", Pattern: `#[^\n]*`},
	{Name: "Placeholder", Pattern: `\$\{[^{}\n]*\}`},
	{Name: "Number", Pattern: `-?(?:\d+\.\d*|\.\d+|\d+)(?:filll|fill|fil|pt|sp|bp|mm|cm|in|pc|dd|cc|%)?`},
	{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	{Name: "Symbol", Pattern: `[][(),.=+\-*/%<>!?;:~]`},
	{Name: "LBrace", Pattern: `{`},
	{Name: "RBrace", Pattern: `}`},
})

var (
	tokenName = map[lexer.TokenType]string{}

	newlineTok = tokenType("Newline")
	lbraceTok  = tokenType("LBrace")
	rbraceTok  = tokenType("RBrace")
	symbolTok  = tokenType("Symbol")
	stringTok  = tokenType("String")
)

func init() {
	for name, tt := range quireLexer.Symbols() {
		tokenName[tt] = name
	}
}

func tokenType(name string) lexer.TokenType {
	tt, ok := quireLexer.Symbols()[name]
	if !ok {
		panic("dsl: no token " + name)
	}
	return tt
}

// Lexeme is one token of a command argument list or an unquoted value.
// Type is the lexer rule name: Ident, Number, String, Placeholder or
// Symbol. Strings are unquoted in Value and kept verbatim in Raw.
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

// IsPlaceholder reports whether the lexeme is a `${path}` reference.
func (l *Lexeme) IsPlaceholder() bool {
	return l != nil && l.Type == "Placeholder"
}

// Parse reads a single argument. Arguments run until the end of the line,
// a `;` or a brace.
func (l *Lexeme) Parse(lex *lexer.PeekingLexer) error {
	if endsArgs(lex.Peek(), false) {
		return participle.NextMatch
	}
	return l.take(lex)
}

func (l *Lexeme) take(lex *lexer.PeekingLexer) error {
	tok := lex.Next()
	val := tok.Value
	if tok.Type == stringTok {
		s, err := strconv.Unquote(tok.Value)
		if err != nil {
			return &ParseError{Pos: tok.Pos, Msg: fmt.Sprintf("字符串 %s 无效", tok.Value)}
		}
		val = s
	}
	name, ok := tokenName[tok.Type]
	if !ok {
		name = fmt.Sprintf("#%d", tok.Type)
	}
	*l = Lexeme{Type: name, Value: val, Raw: tok.Value, Pos: tok.Pos}
	return nil
}

// endsArgs reports whether tok closes an argument list. Inside a value
// list `,` and `]` also separate items.
func endsArgs(tok *lexer.Token, inList bool) bool {
	if tok == nil || tok.EOF() {
		return true
	}
	switch tok.Type {
	case newlineTok, lbraceTok, rbraceTok:
		return true
	case symbolTok:
		switch tok.Value {
		case ";":
			return true
		case ",", "]":
			return inList
		}
	}
	return false
}
