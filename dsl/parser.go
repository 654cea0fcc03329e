// Package dsl parses quire scripts into a syntax tree. The grammar only
// fixes the outline (sections, blocks, commands with loose arguments);
// what a command means is decided by the layout package.
package dsl

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var documentParser = participle.MustBuild[Document](
	participle.Lexer(quireLexer),
	participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
)

// ParseError 是带位置的语法错误。
type ParseError struct {
	Pos lexer.Position
	Msg string
}

func (e *ParseError) Error() string {
	if e.Pos.Filename != "" {
		return fmt.Sprintf("%s 第 %d 行第 %d 列: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Msg)
	}
	return fmt.Sprintf("第 %d 行第 %d 列: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Parse reads a script from r.
func Parse(r io.Reader) (*Document, error) {
	return parseNamed("", r)
}

// ParseString reads a script held in memory.
func ParseString(input string) (*Document, error) {
	doc, err := documentParser.ParseString("", input)
	return doc, wrapError(err)
}

// ParseFile reads the script at path; errors carry the file name.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseNamed(path, f)
}

func parseNamed(name string, r io.Reader) (*Document, error) {
	doc, err := documentParser.Parse(name, r)
	return doc, wrapError(err)
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	var perr participle.Error
	if errors.As(err, &perr) {
		return &ParseError{Pos: perr.Position(), Msg: perr.Message()}
	}
	return err
}
