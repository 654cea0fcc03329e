package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/quire/binding"
	"github.com/ByLCY/quire/dsl"
	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/listmaker"
	"github.com/ByLCY/quire/node"
)

// state 是一个编组内的局部状态。花括号结束时恢复外层的字体。
type state struct {
	font     node.Font
	fontName string
}

// with 返回使用 cmd 第一个参数所指字体（若有）的内层状态。
func (b *builder) with(cmd *dsl.Command, st *state) *state {
	inner := *st
	if f, ok := b.fonts[cmd.Arg(0)]; ok {
		inner.font, inner.fontName = f, cmd.Arg(0)
	}
	return &inner
}

// vertical 在竖直模式下解释一个块。文本直接出现时自成一段。
func (b *builder) vertical(lm *listmaker.ListMaker, block *dsl.Block, st *state) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		switch {
		case stmt.Command != nil:
			if err := b.command(lm, stmt.Command, st); err != nil {
				return err
			}
		case stmt.Text != nil:
			if err := b.paragraph(lm, st, true, func(hlm *listmaker.ListMaker) error {
				return b.text(hlm, st, string(stmt.Text.Value))
			}); err != nil {
				return err
			}
		case stmt.Assignment != nil:
			return fmt.Errorf("列表中不支持属性赋值 %s", stmt.Assignment.Key)
		}
	}
	return nil
}

// horizontal 在水平模式（含数学模式）下解释一个块。
func (b *builder) horizontal(lm *listmaker.ListMaker, block *dsl.Block, st *state) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		switch {
		case stmt.Command != nil:
			if err := b.command(lm, stmt.Command, st); err != nil {
				return err
			}
		case stmt.Text != nil:
			if err := b.text(lm, st, string(stmt.Text.Value)); err != nil {
				return err
			}
		case stmt.Assignment != nil:
			return fmt.Errorf("列表中不支持属性赋值 %s", stmt.Assignment.Key)
		}
	}
	return nil
}

// content 按 lm 的模式选择解释方式。
func (b *builder) content(lm *listmaker.ListMaker, block *dsl.Block, st *state) error {
	if lm.Mode().IsVertical() {
		return b.vertical(lm, block, st)
	}
	return b.horizontal(lm, block, st)
}

func (b *builder) command(lm *listmaker.ListMaker, cmd *dsl.Command, st *state) error {
	ex, err := b.expandArgs(cmd)
	if err == nil {
		err = b.dispatch(lm, ex, st)
	}
	if err != nil {
		return fmt.Errorf("第 %d 行 %s: %w", cmd.Pos.Line, cmd.Name, err)
	}
	return nil
}

// expandArgs 把参数中的 ${path} 换成寄存器或数据的值，值按空白拆成多个参数。
func (b *builder) expandArgs(cmd *dsl.Command) (*dsl.Command, error) {
	if !lo.SomeBy(cmd.Args, (*dsl.Lexeme).IsPlaceholder) {
		return cmd, nil
	}
	out := *cmd
	out.Args = make([]*dsl.Lexeme, 0, len(cmd.Args))
	for _, a := range cmd.Args {
		if !a.IsPlaceholder() {
			out.Args = append(out.Args, a)
			continue
		}
		val, ok := binding.Lookup(a.Raw, b.resolver)
		if !ok {
			return nil, fmt.Errorf("无法解析引用 %s", a.Raw)
		}
		for _, field := range strings.Fields(val) {
			typ := "Ident"
			if r := field[0]; r == '-' || r == '.' || unicode.IsDigit(rune(r)) {
				typ = "Number"
			}
			out.Args = append(out.Args, &dsl.Lexeme{Type: typ, Value: field, Raw: field, Pos: a.Pos})
		}
	}
	return &out, nil
}

func (b *builder) dispatch(lm *listmaker.ListMaker, cmd *dsl.Command, st *state) error {
	switch cmd.Name {
	case "par":
		inner := b.with(cmd, st)
		return b.paragraph(lm, inner, !cmd.HasFlag("noindent"), func(hlm *listmaker.ListMaker) error {
			return b.horizontal(hlm, cmd.Block, inner)
		})
	case "hbox", "vbox":
		list, err := b.box(cmd, st)
		if err != nil {
			return err
		}
		shift, err := b.dimenKeyword(cmd, "shift")
		if err != nil {
			return err
		}
		box := node.NewBox(list)
		lm.AddBox(&box, shift)
	case "setbox":
		return b.setbox(cmd, st)
	case "box", "copy":
		return b.useBox(lm, cmd)
	case "showbox":
		box := b.boxes[cmd.Arg(0)]
		if box == nil || box.IsVoid() {
			b.log.Info("showbox", zap.String("name", cmd.Arg(0)), zap.Bool("void", true))
			return nil
		}
		b.log.Info("showbox", zap.String("name", cmd.Arg(0)), zap.Any("box", DescribeList(box.List())))
	case "glue":
		g, err := dsl.ParseGlue(cmd.ArgText(0))
		if err != nil {
			return err
		}
		lm.AddGlue(g)
	case "hskip", "vskip":
		if err := b.requireDirection(lm, cmd.Name); err != nil {
			return err
		}
		g, err := dsl.ParseGlue(cmd.ArgText(0))
		if err != nil {
			return err
		}
		lm.AddGlue(g)
	case "hfil", "hfill", "hss", "vfil", "vfill", "vss":
		if err := b.requireDirection(lm, cmd.Name); err != nil {
			return err
		}
		lm.AddGlue(fillGlue(cmd.Name[1:]))
	case "kern":
		d, err := dsl.ParseDimen(cmd.ArgText(0))
		if err != nil {
			return err
		}
		lm.AddKern(d)
	case "penalty":
		n, err := strconv.Atoi(cmd.Arg(0))
		if err != nil {
			return fmt.Errorf("需要整数: %w", err)
		}
		lm.AddPenalty(n)
	case "rule", "hrule", "vrule":
		return b.rule(lm, cmd)
	case "mark":
		text := binding.Interpolate(cmd.Arg(0), b.resolver)
		lm.Add(&node.Mark{Tokens: text})
		b.marks = append(b.marks, text)
	case "space":
		if st.font == nil {
			return errNoFont
		}
		return lm.AddSpace(st.font)
	case "indent":
		return lm.Indent()
	case "nointerlineskip":
		return lm.SetPrevDepth(listmaker.IgnoreDepth)
	case "spacefactor":
		n, err := strconv.Atoi(cmd.Arg(0))
		if err != nil {
			return fmt.Errorf("需要整数: %w", err)
		}
		return lm.SetSpaceFactor(n)
	case "unskip":
		lm.Unskip()
	case "unkern":
		lm.Unkern()
	case "unpenalty":
		lm.Unpenalty()
	case "font":
		f, ok := b.fonts[cmd.Arg(0)]
		if !ok {
			return fmt.Errorf("未声明的字体 %s", cmd.Arg(0))
		}
		if cmd.Block == nil {
			st.font, st.fontName = f, cmd.Arg(0)
			return nil
		}
		return b.content(lm, cmd.Block, b.with(cmd, st))
	case "dimen", "skip", "count":
		return b.assign(cmd)
	case "disc":
		return b.disc(lm, cmd, st)
	case "math":
		return b.math(lm, cmd, st)
	case "display":
		return b.display(lm, cmd, st)
	default:
		return fmt.Errorf("未知命令")
	}
	return nil
}

var errNoFont = errors.New("当前没有字体，请用 font 命令或在命令后写字体名")

// paragraph 打开水平列表，交给 fill 填充，再断行并追加到竖直列表。
func (b *builder) paragraph(lm *listmaker.ListMaker, st *state, indent bool, fill func(*listmaker.ListMaker) error) error {
	if err := lm.RequireVertical(`\par`); err != nil {
		return err
	}
	hlm := listmaker.New(listmaker.Horizontal, b.ctx)
	if indent {
		if err := hlm.Indent(); err != nil {
			return err
		}
	}
	if err := fill(hlm); err != nil {
		return err
	}
	lines, err := hlm.Par()
	if err != nil {
		return err
	}
	return lm.AddParagraph(lines)
}

// box 构建 hbox/vbox，支持 `to 长度` 与 `spread 长度`。
func (b *builder) box(cmd *dsl.Command, st *state) (*node.List, error) {
	mode := listmaker.RestrictedHorizontal
	if cmd.Name == "vbox" {
		mode = listmaker.InternalVertical
	}
	blm := listmaker.New(mode, b.ctx)
	if err := b.content(blm, cmd.Block, b.with(cmd, st)); err != nil {
		return nil, err
	}
	if to, ok := cmd.Keyword("to"); ok {
		d, err := dsl.ParseDimen(to)
		if err != nil {
			return nil, err
		}
		return blm.CompleteTo(d)
	}
	if spread, ok := cmd.Keyword("spread"); ok {
		d, err := dsl.ParseDimen(spread)
		if err != nil {
			return nil, err
		}
		return blm.CompleteSpread(d)
	}
	return blm.Complete()
}

// setbox 处理 `setbox NAME hbox ... { ... }`。
func (b *builder) setbox(cmd *dsl.Command, st *state) error {
	name, kind := cmd.Arg(0), cmd.Arg(1)
	if name == "" || (kind != "hbox" && kind != "vbox") {
		return fmt.Errorf("用法: setbox NAME hbox|vbox { ... }")
	}
	inner := &dsl.Command{Pos: cmd.Pos, Name: kind, Args: cmd.Args[2:], Block: cmd.Block}
	list, err := b.box(inner, st)
	if err != nil {
		return err
	}
	box := node.NewBox(list)
	b.boxes[name] = &box
	return nil
}

// useBox 处理 `box NAME`（取走，寄存器变空）与 `copy NAME`（深拷贝）。
// 空寄存器不产生任何内容。
func (b *builder) useBox(lm *listmaker.ListMaker, cmd *dsl.Command) error {
	shift, err := b.dimenKeyword(cmd, "shift")
	if err != nil {
		return err
	}
	reg := b.boxes[cmd.Arg(0)]
	if reg == nil {
		reg = &node.Box{}
	}
	if cmd.Name == "copy" {
		c := reg.Copy()
		lm.AddBox(&c, shift)
		return nil
	}
	lm.AddBox(reg, shift)
	return nil
}

func (b *builder) dimenKeyword(cmd *dsl.Command, key string) (glue.Dimen, error) {
	v, ok := cmd.Keyword(key)
	if !ok {
		return 0, nil
	}
	return dsl.ParseDimen(v)
}

// requireDirection 检查 h*/v* 命令是否用在对应方向的列表中。
func (b *builder) requireDirection(lm *listmaker.ListMaker, name string) error {
	op := `\` + name
	if name[0] == 'v' {
		return lm.RequireVertical(op)
	}
	return lm.RequireHorizontal(op)
}

// fillGlue 返回 fil、fill 与 ss 对应的无穷胶。
func fillGlue(kind string) glue.Glue {
	one := func(order int8) glue.Component { return glue.NewComponent(glue.One, order) }
	switch kind {
	case "fill":
		return glue.New(0, one(glue.Fill), glue.Component{})
	case "ss":
		return glue.New(0, one(glue.Fil), one(glue.Fil))
	default:
		return glue.New(0, one(glue.Fil), glue.Component{})
	}
}

// rule 处理 `rule [width 长度] [height 长度] [depth 长度]`；hrule 只用于竖直列表，vrule 只用于水平列表。
func (b *builder) rule(lm *listmaker.ListMaker, cmd *dsl.Command) error {
	switch cmd.Name {
	case "hrule":
		if err := lm.RequireVertical(`\hrule`); err != nil {
			return err
		}
	case "vrule":
		if err := lm.RequireHorizontal(`\vrule`); err != nil {
			return err
		}
	}
	var dims [3]*glue.Dimen
	for i, key := range []string{"width", "height", "depth"} {
		v, ok := cmd.Keyword(key)
		if !ok {
			continue
		}
		d, err := dsl.ParseDimen(v)
		if err != nil {
			return err
		}
		dims[i] = &d
	}
	lm.AddRule(dims[0], dims[1], dims[2])
	return nil
}

// text 把文本逐字加入水平列表。先展开 ${...}，再做 NFC 规范化，
// 使组合字符与预组字符查到同一个字形。连续空白只产生一个空格，~ 是不可断的空格。
func (b *builder) text(lm *listmaker.ListMaker, st *state, s string) error {
	if st.font == nil {
		return errNoFont
	}
	s = norm.NFC.String(binding.Interpolate(s, b.resolver))
	for _, r := range s {
		var err error
		switch {
		case unicode.IsSpace(r):
			if !skipSpace(lm.LastNode()) {
				err = lm.AddSpace(st.font)
			}
		case r == '~':
			lm.AddPenalty(node.Infinite)
			err = lm.AddSpace(st.font)
		default:
			err = lm.AddLetter(st.font, r)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// skipSpace 判断空格是否应被吞掉：列表开头、缩进盒之后或已有空白之后。
func skipSpace(last node.Node) bool {
	switch n := last.(type) {
	case nil:
		return true
	case *node.Glue, *node.Space:
		return true
	case *node.List:
		return n.IsEmpty() && n.Kind() == node.Horizontal
	}
	return false
}

// disc 处理 `disc "前" "后" "不断"`，三段文本均用当前字体。
func (b *builder) disc(lm *listmaker.ListMaker, cmd *dsl.Command, st *state) error {
	if err := lm.RequireHorizontal(`\discretionary`); err != nil {
		return err
	}
	if st.font == nil {
		return errNoFont
	}
	part := func(i int) *node.List {
		l := node.NewList(node.Horizontal)
		for _, r := range cmd.Arg(i) {
			if c, ok := node.NewChar(st.font, r); ok {
				l.AddAndAdjust(c)
			} else {
				b.log.Warn("missing character", zap.String("font", st.font.Name()), zap.String("char", string(r)))
			}
		}
		return l
	}
	lm.Add(&node.Disc{Pre: part(0), Post: part(1), NoBreak: part(2)})
	return nil
}

// math 在水平列表中排一段行内公式。数学字体缺失或参数不足时报错。
func (b *builder) math(lm *listmaker.ListMaker, cmd *dsl.Command, st *state) error {
	if err := lm.RequireHorizontal("$"); err != nil {
		return err
	}
	mlm := listmaker.New(listmaker.Math, b.ctx)
	if err := b.horizontal(mlm, cmd.Block, b.with(cmd, st)); err != nil {
		return err
	}
	list, err := mlm.Complete()
	if err != nil {
		return err
	}
	lm.Add(list)
	return nil
}

// display 在竖直列表中排一行居中的陈列公式，宽度为 hsize，可带 `eqno "(1)"`。
func (b *builder) display(lm *listmaker.ListMaker, cmd *dsl.Command, st *state) error {
	if err := lm.RequireVertical("$$"); err != nil {
		return err
	}
	inner := b.with(cmd, st)
	dlm := listmaker.New(listmaker.DisplayMath, b.ctx)
	dlm.AddGlue(fillGlue("ss"))
	if err := b.horizontal(dlm, cmd.Block, inner); err != nil {
		return err
	}
	dlm.AddGlue(fillGlue("ss"))
	if eqno, ok := cmd.Keyword("eqno"); ok {
		elm := listmaker.New(listmaker.RestrictedHorizontal, b.ctx)
		if err := b.text(elm, inner, eqno); err != nil {
			return err
		}
		l, err := elm.Complete()
		if err != nil {
			return err
		}
		if err := dlm.SetEquationNumber(node.NewBox(l)); err != nil {
			return err
		}
	}
	list, err := dlm.CompleteTo(b.ctx.Params.HSize)
	if err != nil {
		return err
	}
	lm.Add(list)
	return nil
}
