package layout

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ByLCY/quire/binding"
	"github.com/ByLCY/quire/breaker"
	"github.com/ByLCY/quire/dsl"
	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/hyphen"
	"github.com/ByLCY/quire/listmaker"
	"github.com/ByLCY/quire/node"
)

// builder 保存一次排版过程的状态：参数上下文、寄存器、字体与盒子寄存器。
type builder struct {
	opts BuildOptions
	log  *zap.Logger
	ctx  *listmaker.Context
	gb   *breaker.Greedy
	regs *binding.Registers
	// assigned 记录文档显式赋值过的寄存器（kind.name）
	assigned map[string]bool
	fonts    map[string]node.Font
	boxes    map[string]*node.Box
	resolver binding.Resolver
	marks    []string
}

// Build 依据 DSL 文档生成分页的盒子结果。每个 page 段落对应一页，
// 页面内容以竖直列表构建，最终封装为 vbox to (页高-上下边距)。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	b := newBuilder(data, opts)

	res, err := b.collectResources(doc)
	if err != nil {
		return nil, err
	}
	if err := b.loadFonts(res); err != nil {
		return nil, err
	}
	if err := b.setupHyphenation(res); err != nil {
		return nil, err
	}

	result := &Result{
		Resources: res,
		Meta:      b.collectMeta(doc),
	}
	for _, section := range doc.Sections {
		if section.Page == nil {
			continue
		}
		page, err := b.buildPage(section.Page)
		if err != nil {
			return nil, fmt.Errorf("第 %d 页: %w", len(result.Pages)+1, err)
		}
		result.Pages = append(result.Pages, page)
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("文档缺少 page 段落")
	}
	b.log.Debug("document built", zap.Int("pages", len(result.Pages)), zap.Int("fonts", len(b.fonts)))
	return result, nil
}

func newBuilder(data any, opts BuildOptions) *builder {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx := listmaker.NewContext()
	if opts.Params != nil {
		ctx.Params = *opts.Params
	}
	ctx.Logger = log

	regs := binding.NewRegisters()
	for name, d := range ctx.Params.Dimens() {
		regs.Dimens[name] = d
	}
	for name, g := range ctx.Params.Skips() {
		regs.Skips[name] = g
	}
	for name, n := range ctx.Params.Counts() {
		regs.Counts[name] = n
	}
	regs.Counts["lefthyphenmin"] = orDefault(opts.LeftHyphenMin, hyphen.LeftMin)
	regs.Counts["righthyphenmin"] = orDefault(opts.RightHyphenMin, hyphen.RightMin)
	regs.Counts["frenchspacing"] = 0

	b := &builder{
		opts:     opts,
		log:      log,
		ctx:      ctx,
		regs:     regs,
		assigned: map[string]bool{},
		fonts:    map[string]node.Font{},
		boxes:    map[string]*node.Box{},
	}
	b.resolver = binding.Chain{regs, binding.Data{Value: data}}
	return b
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// collectResources 读取 resources 段：字体、寄存器、数学字体与连字符例外。
func (b *builder) collectResources(doc *dsl.Document) (ResourceSet, error) {
	res := ResourceSet{
		Fonts:     map[string]FontResource{},
		Registers: b.regs,
	}
	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			cmd := stmt.Command
			if cmd == nil {
				continue
			}
			switch cmd.Name {
			case "font":
				font, err := parseFontResource(cmd)
				if err != nil {
					return res, fmt.Errorf("第 %d 行: %w", cmd.Pos.Line, err)
				}
				res.Fonts[font.Name] = font
			case "dimen", "skip", "count":
				expanded, err := b.expandArgs(cmd)
				if err != nil {
					return res, fmt.Errorf("第 %d 行: %w", cmd.Pos.Line, err)
				}
				if err := b.assign(expanded); err != nil {
					return res, err
				}
			case "hyphenation":
				for _, a := range cmd.Args {
					res.Hyphenation = append(res.Hyphenation, strings.Fields(a.Value)...)
				}
			case "symbolfont":
				res.SymbolFont = cmd.Arg(0)
			case "extensionfont":
				res.ExtensionFont = cmd.Arg(0)
			default:
				return res, fmt.Errorf("第 %d 行: resources 中未知的声明 %s", cmd.Pos.Line, cmd.Name)
			}
		}
	}
	return res, nil
}

// assign 处理 `dimen NAME = 值`、`skip NAME = 值` 与 `count NAME = 值`，
// 等号可省略。寄存器同名的参数随之更新。
func (b *builder) assign(cmd *dsl.Command) error {
	name := cmd.Arg(0)
	if name == "" {
		return fmt.Errorf("第 %d 行: %s 缺少寄存器名", cmd.Pos.Line, cmd.Name)
	}
	from := 1
	if cmd.Arg(1) == "=" {
		from = 2
	}
	text := cmd.ArgText(from)
	p := &b.ctx.Params
	switch cmd.Name {
	case "dimen":
		d, err := dsl.ParseDimen(text)
		if err != nil {
			return fmt.Errorf("第 %d 行: %w", cmd.Pos.Line, err)
		}
		b.regs.Dimens[name] = d
		p.SetDimen(name, d)
	case "skip":
		g, err := dsl.ParseGlue(text)
		if err != nil {
			return fmt.Errorf("第 %d 行: %w", cmd.Pos.Line, err)
		}
		b.regs.Skips[name] = g
		p.SetSkip(name, g)
	case "count":
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("第 %d 行: count %s 需要整数: %w", cmd.Pos.Line, name, err)
		}
		b.regs.Counts[name] = n
		p.SetCount(name, n)
		b.applySpecialCount(name, n)
	}
	b.assigned[cmd.Name+"."+name] = true
	b.log.Debug("register assigned", zap.String("kind", cmd.Name), zap.String("name", name), zap.String("value", text))
	return nil
}

// applySpecialCount 处理不属于 listmaker.Params 的计数器。
func (b *builder) applySpecialCount(name string, n int) {
	switch name {
	case "frenchspacing":
		if n > 0 {
			b.ctx.SFCode = listmaker.FrenchSpacing
		} else {
			b.ctx.SFCode = nil
		}
	case "lefthyphenmin":
		if b.gb != nil {
			b.gb.LeftMin = n
		}
	case "righthyphenmin":
		if b.gb != nil {
			b.gb.RightMin = n
		}
	}
}

// setupHyphenation 合并选项与文档中的例外词，并装配断行器。
func (b *builder) setupHyphenation(res ResourceSet) error {
	words := append(append([]string(nil), b.opts.Hyphenation...), res.Hyphenation...)
	var h hyphen.Hyphenator
	if len(words) > 0 {
		exc, err := hyphen.NewExceptions(words...)
		if err != nil {
			return fmt.Errorf("连字符例外词无效: %w", err)
		}
		h = exc
	}
	b.gb = breaker.New(h)
	b.gb.LeftMin = b.regs.Counts["lefthyphenmin"]
	b.gb.RightMin = b.regs.Counts["righthyphenmin"]
	b.ctx.Breaker = b.gb
	return nil
}

// collectMeta 读取 meta 段，文本值中的 ${...} 同样会被展开。
func (b *builder) collectMeta(doc *dsl.Document) DocumentMeta {
	meta := DocumentMeta{
		Creator: "Quire",
	}
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for key, val := range section.Meta.Block.Assignments() {
			text := binding.Interpolate(val.Text(), b.resolver)
			switch key {
			case "title":
				meta.Title = text
			case "author":
				meta.Author = text
			case "subject":
				meta.Subject = text
			case "creator":
				meta.Creator = text
			case "keywords":
				meta.Keywords = val.Strings()
			}
		}
	}
	return meta
}

// buildPage 排出一页：确定纸张与边距，未显式赋值时 hsize/vsize 取版心尺寸。
func (b *builder) buildPage(sec *dsl.PageSection) (Page, error) {
	width, height, err := resolvePageSize(sec.Spec)
	if err != nil {
		return Page{}, err
	}
	margin, err := resolveMargin(sec.Spec.Params)
	if err != nil {
		return Page{}, err
	}
	p := &b.ctx.Params
	if !b.assigned["dimen.hsize"] {
		p.HSize = width - margin.Left - margin.Right
		b.regs.Dimens["hsize"] = p.HSize
	}
	if !b.assigned["dimen.vsize"] {
		p.VSize = height - margin.Top - margin.Bottom
		b.regs.Dimens["vsize"] = p.VSize
	}

	b.marks = nil
	lm := listmaker.New(listmaker.Vertical, b.ctx)
	st := &state{}
	if err := b.vertical(lm, sec.Block, st); err != nil {
		return Page{}, err
	}
	list, err := lm.CompleteTo(p.VSize)
	if err != nil {
		return Page{}, err
	}
	if b.opts.Debug.ShowBoxes {
		b.log.Debug("page box", zap.Any("box", DescribeList(list)))
	}
	return Page{
		Width:  width,
		Height: height,
		Margin: margin,
		Box:    node.NewBox(list),
		Marks:  b.marks,
	}, nil
}

// resolvePageSize 支持预设纸张（可加 landscape）与 `custom 宽 高`。
func resolvePageSize(spec dsl.PageSpec) (glue.Dimen, glue.Dimen, error) {
	var width, height glue.Dimen
	params := spec.Params
	if strings.EqualFold(spec.Size, "custom") {
		if len(params) < 2 {
			return 0, 0, fmt.Errorf("custom 纸张需要宽与高")
		}
		var err error
		if width, err = dsl.ParseDimen(params[0].Value); err != nil {
			return 0, 0, err
		}
		if height, err = dsl.ParseDimen(params[1].Value); err != nil {
			return 0, 0, err
		}
		params = params[2:]
	} else {
		var err error
		if width, height, err = PageSize(spec.Size); err != nil {
			return 0, 0, err
		}
	}
	for _, token := range params {
		if token.Value == "landscape" {
			width, height = height, width
		}
	}
	return width, height, nil
}

// resolveMargin 解析 `margin` 之后的 1~4 个长度，语义同 CSS：
// 1 个值四边相同；2 个值为上下、左右；3 个值为上、左右、下；4 个值为上、右、下、左。
func resolveMargin(params []*dsl.Lexeme) (Margin, error) {
	def, _ := dsl.ParseDimen("20mm")
	margin := Margin{Top: def, Right: def, Bottom: def, Left: def}
	for i := 0; i < len(params); i++ {
		if params[i].Value != "margin" {
			continue
		}
		var vals []glue.Dimen
		for j := i + 1; j < len(params) && len(vals) < 4; j++ {
			if params[j].Type != "Number" {
				break
			}
			v, err := dsl.ParseDimen(params[j].Value)
			if err != nil {
				return margin, fmt.Errorf("边距无效: %w", err)
			}
			vals = append(vals, v)
		}
		switch len(vals) {
		case 0:
			return margin, fmt.Errorf("margin 之后缺少长度")
		case 1:
			v := vals[0]
			margin = Margin{Top: v, Right: v, Bottom: v, Left: v}
		case 2:
			margin = Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
		case 3:
			margin = Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}
		case 4:
			margin = Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
		}
	}
	return margin, nil
}
