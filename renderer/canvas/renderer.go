package canvasrenderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/quire/fonts"
	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/node"
	"github.com/ByLCY/quire/renderer"
)

// 调试框线宽（mm）
const hairline = 0.1

// Renderer draws typeset pages with github.com/tdewolff/canvas. It is
// also the layout stage's font loader, so widths and drawn glyphs come
// from the same font files.
type Renderer struct {
	*fontStore
	showBoxes bool
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.FontLoader = (*Renderer)(nil)
)

type Options struct {
	// BaseDir 是相对字体路径的起点。
	BaseDir string
	Fonts   map[string]Resource
	// ShowBoxes 为每个盒子描出细框。
	ShowBoxes bool
}

func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{
		fontStore: newFontStore(opts.BaseDir, opts.Fonts),
		showBoxes: opts.ShowBoxes,
	}
}

// LoadFont 实现 layout.FontLoader：按 src 载入字体文件，并以资源字号包装。
func (r *Renderer) LoadFont(res layout.FontResource) (node.Font, error) {
	f, err := r.font(res.Src, parseFontStyle(res.Style))
	if err != nil {
		return nil, err
	}
	fnt := NewFont(res.Name, f, res.Size, res.Params)
	fnt.outline = r.outline(res.Src)
	return fnt, nil
}

// monoFont 是度量表字体的绘制字体。
func (r *Renderer) monoFont() (*canvas.Font, error) {
	return r.font("embed:"+fonts.Mono, canvas.FontRegular)
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	first := result.Pages[0]
	var buf bytes.Buffer
	writer := pdf.New(&buf, layout.ToMM(first.Width), layout.ToMM(first.Height), nil)
	r.applyMeta(writer, result.Meta)
	p := &painter{r: r, resources: result.Resources, faces: map[string]*canvas.FontFace{}}
	for i, page := range result.Pages {
		w, h := layout.ToMM(page.Width), layout.ToMM(page.Height)
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与 TeX 一致：左上角为原点，向下为正
		p.ctx = ctx

		if list := page.Box.List(); list != nil {
			if err := p.vlist(list, page.Margin.Left, page.Margin.Top); err != nil {
				return nil, fmt.Errorf("第 %d 页: %w", i+1, err)
			}
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// painter 按 TeX 的 hlist_out/vlist_out 输出盒子：坐标以 sp 累加，落笔时换算为 mm。
type painter struct {
	r         *Renderer
	ctx       *canvas.Context
	resources layout.ResourceSet
	faces     map[string]*canvas.FontFace
}

func mm(d glue.Dimen) float64 { return layout.ToMM(d) }

// hlist 输出水平列表，(left, baseline) 为盒子基线左端。
func (p *painter) hlist(l *node.List, left, baseline glue.Dimen) error {
	p.frame(l, left, baseline)
	gs := l.GlueSet()
	x := left
	for _, n := range l.All() {
		switch n := n.(type) {
		case *node.Char:
			if err := p.char(n, x, baseline); err != nil {
				return err
			}
		case *node.Glue:
			x += gs.SetSize(n.Spec)
			continue
		case *node.Space:
			x += gs.SetSize(n.Spec)
			continue
		case *node.Rule:
			h, d := n.H, n.D
			if h == node.Running {
				h = l.Height()
			}
			if d == node.Running {
				d = l.Depth()
			}
			p.rule(x, baseline-h, n.Width(), h+d)
		case *node.List:
			if err := p.box(n, x, baseline+n.Shift()); err != nil {
				return err
			}
		case *node.Disc:
			// 未断开的 discretionary 输出其不断行文本
			if n.NoBreak != nil {
				if err := p.hlist(n.NoBreak, x, baseline); err != nil {
					return err
				}
			}
		}
		x += n.Width()
	}
	return nil
}

// vlist 输出竖直列表，(left, top) 为盒子左上角。
func (p *painter) vlist(l *node.List, left, top glue.Dimen) error {
	p.frame(l, left, top+l.Height())
	gs := l.GlueSet()
	y := top
	for _, n := range l.All() {
		switch n := n.(type) {
		case *node.Glue:
			y += gs.SetSize(n.Spec)
		case *node.Space:
			y += gs.SetSize(n.Spec)
		case *node.Kern:
			y += n.Size
		case *node.Rule:
			w := n.W
			if w == node.Running {
				w = l.Width()
			}
			p.rule(left, y, w, n.Height()+n.Depth())
			y += n.Height() + n.Depth()
		case *node.List:
			y += n.Height()
			if err := p.box(n, left+n.Shift(), y); err != nil {
				return err
			}
			y += n.Depth()
		}
	}
	return nil
}

// box 以基线位置输出嵌套盒子。
func (p *painter) box(l *node.List, left, baseline glue.Dimen) error {
	if l.Kind() == node.Horizontal {
		return p.hlist(l, left, baseline)
	}
	return p.vlist(l, left, baseline-l.Height())
}

func (p *painter) char(c *node.Char, x, baseline glue.Dimen) error {
	face, err := p.face(c.Font)
	if err != nil {
		return err
	}
	p.ctx.DrawText(mm(x), mm(baseline), canvas.NewTextLine(face, string(c.Rune), canvas.Left))
	return nil
}

// face 返回字符所用字体的绘制字体面。度量表字体用等宽字体按资源字号绘制。
func (p *painter) face(f node.Font) (*canvas.FontFace, error) {
	if cf, ok := f.(*Font); ok {
		return cf.Face(), nil
	}
	if face, ok := p.faces[f.Name()]; ok {
		return face, nil
	}
	size := glue.Pt(10)
	if res, ok := p.resources.Fonts[f.Name()]; ok && res.Size > 0 {
		size = res.Size
	}
	mono, err := p.r.monoFont()
	if err != nil {
		return nil, fmt.Errorf("载入等宽字体失败: %w", err)
	}
	face := mono.Face(layout.ToBP(size), canvas.Black)
	p.faces[f.Name()] = face
	return face, nil
}

func (p *painter) rule(x, y, w, h glue.Dimen) {
	if w <= 0 || h <= 0 {
		return
	}
	p.ctx.SetFillColor(canvas.Black)
	p.ctx.SetStrokeColor(canvas.Transparent)
	p.ctx.DrawPath(mm(x), mm(y), canvas.Rectangle(mm(w), mm(h)))
}

// frame 在调试模式下描出盒子的外框与基线。
func (p *painter) frame(l *node.List, left, baseline glue.Dimen) {
	if !p.r.showBoxes {
		return
	}
	p.ctx.SetFillColor(canvas.Transparent)
	p.ctx.SetStrokeColor(canvas.Hex("#d04040"))
	p.ctx.SetStrokeWidth(hairline)
	top := baseline - l.Height()
	p.ctx.DrawPath(mm(left), mm(top), canvas.Rectangle(mm(l.Width()), mm(l.Height()+l.Depth())))
	line := &canvas.Path{}
	line.MoveTo(0, 0)
	line.LineTo(mm(l.Width()), 0)
	p.ctx.DrawPath(mm(left), mm(baseline), line)
}
