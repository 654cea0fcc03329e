package canvasrenderer

import (
	"math"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/node"
)

// Font 把一个 OpenType 字体按给定字号包装成 node.Font。度量直接取自字形表，
// 以字体单位做整数换算，结果与字号成严格比例。
type Font struct {
	name   string
	font   *canvas.Font
	face   *canvas.FontFace
	size   glue.Dimen
	upem   int64
	params int

	outline *outlines

	mu    sync.Mutex
	kerns map[[2]rune]glue.Dimen
}

var _ node.Font = (*Font)(nil)

// 连字表：左字符、右字符到替换字符。字体缺少替换字形时不生效。
var ligatureTable = map[[2]rune]rune{
	{'f', 'f'}: 'ﬀ',
	{'f', 'i'}: 'ﬁ',
	{'f', 'l'}: 'ﬂ',
	{'ﬀ', 'i'}: 'ﬃ',
	{'ﬀ', 'l'}: 'ﬄ',
}

// NewFont 以 TeX 字号 size 包装 f。params 小于 7 时按 7 个参数计。
func NewFont(name string, f *canvas.Font, size glue.Dimen, params int) *Font {
	upem := int64(f.Head.UnitsPerEm)
	if upem == 0 {
		upem = 1000
	}
	return &Font{
		name:   name,
		font:   f,
		face:   f.Face(layout.ToBP(size), canvas.Black),
		size:   size,
		upem:   upem,
		params: max(params, 7),
		kerns:  map[[2]rune]glue.Dimen{},
	}
}

func (f *Font) Name() string { return f.name }

// Size 是字体的 TeX 字号。
func (f *Font) Size() glue.Dimen { return f.size }

// Face 是绘制用的字体面。
func (f *Font) Face() *canvas.FontFace { return f.face }

func (f *Font) scale(units int64) glue.Dimen {
	return glue.Dimen(units * int64(f.size) / f.upem)
}

func (f *Font) Metrics(r rune) (node.CharMetrics, bool) {
	id := f.font.GlyphIndex(r)
	if id == 0 {
		return node.CharMetrics{}, false
	}
	ymin, ymax := f.verticalBounds(id, r)
	return node.CharMetrics{
		Width:  f.scale(int64(f.font.GlyphAdvance(id))),
		Height: f.scale(max(ymax, 0)),
		Depth:  f.scale(max(-ymin, 0)),
	}, true
}

// verticalBounds 返回字形在字体单位下的 ymin 与 ymax。CFF 字形有时解析
// 不出轮廓框，这时改用 go-text 的字形范围。
func (f *Font) verticalBounds(id uint16, r rune) (int64, int64) {
	_, ymin, _, ymax := f.font.GlyphBounds(id)
	if ymin != 0 || ymax != 0 {
		return int64(ymin), int64(ymax)
	}
	if lo, hi, ok := f.outline.verticalExtents(r); ok {
		return lo, hi
	}
	return 0, 0
}

func (f *Font) Ligature(left, right rune) (rune, bool) {
	lig, ok := ligatureTable[[2]rune{left, right}]
	if !ok || f.font.GlyphIndex(lig) == 0 {
		return 0, false
	}
	return lig, true
}

// Kern 优先读 kern 表；字体只有 GPOS 时，用整形后宽度与逐字宽度之差推出字距。
func (f *Font) Kern(left, right rune) glue.Dimen {
	key := [2]rune{left, right}
	f.mu.Lock()
	defer f.mu.Unlock()
	if k, ok := f.kerns[key]; ok {
		return k
	}
	k := f.kern(left, right)
	f.kerns[key] = k
	return k
}

func (f *Font) kern(left, right rune) glue.Dimen {
	l, r := f.font.GlyphIndex(left), f.font.GlyphIndex(right)
	if l == 0 || r == 0 {
		return 0
	}
	if k := f.font.Kerning(l, r); k != 0 {
		return f.scale(int64(k))
	}
	pair := string([]rune{left, right})
	mm := f.face.TextWidth(pair) - f.face.TextWidth(string(left)) - f.face.TextWidth(string(right))
	k := layout.FromMM(mm)
	// 整形误差在千分之一 em 以内，视为无字距
	if glue.Dimen(math.Abs(float64(k))) < f.size/1000 {
		return 0
	}
	return k
}

// Space 取空格字形宽度 w，伸长 w/2，收缩 w/3。
func (f *Font) Space() glue.Glue {
	w := f.spaceWidth()
	return glue.New(w, (w / 2).Component(), (w / 3).Component())
}

func (f *Font) ExtraSpace() glue.Dimen { return f.spaceWidth() / 3 }

func (f *Font) spaceWidth() glue.Dimen {
	if m, ok := f.Metrics(' '); ok && m.Width > 0 {
		return m.Width
	}
	return f.size / 3
}

func (f *Font) ParamCount() int { return f.params }
