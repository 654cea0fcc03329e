package canvasrenderer

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/tdewolff/canvas"

	"github.com/ByLCY/quire/fonts"
)

// Resource is a font handed to the renderer up front, reachable from a
// script as `built-in:NAME`. Bytes wins over Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// fontStore 解析字体文件并缓存，同一来源同一风格只解析一次。
type fontStore struct {
	dir      string
	builtins map[string]Resource

	mu       sync.Mutex
	parsed   map[fontKey]*canvas.Font
	outlines map[string]*outlines
}

type fontKey struct {
	src   string
	style canvas.FontStyle
}

func newFontStore(dir string, builtins map[string]Resource) *fontStore {
	return &fontStore{
		dir:      dir,
		builtins: builtins,
		parsed:   map[fontKey]*canvas.Font{},
		outlines: map[string]*outlines{},
	}
}

// font returns the parsed font for src. src is `embed:NAME`,
// `built-in:NAME` or a file path relative to the store's directory.
func (s *fontStore) font(src string, style canvas.FontStyle) (*canvas.Font, error) {
	key := fontKey{src, style}
	s.mu.Lock()
	defer s.mu.Unlock()
	if f := s.parsed[key]; f != nil {
		return f, nil
	}
	data, err := s.loadFontBytes(src)
	if err != nil {
		return nil, err
	}
	f, err := canvas.LoadFont(data, 0, style)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", src, err)
	}
	s.parsed[key] = f
	if _, ok := s.outlines[src]; !ok {
		s.outlines[src] = newOutlines(data)
	}
	return f, nil
}

// outline returns the outline reader of a source loaded through font.
func (s *fontStore) outline(src string) *outlines {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outlines[src]
}

// outlines 读 go-text 解析出的字形范围，同一来源的各个字号共用一份。
type outlines struct {
	mu   sync.Mutex
	face *gtfont.Face
}

func newOutlines(data []byte) *outlines {
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return &outlines{}
	}
	return &outlines{face: face}
}

// verticalExtents 返回 r 的字形在字体单位下的 ymin 与 ymax。
func (o *outlines) verticalExtents(r rune) (int64, int64, bool) {
	if o == nil || o.face == nil {
		return 0, 0, false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	gid, ok := o.face.NominalGlyph(r)
	if !ok {
		return 0, 0, false
	}
	e, ok := o.face.GlyphExtents(gid)
	if !ok {
		return 0, 0, false
	}
	return int64(math.Floor(float64(e.YBearing + e.Height))), int64(math.Ceil(float64(e.YBearing))), true
}

func (s *fontStore) loadFontBytes(src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("字体缺少 src")
	}
	if scheme, name, ok := strings.Cut(src, ":"); ok && filepath.VolumeName(src) == "" {
		switch scheme {
		case "embed":
			return fonts.Load(src)
		case "built-in", "builtin":
			res, ok := s.builtins[name]
			switch {
			case !ok:
				return nil, fmt.Errorf("找不到内置字体 %s", name)
			case len(res.Bytes) > 0:
				return res.Bytes, nil
			default:
				return os.ReadFile(res.Path)
			}
		}
	}
	if filepath.IsAbs(src) {
		return os.ReadFile(src)
	}
	if s.dir == "" {
		return nil, fmt.Errorf("未设置字体目录，无法读取相对路径 %s", src)
	}
	return os.ReadFile(filepath.Join(s.dir, src))
}

var fontWeights = []struct {
	word  string
	style canvas.FontStyle
}{
	{"black", canvas.FontBlack},
	{"heavy", canvas.FontBlack},
	{"extrabold", canvas.FontExtraBold},
	{"semibold", canvas.FontSemiBold},
	{"demibold", canvas.FontSemiBold},
	{"bold", canvas.FontBold},
	{"medium", canvas.FontMedium},
	{"extralight", canvas.FontExtraLight},
	{"light", canvas.FontLight},
	{"thin", canvas.FontThin},
}

// parseFontStyle reads a weight word and an optional italic or oblique.
func parseFontStyle(style string) canvas.FontStyle {
	s := strings.ToLower(style)
	out := canvas.FontRegular
	for _, w := range fontWeights {
		if strings.Contains(s, w.word) {
			out = w.style
			break
		}
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		out |= canvas.FontItalic
	}
	return out
}
