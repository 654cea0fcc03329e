package layout

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ByLCY/quire/dsl"
	"github.com/ByLCY/quire/font"
	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/node"
)

const defaultFontSize = 10 * glue.One

// parseFontResource 解析 `font Name { size: 10pt ... }`。
func parseFontResource(cmd *dsl.Command) (FontResource, error) {
	res := FontResource{Name: cmd.Arg(0), Size: defaultFontSize}
	if res.Name == "" {
		return res, fmt.Errorf("font 缺少名称")
	}
	for key, val := range cmd.Block.Assignments() {
		var err error
		switch key {
		case "src":
			res.Src = val.Text()
		case "style":
			res.Style = val.Text()
		case "size":
			res.Size, err = dsl.ParseDimen(val.Text())
		case "params":
			res.Params, err = strconv.Atoi(val.Text())
		case "space":
			var g glue.Glue
			if g, err = dsl.ParseGlue(val.Text()); err == nil {
				res.Space = &g
			}
		case "extra":
			var d glue.Dimen
			if d, err = dsl.ParseDimen(val.Text()); err == nil {
				res.ExtraSpace = &d
			}
		case "kern":
			res.Kerns, err = parseKerns(val.Strings())
		case "lig":
			res.Ligatures, err = parseLigatures(val.Strings())
		default:
			err = fmt.Errorf("未知属性")
		}
		if err != nil {
			return res, fmt.Errorf("字体 %s 的 %s 无效: %w", res.Name, key, err)
		}
	}
	if res.Size <= 0 {
		return res, fmt.Errorf("字体 %s 的字号必须为正", res.Name)
	}
	return res, nil
}

// parseKerns 读取 "AV -1pt" 形式的字距：两个字符，然后是长度。
func parseKerns(items []string) ([]KernPair, error) {
	out := make([]KernPair, 0, len(items))
	for _, item := range items {
		fields := strings.Fields(item)
		pair := []rune(lo.FirstOrEmpty(fields))
		if len(fields) < 2 || len(pair) != 2 {
			return nil, fmt.Errorf("%q 应为 \"AV -1pt\" 形式", item)
		}
		k, err := dsl.ParseDimen(strings.Join(fields[1:], " "))
		if err != nil {
			return nil, err
		}
		out = append(out, KernPair{Left: pair[0], Right: pair[1], Kern: k})
	}
	return out, nil
}

// parseLigatures 读取 "fi ﬁ" 形式的连字：两个字符，然后是替换字符。
func parseLigatures(items []string) ([]Ligature, error) {
	out := make([]Ligature, 0, len(items))
	for _, item := range items {
		fields := strings.Fields(item)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%q 应为 \"fi ﬁ\" 形式", item)
		}
		pair, lig := []rune(fields[0]), []rune(fields[1])
		if len(pair) != 2 || len(lig) != 1 {
			return nil, fmt.Errorf("%q 应为 \"fi ﬁ\" 形式", item)
		}
		out = append(out, Ligature{Left: pair[0], Right: pair[1], Result: lig[0]})
	}
	return out, nil
}

// loadFonts 把字体资源实例化为 node.Font，并设置数学字体。
func (b *builder) loadFonts(res ResourceSet) error {
	names := lo.Keys(res.Fonts)
	slices.Sort(names)
	for _, name := range names {
		fr := res.Fonts[name]
		var f node.Font
		if fr.Src != "" {
			if b.opts.FontLoader == nil {
				return fmt.Errorf("字体 %s 指定了 src，但没有可用的字体加载器", name)
			}
			loaded, err := b.opts.FontLoader.LoadFont(fr)
			if err != nil {
				return fmt.Errorf("加载字体 %s 失败: %w", name, err)
			}
			if len(fr.Kerns) > 0 || len(fr.Ligatures) > 0 {
				b.log.Warn("kern and lig only apply to metric tables", zap.String("font", name))
			}
			f = loaded
		} else {
			f = tableFont(fr)
		}
		b.fonts[name] = f
		b.log.Debug("font loaded", zap.String("font", name), zap.Stringer("size", fr.Size), zap.Int("params", f.ParamCount()))
	}

	var err error
	if b.ctx.SymbolFont, err = b.mathFont(res.SymbolFont); err != nil {
		return err
	}
	if b.ctx.ExtensionFont, err = b.mathFont(res.ExtensionFont); err != nil {
		return err
	}
	return nil
}

func (b *builder) mathFont(name string) (node.Font, error) {
	if name == "" {
		return nil, nil
	}
	f, ok := b.fonts[name]
	if !ok {
		return nil, fmt.Errorf("数学字体 %s 未声明", name)
	}
	return f, nil
}

// tableFont 以等宽度量表为底，叠加资源中的覆盖项。
func tableFont(fr FontResource) *font.Table {
	t := font.Monospace(fr.Name, fr.Size)
	if fr.Space != nil {
		t.SetSpace(*fr.Space)
	}
	if fr.ExtraSpace != nil {
		t.SetExtraSpace(*fr.ExtraSpace)
	}
	if fr.Params > 0 {
		t.SetParamCount(fr.Params)
	}
	for _, k := range fr.Kerns {
		t.SetKern(k.Left, k.Right, k.Kern)
	}
	for _, l := range fr.Ligatures {
		if _, ok := t.Metrics(l.Result); !ok {
			left, _ := t.Metrics(l.Left)
			right, _ := t.Metrics(l.Right)
			t.SetChar(l.Result, left.Width+right.Width, max(left.Height, right.Height), max(left.Depth, right.Depth))
		}
		t.SetLigature(l.Left, l.Right, l.Result)
	}
	return t
}
