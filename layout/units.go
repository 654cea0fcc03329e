package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/ByLCY/quire/dsl"
	"github.com/ByLCY/quire/glue"
)

// 本文件负责 TeX 长度与渲染端毫米之间的换算，以及纸张预设。

// Conversion constants between TeX points and millimetres. A TeX point is
// 1/72.27 in; a PostScript (big) point is 1/72 in.
const (
	PtToMm = 25.4 / 72.27
	MmToPt = 72.27 / 25.4
	PtToBp = 72 / 72.27
)

// ToMM converts a length to millimetres for output back ends.
func ToMM(d glue.Dimen) float64 {
	return d.Points() * PtToMm
}

// FromMM converts millimetres to the nearest scaled point.
func FromMM(mm float64) glue.Dimen {
	return glue.Dimen(math.Round(mm * MmToPt * glue.One))
}

// ToBP converts a length to big points, the unit font sizes are given in by
// PDF libraries.
func ToBP(d glue.Dimen) float64 {
	return d.Points() * PtToBp
}

// pagePresets 以 TeX 长度字符串记录纸张尺寸（宽, 高），换算结果与 TeX 逐位一致。
var pagePresets = map[string][2]string{
	"A4":     {"210mm", "297mm"},
	"A5":     {"148mm", "210mm"},
	"B5":     {"176mm", "250mm"},
	"LETTER": {"8.5in", "11in"},
}

// PageSize 返回预设纸张的宽高。
func PageSize(name string) (glue.Dimen, glue.Dimen, error) {
	preset, ok := pagePresets[strings.ToUpper(name)]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", name)
	}
	w, err := dsl.ParseDimen(preset[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := dsl.ParseDimen(preset[1])
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}
