// Package fonts 提供内置字体：Latin Modern 家族中排版常用的几款。
package fonts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-fonts/latin-modern/lmmath"
	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"github.com/samber/lo"
)

// Default 是只写 "embed:" 时使用的字体。
const Default = "lmroman10-regular"

// Mono 用于绘制等宽度量表排出的字符。
const Mono = "lmmono10-regular"

var builtin = map[string][]byte{
	"lmroman10-regular": lmroman10regular.TTF,
	"lmroman10-bold":    lmroman10bold.TTF,
	"lmroman10-italic":  lmroman10italic.TTF,
	"lmsans10-regular":  lmsans10regular.TTF,
	"lmmono10-regular":  lmmono10regular.TTF,
	"lmmath":            lmmath.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:lmroman10-regular" 或直接 "lmroman10-regular"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "embed:"))
	if key == "" {
		key = Default
	}
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 可用字体为 %s", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names 按字母序列出内置字体。
func Names() []string {
	names := lo.Keys(builtin)
	slices.Sort(names)
	return names
}
