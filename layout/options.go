package layout

import (
	"go.uber.org/zap"

	"github.com/ByLCY/quire/listmaker"
	"github.com/ByLCY/quire/node"
)

// BuildOptions 配置布局阶段所需的依赖，例如字体加载与默认参数。
type BuildOptions struct {
	// FontLoader 加载带 src 的字体；为空时这类字体会报错。
	FontLoader FontLoader
	// Params 是文档赋值之前的参数，为空时使用 listmaker.DefaultParams。
	Params *listmaker.Params
	// Hyphenation 是额外的连字符例外词，如 "as-so-ciate"。
	Hyphenation []string
	// LeftHyphenMin/RightHyphenMin 为 0 时使用 TeX 的默认值。
	LeftHyphenMin  int
	RightHyphenMin int
	Logger         *zap.Logger
	Debug          DebugOptions
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	ShowBoxes bool // 每页完成后以 Debug 级别输出盒子树
}

// FontLoader 把带 src 的字体资源加载为节点层可查询的字体。
type FontLoader interface {
	LoadFont(res FontResource) (node.Font, error)
}
