package layout

import (
	"github.com/ByLCY/quire/binding"
	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/node"
)

// 该文件定义排版结果与资源描述，供布局计算、渲染与调试 JSON 共用。

// Result 保存排版后的页面与资源信息。
type Result struct {
	Pages     []Page       `json:"pages"`
	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
}

// ResourceSet 记录解析出的字体、寄存器与连字符例外。
type ResourceSet struct {
	Fonts       map[string]FontResource `json:"fonts"`
	Registers   *binding.Registers      `json:"-"`
	Hyphenation []string                `json:"hyphenation,omitempty"`
	// SymbolFont 与 ExtensionFont 对应 \textfont2 与 \textfont3。
	SymbolFont    string `json:"symbolFont,omitempty"`
	ExtensionFont string `json:"extensionFont,omitempty"`
}

// FontResource 描述字体资源。src 为空时使用等宽度量表，否则交给 FontLoader 加载；
// src 可以是文件路径或 embed:<内置字体名>。
type FontResource struct {
	Name   string     `json:"name"`
	Src    string     `json:"src,omitempty"`
	Style  string     `json:"style,omitempty"`
	Size   glue.Dimen `json:"size"`
	Params int        `json:"params,omitempty"` // 字体参数个数，数学字体需要 22/13
	// 以下覆盖项只作用于度量表字体
	Space      *glue.Glue  `json:"-"`
	ExtraSpace *glue.Dimen `json:"-"`
	Kerns      []KernPair  `json:"kerns,omitempty"`
	Ligatures  []Ligature  `json:"ligatures,omitempty"`
}

// KernPair 是一对字符之间的隐式字距。
type KernPair struct {
	Left  rune       `json:"left"`
	Right rune       `json:"right"`
	Kern  glue.Dimen `json:"kern"`
}

// Ligature 把 Left、Right 两个字符替换为 Result。
type Ligature struct {
	Left   rune `json:"left"`
	Right  rune `json:"right"`
	Result rune `json:"result"`
}

// Page 记录页面尺寸、边距与封装好的页面盒子。
// Box 是 vbox to (页高-上下边距)，其左上角位于边距处。
type Page struct {
	Width  glue.Dimen `json:"width"`
	Height glue.Dimen `json:"height"`
	Margin Margin     `json:"margin"`
	Box    node.Box   `json:"-"`
	// Marks 按出现顺序保存本页的 \mark 文本
	Marks []string `json:"marks,omitempty"`
}

// Margin 页面边距。
type Margin struct {
	Top    glue.Dimen `json:"top"`
	Right  glue.Dimen `json:"right"`
	Bottom glue.Dimen `json:"bottom"`
	Left   glue.Dimen `json:"left"`
}

// DocumentMeta 对应 PDF 文档信息。
type DocumentMeta struct {
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Creator  string   `json:"creator,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}
