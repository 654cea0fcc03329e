package layout

import (
	"encoding/json"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/ByLCY/quire/glue"
	"github.com/ByLCY/quire/node"
)

// DebugNode 是节点树的可读快照，字段取值与 \showbox 的写法一致。
type DebugNode struct {
	Kind     string      `json:"kind"`
	Width    string      `json:"width,omitempty"`
	Height   string      `json:"height,omitempty"`
	Depth    string      `json:"depth,omitempty"`
	Shift    string      `json:"shift,omitempty"`
	Text     string      `json:"text,omitempty"`
	Glue     string      `json:"glue,omitempty"`
	GlueSet  string      `json:"glueSet,omitempty"`
	Penalty  *int        `json:"penalty,omitempty"`
	Children []DebugNode `json:"children,omitempty"`
}

// DescribeList 生成列表的快照。相邻的同字体字符合并为一个 text 节点，
// 其 Glue 字段记录字体名。
func DescribeList(l *node.List) DebugNode {
	if l == nil {
		return DebugNode{Kind: "void"}
	}
	d := DebugNode{
		Kind:    node.Kind(l),
		Width:   dimenText(l.Width()),
		Height:  dimenText(l.Height()),
		Depth:   dimenText(l.Depth()),
		Shift:   dimenText(l.Shift()),
		GlueSet: glueSetText(l.GlueSet()),
	}
	run, runFont := -1, ""
	for _, n := range l.All() {
		c, ok := n.(*node.Char)
		if !ok {
			run = -1
			d.Children = append(d.Children, describe(n))
			continue
		}
		if run >= 0 && runFont == c.Font.Name() {
			d.Children[run].Text += string(c.Rune)
			continue
		}
		runFont = c.Font.Name()
		d.Children = append(d.Children, DebugNode{Kind: "text", Text: string(c.Rune), Glue: runFont})
		run = len(d.Children) - 1
	}
	return d
}

func describe(n node.Node) DebugNode {
	kind := node.Kind(n)
	switch n := n.(type) {
	case *node.List:
		return DescribeList(n)
	case *node.Glue:
		return DebugNode{Kind: kind, Text: n.Name, Glue: n.Spec.String()}
	case *node.Space:
		return DebugNode{Kind: kind, Glue: n.Spec.String()}
	case *node.Kern:
		return DebugNode{Kind: kind, Width: n.Size.String()}
	case *node.Penalty:
		v := n.Value
		return DebugNode{Kind: kind, Penalty: &v}
	case *node.Rule:
		return DebugNode{Kind: kind, Width: ruleText(n.W), Height: ruleText(n.H), Depth: ruleText(n.D)}
	case *node.Mark:
		return DebugNode{Kind: kind, Text: n.Tokens}
	case *node.Disc:
		d := DebugNode{Kind: kind}
		for _, part := range []*node.List{n.Pre, n.Post, n.NoBreak} {
			d.Children = append(d.Children, DescribeList(part))
		}
		return d
	}
	return DebugNode{Kind: kind}
}

func dimenText(d glue.Dimen) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func ruleText(d glue.Dimen) string {
	if d == node.Running {
		return "*"
	}
	return d.String()
}

// glueSetText 按 TeX 的写法给出 "1.0fil" 或 "- 0.5"，自然宽度时为空。
func glueSetText(gs node.GlueSet) string {
	if gs.Sign == node.Normal || gs.Ratio == 0 {
		return ""
	}
	v := int64(math.Round(gs.Ratio * glue.One))
	var sb strings.Builder
	if gs.Sign == node.Shrinking {
		sb.WriteString("- ")
	}
	if math.Abs(gs.Ratio) > 20000 {
		sb.WriteString(">20000")
	} else {
		sb.WriteString(strings.TrimSuffix(glue.NewComponent(v, gs.Order).String(), "pt"))
	}
	if gs.Badness > 0 {
		sb.WriteString(" (badness " + strconv.Itoa(gs.Badness) + ")")
	}
	return sb.String()
}

type debugPage struct {
	Width  string    `json:"width"`
	Height string    `json:"height"`
	Margin [4]string `json:"margin"`
	Marks  []string  `json:"marks,omitempty"`
	Box    DebugNode `json:"box"`
}

type debugDocument struct {
	Meta  DocumentMeta `json:"meta"`
	Fonts []string     `json:"fonts"`
	Pages []debugPage  `json:"pages"`
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	doc := debugDocument{
		Meta:  res.Meta,
		Fonts: sortedKeys(res.Resources.Fonts),
		Pages: lo.Map(res.Pages, func(p Page, _ int) debugPage {
			return debugPage{
				Width:  p.Width.String(),
				Height: p.Height.String(),
				Margin: [4]string{p.Margin.Top.String(), p.Margin.Right.String(), p.Margin.Bottom.String(), p.Margin.Left.String()},
				Marks:  p.Marks,
				Box:    DescribeList(p.Box.List()),
			}
		}),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
