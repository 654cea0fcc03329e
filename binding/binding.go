// Package binding expands ${...} placeholders in text and command
// arguments, either with register values rendered the way \the shows them
// or with values from the JSON data bound to the document.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Resolver looks up the value of a placeholder path.
type Resolver interface {
	Resolve(path string) (string, bool)
}

// Chain tries each resolver in turn.
type Chain []Resolver

func (c Chain) Resolve(path string) (string, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if s, ok := r.Resolve(path); ok {
			return s, true
		}
	}
	return "", false
}

// Data resolves dotted paths with [i] indexes into decoded JSON.
type Data struct {
	Value any
}

func (d Data) Resolve(path string) (string, bool) {
	steps, ok := splitPath(path)
	if d.Value == nil || !ok {
		return "", false
	}
	cur := d.Value
	for _, st := range steps {
		if cur, ok = st.apply(cur); !ok {
			return "", false
		}
	}
	return fmt.Sprint(cur), true
}

// Lookup resolves a single `${path}` reference. Unlike Interpolate it
// reports failure instead of leaving the text alone.
func Lookup(ref string, r Resolver) (string, bool) {
	m := exprPattern.FindStringSubmatch(ref)
	if r == nil || m == nil || m[0] != ref {
		return "", false
	}
	path := strings.TrimSpace(m[1])
	if path == "" {
		return "", false
	}
	return r.Resolve(path)
}

// Interpolate 将文本中的 ${path} 替换为 r 解析出的值。
// 若 r 为空或路径无法解析，则保留原占位符。
func Interpolate(text string, r Resolver) string {
	if r == nil || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(ref string) string {
		if val, ok := Lookup(ref, r); ok {
			return val
		}
		return ref
	})
}

// step 是数据路径中的一级：对象的键，或数组下标（key 为空时）。
type step struct {
	key   string
	index int
}

func (s step) apply(v any) (any, bool) {
	if s.key != "" {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		val, ok := obj[s.key]
		return val, ok
	}
	arr, ok := v.([]any)
	if !ok || s.index < 0 || s.index >= len(arr) {
		return nil, false
	}
	return arr[s.index], true
}

// splitPath 把 `a.b[2][0].c` 拆成 a, b, [2], [0], c。
func splitPath(path string) ([]step, bool) {
	var steps []step
	for _, part := range strings.Split(path, ".") {
		key, rest, _ := strings.Cut(part, "[")
		if key != "" {
			steps = append(steps, step{key: key})
		}
		if rest == "" {
			continue
		}
		for _, idx := range strings.Split(strings.TrimSuffix(rest, "]"), "][") {
			n, err := strconv.Atoi(idx)
			if err != nil {
				return nil, false
			}
			steps = append(steps, step{index: n})
		}
	}
	return steps, true
}
