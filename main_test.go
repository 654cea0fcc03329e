package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ByLCY/quire/config"
	"github.com/ByLCY/quire/layout"
	canvasrenderer "github.com/ByLCY/quire/renderer/canvas"
)

// TestRunDemo 端到端地排版示例文档，检查 PDF 与调试 JSON 均已生成。
func TestRunDemo(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "demo.pdf")
	debug := filepath.Join(dir, "debug", "demo.json")
	core, logs := observer.New(zapcore.DebugLevel)
	data := map[string]any{"user": map[string]any{"name": "Ada", "city": "Leipzig"}}

	r := canvasrenderer.NewRenderer("examples")
	if err := run("examples/demo.quire", out, debug, config.Default(), data, r, zap.New(core)); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	pdf, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if _, err := os.Stat(debug); err != nil {
		t.Fatalf("debug JSON missing: %v", err)
	}
	if logs.FilterMessage("layout done").Len() != 1 {
		t.Fatalf("expected a layout log entry")
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Dimens = map[string]string{"textwidth": "1pt"}
	r := canvasrenderer.NewRenderer("examples")
	err := run("examples/demo.quire", filepath.Join(t.TempDir(), "x.pdf"), "", cfg, nil, r, zap.NewNop())
	if err == nil {
		t.Fatalf("expected config error")
	}
}

type plainRenderer struct{}

func (plainRenderer) Render(*layout.Result) ([]byte, error) { return nil, nil }

func TestRunNeedsFontLoader(t *testing.T) {
	if err := run("examples/demo.quire", "x.pdf", "", config.Default(), nil, plainRenderer{}, zap.NewNop()); err == nil {
		t.Fatalf("expected error for renderer without font loader")
	}
	if err := run("examples/demo.quire", "x.pdf", "", config.Default(), nil, nil, zap.NewNop()); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}
