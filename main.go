package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ByLCY/quire/config"
	"github.com/ByLCY/quire/dsl"
	"github.com/ByLCY/quire/fonts"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/renderer"
	canvasrenderer "github.com/ByLCY/quire/renderer/canvas"
)

func main() {
	input := flag.String("in", "examples/demo.quire", "DSL 文件路径")
	output := flag.String("out", "output/demo.pdf", "PDF 输出路径")
	debug := flag.String("debug", "", "盒子树调试 JSON 输出路径")
	configPath := flag.String("config", "", "参数配置文件（.yaml 或 .toml）")
	dataJSON := flag.String("data", "", "绑定到 DSL 的 JSON 数据")
	showBoxes := flag.Bool("show-boxes", false, "在 PDF 中描出盒子外框，并在日志中输出页面盒子树")
	listFonts := flag.Bool("fonts", false, "列出内置字体后退出")
	flag.Parse()

	if *listFonts {
		fmt.Println(strings.Join(fonts.Names(), "\n"))
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("读取配置失败: %v", err)
		}
	}
	if *showBoxes {
		cfg.Render.ShowBoxes = true
	}
	logger, err := cfg.Log.Build()
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			logger.Fatal("解析 data JSON 失败", zap.Error(err))
		}
	}

	fontDir := cfg.Render.FontDir
	if fontDir == "" {
		fontDir = filepath.Dir(*input)
	}
	r := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{BaseDir: fontDir, ShowBoxes: cfg.Render.ShowBoxes})
	if err := run(*input, *output, *debug, cfg, inputData, r, logger); err != nil {
		logger.Fatal("生成 PDF 失败", zap.Error(err))
	}
	logger.Info("已生成 PDF", zap.String("path", *output))
}

// run 串联解析、布局与渲染。
func run(inputPath, outputPath, debugPath string, cfg *config.Config, data any, r renderer.Renderer, logger *zap.Logger) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	loader, ok := r.(layout.FontLoader)
	if !ok {
		return fmt.Errorf("renderer 未实现字体加载接口")
	}
	params, err := cfg.Params()
	if err != nil {
		return fmt.Errorf("配置参数无效: %w", err)
	}

	doc, err := dsl.ParseFile(inputPath)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}

	result, err := layout.Build(doc, data, layout.BuildOptions{
		FontLoader:     loader,
		Params:         params,
		Hyphenation:    cfg.Hyphenation.Exceptions,
		LeftHyphenMin:  cfg.Hyphenation.LeftMin,
		RightHyphenMin: cfg.Hyphenation.RightMin,
		Logger:         logger,
		Debug:          layout.DebugOptions{ShowBoxes: cfg.Render.ShowBoxes},
	})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}
	logger.Debug("layout done", zap.Int("pages", len(result.Pages)))

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	pdfBytes, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}

	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
