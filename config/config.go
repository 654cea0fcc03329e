// Package config 读取排版参数的配置文件。YAML 与 TOML 两种格式按扩展名区分，
// 字段相同。
//
//	dimens:
//	  parindent: 15pt
//	skips:
//	  baselineskip: 12pt plus 1pt
//	counts:
//	  widowpenalty: 10000
//	hyphenation:
//	  leftmin: 2
//	  exceptions: [as-so-ciate]
//	log:
//	  level: debug
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/quire/dsl"
	"github.com/ByLCY/quire/listmaker"
)

// Config is the on-disk form of the typesetting defaults. Lengths and glue
// are written in TeX notation and parsed with the document grammar.
type Config struct {
	Dimens      map[string]string `yaml:"dimens" toml:"dimens"`
	Skips       map[string]string `yaml:"skips" toml:"skips"`
	Counts      map[string]int    `yaml:"counts" toml:"counts"`
	Hyphenation Hyphenation       `yaml:"hyphenation" toml:"hyphenation"`
	Render      Render            `yaml:"render" toml:"render"`
	Log         Log               `yaml:"log" toml:"log"`
}

// Hyphenation 配置断词的最短前后缀与例外词。
type Hyphenation struct {
	LeftMin    int      `yaml:"leftmin" toml:"leftmin"`
	RightMin   int      `yaml:"rightmin" toml:"rightmin"`
	Exceptions []string `yaml:"exceptions" toml:"exceptions"`
}

// Render 配置渲染器。
type Render struct {
	FontDir   string `yaml:"fontdir" toml:"fontdir"`
	ShowBoxes bool   `yaml:"showboxes" toml:"showboxes"`
}

// Log 配置 zap 日志。
type Log struct {
	Level       string `yaml:"level" toml:"level"`
	Development bool   `yaml:"development" toml:"development"`
}

// Format 是配置文件的格式。
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Log: Log{Level: "info"}}
}

// Load reads path. Files ending in .toml are TOML, everything else YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	format := YAML
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = TOML
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("配置文件 %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over the defaults. Unknown keys are errors.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case TOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("未知的配置项 %s", undecoded[0])
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("不支持的配置格式 %s", format)
	}
	return cfg, nil
}

// Params applies the configured registers to listmaker.DefaultParams.
func (c *Config) Params() (*listmaker.Params, error) {
	p := listmaker.DefaultParams()
	for _, name := range sortedKeys(c.Dimens) {
		d, err := dsl.ParseDimen(c.Dimens[name])
		if err != nil {
			return nil, fmt.Errorf("dimens.%s: %w", name, err)
		}
		if !p.SetDimen(strings.ToLower(name), d) {
			return nil, fmt.Errorf("未知的长度参数 %s", name)
		}
	}
	for _, name := range sortedKeys(c.Skips) {
		g, err := dsl.ParseGlue(c.Skips[name])
		if err != nil {
			return nil, fmt.Errorf("skips.%s: %w", name, err)
		}
		if !p.SetSkip(strings.ToLower(name), g) {
			return nil, fmt.Errorf("未知的胶参数 %s", name)
		}
	}
	for _, name := range sortedKeys(c.Counts) {
		if !p.SetCount(strings.ToLower(name), c.Counts[name]) {
			return nil, fmt.Errorf("未知的计数参数 %s", name)
		}
	}
	return &p, nil
}

// Build creates the logger. An empty level means info.
func (l Log) Build() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if l.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	if l.Level != "" {
		level, err := zap.ParseAtomicLevel(l.Level)
		if err != nil {
			return nil, fmt.Errorf("日志级别无效: %w", err)
		}
		cfg.Level = level
	}
	return cfg.Build()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
