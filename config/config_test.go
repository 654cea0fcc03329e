package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ByLCY/quire/glue"
)

const sampleYAML = `
dimens:
  parindent: 15pt
  HSize: 300pt
skips:
  baselineskip: 12pt plus 1pt
counts:
  widowpenalty: 10000
hyphenation:
  leftmin: 3
  exceptions: [as-so-ciate, ta-ble]
render:
  showboxes: true
log:
  level: debug
`

const sampleTOML = `
[dimens]
parindent = "15pt"
HSize = "300pt"

[skips]
baselineskip = "12pt plus 1pt"

[counts]
widowpenalty = 10000

[hyphenation]
leftmin = 3
exceptions = ["as-so-ciate", "ta-ble"]

[render]
showboxes = true

[log]
level = "debug"
`

func TestParseFormatsAgree(t *testing.T) {
	y, err := Parse([]byte(sampleYAML), YAML)
	require.NoError(t, err)
	tm, err := Parse([]byte(sampleTOML), TOML)
	require.NoError(t, err)
	assert.Equal(t, y, tm)

	assert.Equal(t, 3, y.Hyphenation.LeftMin)
	assert.Equal(t, []string{"as-so-ciate", "ta-ble"}, y.Hyphenation.Exceptions)
	assert.True(t, y.Render.ShowBoxes)
}

func TestParams(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML), YAML)
	require.NoError(t, err)
	p, err := cfg.Params()
	require.NoError(t, err)

	assert.Equal(t, glue.Pt(15), p.ParIndent)
	assert.Equal(t, glue.Pt(300), p.HSize)
	assert.Equal(t, "12.0pt plus 1.0pt", p.BaselineSkip.String())
	assert.Equal(t, 10000, p.WidowPenalty)
	assert.Equal(t, 150, p.ClubPenalty, "untouched parameters keep their defaults")
}

func TestParamsRejectsUnknownNames(t *testing.T) {
	for _, cfg := range []*Config{
		{Dimens: map[string]string{"textwidth": "1pt"}},
		{Skips: map[string]string{"topskip": "1pt"}},
		{Counts: map[string]int{"looseness": 1}},
		{Dimens: map[string]string{"hsize": "12 furlongs"}},
	} {
		_, err := cfg.Params()
		assert.Error(t, err)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("colour: red\n"), YAML)
	assert.Error(t, err)
	_, err = Parse([]byte("colour = \"red\"\n"), TOML)
	assert.Error(t, err)
	_, err = Parse(nil, Format("ini"))
	assert.Error(t, err)
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil, YAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quire.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "15pt", cfg.Dimens["parindent"])

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLogBuild(t *testing.T) {
	logger, err := Log{Level: "warn"}.Build()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = Log{Development: true}.Build()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = Log{Level: "loud"}.Build()
	assert.Error(t, err)
}
