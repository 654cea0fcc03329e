package binding_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/quire/binding"
	"github.com/ByLCY/quire/glue"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestInterpolateData(t *testing.T) {
	data := binding.Data{Value: decode(t, `{"user":{"name":"Ada","tags":["x","y"]},"n":3}`)}
	got := binding.Interpolate("Hi ${user.name} ${ user.tags[1] } ${n} ${missing}", data)
	assert.Equal(t, "Hi Ada y 3 ${missing}", got)
}

func TestInterpolateNilResolver(t *testing.T) {
	assert.Equal(t, "${a}", binding.Interpolate("${a}", nil))
	assert.Equal(t, "${a}", binding.Interpolate("${a}", binding.Data{}))
}

func TestRegisters(t *testing.T) {
	regs := binding.NewRegisters()
	regs.Dimens["hsize"] = glue.Pt(345)
	regs.Skips["parskip"] = glue.New(0, glue.Pt(1).Component(), glue.Component{})
	regs.Counts["tolerance"] = 200

	got := binding.Interpolate("${dimen.hsize} | ${skip.parskip} | ${count.tolerance} | ${dimen.vsize}", regs)
	assert.Equal(t, "345.0pt | 0.0pt plus 1.0pt | 200 | ${dimen.vsize}", got)
	assert.Equal(t, []string{"hsize"}, regs.Names("dimen"))
}

func TestGlueOrderQueries(t *testing.T) {
	regs := binding.NewRegisters()
	regs.Skips["a"] = glue.New(glue.Pt(1), glue.NewComponent(2*glue.One, glue.Fil), glue.NewComponent(3*glue.One, glue.Fil))
	regs.Skips["b"] = glue.New(0, glue.NewComponent(glue.One, glue.Fill), glue.NewComponent(glue.One, glue.Filll))

	tests := map[string]string{
		"glue.a.shrinkorder":       "1",
		"glue.a.shrinkorder.dimen": "0.00002pt",
		"glue.a.shrinkorder.count": "1",
		"glue.b.stretchorder":      "2",
		"glue.b.shrinkorder":       "3",
	}
	for path, want := range tests {
		got, ok := regs.Resolve(path)
		require.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}
	_, ok := regs.Resolve("glue.a.width")
	assert.False(t, ok)
}

func TestChainPrefersEarlierResolver(t *testing.T) {
	regs := binding.NewRegisters()
	regs.Counts["n"] = 1
	chain := binding.Chain{regs, binding.Data{Value: decode(t, `{"count":{"n":2},"x":"data"}`)}}
	assert.Equal(t, "1 data", binding.Interpolate("${count.n} ${x}", chain))
}

func TestLookup(t *testing.T) {
	regs := binding.NewRegisters()
	regs.Dimens["hsize"] = glue.Pt(300)

	got, ok := binding.Lookup("${dimen.hsize}", regs)
	require.True(t, ok)
	assert.Equal(t, "300.0pt", got)

	for _, ref := range []string{"${dimen.vsize}", "${ }", "dimen.hsize", "x ${dimen.hsize}"} {
		_, ok := binding.Lookup(ref, regs)
		assert.False(t, ok, ref)
	}
	_, ok = binding.Lookup("${dimen.hsize}", nil)
	assert.False(t, ok)
}
