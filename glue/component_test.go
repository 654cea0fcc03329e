package glue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentOrderDominates(t *testing.T) {
	cases := []struct {
		name string
		a, b Component
	}{
		{"fil beats huge finite", NewComponent(1, Fil), NewComponent(int64(MaxDimen), Finite)},
		{"fill beats huge fil", NewComponent(1, Fill), NewComponent(1<<40, Fil)},
		{"filll beats negative fill", NewComponent(-5, Filll), NewComponent(1<<20, Fill)},
		{"order 4 beats filll", NewComponent(-1<<30, 4), NewComponent(1<<30, Filll)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.a.Gt(tc.b))
			assert.True(t, tc.a.Ge(tc.b))
			assert.False(t, tc.a.Lt(tc.b))
			assert.False(t, tc.a.Le(tc.b))
			assert.True(t, tc.b.Lt(tc.a))
			assert.True(t, tc.a.Ne(tc.b))
			assert.False(t, tc.a.Eq(tc.b))
		})
	}
}

func TestComponentSameOrderComparesValue(t *testing.T) {
	a := NewComponent(3*One, Finite)
	b := NewComponent(2*One, Finite)
	assert.True(t, a.Gt(b))
	assert.True(t, b.Lt(a))
	assert.True(t, a.Ge(a))
	assert.True(t, a.Le(a))
	assert.True(t, a.Eq(NewComponent(3*One, Finite)))
	assert.False(t, a.Eq(NewComponent(3*One, Fil)), "equal values of different order are not equal")
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   Component
		want string
	}{
		{NewComponent(0, Finite), "0.0pt"},
		{NewComponent(1, Finite), "0.00002pt"},
		{NewComponent(2, Finite), "0.00003pt"},
		{NewComponent(One-1, Finite), "0.99998pt"},
		{NewComponent(One, Finite), "1.0pt"},
		{NewComponent(One/2, Finite), "0.5pt"},
		{NewComponent(-3*One, Finite), "-3.0pt"},
		{NewComponent(int64(MaxDimen), Finite), "16383.99998pt"},
		{NewComponent(2*One, Fil), "2.0fil"},
		{NewComponent(3*One, Fill), "3.0fill"},
		{NewComponent(-One, Filll), "-1.0filll"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.in.String())
	}
}

func TestFormatCustomUnit(t *testing.T) {
	var sb strings.Builder
	NewComponent(5*One, Finite).Format(&sb, 'm', 'u')
	assert.Equal(t, "5.0mu", sb.String())
}

func TestFormatNegativeOrderPanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*InvalidOrderError)
		require.True(t, ok, "panic value %T", r)
		assert.Equal(t, int8(-1), err.Order)
	}()
	_ = NewComponent(One, -1).String()
}
