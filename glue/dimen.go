package glue

import (
	"errors"
	"fmt"
	"strings"
)

// One is the number of scaled points in one point.
const One = 1 << 16

// MaxDimen is \maxdimen, the largest length TeX accepts (16383.99998pt).
const MaxDimen Dimen = 1<<30 - 1

// ErrDimensionTooLarge is returned when a scanned length exceeds MaxDimen.
var ErrDimensionTooLarge = errors.New("glue: dimension too large")

// Dimen is a finite length in scaled points.
type Dimen int64

// Pt returns n whole points.
func Pt(n int64) Dimen { return Dimen(n * One) }

// Component returns d as an order 0 component.
func (d Dimen) Component() Component {
	return Component{Value: int64(d)}
}

// Points returns d as a floating point number of points. Only for output
// back ends; layout never computes with it.
func (d Dimen) Points() float64 {
	return float64(d) / One
}

func (d Dimen) String() string {
	return d.Component().String()
}

// unitRatios maps TeX's physical units to the numerator and denominator that
// convert them to points.
var unitRatios = map[string][2]int64{
	"pt": {1, 1},
	"in": {7227, 100},
	"pc": {12, 1},
	"cm": {7227, 254},
	"mm": {7227, 2540},
	"bp": {7227, 7200},
	"dd": {1238, 1157},
	"cc": {14856, 1157},
}

// FilOrder returns the order named by a fil unit, or -1 if unit is not one.
func FilOrder(unit string) int8 {
	switch unit {
	case "fil":
		return Fil
	case "fill":
		return Fill
	case "filll":
		return Filll
	}
	return -1
}

// RoundDecimals converts the decimal digits of a fraction (most significant
// first) to scaled points, exactly like TeX's round_decimals. Only the first
// 17 digits count.
func RoundDecimals(digits string) int64 {
	if len(digits) > 17 {
		digits = digits[:17]
	}
	var a int64
	for k := len(digits) - 1; k >= 0; k-- {
		a = (a + int64(digits[k]-'0')*0o400000) / 10
	}
	return (a + 1) / 2
}

// XnOverD computes x*n/d and the remainder, truncating toward zero.
func XnOverD(x, n, d int64) (int64, int64) {
	p := x * n
	return p / d, p % d
}

// Scale converts an unsigned decimal number with a unit into a component.
// integer holds the digits before the decimal point, fraction the digits
// after it. The arithmetic is TeX's scan_dimen, so rendering the result and
// scanning it again gives back the same value.
func Scale(negative bool, integer int64, fraction string, unit string) (Component, error) {
	unit = strings.ToLower(unit)
	for _, r := range fraction {
		if r < '0' || r > '9' {
			return Component{}, fmt.Errorf("glue: bad fraction %q", fraction)
		}
	}
	var order int8
	var v int64
	switch {
	case unit == "sp":
		v = integer
	case FilOrder(unit) > 0:
		if integer >= 0o40000 {
			return Component{}, ErrDimensionTooLarge
		}
		order = FilOrder(unit)
		v = integer*One + RoundDecimals(fraction)
	default:
		ratio, ok := unitRatios[unit]
		if !ok {
			return Component{}, fmt.Errorf("glue: unknown unit %q", unit)
		}
		f := RoundDecimals(fraction)
		cur := integer
		if ratio[0] != 1 || ratio[1] != 1 {
			var rem int64
			cur, rem = XnOverD(cur, ratio[0], ratio[1])
			f = (ratio[0]*f + 0o200000*rem) / ratio[1]
			cur += f / 0o200000
			f %= 0o200000
		}
		if cur >= 0o40000 {
			return Component{}, ErrDimensionTooLarge
		}
		v = cur*One + f
	}
	if order == Finite && v > int64(MaxDimen) {
		return Component{}, ErrDimensionTooLarge
	}
	if negative {
		v = -v
	}
	return Component{Value: v, Order: order}, nil
}
