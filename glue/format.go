package glue

import (
	"fmt"
	"strconv"
	"strings"
)

// InvalidOrderError is the panic value raised when a component with a
// negative order is rendered.
type InvalidOrderError struct {
	Order int8
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("glue: invalid order %d", e.Order)
}

// Format appends the decimal rendering of c to sb.
//
// The fraction uses TeX's print_scaled rounding: digits are emitted until the
// remainder drops below the growing threshold, and once the threshold passes
// one unit the last digit is rounded. Finite components get the unit u1 u2,
// infinite ones get "fi" followed by one "l" per order.
func (c Component) Format(sb *strings.Builder, u1, u2 byte) {
	if c.Order < 0 {
		panic(&InvalidOrderError{Order: c.Order})
	}
	val := c.Value
	if val < 0 {
		sb.WriteByte('-')
		val = -val
	}
	sb.WriteString(strconv.FormatInt(val/One, 10))
	sb.WriteByte('.')
	val = 10*(val%One) + 5
	delta := int64(10)
	for {
		if delta > One {
			val += 0o100000 - 50000
		}
		sb.WriteByte(byte('0' + val/One))
		val = 10 * (val % One)
		delta *= 10
		if val <= delta {
			break
		}
	}
	if c.Order == Finite {
		sb.WriteByte(u1)
		sb.WriteByte(u2)
		return
	}
	sb.WriteString("fi")
	for i := c.Order; i > 0; i-- {
		sb.WriteByte('l')
	}
}
