package listmaker

import (
	"errors"
	"fmt"

	"github.com/ByLCY/quire/node"
)

var (
	// ErrModeMismatch matches every ModeMismatchError.
	ErrModeMismatch = errors.New("listmaker: mode mismatch")
	// ErrInsufficientFonts matches every InsufficientFontsError.
	ErrInsufficientFonts = errors.New("listmaker: insufficient math fonts")
	// ErrEmptyList is node.ErrEmptyList, re-exported for callers that only
	// talk to ListMakers.
	ErrEmptyList = node.ErrEmptyList
	// ErrNoLineBreaker is returned by Par when the context has no breaker.
	ErrNoLineBreaker = errors.New("listmaker: no line breaker configured")
	// ErrSpaceFactor rejects \spacefactor values outside 1..32767.
	ErrSpaceFactor = errors.New("listmaker: bad space factor")
)

// ModeMismatchError reports an operation the current list cannot do.
type ModeMismatchError struct {
	Op       string
	Required Capability
	Actual   Mode
}

func (e *ModeMismatchError) Error() string {
	return fmt.Sprintf("listmaker: %s needs a %s list, not allowed in %s", e.Op, e.Required, e.Actual)
}

func (e *ModeMismatchError) Is(target error) bool { return target == ErrModeMismatch }

// InsufficientFontsError names the math font that is missing or has too
// few parameters.
type InsufficientFontsError struct {
	Family string
	Need   int
	Have   int
}

func (e *InsufficientFontsError) Error() string {
	if e.Have < 0 {
		return fmt.Sprintf("listmaker: math formula deleted: no %s font", e.Family)
	}
	return fmt.Sprintf("listmaker: math formula deleted: %s font has %d parameters, need %d", e.Family, e.Have, e.Need)
}

func (e *InsufficientFontsError) Is(target error) bool { return target == ErrInsufficientFonts }
