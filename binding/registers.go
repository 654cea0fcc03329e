package binding

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/ByLCY/quire/glue"
)

// Registers holds named \dimen, \skip and \count registers.
type Registers struct {
	Dimens map[string]glue.Dimen
	Skips  map[string]glue.Glue
	Counts map[string]int
}

// NewRegisters returns an empty register file.
func NewRegisters() *Registers {
	return &Registers{
		Dimens: map[string]glue.Dimen{},
		Skips:  map[string]glue.Glue{},
		Counts: map[string]int{},
	}
}

// Resolve understands dimen.NAME, skip.NAME, count.NAME and the glue order
// queries glue.NAME.stretchorder and glue.NAME.shrinkorder, optionally
// followed by .dimen or .count. Lengths render as \the does.
func (r *Registers) Resolve(path string) (string, bool) {
	if r == nil {
		return "", false
	}
	parts := strings.Split(path, ".")
	switch {
	case len(parts) == 2 && parts[0] == "dimen":
		if d, ok := r.Dimens[parts[1]]; ok {
			return d.String(), true
		}
	case len(parts) == 2 && parts[0] == "skip":
		if g, ok := r.Skips[parts[1]]; ok {
			return g.String(), true
		}
	case len(parts) == 2 && parts[0] == "count":
		if n, ok := r.Counts[parts[1]]; ok {
			return strconv.Itoa(n), true
		}
	case (len(parts) == 3 || len(parts) == 4) && parts[0] == "glue":
		g, ok := r.Skips[parts[1]]
		if !ok {
			return "", false
		}
		var order int
		switch parts[2] {
		case "stretchorder":
			order = g.StretchOrder()
		case "shrinkorder":
			order = g.ShrinkOrder()
		default:
			return "", false
		}
		if len(parts) == 3 {
			return strconv.Itoa(order), true
		}
		return coerce(order, parts[3])
	}
	return "", false
}

// coerce reads an integer quantity as another register kind, the way
// \dimen0=\glueshrinkorder\skip0 takes it as scaled points.
func coerce(n int, kind string) (string, bool) {
	switch kind {
	case "count":
		return strconv.Itoa(n), true
	case "dimen":
		return glue.Dimen(n).String(), true
	}
	return "", false
}

// Names lists the register names of one kind in sorted order.
func (r *Registers) Names(kind string) []string {
	var names []string
	switch kind {
	case "dimen":
		names = lo.Keys(r.Dimens)
	case "skip":
		names = lo.Keys(r.Skips)
	case "count":
		names = lo.Keys(r.Counts)
	}
	slices.Sort(names)
	return names
}
