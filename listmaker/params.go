package listmaker

import "github.com/ByLCY/quire/glue"

// The parameter tables map TeX's names (without the backslash) to the
// fields of Params.

func (p *Params) dimens() map[string]*glue.Dimen {
	return map[string]*glue.Dimen{
		"hsize":         &p.HSize,
		"vsize":         &p.VSize,
		"parindent":     &p.ParIndent,
		"lineskiplimit": &p.LineSkipLimit,
		"hfuzz":         &p.HFuzz,
		"vfuzz":         &p.VFuzz,
	}
}

func (p *Params) skips() map[string]*glue.Glue {
	return map[string]*glue.Glue{
		"spaceskip":    &p.SpaceSkip,
		"xspaceskip":   &p.XSpaceSkip,
		"parfillskip":  &p.ParFillSkip,
		"parskip":      &p.ParSkip,
		"baselineskip": &p.BaselineSkip,
		"lineskip":     &p.LineSkip,
		"leftskip":     &p.LeftSkip,
		"rightskip":    &p.RightSkip,
	}
}

func (p *Params) counts() map[string]*int {
	return map[string]*int{
		"hbadness":         &p.HBadness,
		"vbadness":         &p.VBadness,
		"interlinepenalty": &p.InterLinePenalty,
		"clubpenalty":      &p.ClubPenalty,
		"widowpenalty":     &p.WidowPenalty,
		"brokenpenalty":    &p.BrokenPenalty,
	}
}

// SetDimen assigns a dimen parameter by name. It reports false for names
// that are not parameters.
func (p *Params) SetDimen(name string, d glue.Dimen) bool {
	ptr, ok := p.dimens()[name]
	if ok {
		*ptr = d
	}
	return ok
}

// SetSkip assigns a glue parameter by name.
func (p *Params) SetSkip(name string, g glue.Glue) bool {
	ptr, ok := p.skips()[name]
	if ok {
		*ptr = g
	}
	return ok
}

// SetCount assigns an integer parameter by name. \hyphenchar is a count
// holding a character code.
func (p *Params) SetCount(name string, n int) bool {
	if name == "hyphenchar" {
		p.HyphenChar = rune(n)
		return true
	}
	ptr, ok := p.counts()[name]
	if ok {
		*ptr = n
	}
	return ok
}

// Dimens returns the dimen parameters by name.
func (p *Params) Dimens() map[string]glue.Dimen {
	out := map[string]glue.Dimen{}
	for name, ptr := range p.dimens() {
		out[name] = *ptr
	}
	return out
}

func (p *Params) Skips() map[string]glue.Glue {
	out := map[string]glue.Glue{}
	for name, ptr := range p.skips() {
		out[name] = *ptr
	}
	return out
}

func (p *Params) Counts() map[string]int {
	out := map[string]int{"hyphenchar": int(p.HyphenChar)}
	for name, ptr := range p.counts() {
		out[name] = *ptr
	}
	return out
}
