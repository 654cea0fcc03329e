package glue

// WideGlue accumulates glue without losing lower orders. Summing glues of
// different orders in the collapsed form would drop a finite stretch that
// becomes the only nonzero term once the infinite ones cancel, so every
// order keeps its own bucket until ToGlue.
//
// Sums are not checked for overflow.
type WideGlue struct {
	Length  Dimen
	Stretch [MaxOrder + 1]int64
	Shrink  [MaxOrder + 1]int64
}

// AddDimen adds a plain length.
func (w *WideGlue) AddDimen(d Dimen) {
	w.Length += d
}

// AddGlue adds the length and puts stretch and shrink into the buckets of
// their orders.
func (w *WideGlue) AddGlue(g Glue) {
	w.Length += g.Length
	w.Stretch[g.Stretch.Order] += g.Stretch.Value
	w.Shrink[g.Shrink.Order] += g.Shrink.Value
}

// AddWide adds another accumulator bucket by bucket.
func (w *WideGlue) AddWide(o *WideGlue) {
	w.Length += o.Length
	for i := range w.Stretch {
		w.Stretch[i] += o.Stretch[i]
		w.Shrink[i] += o.Shrink[i]
	}
}

// AddStretch adds d to the finite stretch.
func (w *WideGlue) AddStretch(d Dimen) {
	w.Stretch[Finite] += int64(d)
}

// AddShrink adds d to the finite shrink.
func (w *WideGlue) AddShrink(d Dimen) {
	w.Shrink[Finite] += int64(d)
}

func (w *WideGlue) SubtractDimen(d Dimen) {
	w.Length -= d
}

func (w *WideGlue) SubtractGlue(g Glue) {
	w.Length -= g.Length
	w.Stretch[g.Stretch.Order] -= g.Stretch.Value
	w.Shrink[g.Shrink.Order] -= g.Shrink.Value
}

func (w *WideGlue) SubtractWide(o *WideGlue) {
	w.Length -= o.Length
	for i := range w.Stretch {
		w.Stretch[i] -= o.Stretch[i]
		w.Shrink[i] -= o.Shrink[i]
	}
}

// SetDimen makes w a rigid length; any former stretch or shrink is gone.
func (w *WideGlue) SetDimen(d Dimen) {
	*w = WideGlue{Length: d}
}

// SetGlue resets w to g.
func (w *WideGlue) SetGlue(g Glue) {
	*w = WideGlue{}
	w.AddGlue(g)
}

// SetWide copies o into w.
func (w *WideGlue) SetWide(o *WideGlue) {
	*w = *o
}

// StretchAt returns the stretch bucket of the given order.
func (w *WideGlue) StretchAt(order int8) int64 { return w.Stretch[order] }

// ShrinkAt returns the shrink bucket of the given order.
func (w *WideGlue) ShrinkAt(order int8) int64 { return w.Shrink[order] }

// HighestStretchOrder is the highest order with a nonzero stretch bucket, or
// Finite when all are zero.
func (w *WideGlue) HighestStretchOrder() int8 {
	return highest(&w.Stretch)
}

// HighestShrinkOrder is the shrink counterpart of HighestStretchOrder.
func (w *WideGlue) HighestShrinkOrder() int8 {
	return highest(&w.Shrink)
}

// ToGlue collapses w, keeping only the highest nonzero order on each side.
func (w *WideGlue) ToGlue() Glue {
	st := highest(&w.Stretch)
	sh := highest(&w.Shrink)
	return Glue{
		Length:  w.Length,
		Stretch: Component{Value: w.Stretch[st], Order: st},
		Shrink:  Component{Value: w.Shrink[sh], Order: sh},
	}
}

func highest(b *[MaxOrder + 1]int64) int8 {
	for i := MaxOrder; i > 0; i-- {
		if b[i] != 0 {
			return int8(i)
		}
	}
	return Finite
}
