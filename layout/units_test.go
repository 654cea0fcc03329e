package layout

import (
	"math"
	"testing"

	"github.com/ByLCY/quire/glue"
)

// TestPtMmRoundTrip 验证 mm→sp→mm 的往返误差不超过 1sp。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	onesp := PtToMm / glue.One
	for _, mm := range samples {
		back := ToMM(FromMM(mm))
		if diff := math.Abs(back - mm); diff > onesp {
			t.Fatalf("mm→sp→mm 往返误差过大: in=%gmm back=%g diff=%g", mm, back, diff)
		}
	}
	if got := FromMM(25.4); got != glue.Dimen(math.Round(72.27*glue.One)) {
		t.Fatalf("25.4mm 应为 72.27pt，实际 %s", got)
	}
}

// TestPageSizePresets 验证纸张预设按 TeX 的换算得到确定的 sp 值。
func TestPageSizePresets(t *testing.T) {
	w, h, err := PageSize("a4")
	if err != nil {
		t.Fatalf("A4 解析失败: %v", err)
	}
	if w != 39158276 || h != 55380990 {
		t.Fatalf("A4 尺寸不符: %s x %s", w, h)
	}
	if w.String() != "597.50787pt" {
		t.Fatalf("A4 宽度显示不符: %s", w)
	}
	if math.Abs(ToMM(w)-210) > 1e-4 {
		t.Fatalf("A4 宽度换回 mm 不符: %g", ToMM(w))
	}
	if _, h, _ := PageSize("letter"); h.String() != "794.96999pt" {
		t.Fatalf("letter 高度不符: %s", h)
	}
	if _, _, err := PageSize("A0"); err == nil {
		t.Fatalf("未知纸张应报错")
	}
}

func TestToBP(t *testing.T) {
	if got := ToBP(glue.Pt(72)); math.Abs(got-72*72/72.27) > 1e-9 {
		t.Fatalf("72pt 应为 %gbp，实际 %g", 72*72/72.27, got)
	}
}
