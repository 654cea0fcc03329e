package fonts

import "testing"

func TestLoadBuiltin(t *testing.T) {
	for _, name := range []string{"embed:lmroman10-regular", "LMMONO10-REGULAR", "embed:", Default, Mono} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(data) < 1024 {
			t.Fatalf("font %s looks truncated: %d bytes", name, len(data))
		}
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("embed:Inter-Regular"); err == nil {
		t.Fatalf("expected error for unknown font")
	}
	if got := Names(); len(got) != 6 || got[0] != "lmmath" {
		t.Fatalf("unexpected names: %v", got)
	}
}
