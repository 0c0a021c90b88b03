package boot

import "testing"

func TestNew_RejectsWrongLength(t *testing.T) {
	if _, err := New(make([]byte, 100)); err == nil {
		t.Fatal("expected an error for an invalid boot rom length")
	}
}

func TestNew_AcceptsDMGAndCGBLengths(t *testing.T) {
	if _, err := New(make([]byte, 256)); err != nil {
		t.Fatalf("New(256): %v", err)
	}
	if _, err := New(make([]byte, 2304)); err != nil {
		t.Fatalf("New(2304): %v", err)
	}
}

func TestContains_DMGCoversOnlyLowPage(t *testing.T) {
	r, _ := New(make([]byte, 256))
	if !r.Contains(0x0000) || !r.Contains(0x00FF) {
		t.Fatal("expected DMG boot rom to cover 0x0000-0x00FF")
	}
	if r.Contains(0x0100) {
		t.Fatal("expected DMG boot rom not to cover the header hole")
	}
	if r.Contains(0x0200) {
		t.Fatal("expected DMG boot rom not to cover the CGB-only region")
	}
}

func TestContains_CGBLeavesHeaderHoleVisible(t *testing.T) {
	r, _ := New(make([]byte, 2304))
	if !r.IsCGB() {
		t.Fatal("expected a 2304-byte image to report IsCGB")
	}
	if r.Contains(0x0100) || r.Contains(0x01FF) {
		t.Fatal("expected the cartridge header hole to stay unmapped even for CGB")
	}
	if !r.Contains(0x0200) || !r.Contains(0x08FF) {
		t.Fatal("expected CGB boot rom to cover 0x0200-0x08FF")
	}
	if r.Contains(0x0900) {
		t.Fatal("expected CGB boot rom not to extend past 0x08FF")
	}
}

func TestRead_OutOfRangeReturnsFF(t *testing.T) {
	r, _ := New(make([]byte, 256))
	if got := r.Read(0x0200); got != 0xFF {
		t.Fatalf("Read(0x0200) = %#02x, want 0xFF", got)
	}
}
