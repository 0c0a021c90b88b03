package cartridge

import "testing"

func makeHeader(title string, cartType Type, romSizeByte, ramSizeByte uint8) []byte {
	rom := make([]byte, 0x150)
	copy(rom[0x134:], title)
	rom[0x147] = byte(cartType)
	rom[0x148] = romSizeByte
	rom[0x149] = ramSizeByte
	return rom
}

func TestParseHeader_Title(t *testing.T) {
	rom := makeHeader("TETRIS", TypeROM, 0, 0)
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Title != "TETRIS" {
		t.Fatalf("expected title TETRIS, got %q", h.Title)
	}
	if h.CartridgeType != TypeROM {
		t.Fatalf("expected ROM type, got %#02x", h.CartridgeType)
	}
}

func TestParseHeader_ROMSize(t *testing.T) {
	rom := makeHeader("X", TypeROM, 0x02, 0) // 32KB << 2 = 128KB
	h, _ := ParseHeader(rom)
	if h.ROMSize != 128*1024 {
		t.Fatalf("expected 128KB rom size, got %d", h.ROMSize)
	}
}

func TestNew_SelectsMBC1(t *testing.T) {
	rom := make([]byte, 64*1024)
	copy(rom, makeHeader("MBC1GAME", TypeMBC1RAMBattery, 0x01, 0x02))
	c, err := New(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.Mapper.(*MBC1); !ok {
		t.Fatalf("expected MBC1 mapper, got %T", c.Mapper)
	}
}

func TestMBC1_ROMBankZeroRemapsToOne(t *testing.T) {
	rom := make([]byte, 4*0x4000)
	for bank := 0; bank < 4; bank++ {
		rom[bank*0x4000] = byte(bank)
	}
	m := NewMBC1(rom, 0)
	m.Write(0x2000, 0x00) // request bank 0, should remap to 1
	if got := m.Read(0x4000); got != 1 {
		t.Fatalf("expected bank 1 data at 0x4000, got %d", got)
	}
}

func TestMBC1_RAMDisabledReadsFF(t *testing.T) {
	rom := make([]byte, 2*0x4000)
	m := NewMBC1(rom, 8*1024)
	m.Write(0xA000, 0x55) // RAM disabled, write should be ignored
	if got := m.Read(0xA000); got != 0xFF {
		t.Fatalf("expected 0xFF with RAM disabled, got %#02x", got)
	}
}

func TestMBC1_RAMEnableAndWrite(t *testing.T) {
	rom := make([]byte, 2*0x4000)
	m := NewMBC1(rom, 8*1024)
	m.Write(0x0000, 0x0A) // enable RAM
	m.Write(0xA000, 0x42)
	if got := m.Read(0xA000); got != 0x42 {
		t.Fatalf("expected 0x42, got %#02x", got)
	}
}

func TestMBC5_WideROMBank(t *testing.T) {
	rom := make([]byte, 256*0x4000) // 256 banks; bank 255 fits the low 8 bits
	rom[255*0x4000] = 0xAB
	m := NewMBC5(rom, 0, false)
	m.Write(0x2000, 0xFF) // low 8 bits
	m.Write(0x3000, 0x00) // high bit clear -> bank 255
	if got := m.Read(0x4000); got != 0xAB {
		t.Fatalf("expected bank 255 byte, got %#02x", got)
	}
}

func TestMBC3_RTCLatchRoundTrip(t *testing.T) {
	rom := make([]byte, 2*0x4000)
	m := NewMBC3(rom, 0)
	m.Write(0x0000, 0x0A) // enable RAM/RTC access
	m.Write(0x4000, 0x08) // select RTC seconds register
	m.Write(0xA000, 0x3B)
	m.Write(0x6000, 0x00) // latch sequence
	m.Write(0x6000, 0x01)
	if got := m.Read(0xA000); got != 0x3B {
		t.Fatalf("expected latched RTC value 0x3B, got %#02x", got)
	}
}

func TestFingerprint_StableForSameImage(t *testing.T) {
	rom := make([]byte, 64*1024)
	copy(rom, makeHeader("GAME", TypeROM, 0x01, 0))
	c1, _ := New(rom)
	c2, _ := New(append([]byte(nil), rom...))
	if c1.Fingerprint() != c2.Fingerprint() {
		t.Fatalf("expected identical fingerprints for identical images")
	}
}
