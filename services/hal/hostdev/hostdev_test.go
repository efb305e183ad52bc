package hostdev

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"boardid-go/services/hal/internal/halcore"
)

func TestEEPROM_Protocol(t *testing.T) {
	e := NewEEPROM(0x50, 64)

	// Address 0x0010, then two data bytes.
	if err := e.Tx(0x50, []byte{0x00, 0x10, 0xAA, 0xBB}, nil); err != nil {
		t.Fatal(err)
	}
	r := make([]byte, 3)
	if err := e.Tx(0x50, []byte{0x00, 0x10}, r); err != nil {
		t.Fatal(err)
	}
	if r[0] != 0xAA || r[1] != 0xBB || r[2] != 0xFF {
		t.Fatalf("read % x", r)
	}

	// Current-address read continues from the pointer.
	one := make([]byte, 1)
	if err := e.Tx(0x50, []byte{0x00, 0x11}, nil); err != nil {
		t.Fatal(err)
	}
	if err := e.Tx(0x50, nil, one); err != nil || one[0] != 0xBB {
		t.Fatalf("current-address read = %#x, %v", one[0], err)
	}

	if err := e.Tx(0x51, nil, one); !errors.Is(err, ErrNAK) {
		t.Fatalf("wrong address: %v", err)
	}
	if err := e.Tx(0x50, []byte{0x00}, nil); !errors.Is(err, ErrNAK) {
		t.Fatalf("short address: %v", err)
	}
}

func TestEEPROM_Wraps(t *testing.T) {
	e := NewEEPROM(0x50, 16)
	if err := e.Tx(0x50, []byte{0x00, 0x0F, 1, 2}, nil); err != nil {
		t.Fatal(err)
	}
	if e.Peek(15) != 1 || e.Peek(0) != 2 {
		t.Fatalf("wrap: %#x %#x", e.Peek(15), e.Peek(0))
	}
}

func TestEEPROM_FileImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.bin")
	e := NewEEPROM(0x50, 32)

	if err := e.LoadFile(path); err != nil {
		t.Fatalf("missing file should load erased: %v", err)
	}
	e.Poke(2, 0x41)
	if err := e.SaveFile(path); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil || len(b) != 32 || b[2] != 0x41 {
		t.Fatalf("saved image len=%d err=%v", len(b), err)
	}

	f := NewEEPROM(0x50, 32)
	if err := f.LoadFile(path); err != nil || f.Peek(2) != 0x41 {
		t.Fatalf("reload: %#x %v", f.Peek(2), err)
	}
	f.Load([]byte{1})
	if f.Peek(0) != 1 || f.Peek(2) != 0xFF {
		t.Fatal("short image should leave the tail erased")
	}
}

func TestBus_Routes(t *testing.T) {
	a, b := NewEEPROM(0x50, 16), NewEEPROM(0x51, 16)
	bus := NewBus(a, b)
	if err := bus.Tx(0x51, []byte{0, 0, 7}, nil); err != nil {
		t.Fatal(err)
	}
	if a.Peek(0) != 0xFF || b.Peek(0) != 7 {
		t.Fatal("write routed to the wrong part")
	}
	if err := bus.Tx(0x22, nil, make([]byte, 1)); !errors.Is(err, ErrNAK) {
		t.Fatalf("empty address: %v", err)
	}
}

func TestPinsAndUART(t *testing.T) {
	f := NewPinFactory()
	p, ok := f.ByNumber(6)
	if !ok {
		t.Fatal("pin 6")
	}
	if _, ok := f.ByNumber(-1); ok {
		t.Fatal("negative pin accepted")
	}
	_ = p.ConfigureInput(halcore.PullUp)
	if !p.Get() || f.Pin(6) != p {
		t.Fatal("pull-up input should idle high on a stable instance")
	}

	u := NewUART(nil)
	u.Inject([]byte("ab"))
	buf := make([]byte, 4)
	if n, _ := u.Read(buf); n != 2 || u.Buffered() != 0 {
		t.Fatalf("read %d, buffered %d", n, u.Buffered())
	}
	if n, err := u.Read(buf); n != 0 || err != nil {
		t.Fatalf("empty read = %d, %v", n, err)
	}
}
