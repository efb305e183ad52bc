package hostdev

import (
	"errors"
	"os"
	"sync"

	"tinygo.org/x/drivers"
)

// ErrNAK is returned when a transfer is addressed to a device that is not
// present or that has been told to fail.
var ErrNAK = errors.New("i2c: nak")

// EEPROM emulates an AT24Cxx-style serial EEPROM on the I²C bus. Word
// addresses are two bytes, big-endian. A write transfer sets the address
// pointer and stores any data bytes that follow; a read continues from the
// pointer. The pointer wraps at the end of the array.
//
// An erased part reads 0xFF everywhere.
type EEPROM struct {
	mu    sync.Mutex
	addr  uint16
	mem   []byte
	ptr   uint16
	fault bool
}

// NewEEPROM creates an erased part of size bytes answering at addr.
func NewEEPROM(addr uint16, size int) *EEPROM {
	if size <= 0 {
		size = 4096
	}
	e := &EEPROM{addr: addr, mem: make([]byte, size)}
	e.Erase()
	return e
}

// Tx implements drivers.I2C.
func (e *EEPROM) Tx(addr uint16, w, r []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if addr != e.addr || e.fault {
		return ErrNAK
	}
	switch {
	case len(w) == 1:
		// Single address byte is a protocol error for 16-bit parts.
		return ErrNAK
	case len(w) >= 2:
		e.ptr = e.wrap(uint16(w[0])<<8 | uint16(w[1]))
		for _, b := range w[2:] {
			e.mem[e.ptr] = b
			e.ptr = e.wrap(e.ptr + 1)
		}
	}
	for i := range r {
		r[i] = e.mem[e.ptr]
		e.ptr = e.wrap(e.ptr + 1)
	}
	return nil
}

func (e *EEPROM) wrap(a uint16) uint16 { return uint16(int(a) % len(e.mem)) }

// Address is the 7-bit bus address the part answers on.
func (e *EEPROM) Address() uint16 { return e.addr }

// Size returns the array size in bytes.
func (e *EEPROM) Size() int { return len(e.mem) }

// SetFault makes every transfer NAK until cleared.
func (e *EEPROM) SetFault(on bool) {
	e.mu.Lock()
	e.fault = on
	e.mu.Unlock()
}

// Peek reads a byte without going through the bus.
func (e *EEPROM) Peek(off int) byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mem[off%len(e.mem)]
}

// Poke writes a byte without going through the bus.
func (e *EEPROM) Poke(off int, v byte) {
	e.mu.Lock()
	e.mem[off%len(e.mem)] = v
	e.mu.Unlock()
}

// Erase sets every cell to 0xFF.
func (e *EEPROM) Erase() {
	e.mu.Lock()
	for i := range e.mem {
		e.mem[i] = 0xFF
	}
	e.ptr = 0
	e.mu.Unlock()
}

// Snapshot returns a copy of the array.
func (e *EEPROM) Snapshot() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]byte(nil), e.mem...)
}

// Load replaces the array contents. Short images leave the tail erased;
// long images are truncated.
func (e *EEPROM) Load(img []byte) {
	e.mu.Lock()
	n := copy(e.mem, img)
	for i := n; i < len(e.mem); i++ {
		e.mem[i] = 0xFF
	}
	e.mu.Unlock()
}

// LoadFile loads an image from path. A missing file leaves the part erased.
func (e *EEPROM) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		e.Erase()
		return nil
	}
	if err != nil {
		return err
	}
	e.Load(b)
	return nil
}

// SaveFile writes the whole array to path.
func (e *EEPROM) SaveFile(path string) error {
	return os.WriteFile(path, e.Snapshot(), 0o644)
}

// Bus is a set of emulated I²C targets sharing one bus.
type Bus struct {
	mu      sync.Mutex
	targets map[uint16]drivers.I2C
}

// NewBus returns a bus with the given EEPROMs attached.
func NewBus(parts ...*EEPROM) *Bus {
	b := &Bus{}
	for _, p := range parts {
		b.Attach(p.Address(), p)
	}
	return b
}

// Attach places a target at addr.
func (b *Bus) Attach(addr uint16, t drivers.I2C) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.targets == nil {
		b.targets = make(map[uint16]drivers.I2C)
	}
	b.targets[addr] = t
}

// Tx implements drivers.I2C. Transfers to empty addresses NAK.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	t, ok := b.targets[addr]
	b.mu.Unlock()
	if !ok {
		return ErrNAK
	}
	return t.Tx(addr, w, r)
}
