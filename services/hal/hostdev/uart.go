package hostdev

import (
	"bytes"
	"io"
	"sync"

	"boardid-go/services/hal/internal/halcore"

	"tinygo.org/x/drivers"
)

// UART is a host stand-in for a hardware UART. Bytes written by the firmware
// go to the mirror writer (if any) and are kept for inspection; bytes the host side
// Injects are what the firmware reads back.
type UART struct {
	mu  sync.Mutex
	out io.Writer
	tx  bytes.Buffer
	rx  bytes.Buffer
}

// NewUART returns a UART that mirrors transmitted bytes to out. out may be nil.
func NewUART(out io.Writer) *UART { return &UART{out: out} }

func (u *UART) Write(p []byte) (int, error) {
	u.mu.Lock()
	u.tx.Write(p)
	out := u.out
	u.mu.Unlock()
	if out != nil {
		return out.Write(p)
	}
	return len(p), nil
}

// Buffered reports how many injected bytes are waiting to be read.
func (u *UART) Buffered() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rx.Len()
}

// Read drains injected bytes. It never blocks; with nothing buffered it
// returns 0, nil like the hardware ring.
func (u *UART) Read(p []byte) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.rx.Len() == 0 {
		return 0, nil
	}
	return u.rx.Read(p)
}

// Inject queues bytes as if a host had sent them.
func (u *UART) Inject(p []byte) {
	u.mu.Lock()
	u.rx.Write(p)
	u.mu.Unlock()
}

// Transmitted returns everything written so far.
func (u *UART) Transmitted() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.tx.String()
}

// UARTSet maps port ids to UARTs.
type UARTSet map[string]*UART

func (s UARTSet) ByID(id string) (halcore.UARTPort, bool) {
	u, ok := s[id]
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}

// BusSet maps bus ids to emulated buses.
type BusSet map[string]*Bus

func (s BusSet) ByID(id string) (drivers.I2C, bool) {
	b, ok := s[id]
	if !ok || b == nil {
		return nil, false
	}
	return b, true
}
