// Package hostdev emulates the board's peripherals on a host: GPIO pins, an
// AT24-style I²C EEPROM and a UART. Tests and the simulator drive them
// directly; the host platform factories hand them to the HAL.
package hostdev

import (
	"sync"

	"boardid-go/services/hal/internal/halcore"
)

// Pin implements halcore.GPIOPin for host-side tests.
type Pin struct {
	mu      sync.RWMutex
	level   bool
	modeOut bool
	pull    halcore.Pull
}

func (p *Pin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	// An unconnected input settles to its pull.
	switch pull {
	case halcore.PullUp:
		p.level = true
	case halcore.PullDown:
		p.level = false
	}
	p.mu.Unlock()
	return nil
}

func (p *Pin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *Pin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *Pin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

// IsOutput reports whether the pin was last configured as an output.
func (p *Pin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Pull reports the pull configured for an input.
func (p *Pin) Pull() halcore.Pull {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pull
}

// PinFactory returns stable *Pin instances per number.
type PinFactory struct {
	mu   sync.Mutex
	pins map[int]*Pin
}

func NewPinFactory() *PinFactory { return &PinFactory{pins: make(map[int]*Pin)} }

func (f *PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	if n < 0 {
		return nil, false
	}
	return f.Pin(n), true
}

// Pin exposes the underlying *Pin so tests can drive inputs and read outputs.
func (f *PinFactory) Pin(n int) *Pin {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*Pin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &Pin{}
		f.pins[n] = p
	}
	return p
}
