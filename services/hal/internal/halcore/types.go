// services/hal/internal/halcore/types.go
package halcore

import (
	"tinygo.org/x/drivers"
)

// ---- Buses ----

// I2CBusFactory injects configured I²C instances by id.
// Uses the TinyGo drivers.I2C interface to remain compatible on MCU builds.
type I2CBusFactory interface {
	ByID(id string) (drivers.I2C, bool)
}

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	default:
		return "none"
	}
}

// ParsePull accepts "up", "down", "none" (and pullup/pulldown spellings).
func ParsePull(s string) Pull {
	switch s {
	case "up", "UP", "pullup":
		return PullUp
	case "down", "DOWN", "pulldown":
		return PullDown
	default:
		return PullNone
	}
}

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
}

// PinFactory supplies GPIO pins by the configured number scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---------------- UART abstractions ----------------

// UARTPort is the subset of tinygo-uartx the console needs.
type UARTPort interface {
	Write(p []byte) (int, error)
	Buffered() int
	Read(p []byte) (int, error)
}

type UARTFactory interface {
	ByID(id string) (UARTPort, bool)
}
