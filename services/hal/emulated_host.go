//go:build !(rp2040 || rp2350)

package hal

import (
	"boardid-go/services/hal/hostdev"
	"boardid-go/services/hal/internal/platform"
	"boardid-go/services/hal/setups"
)

// Emulated wires caller-owned emulators to the plan's bus, pin and UART ids.
func Emulated(plan setups.Plan, eeprom *hostdev.EEPROM, pins *hostdev.PinFactory, uart *hostdev.UART) Factories {
	return platform.Emulated(plan, eeprom, pins, uart)
}
