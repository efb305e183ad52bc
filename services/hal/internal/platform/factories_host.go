// services/hal/internal/platform/factories_host.go
//go:build !(rp2040 || rp2350)

package platform

import (
	"os"

	"boardid-go/services/hal/hostdev"
	"boardid-go/services/hal/setups"
)

// Default wires emulated hardware for host builds: an erased EEPROM on the
// plan's bus, a fresh pin set and a UART that echoes to stdout.
func Default(plan setups.Plan) Factories {
	return Emulated(plan, hostdev.NewEEPROM(plan.EEPROM.Addr, int(plan.EEPROM.Size)), hostdev.NewPinFactory(), hostdev.NewUART(os.Stdout))
}

// Emulated wires caller-owned emulators according to plan.
func Emulated(plan setups.Plan, eeprom *hostdev.EEPROM, pins *hostdev.PinFactory, uart *hostdev.UART) Factories {
	return Factories{
		I2C:  hostdev.BusSet{plan.I2C.ID: hostdev.NewBus(eeprom)},
		Pins: pins,
		UART: hostdev.UARTSet{plan.UART.ID: uart},
	}
}
