// Package platform builds the HAL's bus, pin and UART factories for the
// current build target from a board plan.
package platform

import "boardid-go/services/hal/internal/halcore"

// Factories groups the injected hardware sources.
type Factories struct {
	I2C  halcore.I2CBusFactory
	Pins halcore.PinFactory
	UART halcore.UARTFactory
}
