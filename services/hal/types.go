// services/hal/types.go
package hal

import (
	"boardid-go/services/hal/internal/halcore"
	"boardid-go/services/hal/internal/platform"
)

// Re-exports so callers outside services/hal can supply their own hardware.
type (
	I2CBusFactory = halcore.I2CBusFactory
	PinFactory    = halcore.PinFactory
	UARTFactory   = halcore.UARTFactory
	GPIOPin       = halcore.GPIOPin
	UARTPort      = halcore.UARTPort
	Pull          = halcore.Pull

	// Factories groups the three hardware sources Open needs.
	Factories = platform.Factories
)

const (
	PullNone = halcore.PullNone
	PullUp   = halcore.PullUp
	PullDown = halcore.PullDown
)
