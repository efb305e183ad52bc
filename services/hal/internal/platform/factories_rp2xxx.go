// services/hal/internal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"machine"

	"tinygo.org/x/drivers"

	"boardid-go/services/hal/internal/halcore"
	"boardid-go/services/hal/setups"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// Default configures the plan's I²C bus and console UART and maps logical pin
// numbers straight to machine.Pin(n), matching Pico GP numbering.
func Default(plan setups.Plan) Factories {
	return Factories{
		I2C:  newI2CFactory(plan.I2C),
		Pins: rp2PinFactory{},
		UART: newUARTFactory(plan.UART),
	}
}

// ---- I²C ----

type rp2I2CFactory struct {
	buses map[string]drivers.I2C
}

func newI2CFactory(p setups.I2CPlan) *rp2I2CFactory {
	f := &rp2I2CFactory{buses: make(map[string]drivers.I2C)}
	var hw *machine.I2C
	switch p.ID {
	case "i2c0":
		hw = machine.I2C0
	case "i2c1":
		hw = machine.I2C1
	default:
		return f
	}
	hz := p.Hz
	if hz == 0 {
		hz = 400 * machine.KHz
	}
	if err := hw.Configure(machine.I2CConfig{
		Frequency: hz,
		SDA:       machine.Pin(p.SDA),
		SCL:       machine.Pin(p.SCL),
	}); err != nil {
		println("[platform] i2c configure failed:", p.ID, err.Error())
		return f
	}
	f.buses[p.ID] = hw
	return f
}

func (f *rp2I2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// ---- UART ----

type rp2UARTFactory struct {
	ports map[string]halcore.UARTPort
}

func newUARTFactory(p setups.UARTPlan) *rp2UARTFactory {
	f := &rp2UARTFactory{ports: make(map[string]halcore.UARTPort)}
	var hw *uartx.UART
	switch p.ID {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return f
	}
	// Defaults inside uartx apply to zero fields.
	_ = hw.Configure(uartx.UARTConfig{
		BaudRate: p.Baud,
		TX:       machine.Pin(p.TX),
		RX:       machine.Pin(p.RX),
	})
	f.ports[p.ID] = hw
	return f
}

func (f *rp2UARTFactory) ByID(id string) (halcore.UARTPort, bool) {
	u, ok := f.ports[id]
	return u, ok
}

// ---- GPIO ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	// Constrain to RP2 user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n)}, true
}

type rp2Pin struct {
	p machine.Pin
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
