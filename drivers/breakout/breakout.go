// Package breakout drives the provisioning breakout board: a three-position
// switch wired to two GPIO inputs and three indicator LEDs.
//
// The switch common is tied to ground and each end contact pulls one input
// low, so with pull-ups enabled:
//
//	top asserted      -> SwitchTop
//	bottom asserted   -> SwitchBottom
//	neither asserted  -> SwitchMiddle
//
// Both asserted at once is a wiring fault and reads as SwitchMiddle, so that
// neither end position is honoured.
//
// The driver does not configure pins; the platform hands it ready inputs and
// outputs. That keeps it portable between TinyGo targets and host fakes.
package breakout

import "boardid-go/types"

// Input reads a GPIO level.
type Input interface {
	Get() bool
}

// Output drives a GPIO level.
type Output interface {
	Set(level bool)
}

// Config wires the board. Unset LEDs are ignored.
type Config struct {
	Top, Bottom Input

	// SwitchActiveHigh selects pull-down wiring; default is active-low.
	SwitchActiveHigh bool

	// LEDs in board order: LED1, LED2, LED3.
	LEDs [3]Output
	// LEDActiveLow inverts LED outputs (sinking drive).
	LEDActiveLow bool
}

// Device is a configured breakout board.
type Device struct {
	cfg Config
}

// New creates a Device. It does not touch the pins until SetLED is called.
func New(cfg Config) *Device {
	return &Device{cfg: cfg}
}

func (d *Device) asserted(in Input) bool {
	if in == nil {
		return false
	}
	return in.Get() == d.cfg.SwitchActiveHigh
}

// Switch samples the switch position.
func (d *Device) Switch() types.SwitchPosition {
	top, bot := d.asserted(d.cfg.Top), d.asserted(d.cfg.Bottom)
	switch {
	case top && !bot:
		return types.SwitchTop
	case bot && !top:
		return types.SwitchBottom
	default:
		return types.SwitchMiddle
	}
}

func ledIndex(l types.LED) (int, bool) {
	i := int(l) - 1
	return i, i >= 0 && i < 3
}

// SetLED switches one indicator on or off. Unknown LEDs are ignored.
func (d *Device) SetLED(l types.LED, on bool) {
	i, ok := ledIndex(l)
	if !ok {
		return
	}
	if out := d.cfg.LEDs[i]; out != nil {
		out.Set(on != d.cfg.LEDActiveLow)
	}
}

// SetAll drives every LED to the same state.
func (d *Device) SetAll(on bool) {
	for _, l := range types.AllLEDs {
		d.SetLED(l, on)
	}
}
