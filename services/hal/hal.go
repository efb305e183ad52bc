// services/hal/hal.go

// Package hal opens the provisioning hardware described by a board plan:
// the breakout switch and LEDs on GPIO, the ID EEPROM on I²C and the
// console UART.
package hal

import (
	"boardid-go/drivers/breakout"
	"boardid-go/errcode"
	"boardid-go/services/hal/internal/halcore"
	"boardid-go/services/hal/internal/platform"
	"boardid-go/services/hal/setups"
	"boardid-go/services/provision"
)

// Board is the opened hardware for one plan.
type Board struct {
	Plan    setups.Plan
	Panel   *breakout.Device
	Store   *EEPROMStore
	Console *Console
}

// Default returns the build target's factories for plan: real peripherals on
// RP2 builds, fresh emulators on the host.
func Default(plan setups.Plan) Factories { return platform.Default(plan) }

// Open configures every pin and bus the plan names. It fails on the first
// resource the factories cannot supply.
func Open(plan setups.Plan, f Factories) (*Board, error) {
	bus, ok := f.I2C.ByID(plan.I2C.ID)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownBus, Op: "hal open", Msg: plan.I2C.ID}
	}
	port, ok := f.UART.ByID(plan.UART.ID)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownBus, Op: "hal open", Msg: plan.UART.ID}
	}

	pull := halcore.ParsePull(plan.Switch.Pull)
	top, err := inputPin(f.Pins, plan.Switch.Top, pull)
	if err != nil {
		return nil, err
	}
	bottom, err := inputPin(f.Pins, plan.Switch.Bottom, pull)
	if err != nil {
		return nil, err
	}

	var leds [3]breakout.Output
	for i, n := range plan.LEDs.Pins {
		// Start dark: the provisioning pass lights them itself.
		p, err := outputPin(f.Pins, n, plan.LEDs.ActiveLow)
		if err != nil {
			return nil, err
		}
		leds[i] = p
	}

	return &Board{
		Plan: plan,
		Panel: breakout.New(breakout.Config{
			Top:              top,
			Bottom:           bottom,
			SwitchActiveHigh: plan.Switch.ActiveHigh,
			LEDs:             leds,
			LEDActiveLow:     plan.LEDs.ActiveLow,
		}),
		Store:   NewEEPROMStore(bus, plan.EEPROM),
		Console: NewConsole(port),
	}, nil
}

// ProvisionConfig derives the provisioning settings from the plan.
func (b *Board) ProvisionConfig() provision.Config {
	return provision.Config{
		Desired: b.Plan.BoardID,
		Layout:  provision.Layout{Base: b.Plan.EEPROM.Base},
	}
}

// Provisioner returns a provisioner bound to this board.
func (b *Board) Provisioner() *provision.Provisioner {
	return provision.New(b.ProvisionConfig(), b.Store, b.Panel, b.Console)
}

func inputPin(f PinFactory, n int, pull Pull) (GPIOPin, error) {
	p, ok := f.ByNumber(n)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "hal open", Msg: "switch pin"}
	}
	if err := p.ConfigureInput(pull); err != nil {
		return nil, errcode.Wrap(errcode.UnknownPin, "hal open", err)
	}
	return p, nil
}

func outputPin(f PinFactory, n int, activeLow bool) (GPIOPin, error) {
	p, ok := f.ByNumber(n)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "hal open", Msg: "led pin"}
	}
	if err := p.ConfigureOutput(activeLow); err != nil {
		return nil, errcode.Wrap(errcode.UnknownPin, "hal open", err)
	}
	return p, nil
}
