package setups

import (
	"boardid-go/types"
)

// Plan specifies wiring and operating parameters for one board setup.
// The platform consumes it to configure pins, the EEPROM bus and the console.
type Plan struct {
	Name string

	I2C    I2CPlan
	EEPROM EEPROMPlan
	UART   UARTPlan
	Switch SwitchPlan
	LEDs   LEDPlan

	// BoardID is the identity this build provisions.
	BoardID types.BoardID
}

type I2CPlan struct {
	ID  string // e.g. "i2c0"
	SDA int    // GPIO number
	SCL int    // GPIO number
	Hz  uint32 // bus frequency
}

type EEPROMPlan struct {
	Addr         uint16 // 7-bit I²C address
	Size         uint16 // bytes
	PageSize     uint16
	Base         uint16 // offset of the marker/ID block
	WriteCycleMs uint16 // settle time after a byte write
}

type UARTPlan struct {
	ID   string // e.g. "uart0"
	TX   int    // GPIO number
	RX   int    // GPIO number
	Baud uint32
}

type SwitchPlan struct {
	Top, Bottom int
	Pull        string // "up" | "down" | "none"
	ActiveHigh  bool
}

type LEDPlan struct {
	Pins      [3]int // LED1, LED2, LED3
	ActiveLow bool
}

// BoardIDOverride replaces the plan's BoardID when set at link time:
//
//	tinygo flash -target pico -tags pico_breakout \
//	  -ldflags "-X boardid-go/services/hal/setups.BoardIDOverride=0x81" .
var BoardIDOverride string

// Selected returns the build's plan with any link-time override applied.
// ok is false when an override was given but could not be parsed.
func Selected() (p Plan, ok bool) {
	p = SelectedPlan
	if BoardIDOverride == "" {
		return p, true
	}
	id, err := types.ParseBoardID(BoardIDOverride)
	if err != nil {
		return p, false
	}
	p.BoardID = id
	return p, true
}
