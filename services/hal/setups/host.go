//go:build !(pico && pico_breakout)

package setups

import "boardid-go/types"

// SelectedPlan for host builds: same wiring numbers as the breakout so the
// fake pin factory can be driven by tests, no write-cycle delay.
var SelectedPlan = Plan{
	Name:    "host",
	I2C:     I2CPlan{ID: "i2c0"},
	EEPROM:  EEPROMPlan{Addr: 0x50, Size: 4096, PageSize: 32},
	UART:    UARTPlan{ID: "uart0", Baud: 115_200},
	Switch:  SwitchPlan{Top: 6, Bottom: 7, Pull: "up"},
	LEDs:    LEDPlan{Pins: [3]int{2, 3, 4}},
	BoardID: types.DefaultBoardID,
}
