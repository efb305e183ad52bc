//go:build pico && pico_breakout

package setups

import "boardid-go/types"

var SelectedPlan = Plan{
	Name: "pico_breakout",
	I2C:  I2CPlan{ID: "i2c0", SDA: 8, SCL: 9, Hz: 400_000},
	// AT24C32 on the breakout, A0..A2 tied low.
	EEPROM: EEPROMPlan{Addr: 0x50, Size: 4096, PageSize: 32, Base: 0, WriteCycleMs: 5},
	UART:   UARTPlan{ID: "uart0", TX: 0, RX: 1, Baud: 115_200},
	Switch: SwitchPlan{Top: 6, Bottom: 7, Pull: "up"},
	LEDs:   LEDPlan{Pins: [3]int{2, 3, 4}},

	BoardID: types.DefaultBoardID,
}
