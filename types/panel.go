package types

// ------------------------
// Switch
// ------------------------

// SwitchPosition is the live state of the three-position switch.
type SwitchPosition uint8

const (
	SwitchBottom SwitchPosition = iota
	SwitchMiddle
	SwitchTop
)

func (p SwitchPosition) String() string {
	switch p {
	case SwitchBottom:
		return "bottom"
	case SwitchMiddle:
		return "middle"
	case SwitchTop:
		return "top"
	default:
		return "unknown"
	}
}

// ParseSwitchPosition accepts "bottom"/"b", "middle"/"mid"/"m", "top"/"t".
func ParseSwitchPosition(s string) (SwitchPosition, bool) {
	switch s {
	case "bottom", "bot", "b":
		return SwitchBottom, true
	case "middle", "mid", "m":
		return SwitchMiddle, true
	case "top", "t":
		return SwitchTop, true
	default:
		return 0, false
	}
}

// ------------------------
// Indicator LEDs
// ------------------------

// LED selects one of the three indicator lights.
type LED uint8

const (
	LEDWrite  LED = 1 // waiting for the write command (switch to top)
	LEDDone   LED = 2 // waiting for the write to finish; "not set" in the status loop
	LEDSerial LED = 3 // waiting for the serial link
)

// AllLEDs in board order.
var AllLEDs = [...]LED{LEDWrite, LEDDone, LEDSerial}

func (l LED) String() string {
	switch l {
	case LEDWrite:
		return "led1"
	case LEDDone:
		return "led2"
	case LEDSerial:
		return "led3"
	default:
		return "led?"
	}
}
