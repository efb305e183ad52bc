// internal/simconfig/validate.go
package simconfig

import (
	"fmt"

	"boardid-go/types"
)

// Validate checks profile correctness.
// It performs declarative validation only and does not mutate the profile.
func Validate(p *Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	if p.BoardID != "" {
		if _, err := types.ParseBoardID(p.BoardID); err != nil {
			return fmt.Errorf("board_id %q: not a byte value", p.BoardID)
		}
	}

	// ------------------------------------------------------------
	// EEPROM GEOMETRY
	// ------------------------------------------------------------

	if p.EEPROM.Size < 0 || p.EEPROM.Size > 0xFFFF {
		return fmt.Errorf("eeprom.size %d: out of range", p.EEPROM.Size)
	}
	if p.EEPROM.Base < 0 {
		return fmt.Errorf("eeprom.base %d: must not be negative", p.EEPROM.Base)
	}
	// A zero size takes the default later; check the block against whatever applies.
	size := p.EEPROM.Size
	if size == 0 {
		size = DefaultEEPROMSize
	}
	if p.EEPROM.Base+3 > size {
		return fmt.Errorf("eeprom.base %d: marker/ID block does not fit in %d bytes", p.EEPROM.Base, size)
	}

	// ------------------------------------------------------------
	// TIMING
	// ------------------------------------------------------------

	for name, v := range map[string]int{
		"poll_ms":        p.Timing.PollMs,
		"settle_ms":      p.Timing.SettleMs,
		"report_dark_ms": p.Timing.ReportDarkMs,
		"report_lit_ms":  p.Timing.ReportLitMs,
	} {
		if v < 0 {
			return fmt.Errorf("timing.%s %d: must not be negative", name, v)
		}
	}
	if p.Report.Cycles < 0 {
		return fmt.Errorf("report.cycles %d: must not be negative", p.Report.Cycles)
	}

	// ------------------------------------------------------------
	// OPERATOR SCRIPT
	// ------------------------------------------------------------

	if p.Switch.Initial != "" {
		if _, ok := types.ParseSwitchPosition(p.Switch.Initial); !ok {
			return fmt.Errorf("switch.initial %q: want bottom, middle or top", p.Switch.Initial)
		}
	}
	last := 0
	for i, s := range p.Switch.Script {
		if s.AfterMs < last {
			return fmt.Errorf("switch.script[%d]: after_ms %d goes backwards (previous %d)", i, s.AfterMs, last)
		}
		last = s.AfterMs
		if s.Position == "" && !s.Connect {
			return fmt.Errorf("switch.script[%d]: needs a position or connect", i)
		}
		if s.Position != "" {
			if _, ok := types.ParseSwitchPosition(s.Position); !ok {
				return fmt.Errorf("switch.script[%d]: position %q: want bottom, middle or top", i, s.Position)
			}
		}
	}

	return nil
}
