package provision

import (
	"context"

	"boardid-go/errcode"
	"boardid-go/types"
)

// Report runs the recurring status cycle for the result of Setup: LEDs dark,
// then either the persisted ID with LED1 lit or "not set" with LED2 lit. The
// persisted ID is read once and cached. It returns only when ctx ends.
func (p *Provisioner) Report(ctx context.Context, out types.Outcome) error {
	var st ReportState
	for {
		if err := p.ReportOnce(ctx, out, &st); err != nil {
			p.panel.SetAll(false)
			return err
		}
	}
}

// ReportState carries the stored ID between status cycles.
type ReportState struct {
	ID   types.BoardID
	Have bool // ID has been read successfully
}

// ReportOnce runs a single status cycle, filling st on the first good read.
func (p *Provisioner) ReportOnce(ctx context.Context, out types.Outcome, st *ReportState) error {
	p.panel.SetAll(false)
	if err := sleep(ctx, p.cfg.ReportDark); err != nil {
		return err
	}
	if out.Configured {
		if !st.Have {
			v, err := p.store.Get(p.cfg.Layout.ID())
			if err != nil {
				p.say("Board ID read failed: %s\n", string(errcode.MapDriverErr(err)))
			} else {
				st.ID, st.Have = types.BoardID(v), true
			}
		}
		if st.Have {
			p.say("Board ID: 0x%02X\n", uint8(st.ID))
			p.panel.SetLED(types.LEDWrite, true)
		}
	} else {
		p.say("Board ID not set!\n")
		p.panel.SetLED(types.LEDDone, true)
	}
	return sleep(ctx, p.cfg.ReportLit)
}
