package provision

import (
	"context"
	"io"
	"time"

	"boardid-go/errcode"
	"boardid-go/types"
	"boardid-go/x/fmtx"
)

// Panel is the operator-facing hardware: a three-position switch and three LEDs.
type Panel interface {
	Switch() types.SwitchPosition
	SetLED(l types.LED, on bool)
	SetAll(on bool)
}

// Console is the serial text channel. Ready reports whether a host is on the
// other end of the link.
type Console interface {
	io.Writer
	Ready() bool
}

// Config controls one provisioning pass. Zero durations take defaults.
type Config struct {
	Desired types.BoardID
	Layout  Layout

	Poll   time.Duration // gate sampling period; default DefaultPoll
	Settle time.Duration // after the console opens; default 100 ms

	// Status loop timings; default 1500 ms dark, 500 ms lit.
	ReportDark time.Duration
	ReportLit  time.Duration
}

func (c *Config) defaults() {
	if c.Poll <= 0 {
		c.Poll = DefaultPoll
	}
	if c.Settle <= 0 {
		c.Settle = 100 * time.Millisecond
	}
	if c.ReportDark <= 0 {
		c.ReportDark = 1500 * time.Millisecond
	}
	if c.ReportLit <= 0 {
		c.ReportLit = 500 * time.Millisecond
	}
}

// Provisioner runs the setup pass and the status loop against one board.
type Provisioner struct {
	cfg   Config
	store Store
	panel Panel
	con   Console
}

func New(cfg Config, store Store, panel Panel, con Console) *Provisioner {
	cfg.defaults()
	return &Provisioner{cfg: cfg, store: store, panel: panel, con: con}
}

func (p *Provisioner) say(format string, a ...any) {
	_, _ = fmtx.Fprintf(p.con, format, a...)
}

// Setup runs the gating sequence and, when required, writes the ID. It never
// fails hard: problems are reported on the console and reflected in the
// returned Outcome.
func (p *Provisioner) Setup(ctx context.Context) types.Outcome {
	out := types.Outcome{Desired: p.cfg.Desired}
	want := p.cfg.Desired

	p.panel.SetLED(types.LEDSerial, true)
	p.panel.SetLED(types.LEDWrite, true)
	p.panel.SetLED(types.LEDDone, true)

	if err := sleep(ctx, p.cfg.Settle); err != nil {
		out.Err = err
		return out
	}

	// Hold here while the switch is at bottom and nobody is listening.
	if err := WaitFor(ctx, p.cfg.Poll, func() bool {
		return p.panel.Switch() != types.SwitchBottom || p.con.Ready()
	}); err != nil {
		out.Err = err
		return out
	}
	p.panel.SetLED(types.LEDSerial, false)

	if p.panel.Switch() != types.SwitchMiddle {
		p.say("Return switch to middle to continue...\n")
	}
	if err := WaitFor(ctx, p.cfg.Poll, func() bool {
		return p.panel.Switch() == types.SwitchMiddle
	}); err != nil {
		out.Err = err
		return out
	}
	p.say("New ID: 0x%02X\n", uint8(want))

	p.say("Checking if set identifier exists...\n")
	found, err := Inspect(p.store, p.cfg.Layout, want)
	if err != nil {
		p.say("Storage error: %s\n", string(errcode.Of(err)))
		out.Err = err
		return out
	}
	out.State = found.State
	if found.MarkerPresent() {
		p.say("Set identifier found!\n")
		p.say("Current ID: 0x%02X\n", uint8(found.Current))
		if !found.NeedsWrite() {
			p.say("New ID matches current ID, giving up...\n")
			out.Configured = true
			return out
		}
	} else {
		p.say("Set identifier not found!\n")
	}

	p.say("Put switch to upper position to write ID...\n")
	if err := WaitFor(ctx, p.cfg.Poll, func() bool {
		return p.panel.Switch() == types.SwitchTop
	}); err != nil {
		out.Err = err
		return out
	}
	p.panel.SetLED(types.LEDWrite, false)

	verified := false
	err = Commit(p.store, p.cfg.Layout, want, found, func(s Step) {
		switch s {
		case StepWriteID:
			p.say("Writing new ID...\n")
			out.Wrote = true
		case StepVerifyID:
			p.say("Verifying ID write...\n")
		case StepVerified:
			verified = true
			p.say("ID Set: SUCCESSFUL\n")
		case StepWriteMarker:
			p.say("Writing identifier bytes...\n")
		}
	})
	switch {
	case err == nil:
		p.say("Finished!\n")
		out.Configured = true
	case verified:
		p.say("Identifier write: FAILED (%s)\n", string(errcode.Of(err)))
		out.Err = err
	default:
		p.say("ID Set: FAILED\n")
		out.Err = err
	}
	// LED2 stays lit until the status loop takes over the panel.
	p.panel.SetLED(types.LEDSerial, false)
	return out
}
