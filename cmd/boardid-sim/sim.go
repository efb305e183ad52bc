package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"boardid-go/internal/simconfig"
	"boardid-go/services/hal"
	"boardid-go/services/hal/hostdev"
	"boardid-go/services/hal/setups"
	"boardid-go/services/provision"
	"boardid-go/types"
)

// simulation is one emulated board built from a profile.
type simulation struct {
	prof   *simconfig.Profile
	plan   setups.Plan
	eeprom *hostdev.EEPROM
	pins   *hostdev.PinFactory
	uart   *hostdev.UART
	board  *hal.Board
}

// planFor applies the profile to the host plan.
func planFor(prof *simconfig.Profile) (setups.Plan, error) {
	plan := setups.SelectedPlan
	if prof.BoardID != "" {
		id, err := types.ParseBoardID(prof.BoardID)
		if err != nil {
			return plan, fmt.Errorf("board_id %q: %w", prof.BoardID, err)
		}
		plan.BoardID = id
	}
	plan.EEPROM.Size = uint16(prof.EEPROM.Size)
	plan.EEPROM.Base = uint16(prof.EEPROM.Base)
	return plan, nil
}

// openImage creates the emulated part and loads the profile's image into it.
func openImage(prof *simconfig.Profile, plan setups.Plan) (*hostdev.EEPROM, error) {
	part := hostdev.NewEEPROM(plan.EEPROM.Addr, prof.EEPROM.Size)
	if prof.EEPROM.Image != "" {
		if err := part.LoadFile(prof.EEPROM.Image); err != nil {
			return nil, fmt.Errorf("load image: %w", err)
		}
	}
	return part, nil
}

func newSimulation(prof *simconfig.Profile, out io.Writer) (*simulation, error) {
	plan, err := planFor(prof)
	if err != nil {
		return nil, err
	}
	part, err := openImage(prof, plan)
	if err != nil {
		return nil, err
	}
	s := &simulation{
		prof:   prof,
		plan:   plan,
		eeprom: part,
		pins:   hostdev.NewPinFactory(),
		uart:   hostdev.NewUART(out),
	}
	s.board, err = hal.Open(plan, hal.Emulated(plan, s.eeprom, s.pins, s.uart))
	if err != nil {
		return nil, err
	}

	// Opening configures the inputs back to their pulls; set the operator state after.
	pos, _ := types.ParseSwitchPosition(prof.Switch.Initial)
	s.setSwitch(pos)
	if prof.Console.Connected {
		s.connect()
	}
	part.SetFault(prof.EEPROM.Fault)

	slog.Debug("simulation ready", "profile", prof.Name, "board_id", plan.BoardID.String(), "image", prof.EEPROM.Image)
	return s, nil
}

// setSwitch drives the two switch inputs for pos.
func (s *simulation) setSwitch(pos types.SwitchPosition) {
	sw := s.plan.Switch
	s.pins.Pin(sw.Top).Set((pos == types.SwitchTop) == sw.ActiveHigh)
	s.pins.Pin(sw.Bottom).Set((pos == types.SwitchBottom) == sw.ActiveHigh)
	slog.Debug("switch", "position", pos.String())
}

// connect plays a host opening the serial port.
func (s *simulation) connect() {
	s.uart.Inject([]byte("\n"))
	slog.Debug("console connected")
}

func (s *simulation) config() provision.Config {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	cfg := s.board.ProvisionConfig()
	cfg.Poll = ms(s.prof.Timing.PollMs)
	cfg.Settle = ms(s.prof.Timing.SettleMs)
	cfg.ReportDark = ms(s.prof.Timing.ReportDarkMs)
	cfg.ReportLit = ms(s.prof.Timing.ReportLitMs)
	return cfg
}

// runScript replays the profile's operator steps relative to start.
func (s *simulation) runScript(ctx context.Context, start time.Time) {
	for _, step := range s.prof.Switch.Script {
		wait := time.Until(start.Add(time.Duration(step.AfterMs) * time.Millisecond))
		if wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
			}
		}
		if step.Connect {
			s.connect()
		}
		if pos, ok := types.ParseSwitchPosition(step.Position); ok {
			s.setSwitch(pos)
		}
	}
}

// readOperator takes switch moves from in, one per line.
func (s *simulation) readOperator(ctx context.Context, in io.Reader, quit func()) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.ToLower(strings.TrimSpace(sc.Text()))
		switch line {
		case "":
		case "c", "connect":
			s.connect()
		case "q", "quit":
			quit()
			return
		default:
			pos, ok := types.ParseSwitchPosition(line)
			if !ok {
				slog.Warn("unknown input; use b, m, t, c or q", "input", line)
				continue
			}
			s.setSwitch(pos)
		}
	}
}

func (s *simulation) save() error {
	if s.prof.EEPROM.Image == "" {
		return nil
	}
	if err := s.eeprom.SaveFile(s.prof.EEPROM.Image); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	slog.Debug("image saved", "path", s.prof.EEPROM.Image)
	return nil
}

// run executes the setup pass, persists the image and then runs the status
// loop for the profile's cycle count.
func (s *simulation) run(ctx context.Context) (types.Outcome, error) {
	p := provision.New(s.config(), s.board.Store, s.board.Panel, s.board.Console)

	go s.runScript(ctx, time.Now())
	out := p.Setup(ctx)
	slog.Info("setup finished",
		"configured", out.Configured,
		"state", out.State.String(),
		"wrote", out.Wrote,
		"error", out.Err)

	if err := s.save(); err != nil {
		return out, err
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}

	if s.prof.Report.Cycles == 0 {
		return out, p.Report(ctx, out)
	}
	var st provision.ReportState
	for i := 0; i < s.prof.Report.Cycles; i++ {
		if err := p.ReportOnce(ctx, out, &st); err != nil {
			return out, err
		}
	}
	return out, nil
}

// dumpImage prints what the firmware would find in the image.
func dumpImage(w io.Writer, prof *simconfig.Profile) error {
	plan, err := planFor(prof)
	if err != nil {
		return err
	}
	if prof.EEPROM.Image == "" {
		return errors.New("no image given")
	}
	part, err := openImage(prof, plan)
	if err != nil {
		return err
	}
	store := hal.NewEEPROMStore(hostdev.NewBus(part), plan.EEPROM)
	layout := provision.Layout{Base: plan.EEPROM.Base}

	found, err := provision.Inspect(store, layout, plan.BoardID)
	if err != nil {
		return err
	}
	m1, m2 := part.Peek(int(layout.Marker1())), part.Peek(int(layout.Marker2()))

	fmt.Fprintf(w, "image:  %s (%d bytes, base %d)\n", prof.EEPROM.Image, part.Size(), layout.Base)
	if found.MarkerPresent() {
		fmt.Fprintf(w, "marker: %02X %02X (present)\n", m1, m2)
		id := found.Current
		fmt.Fprintf(w, "id:     %s (%s, index %d)\n", id, id.Role(), id.Index())
	} else {
		fmt.Fprintf(w, "marker: %02X %02X (absent)\n", m1, m2)
		fmt.Fprintf(w, "id:     not set\n")
	}
	fmt.Fprintf(w, "state:  %s for %s\n", found.State, plan.BoardID)
	return nil
}

// eraseImage clears the marker and ID, or the whole part, and saves it.
func eraseImage(prof *simconfig.Profile, all bool) error {
	plan, err := planFor(prof)
	if err != nil {
		return err
	}
	if prof.EEPROM.Image == "" {
		return errors.New("no image given")
	}
	part, err := openImage(prof, plan)
	if err != nil {
		return err
	}
	if all {
		part.Erase()
	} else {
		store := hal.NewEEPROMStore(hostdev.NewBus(part), plan.EEPROM)
		layout := provision.Layout{Base: plan.EEPROM.Base}
		for _, off := range []uint16{layout.Marker1(), layout.Marker2(), layout.ID()} {
			if err := store.Put(off, 0xFF); err != nil {
				return fmt.Errorf("erase offset %d: %w", off, err)
			}
		}
	}
	if err := part.SaveFile(prof.EEPROM.Image); err != nil {
		return err
	}
	slog.Info("image erased", "path", prof.EEPROM.Image, "all", all)
	return nil
}
