package hal

import (
	"context"
	"strings"
	"testing"
	"time"

	"boardid-go/errcode"
	"boardid-go/services/hal/hostdev"
	"boardid-go/services/hal/internal/platform"
	"boardid-go/services/hal/setups"
	"boardid-go/types"
)

type rig struct {
	plan   setups.Plan
	eeprom *hostdev.EEPROM
	pins   *hostdev.PinFactory
	uart   *hostdev.UART
	board  *Board
}

func newRig(t *testing.T, id types.BoardID) *rig {
	t.Helper()
	plan := setups.SelectedPlan
	plan.BoardID = id
	r := &rig{
		plan:   plan,
		eeprom: hostdev.NewEEPROM(plan.EEPROM.Addr, int(plan.EEPROM.Size)),
		pins:   hostdev.NewPinFactory(),
		uart:   hostdev.NewUART(nil),
	}
	b, err := Open(plan, platform.Emulated(plan, r.eeprom, r.pins, r.uart))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	r.board = b
	return r
}

func (r *rig) waitTx(t *testing.T, s string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(r.uart.Transmitted(), s) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %q; console:\n%s", s, r.uart.Transmitted())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestOpen_ConfiguresPins(t *testing.T) {
	r := newRig(t, types.DefaultBoardID)

	for _, n := range []int{r.plan.Switch.Top, r.plan.Switch.Bottom} {
		p := r.pins.Pin(n)
		if p.IsOutput() || p.Pull() != PullUp {
			t.Fatalf("switch pin %d not an input with pull-up", n)
		}
	}
	for _, n := range r.plan.LEDs.Pins {
		p := r.pins.Pin(n)
		if !p.IsOutput() || p.Get() {
			t.Fatalf("LED pin %d should be a dark output", n)
		}
	}
	if r.board.Panel.Switch() != types.SwitchMiddle {
		t.Fatal("idle switch should read middle")
	}
}

func TestOpen_UnknownResources(t *testing.T) {
	plan := setups.SelectedPlan
	f := platform.Emulated(plan, hostdev.NewEEPROM(0x50, 64), hostdev.NewPinFactory(), hostdev.NewUART(nil))

	bad := plan
	bad.I2C.ID = "i2c9"
	if _, err := Open(bad, f); errcode.Of(err) != errcode.UnknownBus {
		t.Fatalf("i2c: err = %v", err)
	}
	bad = plan
	bad.UART.ID = "uart7"
	if _, err := Open(bad, f); errcode.Of(err) != errcode.UnknownBus {
		t.Fatalf("uart: err = %v", err)
	}
	bad = plan
	bad.LEDs.Pins[1] = -1
	if _, err := Open(bad, f); errcode.Of(err) != errcode.UnknownPin {
		t.Fatalf("pin: err = %v", err)
	}
}

func TestBoard_ProvisionsFreshEEPROM(t *testing.T) {
	r := newRig(t, 0x81)

	done := make(chan types.Outcome, 1)
	go func() { done <- r.board.Provisioner().Setup(context.Background()) }()

	r.waitTx(t, "Put switch to upper position to write ID...\n")
	if r.eeprom.Peek(0) != 0xFF {
		t.Fatal("nothing may be written before the switch goes up")
	}
	r.pins.Pin(r.plan.Switch.Top).Set(false) // active-low: top asserted

	var out types.Outcome
	select {
	case out = <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("setup did not finish; console:\n%s", r.uart.Transmitted())
	}
	if !out.Configured || !out.Wrote || out.Err != nil {
		t.Fatalf("outcome = %+v", out)
	}
	if got := r.eeprom.Snapshot()[:3]; got[0] != 0x5E || got[1] != 0x1F || got[2] != 0x81 {
		t.Fatalf("eeprom = % x", got)
	}
	if !strings.HasSuffix(r.uart.Transmitted(), "ID Set: SUCCESSFUL\nWriting identifier bytes...\nFinished!\n") {
		t.Fatalf("console:\n%s", r.uart.Transmitted())
	}
}

func TestBoard_AlreadyProvisioned(t *testing.T) {
	r := newRig(t, 0x41)
	r.eeprom.Load([]byte{0x5E, 0x1F, 0x41})

	out := r.board.Provisioner().Setup(context.Background())
	if !out.Configured || out.Wrote {
		t.Fatalf("outcome = %+v", out)
	}
	if !strings.Contains(r.uart.Transmitted(), "New ID matches current ID, giving up...\n") {
		t.Fatalf("console:\n%s", r.uart.Transmitted())
	}
}
