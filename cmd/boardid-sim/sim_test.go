package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"boardid-go/errcode"
	"boardid-go/internal/simconfig"
	"boardid-go/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is written by the console while the test reads it.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func fastProfile(t *testing.T, id string, script ...simconfig.ScriptStep) *simconfig.Profile {
	t.Helper()
	p := &simconfig.Profile{
		BoardID: id,
		EEPROM:  simconfig.EEPROMConfig{Image: filepath.Join(t.TempDir(), "eeprom.bin")},
		Timing:  simconfig.TimingConfig{PollMs: 1, SettleMs: 1, ReportDarkMs: 1, ReportLitMs: 1},
		Switch:  simconfig.SwitchConfig{Script: script},
		Report:  simconfig.ReportConfig{Cycles: 2},
	}
	require.NoError(t, simconfig.Validate(p))
	simconfig.Normalize(p)
	return p
}

func runSim(t *testing.T, prof *simconfig.Profile) (types.Outcome, string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out syncBuffer
	sim, err := newSimulation(prof, &out)
	require.NoError(t, err)
	res, err := sim.run(ctx)
	require.NoError(t, err, "console:\n%s", out.String())
	return res, out.String()
}

func TestRun_ProvisionsThenSkips(t *testing.T) {
	prof := fastProfile(t, "0x81", simconfig.ScriptStep{AfterMs: 30, Position: "top"})

	res, console := runSim(t, prof)
	assert.True(t, res.Configured)
	assert.True(t, res.Wrote)
	assert.Equal(t, types.StateNoMarker, res.State)
	assert.Contains(t, console, "New ID: 0x81\nChecking if set identifier exists...\nSet identifier not found!\n")
	assert.Contains(t, console, "ID Set: SUCCESSFUL\nWriting identifier bytes...\nFinished!\n")
	assert.Equal(t, 2, strings.Count(console, "Board ID: 0x81\n"))

	img, err := os.ReadFile(prof.EEPROM.Image)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x5E, 0x1F, 0x81}, img[:3])

	// Same image, same ID: nothing to do and no gate.
	prof.Switch.Script = nil
	res, console = runSim(t, prof)
	assert.True(t, res.Configured)
	assert.False(t, res.Wrote)
	assert.Contains(t, console, "Current ID: 0x81\nNew ID matches current ID, giving up...\n")
	assert.NotContains(t, console, "Put switch")
}

func TestRun_DifferentIDRewritesOnlyID(t *testing.T) {
	prof := fastProfile(t, "0x41", simconfig.ScriptStep{AfterMs: 20, Position: "top"})
	require.NoError(t, os.WriteFile(prof.EEPROM.Image, []byte{0x5E, 0x1F, 0x82}, 0o644))

	res, console := runSim(t, prof)
	assert.True(t, res.Configured)
	assert.Equal(t, types.StateMarkerDiffering, res.State)
	assert.Contains(t, console, "Current ID: 0x82\n")
	assert.NotContains(t, console, "Writing identifier bytes...")

	img, err := os.ReadFile(prof.EEPROM.Image)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x5E, 0x1F, 0x41}, img[:3])
}

func TestRun_BottomWaitsForConsole(t *testing.T) {
	prof := fastProfile(t, "0x41",
		simconfig.ScriptStep{AfterMs: 30, Connect: true},
		simconfig.ScriptStep{AfterMs: 60, Position: "middle"},
		simconfig.ScriptStep{AfterMs: 90, Position: "top"},
	)
	prof.Switch.Initial = "bottom"

	res, console := runSim(t, prof)
	assert.True(t, res.Configured)
	assert.True(t, strings.HasPrefix(console, "Return switch to middle to continue...\nNew ID: 0x41\n"), console)
}

func TestRun_StorageFault(t *testing.T) {
	prof := fastProfile(t, "0x41")
	prof.EEPROM.Fault = true

	res, console := runSim(t, prof)
	assert.False(t, res.Configured)
	assert.Equal(t, errcode.StorageIO, errcode.Of(res.Err))
	assert.Contains(t, console, "Storage error: storage_io\n")
	assert.Equal(t, 2, strings.Count(console, "Board ID not set!\n"))
}

func TestRun_CancelledWhileGated(t *testing.T) {
	prof := fastProfile(t, "0x41")
	var out syncBuffer
	sim, err := newSimulation(prof, &out)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	res, err := sim.run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, res.Configured)
	assert.Contains(t, out.String(), "Put switch to upper position to write ID...\n")
}

func TestReadOperator(t *testing.T) {
	prof := fastProfile(t, "0x41")
	sim, err := newSimulation(prof, &syncBuffer{})
	require.NoError(t, err)

	quit := make(chan struct{})
	sim.readOperator(context.Background(), strings.NewReader("t\nbogus\nc\nq\nb\n"), func() { close(quit) })

	select {
	case <-quit:
	default:
		t.Fatal("q should quit")
	}
	// "b" after quit is never applied.
	assert.Equal(t, types.SwitchTop, sim.board.Panel.Switch())
	assert.True(t, sim.board.Console.Ready())
}

func TestDumpAndErase(t *testing.T) {
	prof := fastProfile(t, "0x41")
	require.NoError(t, os.WriteFile(prof.EEPROM.Image, []byte{0x5E, 0x1F, 0x85}, 0o644))

	var buf bytes.Buffer
	require.NoError(t, dumpImage(&buf, prof))
	assert.Contains(t, buf.String(), "marker: 5E 1F (present)\n")
	assert.Contains(t, buf.String(), "id:     0x85 (master, index 5)\n")
	assert.Contains(t, buf.String(), "state:  marker_differing for 0x41\n")

	require.NoError(t, eraseImage(prof, false))
	buf.Reset()
	require.NoError(t, dumpImage(&buf, prof))
	assert.Contains(t, buf.String(), "marker: FF FF (absent)\n")
	assert.Contains(t, buf.String(), "id:     not set\n")

	prof.EEPROM.Image = ""
	assert.Error(t, dumpImage(&buf, prof))
	assert.Error(t, eraseImage(prof, true))
}
