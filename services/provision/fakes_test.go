package provision

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"boardid-go/types"
)

// ---- store ----

type memStore struct {
	mu      sync.Mutex
	mem     [16]byte
	puts    []uint16 // offsets written, in order
	corrupt bool     // flip bits on write so read-back mismatches
	failGet bool
}

var errNAK = errors.New("i2c: nak")

func (s *memStore) Get(off uint16) (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return 0, errNAK
	}
	return s.mem[off], nil
}

func (s *memStore) Put(off uint16, v byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts = append(s.puts, off)
	if s.corrupt {
		v ^= 0xFF
	}
	s.mem[off] = v
	return nil
}

func (s *memStore) writes() []uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint16(nil), s.puts...)
}

func (s *memStore) at(off uint16) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem[off]
}

func provisioned(id types.BoardID) *memStore {
	s := &memStore{}
	s.mem[0], s.mem[1], s.mem[2] = MarkerByte1, MarkerByte2, byte(id)
	return s
}

// ---- panel ----

type fakePanel struct {
	mu   sync.Mutex
	pos  types.SwitchPosition
	leds map[types.LED]bool

	setAlls int
}

func newPanel(pos types.SwitchPosition) *fakePanel {
	return &fakePanel{pos: pos, leds: map[types.LED]bool{}}
}

func (p *fakePanel) Switch() types.SwitchPosition {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

func (p *fakePanel) move(pos types.SwitchPosition) {
	p.mu.Lock()
	p.pos = pos
	p.mu.Unlock()
}

func (p *fakePanel) SetLED(l types.LED, on bool) {
	p.mu.Lock()
	p.leds[l] = on
	p.mu.Unlock()
}

func (p *fakePanel) SetAll(on bool) {
	p.mu.Lock()
	for _, l := range types.AllLEDs {
		p.leds[l] = on
	}
	p.setAlls++
	p.mu.Unlock()
}

func (p *fakePanel) allCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.setAlls
}

func (p *fakePanel) led(l types.LED) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.leds[l]
}

// ---- console ----

type fakeConsole struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	ready bool
}

func (c *fakeConsole) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *fakeConsole) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

func (c *fakeConsole) connect() {
	c.mu.Lock()
	c.ready = true
	c.mu.Unlock()
}

func (c *fakeConsole) text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

func (c *fakeConsole) lines() []string {
	return strings.Split(strings.TrimRight(c.text(), "\n"), "\n")
}

// waitOutput polls until the console has printed substr.
func waitOutput(t *testing.T, c *fakeConsole, substr string) {
	t.Helper()
	dead := time.Now().Add(time.Second)
	for time.Now().Before(dead) {
		if strings.Contains(c.text(), substr) {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timeout waiting for %q; console:\n%s", substr, c.text())
}

func fastConfig(id types.BoardID) Config {
	return Config{
		Desired:    id,
		Poll:       time.Millisecond,
		Settle:     time.Millisecond,
		ReportDark: time.Millisecond,
		ReportLit:  time.Millisecond,
	}
}
