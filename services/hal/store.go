package hal

import (
	"time"

	"boardid-go/errcode"
	"boardid-go/services/hal/setups"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/at24cx"
)

// EEPROMStore exposes an AT24Cxx part as a byte store for provisioning.
type EEPROMStore struct {
	dev        at24cx.Device
	size       uint16
	writeCycle time.Duration
}

// NewEEPROMStore configures the at24cx driver on bus according to p.
func NewEEPROMStore(bus drivers.I2C, p setups.EEPROMPlan) *EEPROMStore {
	d := at24cx.New(bus)
	d.Configure(at24cx.Config{
		PageSize:      p.PageSize,
		EndRAMAddress: p.Size,
	})
	if p.Addr != 0 {
		d.Address = p.Addr
	}
	return &EEPROMStore{
		dev:        d,
		size:       p.Size,
		writeCycle: time.Duration(p.WriteCycleMs) * time.Millisecond,
	}
}

func (s *EEPROMStore) inRange(off uint16) bool { return s.size == 0 || off < s.size }

// Get reads one byte.
func (s *EEPROMStore) Get(off uint16) (byte, error) {
	if !s.inRange(off) {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: "eeprom read", Msg: "offset out of range"}
	}
	return s.dev.ReadByte(off)
}

// Put writes one byte and waits out the part's internal write cycle, during
// which it would NAK the verify read.
func (s *EEPROMStore) Put(off uint16, v byte) error {
	if !s.inRange(off) {
		return &errcode.E{C: errcode.InvalidParams, Op: "eeprom write", Msg: "offset out of range"}
	}
	if err := s.dev.WriteByte(off, v); err != nil {
		return err
	}
	if s.writeCycle > 0 {
		time.Sleep(s.writeCycle)
	}
	return nil
}
