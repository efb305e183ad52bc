// Package provision assigns a board identifier once and reports it on every
// boot. It owns the persisted layout, the existence-marker state machine and
// the switch/LED gating that guards the write.
package provision

import (
	"boardid-go/errcode"
	"boardid-go/types"
)

// Marker bytes signal "a board ID has previously been set".
const (
	MarkerByte1 = 0x5E
	MarkerByte2 = 0x1F
)

// Offsets relative to Layout.Base.
const (
	OffsetMarker1 = 0
	OffsetMarker2 = 1
	OffsetID      = 2
)

// Store is byte-addressed non-volatile storage.
type Store interface {
	Get(off uint16) (byte, error)
	Put(off uint16, v byte) error
}

// Layout places the three persisted bytes inside the store.
type Layout struct {
	Base uint16
}

func (l Layout) Marker1() uint16 { return l.Base + OffsetMarker1 }
func (l Layout) Marker2() uint16 { return l.Base + OffsetMarker2 }
func (l Layout) ID() uint16      { return l.Base + OffsetID }

// Inspection is what Inspect found in storage.
type Inspection struct {
	State   types.StoreState
	Current types.BoardID // valid unless State == StateNoMarker
}

// MarkerPresent reports whether both marker bytes were found.
func (p Inspection) MarkerPresent() bool { return p.State != types.StateNoMarker }

// NeedsWrite reports whether the ID byte has to be (re)written.
func (p Inspection) NeedsWrite() bool { return p.State != types.StateMarkerMatching }

// Inspect reads the marker bytes and the stored ID and classifies them against want.
func Inspect(s Store, l Layout, want types.BoardID) (Inspection, error) {
	m1, err := s.Get(l.Marker1())
	if err != nil {
		return Inspection{}, errcode.Wrap(errcode.MapDriverErr(err), "read marker", err)
	}
	m2, err := s.Get(l.Marker2())
	if err != nil {
		return Inspection{}, errcode.Wrap(errcode.MapDriverErr(err), "read marker", err)
	}
	if m1 != MarkerByte1 || m2 != MarkerByte2 {
		return Inspection{State: types.StateNoMarker}, nil
	}
	cur, err := s.Get(l.ID())
	if err != nil {
		return Inspection{}, errcode.Wrap(errcode.MapDriverErr(err), "read id", err)
	}
	p := Inspection{State: types.StateMarkerDiffering, Current: types.BoardID(cur)}
	if p.Current == want {
		p.State = types.StateMarkerMatching
	}
	return p, nil
}

// Step is a progress point reported by Commit.
type Step uint8

const (
	StepWriteID Step = iota
	StepVerifyID
	StepVerified
	StepWriteMarker
)

// Commit writes want, reads it back and, when the marker was absent, writes
// the marker bytes. The marker is only written after a successful read-back.
// A read-back mismatch returns errcode.VerifyFailed. notify may be nil.
func Commit(s Store, l Layout, want types.BoardID, p Inspection, notify func(Step)) error {
	if notify == nil {
		notify = func(Step) {}
	}
	notify(StepWriteID)
	if err := s.Put(l.ID(), byte(want)); err != nil {
		return errcode.Wrap(errcode.MapDriverErr(err), "write id", err)
	}
	notify(StepVerifyID)
	got, err := s.Get(l.ID())
	if err != nil {
		return errcode.Wrap(errcode.MapDriverErr(err), "verify id", err)
	}
	if types.BoardID(got) != want {
		return errcode.VerifyFailed
	}
	notify(StepVerified)
	if p.MarkerPresent() {
		return nil
	}
	notify(StepWriteMarker)
	if err := s.Put(l.Marker1(), MarkerByte1); err != nil {
		return errcode.Wrap(errcode.MapDriverErr(err), "write marker", err)
	}
	if err := s.Put(l.Marker2(), MarkerByte2); err != nil {
		return errcode.Wrap(errcode.MapDriverErr(err), "write marker", err)
	}
	return nil
}
