package types

import (
	"boardid-go/errcode"
	"boardid-go/x/conv"
	"boardid-go/x/strconvx"
)

// ------------------------
// Board identity
// ------------------------

// BoardID is the one-byte identity persisted on the board.
// Bits 7 and 6 are role flags; bits 0..5 are a numeric index.
type BoardID uint8

const (
	FlagMaster BoardID = 0x80
	FlagSlave  BoardID = 0x40

	flagMask  BoardID = FlagMaster | FlagSlave
	indexMask BoardID = 0x3F
)

// DefaultBoardID is the slave datalogger with index 1.
const DefaultBoardID = FlagSlave | 0x01

// Role names the flag bits of an ID.
type Role string

const (
	RoleNone   Role = "none"
	RoleMaster Role = "master"
	RoleSlave  Role = "slave"
	RoleBoth   Role = "master+slave" // both bits set
)

func (id BoardID) Index() uint8 { return uint8(id & indexMask) }

func (id BoardID) Role() Role {
	switch id & flagMask {
	case FlagMaster:
		return RoleMaster
	case FlagSlave:
		return RoleSlave
	case flagMask:
		return RoleBoth
	default:
		return RoleNone
	}
}

// String renders "0xNN" with two uppercase hex digits.
func (id BoardID) String() string {
	var b [4]byte
	return string(conv.AppendByteHex(b[:0], uint8(id)))
}

// ParseBoardID accepts "0x41", "65", "0b01000001" style literals.
func ParseBoardID(s string) (BoardID, error) {
	if s == "" {
		return 0, errcode.InvalidParams
	}
	v, err := strconvx.ParseUint(s, 0, 8)
	if err != nil {
		return 0, errcode.InvalidParams
	}
	return BoardID(v), nil
}
