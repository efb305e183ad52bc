// Package monitor decodes the status lines a provisioned board prints on its
// console and reads lines off a serial stream.
package monitor

import (
	"strings"

	"boardid-go/types"
)

const (
	idPrefix = "Board ID: "
	notSet   = "Board ID not set!"
)

// Status is one decoded status line.
type Status struct {
	Set bool
	ID  types.BoardID
}

func (s Status) String() string {
	if !s.Set {
		return "not set"
	}
	return s.ID.String() + " (" + string(s.ID.Role()) + ")"
}

// ParseStatus decodes "Board ID: 0xNN" and "Board ID not set!". Any other
// line (setup chatter, "Board ID read failed: ...") is not a status.
func ParseStatus(line string) (Status, bool) {
	line = strings.TrimRight(line, "\r\n ")
	if line == notSet {
		return Status{}, true
	}
	rest, ok := strings.CutPrefix(line, idPrefix)
	if !ok || !strings.HasPrefix(rest, "0x") {
		return Status{}, false
	}
	id, err := types.ParseBoardID(rest)
	if err != nil {
		return Status{}, false
	}
	return Status{Set: true, ID: id}, true
}
