package types

// ------------------------
// Provisioning result
// ------------------------

// StoreState classifies what was found in storage before provisioning.
type StoreState uint8

const (
	StateNoMarker        StoreState = iota // marker bytes absent
	StateMarkerMatching                    // marker present, stored ID equals the desired ID
	StateMarkerDiffering                   // marker present, stored ID differs
)

func (s StoreState) String() string {
	switch s {
	case StateNoMarker:
		return "no_marker"
	case StateMarkerMatching:
		return "marker_matching"
	case StateMarkerDiffering:
		return "marker_differing"
	default:
		return "unknown"
	}
}

// Outcome is handed from the setup pass to the status loop.
type Outcome struct {
	Configured bool
	Desired    BoardID
	State      StoreState
	Wrote      bool  // the ID byte was written during this pass
	Err        error // errcode.VerifyFailed / errcode.StorageIO, nil otherwise
}
