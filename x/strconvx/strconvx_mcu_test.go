//go:build rp2040 || rp2350

package strconvx

import "testing"

func TestParseUintBitSizeDefaultsTo64(t *testing.T) {
	for _, bits := range []int{0, -1, 65} {
		v, err := ParseUint("0xFFFFFFFFFFFFFFFF", 0, bits)
		if err != nil || v != 1<<64-1 {
			t.Fatalf("bitSize %d: got %#x, %v", bits, v, err)
		}
	}
}

func TestParseUintLeadingZeroIsDecimal(t *testing.T) {
	// No implicit octal: "010" is ten.
	if v, err := ParseUint("010", 0, 8); err != nil || v != 10 {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestParseUintErrorKinds(t *testing.T) {
	if _, err := ParseUint("0x", 0, 8); err != errSyntax {
		t.Fatalf("empty digits: %v", err)
	}
	if _, err := ParseUint("0x100", 0, 8); err != errRange {
		t.Fatalf("overflow: %v", err)
	}
}
