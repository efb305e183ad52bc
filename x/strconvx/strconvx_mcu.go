//go:build rp2040 || rp2350

package strconvx

// Integer formatting and parsing for MCU builds without pulling in strconv.
// Bases 2..36.

type parseError struct{ msg string }

func (e parseError) Error() string { return e.msg }

var (
	errSyntax = parseError{"invalid syntax"}
	errRange  = parseError{"value out of range"}
)

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

func FormatUint(u uint64, base int) string {
	var buf [64]byte
	return string(appendUint(buf[:0], u, base))
}

func FormatInt(i int64, base int) string {
	var buf [65]byte
	if i < 0 {
		return string(appendUint(append(buf[:0], '-'), uint64(-i), base))
	}
	return string(appendUint(buf[:0], uint64(i), base))
}

func appendUint(dst []byte, u uint64, base int) []byte {
	if base < 2 || base > 36 {
		base = 10
	}
	var tmp [64]byte
	i := len(tmp)
	b := uint64(base)
	for {
		i--
		tmp[i] = digits[u%b]
		u /= b
		if u == 0 {
			break
		}
	}
	return append(dst, tmp[i:]...)
}

// ParseUint accepts an optional 0x/0b/0o prefix when base is 0. Values that
// do not fit in bitSize bits (0 means 64) are rejected, never truncated.
func ParseUint(s string, base, bitSize int) (uint64, error) {
	if base == 0 {
		base = prefixBase(&s)
	}
	if base < 2 || base > 36 || len(s) == 0 {
		return 0, errSyntax
	}
	if bitSize <= 0 || bitSize > 64 {
		bitSize = 64
	}
	max := uint64(1)<<uint(bitSize) - 1 // wraps to all ones for 64

	var v uint64
	for i := 0; i < len(s); i++ {
		d, ok := digitVal(s[i])
		if !ok || d >= uint64(base) {
			return 0, errSyntax
		}
		if d > max || v > (max-d)/uint64(base) {
			return 0, errRange
		}
		v = v*uint64(base) + d
	}
	return v, nil
}

func digitVal(c byte) (uint64, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint64(c - '0'), true
	case 'a' <= c && c <= 'z':
		return uint64(c-'a') + 10, true
	case 'A' <= c && c <= 'Z':
		return uint64(c-'A') + 10, true
	}
	return 0, false
}

func prefixBase(ps *string) int {
	s := *ps
	if len(s) < 2 || s[0] != '0' {
		return 10
	}
	switch s[1] {
	case 'x', 'X':
		*ps = s[2:]
		return 16
	case 'b', 'B':
		*ps = s[2:]
		return 2
	case 'o', 'O':
		*ps = s[2:]
		return 8
	}
	return 10
}
