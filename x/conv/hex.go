// Package conv formats small integers without fmt or strconv.
package conv

const hexd = "0123456789ABCDEF"

// U8Hex writes 2-digit uppercase hex without 0x, zero-padded.
func U8Hex(buf []byte, n uint8) []byte {
	if len(buf) < 2 {
		return buf[:0]
	}
	buf[0] = hexd[n>>4]
	buf[1] = hexd[n&0xF]
	return buf[:2]
}

// AppendByteHex appends "0xNN" (uppercase) to dst.
func AppendByteHex(dst []byte, n uint8) []byte {
	var b [2]byte
	return append(append(dst, '0', 'x'), U8Hex(b[:], n)...)
}
