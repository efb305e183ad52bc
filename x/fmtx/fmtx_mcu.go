//go:build rp2040 || rp2350

package fmtx

import (
	"io"

	"boardid-go/x/strconvx"
)

// DefaultOutput is where Printf writes. main points it at the serial console
// once the board is open; until then output is dropped.
var DefaultOutput io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func Printf(format string, a ...any) (int, error) {
	return Fprintf(DefaultOutput, format, a...)
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	var b builder
	b.format(format, a...)
	return w.Write(b.buf)
}

// --- Internals: tiny formatter subset ---
// Supports: %s %d %x %X %v %t %c %% with an optional '0' flag and width
// (e.g. %02X, %3d). No floats; the firmware never prints them.

type builder struct{ buf []byte }

func (b *builder) byte(c byte)  { b.buf = append(b.buf, c) }
func (b *builder) str(s string) { b.buf = append(b.buf, s...) }

func (b *builder) pad(s string, width int, zero bool) {
	fill := byte(' ')
	if zero {
		fill = '0'
	}
	for n := width - len(s); n > 0; n-- {
		b.byte(fill)
	}
	b.str(s)
}

func (b *builder) any(v any) {
	switch x := v.(type) {
	case string:
		b.str(x)
	case []byte:
		b.buf = append(b.buf, x...)
	case bool:
		if x {
			b.str("true")
		} else {
			b.str("false")
		}
	case error:
		b.str(x.Error())
	case interface{ String() string }:
		b.str(x.String())
	default:
		if i, ok := toI64(v); ok {
			b.str(strconvx.FormatInt(i, 10))
			return
		}
		if u, ok := toU64(v); ok {
			b.str(strconvx.FormatUint(u, 10))
			return
		}
		b.str("<?>")
	}
}

func (b *builder) format(format string, args ...any) {
	ai := 0
	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			b.byte(c)
			i++
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			b.byte('%')
			i++
			continue
		}
		zero := false
		if i < len(format) && format[i] == '0' {
			zero = true
			i++
		}
		width := 0
		for i < len(format) && '0' <= format[i] && format[i] <= '9' {
			width = width*10 + int(format[i]-'0')
			i++
		}
		if i >= len(format) || ai >= len(args) {
			return
		}
		verb := format[i]
		arg := args[ai]
		ai++
		i++

		switch verb {
		case 's', 'v':
			var tmp builder
			tmp.any(arg)
			b.pad(string(tmp.buf), width, false)
		case 'd':
			if v, ok := toI64(arg); ok {
				b.pad(strconvx.FormatInt(v, 10), width, zero)
			} else if u, ok := toU64(arg); ok {
				b.pad(strconvx.FormatUint(u, 10), width, zero)
			}
		case 'x', 'X':
			u, ok := toU64(arg)
			if !ok {
				v, _ := toI64(arg)
				u = uint64(v)
			}
			h := strconvx.FormatUint(u, 16)
			if verb == 'X' {
				h = upper(h)
			}
			b.pad(h, width, zero)
		case 'c':
			if v, ok := toI64(arg); ok {
				b.byte(byte(v))
			}
		case 't':
			v, _ := arg.(bool)
			b.any(v)
		default:
			// Unknown verb: write it literally to aid debugging.
			b.byte('%')
			b.byte(verb)
		}
	}
}

func upper(h string) string {
	hb := []byte(h)
	for i, c := range hb {
		if 'a' <= c && c <= 'f' {
			hb[i] = c - ('a' - 'A')
		}
	}
	return string(hb)
}

func toI64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	default:
		return 0, false
	}
}

func toU64(v any) (uint64, bool) {
	switch t := v.(type) {
	case uint:
		return uint64(t), true
	case uint8:
		return uint64(t), true
	case uint16:
		return uint64(t), true
	case uint32:
		return uint64(t), true
	case uint64:
		return t, true
	default:
		return 0, false
	}
}
