package monitor

import (
	"bytes"
	"context"
	"io"
)

// maxLine bounds a line; longer runs are split.
const maxLine = 256

// LineReader splits a byte stream into lines. Serial ports return a timeout
// error when nothing arrives; IsTimeout lets the reader treat that as "try
// again" so the context can be checked between reads.
type LineReader struct {
	r         io.Reader
	IsTimeout func(error) bool

	buf  []byte
	scan [64]byte
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: r}
}

// Next returns the next line without its terminator. CR is dropped. At EOF
// a trailing partial line is returned first, then io.EOF.
func (l *LineReader) Next(ctx context.Context) (string, error) {
	for {
		if i := bytes.IndexByte(l.buf, '\n'); i >= 0 {
			line := l.take(i, 1)
			return line, nil
		}
		if len(l.buf) >= maxLine {
			return l.take(maxLine, 0), nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := l.r.Read(l.scan[:])
		l.buf = append(l.buf, l.scan[:n]...)
		switch {
		case err == nil:
		case l.IsTimeout != nil && l.IsTimeout(err):
		case err == io.EOF && len(l.buf) > 0:
			if bytes.IndexByte(l.buf, '\n') >= 0 {
				continue
			}
			return l.take(len(l.buf), 0), nil
		default:
			return "", err
		}
	}
}

func (l *LineReader) take(n, skip int) string {
	line := string(bytes.TrimRight(l.buf[:n], "\r"))
	l.buf = append(l.buf[:0], l.buf[n+skip:]...)
	return line
}
