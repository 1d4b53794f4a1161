package listener

import (
	"bytes"
	"io"
)

var (
	crlf = []byte("\r\n")
	lf   = []byte("\n")
	cr   = []byte("\r")
)

// lineEndingConn bridges wire line conventions and the engine's: reads
// collapse CRLF and bare CR down to LF, writes expand LF back out to CRLF.
// Telnet puts CRLF on the wire; SSH clients send a lone CR for enter.
type lineEndingConn struct {
	rw io.ReadWriter
}

func newLineEndingConn(rw io.ReadWriter) io.ReadWriter {
	return &lineEndingConn{rw: rw}
}

func (c *lineEndingConn) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n > 0 {
		data := bytes.ReplaceAll(p[:n], crlf, lf)
		data = bytes.ReplaceAll(data, cr, lf)
		n = copy(p, data)
	}
	return n, err
}

func (c *lineEndingConn) Write(p []byte) (int, error) {
	_, err := c.rw.Write(bytes.ReplaceAll(p, lf, crlf))
	// Report the caller's length; the expansion is not theirs to see.
	return len(p), err
}
