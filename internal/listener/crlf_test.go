package listener

import (
	"bytes"
	"testing"

	"github.com/pixil98/go-testutil"
)

type fakeWire struct {
	in  *bytes.Reader
	out bytes.Buffer
}

func (w *fakeWire) Read(p []byte) (int, error)  { return w.in.Read(p) }
func (w *fakeWire) Write(p []byte) (int, error) { return w.out.Write(p) }

func TestLineEndingConn_Read(t *testing.T) {
	tests := map[string]struct {
		wire string
		exp  string
	}{
		"telnet crlf": {wire: "look\r\n", exp: "look\n"},
		"ssh bare cr": {wire: "look\r", exp: "look\n"},
		"plain lf":    {wire: "look\n", exp: "look\n"},
		"mixed":       {wire: "a\r\nb\rc\n", exp: "a\nb\nc\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := &fakeWire{in: bytes.NewReader([]byte(tt.wire))}
			conn := newLineEndingConn(w)

			p := make([]byte, 64)
			n, err := conn.Read(p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "read", string(p[:n]), tt.exp)
		})
	}
}

func TestLineEndingConn_Write(t *testing.T) {
	w := &fakeWire{in: bytes.NewReader(nil)}
	conn := newLineEndingConn(w)

	n, err := conn.Write([]byte("hello\nworld\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "reported length", n, len("hello\nworld\n"))
	testutil.AssertEqual(t, "wire bytes", w.out.String(), "hello\r\nworld\r\n")
}
