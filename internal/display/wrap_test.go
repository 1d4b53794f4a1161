package display

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestWrap(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 20)

	for _, line := range strings.Split(Wrap(long), "\n") {
		if len(line) > DefaultWidth {
			t.Errorf("line exceeds %d characters: %q", DefaultWidth, line)
		}
	}

	testutil.AssertEqual(t, "short text untouched", Wrap("hello"), "hello")
}

func TestTitle(t *testing.T) {
	tests := map[string]struct {
		in  string
		exp string
	}{
		"single word": {in: "admin", exp: "Admin"},
		"two words":   {in: "town square", exp: "Town Square"},
		"already":     {in: "Superuser", exp: "Superuser"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "title", Title(tt.in), tt.exp)
		})
	}
}
