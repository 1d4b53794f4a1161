package world

import "testing"

func TestNormalizeDirection(t *testing.T) {
	tests := map[string]struct {
		in  string
		exp string
	}{
		"shorthand north": {in: "n", exp: "north"},
		"shorthand south": {in: "s", exp: "south"},
		"shorthand east":  {in: "e", exp: "east"},
		"shorthand west":  {in: "w", exp: "west"},
		"full word":       {in: "north", exp: "north"},
		"mixed case":      {in: "NoRtH", exp: "north"},
		"whitespace":      {in: "  east ", exp: "east"},
		"unknown label":   {in: "up", exp: "up"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := NormalizeDirection(tt.in); got != tt.exp {
				t.Errorf("NormalizeDirection(%q) = %q, expected %q", tt.in, got, tt.exp)
			}
		})
	}
}

func TestOppositeDirection(t *testing.T) {
	tests := map[string]struct {
		in  string
		exp string
	}{
		"north":          {in: "north", exp: "south"},
		"south":          {in: "south", exp: "north"},
		"east":           {in: "east", exp: "west"},
		"west":           {in: "west", exp: "east"},
		"shorthand":      {in: "n", exp: "south"},
		"unknown label":  {in: "portal", exp: "somewhere"},
		"empty":          {in: "", exp: "somewhere"},
		"case insensive": {in: "WEST", exp: "east"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := OppositeDirection(tt.in); got != tt.exp {
				t.Errorf("OppositeDirection(%q) = %q, expected %q", tt.in, got, tt.exp)
			}
		})
	}
}
