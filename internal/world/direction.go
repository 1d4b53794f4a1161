package world

import "strings"

// Single-letter movement shorthands accepted anywhere a direction is.
var directionSynonyms = map[string]string{
	"n": "north",
	"s": "south",
	"e": "east",
	"w": "west",
}

var oppositeDirections = map[string]string{
	"north": "south",
	"south": "north",
	"east":  "west",
	"west":  "east",
}

// NormalizeDirection lowercases a direction label and expands the n/s/e/w
// shorthands. Labels with no synonym pass through unchanged.
func NormalizeDirection(dir string) string {
	lower := strings.ToLower(strings.TrimSpace(dir))
	if full, ok := directionSynonyms[lower]; ok {
		return full
	}
	return lower
}

// OppositeDirection returns the reverse of a direction for arrival phrasing.
// Labels without a defined opposite yield "somewhere".
func OppositeDirection(dir string) string {
	if opp, ok := oppositeDirections[NormalizeDirection(dir)]; ok {
		return opp
	}
	return "somewhere"
}
