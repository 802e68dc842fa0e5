// Package layout supplies keyboard layout data: which finger owns which
// key, and key adjacency for error classification.
package layout

import "github.com/abhisek/keyz/internal/typing"

// QWERTY is the default layout ID.
const QWERTY = "qwerty"

// Finger indices follow the usual convention: 0–4 left hand from pinky to
// thumb, 5–9 right hand from thumb to pinky.
const (
	LeftPinky = iota
	LeftRing
	LeftMiddle
	LeftIndex
	LeftThumb
	RightThumb
	RightIndex
	RightMiddle
	RightRing
	RightPinky
)

// FingerCount is the number of finger indices.
const FingerCount = 10

var fingerNames = [FingerCount]string{
	"left pinky", "left ring", "left middle", "left index", "left thumb",
	"right thumb", "right index", "right middle", "right ring", "right pinky",
}

// qwertyFingers maps each letter to its assigned finger.
var qwertyFingers = map[string]int{
	"q": LeftPinky, "a": LeftPinky, "z": LeftPinky,
	"w": LeftRing, "s": LeftRing, "x": LeftRing,
	"e": LeftMiddle, "d": LeftMiddle, "c": LeftMiddle,
	"r": LeftIndex, "f": LeftIndex, "v": LeftIndex,
	"t": LeftIndex, "g": LeftIndex, "b": LeftIndex,
	" ": RightThumb,
	"y": RightIndex, "h": RightIndex, "n": RightIndex,
	"u": RightIndex, "j": RightIndex, "m": RightIndex,
	"i": RightMiddle, "k": RightMiddle,
	"o": RightRing, "l": RightRing,
	"p": RightPinky,
}

// qwertyRows is the physical key grid used for adjacency checks.
var qwertyRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

// registries keyed by layout ID. Only QWERTY ships today; alternative
// layouts register their own tables here.
var (
	fingersByLayout = map[string]map[string]int{QWERTY: qwertyFingers}
	rowsByLayout    = map[string][]string{QWERTY: qwertyRows}
)

// KeyToFinger returns the finger index assigned to a key in the given
// layout. ok is false when the layout or key is unknown; callers exclude
// such keys from aggregates rather than failing.
func KeyToFinger(layoutID, key string) (int, bool) {
	fingers, ok := fingersByLayout[layoutID]
	if !ok {
		return 0, false
	}
	f, ok := fingers[key]
	return f, ok
}

// AssignedKeys returns the letters owned by a finger, in fixed
// row-scan order. Empty for unknown layouts and for thumbs without keys.
func AssignedKeys(layoutID string, finger int) []string {
	fingers, ok := fingersByLayout[layoutID]
	if !ok {
		return nil
	}
	var keys []string
	for _, row := range rowsByLayout[layoutID] {
		for _, r := range row {
			k := string(r)
			if f, ok := fingers[k]; ok && f == finger {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// Rows returns the physical key grid for a layout, top row first.
// Nil for unknown layouts.
func Rows(layoutID string) []string {
	return rowsByLayout[layoutID]
}

// FingerName returns the human-readable name for a finger index, or ""
// when out of range.
func FingerName(finger int) string {
	if finger < 0 || finger >= FingerCount {
		return ""
	}
	return fingerNames[finger]
}

// FingerHand returns which hand a finger index belongs to.
func FingerHand(finger int) typing.Hand {
	if finger <= LeftThumb {
		return typing.HandLeft
	}
	return typing.HandRight
}

// Adjacent reports whether two keys are physical neighbours on the
// layout grid (same row next column, or same column in an adjacent row).
func Adjacent(layoutID, a, b string) bool {
	rows, ok := rowsByLayout[layoutID]
	if !ok || a == b {
		return false
	}
	ar, ac := keyPosition(rows, a)
	br, bc := keyPosition(rows, b)
	if ar < 0 || br < 0 {
		return false
	}
	dr := abs(ar - br)
	dc := abs(ac - bc)
	return dr <= 1 && dc <= 1
}

// SameFinger reports whether two keys are typed with the same finger.
func SameFinger(layoutID, a, b string) bool {
	fa, oka := KeyToFinger(layoutID, a)
	fb, okb := KeyToFinger(layoutID, b)
	return oka && okb && fa == fb
}

func keyPosition(rows []string, key string) (row, col int) {
	for r, line := range rows {
		for c, ch := range line {
			if string(ch) == key {
				return r, c
			}
		}
	}
	return -1, -1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
