package layout

import "github.com/abhisek/keyz/internal/typing"

// Keymap binds the package-level lookups to a single layout ID so that
// consumers can take the mapping as an injected dependency.
type Keymap struct {
	id string
}

// For returns a Keymap for the given layout ID. Lookups on an
// unregistered layout report ok=false rather than failing.
func For(layoutID string) Keymap {
	return Keymap{id: layoutID}
}

// ID returns the layout ID this keymap resolves against.
func (k Keymap) ID() string { return k.id }

func (k Keymap) KeyToFinger(key string) (int, bool) {
	return KeyToFinger(k.id, key)
}

func (k Keymap) AssignedKeys(finger int) []string {
	return AssignedKeys(k.id, finger)
}

func (k Keymap) FingerName(finger int) string {
	return FingerName(finger)
}

func (k Keymap) FingerHand(finger int) typing.Hand {
	return FingerHand(finger)
}

func (k Keymap) Adjacent(a, b string) bool {
	return Adjacent(k.id, a, b)
}

func (k Keymap) SameFinger(a, b string) bool {
	return SameFinger(k.id, a, b)
}
