// Package state tracks which keyboard keys are currently pressed.
//
// Press order is preserved: the most recently pressed key is the
// trigger candidate during hotkey matching. Raw left/right modifier
// variants are kept as pressed; the group queries fold them together.
package state

import (
	"slices"
	"strings"

	"winkeys/keys"
)

// syncBudget is how many keydown events run a full OS resync after a
// desync is suspected (sleep/resume, secure desktop). Bounds the
// convergence window without probing the OS on every event.
const syncBudget = 5

// Prober reports OS ground truth for a single key. The Windows hook
// supplies GetAsyncKeyState; tests supply a fake.
type Prober func(keys.VKey) bool

// KeyboardState is an ordered set of currently pressed keys. Not safe
// for concurrent use; the decision loop owns it while running.
type KeyboardState struct {
	pressed  []keys.VKey
	prober   Prober
	syncLeft int
}

// New returns an empty KeyboardState. A nil prober disables Sync.
func New(p Prober) *KeyboardState {
	return &KeyboardState{prober: p}
}

// Keydown marks a key as pressed, moving it to the most-recent slot if
// it is already down. Runs a pending resync first when one is armed.
func (s *KeyboardState) Keydown(k keys.VKey) {
	if s.syncLeft > 0 {
		s.syncLeft--
		s.Sync()
	}
	if i := slices.Index(s.pressed, k); i >= 0 {
		s.pressed = slices.Delete(s.pressed, i, i+1)
	}
	s.pressed = append(s.pressed, k)
}

// Keyup marks a key as released. Releasing an unpressed key is a no-op.
func (s *KeyboardState) Keyup(k keys.VKey) {
	if i := slices.Index(s.pressed, k); i >= 0 {
		s.pressed = slices.Delete(s.pressed, i, i+1)
	}
}

// IsDown reports whether the exact key k is pressed.
func (s *KeyboardState) IsDown(k keys.VKey) bool {
	return slices.Contains(s.pressed, k)
}

// AnyDown reports whether any of the given keys is pressed.
func (s *KeyboardState) AnyDown(kk ...keys.VKey) bool {
	for _, k := range kk {
		if s.IsDown(k) {
			return true
		}
	}
	return false
}

// LastPressed returns the most recently pressed key, or keys.None when
// nothing is down.
func (s *KeyboardState) LastPressed() keys.VKey {
	if len(s.pressed) == 0 {
		return keys.None
	}
	return s.pressed[len(s.pressed)-1]
}

// ShiftDown reports whether any Shift variant is pressed.
func (s *KeyboardState) ShiftDown() bool {
	return s.AnyDown(keys.Shift, keys.LShift, keys.RShift)
}

// ControlDown reports whether any Control variant is pressed.
func (s *KeyboardState) ControlDown() bool {
	return s.AnyDown(keys.Control, keys.LControl, keys.RControl)
}

// MenuDown reports whether any Alt variant is pressed.
func (s *KeyboardState) MenuDown() bool {
	return s.AnyDown(keys.Menu, keys.LMenu, keys.RMenu)
}

// WinDown reports whether either Windows key is pressed.
func (s *KeyboardState) WinDown() bool {
	return s.AnyDown(keys.LWin, keys.RWin)
}

// Mask returns the modifier-group bits for everything currently down.
func (s *KeyboardState) Mask() keys.ModMask {
	return keys.MaskOf(s.pressed)
}

// Clear releases all keys.
func (s *KeyboardState) Clear() {
	s.pressed = s.pressed[:0]
}

// Sync drops every key the OS reports as up. Correction is
// one-directional: keys the OS holds that we never saw are not added,
// so press order stays truthful.
func (s *KeyboardState) Sync() {
	if s.prober == nil {
		return
	}
	s.pressed = slices.DeleteFunc(s.pressed, func(k keys.VKey) bool {
		return !s.prober(k)
	})
}

// RequestSync arms the resync countdown. The next few Keydown calls
// each run Sync before recording the press.
func (s *KeyboardState) RequestSync() {
	s.syncLeft = syncBudget
}

// Snapshot copies the current state for handoff to another goroutine.
func (s *KeyboardState) Snapshot() Snapshot {
	return Snapshot{pressed: slices.Clone(s.pressed)}
}

// Snapshot is an immutable copy of a KeyboardState, carried inside
// keyboard events to the decision loop.
type Snapshot struct {
	pressed []keys.VKey
}

// SnapshotOf builds a Snapshot from explicit pressed keys, in press
// order. Meant for tests and replay tooling.
func SnapshotOf(kk ...keys.VKey) Snapshot {
	return Snapshot{pressed: slices.Clone(kk)}
}

// IsDown reports whether the exact key k is pressed.
func (s Snapshot) IsDown(k keys.VKey) bool {
	return slices.Contains(s.pressed, k)
}

// LastPressed returns the most recently pressed key, or keys.None.
func (s Snapshot) LastPressed() keys.VKey {
	if len(s.pressed) == 0 {
		return keys.None
	}
	return s.pressed[len(s.pressed)-1]
}

// Empty reports whether no keys are pressed.
func (s Snapshot) Empty() bool {
	return len(s.pressed) == 0
}

// WinDown reports whether either Windows key is pressed.
func (s Snapshot) WinDown() bool {
	return s.IsDown(keys.LWin) || s.IsDown(keys.RWin)
}

// Mask returns the modifier-group bits for the snapshot.
func (s Snapshot) Mask() keys.ModMask {
	return keys.MaskOf(s.pressed)
}

// Keys returns the pressed keys in press order.
func (s Snapshot) Keys() []keys.VKey {
	return slices.Clone(s.pressed)
}

// Combo renders the snapshot as a parseable chord like "control+a":
// lower-case names joined by "+" in press order, with left/right
// modifier variants folded to their generic key. The result round
// trips through keys.ParseCombo.
func (s Snapshot) Combo() string {
	parts := make([]string, 0, len(s.pressed))
	for _, k := range s.pressed {
		name := strings.ToLower(k.Generic().Name())
		if !slices.Contains(parts, name) {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "+")
}

func (s Snapshot) String() string {
	parts := make([]string, len(s.pressed))
	for i, k := range s.pressed {
		parts[i] = k.Name()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
