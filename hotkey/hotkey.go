// Package hotkey defines the hotkey descriptor and its matching
// predicate against a keyboard snapshot.
package hotkey

import (
	"encoding/binary"
	"hash/fnv"
	"slices"
	"strings"

	"winkeys/keys"
	"winkeys/state"
)

// Behavior controls what happens to the key event after a hotkey fires.
type Behavior int

const (
	// StopPropagation suppresses the event from the OS and other
	// applications.
	StopPropagation Behavior = iota
	// PassThrough lets the event continue to the OS after the
	// callback is scheduled.
	PassThrough
)

func (b Behavior) String() string {
	if b == PassThrough {
		return "pass-through"
	}
	return "stop-propagation"
}

// Hotkey is an immutable shortcut descriptor: a trigger key, a
// modifier set, propagation behavior and the callback to run.
//
// Identity is the unordered (trigger, modifiers) pair; two hotkeys
// built from the same keys in a different order are the same hotkey.
type Hotkey struct {
	trigger     keys.VKey
	mods        []keys.VKey // sorted, unique
	behavior    Behavior
	bypassPause bool
	callback    func()
}

// New builds a hotkey with StopPropagation behavior. Modifiers are
// deduplicated; order does not matter.
func New(trigger keys.VKey, mods []keys.VKey, callback func()) *Hotkey {
	m := slices.Clone(mods)
	slices.Sort(m)
	m = slices.Compact(m)
	return &Hotkey{
		trigger:  trigger,
		mods:     m,
		behavior: StopPropagation,
		callback: callback,
	}
}

// SetBehavior overrides the propagation behavior. Returns the hotkey
// for chaining.
func (h *Hotkey) SetBehavior(b Behavior) *Hotkey {
	h.behavior = b
	return h
}

// SetBypassPause lets the hotkey keep firing while the manager is
// paused. Returns the hotkey for chaining.
func (h *Hotkey) SetBypassPause() *Hotkey {
	h.bypassPause = true
	return h
}

// Trigger returns the trigger key.
func (h *Hotkey) Trigger() keys.VKey { return h.trigger }

// Mods returns the modifier set, sorted.
func (h *Hotkey) Mods() []keys.VKey { return slices.Clone(h.mods) }

// Behavior returns the propagation behavior.
func (h *Hotkey) Behavior() Behavior { return h.behavior }

// BypassPause reports whether the hotkey fires while paused.
func (h *Hotkey) BypassPause() bool { return h.bypassPause }

// Callback returns the callback closure. Shared with the executor at
// dispatch time so it can outlive a concurrent unregistration.
func (h *Hotkey) Callback() func() { return h.callback }

// ID is the 64-bit identity hash of the unordered key set
// {trigger} ∪ modifiers, used as the public handle for unregistration.
// Which key plays the trigger does not change the identity, so
// (Alt, [Control]) and (Control, [Alt]) hash the same.
func (h *Hotkey) ID() uint64 {
	all := make([]keys.VKey, 0, len(h.mods)+1)
	all = append(all, h.mods...)
	all = append(all, h.trigger)
	slices.Sort(all)
	all = slices.Compact(all)

	f := fnv.New64a()
	var buf [2]byte
	for _, k := range all {
		binary.LittleEndian.PutUint16(buf[:], uint16(k))
		f.Write(buf[:])
	}
	return f.Sum64()
}

// IsTriggerState reports whether snap completes this hotkey.
//
// All of the following must hold:
//  1. unless the trigger is itself a modifier, the most recently
//     pressed key equals the trigger (a bare modifier press is a
//     valid trigger for modifier hotkeys);
//  2. every non-modifier key in the modifier set is down;
//  3. the four modifier-group flags declared by the hotkey exactly
//     equal the flags currently held, so undeclared extra modifiers
//     prevent the match.
func (h *Hotkey) IsTriggerState(snap state.Snapshot) bool {
	if !h.trigger.IsModifier() {
		if snap.Empty() || snap.LastPressed() != h.trigger {
			return false
		}
	}
	for _, m := range h.mods {
		if m.IsModifier() {
			continue
		}
		if !snap.IsDown(m) {
			return false
		}
	}
	declared := keys.MaskOf(h.mods) | h.trigger.Mask()
	return declared == snap.Mask()
}

func (h *Hotkey) String() string {
	parts := make([]string, 0, len(h.mods)+1)
	for _, m := range h.mods {
		parts = append(parts, m.Name())
	}
	parts = append(parts, h.trigger.Name())
	return strings.Join(parts, "+")
}
