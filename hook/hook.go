// Package hook is the boundary with the OS keyboard hook.
//
// A Hook delivers keyboard events on a channel and, for every
// key-down, waits a bounded time for the decision loop's verdict. The
// OS blocks all keyboard input system-wide while the low-level
// callback runs, so a missing or late verdict always degrades to
// Allow, never to a frozen keyboard.
package hook

import (
	"errors"
	"time"

	"winkeys/keys"
	"winkeys/state"
)

// DecisionTimeout bounds how long the hook callback waits for the
// decision loop to answer before failing open. Package variable so the
// window is tunable in tests and by embedders.
var DecisionTimeout = 250 * time.Millisecond

// SilentKey is an unassigned virtual key injected in place of a
// suppressed chord when the Windows key is held, so releasing Win
// afterwards does not open the Start menu.
const SilentKey keys.VKey = 0xE8

// ErrUnsupported is returned by New on platforms without a low-level
// keyboard hook implementation.
var ErrUnsupported = errors.New("keyboard hook not supported on this platform")

// Kind distinguishes key-down from key-up events.
type Kind int

const (
	KeyDown Kind = iota
	KeyUp
)

// Event is one keyboard transition together with the keyboard state
// after applying it.
type Event struct {
	Kind  Kind
	Key   keys.VKey
	State state.Snapshot
}

// Action is the decision loop's verdict on a key-down event.
type Action int

const (
	// Allow passes the event through to the OS.
	Allow Action = iota
	// Block suppresses the event.
	Block
	// Replace suppresses the event and injects SilentKey instead.
	Replace
)

func (a Action) String() string {
	switch a {
	case Block:
		return "block"
	case Replace:
		return "replace"
	}
	return "allow"
}

// Tracker records key transitions into the shared keyboard state and
// returns the updated snapshot. The manager implements it with the
// mutex that also guards resync requests.
type Tracker interface {
	Keydown(keys.VKey) state.Snapshot
	Keyup(keys.VKey) state.Snapshot
	RequestSync()
}

// Hook installs and tears down the OS keyboard capture.
//
// Install must not block beyond hook installation: it reports whether
// the OS accepted the hook and leaves the message pump running on its
// own thread. Events are published to events; key-down verdicts are
// awaited on actions for at most DecisionTimeout.
type Hook interface {
	Install(t Tracker, events chan<- Event, actions <-chan Action) error
	Uninstall()
	Prober() state.Prober
}

// drainActions discards stale verdicts left over from a previous
// event, so a slow decision cannot be misapplied to the current one.
func drainActions(actions <-chan Action) {
	for {
		select {
		case <-actions:
		default:
			return
		}
	}
}

// awaitAction waits for the verdict on the current event, failing open
// after DecisionTimeout.
func awaitAction(actions <-chan Action) Action {
	timer := time.NewTimer(DecisionTimeout)
	defer timer.Stop()
	select {
	case a := <-actions:
		return a
	case <-timer.C:
		return Allow
	}
}
