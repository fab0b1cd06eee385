package hook

import (
	"errors"
	"sync"

	"winkeys/keys"
	"winkeys/state"
)

// Fake is an in-process Hook for tests and replay tooling. Press and
// Release drive the same drain/publish/await handshake as the real
// hook callback, so the timeout fail-open path is exercised without an
// OS hook.
type Fake struct {
	mu          sync.Mutex
	installed   bool
	failInstall bool
	tracker     Tracker
	events      chan<- Event
	actions     <-chan Action
	osDown      map[keys.VKey]bool
}

// NewFake returns an uninstalled fake hook.
func NewFake() *Fake {
	return &Fake{osDown: make(map[keys.VKey]bool)}
}

// FailInstall makes the next Install return an error, for exercising
// the startup-failure path.
func (f *Fake) FailInstall() {
	f.mu.Lock()
	f.failInstall = true
	f.mu.Unlock()
}

func (f *Fake) Install(t Tracker, events chan<- Event, actions <-chan Action) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInstall {
		return errors.New("fake hook: install refused")
	}
	f.tracker = t
	f.events = events
	f.actions = actions
	f.installed = true
	return nil
}

func (f *Fake) Uninstall() {
	f.mu.Lock()
	f.installed = false
	f.mu.Unlock()
}

// Installed reports whether the hook is currently installed.
func (f *Fake) Installed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.installed
}

// SetOSDown sets the ground truth the Prober reports for k.
func (f *Fake) SetOSDown(k keys.VKey, down bool) {
	f.mu.Lock()
	f.osDown[k] = down
	f.mu.Unlock()
}

func (f *Fake) Prober() state.Prober {
	return func(k keys.VKey) bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.osDown[k]
	}
}

// Press simulates a key-down and returns the effective action, Allow
// when the decision loop misses the timeout.
func (f *Fake) Press(k keys.VKey) Action {
	f.mu.Lock()
	if !f.installed {
		f.mu.Unlock()
		return Allow
	}
	tracker, events, actions := f.tracker, f.events, f.actions
	f.mu.Unlock()

	snap := tracker.Keydown(k)
	drainActions(actions)
	select {
	case events <- Event{Kind: KeyDown, Key: k, State: snap}:
	default:
		return Allow
	}
	return awaitAction(actions)
}

// Release simulates a key-up. Key-up events never block.
func (f *Fake) Release(k keys.VKey) {
	f.mu.Lock()
	if !f.installed {
		f.mu.Unlock()
		return
	}
	tracker, events := f.tracker, f.events
	f.mu.Unlock()

	snap := tracker.Keyup(k)
	select {
	case events <- Event{Kind: KeyUp, Key: k, State: snap}:
	default:
	}
}
