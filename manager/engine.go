package manager

import (
	"winkeys/hook"
	"winkeys/hotkey"
	"winkeys/keys"
	"winkeys/log"
)

// process decides what happens to one keyboard event. Pure apart from
// scheduling at most one matched callback (plus the raw-event copy for
// the global listener) on the executor.
//
// The registry mutex is held only for the bucket copy, never across
// channel operations or callback dispatch.
func (m *Manager) process(ev hook.Event) hook.Action {
	if cb := m.listener.Load(); cb != nil {
		forward := *cb
		event := ev
		m.exec.call(func() { forward(event) })
	}

	// Key-up events never block or trigger.
	if ev.Kind != hook.KeyDown {
		return hook.Allow
	}

	if m.stealing.Load() {
		// Escape exits stealing mode but is still swallowed.
		if ev.Key == keys.Escape {
			m.Free()
		}
		if ev.State.WinDown() && m.winReplace.Load() {
			return hook.Replace
		}
		return hook.Block
	}

	paused := m.paused.Load()
	for _, hk := range m.Registered(ev.Key) {
		if paused && !hk.BypassPause() {
			continue
		}
		if !hk.IsTriggerState(ev.State) {
			continue
		}
		log.Debugf("hotkey %s matched", hk)
		m.exec.call(hk.Callback())
		if hk.Behavior() == hotkey.PassThrough {
			return hook.Allow
		}
		if ev.State.WinDown() && m.winReplace.Load() {
			return hook.Replace
		}
		return hook.Block
	}
	return hook.Allow
}
