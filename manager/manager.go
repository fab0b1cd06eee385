// Package manager owns hotkey registration and the decision loop that
// sits between the OS keyboard hook and user callbacks.
//
// Three long-lived goroutines cooperate while capture is running: the
// hook's message pump (OS-invoked callback), the decision loop, and
// the callback executor. The hook round trip is bounded by
// hook.DecisionTimeout and fails open to Allow.
package manager

import (
	"fmt"
	"sync"
	"sync/atomic"

	"winkeys/hook"
	"winkeys/hotkey"
	"winkeys/keys"
	"winkeys/log"
	"winkeys/state"
)

// Manager holds the hotkey registry, the shared keyboard state and
// the pause/steal/interrupt control surface. Construct isolated
// instances with New in tests; Current returns the process-wide one.
type Manager struct {
	mu      sync.Mutex
	hotkeys map[keys.VKey][]*hotkey.Hotkey
	index   map[uint64]keys.VKey // identity → trigger of the stored entry
	seeded  map[uint64]func() *hotkey.Hotkey

	paused      atomic.Bool
	stealing    atomic.Bool
	interrupted atomic.Bool
	winReplace  atomic.Bool

	listener atomic.Pointer[func(hook.Event)]
	onFree   atomic.Pointer[func()]

	exec *executor

	stateMu sync.Mutex
	kstate  *state.KeyboardState

	runMu    sync.Mutex
	phase    phase
	hk       hook.Hook
	stopCh   chan struct{}
	stopOnce *sync.Once
	done     chan struct{}
}

var current = sync.OnceValue(New)

// Current returns the lazily created process-wide manager. It is a
// thin convenience over an injected instance; libraries should accept
// a *Manager instead.
func Current() *Manager {
	return current()
}

// New returns a manager seeded with the two system shortcuts.
func New() *Manager {
	m := &Manager{
		hotkeys: make(map[keys.VKey][]*hotkey.Hotkey),
		index:   make(map[uint64]keys.VKey),
		seeded:  make(map[uint64]func() *hotkey.Hotkey),
		exec:    newExecutor(),
		kstate:  state.New(nil),
	}
	m.winReplace.Store(true)
	m.seedSystemHotkeys()
	return m
}

// seedSystemHotkeys installs the two fixed baseline entries. Win+L and
// Ctrl+Alt+Delete reach the OS no matter what (the lock screen and the
// secure desktop both eat key-up events), so they pass through and
// arm a keyboard-state resync for the way back.
func (m *Manager) seedSystemHotkeys() {
	seed := func(trigger keys.VKey, mods []keys.VKey) {
		build := func() *hotkey.Hotkey {
			return hotkey.New(trigger, mods, m.RequestStateSync).
				SetBehavior(hotkey.PassThrough).
				SetBypassPause()
		}
		hk := build()
		m.seeded[hk.ID()] = build
		m.hotkeys[trigger] = append(m.hotkeys[trigger], hk)
		m.index[hk.ID()] = trigger
	}
	seed(keys.L, []keys.VKey{keys.LWin})
	seed(keys.Delete, []keys.VKey{keys.Control, keys.Menu})
}

// Register adds a hotkey and returns its identity handle.
//
// keys.None triggers are rejected. A user hotkey colliding with an
// existing user hotkey returns ErrAlreadyRegistered; colliding with a
// seeded system entry overwrites it in place, keeping the baseline
// slot occupied.
func (m *Manager) Register(hk *hotkey.Hotkey) (uint64, error) {
	if hk.Trigger() == keys.None {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTriggerKey, hk.Trigger())
	}
	id := hk.ID()

	m.mu.Lock()
	defer m.mu.Unlock()
	if oldTrigger, ok := m.index[id]; ok {
		if _, seeded := m.seeded[id]; !seeded {
			return 0, fmt.Errorf("%w: %s", ErrAlreadyRegistered, hk)
		}
		// Identity ignores the trigger/modifier split, so the override
		// may live in a different bucket than the seeded default.
		m.removeLocked(id, oldTrigger)
		m.storeLocked(hk)
		log.Debugf("system hotkey %s overridden", hk)
		return id, nil
	}
	m.storeLocked(hk)
	log.Debugf("registered hotkey %s", hk)
	return id, nil
}

// storeLocked appends hk to its trigger bucket and indexes it.
func (m *Manager) storeLocked(hk *hotkey.Hotkey) {
	m.hotkeys[hk.Trigger()] = append(m.hotkeys[hk.Trigger()], hk)
	m.index[hk.ID()] = hk.Trigger()
}

// removeLocked drops the entry with the given identity from its
// trigger bucket and the index.
func (m *Manager) removeLocked(id uint64, trigger keys.VKey) {
	bucket := m.hotkeys[trigger]
	kept := bucket[:0]
	for _, hk := range bucket {
		if hk.ID() != id {
			kept = append(kept, hk)
		}
	}
	if len(kept) == 0 {
		delete(m.hotkeys, trigger)
	} else {
		m.hotkeys[trigger] = kept
	}
	delete(m.index, id)
}

// Unregister removes the hotkey with the given handle. Unknown
// handles are a no-op. A seeded system slot is restored to its
// default instead of removed.
func (m *Manager) Unregister(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trigger, ok := m.index[id]
	if !ok {
		return
	}
	m.removeLocked(id, trigger)
	if build, seeded := m.seeded[id]; seeded {
		m.storeLocked(build())
	}
}

// UnregisterAll resets the registry to the seeded baseline.
func (m *Manager) UnregisterAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotkeys = make(map[keys.VKey][]*hotkey.Hotkey)
	m.index = make(map[uint64]keys.VKey)
	for _, build := range m.seeded {
		m.storeLocked(build())
	}
}

// Registered returns all hotkeys sharing the given trigger, in
// registration order.
func (m *Manager) Registered(trigger keys.VKey) []*hotkey.Hotkey {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket := m.hotkeys[trigger]
	out := make([]*hotkey.Hotkey, len(bucket))
	copy(out, bucket)
	return out
}

// PauseHandle returns a handle toggling hotkey processing. Any number
// of copies may be used from any goroutine. While paused, only
// bypass-pause hotkeys fire.
func (m *Manager) PauseHandle() PauseHandle {
	return PauseHandle{flag: &m.paused}
}

// InterruptHandle returns a handle that stops capture from any
// goroutine, idempotently.
func (m *Manager) InterruptHandle() InterruptHandle {
	return InterruptHandle{m: m}
}

// Steal routes all keyboard input to the global listener and blocks
// it from the OS until Escape is pressed or Free is called. onFree
// runs on the executor once stealing ends.
func (m *Manager) Steal(onFree func()) {
	log.Debug("keyboard stealing mode enabled")
	m.stealing.Store(true)
	if onFree == nil {
		onFree = func() {}
	}
	m.onFree.Store(&onFree)
}

// Free leaves stealing mode and schedules the on-free callback.
func (m *Manager) Free() {
	log.Debug("keyboard stealing mode disabled")
	m.stealing.Store(false)
	if cb := m.onFree.Swap(nil); cb != nil {
		m.exec.call(*cb)
	}
}

// IsStealing reports whether stealing mode is active.
func (m *Manager) IsStealing() bool {
	return m.stealing.Load()
}

// SetGlobalListener forwards a copy of every raw keyboard event to cb
// on the executor, regardless of matching.
func (m *Manager) SetGlobalListener(cb func(hook.Event)) {
	m.listener.Store(&cb)
}

// RemoveGlobalListener stops forwarding raw events.
func (m *Manager) RemoveGlobalListener() {
	m.listener.Store(nil)
}

// SetWinKeyWorkaround controls whether suppressed chords involving a
// held Windows key answer Replace instead of Block. Replace injects an
// unassigned key so releasing Win afterwards does not open the Start
// menu. On by default; off is useful in tests and on systems without
// the Start-menu quirk.
func (m *Manager) SetWinKeyWorkaround(enabled bool) {
	m.winReplace.Store(enabled)
}

// RequestStateSync arms an OS resync of the shared keyboard state.
func (m *Manager) RequestStateSync() {
	m.stateMu.Lock()
	m.kstate.RequestSync()
	m.stateMu.Unlock()
}

// PauseHandle toggles hotkey processing over a shared atomic flag.
type PauseHandle struct {
	flag *atomic.Bool
}

// Toggle flips the pause state.
func (p PauseHandle) Toggle() {
	p.flag.Store(!p.flag.Load())
}

// Set sets the pause state explicitly.
func (p PauseHandle) Set(paused bool) {
	p.flag.Store(paused)
}

// IsPaused reports the pause state.
func (p PauseHandle) IsPaused() bool {
	return p.flag.Load()
}

// InterruptHandle stops keyboard capture from any goroutine.
type InterruptHandle struct {
	m *Manager
}

// Interrupt sets the interrupted flag and shuts down the hook and
// decision goroutines. Idempotent; safe before, during and after
// capture.
func (h InterruptHandle) Interrupt() {
	h.m.interrupted.Store(true)
	h.m.Stop()
}
