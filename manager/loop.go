package manager

import (
	"fmt"
	"sync"

	"winkeys/hook"
	"winkeys/keys"
	"winkeys/log"
	"winkeys/state"
)

// phase is the capture lifecycle state.
type phase int

const (
	phaseStopped phase = iota
	phaseStarting
	phaseRunning
	phaseStopping
)

// eventBuffer sizes the hook→decision channel. The hook never blocks
// on it; a full buffer means the decision loop is gone and events
// fail open.
const eventBuffer = 64

// stateTracker adapts the manager's mutex-guarded keyboard state to
// the hook boundary.
type stateTracker struct {
	m *Manager
}

func (t stateTracker) Keydown(k keys.VKey) state.Snapshot {
	t.m.stateMu.Lock()
	defer t.m.stateMu.Unlock()
	t.m.kstate.Keydown(k)
	return t.m.kstate.Snapshot()
}

func (t stateTracker) Keyup(k keys.VKey) state.Snapshot {
	t.m.stateMu.Lock()
	defer t.m.stateMu.Unlock()
	t.m.kstate.Keyup(k)
	return t.m.kstate.Snapshot()
}

func (t stateTracker) RequestSync() {
	t.m.RequestStateSync()
}

// Start installs the hook and launches the decision loop.
//
// Returns ErrAlreadyStarted while not stopped and ErrStartupFailed
// (wrapping the cause) when the hook cannot be installed; the caller
// may retry. On success the manager is Running until Stop or an
// interrupt.
func (m *Manager) Start(h hook.Hook) error {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.phase != phaseStopped {
		return ErrAlreadyStarted
	}
	m.phase = phaseStarting

	// Fresh keyboard state per capture session, probing this hook's
	// OS truth.
	m.stateMu.Lock()
	m.kstate = state.New(h.Prober())
	m.stateMu.Unlock()

	events := make(chan hook.Event, eventBuffer)
	actions := make(chan hook.Action, 8)
	if err := h.Install(stateTracker{m}, events, actions); err != nil {
		m.phase = phaseStopped
		return fmt.Errorf("%w: %v", ErrStartupFailed, err)
	}

	m.exec.start()
	m.interrupted.Store(false)
	m.hk = h
	m.stopCh = make(chan struct{})
	m.stopOnce = new(sync.Once)
	m.done = make(chan struct{})
	m.phase = phaseRunning
	log.Info("keyboard capture started")

	go m.decisionLoop(events, actions, m.stopCh, m.done)
	return nil
}

// decisionLoop consumes keyboard events, runs the matching engine and
// answers the hook. It exits on the stop signal, the interrupted flag
// or a closed event channel; the exit is observable via Wait.
func (m *Manager) decisionLoop(events <-chan hook.Event, actions chan<- hook.Action, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		case ev, ok := <-events:
			if !ok {
				log.Error("event channel closed, decision loop exiting")
				return
			}
			if m.interrupted.Load() {
				return
			}
			action := m.process(ev)
			if ev.Kind != hook.KeyDown {
				continue
			}
			// Never block on a hook that timed out and left; the
			// next callback drains stale verdicts anyway.
			select {
			case actions <- action:
			default:
			}
		}
	}
}

// Stop uninstalls the hook, stops the decision loop and the executor,
// and waits for the decision loop to exit. No-op unless Running.
func (m *Manager) Stop() {
	m.runMu.Lock()
	if m.phase != phaseRunning {
		m.runMu.Unlock()
		return
	}
	m.phase = phaseStopping
	h := m.hk
	stopOnce := m.stopOnce
	stopCh := m.stopCh
	done := m.done
	m.runMu.Unlock()

	stopOnce.Do(func() { close(stopCh) })
	h.Uninstall()
	m.exec.stop()
	<-done

	m.runMu.Lock()
	m.phase = phaseStopped
	m.runMu.Unlock()
	log.Info("keyboard capture stopped")
}

// Wait returns a channel closed when the decision loop exits, whether
// by Stop, an interrupt or an internal fault. Returns a closed
// channel when capture is not running.
func (m *Manager) Wait() <-chan struct{} {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.done == nil || m.phase == phaseStopped {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return m.done
}

// Running reports whether capture is active.
func (m *Manager) Running() bool {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	return m.phase == phaseRunning
}
