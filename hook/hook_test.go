package hook

import (
	"testing"
	"time"

	"winkeys/keys"
	"winkeys/state"
)

// testTracker applies transitions to an unguarded KeyboardState. The
// tests drive the fake from one goroutine, matching the real pump.
type testTracker struct {
	s *state.KeyboardState
}

func newTestTracker() *testTracker {
	return &testTracker{s: state.New(nil)}
}

func (t *testTracker) Keydown(k keys.VKey) state.Snapshot {
	t.s.Keydown(k)
	return t.s.Snapshot()
}

func (t *testTracker) Keyup(k keys.VKey) state.Snapshot {
	t.s.Keyup(k)
	return t.s.Snapshot()
}

func (t *testTracker) RequestSync() { t.s.RequestSync() }

func shortTimeout(t *testing.T, d time.Duration) {
	t.Helper()
	old := DecisionTimeout
	DecisionTimeout = d
	t.Cleanup(func() { DecisionTimeout = old })
}

func TestPressDeliversEventAndVerdict(t *testing.T) {
	f := NewFake()
	events := make(chan Event, 1)
	actions := make(chan Action, 1)
	if err := f.Install(newTestTracker(), events, actions); err != nil {
		t.Fatal(err)
	}

	done := make(chan Action, 1)
	go func() { done <- f.Press(keys.A) }()

	ev := <-events
	if ev.Kind != KeyDown || ev.Key != keys.A {
		t.Fatalf("event = %+v, want KeyDown A", ev)
	}
	if got := ev.State.LastPressed(); got != keys.A {
		t.Fatalf("snapshot LastPressed() = %v, want A", got)
	}
	actions <- Block

	if got := <-done; got != Block {
		t.Fatalf("Press() = %v, want Block", got)
	}
}

func TestPressFailsOpenOnTimeout(t *testing.T) {
	shortTimeout(t, 10*time.Millisecond)

	f := NewFake()
	events := make(chan Event, 1)
	actions := make(chan Action, 1)
	if err := f.Install(newTestTracker(), events, actions); err != nil {
		t.Fatal(err)
	}

	// Nobody answers; the press must come back Allow, promptly.
	start := time.Now()
	if got := f.Press(keys.A); got != Allow {
		t.Fatalf("Press() = %v, want Allow", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("fail-open took %v", elapsed)
	}
}

func TestStaleVerdictIsDrained(t *testing.T) {
	f := NewFake()
	events := make(chan Event, 1)
	actions := make(chan Action, 2)
	if err := f.Install(newTestTracker(), events, actions); err != nil {
		t.Fatal(err)
	}

	// A verdict from an event that already failed open is still in the
	// channel. It must not be applied to the next press.
	actions <- Block

	done := make(chan Action, 1)
	go func() { done <- f.Press(keys.A) }()

	<-events
	actions <- Allow
	if got := <-done; got != Allow {
		t.Fatalf("Press() = %v, want Allow after stale Block drained", got)
	}
}

func TestReleaseNeverBlocks(t *testing.T) {
	f := NewFake()
	events := make(chan Event) // unbuffered, no reader
	actions := make(chan Action)
	if err := f.Install(newTestTracker(), events, actions); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		f.Release(keys.A)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Release blocked with no event reader")
	}
}

func TestFailInstall(t *testing.T) {
	f := NewFake()
	f.FailInstall()
	err := f.Install(newTestTracker(), make(chan Event, 1), make(chan Action, 1))
	if err == nil {
		t.Fatal("Install succeeded, want error")
	}
	if f.Installed() {
		t.Fatal("Installed() = true after failed install")
	}
}

func TestPressAfterUninstall(t *testing.T) {
	f := NewFake()
	events := make(chan Event, 1)
	if err := f.Install(newTestTracker(), events, make(chan Action, 1)); err != nil {
		t.Fatal(err)
	}
	f.Uninstall()

	if got := f.Press(keys.A); got != Allow {
		t.Fatalf("Press() = %v, want Allow on uninstalled hook", got)
	}
	select {
	case ev := <-events:
		t.Fatalf("uninstalled hook published %+v", ev)
	default:
	}
}

func TestProber(t *testing.T) {
	f := NewFake()
	p := f.Prober()
	if p(keys.A) {
		t.Fatal("prober reports A down initially")
	}
	f.SetOSDown(keys.A, true)
	if !p(keys.A) {
		t.Fatal("prober misses A after SetOSDown")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{Allow, "allow"},
		{Block, "block"},
		{Replace, "replace"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
