package hotkey

import (
	"slices"
	"testing"

	"winkeys/keys"
	"winkeys/state"
)

func TestIDIgnoresModifierOrder(t *testing.T) {
	a := New(keys.T, []keys.VKey{keys.Control, keys.Menu}, nil)
	b := New(keys.T, []keys.VKey{keys.Menu, keys.Control}, nil)
	if a.ID() != b.ID() {
		t.Fatalf("ID() differs for reordered modifiers: %#x vs %#x", a.ID(), b.ID())
	}
}

func TestIDIgnoresTriggerPosition(t *testing.T) {
	// Identity is the key set; which key is the trigger does not
	// matter.
	a := New(keys.Control, []keys.VKey{keys.Menu}, nil)
	b := New(keys.Menu, []keys.VKey{keys.Control}, nil)
	if a.ID() != b.ID() {
		t.Fatalf("ID() differs for swapped trigger/modifier: %#x vs %#x", a.ID(), b.ID())
	}

	c := New(keys.A, []keys.VKey{keys.Control}, nil)
	d := New(keys.Control, []keys.VKey{keys.A}, nil)
	if c.ID() != d.ID() {
		t.Fatalf("ID() differs for swapped trigger/modifier: %#x vs %#x", c.ID(), d.ID())
	}
}

func TestIDIgnoresDuplicateModifiers(t *testing.T) {
	a := New(keys.T, []keys.VKey{keys.Control}, nil)
	b := New(keys.T, []keys.VKey{keys.Control, keys.Control}, nil)
	if a.ID() != b.ID() {
		t.Fatalf("ID() differs for duplicated modifier: %#x vs %#x", a.ID(), b.ID())
	}
}

func TestIDDistinguishesKeySets(t *testing.T) {
	hks := []*Hotkey{
		New(keys.T, nil, nil),
		New(keys.T, []keys.VKey{keys.Control}, nil),
		New(keys.T, []keys.VKey{keys.Shift}, nil),
		New(keys.U, []keys.VKey{keys.Control}, nil),
		New(keys.LWin, nil, nil),
	}
	seen := map[uint64]string{}
	for _, hk := range hks {
		if prev, ok := seen[hk.ID()]; ok {
			t.Fatalf("ID collision between %s and %s", prev, hk)
		}
		seen[hk.ID()] = hk.String()
	}
}

func TestIDIgnoresBehavior(t *testing.T) {
	a := New(keys.T, []keys.VKey{keys.Control}, nil)
	b := New(keys.T, []keys.VKey{keys.Control}, nil).SetBehavior(PassThrough).SetBypassPause()
	if a.ID() != b.ID() {
		t.Fatal("ID() depends on behavior flags")
	}
}

func TestModsSortedAndUnique(t *testing.T) {
	hk := New(keys.T, []keys.VKey{keys.Menu, keys.Control, keys.Menu}, nil)
	want := []keys.VKey{keys.Control, keys.Menu}
	if got := hk.Mods(); !slices.Equal(got, want) {
		t.Fatalf("Mods() = %v, want %v", got, want)
	}
}

func TestIsTriggerState(t *testing.T) {
	tests := []struct {
		name    string
		trigger keys.VKey
		mods    []keys.VKey
		snap    state.Snapshot
		want    bool
	}{
		{
			name:    "exact chord",
			trigger: keys.A, mods: []keys.VKey{keys.Control},
			snap: state.SnapshotOf(keys.LControl, keys.A),
			want: true,
		},
		{
			name:    "empty state",
			trigger: keys.A, mods: []keys.VKey{keys.Control},
			snap: state.SnapshotOf(),
			want: false,
		},
		{
			name:    "extra modifier blocks",
			trigger: keys.A, mods: []keys.VKey{keys.Control},
			snap: state.SnapshotOf(keys.LControl, keys.LShift, keys.A),
			want: false,
		},
		{
			name:    "missing modifier",
			trigger: keys.A, mods: []keys.VKey{keys.Control, keys.Shift},
			snap: state.SnapshotOf(keys.LControl, keys.A),
			want: false,
		},
		{
			name:    "trigger not last pressed",
			trigger: keys.A, mods: []keys.VKey{keys.Control},
			snap: state.SnapshotOf(keys.A, keys.LControl),
			want: false,
		},
		{
			name:    "either control variant satisfies generic",
			trigger: keys.A, mods: []keys.VKey{keys.Control},
			snap: state.SnapshotOf(keys.RControl, keys.A),
			want: true,
		},
		{
			name:    "bare win trigger",
			trigger: keys.LWin, mods: nil,
			snap: state.SnapshotOf(keys.LWin),
			want: true,
		},
		{
			// Non-modifier keys carry no group flag, so they do not
			// break the mask equality. The registry only consults this
			// hotkey on the trigger's own keydown anyway.
			name:    "modifier trigger tolerates held letter",
			trigger: keys.LWin, mods: nil,
			snap: state.SnapshotOf(keys.LWin, keys.A),
			want: true,
		},
		{
			name:    "win plus letter",
			trigger: keys.L, mods: []keys.VKey{keys.LWin},
			snap: state.SnapshotOf(keys.LWin, keys.L),
			want: true,
		},
		{
			name:    "non-modifier mod must be down",
			trigger: keys.B, mods: []keys.VKey{keys.A},
			snap: state.SnapshotOf(keys.B),
			want: false,
		},
		{
			name:    "non-modifier mod down",
			trigger: keys.B, mods: []keys.VKey{keys.A},
			snap: state.SnapshotOf(keys.A, keys.B),
			want: true,
		},
		{
			name:    "ctrl alt del",
			trigger: keys.Delete, mods: []keys.VKey{keys.Control, keys.Menu},
			snap: state.SnapshotOf(keys.LControl, keys.LMenu, keys.Delete),
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hk := New(tt.trigger, tt.mods, nil)
			if got := hk.IsTriggerState(tt.snap); got != tt.want {
				t.Errorf("IsTriggerState(%v) = %v, want %v", tt.snap, got, tt.want)
			}
		})
	}
}

// Distinct chords sharing a trigger never both match one snapshot, so
// registration order only breaks ties between identical declarations.
func TestAtMostOneMatchPerSnapshot(t *testing.T) {
	hks := []*Hotkey{
		New(keys.A, nil, nil),
		New(keys.A, []keys.VKey{keys.Control}, nil),
		New(keys.A, []keys.VKey{keys.Shift}, nil),
		New(keys.A, []keys.VKey{keys.Control, keys.Shift}, nil),
	}
	snaps := []state.Snapshot{
		state.SnapshotOf(keys.A),
		state.SnapshotOf(keys.LControl, keys.A),
		state.SnapshotOf(keys.LShift, keys.A),
		state.SnapshotOf(keys.LControl, keys.LShift, keys.A),
		state.SnapshotOf(keys.LMenu, keys.A),
	}
	for _, snap := range snaps {
		matches := 0
		for _, hk := range hks {
			if hk.IsTriggerState(snap) {
				matches++
			}
		}
		if matches > 1 {
			t.Errorf("snapshot %v matched %d hotkeys", snap, matches)
		}
	}
}

func TestString(t *testing.T) {
	hk := New(keys.Delete, []keys.VKey{keys.Menu, keys.Control}, nil)
	if got, want := hk.String(), "CONTROL+MENU+DELETE"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
