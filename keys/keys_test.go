package keys

import (
	"errors"
	"slices"
	"testing"
)

func TestFromName(t *testing.T) {
	tests := []struct {
		input   string
		want    VKey
		wantErr bool
	}{
		{"A", A, false},
		{"a", A, false},
		{"VK_A", A, false},
		{"vk_space", Space, false},
		{"F12", F12, false},
		{"CTRL", Control, false},
		{"ctrl", Control, false},
		{"ALT", Menu, false},
		{"WIN", LWin, false},
		{"super", LWin, false},
		{"ESC", Escape, false},
		{"enter", Return, false},
		{"backspace", Back, false},
		{"pgup", Prior, false},
		{"0x41", A, false},
		{"0X1B", Escape, false},
		{"LSHIFT", LShift, false},
		{"OEM_PLUS", OemPlus, false},
		{"", None, true},
		{"NOTAKEY", None, true},
		{"0xZZ", None, true},
	}

	for _, tt := range tests {
		got, err := FromName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("FromName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidKey) {
				t.Errorf("FromName(%q) error = %v, want ErrInvalidKey", tt.input, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("FromName(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNameRoundTrip(t *testing.T) {
	for _, k := range []VKey{A, Space, F24, LShift, LWin, OemComma} {
		got, err := FromName(k.Name())
		if err != nil {
			t.Errorf("FromName(%q): %v", k.Name(), err)
			continue
		}
		if got != k {
			t.Errorf("FromName(%q) = %v, want %v", k.Name(), got, k)
		}
	}
}

func TestNameUnknownCode(t *testing.T) {
	if got := VKey(0xE8).Name(); got != "0xE8" {
		t.Errorf("Name() = %q, want hex form", got)
	}
}

func TestIsModifier(t *testing.T) {
	mods := []VKey{Shift, LShift, RShift, Control, LControl, RControl, Menu, LMenu, RMenu, LWin, RWin}
	for _, k := range mods {
		if !k.IsModifier() {
			t.Errorf("%v.IsModifier() = false, want true", k)
		}
	}
	for _, k := range []VKey{A, Space, F1, Escape, None} {
		if k.IsModifier() {
			t.Errorf("%v.IsModifier() = true, want false", k)
		}
	}
}

func TestGeneric(t *testing.T) {
	tests := []struct{ in, want VKey }{
		{LShift, Shift},
		{RShift, Shift},
		{LControl, Control},
		{RControl, Control},
		{LMenu, Menu},
		{RMenu, Menu},
		{LWin, LWin},
		{RWin, RWin},
		{A, A},
	}
	for _, tt := range tests {
		if got := tt.in.Generic(); got != tt.want {
			t.Errorf("%v.Generic() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMaskOf(t *testing.T) {
	tests := []struct {
		kk   []VKey
		want ModMask
	}{
		{nil, 0},
		{[]VKey{A}, 0},
		{[]VKey{Control}, MaskCtrl},
		{[]VKey{LControl, RControl}, MaskCtrl},
		{[]VKey{LShift, LMenu}, MaskShift | MaskAlt},
		{[]VKey{LWin, RWin}, MaskWin},
		{[]VKey{Control, Shift, Menu, LWin}, MaskCtrl | MaskShift | MaskAlt | MaskWin},
	}
	for _, tt := range tests {
		if got := MaskOf(tt.kk); got != tt.want {
			t.Errorf("MaskOf(%v) = %#x, want %#x", tt.kk, got, tt.want)
		}
	}
}

func TestParseCombo(t *testing.T) {
	tests := []struct {
		input       string
		wantTrigger VKey
		wantMods    []VKey
		wantErr     bool
	}{
		{"ctrl+alt+t", T, []VKey{Control, Menu}, false},
		{"win+l", L, []VKey{LWin}, false},
		{"a", A, nil, false},
		{"win", LWin, nil, false},
		{"shift+f5", F5, []VKey{Shift}, false},
		{"", None, nil, true},
		{"ctrl+", None, nil, true},
		{"a+b", None, nil, true}, // a is not a modifier
		{"ctrl+bogus", None, nil, true},
	}
	for _, tt := range tests {
		trigger, mods, err := ParseCombo(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCombo(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if trigger != tt.wantTrigger {
			t.Errorf("ParseCombo(%q) trigger = %v, want %v", tt.input, trigger, tt.wantTrigger)
		}
		if !slices.Equal(mods, tt.wantMods) && !(len(mods) == 0 && len(tt.wantMods) == 0) {
			t.Errorf("ParseCombo(%q) mods = %v, want %v", tt.input, mods, tt.wantMods)
		}
	}
}
