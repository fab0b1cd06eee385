// Package keys defines Windows virtual-key codes and the name/alias
// tables used to build hotkeys from strings.
//
// See https://learn.microsoft.com/en-us/windows/win32/inputdev/virtual-key-codes
package keys

// VKey is a Windows virtual-key code.
type VKey uint16

const (
	Back      VKey = 0x08
	Tab       VKey = 0x09
	Clear     VKey = 0x0C
	Return    VKey = 0x0D
	Shift     VKey = 0x10
	Control   VKey = 0x11
	Menu      VKey = 0x12
	PauseKey  VKey = 0x13
	Capital   VKey = 0x14
	Escape    VKey = 0x1B
	Space     VKey = 0x20
	Prior     VKey = 0x21
	Next      VKey = 0x22
	End       VKey = 0x23
	Home      VKey = 0x24
	Left      VKey = 0x25
	Up        VKey = 0x26
	Right     VKey = 0x27
	Down      VKey = 0x28
	Select    VKey = 0x29
	Print     VKey = 0x2A
	Execute   VKey = 0x2B
	Snapshot  VKey = 0x2C
	Insert    VKey = 0x2D
	Delete    VKey = 0x2E
	Help      VKey = 0x2F

	D0 VKey = 0x30
	D1 VKey = 0x31
	D2 VKey = 0x32
	D3 VKey = 0x33
	D4 VKey = 0x34
	D5 VKey = 0x35
	D6 VKey = 0x36
	D7 VKey = 0x37
	D8 VKey = 0x38
	D9 VKey = 0x39

	A VKey = 0x41
	B VKey = 0x42
	C VKey = 0x43
	D VKey = 0x44
	E VKey = 0x45
	F VKey = 0x46
	G VKey = 0x47
	H VKey = 0x48
	I VKey = 0x49
	J VKey = 0x4A
	K VKey = 0x4B
	L VKey = 0x4C
	M VKey = 0x4D
	N VKey = 0x4E
	O VKey = 0x4F
	P VKey = 0x50
	Q VKey = 0x51
	R VKey = 0x52
	S VKey = 0x53
	T VKey = 0x54
	U VKey = 0x55
	V VKey = 0x56
	W VKey = 0x57
	X VKey = 0x58
	Y VKey = 0x59
	Z VKey = 0x5A

	LWin  VKey = 0x5B
	RWin  VKey = 0x5C
	Apps  VKey = 0x5D
	Sleep VKey = 0x5F

	Numpad0   VKey = 0x60
	Numpad1   VKey = 0x61
	Numpad2   VKey = 0x62
	Numpad3   VKey = 0x63
	Numpad4   VKey = 0x64
	Numpad5   VKey = 0x65
	Numpad6   VKey = 0x66
	Numpad7   VKey = 0x67
	Numpad8   VKey = 0x68
	Numpad9   VKey = 0x69
	Multiply  VKey = 0x6A
	Add       VKey = 0x6B
	Separator VKey = 0x6C
	Subtract  VKey = 0x6D
	Decimal   VKey = 0x6E
	Divide    VKey = 0x6F

	F1  VKey = 0x70
	F2  VKey = 0x71
	F3  VKey = 0x72
	F4  VKey = 0x73
	F5  VKey = 0x74
	F6  VKey = 0x75
	F7  VKey = 0x76
	F8  VKey = 0x77
	F9  VKey = 0x78
	F10 VKey = 0x79
	F11 VKey = 0x7A
	F12 VKey = 0x7B
	F13 VKey = 0x7C
	F14 VKey = 0x7D
	F15 VKey = 0x7E
	F16 VKey = 0x7F
	F17 VKey = 0x80
	F18 VKey = 0x81
	F19 VKey = 0x82
	F20 VKey = 0x83
	F21 VKey = 0x84
	F22 VKey = 0x85
	F23 VKey = 0x86
	F24 VKey = 0x87

	Numlock VKey = 0x90
	Scroll  VKey = 0x91

	LShift   VKey = 0xA0
	RShift   VKey = 0xA1
	LControl VKey = 0xA2
	RControl VKey = 0xA3
	LMenu    VKey = 0xA4
	RMenu    VKey = 0xA5

	BrowserBack    VKey = 0xA6
	BrowserForward VKey = 0xA7
	BrowserRefresh VKey = 0xA8
	VolumeMute     VKey = 0xAD
	VolumeDown     VKey = 0xAE
	VolumeUp       VKey = 0xAF
	MediaNext      VKey = 0xB0
	MediaPrev      VKey = 0xB1
	MediaStop      VKey = 0xB2
	MediaPlay      VKey = 0xB3

	Oem1      VKey = 0xBA
	OemPlus   VKey = 0xBB
	OemComma  VKey = 0xBC
	OemMinus  VKey = 0xBD
	OemPeriod VKey = 0xBE
	Oem2      VKey = 0xBF
	Oem3      VKey = 0xC0
	Oem4      VKey = 0xDB
	Oem5      VKey = 0xDC
	Oem6      VKey = 0xDD
	Oem7      VKey = 0xDE
	Oem8      VKey = 0xDF
	Oem102    VKey = 0xE2

	// None is the "no mapping" virtual key (VK__none_). Rejected as a
	// hotkey trigger at registration time.
	None VKey = 0xFF
)

// IsModifier reports whether k is a modifier key in any of its
// left/right/generic variants.
func (k VKey) IsModifier() bool {
	switch k {
	case Shift, LShift, RShift,
		Control, LControl, RControl,
		Menu, LMenu, RMenu,
		LWin, RWin:
		return true
	}
	return false
}

// Generic collapses left/right Shift, Control and Menu variants to
// their generic code. LWin and RWin have no generic VK code and are
// returned unchanged; other keys map to themselves.
func (k VKey) Generic() VKey {
	switch k {
	case LShift, RShift:
		return Shift
	case LControl, RControl:
		return Control
	case LMenu, RMenu:
		return Menu
	}
	return k
}

// ModMask is a bitmask of the four modifier groups.
type ModMask uint16

const (
	MaskCtrl  ModMask = 0x1
	MaskShift ModMask = 0x2
	MaskAlt   ModMask = 0x4
	MaskWin   ModMask = 0x8
)

// Mask returns the modifier-group bit for k, or zero for
// non-modifier keys.
func (k VKey) Mask() ModMask {
	switch k {
	case Control, LControl, RControl:
		return MaskCtrl
	case Shift, LShift, RShift:
		return MaskShift
	case Menu, LMenu, RMenu:
		return MaskAlt
	case LWin, RWin:
		return MaskWin
	}
	return 0
}

// MaskOf combines the modifier-group bits of all given keys.
func MaskOf(kk []VKey) ModMask {
	var m ModMask
	for _, k := range kk {
		m |= k.Mask()
	}
	return m
}
