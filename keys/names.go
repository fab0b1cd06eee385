package keys

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidKey is returned by FromName for names with no VK mapping.
var ErrInvalidKey = fmt.Errorf("invalid key name")

// byName maps canonical VK_* suffixes to key codes.
var byName = map[string]VKey{
	"BACK": Back, "TAB": Tab, "CLEAR": Clear, "RETURN": Return,
	"SHIFT": Shift, "CONTROL": Control, "MENU": Menu, "PAUSE": PauseKey,
	"CAPITAL": Capital, "ESCAPE": Escape, "SPACE": Space,
	"PRIOR": Prior, "NEXT": Next, "END": End, "HOME": Home,
	"LEFT": Left, "UP": Up, "RIGHT": Right, "DOWN": Down,
	"SELECT": Select, "PRINT": Print, "EXECUTE": Execute,
	"SNAPSHOT": Snapshot, "INSERT": Insert, "DELETE": Delete, "HELP": Help,
	"0": D0, "1": D1, "2": D2, "3": D3, "4": D4,
	"5": D5, "6": D6, "7": D7, "8": D8, "9": D9,
	"A": A, "B": B, "C": C, "D": D, "E": E, "F": F, "G": G,
	"H": H, "I": I, "J": J, "K": K, "L": L, "M": M, "N": N,
	"O": O, "P": P, "Q": Q, "R": R, "S": S, "T": T, "U": U,
	"V": V, "W": W, "X": X, "Y": Y, "Z": Z,
	"LWIN": LWin, "RWIN": RWin, "APPS": Apps, "SLEEP": Sleep,
	"NUMPAD0": Numpad0, "NUMPAD1": Numpad1, "NUMPAD2": Numpad2,
	"NUMPAD3": Numpad3, "NUMPAD4": Numpad4, "NUMPAD5": Numpad5,
	"NUMPAD6": Numpad6, "NUMPAD7": Numpad7, "NUMPAD8": Numpad8,
	"NUMPAD9": Numpad9,
	"MULTIPLY": Multiply, "ADD": Add, "SEPARATOR": Separator,
	"SUBTRACT": Subtract, "DECIMAL": Decimal, "DIVIDE": Divide,
	"F1": F1, "F2": F2, "F3": F3, "F4": F4, "F5": F5, "F6": F6,
	"F7": F7, "F8": F8, "F9": F9, "F10": F10, "F11": F11, "F12": F12,
	"F13": F13, "F14": F14, "F15": F15, "F16": F16, "F17": F17,
	"F18": F18, "F19": F19, "F20": F20, "F21": F21, "F22": F22,
	"F23": F23, "F24": F24,
	"NUMLOCK": Numlock, "SCROLL": Scroll,
	"LSHIFT": LShift, "RSHIFT": RShift,
	"LCONTROL": LControl, "RCONTROL": RControl,
	"LMENU": LMenu, "RMENU": RMenu,
	"BROWSER_BACK": BrowserBack, "BROWSER_FORWARD": BrowserForward,
	"BROWSER_REFRESH": BrowserRefresh,
	"VOLUME_MUTE": VolumeMute, "VOLUME_DOWN": VolumeDown,
	"VOLUME_UP": VolumeUp,
	"MEDIA_NEXT_TRACK": MediaNext, "MEDIA_PREV_TRACK": MediaPrev,
	"MEDIA_STOP": MediaStop, "MEDIA_PLAY_PAUSE": MediaPlay,
	"OEM_1": Oem1, "OEM_PLUS": OemPlus, "OEM_COMMA": OemComma,
	"OEM_MINUS": OemMinus, "OEM_PERIOD": OemPeriod, "OEM_2": Oem2,
	"OEM_3": Oem3, "OEM_4": Oem4, "OEM_5": Oem5, "OEM_6": Oem6,
	"OEM_7": Oem7, "OEM_8": Oem8, "OEM_102": Oem102,
	"NONE": None,
}

// aliases accepted in addition to the canonical VK names.
var aliases = map[string]string{
	"CTRL":        "CONTROL",
	"ALT":         "MENU",
	"WIN":         "LWIN",
	"WINDOWS":     "LWIN",
	"SUPER":       "LWIN",
	"ESC":         "ESCAPE",
	"ENTER":       "RETURN",
	"BACKSPACE":   "BACK",
	"CAPSLOCK":    "CAPITAL",
	"PAGEUP":      "PRIOR",
	"PGUP":        "PRIOR",
	"PAGEDOWN":    "NEXT",
	"PGDN":        "NEXT",
	"INS":         "INSERT",
	"DEL":         "DELETE",
	"PRINTSCREEN": "SNAPSHOT",
	"PRTSC":       "SNAPSHOT",
	"PLUS":        "OEM_PLUS",
	"MINUS":       "OEM_MINUS",
	"COMMA":       "OEM_COMMA",
	"PERIOD":      "OEM_PERIOD",
}

var names = func() map[VKey]string {
	m := make(map[VKey]string, len(byName))
	for name, k := range byName {
		// First writer wins for duplicate codes; the table has none.
		if _, ok := m[k]; !ok {
			m[k] = name
		}
	}
	return m
}()

// FromName resolves a key name to its VK code. Canonical VK_* names,
// bare names, common aliases (CTRL, ALT, WIN, ESC, ...) and hex
// literals like "0x41" are accepted, case-insensitively.
func FromName(name string) (VKey, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if v, ok := parseHex(s); ok {
		return v, nil
	}
	if canonical, ok := aliases[s]; ok {
		s = canonical
	}
	s = strings.TrimPrefix(s, "VK_")
	if k, ok := byName[s]; ok {
		return k, nil
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidKey, name)
}

func parseHex(s string) (VKey, bool) {
	if !strings.HasPrefix(s, "0X") {
		return None, false
	}
	n, err := strconv.ParseUint(s[2:], 16, 16)
	if err != nil {
		return None, false
	}
	return VKey(n), true
}

// Name returns the canonical VK name for k, or a hex form for codes
// outside the table.
func (k VKey) Name() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("0x%02X", uint16(k))
}

func (k VKey) String() string {
	return k.Name()
}
