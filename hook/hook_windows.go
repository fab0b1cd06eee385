//go:build windows

package hook

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"

	"winkeys/keys"
	"winkeys/log"
	"winkeys/state"
)

const (
	whKeyboardLL = 13

	wmKeydown    = 0x0100
	wmKeyup      = 0x0101
	wmSyskeydown = 0x0104
	wmSyskeyup   = 0x0105
	wmQuit       = 0x0012

	inputKeyboard        = 1
	keyeventfKeyup       = 0x0002
	deviceNotifyCallback = 2

	pbtAPMResumeSuspend   = 0x0007
	pbtAPMResumeAutomatic = 0x0012
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procSendInput           = user32.NewProc("SendInput")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")

	procRegisterSuspendResumeNotification = user32.NewProc("RegisterSuspendResumeNotification")
)

// kbdllHookStruct mirrors KBDLLHOOKSTRUCT.
type kbdllHookStruct struct {
	VkCode    uint32
	ScanCode  uint32
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

type msg struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// keybdInput mirrors INPUT with the KEYBDINPUT union member. The
// trailing padding keeps the struct at the size SendInput expects on
// 64-bit Windows (40 bytes).
type keybdInput struct {
	Type      uint32
	_         uint32
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
	_         [8]byte
}

type deviceNotifySubscribeParameters struct {
	Callback uintptr
	Context  uintptr
}

// windowsHook owns the WH_KEYBOARD_LL hook and its message pump.
type windowsHook struct {
	tracker  Tracker
	events   chan<- Event
	actions  <-chan Action
	threadID atomic.Uint32
}

// New returns the low-level Windows keyboard hook.
func New() (Hook, error) {
	return &windowsHook{}, nil
}

func (h *windowsHook) Install(t Tracker, events chan<- Event, actions <-chan Action) error {
	h.tracker = t
	h.events = events
	h.actions = actions

	ready := make(chan error, 1)
	go h.run(ready)
	return <-ready
}

// run owns the hook for its whole lifetime. The hook procedure is
// called on the thread that installed it, so the thread is locked and
// pumps messages until Uninstall posts WM_QUIT.
func (h *windowsHook) run(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hookProc := windows.NewCallback(h.keyboardProc)
	handle, _, err := procSetWindowsHookExW.Call(whKeyboardLL, hookProc, 0, 0)
	if handle == 0 {
		ready <- fmt.Errorf("SetWindowsHookExW: %w", err)
		return
	}
	defer procUnhookWindowsHookEx.Call(handle)

	h.registerResumeNotification()
	h.threadID.Store(windows.GetCurrentThreadId())
	ready <- nil

	var m msg
	for {
		r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if r == 0 || int32(r) == -1 {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
	h.threadID.Store(0)
	log.Debug("hook thread exited")
}

// registerResumeNotification arms a keyboard-state resync after
// sleep/resume, when key-up events are routinely lost.
func (h *windowsHook) registerResumeNotification() {
	cb := windows.NewCallback(func(_ uintptr, event uint32, _ uintptr) uintptr {
		if event == pbtAPMResumeSuspend || event == pbtAPMResumeAutomatic {
			h.tracker.RequestSync()
		}
		return 0
	})
	params := deviceNotifySubscribeParameters{Callback: cb}
	r, _, err := procRegisterSuspendResumeNotification.Call(
		uintptr(unsafe.Pointer(&params)), deviceNotifyCallback)
	if r == 0 {
		log.Warnf("suspend/resume notification unavailable: %v", err)
	}
}

// keyboardProc is the WH_KEYBOARD_LL procedure. It runs synchronously
// inside the OS input dispatch path; everything here is channel sends
// and a bounded wait, never a lock held across blocking.
func (h *windowsHook) keyboardProc(code int32, wparam, lparam uintptr) uintptr {
	if code < 0 {
		return h.callNext(code, wparam, lparam)
	}
	data := (*kbdllHookStruct)(unsafe.Pointer(lparam))
	if data == nil {
		return h.callNext(code, wparam, lparam)
	}
	vk := keys.VKey(data.VkCode)
	if vk == SilentKey {
		// Our own injected key; never feed it back into matching.
		return h.callNext(code, wparam, lparam)
	}

	switch wparam {
	case wmKeydown, wmSyskeydown:
		snap := h.tracker.Keydown(vk)
		drainActions(h.actions)
		h.publish(Event{Kind: KeyDown, Key: vk, State: snap})
		switch awaitAction(h.actions) {
		case Block:
			return 1
		case Replace:
			sendSilentKey()
			return 1
		}
	case wmKeyup, wmSyskeyup:
		snap := h.tracker.Keyup(vk)
		h.publish(Event{Kind: KeyUp, Key: vk, State: snap})
	}
	return h.callNext(code, wparam, lparam)
}

// publish never blocks the hook callback. A full channel means the
// decision loop is gone or hopelessly behind; dropping fails open.
func (h *windowsHook) publish(ev Event) {
	select {
	case h.events <- ev:
	default:
		log.Warn("event channel full, dropping key event")
	}
}

func (h *windowsHook) callNext(code int32, wparam, lparam uintptr) uintptr {
	r, _, _ := procCallNextHookEx.Call(0, uintptr(code), wparam, lparam)
	return r
}

// Uninstall posts WM_QUIT to the hook thread, unblocking GetMessageW
// and tearing the hook down. Safe to call when not installed.
func (h *windowsHook) Uninstall() {
	tid := h.threadID.Load()
	if tid == 0 {
		return
	}
	procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0)
}

// Prober reports OS ground truth via GetAsyncKeyState.
func (h *windowsHook) Prober() state.Prober {
	return func(k keys.VKey) bool {
		r, _, _ := procGetAsyncKeyState.Call(uintptr(k))
		return int16(r) < 0
	}
}

// sendSilentKey injects a down/up pair of the unassigned SilentKey so
// the OS sees a real key transition while the Win key is held.
func sendSilentKey() {
	inputs := [2]keybdInput{
		{Type: inputKeyboard, Vk: uint16(SilentKey)},
		{Type: inputKeyboard, Vk: uint16(SilentKey), Flags: keyeventfKeyup},
	}
	procSendInput.Call(2,
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]))
}
