// Package doctor runs interactive diagnostics for keyboard capture.
package doctor

import (
	"fmt"
	"time"

	"winkeys/hook"
	"winkeys/hotkey"
	"winkeys/keys"
	"winkeys/manager"
)

// Run executes interactive diagnostic checks and returns an exit code
// (0=all pass, 1=any fail).
func Run() int {
	resetTerminal()
	setupInterruptHandler()

	fmt.Println("winkeys doctor - interactive system diagnostics")
	fmt.Println("===============================================")

	allPass := true

	m := manager.New()
	if !checkHookInstall(m) {
		allPass = false
	}
	if allPass && !checkHotkeyDelivery(m) {
		allPass = false
	}
	if allPass && !checkSteal(m) {
		allPass = false
	}
	m.Stop()

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkHookInstall(m *manager.Manager) bool {
	fmt.Println()
	fmt.Println("[1/3] Keyboard hook installation")

	h, err := hook.New()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	if err := m.Start(h); err != nil {
		fmt.Printf("  FAIL: could not start capture: %v\n", err)
		return false
	}
	fmt.Println("  PASS: low-level keyboard hook installed")
	return true
}

func checkHotkeyDelivery(m *manager.Manager) bool {
	fmt.Println()
	fmt.Println("[2/3] Hotkey delivery")
	fmt.Println("Press Ctrl+Shift+F12...")

	fired := make(chan struct{}, 1)
	id, err := m.Register(hotkey.New(keys.F12,
		[]keys.VKey{keys.Control, keys.Shift},
		func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		}))
	if err != nil {
		fmt.Printf("  FAIL: could not register test hotkey: %v\n", err)
		return false
	}
	defer m.Unregister(id)

	select {
	case <-fired:
		fmt.Println("  PASS: hotkey matched and callback delivered")
		resetTerminal()
		return true
	case <-time.After(10 * time.Second):
		fmt.Println("  FAIL: timeout waiting for hotkey")
		return false
	}
}

func checkSteal(m *manager.Manager) bool {
	fmt.Println()
	fmt.Println("[3/3] Stealing mode")
	fmt.Println("Press any key (it will be swallowed), then Escape...")

	freed := make(chan struct{}, 1)
	m.Steal(func() {
		select {
		case freed <- struct{}{}:
		default:
		}
	})

	select {
	case <-freed:
		fmt.Println("  PASS: stealing mode captured and released the keyboard")
		resetTerminal()
		return true
	case <-time.After(15 * time.Second):
		m.Free()
		fmt.Println("  FAIL: timeout waiting for Escape")
		return false
	}
}
