package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"winkeys/hook"
	"winkeys/hotkey"
	"winkeys/keys"
	"winkeys/log"
	"winkeys/manager"
)

// runReplay drives the full decision pipeline from a scripted stdin
// instead of the OS hook. Bindings from the config are registered with
// print-only callbacks so scripts stay deterministic; every verdict is
// echoed to stdout for the integration tests to assert on.
//
// Script commands, one per line:
//
//	DOWN <key>   press a key, print the verdict
//	UP <key>     release a key
//	STEAL        enter stealing mode, prints "freed" on exit
//	SLEEP <ms>   pause the script
//	QUIT         stop capture and exit
func runReplay(cfg *Config) int {
	m := manager.Current()
	pause := m.PauseHandle()
	for _, b := range cfg.Hotkeys {
		if err := registerReplay(m, pause, b); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", b.Keys, err)
			return 1
		}
	}

	f := hook.NewFake()
	if err := m.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer m.Stop()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		switch cmd {
		case "", "#":
		case "DOWN":
			k, err := keys.FromName(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			act := f.Press(k)
			fmt.Printf("down %s %s\n", k.Name(), act)
		case "UP":
			k, err := keys.FromName(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			f.Release(k)
			fmt.Printf("up %s\n", k.Name())
		case "STEAL":
			m.Steal(func() { fmt.Println("freed") })
		case "SLEEP":
			if ms, err := strconv.Atoi(arg); err == nil {
				time.Sleep(time.Duration(ms) * time.Millisecond)
			}
		case "QUIT":
			return 0
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown replay command %q\n", cmd)
			return 1
		}
	}
	return 0
}

func registerReplay(m *manager.Manager, pause manager.PauseHandle, b Binding) error {
	trigger, mods, err := keys.ParseCombo(b.Keys)
	if err != nil {
		return err
	}
	chord := b.Keys
	cb := func() {
		fmt.Printf("fired %s\n", chord)
		log.Debugf("replay: fired %s", chord)
	}
	if b.PauseToggle {
		cb = func() {
			pause.Toggle()
			fmt.Printf("fired %s paused=%v\n", chord, pause.IsPaused())
		}
	}
	hk := hotkey.New(trigger, mods, cb)
	if b.PassThrough {
		hk.SetBehavior(hotkey.PassThrough)
	}
	if b.BypassPause || b.PauseToggle {
		hk.SetBypassPause()
	}
	_, err = m.Register(hk)
	return err
}
