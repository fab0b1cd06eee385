// winkeysd binds TOML-configured key chords to actions: spawning
// commands, pasting text, or toggling hotkey processing.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	cb "github.com/atotto/clipboard"

	"winkeys/doctor"
	"winkeys/hook"
	"winkeys/hotkey"
	"winkeys/keys"
	"winkeys/log"
	"winkeys/manager"
	"winkeys/paste"
	"winkeys/shutdown"
	"winkeys/update"
)

var version = "dev"

type args struct {
	Config        string `arg:"-c,--config" default:"winkeys.toml" help:"path to the TOML hotkey config"`
	LogPath       string `arg:"--logpath" help:"log directory (default: OS-specific location)"`
	Doctor        bool   `arg:"--doctor" help:"run system diagnostics and exit"`
	Stderr        bool   `arg:"--stderr" help:"log to stderr instead of a file"`
	Replay        bool   `arg:"--replay" help:"drive a fake hook from scripted stdin events"`
	Update        bool   `arg:"--update" help:"download and install the latest release"`
	NoUpdateCheck bool   `arg:"--no-update-check" help:"skip the background release check"`
}

func (args) Version() string {
	return "winkeysd " + version
}

func main() {
	var a args
	arg.MustParse(&a)

	if a.Stderr {
		log.InitWriter(os.Stderr)
	} else {
		dir, err := log.ResolveDir(a.LogPath)
		if err == nil {
			log.SetDir(dir)
			err = log.Init()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
		}
	}
	defer log.Close()

	if a.Doctor {
		os.Exit(doctor.Run())
	}
	if a.Update {
		os.Exit(runUpdate())
	}

	cfg, err := LoadConfig(a.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if a.Replay {
		os.Exit(runReplay(cfg))
	}

	m := manager.Current()
	pause := m.PauseHandle()
	for _, b := range cfg.Hotkeys {
		if err := register(m, pause, b); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", b.Keys, err)
			os.Exit(1)
		}
	}

	h, err := hook.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := m.Start(h); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("winkeysd: %d hotkeys active (%s)\n", len(cfg.Hotkeys), a.Config)

	update.CleanupOld()
	if !a.NoUpdateCheck {
		if dir, err := os.UserCacheDir(); err == nil {
			update.StartBackgroundCheck(version, filepath.Join(dir, "winkeys"), func(rel update.Release) {
				log.Infof("winkeysd %s is available, run winkeysd --update", rel.Version)
			})
		}
	}

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	select {
	case <-sigChan:
		m.InterruptHandle().Interrupt()
	case <-m.Wait():
	}
}

func runUpdate() int {
	rel, err := update.CheckLatest(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if rel == nil {
		fmt.Println("winkeysd is up to date")
		return 0
	}
	fmt.Printf("updating to %s\n", rel.Version)
	if err := update.Apply(rel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println("update installed, restart winkeysd")
	return 0
}

func register(m *manager.Manager, pause manager.PauseHandle, b Binding) error {
	trigger, mods, err := keys.ParseCombo(b.Keys)
	if err != nil {
		return err
	}
	hk := hotkey.New(trigger, mods, action(pause, b))
	if b.PassThrough {
		hk.SetBehavior(hotkey.PassThrough)
	}
	if b.BypassPause || b.PauseToggle {
		// A pause toggle that stops firing while paused could never
		// unpause.
		hk.SetBypassPause()
	}
	_, err = m.Register(hk)
	return err
}

func action(pause manager.PauseHandle, b Binding) func() {
	switch {
	case b.PauseToggle:
		return func() {
			pause.Toggle()
			log.Infof("hotkeys paused: %v", pause.IsPaused())
		}
	case b.Paste:
		return func() {
			if err := paste.Send(); err != nil {
				log.Errorf("paste failed: %v", err)
			}
		}
	case b.Text != "":
		text := b.Text
		return func() {
			if err := cb.WriteAll(text); err != nil {
				log.Errorf("clipboard write failed: %v", err)
				return
			}
			if err := paste.Send(); err != nil {
				log.Errorf("paste failed: %v", err)
			}
		}
	default:
		name, cmdArgs := splitCommand(b.Run)
		return func() {
			c := exec.Command(name, cmdArgs...)
			if err := c.Start(); err != nil {
				log.Errorf("spawning %q failed: %v", b.Run, err)
				return
			}
			go c.Wait()
		}
	}
}

func splitCommand(s string) (string, []string) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return s, nil
	}
	return parts[0], parts[1:]
}
