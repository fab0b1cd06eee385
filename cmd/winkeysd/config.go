package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"winkeys/keys"
)

// Config is the daemon's TOML file: a list of hotkey bindings.
type Config struct {
	Hotkeys []Binding `toml:"hotkey"`
}

// Binding maps a key chord to exactly one action.
type Binding struct {
	Keys        string `toml:"keys"`
	Run         string `toml:"run"`          // spawn a command
	Text        string `toml:"text"`         // copy text and paste it
	Paste       bool   `toml:"paste"`        // synthesize Ctrl+V
	PauseToggle bool   `toml:"pause_toggle"` // flip the pause state
	PassThrough bool   `toml:"pass_through"`
	BypassPause bool   `toml:"bypass_pause"`
}

func (b Binding) actionCount() int {
	n := 0
	if b.Run != "" {
		n++
	}
	if b.Text != "" {
		n++
	}
	if b.Paste {
		n++
	}
	if b.PauseToggle {
		n++
	}
	return n
}

// LoadConfig reads and validates the TOML config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(cfg.Hotkeys) == 0 {
		return nil, fmt.Errorf("%s: no [[hotkey]] entries", path)
	}
	for i, b := range cfg.Hotkeys {
		if b.Keys == "" {
			return nil, fmt.Errorf("hotkey %d: missing keys", i+1)
		}
		if _, _, err := keys.ParseCombo(b.Keys); err != nil {
			return nil, fmt.Errorf("hotkey %d: %w", i+1, err)
		}
		if n := b.actionCount(); n != 1 {
			return nil, fmt.Errorf("hotkey %d (%s): want exactly one action, got %d", i+1, b.Keys, n)
		}
	}
	return &cfg, nil
}
