//go:build windows

// Package shutdown subscribes to the platform's termination signals so
// the daemon can uninstall the keyboard hook before exiting.
package shutdown

import (
	"os"
	"os/signal"
)

// Notify registers ch for Ctrl+C and console close events.
func Notify(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt)
}
