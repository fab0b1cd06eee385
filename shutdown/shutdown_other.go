//go:build !windows

package shutdown

import (
	"os"
	"os/signal"
	"syscall"
)

// Notify registers ch for interrupt and termination signals.
func Notify(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
}
