// Package log is the module's diagnostic logger. It stays silent
// until initialized so the hook's time-critical path never pays for
// formatting by default.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logMu    sync.Mutex
	diagLog  zerolog.Logger
	diagFile *os.File
	logReady bool
	dir      string
)

// ResolveDir picks the log directory: explicit path, then the
// WINKEYS_LOG_PATH environment variable, then the OS default.
func ResolveDir(flagPath string) (string, error) {
	if flagPath == "" {
		flagPath = os.Getenv("WINKEYS_LOG_PATH")
	}
	if flagPath != "" {
		if filepath.IsAbs(flagPath) {
			return flagPath, nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(wd, flagPath), nil
	}
	return getDefaultDir()
}

// SetDir sets the directory used by Init.
func SetDir(d string) {
	dir = d
}

// Dir returns the configured log directory.
func Dir() string {
	return dir
}

// Init opens the diagnostics log file under the configured directory
// and enables logging. Level comes from WINKEYS_LOG (debug, info,
// warn; default info).
func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	diagPath := filepath.Join(dir, "diagnostics_log.txt")
	f, err := os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	diagFile = f
	initWriter(f)
	return nil
}

// InitWriter enables logging to an arbitrary writer. Used by the demo
// programs for stderr logging and by tests.
func InitWriter(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	initWriter(w)
}

func initWriter(w io.Writer) {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	level := zerolog.InfoLevel
	switch os.Getenv("WINKEYS_LOG") {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	}
	diagLog = zerolog.New(console).Level(level).With().
		Timestamp().Int("pid", os.Getpid()).Logger()
	logReady = true
}

// Close disables logging and closes the log file if one is open.
func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	logReady = false
}

func Debug(msg string) {
	if logReady {
		diagLog.Debug().Msg(msg)
	}
}

func Debugf(format string, args ...any) {
	if logReady {
		diagLog.Debug().Msg(fmt.Sprintf(format, args...))
	}
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Infof(format string, args ...any) {
	if logReady {
		diagLog.Info().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}
