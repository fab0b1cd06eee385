package manager

import "errors"

var (
	// ErrAlreadyRegistered means a hotkey with the same
	// (trigger, modifiers) identity is already present.
	ErrAlreadyRegistered = errors.New("hotkey is already registered")

	// ErrInvalidTriggerKey rejects keys.None as a trigger at
	// registration time.
	ErrInvalidTriggerKey = errors.New("invalid hotkey trigger key")

	// ErrAlreadyStarted guards Start while not stopped.
	ErrAlreadyStarted = errors.New("keyboard capture already started")

	// ErrStartupFailed wraps a hook installation failure. The caller
	// may retry Start.
	ErrStartupFailed = errors.New("failed to start keyboard hook")
)
