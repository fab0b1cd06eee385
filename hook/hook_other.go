//go:build !windows

package hook

// New reports that the platform has no low-level keyboard hook. The
// rest of the module still compiles and tests against the Fake hook.
func New() (Hook, error) {
	return nil, ErrUnsupported
}
