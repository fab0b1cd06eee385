//go:build !windows

package paste

import "errors"

var errUnsupported = errors.New("paste: no key synthesis on this platform")

func Init() error {
	return errUnsupported
}

func Send() error {
	return errUnsupported
}
