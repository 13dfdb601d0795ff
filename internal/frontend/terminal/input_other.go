//go:build !unix

package terminal

import "errors"

// Input is not available on this platform.
type Input struct{}

// OpenInput returns an error, raw nonblocking stdin needs a unix system.
func OpenInput() (*Input, error) {
	return nil, errors.New("terminal frontend is not supported on this platform")
}

// Drain returns nothing.
func (in *Input) Drain() []byte {
	return nil
}

// Close does nothing.
func (in *Input) Close() error {
	return nil
}
