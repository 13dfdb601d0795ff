//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// Input reads stdin in raw mode without blocking.
type Input struct {
	fd       int
	oldState *term.State
	stopCh   chan struct{}
	done     chan struct{}
	stopped  sync.Once

	mu      sync.Mutex
	pending []byte
}

// OpenInput switches stdin into raw nonblocking mode and starts reading it.
// Close restores the previous terminal state.
func OpenInput() (*Input, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}
	if err := syscall.SetNonblock(fd, true); err != nil {
		_ = term.Restore(fd, oldState)
		return nil, fmt.Errorf("setting nonblocking stdin: %w", err)
	}

	in := &Input{
		fd:       fd,
		oldState: oldState,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	go in.read()
	return in, nil
}

func (in *Input) read() {
	defer close(in.done)
	buf := make([]byte, 16)

	for {
		select {
		case <-in.stopCh:
			return
		default:
		}

		n, err := syscall.Read(in.fd, buf)
		if n > 0 {
			in.mu.Lock()
			in.pending = append(in.pending, buf[:n]...)
			in.mu.Unlock()
		}
		if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK) || (err == nil && n <= 0) {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
	}
}

// Drain returns the bytes read since the last call.
func (in *Input) Drain() []byte {
	in.mu.Lock()
	defer in.mu.Unlock()

	data := in.pending
	in.pending = nil
	return data
}

// Close stops reading and restores the terminal.
func (in *Input) Close() error {
	in.stopped.Do(func() {
		close(in.stopCh)
	})
	<-in.done

	_ = syscall.SetNonblock(in.fd, false)
	if err := term.Restore(in.fd, in.oldState); err != nil {
		return fmt.Errorf("restoring terminal state: %w", err)
	}
	return nil
}
