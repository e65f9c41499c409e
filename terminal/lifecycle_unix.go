//go:build unix

// @focus: #terminal { lifecycle }
package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// terminalSize queries the kernel for the terminal geometry, falling
// back to 24x80 when the ioctl fails
func terminalSize(fd int) (rows, cols int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Row == 0 || ws.Col == 0 {
		return 24, 80
	}
	return int(ws.Row), int(ws.Col)
}

// Init puts the terminal into raw mode, sizes the grids, and prepares
// the output path. Must be paired with Fini.
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	s.inFd = int(os.Stdin.Fd())
	s.outFd = int(os.Stdout.Fd())

	if !term.IsTerminal(s.inFd) {
		return fmt.Errorf("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(s.inFd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	s.oldState = oldState

	rows, cols := terminalSize(s.outFd)
	s.setupGrids(rows, cols)

	s.out = newVecWriter(s.outFd, writevAvailable() && probeWritev(s.outFd))
	s.stopCh = make(chan struct{})
	s.installSignalHandlers()

	if altScreenSupported() {
		s.altScreen = true
		s.out.writeStable(escAltScreenEnter)
	}
	s.out.writeStable(escCursorHide)
	s.cursorVisible = false
	s.out.writeStable(escClear)
	s.out.flush()

	s.initialized = true
	s.finalized = false
	return nil
}

// Fini restores the terminal. Safe to call more than once.
func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return
	}
	s.finalized = true
	s.initialized = false

	close(s.stopCh)

	if s.out != nil {
		s.out.writeStable(escReset)
		s.out.writeStable(escCursorShow)
		if s.altScreen {
			s.out.writeStable(escAltScreenExit)
		}
		s.out.flush()
	}

	if s.oldState != nil {
		term.Restore(s.inFd, s.oldState)
		s.oldState = nil
	}
}

// installSignalHandlers wires resize and termination handling. The
// resize path touches only atomics; grid reallocation happens on the
// next refresh in the render goroutine.
func (s *Screen) installSignalHandlers() {
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-winch:
				rows, cols := terminalSize(s.outFd)
				s.ResizeNotify(rows, cols)
			case <-s.stopCh:
				signal.Stop(winch)
				return
			}
		}
	}()

	fatal := make(chan os.Signal, 1)
	signal.Notify(fatal, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		select {
		case sig := <-fatal:
			s.emergencyRestore()
			signal.Reset(sig)
			unix.Kill(os.Getpid(), sig.(syscall.Signal))
		case <-s.stopCh:
			signal.Stop(fatal)
		}
	}()
}

// emergencyRestore undoes raw mode and screen state with direct writes,
// bypassing the batching layers
func (s *Screen) emergencyRestore() {
	unix.Write(s.outFd, escReset)
	unix.Write(s.outFd, escCursorShow)
	if s.altScreen {
		unix.Write(s.outFd, escAltScreenExit)
	}
	if s.oldState != nil {
		term.Restore(s.inFd, s.oldState)
	}
}
