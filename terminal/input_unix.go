//go:build unix

// @focus: #terminal { input }
package terminal

import "golang.org/x/sys/unix"

// escFollowupWaitMs bounds how long a lone ESC waits for the rest of a
// sequence before being reported as a plain ESC
const escFollowupWaitMs = 50

// Getch reads one key, honoring the window's timeout. Returns KeyErr
// on timeout or read failure. With keypad enabled, arrow sequences are
// decoded to Key* codes.
func (w *Window) Getch() int {
	s := w.screen
	if !s.initialized {
		return KeyErr
	}

	if !pollReadable(s.inFd, w.delayMs) {
		return KeyErr
	}

	b, ok := readByte(s.inFd)
	if !ok {
		return KeyErr
	}

	switch b {
	case '\r', '\n':
		return KeyEnter
	case 0x1b:
		if w.keypad {
			return parseEscape(s.inFd)
		}
	}
	return int(b)
}

// parseEscape decodes CSI arrow sequences; anything else collapses to
// a plain ESC with unread bytes consumed
func parseEscape(fd int) int {
	if !pollReadable(fd, escFollowupWaitMs) {
		return 0x1b
	}
	b, ok := readByte(fd)
	if !ok || b != '[' {
		return 0x1b
	}
	if !pollReadable(fd, escFollowupWaitMs) {
		return 0x1b
	}
	b, ok = readByte(fd)
	if !ok {
		return 0x1b
	}
	switch b {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return 0x1b
}

// pollReadable waits up to timeoutMs for input; negative blocks
func pollReadable(fd, timeoutMs int) bool {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, timeoutMs)
		if err == unix.EINTR {
			continue
		}
		return err == nil && n > 0 && fds[0].Revents&unix.POLLIN != 0
	}
}

func readByte(fd int) (byte, bool) {
	var buf [1]byte
	for {
		n, err := unix.Read(fd, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil || n == 0 {
			return 0, false
		}
		return buf[0], true
	}
}
