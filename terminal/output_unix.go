//go:build unix

// @focus: #terminal { output }
package terminal

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func sysWritev(fd int, vecs [][]byte) (int, error) {
	return unix.Writev(fd, vecs)
}

func sysWrite(fd int, b []byte) (int, error) {
	return unix.Write(fd, b)
}

func isRetryableWriteErr(err error) bool {
	return errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN)
}

// writevAvailable reports whether vectored output should be attempted
func writevAvailable() bool {
	return os.Getenv(envDisableWritev) == ""
}

// probeWritev checks that the kernel accepts writev on this fd before
// the render path commits to it
func probeWritev(fd int) bool {
	_, err := unix.Writev(fd, [][]byte{{}})
	return err == nil || isRetryableWriteErr(err)
}
