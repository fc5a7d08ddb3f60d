package utils

import (
	"os"

	"golang.org/x/sys/unix"
)

// IsTerminal reports whether f refers to a terminal.
func IsTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS)
	return err == nil
}
