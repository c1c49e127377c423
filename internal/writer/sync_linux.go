//go:build linux || freebsd

package writer

import (
	"os"

	"golang.org/x/sys/unix"
)

func fdatasync(f *os.File, _ bool) error {
	return unix.Fdatasync(int(f.Fd()))
}
