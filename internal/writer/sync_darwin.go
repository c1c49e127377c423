//go:build darwin

package writer

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync uses F_FULLFSYNC when full is set so data reaches the disk,
// not only the drive cache.
func fdatasync(f *os.File, full bool) error {
	if full {
		_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(int(f.Fd()))
}
