//go:build unix

package mmfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map maps the file at path read-only and returns its contents with a
// cleanup func that unmaps it.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close() // the mapping outlives the descriptor

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("mmfile: %s is not a regular file", path)
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("mmfile: mmap %s: %w", path, err)
	}
	// Zip readers seek to the central directory first and then jump around;
	// the hint is advisory only.
	_ = unix.Madvise(data, unix.MADV_RANDOM)

	unmapped := false
	cleanup := func() error {
		if unmapped {
			return nil
		}
		unmapped = true
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			return nil
		}
		return err
	}
	return data, cleanup, nil
}
