//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package workflows

import (
	"fmt"
	"math"

	"golang.org/x/sys/unix"
)

// fileView is a read-only view of an artifact. On unix the file is mapped
// rather than copied into the heap.
type fileView struct {
	data   []byte
	mapped bool
}

func openView(path string) (*fileView, error) {
	f, size, err := openRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// mmap rejects zero-length mappings.
	if size == 0 {
		return &fileView{data: []byte{}}, nil
	}
	if size > math.MaxInt {
		return nil, fmt.Errorf("%s is too large to map (%d bytes)", path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", path, err)
	}
	return &fileView{data: data, mapped: true}, nil
}

// Bytes returns the mapped contents. The slice is invalid after Close.
func (v *fileView) Bytes() []byte {
	return v.data
}

// Close unmaps the view. It is safe to call more than once.
func (v *fileView) Close() error {
	if !v.mapped {
		v.data = nil
		return nil
	}
	data := v.data
	v.data, v.mapped = nil, false
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("failed to unmap artifact: %w", err)
	}
	return nil
}
