//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package workflows

import (
	"fmt"
	"io"
)

// fileView holds the artifact in memory on platforms without mmap support.
type fileView struct {
	data []byte
}

func openView(path string) (*fileView, error) {
	f, size, err := openRegular(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &fileView{data: data}, nil
}

func (v *fileView) Bytes() []byte {
	return v.data
}

func (v *fileView) Close() error {
	v.data = nil
	return nil
}
