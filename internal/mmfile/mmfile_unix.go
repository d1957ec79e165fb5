//go:build unix

package mmfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map maps the image file at path into memory. With writable set, the
// mapping is MAP_SHARED read-write so in-place corrections land in the
// file; Sync forces them to disk.
func Map(path string, writable bool) (*File, error) {
	flags := os.O_RDONLY
	prot := unix.PROT_READ
	if writable {
		flags = os.O_RDWR
		prot |= unix.PROT_WRITE
	}

	f, err := os.OpenFile(path, flags, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close() // safe before return; mapping keeps pages alive

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &File{path: path, writable: writable}, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &File{Data: data, path: path, writable: writable, mapped: true}, nil
}

// Sync flushes a writable mapping to disk with msync. It is a no-op for
// read-only or empty mappings.
func (f *File) Sync() error {
	if !f.mapped || !f.writable || len(f.Data) == 0 {
		return nil
	}
	return unix.Msync(f.Data, unix.MS_SYNC)
}

// Close unmaps the file. Double close is a no-op.
func (f *File) Close() error {
	if !f.mapped || f.Data == nil {
		return nil
	}
	data := f.Data
	f.Data = nil
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
