//go:build !unix

package mmfile

import "os"

// Map reads the entire file when mmap is not available. Writable opens
// buffer the file in memory; Sync writes it back.
func Map(path string, writable bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{Data: data, path: path, writable: writable}, nil
}

// Sync writes the buffered contents back to the file for writable opens.
func (f *File) Sync() error {
	if !f.writable || f.Data == nil {
		return nil
	}
	return os.WriteFile(f.path, f.Data, 0o644)
}

// Close releases the buffer. Double close is a no-op.
func (f *File) Close() error {
	f.Data = nil
	return nil
}
