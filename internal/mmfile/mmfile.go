// Package mmfile provides platform-specific helpers for memory-mapping
// raw NAND image files, so a scan can repair a multi-gigabyte dump in
// place without loading it through the heap.
package mmfile

// File is an open image mapping. Data aliases the mapping (or holds the
// whole file on platforms without mmap) until Close.
type File struct {
	Data     []byte
	path     string
	writable bool
	mapped   bool
}
