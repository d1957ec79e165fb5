//go:build unix

package mmfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMapReadOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.bin")
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := Map(path, false)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			t.Fatalf("Close: %v", closeErr)
		}
	}()
	if len(f.Data) != len(want) {
		t.Fatalf("len mismatch: got %d want %d", len(f.Data), len(want))
	}
	for i, b := range want {
		if f.Data[i] != b {
			t.Fatalf("byte %d mismatch: got 0x%x want 0x%x", i, f.Data[i], b)
		}
	}
}

func TestMapWritableSyncsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3, 4}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := Map(path, true)
	if err != nil {
		t.Fatalf("Map writable: %v", err)
	}
	f.Data[2] = 0xAA
	if err := f.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got[2] != 0xAA {
		t.Fatalf("change not persisted: %v", got)
	}
	// Close twice should be harmless.
	if err := f.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestMapZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := Map(path, false)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(f.Data) != 0 {
		t.Fatalf("expected zero-length mapping, got %d", len(f.Data))
	}
	if err := f.Sync(); err != nil {
		t.Fatalf("Sync on empty mapping: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
