// Package scan walks a raw NAND image page by page, verifies each page's
// stored ECC against its data area, corrects what the configured codec
// can correct, and writes repaired bytes back in place.
//
// The image buffer is owned by the caller; the scanner holds a mutable
// borrow for the duration of one Run and never retains it. Every byte it
// changes is reported through the change callback as (absolute offset,
// old value, new value) so the host can drive undo or display updates.
// Cancellation is polled once per page: all change events of an applied
// correction are emitted before the next poll.
package scan

import (
	"context"
	"fmt"

	"github.com/hmelgaard/nandkit/internal/buf"
	"github.com/hmelgaard/nandkit/nand/ecc"
	"github.com/hmelgaard/nandkit/nand/ecc/bch"
	"github.com/hmelgaard/nandkit/nand/ecc/hamming"
	"github.com/hmelgaard/nandkit/nand/layout"
)

// ChangeFunc receives one event per byte actually modified during
// correction. offset is absolute within the image buffer.
type ChangeFunc func(offset int64, oldValue, newValue byte)

// Scanner runs scan-and-repair passes over raw images for one page
// geometry. It performs no I/O and spawns no goroutines.
type Scanner struct {
	cfg      *layout.Config
	codec    ecc.Codec
	onChange ChangeFunc
}

// New builds a Scanner for the given configuration. onChange may be nil
// when the caller does not track modifications. The configuration's ECC
// type must have an implemented codec.
func New(cfg *layout.Config, onChange ChangeFunc) (*Scanner, error) {
	var codec ecc.Codec
	switch cfg.ECCType {
	case ecc.TypeHamming:
		if cfg.DataSize != 512 || (cfg.ECCSize != 3 && cfg.ECCSize != 6) {
			return nil, fmt.Errorf("%w: hamming has no (%d, %d) block geometry",
				ErrUnsupportedECC, cfg.DataSize, cfg.ECCSize)
		}
		codec = hamming.Codec{}
	case ecc.TypeBCH:
		codec = bch.Codec{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedECC, cfg.ECCType)
	}
	return &Scanner{cfg: cfg, codec: codec, onChange: onChange}, nil
}

// Image resolves configName against the default catalog and scans image
// with it. This is the entry point a host application typically uses.
func Image(ctx context.Context, image []byte, configName string, onChange ChangeFunc) (*Report, error) {
	cfg, ok := layout.Lookup(configName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, configName)
	}
	s, err := New(cfg, onChange)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, image)
}

// Run scans every full page of image in order. Per-page uncorrectable
// results are counted and the scan continues; only precondition failures
// abort before any byte is touched. Trailing bytes beyond the last full
// page are ignored. On cancellation the report covering the pages
// already processed is returned alongside the context error.
func (s *Scanner) Run(ctx context.Context, image []byte) (*Report, error) {
	pageSize := s.cfg.PageSize()
	if len(image) < pageSize {
		return nil, fmt.Errorf("%w: image %d bytes, page %d bytes",
			ErrBufferTooSmall, len(image), pageSize)
	}

	rep := &Report{
		Config:     s.cfg.Name,
		PageSize:   pageSize,
		TotalPages: len(image) / pageSize,
	}

	for pi := 0; pi < rep.TotalPages; pi++ {
		select {
		case <-ctx.Done():
			return rep, ctx.Err()
		default:
		}

		page := image[pi*pageSize : (pi+1)*pageSize]
		if buf.AllFF(page) {
			// Erased flash reads back all-0xFF; not an error.
			rep.EmptyPages++
			continue
		}

		if err := s.processPage(int64(pi)*int64(pageSize), page, rep); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

// processPage classifies one page and applies corrections in place.
func (s *Scanner) processPage(pageOff int64, page []byte, rep *Report) error {
	data, err := s.cfg.Extract(layout.CategoryData, page)
	if err != nil {
		return err
	}
	stored, err := s.cfg.Extract(layout.CategoryECC, page)
	if err != nil {
		return err
	}

	if s.codec.Verify(data, stored) {
		rep.ValidPages++
		return nil
	}

	res := s.codec.Correct(data, stored)
	if res.Uncorrectable {
		rep.CorruptedPages++
		return nil
	}

	// Re-encode the corrected data so the page carries a fresh,
	// consistent ECC, then scatter both back over the page.
	fresh, err := s.codec.Encode(res.Data, s.cfg.ECCSize)
	if err != nil {
		return err
	}

	scratch := append([]byte(nil), page...)
	if err := s.cfg.Insert(layout.CategoryData, res.Data, scratch); err != nil {
		return err
	}
	if err := s.cfg.Insert(layout.CategoryECC, fresh, scratch); err != nil {
		return err
	}

	for i := range scratch {
		if scratch[i] == page[i] {
			continue
		}
		old := page[i]
		page[i] = scratch[i]
		if s.onChange != nil {
			s.onChange(pageOff+int64(i), old, scratch[i])
		}
	}

	rep.CorrectedPages++
	rep.BitsCorrected += res.BitsCorrected
	return nil
}
