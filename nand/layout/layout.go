// Package layout models the byte geometry of a physical NAND flash page:
// ordered, inclusive byte ranges for the data, ECC, bad-block-marker and
// padding areas. Configurations are validated once at registration and
// frozen; extraction and insertion then trust the ranges.
package layout

import (
	"errors"
	"fmt"

	"github.com/hmelgaard/nandkit/internal/buf"
	"github.com/hmelgaard/nandkit/nand/ecc"
)

// ErrMalformedRanges indicates a configuration whose ranges overlap,
// escape the page, or disagree with the declared category sizes.
var ErrMalformedRanges = errors.New("layout: malformed range config")

// Category names one of the four byte areas of a page.
type Category int

const (
	CategoryData Category = iota
	CategoryECC
	CategoryBBM
	CategoryPadding
)

func (c Category) String() string {
	switch c {
	case CategoryData:
		return "data"
	case CategoryECC:
		return "ecc"
	case CategoryBBM:
		return "bbm"
	case CategoryPadding:
		return "padding"
	default:
		return "unknown"
	}
}

// Range is an inclusive byte span [Start, End] within a page.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int { return r.End - r.Start + 1 }

// Config describes one named page geometry. Range lists are ordered:
// extraction concatenates them in list order and insertion writes them
// back in the same order, which is what makes the round trip an identity
// even when a category is split by another (a BBM byte inside data, say).
type Config struct {
	Name string

	ECCType ecc.Type

	DataRanges []Range
	DataSize   int

	ECCRanges []Range
	ECCSize   int

	BBMRanges []Range
	BBMSize   int

	PaddingRanges []Range
	PaddingSize   int
}

// PageSize is the total physical page size, the sum of the category sizes.
func (c *Config) PageSize() int {
	return c.DataSize + c.ECCSize + c.BBMSize + c.PaddingSize
}

// Ranges returns the ordered range list for a category.
func (c *Config) Ranges(cat Category) []Range {
	switch cat {
	case CategoryData:
		return c.DataRanges
	case CategoryECC:
		return c.ECCRanges
	case CategoryBBM:
		return c.BBMRanges
	case CategoryPadding:
		return c.PaddingRanges
	default:
		return nil
	}
}

// Size returns the declared byte count for a category.
func (c *Config) Size(cat Category) int {
	switch cat {
	case CategoryData:
		return c.DataSize
	case CategoryECC:
		return c.ECCSize
	case CategoryBBM:
		return c.BBMSize
	case CategoryPadding:
		return c.PaddingSize
	default:
		return 0
	}
}

var allCategories = [4]Category{CategoryData, CategoryECC, CategoryBBM, CategoryPadding}

// Validate checks the range invariants: every range well-formed and
// inside [0, PageSize()), no overlap between any two ranges of any
// category, and per-category range lengths summing to the declared size.
func (c *Config) Validate() error {
	pageSize := c.PageSize()
	if pageSize <= 0 {
		return fmt.Errorf("%w: %q: page size %d", ErrMalformedRanges, c.Name, pageSize)
	}

	covered := make([]bool, pageSize)
	for _, cat := range allCategories {
		total := 0
		for _, r := range c.Ranges(cat) {
			if r.Start < 0 || r.End < r.Start {
				return fmt.Errorf("%w: %q: %s range (%#x, %#x) ill-formed",
					ErrMalformedRanges, c.Name, cat, r.Start, r.End)
			}
			if r.End >= pageSize {
				return fmt.Errorf("%w: %q: %s range (%#x, %#x) outside page of %#x bytes",
					ErrMalformedRanges, c.Name, cat, r.Start, r.End, pageSize)
			}
			for i := r.Start; i <= r.End; i++ {
				if covered[i] {
					return fmt.Errorf("%w: %q: byte %#x claimed twice (%s)",
						ErrMalformedRanges, c.Name, i, cat)
				}
				covered[i] = true
			}
			total += r.Len()
		}
		if total != c.Size(cat) {
			return fmt.Errorf("%w: %q: %s ranges cover %d bytes, declared size %d",
				ErrMalformedRanges, c.Name, cat, total, c.Size(cat))
		}
	}
	return nil
}

// Extract concatenates the page bytes of a category's ranges in list
// order. The page must be at least PageSize() bytes.
func (c *Config) Extract(cat Category, page []byte) ([]byte, error) {
	out := make([]byte, 0, c.Size(cat))
	for _, r := range c.Ranges(cat) {
		chunk, ok := buf.Slice(page, r.Start, r.Len())
		if !ok {
			return nil, fmt.Errorf("layout: %q: %s range (%#x, %#x) outside page of %d bytes",
				c.Name, cat, r.Start, r.End, len(page))
		}
		out = append(out, chunk...)
	}
	return out, nil
}

// Insert scatters src back over a category's ranges in list order,
// overwriting page in place. src must be exactly the category size.
func (c *Config) Insert(cat Category, src, page []byte) error {
	if len(src) != c.Size(cat) {
		return fmt.Errorf("layout: %q: %s insert of %d bytes, category holds %d",
			c.Name, cat, len(src), c.Size(cat))
	}
	off := 0
	for _, r := range c.Ranges(cat) {
		dst, ok := buf.Slice(page, r.Start, r.Len())
		if !ok {
			return fmt.Errorf("layout: %q: %s range (%#x, %#x) outside page of %d bytes",
				c.Name, cat, r.Start, r.End, len(page))
		}
		copy(dst, src[off:off+r.Len()])
		off += r.Len()
	}
	return nil
}

// clone deep-copies the config so catalog entries cannot alias caller slices.
func (c *Config) clone() *Config {
	out := *c
	out.DataRanges = append([]Range(nil), c.DataRanges...)
	out.ECCRanges = append([]Range(nil), c.ECCRanges...)
	out.BBMRanges = append([]Range(nil), c.BBMRanges...)
	out.PaddingRanges = append([]Range(nil), c.PaddingRanges...)
	return &out
}
