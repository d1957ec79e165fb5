package scan

import (
	"fmt"
	"strings"
)

// Report summarizes one scan invocation. It is a plain value object,
// suitable for display via String or for structured output via the JSON
// tags.
type Report struct {
	Config         string `json:"config"`
	PageSize       int    `json:"page_size"`
	TotalPages     int    `json:"total_pages"`
	ValidPages     int    `json:"valid_pages"`
	CorrectedPages int    `json:"corrected_pages"`
	CorruptedPages int    `json:"corrupted_pages"`
	EmptyPages     int    `json:"empty_pages"`
	BitsCorrected  int    `json:"bit_errors_corrected"`
}

// String renders the report as a human-readable multi-line summary.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NAND scan report for %q\n", r.Config)
	fmt.Fprintf(&b, "  page size:          %d bytes\n", r.PageSize)
	fmt.Fprintf(&b, "  total pages:        %d\n", r.TotalPages)
	fmt.Fprintf(&b, "  valid:              %d\n", r.ValidPages)
	fmt.Fprintf(&b, "  corrected:          %d\n", r.CorrectedPages)
	fmt.Fprintf(&b, "  corrupted:          %d\n", r.CorruptedPages)
	fmt.Fprintf(&b, "  empty (erased):     %d\n", r.EmptyPages)
	fmt.Fprintf(&b, "  bit errors fixed:   %d", r.BitsCorrected)
	return b.String()
}
