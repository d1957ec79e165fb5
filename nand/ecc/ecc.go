// Package ecc defines the shared types of the NAND error-correction
// codecs: the ECC scheme enum and the tagged outcome of a correction
// attempt. The codecs themselves live in the bch and hamming subpackages.
package ecc

// Type identifies which error-correcting code protects a page's data area.
type Type int

const (
	TypeNone    Type = iota // no ECC, pages are taken as-is
	TypeHamming             // table-driven column/line parity Hamming code
	TypeBCH                 // binary BCH over GF(2^m)
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "NONE"
	case TypeHamming:
		return "HAMMING"
	case TypeBCH:
		return "BCH"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of a correction attempt.
//
// When Uncorrectable is true the error pattern exceeded the code's
// guaranteed radius: Data and ECC hold the caller's original bytes
// unmodified and BitsCorrected is zero. Otherwise Data and ECC hold the
// (possibly) repaired bytes and BitsCorrected counts the bit flips
// applied across both.
type Result struct {
	Data          []byte
	ECC           []byte
	BitsCorrected int
	Uncorrectable bool
}

// Codec is the contract every page codec implements. Encode computes the
// ECC bytes for a data block, Verify recomputes and byte-compares, and
// Correct attempts to repair bit errors in data and/or stored ECC.
//
// Implementations are pure functions over their inputs and are safe for
// concurrent use.
type Codec interface {
	Encode(data []byte, eccSize int) ([]byte, error)
	Verify(data, ecc []byte) bool
	Correct(data, ecc []byte) Result
}
