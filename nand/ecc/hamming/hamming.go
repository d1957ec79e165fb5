// Package hamming implements the table-driven Hamming code used to
// protect NAND flash pages: byte-wise column parity plus line parity over
// byte indices, packed into 3 ECC bytes per block.
//
// Two geometries are supported, selected by (block size, ECC size):
//
//	(512, 3) - one 512-byte block, 3 ECC bytes
//	(512, 6) - two independent 256-byte blocks, 3 ECC bytes each
//
// The code corrects exactly one bit error per block and detects
// multi-bit errors.
package hamming

import (
	"bytes"
	"errors"

	"github.com/hmelgaard/nandkit/nand/ecc"
)

// ErrBlockGeometry indicates an unsupported (block size, ECC size) pair.
var ErrBlockGeometry = errors.New("hamming: unsupported block/ecc geometry")

// Codec is the Hamming page codec. The zero value is ready to use.
type Codec struct{}

var _ ecc.Codec = Codec{}

// Encode computes the Hamming ECC for data. Supported shapes are 512
// bytes of data with eccSize 3, or 512 bytes with eccSize 6 (two 256-byte
// sub-blocks with concatenated 3-byte ECCs). Empty data yields an
// all-zero ECC.
func (Codec) Encode(data []byte, eccSize int) ([]byte, error) {
	if len(data) == 0 {
		return make([]byte, eccSize), nil
	}
	switch {
	case eccSize == 3 && len(data) == 512:
		e := encode512(data)
		return e[:], nil
	case eccSize == 6 && len(data) == 512:
		lo := encode256(data[:256])
		hi := encode256(data[256:])
		return append(lo[:], hi[:]...), nil
	default:
		return nil, ErrBlockGeometry
	}
}

// Verify recomputes the ECC for data and byte-compares it against stored.
func (c Codec) Verify(data, stored []byte) bool {
	calc, err := c.Encode(data, len(stored))
	if err != nil {
		return false
	}
	return bytes.Equal(calc, stored)
}

// Correct attempts to repair a single bit error in data or in the stored
// ECC. For the (512, 6) geometry the two 256-byte sub-blocks are corrected
// independently and their bit counts summed; if either sub-block is
// uncorrectable the whole result is uncorrectable and the original bytes
// are returned.
func (Codec) Correct(data, stored []byte) ecc.Result {
	if len(data) == 0 {
		return ecc.Result{Data: data, ECC: stored}
	}
	switch {
	case len(stored) == 3 && len(data) == 512:
		return correct512(data, stored)
	case len(stored) == 6 && len(data) == 512:
		lo := correct256(data[:256], stored[:3])
		hi := correct256(data[256:], stored[3:])
		if lo.Uncorrectable || hi.Uncorrectable {
			return ecc.Result{Data: data, ECC: stored, Uncorrectable: true}
		}
		return ecc.Result{
			Data:          append(append([]byte(nil), lo.Data...), hi.Data...),
			ECC:           append(append([]byte(nil), lo.ECC...), hi.ECC...),
			BitsCorrected: lo.BitsCorrected + hi.BitsCorrected,
		}
	default:
		return ecc.Result{Data: data, ECC: stored, Uncorrectable: true}
	}
}

// packLine folds four line-parity bit pairs into one ECC byte. top selects
// the nibble: 0x08 packs line bits 3..0, 0x80 packs bits 7..4. Each pair
// interleaves the line parity with its complement counterpart.
func packLine(lp, lpp uint32, top uint32) byte {
	var t byte
	for mask := top; mask >= top>>3; mask >>= 1 {
		t <<= 2
		if lp&mask != 0 {
			t |= 0x02
		}
		if lpp&mask != 0 {
			t |= 0x01
		}
	}
	return t
}

// accumulate runs the column/line parity pass over one block.
func accumulate(block []byte) (colParity byte, lp, lpp uint32) {
	for i, v := range block {
		b := columnParity[v]
		colParity ^= b
		if b&0x01 != 0 {
			lp ^= uint32(i)
			lpp ^= ^uint32(i)
		}
	}
	return colParity, lp, lpp
}

// encode512 computes the 3-byte ECC over a 512-byte block. Line parity
// bit 8 of each accumulator lands in the low bits of the column byte.
func encode512(block []byte) [3]byte {
	colParity, lp, lpp := accumulate(block)

	var e [3]byte
	e[0] = packLine(lp, lpp, 0x08)
	e[1] = packLine(lp, lpp, 0x80)

	col := colParity & 0xFC
	if lp&0x100 != 0 {
		col |= 0x02
	}
	if lpp&0x100 != 0 {
		col |= 0x01
	}
	e[2] = col
	return e
}

// encode256 computes the 3-byte ECC over a 256-byte block. Relative to
// the 512-byte form the output bytes are inverted, the line bytes are
// swapped, and the two low column bits are forced to 11.
func encode256(block []byte) [3]byte {
	colParity, lp, lpp := accumulate(block)

	var e [3]byte
	e[0] = ^packLine(lp, lpp, 0x80)
	e[1] = ^packLine(lp, lpp, 0x08)
	e[2] = ^colParity | 0x03
	return e
}

// checkerboard reports whether every even/odd bit pair of d has exactly
// one bit set under the given mask. A syndrome with this shape points at
// a single data bit.
func checkerboard(d, mask byte) bool {
	return (d^(d>>1))&mask == mask
}

// decodeBitAddress inverts the encode permutation, mapping syndrome bytes
// back to (byte index, bit index) of the failing data bit. d2's 0x02 bit
// carries the ninth byte-index bit for 512-byte blocks.
func decodeBitAddress(d0, d1, d2 byte, wide bool) (int, uint) {
	byteIdx := 0
	for i, m := range [4]byte{0x80, 0x20, 0x08, 0x02} {
		if d1&m != 0 {
			byteIdx |= 0x80 >> i
		}
		if d0&m != 0 {
			byteIdx |= 0x08 >> i
		}
	}
	if wide && d2&0x02 != 0 {
		byteIdx |= 0x100
	}

	var bit uint
	if d2&0x80 != 0 {
		bit |= 0x04
	}
	if d2&0x20 != 0 {
		bit |= 0x02
	}
	if d2&0x08 != 0 {
		bit |= 0x01
	}
	return byteIdx, bit
}

func correct512(data, stored []byte) ecc.Result {
	calc := encode512(data)

	d0 := stored[0] ^ calc[0]
	d1 := stored[1] ^ calc[1]
	d2 := stored[2] ^ calc[2]
	if d0|d1|d2 == 0 {
		return ecc.Result{Data: data, ECC: stored}
	}

	if checkerboard(d0, 0x55) && checkerboard(d1, 0x55) && checkerboard(d2, 0x55) {
		byteIdx, bit := decodeBitAddress(d0, d1, d2, true)
		corrected := append([]byte(nil), data...)
		corrected[byteIdx] ^= 1 << bit
		return ecc.Result{Data: corrected, ECC: stored, BitsCorrected: 1}
	}

	if hweight8(d0)+hweight8(d1)+hweight8(d2) == 1 {
		// Single bit error in the stored ECC itself; data is intact.
		return ecc.Result{Data: data, ECC: calc[:], BitsCorrected: 1}
	}

	return ecc.Result{Data: data, ECC: stored, Uncorrectable: true}
}

func correct256(data, stored []byte) ecc.Result {
	calc := encode256(data)

	// The 256-byte encode swaps the line bytes, so the syndrome reads
	// them back swapped. The two forced low column bits never differ,
	// hence the 0x54 mask on d2.
	d1 := stored[0] ^ calc[0]
	d0 := stored[1] ^ calc[1]
	d2 := stored[2] ^ calc[2]
	if d0|d1|d2 == 0 {
		return ecc.Result{Data: data, ECC: stored}
	}

	if checkerboard(d0, 0x55) && checkerboard(d1, 0x55) && checkerboard(d2, 0x54) {
		byteIdx, bit := decodeBitAddress(d0, d1, d2, false)
		corrected := append([]byte(nil), data...)
		corrected[byteIdx] ^= 1 << bit
		return ecc.Result{Data: corrected, ECC: stored, BitsCorrected: 1}
	}

	if hweight8(d0)+hweight8(d1)+hweight8(d2) == 1 {
		return ecc.Result{Data: data, ECC: calc[:], BitsCorrected: 1}
	}

	return ecc.Result{Data: data, ECC: stored, Uncorrectable: true}
}
