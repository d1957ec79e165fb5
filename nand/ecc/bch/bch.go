// Package bch implements a systematic binary BCH codec for NAND flash
// pages. The correction capacity t and field exponent m are derived from
// the ECC byte length alone (see deriveParams); the generator polynomial
// is constructed algorithmically from cyclotomic cosets.
//
// Encode computes the parity remainder with a bitwise LFSR division by
// g(x). Correct recomputes the 2t syndromes, runs Berlekamp-Massey to
// obtain the error locator polynomial, and locates error bits with a
// Chien search over the shortened codeword.
package bch

import (
	"bytes"

	"github.com/hmelgaard/nandkit/internal/gf"
	"github.com/hmelgaard/nandkit/nand/ecc"
)

// Codec is the BCH page codec. The zero value is ready to use.
type Codec struct{}

var _ ecc.Codec = Codec{}

// Encode returns the eccSize parity bytes for data. The parity bit stream
// (deg(g) bits, most significant first) is packed into bytes; shorter
// output is padded with trailing zero bytes and longer output truncated
// to eccSize.
func (Codec) Encode(data []byte, eccSize int) ([]byte, error) {
	c, err := codeFor(eccSize)
	if err != nil {
		return nil, err
	}

	rem := c.remainder(data)

	out := make([]byte, eccSize)
	nBytes := (c.eccBits + 7) / 8
	if nBytes > eccSize {
		nBytes = eccSize
	}
	for j := 0; j < nBytes*8 && j < c.eccBits; j++ {
		// Stream bit j is the coefficient of x^(eccBits-1-j).
		if getBit(rem, c.eccBits-1-j) != 0 {
			out[j/8] |= 0x80 >> (uint(j) % 8)
		}
	}
	return out, nil
}

// Verify recomputes the parity for data and byte-compares it against stored.
func (c Codec) Verify(data, stored []byte) bool {
	calc, err := c.Encode(data, len(stored))
	if err != nil {
		return false
	}
	return bytes.Equal(calc, stored)
}

// Correct attempts to repair up to t bit errors across data and the
// stored ECC. A zero syndrome returns the input unchanged. When the error
// locator degree exceeds t, or its roots do not line up with the
// shortened codeword, the result is uncorrectable and the original bytes
// are returned.
func (Codec) Correct(data, stored []byte) ecc.Result {
	c, err := codeFor(len(stored))
	if err != nil {
		return ecc.Result{Data: data, ECC: stored, Uncorrectable: true}
	}

	synd := c.syndromes(data, stored)
	zero := true
	for _, s := range synd {
		if s != 0 {
			zero = false
			break
		}
	}
	if zero {
		return ecc.Result{Data: data, ECC: stored}
	}

	sigma, errCount, ok := c.errorLocator(synd)
	if !ok {
		return ecc.Result{Data: data, ECC: stored, Uncorrectable: true}
	}

	flips, ok := c.chienSearch(sigma, len(data)*8)
	if !ok || len(flips) != errCount {
		return ecc.Result{Data: data, ECC: stored, Uncorrectable: true}
	}

	correctedData := append([]byte(nil), data...)
	correctedECC := append([]byte(nil), stored...)
	dataBits := len(data) * 8
	for _, idx := range flips {
		if idx < dataBits {
			correctedData[idx/8] ^= 0x80 >> (uint(idx) % 8)
			continue
		}
		j := idx - dataBits
		if j/8 >= len(correctedECC) {
			// Error sits in parity bits that were truncated away;
			// nothing to repair them against.
			return ecc.Result{Data: data, ECC: stored, Uncorrectable: true}
		}
		correctedECC[j/8] ^= 0x80 >> (uint(j) % 8)
	}

	return ecc.Result{Data: correctedData, ECC: correctedECC, BitsCorrected: errCount}
}

// remainder divides data(x) * x^eccBits by g(x) bit by bit, MSB of the
// first byte first.
func (c *code) remainder(data []byte) []uint64 {
	rem := make([]uint64, words(c.eccBits))
	top := c.eccBits - 1
	for _, by := range data {
		for k := 7; k >= 0; k-- {
			fb := getBit(rem, top) ^ uint64((by>>uint(k))&1)
			shiftLeft1(rem, c.eccBits)
			if fb != 0 {
				for w := range rem {
					rem[w] ^= c.genLow[w]
				}
			}
		}
	}
	return rem
}

// shiftLeft1 shifts a bit vector left by one, dropping the bit at
// position nbits-1.
func shiftLeft1(w []uint64, nbits int) {
	var carry uint64
	for i := range w {
		next := w[i] >> 63
		w[i] = w[i]<<1 | carry
		carry = next
	}
	clearBit(w, nbits) // keep the register at nbits wide
}

// syndromes evaluates the received polynomial at alpha^1 .. alpha^2t.
// The received bit stream is data followed by eccBits parity bits; parity
// bits beyond the stored slice are taken as zero.
func (c *code) syndromes(data, stored []byte) []uint32 {
	dataBits := len(data) * 8
	n := dataBits + c.eccBits
	synd := make([]uint32, 2*c.t)

	addBit := func(idx int) {
		d := n - 1 - idx // polynomial degree of stream bit idx
		for i := 1; i <= 2*c.t; i++ {
			synd[i-1] ^= c.f.Pow(i * d)
		}
	}

	for i, by := range data {
		if by == 0 {
			continue
		}
		for k := 0; k < 8; k++ {
			if by&(0x80>>uint(k)) != 0 {
				addBit(i*8 + k)
			}
		}
	}
	for j := 0; j < c.eccBits; j++ {
		if j/8 >= len(stored) {
			break
		}
		if stored[j/8]&(0x80>>(uint(j)%8)) != 0 {
			addBit(dataBits + j)
		}
	}
	return synd
}

// errorLocator runs Berlekamp-Massey over the syndrome sequence and
// returns the locator polynomial sigma (coefficients by degree) and the
// number of errors it describes. ok is false when the sequence requires
// more than t errors.
func (c *code) errorLocator(synd []uint32) (sigma []uint32, errs int, ok bool) {
	f := c.f
	cur := []uint32{1}
	prev := []uint32{1}
	l := 0
	shift := 1
	b := uint32(1)

	for n := 0; n < len(synd); n++ {
		d := synd[n]
		for i := 1; i <= l && i < len(cur); i++ {
			if cur[i] != 0 && synd[n-i] != 0 {
				d ^= f.Mul(cur[i], synd[n-i])
			}
		}
		if d == 0 {
			shift++
			continue
		}

		coef := f.Div(d, b)
		if 2*l <= n {
			saved := append([]uint32(nil), cur...)
			cur = addScaledShift(f, cur, prev, coef, shift)
			l = n + 1 - l
			prev = saved
			b = d
			shift = 1
		} else {
			cur = addScaledShift(f, cur, prev, coef, shift)
			shift++
		}
	}

	// Trim trailing zero coefficients; the locator degree must match l
	// and stay within the correction radius.
	deg := len(cur) - 1
	for deg > 0 && cur[deg] == 0 {
		deg--
	}
	if l == 0 || l > c.t || deg != l {
		return nil, 0, false
	}
	return cur[:deg+1], l, true
}

// addScaledShift returns cur + coef * prev * x^shift.
func addScaledShift(f *gf.Field, cur, prev []uint32, coef uint32, shift int) []uint32 {
	need := len(prev) + shift
	out := cur
	if len(out) < need {
		grown := make([]uint32, need)
		copy(grown, out)
		out = grown
	}
	for i, p := range prev {
		if p != 0 {
			out[i+shift] ^= f.Mul(coef, p)
		}
	}
	return out
}

// chienSearch walks every field element looking for roots of sigma.
// Roots at alpha^-d with d inside the shortened codeword translate to
// stream bit indices; a root outside it means the error pattern does not
// fit the code and the search fails.
func (c *code) chienSearch(sigma []uint32, dataBits int) ([]int, bool) {
	f := c.f
	n := dataBits + c.eccBits

	terms := append([]uint32(nil), sigma...)
	var flips []int
	for d := 0; d < f.N(); d++ {
		var sum uint32
		for _, q := range terms {
			sum ^= q
		}
		if sum == 0 {
			if d >= n {
				return nil, false
			}
			flips = append(flips, n-1-d)
		}
		for k := 1; k < len(terms); k++ {
			terms[k] = f.MulPow(terms[k], -k)
		}
	}
	return flips, true
}
