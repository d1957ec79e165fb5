package bch

import (
	"fmt"
	"sync"

	"github.com/hmelgaard/nandkit/internal/gf"
)

// deriveParams maps an ECC byte length to the code's correction capacity
// t and field exponent m. The pairing follows NAND flash convention: 13
// bytes protect a 512-byte sector at t=8, 42 bytes a 1024-byte sector at
// t=24, and so on.
func deriveParams(eccSize int) (t, m int) {
	switch {
	case eccSize <= 7:
		return 4, 13
	case eccSize <= 13:
		return 8, 13
	case eccSize <= 21:
		return 12, 14
	case eccSize <= 42:
		return 24, 14
	default:
		return 32, 15
	}
}

// code holds the precomputed machinery of one t-error-correcting BCH code
// over GF(2^m): the field tables and the generator polynomial.
type code struct {
	f       *gf.Field
	t       int
	eccBits int      // deg(g), number of parity bits
	genLow  []uint64 // g(x) minus its leading x^eccBits term, bit i = coeff of x^i
}

var (
	codeMu    sync.Mutex
	codeCache = map[[2]int]*code{}
)

// codeFor returns the (possibly cached) code for an ECC byte length.
func codeFor(eccSize int) (*code, error) {
	if eccSize <= 0 {
		return nil, fmt.Errorf("bch: invalid ecc size %d", eccSize)
	}
	t, m := deriveParams(eccSize)

	codeMu.Lock()
	defer codeMu.Unlock()
	if c, ok := codeCache[[2]int{t, m}]; ok {
		return c, nil
	}
	c, err := newCode(t, m)
	if err != nil {
		return nil, err
	}
	codeCache[[2]int{t, m}] = c
	return c, nil
}

// newCode builds the generator polynomial g(x) as the least common
// multiple of the minimal polynomials of alpha^1 .. alpha^2t: for each
// cyclotomic coset the minimal polynomial is the product of (x + alpha^j)
// over the coset, and distinct minimal polynomials are multiplied
// together over GF(2).
func newCode(t, m int) (*code, error) {
	f, err := gf.New(m)
	if err != nil {
		return nil, err
	}
	n := f.N()

	g := newBitPoly(0) // the constant polynomial 1
	seen := make([]bool, n)
	for i := 1; i <= 2*t; i++ {
		if seen[i] {
			continue
		}

		// Cyclotomic coset {i, 2i, 4i, ...} mod n.
		var coset []int
		for j := i; !seen[j]; j = (2 * j) % n {
			seen[j] = true
			coset = append(coset, j)
		}

		// Minimal polynomial over GF(2^m); its coefficients collapse
		// to GF(2).
		min := []uint32{1}
		for _, j := range coset {
			min = mulLinear(f, min, f.Pow(j))
		}
		mp := newBitPoly(len(min) - 1)
		for d, coeff := range min {
			switch coeff {
			case 0:
			case 1:
				mp.setBit(d)
			default:
				return nil, fmt.Errorf("bch: minimal polynomial coefficient %#x not in GF(2)", coeff)
			}
		}

		g = mulGF2(g, mp)
	}

	eccBits := g.deg
	genLow := make([]uint64, words(eccBits))
	copy(genLow, g.bits)
	clearBit(genLow, eccBits) // strip the leading term

	return &code{f: f, t: t, eccBits: eccBits, genLow: genLow}, nil
}

// mulLinear multiplies a polynomial over GF(2^m) by (x + root).
// Coefficients are indexed by degree.
func mulLinear(f *gf.Field, p []uint32, root uint32) []uint32 {
	out := make([]uint32, len(p)+1)
	for d, c := range p {
		out[d+1] ^= c
		out[d] ^= f.Mul(c, root)
	}
	return out
}

// bitPoly is a polynomial over GF(2), bit i of bits[i/64] holding the
// coefficient of x^i.
type bitPoly struct {
	bits []uint64
	deg  int
}

func words(bits int) int { return bits/64 + 1 }

func newBitPoly(deg int) bitPoly {
	p := bitPoly{bits: make([]uint64, words(deg)), deg: deg}
	if deg == 0 {
		p.bits[0] = 1 // callers of newBitPoly(0) want the constant 1
	}
	return p
}

func (p *bitPoly) setBit(i int) { p.bits[i/64] |= 1 << (uint(i) % 64) }

func (p bitPoly) bit(i int) uint64 { return (p.bits[i/64] >> (uint(i) % 64)) & 1 }

func clearBit(w []uint64, i int) { w[i/64] &^= 1 << (uint(i) % 64) }

func getBit(w []uint64, i int) uint64 { return (w[i/64] >> (uint(i) % 64)) & 1 }

// mulGF2 is carry-less polynomial multiplication over GF(2).
func mulGF2(a, b bitPoly) bitPoly {
	out := bitPoly{bits: make([]uint64, words(a.deg+b.deg)), deg: a.deg + b.deg}
	for i := 0; i <= a.deg; i++ {
		if a.bit(i) == 0 {
			continue
		}
		for j := 0; j <= b.deg; j++ {
			if b.bit(j) != 0 {
				out.bits[(i+j)/64] ^= 1 << (uint(i+j) % 64)
			}
		}
	}
	return out
}
