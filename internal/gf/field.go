// Package gf implements arithmetic over binary Galois fields GF(2^m),
// 13 <= m <= 15, using log/antilog tables built from a fixed primitive
// polynomial per field size. It exists to back the BCH codec; callers
// outside nand/ecc/bch should not need it.
package gf

import "fmt"

// Primitive polynomials per field exponent. The low m bits hold the
// reduction terms, bit m is the leading x^m coefficient.
var primPolys = map[int]uint32{
	13: 0x201B, // x^13 + x^4 + x^3 + x + 1
	14: 0x4443, // x^14 + x^10 + x^6 + x + 1
	15: 0x8003, // x^15 + x + 1
}

// Field is a GF(2^m) instance with precomputed exponential and logarithm
// tables. The zero element has no logarithm; Log panics on 0, and callers
// are expected to special-case zero before multiplying through tables.
type Field struct {
	m   int
	n   int // 2^m - 1, the multiplicative group order
	pow []uint32
	log []int
}

// New builds the field tables for GF(2^m). Only m in {13, 14, 15} is
// supported; these are the exponents the NAND BCH parameter table uses.
func New(m int) (*Field, error) {
	poly, ok := primPolys[m]
	if !ok {
		return nil, fmt.Errorf("gf: unsupported field exponent m=%d", m)
	}

	n := (1 << m) - 1
	f := &Field{
		m:   m,
		n:   n,
		pow: make([]uint32, 2*n), // doubled so Mul can skip one mod
		log: make([]int, n+1),
	}

	x := uint32(1)
	for i := 0; i < n; i++ {
		f.pow[i] = x
		f.pow[i+n] = x
		f.log[x] = i
		x <<= 1
		if x&(1<<m) != 0 {
			x ^= poly
		}
	}
	return f, nil
}

// M returns the field exponent.
func (f *Field) M() int { return f.m }

// N returns the multiplicative group order 2^m - 1.
func (f *Field) N() int { return f.n }

// Pow returns alpha^e for the field generator alpha. Negative exponents
// are reduced into the group order.
func (f *Field) Pow(e int) uint32 {
	e %= f.n
	if e < 0 {
		e += f.n
	}
	return f.pow[e]
}

// Log returns the discrete logarithm of a nonzero element.
func (f *Field) Log(a uint32) int {
	if a == 0 {
		panic("gf: log of zero")
	}
	return f.log[a]
}

// Mul multiplies two field elements.
func (f *Field) Mul(a, b uint32) uint32 {
	if a == 0 || b == 0 {
		return 0
	}
	return f.pow[f.log[a]+f.log[b]]
}

// Inv returns the multiplicative inverse of a nonzero element.
func (f *Field) Inv(a uint32) uint32 {
	if a == 0 {
		panic("gf: inverse of zero")
	}
	return f.pow[f.n-f.log[a]]
}

// Div returns a / b for nonzero b.
func (f *Field) Div(a, b uint32) uint32 {
	if b == 0 {
		panic("gf: division by zero")
	}
	if a == 0 {
		return 0
	}
	d := f.log[a] - f.log[b]
	if d < 0 {
		d += f.n
	}
	return f.pow[d]
}

// MulPow multiplies a by alpha^e, treating a == 0 as 0.
func (f *Field) MulPow(a uint32, e int) uint32 {
	if a == 0 {
		return 0
	}
	e += f.log[a]
	e %= f.n
	if e < 0 {
		e += f.n
	}
	return f.pow[e]
}
