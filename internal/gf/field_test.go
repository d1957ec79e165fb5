package gf

import "testing"

func TestNewRejectsUnsupportedExponent(t *testing.T) {
	for _, m := range []int{0, 8, 12, 16} {
		if _, err := New(m); err == nil {
			t.Fatalf("New(%d) should fail", m)
		}
	}
}

func TestPowTableCycles(t *testing.T) {
	for _, m := range []int{13, 14, 15} {
		f, err := New(m)
		if err != nil {
			t.Fatalf("New(%d): %v", m, err)
		}
		if f.Pow(0) != 1 {
			t.Fatalf("m=%d: alpha^0 = %d, want 1", m, f.Pow(0))
		}
		if f.Pow(f.N()) != 1 {
			t.Fatalf("m=%d: alpha^n should wrap to 1, got %d", m, f.Pow(f.N()))
		}
		if f.Pow(-1) != f.Pow(f.N()-1) {
			t.Fatalf("m=%d: negative exponent not reduced", m)
		}
	}
}

func TestLogPowRoundTrip(t *testing.T) {
	f, err := New(13)
	if err != nil {
		t.Fatal(err)
	}
	for e := 0; e < f.N(); e += 97 {
		if got := f.Log(f.Pow(e)); got != e {
			t.Fatalf("Log(Pow(%d)) = %d", e, got)
		}
	}
}

func TestMulInvDiv(t *testing.T) {
	f, err := New(14)
	if err != nil {
		t.Fatal(err)
	}

	if f.Mul(0, 5) != 0 || f.Mul(5, 0) != 0 {
		t.Fatalf("multiplication by zero should be zero")
	}

	// a * inv(a) == 1 across a spread of elements.
	for e := 1; e < f.N(); e += 211 {
		a := f.Pow(e)
		if f.Mul(a, f.Inv(a)) != 1 {
			t.Fatalf("a * inv(a) != 1 for alpha^%d", e)
		}
		if f.Div(a, a) != 1 {
			t.Fatalf("a / a != 1 for alpha^%d", e)
		}
	}

	// Exponent law: alpha^i * alpha^j == alpha^(i+j).
	if f.Mul(f.Pow(100), f.Pow(250)) != f.Pow(350) {
		t.Fatalf("exponent addition law violated")
	}
}

func TestMulPow(t *testing.T) {
	f, err := New(15)
	if err != nil {
		t.Fatal(err)
	}
	if f.MulPow(0, 10) != 0 {
		t.Fatalf("MulPow(0, e) should be 0")
	}
	a := f.Pow(123)
	if f.MulPow(a, 77) != f.Pow(200) {
		t.Fatalf("MulPow mismatch")
	}
	if f.MulPow(a, -123) != 1 {
		t.Fatalf("MulPow negative exponent mismatch")
	}
}
