package layout

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hmelgaard/nandkit/nand/ecc"
)

// splitConfig is a small geometry whose data area is interrupted by a
// BBM byte, mirroring the shape of the built-in BCH layout.
func splitConfig() Config {
	return Config{
		Name:          "split",
		ECCType:       ecc.TypeBCH,
		DataRanges:    []Range{{0, 3}, {5, 8}},
		DataSize:      8,
		ECCRanges:     []Range{{9, 12}},
		ECCSize:       4,
		BBMRanges:     []Range{{4, 4}},
		BBMSize:       1,
		PaddingRanges: []Range{{13, 15}},
		PaddingSize:   3,
	}
}

func TestRangeLen(t *testing.T) {
	if (Range{0, 0}).Len() != 1 {
		t.Fatal("single-byte range must have length 1")
	}
	if (Range{0x12D, 0x200}).Len() != 0xD4 {
		t.Fatal("inclusive range length miscomputed")
	}
}

func TestValidateAccepts(t *testing.T) {
	cfg := splitConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.PageSize() != 16 {
		t.Fatalf("PageSize = %d, want 16", cfg.PageSize())
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"overlap across categories", func(c *Config) { c.BBMRanges = []Range{{3, 3}}; c.PaddingRanges = []Range{{4, 4}, {13, 14}} }},
		{"overlap within category", func(c *Config) { c.DataRanges = []Range{{0, 3}, {3, 6}} }},
		{"range beyond page", func(c *Config) { c.PaddingRanges = []Range{{14, 16}} }},
		{"inverted range", func(c *Config) { c.PaddingRanges = []Range{{15, 13}} }},
		{"negative start", func(c *Config) { c.DataRanges = []Range{{-1, 2}, {5, 8}} }},
		{"size mismatch", func(c *Config) { c.ECCSize = 5 }},
	}
	for _, tc := range cases {
		cfg := splitConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrMalformedRanges) {
			t.Errorf("%s: Validate = %v, want ErrMalformedRanges", tc.name, err)
		}
	}
}

func TestExtractGathersInOrder(t *testing.T) {
	cfg := splitConfig()
	page := make([]byte, 16)
	for i := range page {
		page[i] = byte(i)
	}

	data, err := cfg.Extract(CategoryData, page)
	if err != nil {
		t.Fatalf("Extract(data): %v", err)
	}
	if !bytes.Equal(data, []byte{0, 1, 2, 3, 5, 6, 7, 8}) {
		t.Fatalf("data = %v", data)
	}

	bbm, err := cfg.Extract(CategoryBBM, page)
	if err != nil {
		t.Fatalf("Extract(bbm): %v", err)
	}
	if !bytes.Equal(bbm, []byte{4}) {
		t.Fatalf("bbm = %v", bbm)
	}
}

func TestExtractShortPage(t *testing.T) {
	cfg := splitConfig()
	if _, err := cfg.Extract(CategoryECC, make([]byte, 10)); err == nil {
		t.Fatal("Extract on short page should fail")
	}
}

func TestInsertExtractRoundTrip(t *testing.T) {
	cfg := splitConfig()
	page := make([]byte, 16)
	for i := range page {
		page[i] = 0xEE
	}

	src := []byte{10, 20, 30, 40, 50, 60, 70, 80}
	if err := cfg.Insert(CategoryData, src, page); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	// Bytes outside the data ranges stay untouched.
	if page[4] != 0xEE || page[9] != 0xEE {
		t.Fatal("Insert wrote outside its ranges")
	}

	got, err := cfg.Extract(CategoryData, page)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip: got %v, want %v", got, src)
	}
}

func TestInsertSizeMismatch(t *testing.T) {
	cfg := splitConfig()
	if err := cfg.Insert(CategoryData, []byte{1, 2, 3}, make([]byte, 16)); err == nil {
		t.Fatal("Insert with wrong src length should fail")
	}
}

func TestCatalogRegisterValidates(t *testing.T) {
	cat := NewCatalog()
	if err := cat.Register(splitConfig()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	bad := splitConfig()
	bad.Name = "bad"
	bad.ECCSize = 99
	if err := cat.Register(bad); !errors.Is(err, ErrMalformedRanges) {
		t.Fatalf("Register(malformed) = %v, want ErrMalformedRanges", err)
	}
	if _, ok := cat.Lookup("bad"); ok {
		t.Fatal("malformed config must not be stored")
	}
}

func TestCatalogRejectsDuplicateAndEmptyName(t *testing.T) {
	cat := NewCatalog()
	if err := cat.Register(splitConfig()); err != nil {
		t.Fatal(err)
	}
	if err := cat.Register(splitConfig()); err == nil {
		t.Fatal("duplicate name should be rejected")
	}

	anon := splitConfig()
	anon.Name = ""
	if err := cat.Register(anon); err == nil {
		t.Fatal("empty name should be rejected")
	}
}

func TestCatalogFreezesCopy(t *testing.T) {
	cat := NewCatalog()
	cfg := splitConfig()
	if err := cat.Register(cfg); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's slice must not reach the stored config.
	cfg.DataRanges[0] = Range{7, 7}
	stored, ok := cat.Lookup("split")
	if !ok {
		t.Fatal("Lookup failed")
	}
	if stored.DataRanges[0] != (Range{0, 3}) {
		t.Fatal("catalog entry aliases caller slice")
	}
}

func TestBuiltinCatalog(t *testing.T) {
	want := []string{"SLC_SmallPage", "Test_BCH", "Test_Hamming256", "Test_Hamming512"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}

	bch, ok := Lookup("Test_BCH")
	if !ok {
		t.Fatal("Test_BCH missing")
	}
	if bch.PageSize() != 0x210 {
		t.Fatalf("Test_BCH page size = %#x", bch.PageSize())
	}
	if bch.ECCType != ecc.TypeBCH || bch.ECCSize != 13 {
		t.Fatalf("Test_BCH ECC = %v/%d", bch.ECCType, bch.ECCSize)
	}

	for _, name := range want {
		cfg, _ := Lookup(name)
		if cfg.PageSize() != 0x210 {
			t.Errorf("%s page size = %#x, want 0x210", name, cfg.PageSize())
		}
	}
}
