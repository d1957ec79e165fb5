package layout

import "github.com/hmelgaard/nandkit/nand/ecc"

// Default is the catalog of built-in page geometries. All use a 0x210
// byte physical page (512 data bytes plus 16 spare bytes).
var Default = NewCatalog()

// builtins covers the shipped geometries: a BCH layout with the data area
// split around a mid-page bad-block marker, the two Hamming variants, and
// a classic small-page SLC layout with the marker in the spare area.
var builtins = []Config{
	{
		Name:          "Test_BCH",
		ECCType:       ecc.TypeBCH,
		DataRanges:    []Range{{0x000, 0x12B}, {0x12D, 0x200}},
		DataSize:      0x200,
		ECCRanges:     []Range{{0x201, 0x20D}},
		ECCSize:       13,
		BBMRanges:     []Range{{0x12C, 0x12C}},
		BBMSize:       1,
		PaddingRanges: []Range{{0x20E, 0x20F}},
		PaddingSize:   2,
	},
	{
		Name:          "Test_Hamming512",
		ECCType:       ecc.TypeHamming,
		DataRanges:    []Range{{0x000, 0x1FF}},
		DataSize:      0x200,
		ECCRanges:     []Range{{0x20D, 0x20F}},
		ECCSize:       3,
		PaddingRanges: []Range{{0x200, 0x20C}},
		PaddingSize:   13,
	},
	{
		Name:          "Test_Hamming256",
		ECCType:       ecc.TypeHamming,
		DataRanges:    []Range{{0x000, 0x1FF}},
		DataSize:      0x200,
		ECCRanges:     []Range{{0x20A, 0x20F}},
		ECCSize:       6,
		PaddingRanges: []Range{{0x200, 0x209}},
		PaddingSize:   10,
	},
	{
		Name:          "SLC_SmallPage",
		ECCType:       ecc.TypeHamming,
		DataRanges:    []Range{{0x000, 0x1FF}},
		DataSize:      0x200,
		ECCRanges:     []Range{{0x20D, 0x20F}},
		ECCSize:       3,
		BBMRanges:     []Range{{0x205, 0x205}},
		BBMSize:       1,
		PaddingRanges: []Range{{0x200, 0x204}, {0x206, 0x20C}},
		PaddingSize:   12,
	},
}

func init() {
	for _, cfg := range builtins {
		if err := Default.Register(cfg); err != nil {
			panic(err)
		}
	}
}

// Lookup resolves a name against the Default catalog.
func Lookup(name string) (*Config, bool) { return Default.Lookup(name) }

// Names lists the Default catalog, sorted.
func Names() []string { return Default.Names() }
