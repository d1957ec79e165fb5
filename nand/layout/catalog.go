package layout

import (
	"fmt"
	"sort"
)

// Catalog is a validate-then-freeze registry of named page geometries.
// Register validates eagerly so a malformed configuration fails once, up
// front, never in the middle of an image scan.
type Catalog struct {
	configs map[string]*Config
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{configs: make(map[string]*Config)}
}

// Register validates cfg and stores a frozen copy. Registering a name
// twice is a programmer error and is rejected.
func (cat *Catalog) Register(cfg Config) error {
	if cfg.Name == "" {
		return fmt.Errorf("%w: empty config name", ErrMalformedRanges)
	}
	if _, dup := cat.configs[cfg.Name]; dup {
		return fmt.Errorf("layout: config %q already registered", cfg.Name)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cat.configs[cfg.Name] = cfg.clone()
	return nil
}

// Lookup returns the named configuration. Absence is a normal condition
// reported through ok, not an error.
func (cat *Catalog) Lookup(name string) (*Config, bool) {
	c, ok := cat.configs[name]
	return c, ok
}

// Names lists the registered configuration names, sorted.
func (cat *Catalog) Names() []string {
	names := make([]string, 0, len(cat.configs))
	for n := range cat.configs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
