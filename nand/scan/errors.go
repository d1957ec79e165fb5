package scan

import "errors"

var (
	// ErrConfigNotFound indicates the requested configuration name is
	// absent from the catalog.
	ErrConfigNotFound = errors.New("scan: config not found")
	// ErrUnsupportedECC indicates the configuration's ECC type has no
	// implemented codec.
	ErrUnsupportedECC = errors.New("scan: unsupported ecc type")
	// ErrBufferTooSmall indicates the image holds less than one page.
	ErrBufferTooSmall = errors.New("scan: buffer smaller than one page")
)
