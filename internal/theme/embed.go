package theme

import (
	_ "embed"
	"sync"
)

// embeddedCatalog is the bundled theme catalog.
//
//go:embed themes/catalog.toml
var embeddedCatalog []byte

// DefaultThemeID is the theme used when no valid preference is stored.
const DefaultThemeID = "cosmic-night"

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It is parsed once; a malformed
// embedded file is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := ParseCatalog(embeddedCatalog)
		if err != nil {
			panic("theme: embedded catalog: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
