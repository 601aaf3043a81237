package questionnaires

import (
	_ "embed"
)

const (
	KOOS = "koos"
	HOOS = "hoos"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Default returns the built-in catalog. It panics if the embedded document
// is broken, which the package tests guard against.
func Default() *Catalog {
	catalog, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic("questionnaires: embedded catalog: " + err.Error())
	}
	return catalog
}

func DefaultDocument() []byte {
	document := make([]byte, len(defaultCatalog))
	copy(document, defaultCatalog)
	return document
}
