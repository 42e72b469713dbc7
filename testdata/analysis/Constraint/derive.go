//go:build structgen

package testdata

import "github.com/sublee/structgen"

type Book struct {
	id    uint64
	title string
}

var _ = structgen.Derive[Book](structgen.Fields()) // ok
