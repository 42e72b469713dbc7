//go:build structgen

package main

import "github.com/sublee/structgen"

type Book struct {
	id    uint64
	title string
}

var _ = structgen.Derive[Book](
	structgen.Builder(),
	structgen.BuilderDynamic(),
	structgen.EnumDerive(structgen.DeriveString),
)

func main() {}
