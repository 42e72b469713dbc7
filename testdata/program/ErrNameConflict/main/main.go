//go:build structgen

package main

import "github.com/sublee/structgen"

type Book struct {
	id    uint64
	title string
}

func BookFields() []string { return nil }

var _ = structgen.Derive[Book](structgen.Fields())

func main() {}
