//go:build structgen

package main

import (
	"errors"
	"fmt"

	"github.com/sublee/structgen"
)

type Book struct {
	id    uint64
	title string
	pages uint64
}

var _ = structgen.Derive[Book](
	structgen.Fields(),
	structgen.BuilderDynamic(),
	structgen.Default(Book{}.pages, 100),
	structgen.BuilderDerive(structgen.DeriveString, structgen.DeriveGoString, structgen.DeriveEqual),
)

func main() {
	_, err := NewBookBuilder().Build()
	fmt.Println(err)
	fmt.Println(errors.Is(err, BookBuilderErrorTitle), errors.Is(err, BookBuilderErrorPages))

	b := NewBookBuilder().SetId(1)
	fmt.Println(b)
	_, err = b.Build()
	fmt.Println(err)

	var missing BookBuilderErrors
	fmt.Println(errors.As(err, &missing), len(missing), missing[0].String())

	book, err := b.SetTitle("Dune").Build()
	fmt.Printf("%+v %v\n", book, err)
	fmt.Printf("%#v\n", b.SetTitle("Dune"))
	fmt.Println(b.Equal(NewBookBuilder().SetId(1)), b.Equal(NewBookBuilder()))
}
