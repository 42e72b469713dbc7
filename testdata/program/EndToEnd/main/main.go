//go:build structgen

package main

import (
	"fmt"

	"github.com/sublee/structgen"
)

type Id = uint64

type Book struct {
	id           Id
	title        string
	pages        uint64
	author       string
	inspirations *[]string
	date_time_   uint64
	tuple        [2]uint8
}

var _ = structgen.Derive[Book](
	structgen.Fields(),
	structgen.Values(),
	structgen.Enum(),
	structgen.FieldEnum(),
	structgen.EnumDerive(structgen.DeriveString),
)

// kind names the kind of each field value.
type kind struct{}

func (kind) FromUint64(uint64) string        { return "u64" }
func (kind) FromString(string) string        { return "string" }
func (kind) FromArray2uint8([2]uint8) string { return "pair" }

func (kind) FromPtrslicestring(v *[]string) string {
	if v == nil {
		return "none"
	}
	return "some"
}

func main() {
	book := Book{id: 1, title: "Title", pages: 100, author: "me"}

	fmt.Println(BookFields())
	fmt.Println(BookValues[string](book, kind{}))
	fmt.Println(book.Enums())
	fmt.Println(book.FieldEnums())
	fmt.Println(BookFieldEnumVariants())

	// Id is an alias, so id and pages share a variant.
	_, ok := book.Enums()[0].(BookEnumUint64)
	fmt.Println(ok)

	inspirations := []string{"Dune"}
	book.inspirations = &inspirations
	v, ok := BookEnumToPtrslicestring(BookValues[BookEnum](book, BookEnumFrom{})[4])
	fmt.Println(*v, ok)
}
