//go:build structgen

package main

import (
	"fmt"
	"strconv"

	"github.com/sublee/structgen"
)

type Book struct {
	id    uint64
	title string
	pages uint64
}

var _ = structgen.Derive[Book](
	structgen.Fields(),
	structgen.Values(),
	structgen.Enum(),
	structgen.EnumDerive(structgen.DeriveString, structgen.DeriveGoString, structgen.DeriveEqual),
)

// text converts field values into literals.
type text struct{}

func (text) FromUint64(v uint64) string { return strconv.FormatUint(v, 10) }
func (text) FromString(v string) string { return strconv.Quote(v) }

func main() {
	book := Book{id: 42, title: "Dune", pages: 412}

	fmt.Println(BookFields())
	fmt.Println(BookValues[string](book, text{}))
	for _, p := range BookFieldsAndValues[string](book, text{}) {
		fmt.Printf("%s=%s\n", p.Field, p.Value)
	}

	enums := book.Enums()
	fmt.Println(enums)
	fmt.Printf("%#v\n", enums[1])
	fmt.Println(enums[0].Equal(BookEnumUint64{Value: 42}), enums[0].Equal(enums[2]))

	values := BookValues[BookEnum](book, BookEnumFrom{})
	fmt.Println(values[2].Equal(enums[2]))
	title, ok := BookEnumToString(values[1])
	fmt.Println(title, ok)
	_, ok = BookEnumToString(values[0])
	fmt.Println(ok)
}
