//go:build structgen

package main

import (
	"fmt"

	"github.com/sublee/structgen"
)

type Counter struct {
	name  string
	hits  int
	total int
}

var _ = structgen.Derive[Counter](
	structgen.EnumMut(),
	structgen.FieldEnum(),
	structgen.FieldEnumMut(),
	structgen.MutEnumDerive(structgen.DeriveString),
)

func main() {
	c := Counter{name: "home", hits: 1, total: 10}

	// Every int field is doubled in place.
	for _, e := range c.EnumsMut() {
		if v, ok := e.(CounterEnumMutInt); ok {
			*v.Value *= 2
		}
	}
	fmt.Printf("%+v\n", c)

	for _, e := range c.FieldEnumsMut() {
		if v, ok := e.(CounterFieldEnumMutName); ok {
			*v.Value = "away"
		}
	}
	fmt.Println(c.EnumsMut())
	fmt.Println(c.FieldEnumsMut()[2])
	fmt.Println(CounterEnumMutInt{})

	fmt.Println(CounterFieldEnumVariants())
	fmt.Println(CounterFieldEnumMutVariants())
	for _, e := range c.FieldEnums() {
		switch e := e.(type) {
		case CounterFieldEnumName:
			fmt.Println("name", e.Value)
		case CounterFieldEnumHits:
			fmt.Println("hits", e.Value)
		case CounterFieldEnumTotal:
			fmt.Println("total", e.Value)
		}
	}
}
