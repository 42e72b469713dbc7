//go:build structgen

package testdata

import "github.com/sublee/structgen"

type Book struct {
	id    uint64
	title string
}

func BookFields() []string { return nil }

type Shelf struct {
	name string
	size int
}

func (s Shelf) Enums() {}

type Order struct {
	Build bool // want `cannot generate method OrderBuilder.Build for structgen.BuilderDynamic of Order; field Build has the same name`
	qty   int
}

type Item struct {
	name string
}

type ItemField struct {
	sku string
}

var (
	_ = structgen.Derive[Book](structgen.Fields())                            // want `cannot generate BookFields for structgen.Fields of Book; BookFields is already declared`
	_ = structgen.Derive[Shelf](structgen.Enum())                             // want `cannot generate method Shelf.Enums for structgen.Enum of Shelf; Shelf already has Enums`
	_ = structgen.Derive[Order](structgen.Fields(), structgen.BuilderDynamic()) // reported at the field
	_ = structgen.Derive[Item](structgen.FieldEnum())                         // ok
	_ = structgen.Derive[ItemField](structgen.Enum())                         // want `cannot generate ItemFieldEnum for structgen.Enum of ItemField; structgen.FieldEnum of Item also generates it`
)
