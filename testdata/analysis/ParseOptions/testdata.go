//go:build structgen

package testdata

import "github.com/sublee/structgen"

type Book struct {
	id    uint64
	title string
	pages uint64
}

type Magazine struct{ pages uint64 }

var fields = structgen.Fields() // want `cannot assign Fields to variable`

func asis[T any](v T) T { return v }

var (
	_ = structgen.Derive[Book]() // want `structgen.Derive\[Book\] selects nothing to generate`

	_ = structgen.Derive[Book](
		fields, // want `option must be inlined, not assigned to variable`
	)

	_ = structgen.Derive[Book](
		asis(structgen.Fields()), // want `cannot use asis\(structgen.Fields\(\)\) as option; need structgen option call`
	)

	_ = structgen.Derive[Book](
		structgen.Fields(),
		structgen.Fields(), // want `duplicate Fields option`
	)

	_ = structgen.Derive[Book](
		structgen.Builder(), // want `Builder requires Fields`
	)

	_ = structgen.Derive[Book](
		structgen.Fields(),
		structgen.Builder(),
		structgen.BuilderDynamic(), // want `cannot use both Builder and BuilderDynamic`
	)

	_ = structgen.Derive[Book](
		structgen.Fields(),
		structgen.Default(Book{}.pages, 100), // want `Default requires Builder or BuilderDynamic`
	)

	_ = structgen.Derive[Book](
		structgen.Fields(),
		structgen.Builder(),
		structgen.Default(Book{}.pages, 100),
		structgen.Default(Book{}.pages, 200), // want `duplicate default for field pages`
	)

	_ = structgen.Derive[Book](
		structgen.Fields(),
		structgen.Builder(),
		structgen.Default(Magazine{}.pages, 100), // want `field must belong to Book\{\}; got Magazine\{\}.pages`
	)

	_ = structgen.Derive[Book](
		structgen.Fields(),
		structgen.Builder(),
		structgen.Default(Book{id: 1}.pages, 100), // want `field must belong to Book\{\}`
	)

	_ = structgen.Derive[Book](
		structgen.EnumDerive(structgen.DeriveString), // want `EnumDerive requires Enum or FieldEnum`
	)

	_ = structgen.Derive[Book](
		structgen.Enum(),
		structgen.MutEnumDerive(structgen.DeriveString), // want `MutEnumDerive requires EnumMut or FieldEnumMut`
	)

	_ = structgen.Derive[Book](
		structgen.Enum(),
		structgen.BuilderDerive(structgen.DeriveGoString), // want `BuilderDerive requires Builder or BuilderDynamic`
	)

	_ = structgen.Derive[Book](
		structgen.Enum(),
		structgen.EnumDerive(structgen.DeriveString, structgen.DeriveString), // want `duplicate derive String`
	)

	_ = structgen.Derive[Book](
		structgen.Enum(),
		structgen.EnumDerive("Hash"), // want `unknown derive "Hash"`
	)
)
