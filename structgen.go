// Package structgen provides directives for struct boilerplate generation.
//
// Structgen reads the field list of a struct type and generates the code that
// is otherwise written by hand over and over: a list of field names, the field
// values lifted into a caller-chosen type, tagged unions over the field types
// or field names, and fluent builders. Declare what to generate once, and the
// generator keeps it in sync with the struct declaration.
//
// To start with Structgen, add a build constraint to files containing
// Structgen directives:
//
//	//go:build structgen
//
// Then derive artifacts for a struct with [Derive]. The directive must be
// assigned to the blank identifier at package level:
//
//	// source:
//	type Book struct {
//		id    uint64
//		title string
//		pages uint64
//	}
//
//	var _ = structgen.Derive[Book](
//		structgen.Fields(),
//		structgen.Values(),
//		structgen.Enum(),
//	)
//
//	// generated: (simplified)
//	func BookFields() []string {
//		return []string{"id", "title", "pages"}
//	}
//
//	type BookEnum interface{ isBookEnum() }
//	type BookEnumUint64 struct{ Value uint64 }
//	type BookEnumString struct{ Value string }
//
// After declaring derivations, run the structgen command. It will generate
// structgen_gen.go for your package:
//
//	go run github.com/sublee/structgen/cmd/structgen
//
// # Variant names
//
// Union variants are named deterministically. A by-type variant is named after
// its field type. Composite types are spelled in words first, so []string is
// spelled "slice string". Then the first character is uppercased and every
// character that is not an ASCII letter or digit is deleted: uint64 becomes
// Uint64, []string becomes Slicestring, and [2]uint8 becomes Array2uint8. A
// by-field variant is named after its field: the
// first character is uppercased and up to two underscores are removed, each
// uppercasing the character after it, so date_time_ becomes DateTime. When two
// types or two fields result in the same variant name, Structgen reports an
// error instead of generating conflicting declarations.
//
// # Builders
//
// [Builder] generates a type-state builder. Whether a field has been set is a
// part of the builder's type, so building an incomplete value is a compile
// error rather than a runtime error:
//
//	// source:
//	var _ = structgen.Derive[Book](
//		structgen.Fields(),
//		structgen.Builder(),
//		structgen.Default(Book{}.pages, 0),
//	)
//
//	// usage:
//	book := BuildBook(NewBookBuilder().SetId(1).SetTitle("Title"))
//
// [BuilderDynamic] generates the legacy builder which checks missing fields at
// runtime and reports all of them as an error.
package structgen

// derived is the result of [Derive]. This is unexported so there is no way to
// hold a derivation other than assigning it to the blank identifier.
type derived *struct{}

// Option selects an artifact to generate or configures one. Options can be
// created only by the directive functions in this package and must be passed
// to [Derive] inline.
type Option interface{ structgenOption() }

// Derivable is a method set that can be attached to generated types by
// [EnumDerive], [MutEnumDerive], and [BuilderDerive].
type Derivable string

const (
	// DeriveString adds a String method. Union interfaces embed fmt.Stringer.
	DeriveString Derivable = "String"

	// DeriveGoString adds a GoString method. Union interfaces embed
	// fmt.GoStringer.
	DeriveGoString Derivable = "GoString"

	// DeriveEqual adds an Equal method which compares deeply.
	DeriveEqual Derivable = "Equal"
)

// Derive directive generates the artifacts selected by opts for the struct
// type T. T must be a non-generic struct type declared in the same package
// with at least one named field. Embedded and blank fields are not supported.
//
//	var _ = structgen.Derive[Book](structgen.Fields(), structgen.Enum())
//
// A struct type can be derived only once.
func Derive[T any](opts ...Option) derived {
	panic("structgen: not generated")
}

// Fields generates a function returning the field names in declaration order:
//
//	// generated:
//	func BookFields() []string
func Fields() Option {
	panic("structgen: not generated")
}

// Values generates a function returning the field values converted into a
// caller-chosen type E. The conversions are given by an implementation of a
// generated interface which has one method per distinct field type:
//
//	// generated:
//	type BookFrom[E any] interface {
//		FromUint64(uint64) E
//		FromString(string) E
//	}
//	func BookValues[E any](b Book, from BookFrom[E]) []E
//
// When [Fields] is also given, pairs of field names and values are generated
// too:
//
//	// generated:
//	type BookFieldValue[E any] struct {
//		Field string
//		Value E
//	}
//	func BookFieldsAndValues[E any](b Book, from BookFrom[E]) []BookFieldValue[E]
//
// The union generated by [Enum] comes with BookEnumFrom which implements
// BookFrom[BookEnum].
func Values() Option {
	panic("structgen: not generated")
}

// Builder generates a type-state builder. Each field state is a type parameter
// of the builder, either structgenstate.Unset or structgenstate.Set. Setters
// flip exactly one state, and the build function accepts only a builder with
// every field set:
//
//	// generated: (simplified)
//	type BookBuilder[S0 Unset | Set[uint64], S1 Unset | Set[string]] struct{ ... }
//	func NewBookBuilder() BookBuilder[Unset, Unset]
//	func (b BookBuilder[S0, S1]) SetId(v uint64) BookBuilder[Set[uint64], S1]
//	func (b BookBuilder[S0, S1]) SetTitle(v string) BookBuilder[S0, Set[string]]
//	func BuildBook(b BookBuilder[Set[uint64], Set[string]]) Book
//
// Builder requires [Fields]. It cannot be used together with [BuilderDynamic].
// Fields with [Default] start in the set state, so the type of the initial
// builder depends on them.
func Builder() Option {
	panic("structgen: not generated")
}

// BuilderDynamic generates the legacy builder which keeps an optional slot per
// field and checks them at runtime:
//
//	// generated: (simplified)
//	type BookBuilder struct{ ... }
//	func NewBookBuilder() BookBuilder
//	func (b BookBuilder) SetId(v uint64) BookBuilder
//	func (b BookBuilder) Build() (Book, error)
//
// Build reports every unset field in declaration order as BookBuilderErrors.
// Each element is a BookBuilderError constant, so errors.Is can check a
// specific field:
//
//	_, err := NewBookBuilder().SetId(1).Build()
//	errors.Is(err, BookBuilderErrorTitle) // true
//
// BuilderDynamic requires [Fields]. It cannot be used together with [Builder].
func BuilderDynamic() Option {
	panic("structgen: not generated")
}

// Default presets a field of the builder with the given value. The field must
// be referred to as a selector on the zero value of the derived type:
//
//	structgen.Default(Book{}.pages, 100)
//
// The value expression is copied into the generated code as written. Default
// requires [Builder] or [BuilderDynamic].
func Default[F any](field F, value F) Option {
	panic("structgen: not generated")
}

// Enum generates a union over the distinct field types. Fields of the same
// type share a variant:
//
//	// generated: (simplified)
//	type BookEnum interface{ isBookEnum() }
//	type BookEnumUint64 struct{ Value uint64 }
//	type BookEnumFrom struct{}
//	func (BookEnumFrom) FromUint64(v uint64) BookEnum
//	func BookEnumToUint64(e BookEnum) (uint64, bool)
//	func (b Book) Enums() []BookEnum
func Enum() Option {
	panic("structgen: not generated")
}

// EnumMut generates a union over pointers to the distinct field types. Enums
// returns pointers into the struct so that each field can be modified through
// its variant:
//
//	// generated: (simplified)
//	type BookEnumMut interface{ isBookEnumMut() }
//	type BookEnumMutUint64 struct{ Value *uint64 }
//	func (b *Book) EnumsMut() []BookEnumMut
//
// The pointers alias the struct. Do not keep the result of EnumsMut beyond the
// scope where the struct is modified through it.
func EnumMut() Option {
	panic("structgen: not generated")
}

// FieldEnum generates a union with one variant per field:
//
//	// generated: (simplified)
//	type BookFieldEnum interface{ isBookFieldEnum() }
//	type BookFieldEnumDateTime struct{ Value uint64 }
//	func (b Book) FieldEnums() []BookFieldEnum
//	func BookFieldEnumVariants() []string
func FieldEnum() Option {
	panic("structgen: not generated")
}

// FieldEnumMut generates a union with one variant per field holding a pointer
// to the field:
//
//	// generated: (simplified)
//	type BookFieldEnumMut interface{ isBookFieldEnumMut() }
//	type BookFieldEnumMutDateTime struct{ Value *uint64 }
//	func (b *Book) FieldEnumsMut() []BookFieldEnumMut
//	func BookFieldEnumMutVariants() []string
func FieldEnumMut() Option {
	panic("structgen: not generated")
}

// EnumDerive attaches extra methods to the variants of [Enum] and [FieldEnum].
func EnumDerive(derives ...Derivable) Option {
	panic("structgen: not generated")
}

// MutEnumDerive attaches extra methods to the variants of [EnumMut] and
// [FieldEnumMut].
func MutEnumDerive(derives ...Derivable) Option {
	panic("structgen: not generated")
}

// BuilderDerive attaches extra methods to the builder generated by [Builder]
// or [BuilderDynamic].
func BuilderDerive(derives ...Derivable) Option {
	panic("structgen: not generated")
}
