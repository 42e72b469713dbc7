package typeinfo

import (
	"go/types"
)

// Type is a field type of a derived struct. T keeps the type as written, so
// an alias is printed by its own name in generated code.
type Type struct {
	T types.Type

	// Named is the defined type T denotes. It is nil for unnamed types.
	Named *types.Named
}

func (t Type) Type() types.Type { return t.T }
func (t Type) String() string   { return t.T.String() }

// TypeOf returns a [Type] for t. Only the outermost type is inspected, so
// recursive types such as `type Tree map[string]Tree` are fine.
func TypeOf(t types.Type) Type {
	named, _ := types.Unalias(t).(*types.Named)
	return Type{T: t, Named: named}
}

// Ref returns the pointer type to t. Mutable unions hold fields by their Ref
// types.
func (t Type) Ref() Type {
	return TypeOf(types.NewPointer(t.T))
}

// Member returns the field or method named name which is reachable through
// the type, including promoted ones. Generated methods on a derived struct must
// not collide with them.
func (t Type) Member(pkg *types.Package, name string) (types.Object, bool) {
	obj, _, _ := types.LookupFieldOrMethod(t.T, true, pkg, name)
	return obj, obj != nil
}
