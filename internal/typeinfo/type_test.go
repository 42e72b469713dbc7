package typeinfo_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/structgen/internal/typeinfo"
)

func parse(code string) (*ast.File, *types.Info, *types.Package, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", code, parser.AllErrors)
	if err != nil {
		return nil, nil, nil, err
	}

	info := &types.Info{Types: make(map[ast.Expr]types.TypeAndValue)}
	pkg, err := (&types.Config{}).Check("pkg", fset, []*ast.File{file}, info)
	if err != nil {
		return nil, nil, nil, err
	}

	return file, info, pkg, nil
}

func lookupType(t *testing.T, code, name string) types.Type {
	t.Helper()
	_, _, pkg, err := parse(code)
	require.NoError(t, err)
	obj := pkg.Scope().Lookup(name)
	require.NotNil(t, obj, name)
	return obj.Type()
}

func TestTypeOfUnnamed(t *testing.T) {
	typ := lookupType(t, "package p; var x []int", "x")

	ti := typeinfo.TypeOf(typ)
	assert.Nil(t, ti.Named)
	assert.Same(t, typ, ti.Type())
	assert.Equal(t, "[]int", ti.String())
}

func TestTypeOfAliasKeepsSpelling(t *testing.T) {
	code := `
package p
type Pages uint64
type Count = Pages
var x Count
`
	typ := lookupType(t, code, "x")

	ti := typeinfo.TypeOf(typ)
	require.NotNil(t, ti.Named)
	assert.Equal(t, "Pages", ti.Named.Obj().Name())
	assert.Equal(t, "pkg.Count", ti.String())
}

func TestTypeOfRecursive(t *testing.T) {
	code := `
package p
type Tree map[string]Tree
type List []List
type Ring chan Ring
`
	for _, name := range []string{"Tree", "List", "Ring"} {
		ti := typeinfo.TypeOf(lookupType(t, code, name))
		require.NotNil(t, ti.Named, name)
		assert.Equal(t, name, ti.Named.Obj().Name())
	}
}

func TestTypeRef(t *testing.T) {
	ti := typeinfo.TypeOf(lookupType(t, "package p; type Tags []string", "Tags"))

	ref := ti.Ref()
	ptr, ok := ref.T.(*types.Pointer)
	require.True(t, ok)
	assert.True(t, types.Identical(ti.T, ptr.Elem()))
	assert.Nil(t, ref.Named)
	assert.Equal(t, "*pkg.Tags", ref.String())
}

func TestTypeMember(t *testing.T) {
	code := `
package p
type Base struct{ Shared int }
func (Base) Enums() {}
type Book struct {
	Base
	id uint64
}
func (*Book) Reset() {}
`
	_, _, pkg, err := parse(code)
	require.NoError(t, err)
	ti := typeinfo.TypeOf(pkg.Scope().Lookup("Book").Type())

	for _, name := range []string{"id", "Shared", "Enums", "Reset"} {
		obj, ok := ti.Member(pkg, name)
		assert.True(t, ok, name)
		assert.Equal(t, name, obj.Name())
	}

	_, ok := ti.Member(pkg, "FieldEnums")
	assert.False(t, ok)
}
