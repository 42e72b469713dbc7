package codefmt_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/structgen/internal/codefmt"
)

func checkBook(t *testing.T) (codefmt.Formatter, *ast.File, *types.Package) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "book.go", `package book

import "time"

type Book struct {
	id        uint64
	published time.Time
}

var _ = Book{}.id
`, 0)
	require.NoError(t, err)

	info := &types.Info{Types: make(map[ast.Expr]types.TypeAndValue)}
	conf := &types.Config{Importer: fakeTimeImporter{}}
	pkg, err := conf.Check("example.com/book", fset, []*ast.File{file}, info)
	require.NoError(t, err)

	return codefmt.Formatter{PkgPath: pkg.Path(), Fset: fset, TypesInfo: info}, file, pkg
}

// fakeTimeImporter provides a package "time" which declares only Time.
type fakeTimeImporter struct{}

func (fakeTimeImporter) Import(path string) (*types.Package, error) {
	pkg := types.NewPackage(path, "time")
	obj := types.NewTypeName(token.NoPos, pkg, "Time", nil)
	types.NewNamed(obj, types.NewStruct(nil, nil), nil)
	pkg.Scope().Insert(obj)
	pkg.MarkComplete()
	return pkg, nil
}

func TestSprintfType(t *testing.T) {
	f, _, pkg := checkBook(t)
	book := pkg.Scope().Lookup("Book")
	st := book.Type().Underlying().(*types.Struct)

	assert.Equal(t, "Book", f.Sprintf("%t", book.Type()))
	assert.Equal(t, "*Book", f.Sprintf("%t", types.NewPointer(book.Type())))
	assert.Equal(t, "time.Time", f.Sprintf("%t", st.Field(1)))
	assert.Equal(t, "[]time.Time", f.Sprintf("%t", types.NewSlice(st.Field(1).Type())))
}

func TestSprintfExprAndPosition(t *testing.T) {
	f, file, pkg := checkBook(t)
	expr := file.Decls[2].(*ast.GenDecl).Specs[0].(*ast.ValueSpec).Values[0]

	assert.Equal(t, "Book{}.id", f.Sprintf("%c", expr))
	assert.Equal(t, "uint64", f.Sprintf("%t", expr))
	assert.Equal(t, "book.go:5:6", f.Sprintf("%b", pkg.Scope().Lookup("Book")))
	assert.Equal(t, "book.go:1:1", f.Sprintf("%b", file.Package))
}

func TestSprintfOtherVerbs(t *testing.T) {
	f, _, pkg := checkBook(t)
	book := pkg.Scope().Lookup("Book")

	assert.Equal(t, "Book", f.Sprintf("%s", book.Name()))
	assert.Equal(t, "7", f.Sprintf("%d", token.Pos(7)))
	assert.Equal(t, `"id"`, f.Sprintf("%q", "id"))
	assert.Equal(t, "%!c(token.Pos)", f.Sprintf("%c", token.Pos(1)))
}
