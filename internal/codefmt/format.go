package codefmt

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Formatter spells types and expressions as they are written in the package
// of generated code, and positions as they are reported in diagnostics.
type Formatter struct {
	PkgPath   string
	Fset      *token.FileSet
	TypesInfo *types.Info
}

func New(pkg *packages.Package) Formatter {
	if pkg == nil {
		return Formatter{}
	}
	return Formatter{pkg.PkgPath, pkg.Fset, pkg.TypesInfo}
}

func newByPkger(pkger Pkger) Formatter {
	if pkger == nil {
		return New(nil)
	}
	return New(pkger.Pkg())
}

// qualifier leaves types of the package unqualified. Other types are qualified
// by their package names.
func (f Formatter) qualifier(pkg *types.Package) string {
	if pkg.Path() == f.PkgPath {
		return ""
	}
	return pkg.Name()
}

// Type spells a type. Aliases keep their own names:
//
//	f.Type(time.Duration) // "time.Duration"
//	f.Type(*Book)         // "*Book"
func (f Formatter) Type(typ types.Type) string {
	return types.TypeString(typ, f.qualifier)
}

// Expr prints an expression such as a default value of a field.
func (f Formatter) Expr(expr ast.Expr) string {
	fset := f.Fset
	if fset == nil {
		fset = token.NewFileSet()
	}

	var b strings.Builder
	if err := format.Node(&b, fset, expr); err != nil {
		panic(err) // go/printer prints any ast.Expr
	}
	return b.String()
}

// wd is the working directory which positions are relative to.
var wd, _ = os.Getwd()

// FormatPosition formats a position as file:line:column. The file is relative
// to the working directory if possible.
func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if rel, err := filepath.Rel(wd, filename); err == nil {
		filename = rel
	}
	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}
