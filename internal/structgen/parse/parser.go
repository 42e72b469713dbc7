package parse

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"
)

// BuildTag is the build tag of files containing Structgen directives.
const BuildTag = "structgen"

func IsStructgenImport(path string) bool {
	// Source code from "wire/internal/wire/parse.go".
	const vendorPart = "vendor/"
	if i := strings.LastIndex(path, vendorPart); i != -1 && (i == 0 || path[i-1] == '/') {
		path = path[i+len(vendorPart):]
	}
	return path == "github.com/sublee/structgen"
}

// Parser parses an AST of the underlying package to collect derived structs.
type Parser struct{ pkg *packages.Package }

func (p *Parser) Pkg() *packages.Package { return p.pkg }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("need pkg types")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("need pkg types info")
	}
	return &Parser{pkg: pkg}, nil
}

// GetDirective returns the name of the Structgen directive function if the
// call expression is a Structgen directive. Otherwise, it returns false.
func (p *Parser) GetDirective(call *ast.CallExpr) (string, bool) {
	callee := typeutil.Callee(p.Pkg().TypesInfo, call)
	if callee == nil {
		return "", false
	}

	pkg := callee.Pkg()
	if pkg == nil {
		// Built-in functions like panic()
		return "", false
	}

	if !IsStructgenImport(pkg.Path()) {
		return "", false
	}

	return callee.Name(), true
}

// IsDirective checks if the call expression is a Structgen directive with the
// given name. If name is empty, it checks if the call is any Structgen
// directive.
func (p *Parser) IsDirective(call *ast.CallExpr, name string) bool {
	calleeName, ok := p.GetDirective(call)
	if !ok {
		return false
	}

	if name == "" {
		return true
	}

	return calleeName == name
}

// StructgenGoFiles returns the Go files that have a "//go:build structgen"
// constraint.
func (p *Parser) StructgenGoFiles() []*ast.File {
	var files []*ast.File
	for _, file := range p.Pkg().Syntax {
		if hasGoBuildStructgen(file) {
			files = append(files, file)
		}
	}
	return files
}

// hasGoBuildStructgen checks if the file has a "//go:build structgen"
// constraint.
func hasGoBuildStructgen(file *ast.File) bool {
	ok := false
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			// Build constraints must appear before the package clause.
			break
		}
		for _, comment := range group.List {
			if !constraint.IsGoBuild(comment.Text) {
				continue
			}
			expr, err := constraint.Parse(comment.Text)
			if err != nil {
				continue
			}
			expr.Eval(func(tag string) bool {
				if tag == BuildTag {
					ok = true
				}
				return true
			})
		}
	}
	return ok
}

// tailIdent extracts the rightmost [ast.Ident] from the expression. Type
// arguments are skipped.
//
//	Book{}
//	^^^^
//	Book{}.title
//	       ^^^^^
//	structgen.Derive[Book]
//	          ^^^^^^
func tailIdent(expr ast.Expr) (*ast.Ident, bool) {
	expr = ast.Unparen(expr)
	switch expr := expr.(type) {
	case *ast.Ident:
		return expr, true
	case *ast.SelectorExpr:
		return tailIdent(expr.Sel)
	case *ast.IndexExpr:
		return tailIdent(expr.X)
	case *ast.IndexListExpr:
		return tailIdent(expr.X)
	}
	return nil, false
}
