package parse

import (
	"errors"
	"go/ast"
	"go/types"
	"strings"

	"github.com/sublee/structgen/internal/codefmt"
)

// Validate checks for usages outside expected paths. It collects all errors
// instead of stopping at the first error.
//
// Most rules are checked by the narrow parsing functions. But directives used
// elsewhere are never visited by them. Any reference to the structgen package
// remaining after code generation breaks the build, so it is reported here.
func (p *Parser) Validate() error {
	var errs error
	for _, file := range p.Pkg().Syntax {
		errs = errors.Join(errs, p.validateConstraint(file))
	}
	for _, file := range p.StructgenGoFiles() {
		errs = errors.Join(errs, p.validateUsages(file))
	}
	return errs
}

// validateConstraint checks if files importing "github.com/sublee/structgen"
// have "//go:build structgen" constraint.
func (p *Parser) validateConstraint(file *ast.File) error {
	var structgenImport *ast.ImportSpec
	for _, imp := range file.Imports {
		if IsStructgenImport(strings.Trim(imp.Path.Value, `"`)) {
			structgenImport = imp
			break
		}
	}
	if structgenImport == nil {
		return nil
	}

	if hasGoBuildStructgen(file) {
		return nil
	}

	return codefmt.Errorf(p, structgenImport, `file must have "//go:build structgen" constraint when importing structgen`)
}

// validateUsages checks references to the structgen package outside
// package-level [structgen.Derive] calls assigned to blank identifier.
func (p *Parser) validateUsages(file *ast.File) error {
	derives := make(map[*ast.CallExpr]bool)
	for id, call := range p.FindDerives(file) {
		derives[call] = id.Name == "_"
	}

	var errs error
	ast.Inspect(file, func(node ast.Node) bool {
		switch node := node.(type) {
		case *ast.ImportSpec:
			return false

		case *ast.CallExpr:
			if _, ok := derives[node]; ok {
				// Assignments to non-blank identifiers are reported by
				// ParseRecords.
				return false
			}

			directive, ok := p.GetDirective(node)
			if !ok {
				return true
			}

			var err error
			switch {
			case directive == "Derive":
				err = codefmt.Errorf(p, node, "structgen.Derive must be assigned to blank identifier at package level")
			case p.isAssigned(file, node):
				err = codefmt.Errorf(p, node, "cannot assign %s to variable", directive)
			default:
				err = codefmt.Errorf(p, node, "cannot use structgen.%s outside structgen.Derive", directive)
			}
			errs = errors.Join(errs, err)
			return false

		case *ast.SelectorExpr:
			x, ok := node.X.(*ast.Ident)
			if !ok {
				return true
			}
			pkgName, ok := p.Pkg().TypesInfo.ObjectOf(x).(*types.PkgName)
			if !ok || !IsStructgenImport(pkgName.Imported().Path()) {
				return true
			}
			err := codefmt.Errorf(p, node, "cannot use %c outside structgen.Derive", node)
			errs = errors.Join(errs, err)
			return false
		}
		return true
	})
	return errs
}

// isAssigned reports whether the call is the value of a variable declaration or
// an assignment.
func (p *Parser) isAssigned(file *ast.File, call *ast.CallExpr) bool {
	assigned := false
	ast.Inspect(file, func(node ast.Node) bool {
		if assigned {
			return false
		}
		switch node := node.(type) {
		case *ast.ValueSpec:
			for _, v := range node.Values {
				if ast.Unparen(v) == call {
					assigned = true
				}
			}
		case *ast.AssignStmt:
			for _, v := range node.Rhs {
				if ast.Unparen(v) == call {
					assigned = true
				}
			}
		}
		return true
	})
	return assigned
}
