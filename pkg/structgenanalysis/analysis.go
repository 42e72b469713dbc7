// Package structgenanalysis reports Structgen errors as analysis diagnostics
// so that editors and linters show them without running the generator.
package structgenanalysis

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/structgen/internal/codefmt"
	structgeninternal "github.com/sublee/structgen/internal/structgen"
)

// Analyzer validates the usage of Structgen in the package.
var Analyzer = &analysis.Analyzer{
	Name: "structgen",
	Doc:  "linter for structgen usage",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	sg, err := structgeninternal.New(pkg)
	if err != nil {
		return nil, err
	}

	err = sg.Build()
	for _, codeErr := range codeErrors(err) {
		pass.Report(analysis.Diagnostic{
			Pos:     codeErr.Pos(),
			End:     codeErr.End(),
			Message: codeErr.Unwrap().Error(),
		})
	}
	return nil, nil
}

// codeErrors unrolls joined errors into positioned errors. Errors without
// positions are dropped.
func codeErrors(err error) []*codefmt.CodeError {
	var found []*codefmt.CodeError
	for _, err := range codefmt.Flatten(err) {
		if codeErr, ok := err.(*codefmt.CodeError); ok {
			found = append(found, codeErr)
		}
	}
	return found
}
