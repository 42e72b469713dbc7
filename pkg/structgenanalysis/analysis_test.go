package structgenanalysis

import (
	"errors"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/structgen/internal/codefmt"
)

func TestCodeErrors(t *testing.T) {
	fset := token.NewFileSet()
	f := fset.AddFile("book.go", -1, 100)
	pkg := codefmt.Pkg(&packages.Package{Fset: fset})

	e1 := codefmt.Errorf(pkg, codefmt.Pos(f.Pos(10)), "first")
	e2 := codefmt.Errorf(pkg, codefmt.Pos(f.Pos(20)), "second")
	plain := errors.New("no position")

	found := codeErrors(errors.Join(e1, errors.Join(plain, e2)))
	if assert.Len(t, found, 2) {
		assert.Equal(t, "first", found[0].Unwrap().Error())
		assert.Equal(t, "second", found[1].Unwrap().Error())
	}
}

func TestCodeErrorsNil(t *testing.T) {
	assert.Empty(t, codeErrors(nil))
}
