package codefmt

import (
	"go/token"

	"golang.org/x/tools/go/packages"
)

// Errorf is a shorthand for [Formatter.Errorf]. pkger provides the file set
// and the package to qualify names against.
func Errorf(pkger Pkger, poser Poser, format string, args ...any) error {
	return newByPkger(pkger).Errorf(poser, format, args...)
}

type pkger struct{ pkg *packages.Package }

func (p pkger) Pkg() *packages.Package { return p.pkg }
func Pkg(pkg *packages.Package) Pkger  { return pkger{pkg} }

type poser struct{ pos token.Pos }

func (p poser) Pos() token.Pos { return p.pos }
func Pos(pos token.Pos) Poser  { return poser{pos} }
