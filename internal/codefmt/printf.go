package codefmt

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"io"

	"golang.org/x/tools/go/packages"
)

type (
	Pkger interface{ Pkg() *packages.Package }
	Poser interface{ Pos() token.Pos }
	Ender interface{ End() token.Pos }
	Typer interface{ Type() types.Type }
)

// codeArg is a printf argument which refers to code of the package. It
// implements [fmt.Formatter] with these verbs:
//
//	%t  type, e.g. "map[string]Tree" or "time.Time"
//	%c  expression, e.g. "Book{}.pages"
//	%b  position, e.g. "book.go:12:6"
//
// Other verbs format the argument as fmt does.
type codeArg struct {
	x any
	f Formatter
}

func (f Formatter) wrapPrintfArgs(args []any) []any {
	for i, arg := range args {
		switch arg.(type) {
		case token.Pos, types.Type, Typer, Poser:
			args[i] = codeArg{arg, f}
		}
	}
	return args
}

func (a codeArg) typ() types.Type {
	switch x := a.x.(type) {
	case types.Type:
		return x
	case Typer:
		// Records, fields, and objects
		return x.Type()
	case ast.Expr:
		if a.f.TypesInfo != nil {
			return a.f.TypesInfo.TypeOf(x)
		}
	}
	return nil
}

func (a codeArg) pos() token.Pos {
	switch x := a.x.(type) {
	case token.Pos:
		return x
	case Poser:
		return x.Pos()
	}
	return token.NoPos
}

func (a codeArg) Format(s fmt.State, verb rune) {
	switch verb {
	case 't':
		if typ := a.typ(); typ != nil {
			_, _ = io.WriteString(s, a.f.Type(typ))
			return
		}

	case 'c':
		if expr, ok := a.x.(ast.Expr); ok {
			_, _ = io.WriteString(s, a.f.Expr(expr))
			return
		}

	case 'b':
		if pos := a.pos(); pos.IsValid() && a.f.Fset != nil {
			_, _ = io.WriteString(s, FormatPosition(a.f.Fset.Position(pos)))
			return
		}

	default:
		fmt.Fprintf(s, fmt.FormatString(s, verb), a.x)
		return
	}
	fmt.Fprintf(s, "%%!%c(%T)", verb, a.x)
}

func (f Formatter) Sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, f.wrapPrintfArgs(args)...)
}

func (f Formatter) Fprintf(w io.Writer, format string, args ...any) (int, error) {
	return fmt.Fprintf(w, format, f.wrapPrintfArgs(args)...)
}
