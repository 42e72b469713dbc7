package codefmt

import (
	"fmt"
	"go/token"
)

// CodeError is an error located in the derived package's source code.
type CodeError struct {
	err  error
	pos  token.Pos
	end  token.Pos
	fset *token.FileSet
}

// Unwrap returns the message without position.
func (e CodeError) Unwrap() error { return e.err }

// Pos returns the start of the offending code. It may be invalid.
func (e CodeError) Pos() token.Pos { return e.pos }

// End returns the end of the offending code. It may be invalid.
func (e CodeError) End() token.Pos { return e.end }

// Error prefixes the message with file:line:column of the offending code
// unless the position is invalid.
func (e CodeError) Error() string {
	switch {
	case e.err == nil:
		return ""
	case !e.pos.IsValid():
		return e.err.Error()
	}
	return FormatPosition(e.fset.Position(e.pos)) + ": " + e.err.Error()
}

// Errorf formats a [CodeError] at poser. The end position is also recorded if
// poser implements [Ender]. Errors must not be wrapped because messages are
// compared and sorted as plain text.
func (f Formatter) Errorf(poser Poser, format string, args ...any) error {
	for _, arg := range args {
		if _, ok := arg.(error); ok {
			panic("CodeError cannot wrap error")
		}
	}

	e := &CodeError{fset: f.Fset}
	if poser != nil {
		e.pos = poser.Pos()
		if ender, ok := poser.(Ender); ok {
			e.end = ender.End()
		}
	}
	e.err = fmt.Errorf(format, f.wrapPrintfArgs(args)...)
	return e
}

// Flatten unrolls errors joined by errors.Join in depth-first order. Nested
// joins are flattened too. It returns nil for nil.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}

	var errs []error
	for _, err := range joined.Unwrap() {
		errs = append(errs, Flatten(err)...)
	}
	return errs
}
