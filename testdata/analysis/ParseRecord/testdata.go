//go:build structgen

package testdata

import (
	"time"

	"github.com/sublee/structgen"
)

type Empty struct{}

type Number int

type Generic[T any] struct{ value T }

type Page struct{ number int }

type Embedded struct {
	Page  // want `cannot derive Embedded; embedded field Page is not supported`
	title string
}

type Blank struct {
	_     int // want `cannot derive Blank; blank field is not supported`
	title string
}

type Book struct {
	id    uint64
	title string
}

type Novel = Book

var (
	_ = structgen.Derive[Empty](structgen.Fields())            // want `cannot derive Empty; struct has no fields`
	_ = structgen.Derive[Number](structgen.Fields())           // want `cannot derive Number; need struct type, got int`
	_ = structgen.Derive[struct{ a int }](structgen.Fields())  // want `cannot derive struct\{a int\}; need named struct type`
	_ = structgen.Derive[Generic[int]](structgen.Fields())     // want `cannot derive generic type Generic`
	_ = structgen.Derive[time.Time](structgen.Fields())        // want `cannot derive time.Time; need struct type declared in package testdata`
	_ = structgen.Derive[Embedded](structgen.Fields())         // reported at the field
	_ = structgen.Derive[Blank](structgen.Fields())            // reported at the field
	_ = structgen.Derive[Book](structgen.Fields())             // ok
	_ = structgen.Derive[Novel](structgen.Values())            // want `duplicate derivation of Book`
	_ = structgen.Derive[Page](opts()...)                        // want `options must be inlined, not spread from slice`
)

func opts() []structgen.Option { return nil } // want `cannot use structgen.Option outside structgen.Derive`
