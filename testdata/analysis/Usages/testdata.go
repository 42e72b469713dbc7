//go:build structgen

package testdata

import "github.com/sublee/structgen"

type Book struct {
	id    uint64
	title string
}

var _ = structgen.Derive[Book](structgen.Fields()) // ok

var Derived = structgen.Derive[Book](structgen.Fields()) // want `cannot assign structgen.Derive to Derived; assign it to blank identifier`

var fields = structgen.Fields() // want `cannot assign Fields to variable`

func init() {
	_ = structgen.Derive[Book]() // want `structgen.Derive must be assigned to blank identifier at package level`
	structgen.Values()           // want `cannot use structgen.Values outside structgen.Derive`
	_ = structgen.DeriveString   // want `cannot use structgen.DeriveString outside structgen.Derive`
	_ = fields
}
