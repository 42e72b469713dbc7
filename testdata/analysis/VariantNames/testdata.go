//go:build structgen

package testdata

import "github.com/sublee/structgen"

type Slicestring string

type Labels struct {
	names []string
	label Slicestring // want `cannot name variant for Slicestring; \[\]string of field names has the same variant name Slicestring`
}

type Point struct {
	dateTime  int64
	date_time int64 // want `cannot name variant for field date_time; field dateTime has the same variant name DateTime`
}

type Key struct {
	id  uint64
	id_ uint64 // want `cannot name variant for field id_; field id has the same variant name Id`
}

// Distinct field types never share a variant name even if their spellings
// differ only in punctuation.
type Matrix struct {
	rows  [][]int
	cells []int
	flat  [2]int
}

var (
	_ = structgen.Derive[Labels](structgen.Enum())
	_ = structgen.Derive[Point](structgen.FieldEnum())
	_ = structgen.Derive[Key](structgen.Fields(), structgen.BuilderDynamic())
	_ = structgen.Derive[Matrix](structgen.Enum(), structgen.FieldEnum()) // ok
)
