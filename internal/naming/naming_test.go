package naming_test

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/structgen/internal/naming"
)

func TestTypeVariant(t *testing.T) {
	cases := map[string]string{
		"uint64":        "Uint64",
		"string":        "String",
		"time.Duration": "TimeDuration",
		"[2]uint8":      "2uint8",
		"(u8, u8)":      "u8u8",
		"Vec<String>":   "VecString",
		"ptr uint64":    "Ptruint64",
		"":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, naming.TypeVariant(in), "TypeVariant(%q)", in)
	}
}

func TestFieldVariant(t *testing.T) {
	cases := map[string]string{
		"title":        "Title",
		"id":           "Id",
		"date_time_":   "DateTime",
		"inspirations": "Inspirations",
		"page_count":   "PageCount",
		"a_b_c_d":      "ABC_d",
		"_x":           "X",
		"x_":           "X",
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, naming.FieldVariant(in), "FieldVariant(%q)", in)
	}
}

func TestFieldVariantTwoUnderscoresOnly(t *testing.T) {
	assert.Equal(t, "FirstSecondThird_fourth", naming.FieldVariant("first_second_third_fourth"))
}

func TestFieldVariantDistinct(t *testing.T) {
	assert.NotEqual(t, naming.FieldVariant("date_time_"), naming.FieldVariant("inspirations"))
	assert.Equal(t, naming.FieldVariant("aB"), naming.FieldVariant("a_b"))
}

func typeOf(t *testing.T, expr string) types.Type {
	t.Helper()

	fset := token.NewFileSet()
	code := "package p\nimport \"time\"\nvar _ time.Duration\ntype Pair[K, V any] struct{ k K; v V }\ntype ID = uint64\nvar x " + expr
	file, err := parser.ParseFile(fset, "p.go", code, parser.AllErrors)
	require.NoError(t, err)

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("p", fset, []*ast.File{file}, nil)
	require.NoError(t, err)

	return pkg.Scope().Lookup("x").Type()
}

func qualifier(pkg *types.Package) string {
	if pkg.Path() == "p" {
		return ""
	}
	return pkg.Name()
}

func TestSpelling(t *testing.T) {
	cases := map[string]string{
		"uint64":             "uint64",
		"ID":                 "uint64",
		"*uint64":            "ptr uint64",
		"[]string":           "slice string",
		"[2]uint8":           "array2 uint8",
		"map[string]int":     "map string int",
		"chan int":           "chan int",
		"<-chan time.Time":   "recvchan time.Time",
		"chan<- error":       "sendchan error",
		"time.Duration":      "time.Duration",
		"Pair[string, *int]": "Pair of string ptr int",
		"func(int) string":   "func(int) string",
	}
	for expr, want := range cases {
		assert.Equal(t, want, naming.Spelling(typeOf(t, expr), qualifier), "Spelling(%s)", expr)
	}
}

func TestSpellingVariantsDistinct(t *testing.T) {
	seen := make(map[string]string)
	for _, expr := range []string{"string", "[]string", "*string", "[1]string", "map[string]string"} {
		v := naming.TypeVariant(naming.Spelling(typeOf(t, expr), qualifier))
		prev, ok := seen[v]
		assert.False(t, ok, "%s collides with %s as %s", expr, prev, v)
		seen[v] = expr
	}
}
