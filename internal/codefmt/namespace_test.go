package codefmt

import (
	"go/types"
	"iter"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisambiguate(t *testing.T) {
	next, stop := iter.Pull(DisambiguateName("book"))
	defer stop()

	for _, want := range []string{"book", "book2", "book3"} {
		name, ok := next()
		assert.True(t, ok)
		assert.Equal(t, want, name)
	}
}

func TestDisambiguateNumSuffix(t *testing.T) {
	next, stop := iter.Pull(DisambiguateName("answer42"))
	defer stop()

	for _, want := range []string{"answer42", "answer42_2", "answer42_3"} {
		name, ok := next()
		assert.True(t, ok)
		assert.Equal(t, want, name)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "date_time", NormalizeName("date_time"))
	assert.Equal(t, "timeTime", NormalizeName("time.Time"))
	assert.Equal(t, "mapString", NormalizeName("map[string]"))
	assert.Panics(t, func() { NormalizeName("") })
}

func TestNormalizeNameNonASCII(t *testing.T) {
	assert.Equal(t, "名前", NormalizeName("名前"))
	assert.Equal(t, "größe", NormalizeName("größe"))
	assert.Equal(t, "x", NormalizeName("[]"))
	assert.Equal(t, "x2uint8", NormalizeName("2uint8"))
}

func TestNSNameNonASCII(t *testing.T) {
	ns := make(NS)
	assert.Equal(t, "名前", ns.Name("名前"))
	assert.Equal(t, "名前2", ns.Name("名前"))
	assert.Equal(t, "x", ns.Name("*"))
	assert.Equal(t, "x2", ns.Name("[]"))
}

func TestNSName(t *testing.T) {
	ns := make(NS)
	assert.Equal(t, "b", ns.Name("b"))
	assert.Equal(t, "b2", ns.Name("b"))
	assert.Equal(t, "b3", ns.Name("b"))

	// Keywords are never taken.
	assert.Equal(t, "type", ns.Name("type"))
	assert.Equal(t, "type", ns.Name("type"))
}

func TestNewNS(t *testing.T) {
	scope := types.NewScope(nil, 0, 0, "book")
	scope.Insert(types.NewVar(0, nil, "b", types.Typ[types.Int]))

	ns := NewNS(scope)
	assert.Equal(t, "b2", ns.Name("b"))
	assert.Equal(t, "append2", ns.Name("append"))
	assert.Equal(t, "string2", ns.Name("string"))
	assert.Equal(t, "v", ns.Name("v"))
}

func TestNSClone(t *testing.T) {
	ns := make(NS)
	ns.Reserve("Book")

	local := ns.Clone()
	assert.Equal(t, "b", local.Name("b"))
	assert.Equal(t, "Book2", local.Name("Book"))

	assert.Equal(t, []string{"Book"}, slices.Sorted(maps.Keys(ns)))
}
