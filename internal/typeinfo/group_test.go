package typeinfo_test

import (
	"go/types"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/structgen/internal/typeinfo"
)

func fieldTypes(t *testing.T, code string) []types.Type {
	t.Helper()

	_, _, pkg, err := parse(code)
	require.NoError(t, err)

	st, ok := pkg.Scope().Lookup("Book").Type().Underlying().(*types.Struct)
	require.True(t, ok)

	var typs []types.Type
	for f := range st.Fields() {
		typs = append(typs, f.Type())
	}
	return typs
}

func nameByString(t types.Type) string {
	return types.Unalias(t).String()
}

func members(g *typeinfo.Group) [][]int {
	var out [][]int
	for m := range g.Members() {
		out = append(out, m.Fields)
	}
	return out
}

func TestGroupFirstSeenOrder(t *testing.T) {
	typs := fieldTypes(t, `
package p
type Book struct {
	id    uint64
	title string
	pages uint64
	tags  []string
}
`)

	g := typeinfo.NewGroup(nameByString)
	for i, typ := range typs {
		_, ok := g.Add(typ, i)
		require.True(t, ok)
	}

	assert.Equal(t, 3, len(members(g)))
	assert.Equal(t, [][]int{{0, 2}, {1}, {3}}, members(g))

	var names []string
	for m := range g.Members() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"uint64", "string", "[]string"}, names)
}

func TestGroupAlias(t *testing.T) {
	typs := fieldTypes(t, `
package p
type ID = uint64
type Book struct {
	id    ID
	pages uint64
}
`)

	g := typeinfo.NewGroup(nameByString)
	for i, typ := range typs {
		_, ok := g.Add(typ, i)
		require.True(t, ok)
	}

	require.Equal(t, 1, len(members(g)))
	m, ok := g.Of(typs[1])
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, m.Fields)
	_, isAlias := m.Type.T.(*types.Alias)
	assert.True(t, isAlias)
	assert.Equal(t, "uint64", m.Name)
}

func TestGroupDefinedTypeIsDistinct(t *testing.T) {
	typs := fieldTypes(t, `
package p
type Pages uint64
type Book struct {
	id    uint64
	pages Pages
}
`)

	g := typeinfo.NewGroup(nameByString)
	for i, typ := range typs {
		_, ok := g.Add(typ, i)
		require.True(t, ok)
	}
	assert.Equal(t, 2, len(members(g)))
}

func TestGroupNameConflict(t *testing.T) {
	typs := fieldTypes(t, `
package p
type Book struct {
	a int
	b string
}
`)

	g := typeinfo.NewGroup(func(types.Type) string { return "Same" })

	first, ok := g.Add(typs[0], 0)
	require.True(t, ok)

	conflict, ok := g.Add(typs[1], 1)
	assert.False(t, ok)
	assert.Same(t, first, conflict)
	assert.Equal(t, 1, len(members(g)))
	assert.Equal(t, []int{0}, slices.Concat(members(g)...))
}
