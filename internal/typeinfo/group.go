package typeinfo

import (
	"go/types"
	"iter"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"golang.org/x/tools/go/types/typeutil"
)

// Member is a distinct type in a [Group].
type Member struct {
	// Type is the type as written at the first field of the type.
	Type Type

	// Name is the variant name of the type.
	Name string

	// Fields holds the indices of fields declared with the type in declaration
	// order.
	Fields []int
}

// Group collects distinct field types of a struct in first-seen order. Types
// are distinct by [types.Identical] so an alias and the type it denotes share
// one member.
type Group struct {
	byType *typeutil.Map      // types.Type -> *Member
	byName *linkedhashmap.Map // variant name -> *Member
	name   func(types.Type) string
}

// NewGroup creates a new [Group]. name derives a variant name from a type.
func NewGroup(name func(types.Type) string) *Group {
	byType := new(typeutil.Map)
	byType.SetHasher(typeutil.MakeHasher())
	return &Group{
		byType: byType,
		byName: linkedhashmap.New(),
		name:   name,
	}
}

// Add registers the type of the field at index i. It returns the member the
// field belongs to.
//
// If another type has already taken the same variant name, the type is not
// registered. Add returns the conflicting member and false instead.
func (g *Group) Add(t types.Type, i int) (*Member, bool) {
	key := types.Unalias(t)
	if m, ok := g.byType.At(key).(*Member); ok {
		m.Fields = append(m.Fields, i)
		return m, true
	}

	name := g.name(t)
	if v, ok := g.byName.Get(name); ok {
		return v.(*Member), false
	}

	m := &Member{Type: TypeOf(t), Name: name, Fields: []int{i}}
	g.byType.Set(key, m)
	g.byName.Put(name, m)
	return m, true
}

// Of returns the member for the given type.
func (g *Group) Of(t types.Type) (*Member, bool) {
	m, ok := g.byType.At(types.Unalias(t)).(*Member)
	return m, ok
}

// Members iterates members in first-seen order.
func (g *Group) Members() iter.Seq[*Member] {
	return func(yield func(*Member) bool) {
		it := g.byName.Iterator()
		for it.Next() {
			if !yield(it.Value().(*Member)) {
				return
			}
		}
	}
}
