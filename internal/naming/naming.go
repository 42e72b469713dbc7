// Package naming derives variant names of generated unions from field types
// and field names.
package naming

import (
	"fmt"
	"go/types"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TypeVariant transliterates a type spelling into a variant name. The first
// character is uppercased. Every character which is not an ASCII letter or
// digit is deleted, including the first one.
//
//	TypeVariant("uint64")        // "Uint64"
//	TypeVariant("time.Duration") // "TimeDuration"
//	TypeVariant("[2]uint8")      // "2uint8"
func TypeVariant(s string) string {
	var b strings.Builder
	for i, r := range s {
		if !isASCIIAlnum(r) {
			continue
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FieldVariant transliterates a field name into a variant name. The first
// character is uppercased. Then the first two underscores are removed one by
// one, uppercasing the character following each. Later underscores are kept.
//
//	FieldVariant("title")       // "Title"
//	FieldVariant("date_time_")  // "DateTime"
//	FieldVariant("a_b_c_d")     // "ABC_d"
func FieldVariant(s string) string {
	rs := []rune(s)
	if len(rs) == 0 {
		return ""
	}
	rs[0] = unicode.ToUpper(rs[0])

	for range 2 {
		i := slices.Index(rs, '_')
		if i < 0 {
			break
		}
		rs = append(rs[:i], rs[i+1:]...)
		if i < len(rs) {
			rs[i] = unicode.ToUpper(rs[i])
		}
	}
	return string(rs)
}

// Spelling writes a type in words so that composite types keep a distinct
// name after [TypeVariant] deletes punctuation. Named and basic types are
// spelled as written. Pointer, slice, array, map, and channel constructors are
// spelled out:
//
//	*uint64          -> "ptr uint64"
//	[]string         -> "slice string"
//	[2]uint8         -> "array2 uint8"
//	map[string]int   -> "map string int"
//	<-chan time.Time -> "recvchan time.Time"
//
// Aliases are resolved before spelling. qf qualifies named types declared in
// other packages.
func Spelling(t types.Type, qf types.Qualifier) string {
	var b strings.Builder
	spell(&b, t, qf)
	return b.String()
}

func spell(b *strings.Builder, t types.Type, qf types.Qualifier) {
	switch t := types.Unalias(t).(type) {
	case *types.Pointer:
		b.WriteString("ptr ")
		spell(b, t.Elem(), qf)
	case *types.Slice:
		b.WriteString("slice ")
		spell(b, t.Elem(), qf)
	case *types.Array:
		fmt.Fprintf(b, "array%d ", t.Len())
		spell(b, t.Elem(), qf)
	case *types.Map:
		b.WriteString("map ")
		spell(b, t.Key(), qf)
		b.WriteString(" ")
		spell(b, t.Elem(), qf)
	case *types.Chan:
		switch t.Dir() {
		case types.SendOnly:
			b.WriteString("sendchan ")
		case types.RecvOnly:
			b.WriteString("recvchan ")
		default:
			b.WriteString("chan ")
		}
		spell(b, t.Elem(), qf)
	case *types.Named:
		obj := t.Obj()
		if obj.Pkg() != nil && qf != nil {
			if q := qf(obj.Pkg()); q != "" {
				b.WriteString(q)
				b.WriteString(".")
			}
		}
		b.WriteString(obj.Name())
		if args := t.TypeArgs(); args.Len() != 0 {
			b.WriteString(" of")
			for arg := range args.Types() {
				b.WriteString(" ")
				spell(b, arg, qf)
			}
		}
	default:
		// Basic types and type literals such as func(int) string
		b.WriteString(types.TypeString(t, qf))
	}
}

func isASCIIAlnum(r rune) bool {
	return r < utf8.RuneSelf && ('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
}
