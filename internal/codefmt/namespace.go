package codefmt

import (
	"go/token"
	"go/types"
	"iter"
	"maps"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NS is a set of identifiers which are taken in a scope of generated code.
// Generated names are claimed from it so that they never shadow or redeclare
// an existing name.
type NS map[string]struct{}

// NewNS creates a namespace for the package-level declarations of generated
// code. Every name in scope and every predeclared identifier such as append
// or string is taken already.
func NewNS(scope *types.Scope) NS {
	ns := make(NS)
	for _, name := range scope.Names() {
		ns.Reserve(name)
	}
	for _, name := range types.Universe.Names() {
		ns.Reserve(name)
	}
	return ns
}

// Reserve takes a name. It returns false if the name is already taken.
func (ns NS) Reserve(name string) bool {
	if _, ok := ns[name]; ok {
		return false
	}
	ns[name] = struct{}{}
	return true
}

// Clone returns a namespace for a nested scope. Names taken in the clone do not
// affect ns.
func (ns NS) Clone() NS { return maps.Clone(ns) }

// Name takes a name derived from hint and returns it. When the hint is taken
// already, a number is appended: b, b2, b3, and so on. Keywords are returned
// as they are.
//
// Panics if the hint is empty.
func (ns NS) Name(hint string) string {
	hint = NormalizeName(hint)
	if ns == nil || token.IsKeyword(hint) {
		return hint
	}
	for name := range DisambiguateName(hint) {
		if ns.Reserve(name) {
			return name
		}
	}
	panic("unreachable")
}

// NormalizeName makes an identifier from a hint. Characters which cannot be in
// an identifier split words, and the words are joined in camel case:
//
//	NormalizeName("date_time")   // "date_time"
//	NormalizeName("time.Time")   // "timeTime"
//	NormalizeName("map[string]") // "mapString"
//	NormalizeName("名前")         // "名前"
//
// A hint with no letter at the head is prefixed by "x", so "[]" is "x" and
// "2uint8" is "x2uint8".
func NormalizeName(hint string) string {
	if hint == "" {
		panic("empty name")
	}

	words := strings.FieldsFunc(hint, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	title := cases.Title(language.English)
	for i := 1; i < len(words); i++ {
		words[i] = title.String(words[i])
	}

	name := strings.Join(words, "")
	if r, _ := utf8.DecodeRuneInString(name); !(unicode.IsLetter(r) || r == '_') {
		name = "x" + name
	}
	return name
}

// DisambiguateName yields candidates for a unique name starting from name
// itself. A name ending with a digit gets "_" before the number, so answer42
// continues with answer42_2 rather than answer422.
func DisambiguateName(name string) iter.Seq[string] {
	if name == "" {
		panic("empty name")
	}

	sep := ""
	if last := name[len(name)-1]; '0' <= last && last <= '9' {
		sep = "_"
	}

	return func(yield func(string) bool) {
		if !yield(name) {
			return
		}
		for i := 2; ; i++ {
			if !yield(name + sep + strconv.Itoa(i)) {
				return
			}
		}
	}
}
