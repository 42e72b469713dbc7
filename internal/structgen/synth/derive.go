package synth

import (
	"strings"

	"github.com/sublee/structgen/internal/codefmt"
	"github.com/sublee/structgen/internal/structgen/parse"
)

// writeVariantDeriveCode writes a derived method of a union variant.
//
//	func (v BookEnumUint64) String() string             // Uint64(42)
//	func (v BookEnumUint64) GoString() string           // BookEnumUint64{Value: 0x2a}
//	func (v BookEnumUint64) Equal(other BookEnum) bool
func writeVariantDeriveCode(w *codefmt.Writer, iface string, v *unionVariant, mut bool, d parse.Derive) {
	fmtPkg := w.Import("fmt", "fmt")
	x := w.Name("v")

	switch d {
	case parse.DeriveString:
		w.Printf("func (%s %s) String() string {\n", x, v.structName)
		if mut {
			w.Printf("if %s.Value == nil {\n", x)
			w.Printf("return %q\n", v.name+"(nil)")
			w.Printf("}\n")
			w.Printf("return %s.Sprintf(%q, *%s.Value)\n", fmtPkg, v.name+"(%v)", x)
		} else {
			w.Printf("return %s.Sprintf(%q, %s.Value)\n", fmtPkg, v.name+"(%v)", x)
		}
		w.Printf("}\n\n")

	case parse.DeriveGoString:
		w.Printf("func (%s %s) GoString() string {\n", x, v.structName)
		w.Printf("return %s.Sprintf(%q, %s.Value)\n", fmtPkg, v.structName+"{Value: %#v}", x)
		w.Printf("}\n\n")

	case parse.DeriveEqual:
		reflectPkg := w.Import("reflect", "reflect")
		other := w.Name("other")
		o := w.Name("o")
		ok := w.Name("ok")
		w.Printf("func (%s %s) Equal(%s %s) bool {\n", x, v.structName, other, iface)
		w.Printf("%s, %s := %s.(%s)\n", o, ok, other, v.structName)
		w.Printf("return %s && %s.DeepEqual(%s.Value, %s.Value)\n", ok, reflectPkg, x, o)
		w.Printf("}\n\n")
	}
}

// builderType describes a generated builder to write derived methods for.
type builderType struct {
	rec        parse.Record
	recv       string // receiver type including type parameters
	newBuilder string
	setters    []string

	// lookup returns an expression which evaluates the value of a field and
	// whether it has been set.
	lookup func(w *codefmt.Writer, b string, i int) string
}

// writeDeriveCode writes a derived method of the builder.
//
//	func (b BookBuilder) String() string     // BookBuilder{id: 42, title: <unset>}
//	func (b BookBuilder) GoString() string   // NewBookBuilder().SetId(0x2a)
//	func (b BookBuilder) Equal(other BookBuilder) bool
func (bt builderType) writeDeriveCode(w *codefmt.Writer, d parse.Derive) {
	b := w.Name("b")

	switch d {
	case parse.DeriveString:
		fmtPkg := w.Import("fmt", "fmt")

		// The builder name without type parameters
		name, _, _ := strings.Cut(bt.recv, "[")

		var format strings.Builder
		args := make([]string, len(bt.rec.Fields))
		format.WriteString(name + "{")
		for i, f := range bt.rec.Fields {
			if i != 0 {
				format.WriteString(", ")
			}
			format.WriteString(f.Name + ": %v")
			args[i] = b + "." + f.Name
		}
		format.WriteString("}")

		w.Printf("func (%s %s) String() string {\n", b, bt.recv)
		w.Printf("return %s.Sprintf(%q, %s)\n", fmtPkg, format.String(), strings.Join(args, ", "))
		w.Printf("}\n\n")

	case parse.DeriveGoString:
		fmtPkg := w.Import("fmt", "fmt")
		stringsPkg := w.Import("strings", "strings")
		s := w.Name("s")
		v := w.Name("v")
		ok := w.Name("ok")

		w.Printf("func (%s %s) GoString() string {\n", b, bt.recv)
		w.Printf("var %s %s.Builder\n", s, stringsPkg)
		w.Printf("%s.WriteString(%q)\n", s, bt.newBuilder+"()")
		for i := range bt.rec.Fields {
			w.Printf("if %s, %s := %s; %s {\n", v, ok, bt.lookup(w, b, i), ok)
			w.Printf("%s.Fprintf(&%s, %q, %s)\n", fmtPkg, s, ".Set"+bt.setters[i]+"(%#v)", v)
			w.Printf("}\n")
		}
		w.Printf("return %s.String()\n", s)
		w.Printf("}\n\n")

	case parse.DeriveEqual:
		reflectPkg := w.Import("reflect", "reflect")
		other := w.Name("other")
		w.Printf("func (%s %s) Equal(%s %s) bool {\n", b, bt.recv, other, bt.recv)
		w.Printf("return %s.DeepEqual(%s, %s)\n", reflectPkg, b, other)
		w.Printf("}\n\n")
	}
}
