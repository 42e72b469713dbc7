package synth

import (
	"errors"
	"strconv"

	"github.com/sublee/structgen/internal/codefmt"
	"github.com/sublee/structgen/internal/structgen/parse"
	"github.com/sublee/structgen/internal/typeinfo"
)

// unionVariant is a variant of a generated union.
type unionVariant struct {
	name   string // variant name, e.g. Uint64 or DateTime
	typ    typeinfo.Type
	fields []int // indexes of the fields holding this variant

	structName string
	toFunc     string
}

// unionArtifact generates a sealed interface with one struct per variant.
// A union by type (Enum, EnumMut) has a variant per distinct field type:
//
//	type BookEnum interface{ isBookEnum() }
//	type BookEnumUint64 struct{ Value uint64 }
//	type BookEnumString struct{ Value string }
//	type BookEnumFrom struct{}
//	func (BookEnumFrom) FromUint64(v uint64) BookEnum
//	func BookEnumToUint64(e BookEnum) (uint64, bool)
//	func (b Book) Enums() []BookEnum
//
// A union by field (FieldEnum, FieldEnumMut) has a variant per field:
//
//	type BookFieldEnum interface{ isBookFieldEnum() }
//	type BookFieldEnumId struct{ Value uint64 }
//	type BookFieldEnumTitle struct{ Value string }
//	func (b Book) FieldEnums() []BookFieldEnum
//	func BookFieldEnumVariants() []string
//
// Mutable unions hold pointers to the fields instead of copies.
type unionArtifact struct {
	rec      parse.Record
	option   string // Enum, EnumMut, FieldEnum, or FieldEnumMut
	mut      bool
	byField  bool
	derives  []parse.Derive
	variants []*unionVariant
	ofField  []*unionVariant // field index -> variant

	// capability is the name of the Values capability interface which the
	// From adapter satisfies. It is empty if not asserted.
	capability string

	iface, marker, from, accessor, variantsFunc string
}

// newTypeUnion creates a union by the distinct field types.
func newTypeUnion(rec parse.Record, group *typeinfo.Group, mut bool) *unionArtifact {
	a := &unionArtifact{rec: rec, option: "Enum", mut: mut}
	if mut {
		a.option = "EnumMut"
	}
	a.derives = rec.Options.Derives(a.option)
	a.ofField = make([]*unionVariant, len(rec.Fields))

	for m := range group.Members() {
		v := &unionVariant{name: m.Name, typ: m.Type, fields: m.Fields}
		a.variants = append(a.variants, v)
		for _, i := range m.Fields {
			a.ofField[i] = v
		}
	}

	if rec.Options.Values && !mut {
		a.capability = rec.Name + "From"
	}
	return a
}

// newFieldUnion creates a union by the fields.
func newFieldUnion(rec parse.Record, variants []string, mut bool) *unionArtifact {
	a := &unionArtifact{rec: rec, option: "FieldEnum", mut: mut, byField: true}
	if mut {
		a.option = "FieldEnumMut"
	}
	a.derives = rec.Options.Derives(a.option)
	a.ofField = make([]*unionVariant, len(rec.Fields))

	for i, f := range rec.Fields {
		v := &unionVariant{name: variants[i], typ: f.Type, fields: []int{i}}
		a.variants = append(a.variants, v)
		a.ofField[i] = v
	}
	return a
}

func (a *unionArtifact) declare(r *recordRegistry) error {
	a.iface = a.rec.Name + a.option
	a.marker = "is" + a.iface
	a.accessor = a.option + "s"
	errs := r.declare(a.option, a.iface)

	for _, v := range a.variants {
		v.structName = a.iface + v.name
		errs = errors.Join(errs, r.declare(a.option, v.structName))
	}

	if a.byField {
		a.variantsFunc = a.iface + "Variants"
		errs = errors.Join(errs, r.declare(a.option, a.variantsFunc))
	} else {
		a.from = a.iface + "From"
		errs = errors.Join(errs, r.declare(a.option, a.from))
		for _, v := range a.variants {
			v.toFunc = a.iface + "To" + v.name
			errs = errors.Join(errs, r.declare(a.option, v.toFunc))
		}
	}

	return errors.Join(errs, r.declareMethod(a.option, a.accessor))
}

// payload returns the type held by the variant.
func (a *unionArtifact) payload(w *codefmt.Writer, v *unionVariant) string {
	if a.mut {
		return w.Sprintf("%t", v.typ.Ref())
	}
	return w.Sprintf("%t", v.typ)
}

func (a *unionArtifact) writeCode(w *codefmt.Writer) {
	a.writeInterfaceCode(w)
	for _, v := range a.variants {
		a.writeVariantCode(w.Scope(), v)
	}
	if !a.byField {
		a.writeFromCode(w.Scope())
		for _, v := range a.variants {
			a.writeToCode(w.Scope(), v)
		}
	}
	a.writeAccessorCode(w.Scope())
	if a.byField {
		a.writeVariantsCode(w)
	}
}

func (a *unionArtifact) writeInterfaceCode(w *codefmt.Writer) {
	switch {
	case a.byField && a.mut:
		w.Printf("// %s points to a field of %t. There is a variant for each field.\n", a.iface, a.rec)
	case a.byField:
		w.Printf("// %s is a field value of %t. There is a variant for each field.\n", a.iface, a.rec)
	case a.mut:
		w.Printf("// %s points to a field of %t. There is a variant for each distinct\n", a.iface, a.rec)
		w.Printf("// field type.\n")
	default:
		w.Printf("// %s is a field value of %t. There is a variant for each distinct\n", a.iface, a.rec)
		w.Printf("// field type.\n")
	}
	w.Printf("type %s interface {\n", a.iface)
	w.Printf("%s()\n", a.marker)
	for _, d := range a.derives {
		switch d {
		case parse.DeriveString:
			w.Printf("%s.Stringer\n", w.Import("fmt", "fmt"))
		case parse.DeriveGoString:
			w.Printf("%s.GoStringer\n", w.Import("fmt", "fmt"))
		case parse.DeriveEqual:
			w.Printf("Equal(%s) bool\n", a.iface)
		}
	}
	w.Printf("}\n\n")
}

func (a *unionArtifact) writeVariantCode(w *codefmt.Writer, v *unionVariant) {
	switch {
	case a.byField:
		w.Printf("// %s holds field %s.\n", v.structName, a.rec.Fields[v.fields[0]].Name)
	default:
		w.Printf("// %s holds a field of %s.\n", v.structName, a.payload(w, v))
	}
	w.Printf("type %s struct {\n", v.structName)
	w.Printf("Value %s\n", a.payload(w, v))
	w.Printf("}\n\n")
	w.Printf("func (%s) %s() {}\n\n", v.structName, a.marker)

	for _, d := range a.derives {
		writeVariantDeriveCode(w.Scope(), a.iface, v, a.mut, d)
	}
}

func (a *unionArtifact) writeFromCode(w *codefmt.Writer) {
	w.Printf("// %s lifts values into %s.\n", a.from, a.iface)
	w.Printf("type %s struct{}\n\n", a.from)

	for _, v := range a.variants {
		w := w.Scope()
		x := w.Name("v")
		w.Printf("func (%s) From%s(%s %s) %s {\n", a.from, v.name, x, a.payload(w, v), a.iface)
		w.Printf("return %s{Value: %s}\n", v.structName, x)
		w.Printf("}\n\n")
	}

	if a.capability != "" {
		w.Printf("var _ %s[%s] = %s{}\n\n", a.capability, a.iface, a.from)
	}
}

func (a *unionArtifact) writeToCode(w *codefmt.Writer, v *unionVariant) {
	e := w.Name("e")
	x := w.Name("v")
	ok := w.Name("ok")

	w.Printf("// %s returns the value held by %s if it is %s.\n", v.toFunc, e, v.structName)
	w.Printf("func %s(%s %s) (%s, bool) {\n", v.toFunc, e, a.iface, a.payload(w, v))
	w.Printf("%s, %s := %s.(%s)\n", x, ok, e, v.structName)
	w.Printf("return %s.Value, %s\n", x, ok)
	w.Printf("}\n\n")
}

func (a *unionArtifact) writeAccessorCode(w *codefmt.Writer) {
	recv := w.Name(receiverName(a.rec))
	ref := ""
	recvType := w.Sprintf("%t", a.rec)
	if a.mut {
		ref = "&"
		recvType = "*" + recvType
	}

	w.Printf("// %s returns the fields of %s as %s in declaration order.\n", a.accessor, recv, a.iface)
	w.Printf("func (%s %s) %s() []%s {\n", recv, recvType, a.accessor, a.iface)
	w.Printf("return []%s{\n", a.iface)
	for i, f := range a.rec.Fields {
		w.Printf("%s{Value: %s%s.%s},\n", a.ofField[i].structName, ref, recv, f.Name)
	}
	w.Printf("}\n")
	w.Printf("}\n\n")
}

func (a *unionArtifact) writeVariantsCode(w *codefmt.Writer) {
	w.Printf("// %s returns the variant names of %s in field order.\n", a.variantsFunc, a.iface)
	w.Printf("func %s() []string {\n", a.variantsFunc)
	w.Printf("return []string{")
	for i, v := range a.variants {
		if i != 0 {
			w.Printf(", ")
		}
		w.Printf("%s", strconv.Quote(v.name))
	}
	w.Printf("}\n")
	w.Printf("}\n\n")
}
