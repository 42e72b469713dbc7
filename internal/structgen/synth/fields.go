package synth

import (
	"errors"
	"strconv"

	"github.com/sublee/structgen/internal/codefmt"
	"github.com/sublee/structgen/internal/structgen/parse"
	"github.com/sublee/structgen/internal/typeinfo"
)

// fieldsArtifact generates the field name list:
//
//	func BookFields() []string
type fieldsArtifact struct {
	rec  parse.Record
	name string
}

func (a *fieldsArtifact) declare(r *recordRegistry) error {
	a.name = a.rec.Name + "Fields"
	return r.declare("Fields", a.name)
}

func (a *fieldsArtifact) writeCode(w *codefmt.Writer) {
	w.Printf("// %s returns the field names of %t in declaration order.\n", a.name, a.rec)
	w.Printf("func %s() []string {\n", a.name)
	w.Printf("return []string{")
	for i, f := range a.rec.Fields {
		if i != 0 {
			w.Printf(", ")
		}
		w.Printf("%s", strconv.Quote(f.Name))
	}
	w.Printf("}\n")
	w.Printf("}\n\n")
}

// valuesArtifact generates the value list converted by a caller-chosen
// capability. E must be constructible from every distinct field type:
//
//	type BookFrom[E any] interface {
//		FromUint64(uint64) E
//		FromString(string) E
//	}
//	func BookValues[E any](b Book, from BookFrom[E]) []E
//
// With pairs, it also generates:
//
//	type BookFieldValue[E any] struct {
//		Field string
//		Value E
//	}
//	func BookFieldsAndValues[E any](b Book, from BookFrom[E]) []BookFieldValue[E]
type valuesArtifact struct {
	rec   parse.Record
	group *typeinfo.Group
	pairs bool

	from, values    string
	pair, fieldsAnd string
}

func (a *valuesArtifact) declare(r *recordRegistry) error {
	a.from = a.rec.Name + "From"
	a.values = a.rec.Name + "Values"
	errs := r.declareAll("Values", a.from, a.values)

	if a.pairs {
		a.pair = a.rec.Name + "FieldValue"
		a.fieldsAnd = a.rec.Name + "FieldsAndValues"
		errs = errors.Join(errs, r.declareAll("Values", a.pair, a.fieldsAnd))
	}
	return errs
}

// fromMethod returns the name of the capability method for the field.
func (a *valuesArtifact) fromMethod(f parse.Field) string {
	m, _ := a.group.Of(f.Type.T)
	return "From" + m.Name
}

func (a *valuesArtifact) writeCode(w *codefmt.Writer) {
	a.writeFromCode(w.Scope())
	a.writeValuesCode(w.Scope())
	if a.pairs {
		a.writePairCode(w.Scope())
		a.writeFieldsAndValuesCode(w.Scope())
	}
}

func (a *valuesArtifact) writeFromCode(w *codefmt.Writer) {
	e := w.Name("E")
	w.Printf("// %s converts each field type of %t into %s.\n", a.from, a.rec, e)
	w.Printf("type %s[%s any] interface {\n", a.from, e)
	for m := range a.group.Members() {
		w.Printf("From%s(%t) %s\n", m.Name, m.Type, e)
	}
	w.Printf("}\n\n")
}

func (a *valuesArtifact) writeValuesCode(w *codefmt.Writer) {
	e := w.Name("E")
	b := w.Name("b")
	from := w.Name("from")

	w.Printf("// %s returns the field values of %s converted by %s in declaration\n", a.values, b, from)
	w.Printf("// order.\n")
	w.Printf("func %s[%s any](%s %t, %s %s[%s]) []%s {\n", a.values, e, b, a.rec, from, a.from, e, e)
	w.Printf("return []%s{\n", e)
	for _, f := range a.rec.Fields {
		w.Printf("%s.%s(%s.%s),\n", from, a.fromMethod(f), b, f.Name)
	}
	w.Printf("}\n")
	w.Printf("}\n\n")
}

func (a *valuesArtifact) writePairCode(w *codefmt.Writer) {
	e := w.Name("E")
	w.Printf("// %s is a field name of %t paired with its value.\n", a.pair, a.rec)
	w.Printf("type %s[%s any] struct {\n", a.pair, e)
	w.Printf("Field string\n")
	w.Printf("Value %s\n", e)
	w.Printf("}\n\n")
}

func (a *valuesArtifact) writeFieldsAndValuesCode(w *codefmt.Writer) {
	e := w.Name("E")
	b := w.Name("b")
	from := w.Name("from")

	w.Printf("// %s returns the field names of %t paired with the values of %s\n", a.fieldsAnd, a.rec, b)
	w.Printf("// converted by %s.\n", from)
	w.Printf("func %s[%s any](%s %t, %s %s[%s]) []%s[%s] {\n", a.fieldsAnd, e, b, a.rec, from, a.from, e, a.pair, e)
	w.Printf("return []%s[%s]{\n", a.pair, e)
	for _, f := range a.rec.Fields {
		w.Printf("{Field: %s, Value: %s.%s(%s.%s)},\n", strconv.Quote(f.Name), from, a.fromMethod(f), b, f.Name)
	}
	w.Printf("}\n")
	w.Printf("}\n\n")
}
