package synth

import (
	"errors"

	"github.com/sublee/structgen/internal/codefmt"
	"github.com/sublee/structgen/internal/structgen/parse"
)

// dynamicArtifact generates the legacy builder which checks missing fields at
// runtime:
//
//	type BookBuilder struct {
//		id    structgenstate.Slot[uint64]
//		title structgenstate.Slot[string]
//	}
//	func NewBookBuilder() BookBuilder
//	func (b BookBuilder) SetId(v uint64) BookBuilder
//	func (b BookBuilder) SetTitle(v string) BookBuilder
//	func (b BookBuilder) Build() (Book, error)
//
//	type BookBuilderError int
//	const (
//		BookBuilderErrorId BookBuilderError = iota
//		BookBuilderErrorTitle
//	)
//	type BookBuilderErrors []BookBuilderError
type dynamicArtifact struct {
	rec     parse.Record
	setters []string // field variants
	derives []parse.Derive

	builder, newBuilder string
	errType, errsType   string
	errConsts           []string
}

func (a *dynamicArtifact) declare(r *recordRegistry) error {
	name := a.rec.Name
	a.builder = name + "Builder"
	a.newBuilder = "New" + name + "Builder"
	a.errType = name + "BuilderError"
	a.errsType = name + "BuilderErrors"
	errs := r.declareAll("BuilderDynamic", a.builder, a.newBuilder, a.errType, a.errsType)

	a.errConsts = make([]string, len(a.setters))
	for i, v := range a.setters {
		a.errConsts[i] = a.errType + v
		errs = errors.Join(errs, r.declare("BuilderDynamic", a.errConsts[i]))
	}

	methods := append(setterNames(a.setters), "Build")
	methods = append(methods, derivedMethods(a.derives)...)
	return errors.Join(errs, checkBuilderMembers(r, "BuilderDynamic", a.builder, methods))
}

func (a *dynamicArtifact) writeCode(w *codefmt.Writer) {
	st := w.Import(statePkgPath, "structgenstate")

	a.writeBuilderCode(w, st)
	a.writeNewCode(w, st)
	for i := range a.rec.Fields {
		a.writeSetterCode(w.Scope(), st, i)
	}
	a.writeBuildCode(w.Scope())
	a.writeErrorCode(w.Scope())
	a.writeErrorsCode(w.Scope())

	bt := builderType{
		rec:        a.rec,
		recv:       a.builder,
		newBuilder: a.newBuilder,
		setters:    a.setters,
		lookup: func(w *codefmt.Writer, b string, i int) string {
			return w.Sprintf("%s.%s.Get()", b, a.rec.Fields[i].Name)
		},
	}
	for _, d := range a.derives {
		bt.writeDeriveCode(w.Scope(), d)
	}
}

func (a *dynamicArtifact) writeBuilderCode(w *codefmt.Writer, st string) {
	w.Printf("// %s builds %t field by field. Fields left unset are reported by\n", a.builder, a.rec)
	w.Printf("// [%s.Build].\n", a.builder)
	w.Printf("type %s struct {\n", a.builder)
	for _, f := range a.rec.Fields {
		w.Printf("%s %s.Slot[%t]\n", f.Name, st, f.Type)
	}
	w.Printf("}\n\n")
}

func (a *dynamicArtifact) writeNewCode(w *codefmt.Writer, st string) {
	w.Printf("// %s creates a %s. Fields with defaults are already filled.\n", a.newBuilder, a.builder)
	w.Printf("func %s() %s {\n", a.newBuilder, a.builder)
	w.Printf("return %s{\n", a.builder)
	for _, f := range a.rec.Fields {
		if f.HasDefault() {
			w.Printf("%s: %s.Filled[%t](%c),\n", f.Name, st, f.Type, codefmt.RewriteImports(w, f.Default))
		}
	}
	w.Printf("}\n")
	w.Printf("}\n\n")
}

func (a *dynamicArtifact) writeSetterCode(w *codefmt.Writer, st string, i int) {
	w.Reserve(st)
	f := a.rec.Fields[i]
	b := w.Name("b")
	v := w.Name("v")

	w.Printf("// Set%s fills %s. Setting it again replaces the value.\n", a.setters[i], f.Name)
	w.Printf("func (%s %s) Set%s(%s %t) %s {\n", b, a.builder, a.setters[i], v, f.Type, a.builder)
	w.Printf("%s.%s = %s.Filled(%s)\n", b, f.Name, st, v)
	w.Printf("return %s\n", b)
	w.Printf("}\n\n")
}

func (a *dynamicArtifact) writeBuildCode(w *codefmt.Writer) {
	b := w.Name("b")
	errs := w.Name("errs")
	ok := w.Name("ok")
	vars := make([]string, len(a.rec.Fields))
	for i, f := range a.rec.Fields {
		vars[i] = w.Name(f.Name)
	}

	w.Printf("// Build creates %t from the filled fields. If any field is unset, it\n", a.rec)
	w.Printf("// returns %s listing all of them in declaration order.\n", a.errsType)
	w.Printf("func (%s %s) Build() (%t, error) {\n", b, a.builder, a.rec)
	w.Printf("var %s %s\n", errs, a.errsType)
	for i, f := range a.rec.Fields {
		w.Printf("%s, %s := %s.%s.Get()\n", vars[i], ok, b, f.Name)
		w.Printf("if !%s {\n", ok)
		w.Printf("%s = append(%s, %s)\n", errs, errs, a.errConsts[i])
		w.Printf("}\n")
	}
	w.Printf("if %s != nil {\n", errs)
	w.Printf("return %t{}, %s\n", a.rec, errs)
	w.Printf("}\n")
	w.Printf("return %t{\n", a.rec)
	for i, f := range a.rec.Fields {
		w.Printf("%s: %s,\n", f.Name, vars[i])
	}
	w.Printf("}, nil\n")
	w.Printf("}\n\n")
}

func (a *dynamicArtifact) writeErrorCode(w *codefmt.Writer) {
	strconvPkg := w.Import("strconv", "strconv")
	e := w.Name("e")

	w.Printf("// %s is a field of %t which has not been set when building.\n", a.errType, a.rec)
	w.Printf("type %s int\n\n", a.errType)

	w.Printf("const (\n")
	for i, c := range a.errConsts {
		if i == 0 {
			w.Printf("%s %s = iota\n", c, a.errType)
		} else {
			w.Printf("%s\n", c)
		}
	}
	w.Printf(")\n\n")

	w.Printf("// String returns the field name.\n")
	w.Printf("func (%s %s) String() string {\n", e, a.errType)
	w.Printf("switch %s {\n", e)
	for i, f := range a.rec.Fields {
		w.Printf("case %s:\n", a.errConsts[i])
		w.Printf("return %q\n", f.Name)
	}
	w.Printf("}\n")
	w.Printf("return %q + %s.Itoa(int(%s)) + \")\"\n", a.errType+"(", strconvPkg, e)
	w.Printf("}\n\n")

	w.Printf("func (%s %s) Error() string {\n", e, a.errType)
	w.Printf("return \"missing field \" + %s.String()\n", e)
	w.Printf("}\n\n")
}

func (a *dynamicArtifact) writeErrorsCode(w *codefmt.Writer) {
	stringsPkg := w.Import("strings", "strings")
	errs := w.Name("errs")
	names := w.Name("names")
	wrapped := w.Name("wrapped")
	i := w.Name("i")
	err := w.Name("err")

	w.Printf("// %s lists all fields which have not been set when building.\n", a.errsType)
	w.Printf("type %s []%s\n\n", a.errsType, a.errType)

	w.Printf("func (%s %s) Error() string {\n", errs, a.errsType)
	w.Printf("%s := make([]string, len(%s))\n", names, errs)
	w.Printf("for %s, %s := range %s {\n", i, err, errs)
	w.Printf("%s[%s] = %s.String()\n", names, i, err)
	w.Printf("}\n")
	w.Printf("return \"missing fields: \" + %s.Join(%s, \", \")\n", stringsPkg, names)
	w.Printf("}\n\n")

	w.Printf("// Unwrap returns the missing fields as errors so that [errors.Is] can find\n")
	w.Printf("// each of them.\n")
	w.Printf("func (%s %s) Unwrap() []error {\n", errs, a.errsType)
	w.Printf("%s := make([]error, len(%s))\n", wrapped, errs)
	w.Printf("for %s, %s := range %s {\n", i, err, errs)
	w.Printf("%s[%s] = %s\n", wrapped, i, err)
	w.Printf("}\n")
	w.Printf("return %s\n", wrapped)
	w.Printf("}\n\n")
}

// setterNames returns the setter method names of builders.
func setterNames(variants []string) []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = "Set" + v
	}
	return names
}

// derivedMethods returns the method names added by derives.
func derivedMethods(derives []parse.Derive) []string {
	names := make([]string, len(derives))
	for i, d := range derives {
		names[i] = string(d)
	}
	return names
}

// checkBuilderMembers checks that builder methods do not conflict with the
// builder fields, which are named after the record fields.
func checkBuilderMembers(r *recordRegistry, option, builder string, methods []string) error {
	var errs error
	for _, f := range r.rec.Fields {
		for _, m := range methods {
			if f.Name == m {
				err := codefmt.Errorf(r, f, "cannot generate method %s.%s for %s; field %s has the same name",
					builder, m, r.label(option), f.Name)
				errs = errors.Join(errs, err)
			}
		}
	}
	return errs
}
