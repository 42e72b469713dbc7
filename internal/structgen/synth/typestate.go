package synth

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sublee/structgen/internal/codefmt"
	"github.com/sublee/structgen/internal/structgen/parse"
)

// typeStateArtifact generates the type-state builder. Each field has a type
// parameter which is either Unset or Set. Only the all-Set instantiation can
// be built, so building an incomplete record does not compile:
//
//	type BookBuilder[
//		S0 structgenstate.Unset | structgenstate.Set[uint64],
//		S1 structgenstate.Unset | structgenstate.Set[string],
//	] struct {
//		id    S0
//		title S1
//	}
//	func NewBookBuilder() BookBuilder[structgenstate.Unset, structgenstate.Unset]
//	func (b BookBuilder[S0, S1]) SetId(v uint64) BookBuilder[structgenstate.Set[uint64], S1]
//	func (b BookBuilder[S0, S1]) SetTitle(v string) BookBuilder[S0, structgenstate.Set[string]]
//	func BuildBook(b BookBuilder[structgenstate.Set[uint64], structgenstate.Set[string]]) Book
type typeStateArtifact struct {
	rec     parse.Record
	setters []string // field variants
	derives []parse.Derive

	builder, newBuilder, build string
}

func (a *typeStateArtifact) declare(r *recordRegistry) error {
	name := a.rec.Name
	a.builder = name + "Builder"
	a.newBuilder = "New" + name + "Builder"
	a.build = "Build" + name
	errs := r.declareAll("Builder", a.builder, a.newBuilder, a.build)

	methods := append(setterNames(a.setters), derivedMethods(a.derives)...)
	return errors.Join(errs, checkBuilderMembers(r, "Builder", a.builder, methods))
}

// typeStateWriter holds the names shared by the declarations of a type-state
// builder.
type typeStateWriter struct {
	*typeStateArtifact
	w      *codefmt.Writer
	st     string   // package name of structgenstate
	params []string // type parameter names
	unset  string
	set    []string // Set type by field
}

// inst returns the builder type instantiated with the states.
func (tw *typeStateWriter) inst(states []string) string {
	return tw.builder + "[" + strings.Join(states, ", ") + "]"
}

func (a *typeStateArtifact) writeCode(w *codefmt.Writer) {
	// Type parameters are shared by all declarations of the builder. Locals of
	// each declaration avoid them.
	w = w.Scope()

	tw := &typeStateWriter{typeStateArtifact: a, w: w}
	tw.st = w.Import(statePkgPath, "structgenstate")
	w.Reserve(tw.st)
	tw.unset = tw.st + ".Unset"
	for i, f := range a.rec.Fields {
		tw.params = append(tw.params, w.Name("S"+strconv.Itoa(i)))
		tw.set = append(tw.set, w.Sprintf("%s.Set[%t]", tw.st, f.Type))
	}

	tw.writeBuilderCode()
	tw.writeNewCode()
	for i := range a.rec.Fields {
		tw.writeSetterCode(w.Scope(), i)
	}
	tw.writeBuildCode(w.Scope())

	bt := builderType{
		rec:        a.rec,
		recv:       tw.inst(tw.params),
		newBuilder: a.newBuilder,
		setters:    a.setters,
		lookup: func(w *codefmt.Writer, b string, i int) string {
			return w.Sprintf("%s.Lookup[%t](%s.%s)", tw.st, a.rec.Fields[i].Type, b, a.rec.Fields[i].Name)
		},
	}
	for _, d := range a.derives {
		bt.writeDeriveCode(w.Scope(), d)
	}
}

func (tw *typeStateWriter) writeBuilderCode() {
	w := tw.w
	w.Printf("// %s builds %t field by field. Whether each field has been set is\n", tw.builder, tw.rec)
	w.Printf("// tracked by its type parameter. Pass the builder to [%s] when all\n", tw.build)
	w.Printf("// fields are set.\n")
	w.Printf("type %s[\n", tw.builder)
	for i := range tw.rec.Fields {
		w.Printf("%s %s | %s,\n", tw.params[i], tw.unset, tw.set[i])
	}
	w.Printf("] struct {\n")
	for i, f := range tw.rec.Fields {
		w.Printf("%s %s\n", f.Name, tw.params[i])
	}
	w.Printf("}\n\n")
}

func (tw *typeStateWriter) writeNewCode() {
	w := tw.w
	states := make([]string, len(tw.rec.Fields))
	for i, f := range tw.rec.Fields {
		if f.HasDefault() {
			states[i] = tw.set[i]
		} else {
			states[i] = tw.unset
		}
	}
	typ := tw.inst(states)

	w.Printf("// %s creates a %s. Fields with defaults are already set.\n", tw.newBuilder, tw.builder)
	w.Printf("func %s() %s {\n", tw.newBuilder, typ)
	w.Printf("return %s{\n", typ)
	for i, f := range tw.rec.Fields {
		if f.HasDefault() {
			w.Printf("%s: %s{Value: %c},\n", f.Name, tw.set[i], codefmt.RewriteImports(w, f.Default))
		}
	}
	w.Printf("}\n")
	w.Printf("}\n\n")
}

func (tw *typeStateWriter) writeSetterCode(w *codefmt.Writer, i int) {
	f := tw.rec.Fields[i]
	b := w.Name("b")
	v := w.Name("v")

	states := append([]string(nil), tw.params...)
	states[i] = tw.set[i]
	typ := tw.inst(states)

	w.Printf("// Set%s sets %s. Setting it again replaces the value.\n", tw.setters[i], f.Name)
	w.Printf("func (%s %s) Set%s(%s %t) %s {\n", b, tw.inst(tw.params), tw.setters[i], v, f.Type, typ)
	w.Printf("return %s{\n", typ)
	for j, g := range tw.rec.Fields {
		if j == i {
			w.Printf("%s: %s{Value: %s},\n", g.Name, tw.set[i], v)
		} else {
			w.Printf("%s: %s.%s,\n", g.Name, b, g.Name)
		}
	}
	w.Printf("}\n")
	w.Printf("}\n\n")
}

func (tw *typeStateWriter) writeBuildCode(w *codefmt.Writer) {
	b := w.Name("b")

	w.Printf("// %s creates %t from a builder whose fields are all set.\n", tw.build, tw.rec)
	w.Printf("func %s(%s %s) %t {\n", tw.build, b, tw.inst(tw.set), tw.rec)
	w.Printf("return %t{\n", tw.rec)
	for _, f := range tw.rec.Fields {
		w.Printf("%s: %s.%s.Value,\n", f.Name, b, f.Name)
	}
	w.Printf("}\n")
	w.Printf("}\n\n")
}
