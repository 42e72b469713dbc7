// Package synth builds the declarations generated for derived structs.
package synth

import (
	"errors"
	"go/token"
	"go/types"
	"maps"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/emirpasic/gods/maps/hashbidimap"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/structgen/internal/codefmt"
	"github.com/sublee/structgen/internal/naming"
	"github.com/sublee/structgen/internal/structgen/parse"
	"github.com/sublee/structgen/internal/typeinfo"
)

// statePkgPath is the import path of the runtime support for builders.
const statePkgPath = "github.com/sublee/structgen/pkg/structgenstate"

// artifact writes declarations of one selected option.
type artifact interface {
	// declare claims generated names. It returns an error if a name conflicts.
	declare(r *recordRegistry) error

	// writeCode writes the declarations.
	writeCode(w *codefmt.Writer)
}

// Plan holds the artifacts to generate for a [parse.Record]. Create a plan by
// [Build] and then write code by [Plan.WriteCode]. Once built, writing code
// never fails.
type Plan struct {
	rec       parse.Record
	artifacts []artifact
}

// Name returns the name of the record.
func (pl *Plan) Name() string { return pl.rec.Name }

// Pkg implements [codefmt.Pkger].
func (pl *Plan) Pkg() *packages.Package { return pl.rec.Pkg() }

// Pos implements [codefmt.Poser].
func (pl *Plan) Pos() token.Pos { return pl.rec.Pos() }

// Build builds a [Plan] for the record. Every generated name is claimed in the
// registry. All errors are collected instead of stopping at the first one.
func Build(rec parse.Record, reg *Registry) (*Plan, error) {
	b := &builder{rec: rec}
	r := &recordRegistry{Registry: reg, rec: rec}

	// Options are applied in the order they are given.
	names := slices.Collect(maps.Keys(rec.Options.At))
	slices.SortFunc(names, func(a, b string) int {
		return int(rec.Options.At[a].Pos() - rec.Options.At[b].Pos())
	})

	var errs error
	var arts []artifact
	for _, name := range names {
		art, err := b.artifact(name)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if art == nil {
			continue
		}
		arts = append(arts, art)
	}
	if errs != nil {
		return nil, errs
	}

	for _, art := range arts {
		errs = errors.Join(errs, art.declare(r))
	}
	if errs != nil {
		return nil, errs
	}

	return &Plan{rec: rec, artifacts: arts}, nil
}

// WriteCode writes all declarations for the record.
func (pl *Plan) WriteCode(w *codefmt.Writer) {
	for _, art := range pl.artifacts {
		art.writeCode(w)
	}
}

// builder creates artifacts for a record. It computes shared variant names
// lazily so that a naming conflict is reported only when an artifact needs
// the names.
type builder struct {
	rec parse.Record

	group    *typeinfo.Group
	groupErr error
	grouped  bool

	fieldVariants []string
	fieldErr      error
	fielded       bool
}

func (b *builder) Pkg() *packages.Package { return b.rec.Pkg() }

func (b *builder) artifact(name string) (artifact, error) {
	opts := b.rec.Options
	switch name {
	case "Fields":
		return &fieldsArtifact{rec: b.rec}, nil

	case "Values":
		group, err := b.typeGroup()
		if err != nil {
			return nil, err
		}
		return &valuesArtifact{rec: b.rec, group: group, pairs: opts.Pairs()}, nil

	case "BuilderDynamic", "Builder":
		variants, err := b.variantsByField()
		if err != nil {
			return nil, err
		}
		if name == "Builder" {
			return &typeStateArtifact{rec: b.rec, setters: variants, derives: opts.BuilderDerives}, nil
		}
		return &dynamicArtifact{rec: b.rec, setters: variants, derives: opts.BuilderDerives}, nil

	case "Enum", "EnumMut":
		group, err := b.typeGroup()
		if err != nil {
			return nil, err
		}
		return newTypeUnion(b.rec, group, name == "EnumMut"), nil

	case "FieldEnum", "FieldEnumMut":
		variants, err := b.variantsByField()
		if err != nil {
			return nil, err
		}
		return newFieldUnion(b.rec, variants, name == "FieldEnumMut"), nil
	}

	// Derive lists only configure other artifacts.
	return nil, nil
}

// typeGroup groups the field types of the record.
func (b *builder) typeGroup() (*typeinfo.Group, error) {
	if b.grouped {
		return b.group, b.groupErr
	}
	b.grouped = true

	pkg := b.rec.Pkg().Types
	qf := func(other *types.Package) string {
		if other == pkg {
			return ""
		}
		return other.Name()
	}

	group := typeinfo.NewGroup(func(t types.Type) string {
		return naming.TypeVariant(naming.Spelling(t, qf))
	})

	var errs error
	for i, f := range b.rec.Fields {
		m, ok := group.Add(f.Type.T, i)
		if !ok {
			first := b.rec.Fields[m.Fields[0]]
			err := codefmt.Errorf(b, f, `cannot name variant for %t; %t of field %s has the same variant name %s`,
				f.Type, m.Type, first.Name, m.Name)
			errs = errors.Join(errs, err)
		}
	}

	b.group, b.groupErr = group, errs
	return group, errs
}

// variantsByField transliterates the field names of the record. Distinct
// fields must not share a variant name.
func (b *builder) variantsByField() ([]string, error) {
	if b.fielded {
		return b.fieldVariants, b.fieldErr
	}
	b.fielded = true

	bimap := hashbidimap.New() // field index <-> variant name
	variants := make([]string, len(b.rec.Fields))

	var errs error
	for i, f := range b.rec.Fields {
		v := naming.FieldVariant(f.Name)
		if j, ok := bimap.GetKey(v); ok {
			prev := b.rec.Fields[j.(int)]
			err := codefmt.Errorf(b, f, "cannot name variant for field %s; field %s has the same variant name %s", f.Name, prev.Name, v)
			errs = errors.Join(errs, err)
			continue
		}
		bimap.Put(i, v)
		variants[i] = v
	}

	b.fieldVariants, b.fieldErr = variants, errs
	return variants, errs
}

// Registry claims generated names in the namespace of a package. Share one
// registry for all records in the package.
type Registry struct {
	ns     codefmt.NS
	scope  *types.Scope
	owners map[string]string // generated name -> option
}

// NewRegistry creates a new [Registry]. ns must have reserved the names in the
// package scope already.
func NewRegistry(pkg *packages.Package, ns codefmt.NS) *Registry {
	return &Registry{
		ns:     ns,
		scope:  pkg.Types.Scope(),
		owners: make(map[string]string),
	}
}

// recordRegistry is a [Registry] scoped to a record for error reporting.
type recordRegistry struct {
	*Registry
	rec parse.Record
}

func (r *recordRegistry) Pkg() *packages.Package { return r.rec.Pkg() }

// label describes an option of the record in errors.
func (r *recordRegistry) label(option string) string {
	return "structgen." + option + " of " + r.rec.Name
}

// declare claims a package-level name for the option.
func (r *recordRegistry) declare(option, name string) error {
	option = r.label(option)
	if r.ns.Reserve(name) {
		r.owners[name] = option
		return nil
	}

	if obj := r.scope.Lookup(name); obj != nil {
		return codefmt.Errorf(r, r.rec, `cannot generate %s for %s; %s is already declared
	previous declaration at %b`, name, option, name, obj)
	}
	if owner, ok := r.owners[name]; ok {
		return codefmt.Errorf(r, r.rec, "cannot generate %s for %s; %s also generates it", name, option, owner)
	}
	return codefmt.Errorf(r, r.rec, "cannot generate %s for %s; name is already taken", name, option)
}

// declareMethod checks that a method generated on the record type does not
// conflict with its fields and methods.
func (r *recordRegistry) declareMethod(option, name string) error {
	option = r.label(option)
	t := typeinfo.TypeOf(r.rec.Named)
	if obj, ok := t.Member(r.rec.Pkg().Types, name); ok {
		return codefmt.Errorf(r, r.rec, `cannot generate method %t.%s for %s; %t already has %s
	previous declaration at %b`, r.rec.Named, name, option, r.rec.Named, name, obj)
	}
	key := r.rec.Name + "." + name
	if owner, ok := r.owners[key]; ok {
		return codefmt.Errorf(r, r.rec, "cannot generate method %t.%s for %s; %s also generates it", r.rec.Named, name, option, owner)
	}
	r.owners[key] = option
	return nil
}

// declareAll claims names in order and joins errors.
func (r *recordRegistry) declareAll(option string, names ...string) error {
	var errs error
	for _, name := range names {
		errs = errors.Join(errs, r.declare(option, name))
	}
	return errs
}

// receiverName returns the receiver name of methods generated on the record.
// It is the lowercased first letter of the record name.
func receiverName(rec parse.Record) string {
	r, _ := utf8.DecodeRuneInString(rec.Name)
	if !unicode.IsLetter(r) {
		return "x"
	}
	return string(unicode.ToLower(r))
}
