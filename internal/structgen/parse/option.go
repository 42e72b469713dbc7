package parse

import (
	"errors"
	"go/ast"
	"go/constant"
	"go/types"
	"slices"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/sublee/structgen/internal/codefmt"
)

// Derive is a method set attached to generated types by the *Derive options.
type Derive string

const (
	DeriveString   Derive = "String"
	DeriveGoString Derive = "GoString"
	DeriveEqual    Derive = "Equal"
)

var knownDerives = []Derive{DeriveString, DeriveGoString, DeriveEqual}

// Options holds artifacts selected for a [Record].
type Options struct {
	Fields         bool
	Values         bool
	Builder        bool
	BuilderDynamic bool
	Enum           bool
	EnumMut        bool
	FieldEnum      bool
	FieldEnumMut   bool

	EnumDerives    []Derive
	MutEnumDerives []Derive
	BuilderDerives []Derive

	// At holds the option calls by directive name.
	At map[string]*ast.CallExpr
}

// HasBuilder reports whether any builder is selected.
func (o Options) HasBuilder() bool { return o.Builder || o.BuilderDynamic }

// Pairs reports whether field name and value pairs are generated.
func (o Options) Pairs() bool { return o.Fields && o.Values }

// Derives returns the derives for the generated union or builder selected by
// the directive name.
func (o Options) Derives(artifact string) []Derive {
	switch artifact {
	case "Enum", "FieldEnum":
		return o.EnumDerives
	case "EnumMut", "FieldEnumMut":
		return o.MutEnumDerives
	case "Builder", "BuilderDynamic":
		return o.BuilderDerives
	}
	return nil
}

// ParseOptions parses the option arguments of [structgen.Derive]. Defaults are
// returned separately by field. It collects all errors instead of stopping at
// the first error.
func (p *Parser) ParseOptions(rec Record, args []ast.Expr) (Options, map[*types.Var]ast.Expr, error) {
	opts := Options{At: make(map[string]*ast.CallExpr)}
	defaults := make(map[*types.Var]ast.Expr)
	defaultAt := make(map[*types.Var]*ast.CallExpr)

	var errs error
	for _, arg := range args {
		if _, ok := ast.Unparen(arg).(*ast.Ident); ok {
			err := codefmt.Errorf(p, arg, "option must be inlined, not assigned to variable")
			errs = errors.Join(errs, err)
			continue
		}

		call, ok := ast.Unparen(arg).(*ast.CallExpr)
		if !ok {
			err := codefmt.Errorf(p, arg, "cannot use %c as option", arg)
			errs = errors.Join(errs, err)
			continue
		}

		name, ok := p.GetDirective(call)
		if !ok {
			err := codefmt.Errorf(p, arg, "cannot use %c as option; need structgen option call", arg)
			errs = errors.Join(errs, err)
			continue
		}

		if name == "Default" {
			field, value, err := p.parseDefault(rec, call)
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}
			if prev, ok := defaultAt[field]; ok {
				err := codefmt.Errorf(p, call, `duplicate default for field %s
	previous default at %b`, field.Name(), prev.Pos())
				errs = errors.Join(errs, err)
				continue
			}
			defaults[field] = value
			defaultAt[field] = call
			continue
		}

		if prev, ok := opts.At[name]; ok {
			err := codefmt.Errorf(p, call, `duplicate %s option
	previous option at %b`, name, prev.Pos())
			errs = errors.Join(errs, err)
			continue
		}
		opts.At[name] = call

		var err error
		switch name {
		case "Fields":
			opts.Fields = true
		case "Values":
			opts.Values = true
		case "Builder":
			opts.Builder = true
		case "BuilderDynamic":
			opts.BuilderDynamic = true
		case "Enum":
			opts.Enum = true
		case "EnumMut":
			opts.EnumMut = true
		case "FieldEnum":
			opts.FieldEnum = true
		case "FieldEnumMut":
			opts.FieldEnumMut = true
		case "EnumDerive":
			opts.EnumDerives, err = p.parseDerives(call)
		case "MutEnumDerive":
			opts.MutEnumDerives, err = p.parseDerives(call)
		case "BuilderDerive":
			opts.BuilderDerives, err = p.parseDerives(call)
		default:
			err = codefmt.Errorf(p, call, "cannot use structgen.%s as option", name)
		}
		errs = errors.Join(errs, err)
	}

	if errs != nil {
		return Options{}, nil, errs
	}

	if err := p.checkOptions(rec, opts, defaultAt); err != nil {
		return Options{}, nil, err
	}
	return opts, defaults, nil
}

// checkOptions checks requirements between options.
func (p *Parser) checkOptions(rec Record, opts Options, defaultAt map[*types.Var]*ast.CallExpr) error {
	var errs error
	require := func(option string, ok bool, requirement string) {
		call, given := opts.At[option]
		if given && !ok {
			err := codefmt.Errorf(p, call, "%s requires %s", option, requirement)
			errs = errors.Join(errs, err)
		}
	}

	if len(opts.At) == 0 {
		return codefmt.Errorf(p, rec, "structgen.Derive[%t] selects nothing to generate", rec.Named)
	}

	require("Builder", opts.Fields, "Fields")
	require("BuilderDynamic", opts.Fields, "Fields")
	require("EnumDerive", opts.Enum || opts.FieldEnum, "Enum or FieldEnum")
	require("MutEnumDerive", opts.EnumMut || opts.FieldEnumMut, "EnumMut or FieldEnumMut")
	require("BuilderDerive", opts.HasBuilder(), "Builder or BuilderDynamic")

	if opts.Builder && opts.BuilderDynamic {
		later := opts.At["Builder"]
		if dyn := opts.At["BuilderDynamic"]; dyn.Pos() > later.Pos() {
			later = dyn
		}
		err := codefmt.Errorf(p, later, "cannot use both Builder and BuilderDynamic")
		errs = errors.Join(errs, err)
	}

	if !opts.HasBuilder() {
		for _, f := range rec.Fields {
			if call, ok := defaultAt[f.Var]; ok {
				err := codefmt.Errorf(p, call, "Default requires Builder or BuilderDynamic")
				errs = errors.Join(errs, err)
			}
		}
	}

	return errs
}

// parseDefault parses a [structgen.Default] call:
//
//	structgen.Default(Book{}.pages, 100)
func (p *Parser) parseDefault(rec Record, call *ast.CallExpr) (*types.Var, ast.Expr, error) {
	if len(call.Args) != 2 {
		return nil, nil, codefmt.Errorf(p, call, "need 2 parameters") // unreachable
	}

	field, err := p.parseFieldPath(rec, call.Args[0])
	if err != nil {
		return nil, nil, err
	}
	return field, call.Args[1], nil
}

// parseFieldPath parses a direct field selector on the zero value of the
// record type.
//
//	Book{}.pages
//	^^^^^^ ^^^^^
func (p *Parser) parseFieldPath(rec Record, expr ast.Expr) (*types.Var, error) {
	fieldErr := codefmt.Errorf(p, expr, "field must belong to %t{}; got %c", rec.Named, expr)

	sel, ok := ast.Unparen(expr).(*ast.SelectorExpr)
	if !ok {
		return nil, fieldErr
	}

	comp, ok := ast.Unparen(sel.X).(*ast.CompositeLit)
	if !ok {
		return nil, fieldErr
	}
	if len(comp.Elts) != 0 {
		// Book{...}
		return nil, fieldErr
	}
	if !types.Identical(p.Pkg().TypesInfo.TypeOf(comp), rec.Named) {
		// Magazine{}
		return nil, fieldErr
	}

	v, ok := p.Pkg().TypesInfo.ObjectOf(sel.Sel).(*types.Var)
	if !ok || !v.IsField() {
		return nil, fieldErr
	}
	for _, f := range rec.Fields {
		if f.Var == v {
			return v, nil
		}
	}
	// Promoted field of an embedded struct
	return nil, fieldErr
}

// parseDerives parses arguments of the *Derive options. Every argument must be
// a constant such as structgen.DeriveString.
func (p *Parser) parseDerives(call *ast.CallExpr) ([]Derive, error) {
	if call.Ellipsis.IsValid() {
		return nil, codefmt.Errorf(p, call, "derives must be inlined, not spread from slice")
	}

	set := linkedhashset.New()
	var errs error
	for _, arg := range call.Args {
		tv := p.Pkg().TypesInfo.Types[arg]
		if tv.Value == nil || tv.Value.Kind() != constant.String {
			err := codefmt.Errorf(p, arg, "%c is not derivable constant", arg)
			errs = errors.Join(errs, err)
			continue
		}

		d := Derive(constant.StringVal(tv.Value))
		if !slices.Contains(knownDerives, d) {
			err := codefmt.Errorf(p, arg, "unknown derive %q", string(d))
			errs = errors.Join(errs, err)
			continue
		}

		if set.Contains(d) {
			err := codefmt.Errorf(p, arg, "duplicate derive %s", string(d))
			errs = errors.Join(errs, err)
			continue
		}
		set.Add(d)
	}
	if errs != nil {
		return nil, errs
	}

	derives := make([]Derive, 0, set.Size())
	for _, v := range set.Values() {
		derives = append(derives, v.(Derive))
	}
	return derives, nil
}
