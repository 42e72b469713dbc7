package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"go/types"
	"iter"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/structgen/internal/codefmt"
	"github.com/sublee/structgen/internal/typeinfo"
)

// Record is a struct type declared to be derived by [structgen.Derive]. It is
// created once per directive and is not modified after parsing.
type Record struct {
	// Name is the name of the struct type.
	Name string

	// Named is the struct type.
	Named *types.Named

	// Fields holds the struct fields in declaration order.
	Fields []Field

	// Options holds the selected artifacts and their configuration.
	Options Options

	pkg  *packages.Package
	call *ast.CallExpr
}

// Pkg returns the package where the record is derived. Record implements
// [codefmt.Pkger] by this method.
func (r Record) Pkg() *packages.Package { return r.pkg }

// Pos returns the position of the [structgen.Derive] call. Record implements
// [codefmt.Poser] by this method.
func (r Record) Pos() token.Pos { return r.call.Pos() }

// End returns the end position of the [structgen.Derive] call.
func (r Record) End() token.Pos { return r.call.End() }

// Type returns the struct type. Record implements [codefmt.Typer] by this
// method.
func (r Record) Type() types.Type { return r.Named }

// Call returns the [structgen.Derive] call expression.
func (r Record) Call() *ast.CallExpr { return r.call }

// Field is a field of a [Record].
type Field struct {
	// Name is the field name as declared.
	Name string

	// Var is the field object.
	Var *types.Var

	// Type is the declared type of the field.
	Type typeinfo.Type

	// Default is the value expression given by [structgen.Default]. It is nil
	// if the field has no default.
	Default ast.Expr
}

// Pos returns the position of the field declaration.
func (f Field) Pos() token.Pos { return f.Var.Pos() }

// HasDefault reports whether the field is preset in builders.
func (f Field) HasDefault() bool { return f.Default != nil }

// ParseRecords parses all [Record]s from the AST. Records are in source order.
func (p *Parser) ParseRecords() ([]Record, error) {
	var errs error
	var recs []Record
	derived := make(map[*types.TypeName]Record)

	for _, file := range p.StructgenGoFiles() {
		for id, call := range p.FindDerives(file) {
			if id.Name != "_" {
				err := codefmt.Errorf(p, id, "cannot assign structgen.Derive to %s; assign it to blank identifier", id.Name)
				errs = errors.Join(errs, err)
				continue
			}

			rec, err := p.ParseRecord(call)
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}

			if prev, ok := derived[rec.Named.Obj()]; ok {
				err := codefmt.Errorf(p, call, `duplicate derivation of %t
	previous derivation at %b`, rec.Named, prev.Pos())
				errs = errors.Join(errs, err)
				continue
			}
			derived[rec.Named.Obj()] = rec

			recs = append(recs, rec)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return recs, nil
}

// FindDerives collects and iterates package-level [structgen.Derive] calls
// with the identifiers they are assigned to.
func (p *Parser) FindDerives(file *ast.File) iter.Seq2[*ast.Ident, *ast.CallExpr] {
	return func(yield func(*ast.Ident, *ast.CallExpr) bool) {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.VAR {
				continue
			}

			for _, spec := range gen.Specs {
				val := spec.(*ast.ValueSpec)
				if len(val.Names) != len(val.Values) {
					continue
				}

				for i, id := range val.Names {
					call, ok := ast.Unparen(val.Values[i]).(*ast.CallExpr)
					if !ok || !p.IsDirective(call, "Derive") {
						continue
					}

					if !yield(id, call) {
						return
					}
				}
			}
		}
	}
}

// ParseRecord parses a [structgen.Derive] call.
func (p *Parser) ParseRecord(call *ast.CallExpr) (Record, error) {
	rec := Record{pkg: p.pkg, call: call}

	named, err := p.parseDeriveTypeArg(call)
	if err != nil {
		return Record{}, err
	}
	rec.Name = named.Obj().Name()
	rec.Named = named

	fields, err := p.parseFields(call, named)
	if err != nil {
		return Record{}, err
	}
	rec.Fields = fields

	if call.Ellipsis.IsValid() {
		return Record{}, codefmt.Errorf(p, call.Args[len(call.Args)-1], "options must be inlined, not spread from slice")
	}

	opts, defaults, err := p.ParseOptions(rec, call.Args)
	if err != nil {
		return Record{}, err
	}
	rec.Options = opts

	for i, f := range rec.Fields {
		if d, ok := defaults[f.Var]; ok {
			rec.Fields[i].Default = d
		}
	}
	return rec, nil
}

// parseDeriveTypeArg finds T of structgen.Derive[T] and checks whether T can
// be derived.
func (p *Parser) parseDeriveTypeArg(call *ast.CallExpr) (*types.Named, error) {
	id, ok := tailIdent(call.Fun)
	if !ok {
		return nil, codefmt.Errorf(p, call, "cannot resolve type argument of %c", call.Fun) // unreachable
	}

	inst, ok := p.Pkg().TypesInfo.Instances[id]
	if !ok || inst.TypeArgs.Len() != 1 {
		return nil, codefmt.Errorf(p, call, "cannot resolve type argument of %c", call.Fun) // unreachable
	}
	t := inst.TypeArgs.At(0)

	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil, codefmt.Errorf(p, call, "cannot derive %t; need named struct type", t)
	}

	if named.Obj().Pkg() != p.Pkg().Types {
		return nil, codefmt.Errorf(p, call, "cannot derive %t; need struct type declared in package %s", t, p.Pkg().Name)
	}

	if named.Origin().TypeParams().Len() != 0 {
		return nil, codefmt.Errorf(p, call, "cannot derive generic type %t", named.Origin())
	}

	if _, ok := named.Underlying().(*types.Struct); !ok {
		return nil, codefmt.Errorf(p, call, "cannot derive %t; need struct type, got %t", t, named.Underlying())
	}

	return named, nil
}

// parseFields collects the fields of the struct type. Embedded and blank
// fields are rejected because they have no usable name.
func (p *Parser) parseFields(call *ast.CallExpr, named *types.Named) ([]Field, error) {
	st := named.Underlying().(*types.Struct)
	if st.NumFields() == 0 {
		return nil, codefmt.Errorf(p, call, "cannot derive %t; struct has no fields", named)
	}

	var errs error
	fields := make([]Field, 0, st.NumFields())
	for v := range st.Fields() {
		switch {
		case v.Embedded():
			err := codefmt.Errorf(p, v, "cannot derive %t; embedded field %s is not supported", named, v.Name())
			errs = errors.Join(errs, err)
			continue
		case v.Name() == "_":
			err := codefmt.Errorf(p, v, "cannot derive %t; blank field is not supported", named)
			errs = errors.Join(errs, err)
			continue
		}

		fields = append(fields, Field{
			Name: v.Name(),
			Var:  v,
			Type: typeinfo.TypeOf(v.Type()),
		})
	}

	if errs != nil {
		return nil, errs
	}
	return fields, nil
}
