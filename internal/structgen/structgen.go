package structgeninternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"
	"io"
	"path/filepath"
	"slices"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/imports"

	"github.com/sublee/structgen/internal/codefmt"
	"github.com/sublee/structgen/internal/structgen/parse"
	"github.com/sublee/structgen/internal/structgen/synth"
)

// Structgen generates derived code for the target package. Call [Build] and
// then [Generate] to get the generated code. All potential errors are
// returned by [Build]. Once [Build] succeeds, [Generate] never fails.
type Structgen struct {
	p   *parse.Parser
	ns  codefmt.NS
	buf *bytes.Buffer
	w   *codefmt.Writer

	plans   []*synth.Plan
	derives map[token.Pos]bool // positions of erased Derive calls
}

// New creates a new [Structgen] for the given package. The package must have
// its Syntax, Types and TypesInfo. And it must not have any errors.
func New(pkg *packages.Package) (*Structgen, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	ns := codefmt.NewNS(pkg.Types.Scope())

	var buf bytes.Buffer
	return &Structgen{
		p:       parser,
		ns:      ns,
		buf:     &buf,
		w:       codefmt.NewWriter(&buf, pkg),
		derives: make(map[token.Pos]bool),
	}, nil
}

// Build parses derivations and plans the code to generate. All potential
// errors are returned by this method. It must be called before [Generate].
func (sg *Structgen) Build() error {
	recs, errs := sg.p.ParseRecords()
	errs = errors.Join(errs, sg.p.Validate())
	if errs != nil {
		return errs
	}

	reg := synth.NewRegistry(sg.p.Pkg(), sg.ns)
	for _, rec := range recs {
		sg.derives[rec.Pos()] = true

		plan, err := synth.Build(rec, reg)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		sg.plans = append(sg.plans, plan)
	}
	return errs
}

// Generate generates code for the package. It returns nil if the package has
// no file with the structgen build constraint. It must be called after
// [Build] succeeds.
func (sg *Structgen) Generate() []byte {
	if len(sg.p.StructgenGoFiles()) == 0 {
		return nil
	}
	sg.writeDerivedCode()
	sg.mergeCode()
	return sg.frameCode()
}

// writeDerivedCode writes the declarations of all derivations in source
// order.
func (sg *Structgen) writeDerivedCode() {
	plans := slices.Clone(sg.plans)
	slices.SortFunc(plans, func(a, b *synth.Plan) int {
		return int(a.Pos() - b.Pos())
	})

	for _, plan := range plans {
		sg.w.Printf("// structgen: %s\n\n", plan.Name())
		plan.WriteCode(sg.w.WithNS(sg.ns.Clone()))
	}
}

// mergeCode copies non-structgen code from the source files tagged with
// "//go:build structgen". Derive declarations are erased to remove any
// references to the structgen package.
func (sg *Structgen) mergeCode() {
	for _, file := range sg.p.StructgenGoFiles() {
		name := filepath.Base(sg.p.Pkg().Fset.File(file.Pos()).Name())
		first := true

		for _, decl := range file.Decls {
			if gen, ok := decl.(*ast.GenDecl); ok && gen.Tok == token.IMPORT {
				// Required imports are collected from their usage.
				continue
			}

			// Erase Derive declarations
			decl = astutil.Apply(decl, func(c *astutil.Cursor) bool {
				spec, ok := c.Node().(*ast.ValueSpec)
				if !ok {
					return true
				}

				var names []*ast.Ident
				var values []ast.Expr
				for i := range spec.Names {
					if i >= len(spec.Values) {
						names = append(names, spec.Names[i])
						continue
					}
					if !sg.derives[spec.Values[i].Pos()] {
						names = append(names, spec.Names[i])
						values = append(values, spec.Values[i])
					}
				}

				switch {
				case len(names) == 0:
					// Input:  var _ = structgen.Derive[Book](...)
					// Output: (nothing)
					c.Delete()
				case len(names) != len(spec.Names):
					// Input:  var _, answer = structgen.Derive[Book](...), 42
					// Output: var answer = 42
					c.Replace(&ast.ValueSpec{
						Doc:     spec.Doc,
						Names:   names,
						Type:    spec.Type,
						Values:  values,
						Comment: spec.Comment,
					})
				}
				return false
			}, nil).(ast.Decl)

			if gen, ok := decl.(*ast.GenDecl); ok && len(gen.Specs) == 0 {
				continue
			}

			if first {
				fmt.Fprintf(sg.buf, "// %s:\n\n", name)
				first = false
			}

			// Prevent import name conflicts when merging multiple files into one
			decl = codefmt.RewriteImports(sg.w, decl)

			_ = printer.Fprint(sg.buf, sg.p.Pkg().Fset, &printer.CommentedNode{
				Node:     decl,
				Comments: file.Comments,
			})
			fmt.Fprintf(sg.buf, "\n\n")
		}
	}
}

// frameCode prepends the header and the import declaration, and then formats
// the code.
func (sg *Structgen) frameCode() []byte {
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !%s\n\n", parse.BuildTag)
	fmt.Fprintf(&buf, "// Code generated by github.com/sublee/structgen%s. DO NOT EDIT.\n\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n\n", sg.p.Pkg().Name)

	if len(sg.w.Imports()) != 0 {
		fmt.Fprintf(&buf, "import (\n")
		for alias, imp := range sg.w.Imports() {
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", alias, imp.Path())
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path())
			}
		}
		fmt.Fprintf(&buf, ")\n\n")
	}

	_, _ = io.Copy(&buf, sg.buf)
	code := buf.Bytes()

	// Sort imports and apply gofmt if succeeded. Imports are already complete,
	// so goimports must not resolve packages.
	opt := &imports.Options{Comments: true, TabIndent: true, TabWidth: 8, FormatOnly: true}
	if fmtCode, err := imports.Process(sg.p.Pkg().Name+".go", code, opt); err == nil {
		code = fmtCode
	}
	return code
}
