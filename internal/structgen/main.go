package structgeninternal

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/structgen/internal/codefmt"
	"github.com/sublee/structgen/internal/structgen/parse"
)

// Version is the version of Structgen written in the header of generated
// files. It is set by the command-line tool.
var Version string

// Main is the main entry point for Structgen. It is used by the command-line
// tool directly.
//
// ctx is the context for loading packages. wd is the path of the working
// directory. env is the environment variables to use when loading packages.
// tags is the comma-separated extra build tags. tests indicates whether to
// include test files. outFile is the name of the output file to generate in
// each package. And patterns are the package patterns to process.
//
// It returns a map of output file paths to their contents. Packages without
// Structgen directives are skipped. If any error occurs, it returns a non-nil
// error which joins all errors sorted by position.
func Main(ctx context.Context, wd string, env []string, tags string, tests bool, outFile string, patterns []string) (map[string][]byte, error) {
	pkgs, err := load(ctx, wd, env, tags, tests, patterns)
	if err != nil {
		return nil, err
	}

	outs := make(map[string][]byte)
	var errs error

	for _, pkg := range pkgs {
		if len(pkg.GoFiles) == 0 {
			continue
		}

		sg, err := New(pkg)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		if err := sg.Build(); err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		code := sg.Generate()
		if len(code) == 0 {
			continue
		}

		outDir := filepath.Dir(pkg.GoFiles[0])
		if rel, err := filepath.Rel(wd, outDir); err == nil {
			outDir = rel
		}
		outs[filepath.Join(outDir, outFile)] = code
	}
	if errs != nil {
		// Errors carry their positions already.
		return nil, reorderErrors(errs)
	}

	return outs, nil
}

// load loads packages with the structgen build tag so that directive files
// are type-checked together with the rest of each package.
func load(ctx context.Context, wd string, env []string, tags string, tests bool, patterns []string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:       packages.NeedDeps | packages.NeedFiles | packages.NeedImports | packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Context:    ctx,
		Dir:        wd,
		Env:        env,
		BuildFlags: []string{"-tags=" + parse.BuildTag},
		Tests:      tests,
	}
	if tags != "" {
		cfg.BuildFlags[0] += "," + tags
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	var errs error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, err := range pkg.Errors {
			if err.Pos == "" {
				errs = errors.Join(errs, errors.New(err.Msg))
				continue
			}

			path, rowcol, _ := strings.Cut(err.Pos, ":")
			if rel, relErr := filepath.Rel(wd, path); relErr == nil {
				err.Pos = rel + ":" + rowcol
			}
			errs = errors.Join(errs, err)
		}
	})
	if errs != nil {
		return nil, errs
	}

	return pkgs, nil
}

// reorderErrors flattens joined errors and sorts them by message. Messages
// start with positions, so errors are sorted by file and line.
func reorderErrors(errs error) error {
	if errs == nil {
		return nil
	}

	list := codefmt.Flatten(errs)
	slices.SortStableFunc(list, func(a, b error) int {
		return cmp.Compare(a.Error(), b.Error())
	})
	list = slices.CompactFunc(list, func(a, b error) bool {
		return a.Error() == b.Error()
	})
	return errors.Join(list...)
}
