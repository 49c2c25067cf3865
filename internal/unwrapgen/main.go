package unwrapgeninternal

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"io"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

var Version string

// Config configures [Main].
type Config struct {
	// Dir is the path of the working directory. Output paths are relative to
	// it.
	Dir string

	// Env is the environment variables to use when loading packages.
	Env []string

	// Tags is the comma-separated build tags to use in addition to
	// "unwrapgen".
	Tags string

	// Tests indicates whether to include test files.
	Tests bool

	// OutFile is the name of the output file to generate in each package.
	OutFile string

	// Log receives the report of every union if not nil.
	Log io.Writer
}

// Main is the main entry point for Unwrapgen. It is used by the command-line
// tool directly.
//
// ctx is the context for loading packages. If the loading is too slow, ctx can
// cancel the operation. patterns are the package patterns to process.
//
// It returns a map of output file paths to their contents. If any error occurs,
// it returns a non-nil error.
func Main(ctx context.Context, cfg Config, patterns []string) (map[string][]byte, error) {
	pkgs, err := load(ctx, cfg, patterns)
	if err != nil {
		return nil, err
	}

	// Build every package first. Code that calls unwrappers of this run fails
	// to type-check until they are generated.
	built := make(map[string]*Unwrapgen, len(pkgs))
	var errs error

	for _, pkg := range pkgs {
		if len(pkg.GoFiles) == 0 {
			continue
		}

		ug, err := New(pkg)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		if err := ug.Build(); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		built[pkg.PkgPath] = ug
	}
	if errs != nil {
		return nil, reorderErrors(errs)
	}

	declares := func(pkgPath, name string) bool {
		ug, ok := built[pkgPath]
		return ok && ug.Declares(name)
	}
	for _, pkg := range pkgs {
		errs = errors.Join(errs, checkUndefined(cfg, pkg, declares))
	}
	if errs != nil {
		return nil, reorderErrors(errs)
	}

	outs := make(map[string][]byte)
	for _, pkg := range pkgs {
		ug, ok := built[pkg.PkgPath]
		if !ok {
			continue
		}

		if cfg.Log != nil {
			ug.Report(cfg.Log)
		}

		code := ug.Generate()
		if len(code) == 0 {
			continue
		}

		outDir := filepath.Dir(pkg.GoFiles[0])
		if rel, err := filepath.Rel(cfg.Dir, outDir); err == nil {
			outDir = rel
		}
		out := filepath.Join(outDir, cfg.OutFile)
		outs[out] = code
	}
	return outs, nil
}

// load loads packages. Type errors of undefined names are left in the
// packages for [checkUndefined]. Any other error fails loading.
func load(ctx context.Context, cfg Config, patterns []string) ([]*packages.Package, error) {
	pkgCfg := &packages.Config{
		Mode:       packages.NeedDeps | packages.NeedFiles | packages.NeedImports | packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Context:    ctx,
		Dir:        cfg.Dir,
		Env:        cfg.Env,
		BuildFlags: []string{"-tags=unwrapgen"},
		Tests:      cfg.Tests,
	}
	if cfg.Tags != "" {
		pkgCfg.BuildFlags[0] += "," + cfg.Tags
	}

	// Load the packages based on the provided patterns.
	pkgs, err := packages.Load(pkgCfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	// Check for errors in the loaded packages.
	var errs error
	for _, pkg := range pkgs {
		for _, err := range pkg.Errors {
			if _, ok := undefinedName(err); ok {
				continue
			}
			errs = errors.Join(errs, relError(cfg, err))
		}
	}
	if errs != nil {
		return nil, errs
	}

	return pkgs, nil
}

// undefinedName returns the name in a type error like "undefined: X" or
// "undefined: pkg.X".
func undefinedName(err packages.Error) (string, bool) {
	if err.Kind != packages.TypeError {
		return "", false
	}
	return strings.CutPrefix(err.Msg, "undefined: ")
}

// checkUndefined reports undefined names in pkg unless declares tells they
// are unwrappers going to be generated. A qualified name is looked up in the
// package imported by the qualifier.
func checkUndefined(cfg Config, pkg *packages.Package, declares func(pkgPath, name string) bool) error {
	var errs error
	for _, err := range pkg.Errors {
		name, ok := undefinedName(err)
		if !ok {
			continue
		}

		path := pkg.PkgPath
		if qual, sel, ok := strings.Cut(name, "."); ok {
			path = importedPath(pkg, qual)
			name = sel
		}

		if path != "" && declares(path, name) {
			continue
		}
		errs = errors.Join(errs, relError(cfg, err))
	}
	return errs
}

// importedPath returns the path of the package imported as qual in pkg. It
// returns "" if there is no such import.
func importedPath(pkg *packages.Package, qual string) string {
	// Renamed imports are in Defs. The others are in Implicits.
	if pkg.TypesInfo != nil {
		for _, obj := range pkg.TypesInfo.Defs {
			if pkgName, ok := obj.(*types.PkgName); ok && pkgName.Name() == qual {
				return pkgName.Imported().Path()
			}
		}
		for _, obj := range pkg.TypesInfo.Implicits {
			if pkgName, ok := obj.(*types.PkgName); ok && pkgName.Name() == qual {
				return pkgName.Imported().Path()
			}
		}
	}

	for _, imp := range pkg.Imports {
		if imp.Name == qual {
			return imp.PkgPath
		}
	}
	return ""
}

// relError makes the position of err relative to the working directory.
func relError(cfg Config, err packages.Error) error {
	if err.Pos == "" {
		return errors.New(err.Msg)
	}

	path, rowcol, _ := strings.Cut(err.Pos, ":")
	if rel, relErr := filepath.Rel(cfg.Dir, path); relErr == nil {
		err.Pos = rel + ":" + rowcol
	}
	return err
}

func reorderErrors(errs error) error {
	if errs == nil {
		return nil
	}

	// Flatten nested errors
	list := []error{errs}
	for i := 0; i < len(list); i++ {
		if u, ok := list[i].(interface{ Unwrap() []error }); ok {
			// errors.Join collapses errors with a single error having Unwrap()
			// []error method. The underlying errors could be retrieved using
			// the Unwrap() method.
			list = append(list, u.Unwrap()...)

			// The underlying errors are appended to the list. So the original
			// error can be removed.
			list[i] = nil
			continue
		}
	}
	list = slices.DeleteFunc(list, func(err error) bool {
		return err == nil
	})

	// Sort errors by message
	sort.Slice(list, func(i, j int) bool {
		return list[i].Error() < list[j].Error()
	})
	return errors.Join(list...)
}
