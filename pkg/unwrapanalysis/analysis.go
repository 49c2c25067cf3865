// Package unwrapanalysis provides an analyzer which reports invalid Unwrapgen
// directives as diagnostics. Run it with the "unwrapgen" build tag, otherwise
// files with directives are not analyzed.
package unwrapanalysis

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/unwrapgen/internal/codefmt"
	unwrapgeninternal "github.com/sublee/unwrapgen/internal/unwrapgen"
)

// Analyzer validates the usage of Unwrapgen in the package. With the -report
// flag, it also reports which variants have unwrappers at each directive.
var Analyzer = &analysis.Analyzer{
	Name: "unwrapgen",
	Doc:  "linter for unwrapgen usage",
	Run:  run,
}

var report bool

func init() {
	Analyzer.Flags.BoolVar(&report, "report", false, "report unwrappers and skipped variants of each union")
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	ug, err := unwrapgeninternal.New(pkg)
	if err != nil {
		return nil, err
	}

	if err := ug.Build(); err != nil {
		// Unroll all errors and report them
		errs := []error{err}
		for len(errs) != 0 {
			err := errs[0]
			errs = errs[1:]

			if codeErr, ok := err.(*codefmt.CodeError); ok {
				pass.Report(analysis.Diagnostic{
					Pos:     codeErr.Pos(),
					End:     codeErr.End(),
					Message: codeErr.Message(),
				})
				continue
			}

			if u, ok := err.(interface{ Unwrap() []error }); ok {
				errs = append(errs, u.Unwrap()...)
			}
		}
		return nil, nil
	}

	if report {
		for pos, note := range ug.Notes() {
			pass.Reportf(pos, "%s", note)
		}
	}

	return nil, nil
}
