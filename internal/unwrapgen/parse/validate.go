package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/sublee/unwrapgen/internal/codefmt"
)

// Validate checks for usages outside expected paths. It collects all errors
// instead of stopping at the first error.
//
// Directives are erased at code generation. Any remaining reference to
// directives or to the unwrapgen package would break the generated code. That
// is what this function checks.
func (p *Parser) Validate(dirs []Directive) error {
	var errs error
	for _, file := range p.Pkg().Syntax {
		errs = errors.Join(errs, p.validateConstraint(file))
		errs = errors.Join(errs, p.validateDirectiveCalls(file))
	}
	errs = errors.Join(errs, p.validateDirectiveVars(dirs))
	return errs
}

// validateConstraint checks if files importing "github.com/sublee/unwrapgen"
// have "//go:build unwrapgen" constraint.
func (p *Parser) validateConstraint(file *ast.File) error {
	var unwrapgenImport *ast.ImportSpec
	for _, imp := range file.Imports {
		if IsUnwrapgenImport(strings.Trim(imp.Path.Value, `"`)) {
			unwrapgenImport = imp
			break
		}
	}
	if unwrapgenImport == nil {
		return nil
	}

	if hasGoBuildUnwrapgen(file) {
		return nil
	}

	return codefmt.Errorf(p, unwrapgenImport, `file must have "//go:build unwrapgen" constraint when importing unwrapgen`)
}

// validateDirectiveCalls checks that every unwrapgen call is either a union
// directive assigned to a package-level variable or an option inlined in one.
func (p *Parser) validateDirectiveCalls(file *ast.File) error {
	if !hasGoBuildUnwrapgen(file) {
		// Reported by validateConstraint if unwrapgen is imported.
		return nil
	}

	var errs error
	astutil.Apply(file, func(c *astutil.Cursor) bool {
		call, ok := c.Node().(*ast.CallExpr)
		if !ok {
			return true
		}

		name, ok := p.GetDirective(call)
		if !ok {
			return true
		}

		if name == "Union" {
			if isPackageLevelValue(file, call) {
				// Options in a union directive are validated by the parser.
				return false
			}
			err := codefmt.Errorf(p, call, "Union must be assigned to package-level variable")
			errs = errors.Join(errs, err)
			return false
		}

		switch c.Parent().(type) {
		case *ast.ValueSpec, *ast.AssignStmt:
			err := codefmt.Errorf(p, call, "cannot assign %s to variable", name)
			errs = errors.Join(errs, err)
		default:
			err := codefmt.Errorf(p, call, "%s must be passed to Union directly", name)
			errs = errors.Join(errs, err)
		}
		return false
	}, nil)
	return errs
}

// validateDirectiveVars checks illegal references to the variables which union
// directives are assigned to. The variables are removed at code generation.
func (p *Parser) validateDirectiveVars(dirs []Directive) error {
	vars := make(map[token.Pos]Directive, len(dirs))
	for _, dir := range dirs {
		if dir.Var.Name != "_" {
			vars[dir.Var.Pos()] = dir
		}
	}
	if len(vars) == 0 {
		return nil
	}

	var errs error
	for id, obj := range p.Pkg().TypesInfo.Uses {
		if obj == nil || obj.Pkg() != p.Pkg().Types {
			continue
		}
		dir, ok := vars[obj.Pos()]
		if !ok {
			continue
		}
		err := codefmt.Errorf(p, id, "cannot use %s outside unwrapgen; removed at code generation", dir.Var.Name)
		errs = errors.Join(errs, err)
	}
	return errs
}

// isPackageLevelValue reports whether the call is a value of a package-level
// variable declaration.
func isPackageLevelValue(file *ast.File, call *ast.CallExpr) bool {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			val, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for _, value := range val.Values {
				if value == call {
					return true
				}
			}
		}
	}
	return false
}
