package parse

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"
)

func IsUnwrapgenImport(path string) bool {
	// Source code from "wire/internal/wire/parse.go".
	const vendorPart = "vendor/"
	if i := strings.LastIndex(path, vendorPart); i != -1 && (i == 0 || path[i-1] == '/') {
		path = path[i+len(vendorPart):]
	}
	return path == "github.com/sublee/unwrapgen"
}

// Parser parses an AST of the underlying package to collect unwrapgen
// directives.
type Parser struct{ pkg *packages.Package }

func (p *Parser) Pkg() *packages.Package { return p.pkg }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("need pkg types")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("need pkg types info")
	}
	return &Parser{pkg: pkg}, nil
}

// GetDirective returns the name of the unwrapgen directive function if the
// call expression is an unwrapgen directive. Otherwise, it returns false.
func (p *Parser) GetDirective(call *ast.CallExpr) (string, bool) {
	callee := typeutil.Callee(p.Pkg().TypesInfo, call)
	if callee == nil {
		return "", false
	}

	pkg := callee.Pkg()
	if pkg == nil {
		// Built-in functions like panic()
		return "", false
	}

	if !IsUnwrapgenImport(pkg.Path()) {
		return "", false
	}

	return callee.Name(), true
}

// IsDirective checks if the call expression is an unwrapgen directive with the
// given name. If name is empty, it checks if the call is any unwrapgen
// directive.
func (p *Parser) IsDirective(call *ast.CallExpr, name string) bool {
	calleeName, ok := p.GetDirective(call)
	if !ok {
		return false
	}

	if name == "" {
		return true
	}

	return calleeName == name
}

// UnwrapgenGoFiles returns the Go files that have a "//go:build unwrapgen"
// constraint.
func (p *Parser) UnwrapgenGoFiles() []*ast.File {
	var files []*ast.File
	for _, file := range p.Pkg().Syntax {
		if hasGoBuildUnwrapgen(file) {
			files = append(files, file)
		}
	}
	return files
}

// hasGoBuildUnwrapgen checks if the file has a "//go:build unwrapgen"
// constraint. The constraint may be combined with other tags, but "unwrapgen"
// must not be negated.
func hasGoBuildUnwrapgen(file *ast.File) bool {
	for _, group := range file.Comments {
		if group.Pos() > file.Package {
			// Build constraints must appear before the package clause.
			break
		}
		for _, comment := range group.List {
			if !constraint.IsGoBuild(comment.Text) {
				continue
			}
			expr, err := constraint.Parse(comment.Text)
			if err != nil {
				continue
			}
			if requiresTag(expr, "unwrapgen", false) {
				return true
			}
		}
	}
	return false
}

// requiresTag reports whether the tag appears in the constraint expression
// without negation.
func requiresTag(expr constraint.Expr, tag string, negated bool) bool {
	switch expr := expr.(type) {
	case *constraint.TagExpr:
		return expr.Tag == tag && !negated
	case *constraint.NotExpr:
		return requiresTag(expr.X, tag, !negated)
	case *constraint.AndExpr:
		return requiresTag(expr.X, tag, negated) || requiresTag(expr.Y, tag, negated)
	case *constraint.OrExpr:
		return requiresTag(expr.X, tag, negated) || requiresTag(expr.Y, tag, negated)
	}
	return false
}
