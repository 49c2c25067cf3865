package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"go/types"
	"iter"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/unwrapgen/internal/codefmt"
	"github.com/sublee/unwrapgen/internal/typeinfo"
	"github.com/sublee/unwrapgen/internal/unwrapgen/shape"
)

// Directive is an unwrapgen.Union call assigned to a package-level variable.
type Directive struct {
	Union  shape.Union
	Config Config

	// Prefix is the prefix of the unwrapper function names. It is the name of
	// the variable, or the union name followed by "As" if the variable is
	// blank.
	Prefix string

	// Var is the variable which the directive is assigned to.
	Var *ast.Ident

	pkg *packages.Package
	pos token.Pos
}

// Pkg returns the package where the directive is called. Directive implements
// [codefmt.Pkger] by this method.
func (d Directive) Pkg() *packages.Package { return d.pkg }

// Pos returns the position of the directive call. Directive implements
// [codefmt.Poser] by this method.
func (d Directive) Pos() token.Pos { return d.pos }

// ParseDirectives parses all [Directive]s in the files constrained by
// "//go:build unwrapgen". Directives are ordered by their positions.
func (p *Parser) ParseDirectives() ([]Directive, error) {
	var errs error
	var dirs []Directive
	seen := make(map[*types.TypeName]Directive)

	for _, file := range p.UnwrapgenGoFiles() {
		for dir, err := range p.parseDirectivesInFile(file) {
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}

			obj := dir.Union.Type.Obj()
			if prev, ok := seen[obj]; ok {
				err := codefmt.Errorf(p, dir, `duplicate directive for union %t
	previous declaration at %b`, dir.Union.Type, prev)
				errs = errors.Join(errs, err)
				continue
			}
			seen[obj] = dir

			dirs = append(dirs, dir)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return dirs, nil
}

// parseDirectivesInFile parses and yields [Directive]s in the given file.
func (p *Parser) parseDirectivesInFile(file *ast.File) iter.Seq2[Directive, error] {
	return func(yield func(Directive, error) bool) {
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

				if len(val.Names) != len(val.Values) {
					// The directive returns exactly one value. Such an
					// assignment is rejected by the type checker:
					// var a, b = unwrapgen.Union[Shape]()
					continue
				}

				for i, value := range val.Values {
					call, ok := value.(*ast.CallExpr)
					if !ok || !p.IsDirective(call, "Union") {
						continue
					}

					dir, err := p.parseDirective(val.Names[i], call)
					if !yield(dir, err) {
						return
					}
				}
			}
		}
	}
}

// parseDirective parses a [Directive] from the given AST nodes.
func (p *Parser) parseDirective(id *ast.Ident, call *ast.CallExpr) (Directive, error) {
	dir := Directive{
		Var: id,
		pkg: p.Pkg(),
		pos: call.Pos(),
	}

	union, err := p.parseUnion(call)
	if err != nil {
		return Directive{}, err
	}
	dir.Union = union

	dir.Prefix = id.Name
	if id.Name == "_" {
		dir.Prefix = union.Name + "As"
	}

	dir.Config = newConfig()
	if err := p.ParseConfig(&dir.Config, call, union); err != nil {
		return Directive{}, err
	}

	return dir, nil
}

// parseUnion parses the type argument of unwrapgen.Union and discovers its
// variants.
func (p *Parser) parseUnion(call *ast.CallExpr) (shape.Union, error) {
	targs := typeArgs(p.Pkg().TypesInfo, call)
	if len(targs) != 1 {
		return shape.Union{}, codefmt.Errorf(p, call, "cannot determine union type") // unreachable
	}

	t := typeinfo.TypeOf(targs[0])
	if !t.IsInterface() {
		return shape.Union{}, codefmt.Errorf(p, call, "%t is not interface; union must be interface", t.T)
	}
	if !t.IsNamed() {
		return shape.Union{}, codefmt.Errorf(p, call, "%t is not named; union must be named interface", t.T)
	}
	if t.IsGeneric() || t.Named.TypeArgs().Len() != 0 {
		return shape.Union{}, codefmt.Errorf(p, call, "%t is generic; union must not have type parameters", t.T)
	}
	if t.Interface.NumMethods() == 0 {
		return shape.Union{}, codefmt.Errorf(p, call, "%t has no methods; union requires at least one", t.T)
	}
	if t.Pkg() != p.Pkg().Types {
		return shape.Union{}, codefmt.Errorf(p, call, "%t is declared in another package; union must be declared in package %s", t.T, p.Pkg().Name)
	}

	return shape.Discover(t.Named), nil
}
