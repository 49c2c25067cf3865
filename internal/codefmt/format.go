package codefmt

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Formatter formats types, objects, expressions, and positions relative to a
// package. Types declared in the package are not qualified.
type Formatter struct {
	PkgPath   string
	Fset      *token.FileSet
	TypesInfo *types.Info
}

func New(pkg *packages.Package) Formatter {
	if pkg == nil {
		return Formatter{}
	}
	return Formatter{pkg.PkgPath, pkg.Fset, pkg.TypesInfo}
}

func newByPkger(pkger Pkger) Formatter {
	if pkger == nil {
		return New(nil)
	}
	return New(pkger.Pkg())
}

// qf is a [types.Qualifier] for types.ObjectString and types.TypeString.
func (f Formatter) qf(pkg *types.Package) string {
	if pkg.Path() == f.PkgPath {
		return ""
	}
	return pkg.Name()
}

// Type returns a string representation of the given type.
//
// e.g., f.Type([types.Type for time.Duration]) => "time.Duration"
func (f Formatter) Type(typ types.Type) string {
	return types.TypeString(typ, f.qf)
}

// TypeParen returns a string representation of the given type. It wraps the
// string with parentheses if the type cannot be the operand of a conversion as
// is, like "*T", "func()", or "<-chan T".
func (f Formatter) TypeParen(typ types.Type) string {
	s := f.Type(typ)
	for _, prefix := range []string{"*", "func(", "<-"} {
		if strings.HasPrefix(s, prefix) {
			return fmt.Sprintf("(%s)", s)
		}
	}
	return s
}

// Obj returns a code string to refer the given object.
//
// e.g., f.Obj([types.Object for shapes.Circle]) => "shapes.Circle"
func (f Formatter) Obj(obj types.Object) string {
	var b strings.Builder
	if obj.Pkg() != nil {
		if pkg := f.qf(obj.Pkg()); pkg != "" {
			b.WriteString(pkg)
			b.WriteByte('.')
		}
	}
	b.WriteString(obj.Name())
	return b.String()
}

// Expr returns a Go source code representation of the given [ast.Expr].
func (f Formatter) Expr(expr ast.Expr) string {
	var b strings.Builder
	fset := f.Fset
	if fset == nil {
		fset = token.NewFileSet()
	}
	if err := format.Node(&b, fset, expr); err != nil {
		panic(err) // ast.Expr is always supported by go/printer
	}
	return b.String()
}

func (f Formatter) Pos(pos token.Pos) string {
	return FormatPosition(f.Fset.Position(pos))
}

// wd is the cached working directory.
var wd, _ = os.Getwd()

// FormatPosition formats a position as "file:line:column". The file is relative
// to the working directory if possible.
func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if rel, err := filepath.Rel(wd, filename); err == nil {
		filename = rel
	}

	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}
