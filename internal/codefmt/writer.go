package codefmt

import (
	"go/ast"
	"go/token"
	"go/types"
	"io"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"
)

// Writer is a writer for generated code.
type Writer struct {
	w       io.Writer
	pkg     *packages.Package
	fmt     Formatter
	imports map[string]Import
	ns      NS
}

// NewWriter creates a new [Writer]. It does not initialize the
// namespace. To specify a namespace, use [Writer.WithNS].
func NewWriter(w io.Writer, pkg *packages.Package) *Writer {
	return &Writer{
		w:       w,
		pkg:     pkg,
		fmt:     New(pkg),
		imports: make(map[string]Import),
		ns:      nil,
	}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Printf writes a formatted string to the underlying writer using
// [Formatter.Fprintf].
func (w *Writer) Printf(format string, args ...any) (int, error) {
	w.importArgs(args...)
	return w.fmt.Fprintf(w.w, format, args...)
}

// Sprintf creates a formatted string using [Formatter.Sprintf].
func (w *Writer) Sprintf(format string, args ...any) string {
	w.importArgs(args...)
	return w.fmt.Sprintf(format, args...)
}

// Name returns a unique name in the namespace of the writer.
func (w *Writer) Name(name string) string {
	return w.ns.Name(name)
}

// Reserve marks a name as used in the namespace of the writer.
func (w *Writer) Reserve(name string) bool {
	return w.ns.Reserve(name)
}

// WithBuf copies the writer and sets a new write buffer.
func (w *Writer) WithBuf(buf io.Writer) *Writer {
	return &Writer{
		w:       buf,
		pkg:     w.pkg,
		fmt:     w.fmt,
		imports: w.imports,
		ns:      w.ns,
	}
}

// WithNS copies the writer and sets a new namespace.
func (w *Writer) WithNS(ns NS) *Writer {
	return &Writer{
		w:       w.w,
		pkg:     w.pkg,
		fmt:     w.fmt,
		imports: w.imports,
		ns:      ns,
	}
}

type Import struct {
	// The package to import.
	*types.Package

	// HasAlias indicates that the import has an alias.
	HasAlias bool
}

// Imports returns the collected imports. Imports are collected by
// [Writer.Printf], [Writer.Sprintf], and [Writer.Import].
func (w *Writer) Imports() map[string]Import {
	return w.imports
}

// importAST records packages used in the given AST node to import later.
func (w *Writer) importAST(node ast.Node) {
	astutil.Apply(node, func(c *astutil.Cursor) bool {
		if id, ok := c.Node().(*ast.Ident); ok {
			w.importType(w.pkg.TypesInfo.TypeOf(id))
			w.importObj(w.pkg.TypesInfo.ObjectOf(id))
		}
		return true
	}, nil)
}

// importType records packages where the type and its components are defined
// to import later.
func (w *Writer) importType(typ types.Type) {
	switch typ := typ.(type) {
	case *types.Alias:
		w.importObj(typ.Obj())
	case *types.Pointer:
		w.importType(typ.Elem())
	case *types.Slice:
		w.importType(typ.Elem())
	case *types.Array:
		w.importType(typ.Elem())
	case *types.Chan:
		w.importType(typ.Elem())
	case *types.Map:
		w.importType(typ.Key())
		w.importType(typ.Elem())
	case *types.Signature:
		w.importTuple(typ.Params())
		w.importTuple(typ.Results())
	case *types.Struct:
		for f := range typ.Fields() {
			w.importType(f.Type())
		}
	case *types.Named:
		w.importObj(typ.Obj())
		for arg := range typ.TypeArgs().Types() {
			w.importType(arg)
		}
	}
}

func (w *Writer) importTuple(tuple *types.Tuple) {
	for v := range tuple.Variables() {
		w.importType(v.Type())
	}
}

// importObj records a package where the object is defined to import later.
// Built-in objects and objects of the target package need no import.
func (w *Writer) importObj(obj types.Object) {
	if obj == nil || obj.Pkg() == nil || obj.Pkg().Path() == w.pkg.PkgPath {
		return
	}
	w.record(obj.Pkg(), obj.Pkg().Name())
}

// Import adds an import for the package with the given path and alias. It
// returns the name of the imported package. The name might be different if it
// has tried to resolve name conflicts.
//
//	errs := w.Import("github.com/sublee/unwrapgen/pkg/unwraperrors", "")
//	w.Printf("return out, %s.New(%q, %q, %q)", errs, union, expected, actual)
//
// When calling it, the package to import is recorded. Call [Imports] to
// retrieve them.
func (w *Writer) Import(path, name string) string {
	var pkg *types.Package
	for _, imp := range w.pkg.Types.Imports() {
		if imp.Path() == path {
			pkg = imp
			break
		}
	}
	if pkg == nil {
		// Not imported by the target package. name is also the package name.
		pkg = types.NewPackage(path, name)
	}
	if name == "" {
		name = pkg.Name()
	}
	return w.record(pkg, name)
}

// record finds a free name for the package starting from name and records the
// import. A package is recorded once per path. The package is renamed to the
// chosen name so that formatted types refer to it correctly.
func (w *Writer) record(pkg *types.Package, name string) string {
	for _, imp := range w.imports {
		if imp.Path() == pkg.Path() {
			name = imp.Name()
			pkg.SetName(name)
			return name
		}
	}

	orig := pkg.Name()
	for name := range DisambiguateName(name) {
		if _, ok := w.imports[name]; ok {
			continue
		}
		if w.pkg.Types.Scope().Lookup(name) != nil {
			continue
		}
		w.imports[name] = Import{Package: pkg, HasAlias: name != orig}
		pkg.SetName(name)
		return name
	}
	panic("unreachable")
}

func (w *Writer) importArgs(args ...any) {
	for _, arg := range args {
		switch arg := arg.(type) {
		case ast.Expr:
			w.importAST(arg)
		case types.Object:
			w.importObj(arg)
		case types.Type:
			w.importType(arg)

		case Exprer:
			w.importAST(arg.Expr())
		case Objecter:
			w.importObj(arg.Object())
		case Typer:
			w.importType(arg.Type())
		}
	}
}

// RewriteImports modifies the given AST node to rewrite imported package names
// to ensure there is no name conflict.
func RewriteImports[T ast.Node](w *Writer, node T) T {
	return astutil.Apply(node, func(c *astutil.Cursor) bool {
		switch node := c.Node().(type) {

		// Unqualified identifiers, such as "Println" without the "fmt." prefix
		case *ast.Ident:
			obj := w.pkg.TypesInfo.ObjectOf(node)
			if obj == nil {
				return false
			}

			pkg := obj.Pkg()
			if pkg == nil || pkg.Path() == w.pkg.PkgPath || obj.Parent() != pkg.Scope() {
				return true
			}

			c.Replace(w.qualify(pkg, node.NamePos, node.Name))
			return false

		// Qualified identifiers, such as "fmt.Println"
		case *ast.SelectorExpr:
			pkgIdent, ok := node.X.(*ast.Ident)
			if !ok {
				return true
			}

			pkgName, ok := w.pkg.TypesInfo.ObjectOf(pkgIdent).(*types.PkgName)
			if !ok {
				// The qualifier is not a package name.
				return true
			}

			c.Replace(w.qualify(pkgName.Imported(), pkgIdent.NamePos, node.Sel.Name))
			return false
		}

		// Continue traversing the AST.
		return true
	}, nil).(T)
}

// qualify builds "pkg.name" with the recorded name of pkg.
func (w *Writer) qualify(pkg *types.Package, pos token.Pos, name string) *ast.SelectorExpr {
	pkgName := w.Import(pkg.Path(), pkg.Name())
	return &ast.SelectorExpr{
		X:   &ast.Ident{NamePos: pos, Name: pkgName},
		Sel: &ast.Ident{NamePos: pos + token.Pos(len(pkgName)+1), Name: name},
	}
}
