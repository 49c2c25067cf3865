package parse

import (
	"go/ast"
	"go/types"
)

// tailIdent extracts the rightmost [ast.Ident] from the expression.
//
//	Foo{}
//	^^^
//	Foo{}.Bar
//	      ^^^
//	(*Foo)(nil).Bar.Baz
//	                ^^^
func tailIdent(expr ast.Expr) (*ast.Ident, bool) {
	expr = ast.Unparen(expr)
	switch expr := expr.(type) {
	case *ast.Ident:
		// foo
		// ^^^
		return expr, true
	case *ast.SelectorExpr:
		// foo.bar.baz
		//         ^^^
		return tailIdent(expr.Sel)
	}
	return nil, false
}

// typeArgs returns the type arguments of a generic function call.
//
//	unwrapgen.Union[Shape]()
//	                ^^^^^
//	unwrapgen.Skip(Circle{})
//	               ^^^^^^ (inferred)
func typeArgs(info *types.Info, call *ast.CallExpr) []types.Type {
	fun := ast.Unparen(call.Fun)
	switch x := fun.(type) {
	case *ast.IndexExpr:
		fun = x.X
	case *ast.IndexListExpr:
		fun = x.X
	}

	id, ok := tailIdent(fun)
	if !ok {
		return nil
	}

	inst, ok := info.Instances[id]
	if !ok {
		return nil
	}

	targs := make([]types.Type, inst.TypeArgs.Len())
	for i := range targs {
		targs[i] = inst.TypeArgs.At(i)
	}
	return targs
}
