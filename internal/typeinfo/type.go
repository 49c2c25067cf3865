// Package typeinfo inspects [types.Type] values from the perspective of union
// discovery and payload classification.
package typeinfo

import (
	"go/token"
	"go/types"
	"iter"
)

// Type describes a type information. It holds the parts of [types.Type] that
// Unwrapgen cares about. A named type also has the fields of its underlying
// type set.
type Type struct {
	T types.Type

	Basic     *types.Basic
	Struct    *types.Struct
	Interface *types.Interface
	Pointer   *types.Pointer
	Named     *types.Named

	Elem *Type
}

func (t Type) Type() types.Type { return t.T }
func (t Type) String() string   { return t.T.String() }

func (t Type) IsBasic() bool     { return t.Basic != nil }
func (t Type) IsStruct() bool    { return t.Struct != nil }
func (t Type) IsInterface() bool { return t.Interface != nil }
func (t Type) IsPointer() bool   { return t.Pointer != nil }
func (t Type) IsNamed() bool     { return t.Named != nil }

func (t Type) Identical(u Type) bool { return types.Identical(t.T, u.T) }

// TypeOf inspects the given type and returns a new [Type]. Types other than
// basic, struct, interface, pointer, and named types are described by T only.
func TypeOf(t types.Type) Type {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return Type{T: t, Basic: tt}
	case *types.Struct:
		return Type{T: t, Struct: tt}
	case *types.Interface:
		return Type{T: t, Interface: tt}
	case *types.Pointer:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Pointer: tt, Elem: &elem}
	case *types.Named:
		info := TypeOf(tt.Underlying())
		info.T = t
		info.Named = tt
		return info
	}
	return Type{T: t}
}

// Underlying returns the underlying type of T with aliases resolved.
func (t Type) Underlying() types.Type {
	return types.Unalias(t.T).Underlying()
}

// Pkg returns the package where the type is defined. It returns nil if the type
// is not a named type.
func (t Type) Pkg() *types.Package {
	if !t.IsNamed() {
		return nil
	}
	return t.Named.Obj().Pkg()
}

// Pos returns the position where the type is defined. It returns token.NoPos if
// the type is neither a named type nor a pointer to one.
func (t Type) Pos() token.Pos {
	if t.IsNamed() {
		return t.Named.Obj().Pos()
	}
	if t.IsPointer() {
		return t.Deref().Pos()
	}
	return token.NoPos
}

// Ref returns the pointer type of the type. For type of X, it returns type of
// *X.
func (t Type) Ref() Type {
	return TypeOf(types.NewPointer(t.T))
}

// Deref returns the element type if the type is a pointer. For type of *X, it
// returns type of X. If the type is not a pointer, it returns the type itself.
func (t Type) Deref() Type {
	if t.IsPointer() {
		return (*t.Elem).Deref()
	}
	return t
}

// IsGeneric reports whether the type is generic or has any generic type
// parameters. Even though the type has type parameters, if all type arguments
// are concrete types, it returns false.
func (t Type) IsGeneric() bool {
	return isGeneric(t.T)
}

func isGeneric(t types.Type) bool {
	switch t := types.Unalias(t).(type) {
	case *types.Named:
		if t.TypeParams().Len() == 0 {
			// e.g., Foo
			return false
		}

		targs := t.TypeArgs()
		if targs.Len() == 0 {
			// e.g., Foo[T]
			return true
		}

		for i := 0; i < targs.Len(); i++ {
			if isGeneric(targs.At(i)) {
				// e.g., Foo[int, T]
				return true
			}
		}
	case *types.Pointer:
		return isGeneric(t.Elem())
	case *types.Struct:
		for f := range t.Fields() {
			if isGeneric(f.Type()) {
				return true
			}
		}
	case *types.Signature:
		return t.TypeParams().Len() != 0
	case *types.TypeParam:
		return true
	}
	return false
}

// Fields yields the fields of a struct type except blank fields. It yields
// nothing for other types.
func (t Type) Fields() iter.Seq[*types.Var] {
	return func(yield func(*types.Var) bool) {
		if !t.IsStruct() {
			return
		}
		for f := range t.Struct.Fields() {
			if f.Name() == "_" {
				continue
			}
			if !yield(f) {
				return
			}
		}
	}
}

// Implementer returns the type that implements iface between T and *T. T is
// preferred. It returns false if neither implements iface.
func (t Type) Implementer(iface *types.Interface) (types.Type, bool) {
	if types.Implements(t.T, iface) {
		return t.T, true
	}
	if ptr := types.NewPointer(t.T); types.Implements(ptr, iface) {
		return ptr, true
	}
	return nil, false
}
