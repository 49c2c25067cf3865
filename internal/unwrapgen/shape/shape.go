// Package shape classifies the payloads of union variants.
package shape

import (
	"cmp"
	"go/token"
	"go/types"
	"slices"

	"github.com/sublee/unwrapgen/internal/typeinfo"
)

// Kind is the number of payload values a variant holds.
type Kind int

const (
	Empty Kind = iota
	Single
	Multiple
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Single:
		return "single"
	case Multiple:
		return "multiple"
	}
	return "unknown"
}

// Field is a payload value of a variant. Name is the struct field name. It is
// empty for the payload of a non-struct variant, which is the variant value
// itself converted to its underlying type.
type Field struct {
	Name     string
	Type     types.Type
	Embedded bool
}

// Payload is the shape of the payload values of a variant. Fields are in
// declaration order.
type Payload struct {
	Kind   Kind
	Fields []Field
}

// Signature returns the type of the only payload value. It returns nil unless
// the payload is [Single].
func (p Payload) Signature() types.Type {
	if p.Kind != Single {
		return nil
	}
	return p.Fields[0].Type
}

// ClassifyFields determines the kind of payload by the number of fields.
func ClassifyFields(fields []Field) Payload {
	switch len(fields) {
	case 0:
		return Payload{Kind: Empty}
	case 1:
		return Payload{Kind: Single, Fields: fields}
	default:
		return Payload{Kind: Multiple, Fields: fields}
	}
}

// Classify classifies the payload of the variant type t. t may be a named type
// or a pointer to a named type. Fields of a struct are the payload except
// blank fields. Any other type holds a single payload of its underlying type.
func Classify(t types.Type) Payload {
	ti := typeinfo.TypeOf(t).Deref()

	if !ti.IsStruct() {
		return ClassifyFields([]Field{{Type: ti.Underlying()}})
	}

	var fields []Field
	for f := range ti.Fields() {
		fields = append(fields, Field{
			Name:     f.Name(),
			Type:     f.Type(),
			Embedded: f.Embedded(),
		})
	}
	return ClassifyFields(fields)
}

// Variant is a named type implementing a union.
type Variant struct {
	// Name is the name of the named type.
	Name string

	// Type is the type stored in the union, T or *T.
	Type types.Type

	// Named is the named type T even if the variant is *T.
	Named *types.Named

	// Pointer is true if only *T implements the union.
	Pointer bool

	Payload Payload
}

// Pos returns the position where the named type is declared.
func (v Variant) Pos() token.Pos { return v.Named.Obj().Pos() }

func (v Variant) Exported() bool { return v.Named.Obj().Exported() }

// Union is an interface type with its variants in declaration order.
type Union struct {
	Name      string
	Type      *types.Named
	Interface *types.Interface
	Variants  []Variant
}

func (u Union) Pos() token.Pos { return u.Type.Obj().Pos() }

// Variant returns the variant by its name.
func (u Union) Variant(name string) (Variant, bool) {
	for _, v := range u.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Discover collects the variants of a union from the package where the union
// is declared. A variant is a non-generic named type which implements the
// union by value, or only by pointer. Interfaces and aliases are not variants.
//
// The union must be a named interface type.
func Discover(union *types.Named) Union {
	iface, ok := union.Underlying().(*types.Interface)
	if !ok {
		panic("union must be an interface")
	}

	u := Union{
		Name:      union.Obj().Name(),
		Type:      union,
		Interface: iface,
	}

	pkg := union.Obj().Pkg()
	if pkg == nil {
		return u
	}

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || obj.IsAlias() {
			continue
		}

		t := typeinfo.TypeOf(obj.Type())
		if !t.IsNamed() || t.IsInterface() || t.IsGeneric() {
			continue
		}

		impl, ok := t.Implementer(iface)
		if !ok {
			continue
		}
		_, ptr := impl.(*types.Pointer)
		u.Variants = append(u.Variants, Variant{
			Name:    name,
			Type:    impl,
			Named:   t.Named,
			Pointer: ptr,
			Payload: Classify(t.Named),
		})
	}

	slices.SortStableFunc(u.Variants, func(a, b Variant) int {
		return cmp.Compare(a.Pos(), b.Pos())
	})
	return u
}
