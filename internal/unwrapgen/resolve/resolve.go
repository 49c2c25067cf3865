// Package resolve decides which variants of a union can be unwrapped.
//
// A variant can be unwrapped if it holds a single payload and no other variant
// of the same union holds a single payload of an identical type. Types are
// compared by Go type identity. Aliases are resolved and field names are
// ignored.
package resolve

import (
	"fmt"
	"go/token"
	"go/types"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/sublee/unwrapgen/internal/unwrapgen/shape"
)

// Conversion is an unwrappable variant with its payload type.
type Conversion struct {
	Variant   shape.Variant
	Signature types.Type
}

func (c Conversion) Pos() token.Pos { return c.Variant.Pos() }

// Field returns the single payload field.
func (c Conversion) Field() shape.Field { return c.Variant.Payload.Fields[0] }

// Reason explains why a variant cannot be unwrapped.
type Reason int

const (
	ReasonEmpty Reason = iota + 1
	ReasonMultiple
	ReasonAmbiguous
)

func (r Reason) String() string {
	switch r {
	case ReasonEmpty:
		return "no payload"
	case ReasonMultiple:
		return "multiple payloads"
	case ReasonAmbiguous:
		return "ambiguous payload type"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Exclusion is a variant which cannot be unwrapped.
type Exclusion struct {
	Variant shape.Variant
	Reason  Reason

	// SharedWith lists the other variants holding a single payload of the same
	// type. It is set only for [ReasonAmbiguous].
	SharedWith []shape.Variant
}

// Resolution is the result of [Resolve].
type Resolution struct {
	Union shape.Union

	eligible *linkedhashmap.Map // variant name -> Conversion
	excluded []Exclusion
}

// Conversions returns the eligible conversions in declaration order.
func (r *Resolution) Conversions() []Conversion {
	convs := make([]Conversion, 0, r.eligible.Size())
	it := r.eligible.Iterator()
	for it.Next() {
		convs = append(convs, it.Value().(Conversion))
	}
	return convs
}

// Lookup finds the eligible conversion of the variant by name.
func (r *Resolution) Lookup(name string) (Conversion, bool) {
	v, ok := r.eligible.Get(name)
	if !ok {
		return Conversion{}, false
	}
	return v.(Conversion), true
}

// Excluded returns the variants without a conversion in declaration order.
func (r *Resolution) Excluded() []Exclusion {
	return r.excluded
}

// Len returns the number of eligible conversions.
func (r *Resolution) Len() int {
	return r.eligible.Size()
}

// Resolve determines the eligible conversions of the union. It never fails. A
// union without any eligible conversion is valid.
func Resolve(u shape.Union) *Resolution {
	// Group single payload variants by their signatures.
	groups := new(typeutil.Map)
	groups.SetHasher(typeutil.MakeHasher())
	for _, v := range u.Variants {
		if v.Payload.Kind != shape.Single {
			continue
		}
		sig := v.Payload.Signature()
		group, _ := groups.At(sig).([]shape.Variant)
		groups.Set(sig, append(group, v))
	}

	r := &Resolution{Union: u, eligible: linkedhashmap.New()}
	for _, v := range u.Variants {
		switch v.Payload.Kind {
		case shape.Empty:
			r.excluded = append(r.excluded, Exclusion{Variant: v, Reason: ReasonEmpty})
			continue
		case shape.Multiple:
			r.excluded = append(r.excluded, Exclusion{Variant: v, Reason: ReasonMultiple})
			continue
		}

		sig := v.Payload.Signature()
		group := groups.At(sig).([]shape.Variant)
		if len(group) == 1 {
			r.eligible.Put(v.Name, Conversion{Variant: v, Signature: sig})
			continue
		}

		var others []shape.Variant
		for _, other := range group {
			if other.Name != v.Name {
				others = append(others, other)
			}
		}
		r.excluded = append(r.excluded, Exclusion{
			Variant:    v,
			Reason:     ReasonAmbiguous,
			SharedWith: others,
		})
	}
	return r
}
