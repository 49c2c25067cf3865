// Package synth writes the code of unwrapper functions.
package synth

import (
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/unwrapgen/internal/codefmt"
	"github.com/sublee/unwrapgen/internal/unwrapgen/resolve"
	"github.com/sublee/unwrapgen/internal/unwrapgen/shape"
)

const unwraperrorsPath = "github.com/sublee/unwrapgen/pkg/unwraperrors"

// Conv is an unwrapper function of a variant.
type Conv struct {
	pkg   *packages.Package
	pos   token.Pos
	name  string
	union shape.Union
	conv  resolve.Conversion
}

// New creates a [Conv] which is declared by the directive at pos. name is the
// function name.
func New(pkg *packages.Package, pos token.Pos, name string, union shape.Union, conv resolve.Conversion) Conv {
	return Conv{pkg: pkg, pos: pos, name: name, union: union, conv: conv}
}

func (c Conv) Pkg() *packages.Package { return c.pkg }

// Pos returns the position of the directive.
func (c Conv) Pos() token.Pos { return c.pos }

func (c Conv) Name() string { return c.name }

func (c Conv) Variant() shape.Variant { return c.conv.Variant }

// docWidth is the width of doc comment text without the "// " prefix.
const docWidth = 77

// wrapWords breaks s into lines no wider than width at spaces. A word wider
// than width takes a line by itself.
func wrapWords(s string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(s) {
		if line.Len() != 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() != 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() != 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// WriteDefineCode writes the function declaration. The namespace of w should
// be local to the function.
//
//	func ShapeAsCircle(in Shape) (out float64, err error) {
//		switch in := in.(type) {
//		case Circle:
//			return in.Radius, nil
//		case *Square:
//			return out, unwraperrors.New("Shape", "Circle", "Square")
//		}
//		return out, unwraperrors.NewUnknown("Shape", "Circle", in)
//	}
func (c Conv) WriteDefineCode(w *codefmt.Writer) {
	errs := w.Import(unwraperrorsPath, "unwraperrors")

	varIn := w.Name("in")
	varOut := w.Name("out")
	varErr := w.Name("err")

	expected := c.conv.Variant.Name
	union := c.union.Name

	doc := w.Sprintf("%s unwraps the %t held by the %s variant of %s. It returns *%s.ConversionError if %s holds another variant.",
		c.name, c.conv.Signature, expected, union, errs, varIn)
	for _, line := range wrapWords(doc, docWidth) {
		w.Printf("// %s\n", line)
	}
	w.Printf("func %s(%s %t) (%s %t, %s error) {\n", c.name, varIn, c.union.Type, varOut, c.conv.Signature, varErr)

	if len(c.union.Variants) != 0 {
		w.Printf("switch %s := %s.(type) {\n", varIn, varIn)
		for _, v := range c.union.Variants {
			w.Printf("case %t:\n", v.Type)
			if v.Name == expected {
				if v.Pointer {
					// A nil pointer is a valid union value but holds no payload.
					w.Printf("if %s == nil {\n", varIn)
					w.Printf("return %s, %s.New(%q, %q, %q)\n", varOut, errs, union, expected, "")
					w.Printf("}\n")
				}
				w.Printf("return %s, nil\n", c.payloadExpr(w, varIn))
				continue
			}
			w.Printf("return %s, %s.New(%q, %q, %q)\n", varOut, errs, union, expected, v.Name)
		}
		w.Printf("}\n")
	}

	w.Printf("return %s, %s.NewUnknown(%q, %q, %s)\n", varOut, errs, union, expected, varIn)
	w.Printf("}\n")
}

// payloadExpr returns the expression extracting the payload from the variant
// value in varIn.
func (c Conv) payloadExpr(w *codefmt.Writer, varIn string) string {
	field := c.conv.Field()
	if field.Name != "" {
		return varIn + "." + field.Name
	}

	// Non-struct variants are converted to their underlying type.
	if c.conv.Variant.Pointer {
		return w.Sprintf("%q(*%s)", field.Type, varIn)
	}
	return w.Sprintf("%q(%s)", field.Type, varIn)
}
