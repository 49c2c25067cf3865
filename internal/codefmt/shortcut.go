package codefmt

import (
	"go/token"
	"io"

	"golang.org/x/tools/go/packages"
)

// Sprintf formats with the [Formatter] of the package held by pkger.
func Sprintf(pkger Pkger, format string, args ...any) string {
	return newByPkger(pkger).Sprintf(format, args...)
}

// Fprintf writes with the [Formatter] of the package held by pkger. Report
// lines of the driver go through it.
func Fprintf(pkger Pkger, w io.Writer, format string, args ...any) (int, error) {
	return newByPkger(pkger).Fprintf(w, format, args...)
}

// Errorf returns a [CodeError] at poser. Parsers and the driver implement
// [Pkger], so they pass themselves:
//
//	codefmt.Errorf(p, call, "%t is not interface; union must be interface", t)
func Errorf(pkger Pkger, poser Poser, format string, args ...any) error {
	return newByPkger(pkger).Errorf(poser, format, args...)
}

type pkger struct{ pkg *packages.Package }

func (p pkger) Pkg() *packages.Package { return p.pkg }

// Pkg wraps a package as a [Pkger].
func Pkg(pkg *packages.Package) Pkger { return pkger{pkg} }

type poser struct{ pos token.Pos }

func (p poser) Pos() token.Pos { return p.pos }

// Pos wraps a bare position, such as the ellipsis of a call, as a [Poser].
func Pos(pos token.Pos) Poser { return poser{pos} }
