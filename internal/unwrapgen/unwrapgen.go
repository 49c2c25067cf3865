package unwrapgeninternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/printer"
	"go/token"
	"io"
	"iter"
	"maps"
	"path/filepath"
	"slices"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/unwrapgen/internal/codefmt"
	"github.com/sublee/unwrapgen/internal/unwrapgen/parse"
	"github.com/sublee/unwrapgen/internal/unwrapgen/resolve"
	"github.com/sublee/unwrapgen/internal/unwrapgen/synth"
)

// Unwrapgen generates unwrapper code for the target package. Call [Build] and
// then [Generate] to get the generated code. All potential errors are returned
// by [Build]. Once [Build] succeeds, [Generate] never fails.
type Unwrapgen struct {
	p   *parse.Parser
	ns  codefmt.NS
	buf *bytes.Buffer
	w   *codefmt.Writer

	dirs  []parse.Directive
	res   map[token.Pos]*resolve.Resolution
	convs []synth.Conv
}

// New creates a new [Unwrapgen] for the given package. If the package does
// not satisfy the requirements, an error is returned. The package must have its
// Syntax, Types and TypesInfo. Its errors are not checked here. [Main] allows
// only undefined names of unwrappers going to be generated.
func New(pkg *packages.Package) (*Unwrapgen, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	return &Unwrapgen{
		p:   parser,
		ns:  codefmt.NewNS(pkg.Types.Scope()),
		buf: &buf,
		w:   codefmt.NewWriter(&buf, pkg),
		res: make(map[token.Pos]*resolve.Resolution),
	}, nil
}

// Build prepares code generation by parsing directives and resolving
// unwrappers. All potential errors are returned by this method. It must be
// called before [Generate].
func (ug *Unwrapgen) Build() error {
	dirs, errs := ug.p.ParseDirectives()
	errs = errors.Join(errs, ug.p.Validate(dirs))
	if errs != nil {
		return errs
	}
	ug.dirs = dirs

	// Directive variables are erased at code generation, so unwrappers may
	// reuse their names.
	erased := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		erased[dir.Var.Name] = true
	}

	scope := ug.p.Pkg().Types.Scope()
	declared := make(map[string]synth.Conv)

	for _, dir := range dirs {
		r := resolve.Resolve(dir.Union)
		ug.res[dir.Pos()] = r

		names := make([]string, len(dir.Union.Variants))
		for i, v := range dir.Union.Variants {
			names[i] = v.Name
		}
		renamed := dir.Config.Rename(names)

		for i, v := range dir.Union.Variants {
			conv, ok := r.Lookup(v.Name)
			if !ok || dir.Config.Skipped(v.Name) {
				continue
			}

			if renamed[i] == "" {
				err := codefmt.Errorf(ug.p, dir, "cannot name unwrapper of %s; renamed to empty string", v.Name)
				errs = errors.Join(errs, err)
				continue
			}

			name := dir.Prefix + renamed[i]
			if !token.IsIdentifier(name) {
				err := codefmt.Errorf(ug.p, dir, "cannot name unwrapper of %s; %q is not identifier", v.Name, name)
				errs = errors.Join(errs, err)
				continue
			}

			if prev, ok := declared[name]; ok {
				err := codefmt.Errorf(ug.p, dir, `duplicate unwrapper %s for %s
	previous unwrapper for %s at %b`, name, v.Name, prev.Variant().Name, prev)
				errs = errors.Join(errs, err)
				continue
			}

			if obj := scope.Lookup(name); obj != nil && !erased[name] {
				err := codefmt.Errorf(ug.p, dir, `unwrapper %s for %s conflicts with %o
	previous declaration at %b`, name, v.Name, obj, obj)
				errs = errors.Join(errs, err)
				continue
			}

			c := synth.New(ug.p.Pkg(), dir.Pos(), name, dir.Union, conv)
			declared[name] = c
			ug.convs = append(ug.convs, c)
		}
	}
	if errs != nil {
		return errs
	}

	// Reserve unwrapper names against conflicts with local names.
	for name := range declared {
		ug.ns.Reserve(name)
	}
	return nil
}

// Declares reports whether [Build] has declared an unwrapper of the name.
func (ug *Unwrapgen) Declares(name string) bool {
	for _, c := range ug.convs {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// Report writes which variants have unwrappers and why the others do not, in
// the order of variants. It must be called after [Build] succeeds.
//
//	Shape: Circle -> float64 (ShapeAsCircle)
//	Shape: Square skipped (multiple payloads)
func (ug *Unwrapgen) Report(w io.Writer) {
	for _, note := range ug.Notes() {
		io.WriteString(w, note+"\n")
	}
}

// Notes yields the lines of [Report] with the position of the directive each
// line is about.
func (ug *Unwrapgen) Notes() iter.Seq2[token.Pos, string] {
	return func(yield func(token.Pos, string) bool) {
		for _, dir := range ug.dirs {
			for _, note := range ug.notes(dir) {
				if !yield(dir.Pos(), note) {
					return
				}
			}
		}
	}
}

func (ug *Unwrapgen) notes(dir parse.Directive) []string {
	r := ug.res[dir.Pos()]
	union := dir.Union.Name

	excluded := make(map[string]resolve.Exclusion, len(r.Excluded()))
	for _, ex := range r.Excluded() {
		excluded[ex.Variant.Name] = ex
	}

	var notes []string
	for _, v := range dir.Union.Variants {
		if conv, ok := r.Lookup(v.Name); ok {
			name := ug.nameOf(dir, v.Name)
			if name == "" {
				notes = append(notes, codefmt.Sprintf(ug.p, "%s: %s skipped (Skip option)", union, v.Name))
				continue
			}
			notes = append(notes, codefmt.Sprintf(ug.p, "%s: %s -> %t (%s)", union, v.Name, conv.Signature, name))
			continue
		}

		ex, ok := excluded[v.Name]
		if !ok {
			continue
		}
		if ex.Reason != resolve.ReasonAmbiguous {
			notes = append(notes, codefmt.Sprintf(ug.p, "%s: %s skipped (%s)", union, v.Name, ex.Reason))
			continue
		}

		others := make([]string, len(ex.SharedWith))
		for i, o := range ex.SharedWith {
			others[i] = o.Name
		}
		notes = append(notes, codefmt.Sprintf(ug.p, "%s: %s skipped (%s %t shared with %v)", union, v.Name, ex.Reason, v.Payload.Signature(), others))
	}
	return notes
}

// nameOf returns the unwrapper name of the variant, or "" if it was skipped.
func (ug *Unwrapgen) nameOf(dir parse.Directive, variant string) string {
	for _, c := range ug.convs {
		if c.Pos() == dir.Pos() && c.Variant().Name == variant {
			return c.Name()
		}
	}
	return ""
}

// Generate generates unwrapper code for the package. It must be called after
// [Build] succeeds. It returns nil if the package has no union directives.
func (ug *Unwrapgen) Generate() []byte {
	if len(ug.dirs) == 0 {
		return nil
	}
	ug.writeConvCode()
	ug.mergeCode()
	return ug.frameCode()
}

// writeConvCode writes function declaration code for unwrappers.
func (ug *Unwrapgen) writeConvCode() {
	if len(ug.convs) == 0 {
		return
	}

	ug.w.Printf("// unwrapgen: unwrappers\n\n")

	convs := slices.Clone(ug.convs)
	slices.SortStableFunc(convs, func(a, b synth.Conv) int {
		if a.Pos() < b.Pos() {
			return -1
		}
		if a.Pos() > b.Pos() {
			return 1
		}
		return 0
	})

	for _, conv := range convs {
		local := maps.Clone(ug.ns)
		w := ug.w.WithNS(local)
		conv.WriteDefineCode(w)
		ug.w.Printf("\n")
	}
}

// mergeCode copies non-unwrapgen code from the source files that tagged with
// "//go:build unwrapgen". It erases union directives to remove any references
// to the unwrapgen package.
func (ug *Unwrapgen) mergeCode() {
	dirs := make(map[token.Pos]bool, len(ug.dirs))
	for _, dir := range ug.dirs {
		dirs[dir.Pos()] = true
	}

	for _, file := range ug.p.UnwrapgenGoFiles() {
		name := filepath.Base(ug.p.Pkg().Fset.File(file.Pos()).Name())
		first := true

		for _, decl := range file.Decls {
			if gen, ok := decl.(*ast.GenDecl); ok {
				if gen.Tok == token.IMPORT {
					// Skip import declarations in files. Required imports will
					// be collected from their usage, and then rewritten as an
					// import declaration group.
					continue
				}
			}

			// Erase union directives
			decl = astutil.Apply(decl, func(c *astutil.Cursor) bool {
				spec, ok := c.Node().(*ast.ValueSpec)
				if !ok {
					return true
				}

				// Find non-unwrapgen values
				var names []*ast.Ident
				var values []ast.Expr
				for i := range spec.Names {
					if i >= len(spec.Values) {
						// Consts may omit values
						names = append(names, spec.Names[i])
						continue
					}

					if !dirs[spec.Values[i].Pos()] {
						names = append(names, spec.Names[i])
						values = append(values, spec.Values[i])
					}
				}

				if len(names) == 0 {
					// Input:  var ( a = unwrapgen.Union[T]() )
					// Output: var ()
					c.Delete()
				} else if len(names) != len(spec.Names) {
					// Input:  var ( a, b = unwrapgen.Union[T](), 42 )
					// Output: var ( b = 42 )
					c.Replace(&ast.ValueSpec{
						Doc:     spec.Doc,
						Names:   names,
						Type:    spec.Type,
						Values:  values,
						Comment: spec.Comment,
					})
				}

				return false
			}, nil).(ast.Decl)

			// Skip empty declarations
			if gen, ok := decl.(*ast.GenDecl); ok {
				if len(gen.Specs) == 0 {
					continue
				}
			}

			if first {
				fmt.Fprintf(ug.buf, "// %s:\n\n", name)
				first = false
			}

			// Prevent import name conflicts when merging multiple files into one
			decl = codefmt.RewriteImports(ug.w, decl)

			// Write rewritten declaration code
			printer.Fprint(ug.buf, ug.p.Pkg().Fset, &printer.CommentedNode{
				Node:     decl,
				Comments: file.Comments,
			})
			fmt.Fprintf(ug.buf, "\n\n")
		}
	}
}

func (ug *Unwrapgen) frameCode() []byte {
	// Prepend header code
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !unwrapgen\n\n")
	fmt.Fprintf(&buf, "// Code generated by github.com/sublee/unwrapgen%s. DO NOT EDIT.\n\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n", ug.p.Pkg().Name)

	imports := ug.w.Imports()
	if len(imports) != 0 {
		fmt.Fprintf(&buf, "import (\n")
		for _, alias := range slices.Sorted(maps.Keys(imports)) {
			imp := imports[alias]
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", alias, imp.Path())
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path())
			}
		}
		fmt.Fprintf(&buf, ")\n")
	}

	_, _ = io.Copy(&buf, ug.buf)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
