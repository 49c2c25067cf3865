package parse

import (
	"errors"
	"go/ast"
	"go/types"
	"slices"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/sublee/unwrapgen/internal/codefmt"
	"github.com/sublee/unwrapgen/internal/lcs"
	"github.com/sublee/unwrapgen/internal/unwrapgen/shape"
)

// Config holds the options of a union directive.
type Config struct {
	// Renamers rename all variant names at once, in the order of options.
	Renamers []func([]string) []string

	// Skips holds names of the variants whose unwrappers are suppressed, in
	// the order of options.
	Skips *linkedhashset.Set
}

func newConfig() Config {
	return Config{Skips: linkedhashset.New()}
}

// Rename applies the rename options to the variant names. The result has the
// same length as names.
func (cfg Config) Rename(names []string) []string {
	names = slices.Clone(names)
	for _, rename := range cfg.Renamers {
		names = rename(names)
	}
	return names
}

// Skipped reports whether the variant is skipped by Skip options.
func (cfg Config) Skipped(name string) bool {
	return cfg.Skips != nil && cfg.Skips.Contains(name)
}

// ParseConfig parses options passed to the union directive.
func (p *Parser) ParseConfig(cfg *Config, call *ast.CallExpr, union shape.Union) error {
	if call.Ellipsis.IsValid() {
		return codefmt.Errorf(p, codefmt.Pos(call.Ellipsis), "options must be inlined, not passed with ...")
	}

	var errs error
	for _, arg := range call.Args {
		if _, ok := tailIdent(arg); ok {
			err := codefmt.Errorf(p, arg, "option must be inlined, not assigned to variable")
			errs = errors.Join(errs, err)
			continue
		}

		call, ok := ast.Unparen(arg).(*ast.CallExpr)
		if !ok {
			// Probably, this case is unreachable because every option type is
			// unexported. The only way to create a valid option is to call a
			// option directive function, or assign it to a variable. The latter
			// one is caught above.
			err := codefmt.Errorf(p, arg, "cannot use %c as option", arg)
			errs = errors.Join(errs, err)
			continue
		}

		if err := p.ParseOption(cfg, call, union); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

func (p *Parser) ParseOption(cfg *Config, call *ast.CallExpr, union shape.Union) error {
	callee := typeutil.Callee(p.Pkg().TypesInfo, call)
	if callee == nil || callee.Pkg() == nil || !IsUnwrapgenImport(callee.Pkg().Path()) {
		return codefmt.Errorf(p, call, "option must be unwrapgen directive")
	}

	name := callee.Name()
	switch name {
	case "RenameReplace":
		return p.ParseOptionRenameReplace(cfg, call)
	case "RenameTrimCommonWordPrefix":
		return p.ParseOptionRenameCommon(cfg, call, lcs.TrimCommonWordPrefix)
	case "RenameTrimCommonWordSuffix":
		return p.ParseOptionRenameCommon(cfg, call, lcs.TrimCommonWordSuffix)
	case "Skip":
		return p.ParseOptionSkip(cfg, call, union)
	}

	return codefmt.Errorf(p, call.Fun, "%s is not supported option", name)
}

func (p *Parser) ParseOptionRenameReplace(cfg *Config, call *ast.CallExpr) error {
	exprOld, exprNew, err := needArgs2(p, call)
	if err != nil {
		return err
	}

	var errs error
	oldStr, err := parseStringArg(p, exprOld)
	errs = errors.Join(errs, err)
	newStr, err := parseStringArg(p, exprNew)
	errs = errors.Join(errs, err)
	if errs != nil {
		return errs
	}

	if oldStr == "" {
		return codefmt.Errorf(p, exprOld, "cannot replace empty string")
	}

	cfg.Renamers = append(cfg.Renamers, func(names []string) []string {
		out := make([]string, len(names))
		for i, name := range names {
			out[i] = strings.ReplaceAll(name, oldStr, newStr)
		}
		return out
	})
	return nil
}

func (p *Parser) ParseOptionRenameCommon(cfg *Config, call *ast.CallExpr, trim func([]string) []string) error {
	if err := needArgs0(p, call); err != nil {
		return err
	}

	cfg.Renamers = append(cfg.Renamers, func(names []string) []string {
		if len(names) < 2 {
			// A single name is the common part of itself. Trimming it would
			// leave nothing.
			return names
		}
		return trim(names)
	})
	return nil
}

func (p *Parser) ParseOptionSkip(cfg *Config, call *ast.CallExpr, union shape.Union) error {
	expr, err := needArgs1(p, call)
	if err != nil {
		return err
	}

	t := p.Pkg().TypesInfo.TypeOf(expr)
	if t == nil {
		return codefmt.Errorf(p, expr, "cannot use %c as variant sample", expr)
	}

	for _, v := range union.Variants {
		if types.Identical(v.Type, t) {
			cfg.Skips.Add(v.Name)
			return nil
		}
	}

	// Help users who forgot or added a pointer.
	for _, v := range union.Variants {
		if types.Identical(v.Named, t) || types.Identical(types.NewPointer(v.Named), t) {
			return codefmt.Errorf(p, expr, "%t is not a variant of %t; use %t", t, union.Type, v.Type)
		}
	}
	return codefmt.Errorf(p, expr, "%t is not a variant of %t", t, union.Type)
}
