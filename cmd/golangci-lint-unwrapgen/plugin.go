// golangcilintunwrapgen package provides a plugin for golangci-lint to
// integrate the Unwrapgen analyzer. To build a custom golangci-lint binary with
// this plugin, use the following command at this package's directory:
//
//	golangci-lint custom
//
// Now you will have a golangci-lint-unwrapgen binary that you can use to lint
// your Go code with the Unwrapgen analyzer. Pass "--build-tags unwrapgen" so
// that files with directives are analyzed.
//
// The plugin accepts these settings:
//
//	linters-settings:
//	  custom:
//	    unwrapgen:
//	      type: module
//	      settings:
//	        report: true # list unwrappers and skipped variants of each union
package golangcilintunwrapgen

import (
	"strconv"

	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/sublee/unwrapgen/pkg/unwrapanalysis"
)

func init() {
	register.Plugin("unwrapgen", New)
}

// Settings is the plugin settings in .golangci.yml.
type Settings struct {
	Report bool `json:"report"`
}

func New(settings any) (register.LinterPlugin, error) {
	s, err := register.DecodeSettings[Settings](settings)
	if err != nil {
		return nil, err
	}
	return &UnwrapgenLinter{settings: s}, nil
}

type UnwrapgenLinter struct {
	settings Settings
}

func (l *UnwrapgenLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	a := unwrapanalysis.Analyzer
	if err := a.Flags.Set("report", strconv.FormatBool(l.settings.Report)); err != nil {
		return nil, err
	}
	return []*analysis.Analyzer{a}, nil
}

// GetLoadMode requires types because unions and variants are found by type
// checking.
func (*UnwrapgenLinter) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
