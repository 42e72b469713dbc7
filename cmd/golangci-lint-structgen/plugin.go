// Package golangcilintstructgen provides a plugin for golangci-lint to
// integrate the Structgen analyzer. To build a custom golangci-lint binary
// with this plugin, run the following command at this package's directory:
//
//	golangci-lint custom
//
// The resulting golangci-lint-structgen binary reports Structgen errors such
// as unsupported struct shapes and name conflicts while linting.
package golangcilintstructgen

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/sublee/structgen/pkg/structgenanalysis"
)

func init() {
	register.Plugin("structgen", New)
}

// New creates the plugin. It takes no settings.
func New(settings any) (register.LinterPlugin, error) {
	return StructgenLinter{}, nil
}

type StructgenLinter struct{}

func (StructgenLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{structgenanalysis.Analyzer}, nil
}

// GetLoadMode requires type information because derived struct types and
// their fields are resolved by go/types.
func (StructgenLinter) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
