package cli

import (
	"github.com/toyz/axondoc/internal/errors"
	"github.com/toyz/axondoc/internal/utils"
)

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	goMod *utils.GoModParser
}

// NewModuleResolver creates a new module resolver sharing fileReader
func NewModuleResolver(fileReader *utils.FileReader) *ModuleResolver {
	return &ModuleResolver{goMod: utils.NewGoModParser(fileReader)}
}

// ResolveModuleName returns customModule when set, otherwise the module path
// of the go.mod governing dir
func (r *ModuleResolver) ResolveModuleName(customModule, dir string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}

	moduleName, err := r.goMod.ModulePath(dir)
	if err != nil {
		return "", errors.WrapConfigurationError("go.mod", "resolve module name", err).
			WithSuggestion("pass -title to name the document explicitly")
	}
	return moduleName, nil
}
