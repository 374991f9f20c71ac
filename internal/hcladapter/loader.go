package hcladapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/dispatchgo/internal/config"
	"github.com/vk/dispatchgo/internal/ctxlog"
	"github.com/vk/dispatchgo/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire HCL loading process. It is agnostic to the
// origin of the paths and accepts any valid block from any file; declaration
// order follows file walk order, then source order within a file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := config.NewModel()

	hclFiles, err := fsutil.FindFilesByExtension(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, tb := range root.Types {
			def, err := l.translateType(tb)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			model.Types = append(model.Types, def)
		}
		for _, ob := range root.Objects {
			decl, err := l.translateObject(ob)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			model.Scenario.Objects = append(model.Scenario.Objects, decl)
		}
		for _, cb := range root.Calls {
			decl, err := l.translateCall(cb)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			model.Scenario.Calls = append(model.Scenario.Calls, decl)
		}
	}

	logger.Debug("HCL loading complete.",
		"types", len(model.Types),
		"objects", len(model.Scenario.Objects),
		"calls", len(model.Scenario.Calls),
	)
	return model, nil
}
