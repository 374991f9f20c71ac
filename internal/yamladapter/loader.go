// Package yamladapter implements the config.Loader interface for YAML
// manifests. It accepts the same declaration model as the HCL adapter, with
// type keywords written as plain strings.
package yamladapter

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/dispatchgo/internal/bind"
	"github.com/vk/dispatchgo/internal/config"
	"github.com/vk/dispatchgo/internal/ctxlog"
	"github.com/vk/dispatchgo/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot mirrors the top-level document structure of a YAML manifest.
type fileRoot struct {
	Types   []*typeDoc   `yaml:"types"`
	Objects []*objectDoc `yaml:"objects"`
	Calls   []*callDoc   `yaml:"calls"`
}

type typeDoc struct {
	Tag         string          `yaml:"tag"`
	Parent      string          `yaml:"parent"`
	Description string          `yaml:"description"`
	Attributes  []*attributeDoc `yaml:"attributes"`
	Operations  []*operationDoc `yaml:"operations"`
}

type attributeDoc struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Optional    bool   `yaml:"optional"`
	Default     any    `yaml:"default"`
}

type operationDoc struct {
	Name        string      `yaml:"name"`
	Required    bool        `yaml:"required"`
	Description string      `yaml:"description"`
	Returns     string      `yaml:"returns"`
	Params      []*paramDoc `yaml:"params"`
}

type paramDoc struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional"`
	Default  any    `yaml:"default"`
}

type objectDoc struct {
	Name  string         `yaml:"name"`
	Type  string         `yaml:"type"`
	State map[string]any `yaml:"state"`
}

type callDoc struct {
	Object    string         `yaml:"object"`
	Operation string         `yaml:"operation"`
	Args      map[string]any `yaml:"args"`
}

// Load reads every .yaml/.yml file under the given paths and translates the
// documents into the format-agnostic model, preserving encounter order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := config.NewModel()

	yamlFiles, err := fsutil.FindFilesByExtension(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(yamlFiles))

	for _, file := range yamlFiles {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}

		var root fileRoot
		if err := yaml.Unmarshal(raw, &root); err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}

		for _, td := range root.Types {
			def, err := translateType(td)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			model.Types = append(model.Types, def)
		}
		for _, od := range root.Objects {
			decl, err := translateObject(od)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			model.Scenario.Objects = append(model.Scenario.Objects, decl)
		}
		for _, cd := range root.Calls {
			decl, err := translateCall(cd)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			model.Scenario.Calls = append(model.Scenario.Calls, decl)
		}
	}

	logger.Debug("YAML loading complete.",
		"types", len(model.Types),
		"objects", len(model.Scenario.Objects),
		"calls", len(model.Scenario.Calls),
	)
	return model, nil
}

func translateType(td *typeDoc) (*config.TypeDefinition, error) {
	def := &config.TypeDefinition{
		Tag:         td.Tag,
		Parent:      td.Parent,
		Description: td.Description,
		Attributes:  make(map[string]*config.AttributeDefinition),
		Operations:  make(map[string]*config.OperationDefinition),
	}

	for _, ad := range td.Attributes {
		if _, exists := def.Attributes[ad.Name]; exists {
			return nil, fmt.Errorf("type %q declares attribute %q twice", td.Tag, ad.Name)
		}
		parsedType, err := parseTypeKeyword(ad.Type)
		if err != nil {
			return nil, fmt.Errorf("in type %q, attribute %q: %w", td.Tag, ad.Name, err)
		}
		defaultVal, err := translateDefault(ad.Default, parsedType)
		if err != nil {
			return nil, fmt.Errorf("in type %q, attribute %q: %w", td.Tag, ad.Name, err)
		}
		def.Attributes[ad.Name] = &config.AttributeDefinition{
			Name:        ad.Name,
			Type:        parsedType,
			Description: ad.Description,
			Default:     defaultVal,
			Optional:    ad.Optional || defaultVal != nil,
		}
	}

	for _, od := range td.Operations {
		if _, exists := def.Operations[od.Name]; exists {
			return nil, fmt.Errorf("type %q declares operation %q twice", td.Tag, od.Name)
		}

		op := &config.OperationDefinition{
			Name:        od.Name,
			Required:    od.Required,
			Description: od.Description,
			Params:      make(map[string]*config.ParamDefinition),
			Returns:     cty.NilType,
		}
		if od.Returns != "" {
			parsedType, err := parseTypeKeyword(od.Returns)
			if err != nil {
				return nil, fmt.Errorf("in type %q, operation %q: %w", td.Tag, od.Name, err)
			}
			op.Returns = parsedType
		}
		for _, pd := range od.Params {
			if _, exists := op.Params[pd.Name]; exists {
				return nil, fmt.Errorf("type %q, operation %q declares parameter %q twice", td.Tag, od.Name, pd.Name)
			}
			parsedType, err := parseTypeKeyword(pd.Type)
			if err != nil {
				return nil, fmt.Errorf("in type %q, operation %q, param %q: %w", td.Tag, od.Name, pd.Name, err)
			}
			defaultVal, err := translateDefault(pd.Default, parsedType)
			if err != nil {
				return nil, fmt.Errorf("in type %q, operation %q, param %q: %w", td.Tag, od.Name, pd.Name, err)
			}
			op.Params[pd.Name] = &config.ParamDefinition{
				Name:     pd.Name,
				Type:     parsedType,
				Default:  defaultVal,
				Optional: pd.Optional || defaultVal != nil,
			}
		}
		def.Operations[od.Name] = op
	}

	return def, nil
}

func translateObject(od *objectDoc) (*config.ObjectDecl, error) {
	state, err := translateValues(od.State)
	if err != nil {
		return nil, fmt.Errorf("in object %q: %w", od.Name, err)
	}
	return &config.ObjectDecl{
		Name:    od.Name,
		TypeTag: od.Type,
		State:   state,
	}, nil
}

func translateCall(cd *callDoc) (*config.CallDecl, error) {
	args, err := translateValues(cd.Args)
	if err != nil {
		return nil, fmt.Errorf("in call %s.%s: %w", cd.Object, cd.Operation, err)
	}
	return &config.CallDecl{
		Object:    cd.Object,
		Operation: cd.Operation,
		Args:      args,
	}, nil
}

func translateValues(raw map[string]any) (map[string]cty.Value, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	values := make(map[string]cty.Value, len(raw))
	for name, v := range raw {
		converted, err := bind.FromNative(v)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q: %w", name, err)
		}
		values[name] = converted
	}
	return values, nil
}

func translateDefault(raw any, want cty.Type) (*cty.Value, error) {
	if raw == nil {
		return nil, nil
	}
	val, err := bind.FromNative(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid default value: %w", err)
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return nil, fmt.Errorf("default value does not match declared type %s: %w", want.FriendlyName(), err)
	}
	return &converted, nil
}
