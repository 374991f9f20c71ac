package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/dispatchgo/internal/config"
	"github.com/vk/dispatchgo/internal/ctxlog"
	"github.com/vk/dispatchgo/internal/descriptor"
	"github.com/vk/dispatchgo/internal/dispatch"
	"github.com/vk/dispatchgo/internal/hcladapter"
	"github.com/vk/dispatchgo/internal/registry"
	"github.com/vk/dispatchgo/internal/yamladapter"
)

// App encapsulates the engine's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	model      *config.Model
	set        *descriptor.Set
	dispatcher *dispatch.Dispatcher
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, loads the
// declaration model, registers behavior modules, and builds and validates
// the descriptor set. Setup failures here are programmer errors (a
// malformed type/operation graph), so the constructor panics; the CLI entry
// point recovers and turns that into a non-zero exit.
//
// outW receives the scenario transcript, logW the logs. Passing no loaders
// selects both built-in adapters; passing no modules selects coreModules.
func NewApp(outW, logW io.Writer, appConfig *Config, loaders []config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Merge all configuration paths into a single collection for the loaders.
	var configPaths []string
	if appConfig.TypesPath != "" {
		configPaths = append(configPaths, appConfig.TypesPath)
	}
	if appConfig.ScenarioPath != "" {
		configPaths = append(configPaths, appConfig.ScenarioPath)
	}

	if len(loaders) == 0 {
		loaders = []config.Loader{hcladapter.NewLoader(), yamladapter.NewLoader()}
	}

	// Load all declarations into the format-agnostic model first. Each
	// adapter only picks up its own file extensions, so both can walk the
	// same paths.
	model := config.NewModel()
	for _, loader := range loaders {
		loaded, err := loader.Load(ctx, configPaths...)
		if err != nil {
			// A failure to load declarations is a fatal startup error.
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		model.Merge(loaded)
	}
	logger.Debug("Declarations loaded and translated into unified model.",
		"types", len(model.Types),
		"objects", len(model.Scenario.Objects),
		"calls", len(model.Scenario.Calls),
	)

	// Create and populate the behavior registry from Go modules.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		if err := mod.Register(reg); err != nil {
			panic(fmt.Errorf("failed to register behaviors: %w", err))
		}
	}
	logger.Debug("All behavior modules registered.", "count", len(modules))

	// Build the sealed descriptor set: type graph, merged schemas, vtables.
	set, err := descriptor.Build(ctx, model, reg)
	if err != nil {
		panic(fmt.Errorf("failed to build type descriptors: %w", err))
	}
	logger.Debug("Descriptor set built.", "types", len(set.Tags()))

	// Validate the parity between manifests and Go behaviors.
	if err := set.Validate(ctx, reg); err != nil {
		// This is a programmer error (mismatch between code and manifests).
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:       outW,
		logger:     logger,
		config:     appConfig,
		registry:   reg,
		model:      model,
		set:        set,
		dispatcher: dispatch.New(set),
	}
}

// Registry returns the application's behavior registry. This is primarily
// for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Descriptors returns the application's sealed descriptor set. This is
// primarily for testing.
func (a *App) Descriptors() *descriptor.Set {
	return a.set
}

// Model returns the loaded declaration model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
