// Package app encapsulates the engine's dependencies, configuration, and
// lifecycle: it wires the logger, loads manifests into the declaration
// model, registers behavior modules, builds and validates the descriptor
// set, and runs the driver scenario through the dispatcher.
package app
