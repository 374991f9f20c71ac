// Package config defines the format-agnostic declaration model for the
// engine: type manifests (tags, ancestry, attributes, operation contracts)
// and the driver scenario (object and call blocks), along with the Loader
// interface for reading them from various sources.
//
// The `config.Model` is the single source of truth for the `descriptor` and
// `dispatch` packages. Concrete Loader implementations, such as for HCL or
// YAML, are provided in separate packages.
package config
