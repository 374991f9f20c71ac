// Package hcladapter implements the config.Loader interface for HCL
// manifests. It decodes `type`, `object` and `call` blocks, parses HCL type
// expressions into cty types, and evaluates defaults, state and argument
// expressions at load time so the resulting model is format-free.
package hcladapter
