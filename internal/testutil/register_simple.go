package testutil

import "github.com/vk/dispatchgo/internal/registry"

// SimpleModule is a test helper for easily creating a mock module that
// registers a single behavior.
type SimpleModule struct {
	Tag       string
	Operation string
	Behavior  *registry.Behavior
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) error {
	if m.Tag == "" || m.Operation == "" || m.Behavior == nil {
		return nil
	}
	return r.Register(m.Tag, m.Operation, m.Behavior)
}
