package app

import (
	"github.com/vk/dispatchgo/internal/registry"
	"github.com/vk/dispatchgo/modules/circle"
	"github.com/vk/dispatchgo/modules/rectangle"
	"github.com/vk/dispatchgo/modules/shape"
	"github.com/vk/dispatchgo/modules/square"
)

// coreModules lists the behavior modules compiled into the default binary.
// Tests inject their own modules instead.
var coreModules = []registry.Module{
	&shape.Module{},
	&circle.Module{},
	&rectangle.Module{},
	&square.Module{},
}
