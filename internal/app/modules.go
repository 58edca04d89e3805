package app

import (
	"github.com/vk/tagscan/internal/registry"

	"github.com/vk/tagscan/modules/binkind"
	"github.com/vk/tagscan/modules/complexity"
	"github.com/vk/tagscan/modules/hotspot"
	"github.com/vk/tagscan/modules/language"
	"github.com/vk/tagscan/modules/loc"
	"github.com/vk/tagscan/modules/structure"
	"github.com/vk/tagscan/modules/todo"
)

// coreModules is the default inspector set registered when no explicit
// modules are passed to NewApp.
var coreModules = []registry.Module{
	&language.Module{},
	&loc.Module{},
	&todo.Module{},
	&complexity.Module{},
	&hotspot.Module{},
	&binkind.Module{},
	&structure.Module{},
}
