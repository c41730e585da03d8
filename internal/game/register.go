package game

import "github.com/vovakirdan/comfy-wars/internal/registry"

// UnitID is the registry name of the builtin build of this unit.
const UnitID = "comfywars"

// The plugin build of this package leaves this file out: a reloaded unit
// must not register itself again.
func init() {
	registry.Register(registry.Unit{
		ID:             UnitID,
		Title:          "Comfy Wars",
		MakePersistent: MakePersistent,
		Update:         Update,
		Drain:          Drain,
	})
}
