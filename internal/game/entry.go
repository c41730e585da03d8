// Package game is the loadable unit: a small turn-based tactics game whose
// state survives hot reloads of its own code.
//
// The host only sees the three entry points in this file. Everything they
// receive is an opaque block that they reinterpret as PersistentState or
// FleetingState.
package game

import (
	"fmt"

	"github.com/vovakirdan/comfy-wars/internal/abi"
	"github.com/vovakirdan/comfy-wars/internal/config"
	"github.com/vovakirdan/comfy-wars/internal/core"
)

// MakePersistent loads the game config and assets and returns the state
// that lives for the whole process. Asset errors are unrecoverable and
// panic; the host turns the panic into a startup error.
func MakePersistent() abi.OpaqueBlock {
	cfg, err := config.LoadGame("")
	if err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
	s, err := NewPersistentState(cfg)
	if err != nil {
		panic(fmt.Sprintf("game: %v", err))
	}
	return abi.NewBlock(s)
}

// Update runs one frame. The fleeting block is created on the first frame
// after every load.
func Update(ctx core.Context, persistent, fleeting *abi.OpaqueBlock) {
	s := abi.As[PersistentState](persistent)
	if fleeting.IsZero() {
		*fleeting = abi.NewBlock(NewFleetingState())
	}
	Frame(ctx, s, abi.As[FleetingState](fleeting))
}

// Drain finishes every pending task against the persistent state before
// this build of the unit is replaced.
func Drain(persistent, fleeting *abi.OpaqueBlock) {
	if fleeting.IsZero() {
		return
	}
	f := abi.As[FleetingState](fleeting)
	f.Queue.DrainToCompletion(abi.As[PersistentState](persistent))
}
