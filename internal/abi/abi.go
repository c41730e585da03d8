// Package abi defines the boundary between the host process and a loadable
// unit: the opaque state blocks handed across it and the entry points a unit
// exports.
//
// The host never knows the real type behind a block. Producer and consumer
// must agree on its memory layout; that agreement is a caller contract and
// is not checked at runtime. Changing the layout of a persisted type between
// two builds of a unit and then reloading is undefined behaviour.
package abi

import (
	"unsafe"

	"github.com/vovakirdan/comfy-wars/internal/core"
)

// Names of the symbols a unit exports.
const (
	SymMakePersistent = "MakePersistent"
	SymUpdate         = "Update"
	SymDrain          = "Drain" // optional
)

// MakePersistentFunc constructs the state that survives reloads.
type MakePersistentFunc = func() OpaqueBlock

// UpdateFunc runs one frame of the unit against the host's blocks.
type UpdateFunc = func(ctx core.Context, persistent, fleeting *OpaqueBlock)

// DrainFunc resolves all pending work in the fleeting block against the
// persistent block before the unit is replaced.
type DrainFunc = func(persistent, fleeting *OpaqueBlock)

// OpaqueBlock is an untyped handle to a heap allocation whose type is only
// known to the unit that created it. Size and Align describe the allocation
// and are carried for future validation; nothing checks them today.
type OpaqueBlock struct {
	Ptr   unsafe.Pointer
	Size  uintptr
	Align uintptr
}

// NewBlock wraps v in an OpaqueBlock. The block keeps v reachable.
func NewBlock[T any](v *T) OpaqueBlock {
	var zero T
	return OpaqueBlock{
		Ptr:   unsafe.Pointer(v),
		Size:  unsafe.Sizeof(zero),
		Align: unsafe.Alignof(zero),
	}
}

// IsZero reports whether the block holds no allocation.
func (b *OpaqueBlock) IsZero() bool {
	return b == nil || b.Ptr == nil
}

// Reset drops the allocation held by the block.
func (b *OpaqueBlock) Reset() {
	*b = OpaqueBlock{}
}

// As reinterprets the block as *T without any check. It returns nil for an
// empty block.
func As[T any](b *OpaqueBlock) *T {
	if b.IsZero() {
		return nil
	}
	return (*T)(b.Ptr)
}
