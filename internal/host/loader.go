package host

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vovakirdan/comfy-wars/internal/abi"
	"github.com/vovakirdan/comfy-wars/internal/registry"
)

// Load failure causes, wrapped in *LoadError.
var (
	ErrUnitMissing       = errors.New("unit artifact missing")
	ErrUnitMalformed     = errors.New("unit artifact malformed")
	ErrEntryPointMissing = errors.New("entry point missing")
)

// LoadError describes a failed load of a unit.
type LoadError struct {
	Path string
	Op   string // "stat", "copy", "open", "lookup"
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("host: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Unit is a loaded unit's resolved entry points.
type Unit struct {
	Path           string
	MakePersistent abi.MakePersistentFunc
	Update         abi.UpdateFunc
	Drain          abi.DrainFunc // nil if the unit does not export one
}

// Name returns the base name of the unit's path.
func (u *Unit) Name() string {
	return filepath.Base(u.Path)
}

// Loader resolves a unit from a path.
type Loader interface {
	Load(path string) (*Unit, error)
}

// StaticLoader resolves units linked into the binary from the registry.
// The path's base name is the registry ID.
type StaticLoader struct{}

// Load implements Loader.
func (StaticLoader) Load(path string) (*Unit, error) {
	u, err := registry.Lookup(filepath.Base(path))
	if err != nil {
		return nil, &LoadError{Path: path, Op: "lookup", Err: fmt.Errorf("%w: %v", ErrUnitMissing, err)}
	}
	return &Unit{
		Path:           path,
		MakePersistent: u.MakePersistent,
		Update:         u.Update,
		Drain:          u.Drain,
	}, nil
}

// LoaderFunc adapts a function to a Loader.
type LoaderFunc func(path string) (*Unit, error)

// Load calls f.
func (f LoaderFunc) Load(path string) (*Unit, error) {
	return f(path)
}
