// Package registry provides a global registry of units linked into the
// binary. Units register themselves in init() functions, so the host can run
// them without a plugin build, and the CLI can list them.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/comfy-wars/internal/abi"
)

// Unit is the set of entry points a builtin unit provides. They have the
// same signatures as the symbols a plugin exports.
type Unit struct {
	ID             string
	Title          string
	MakePersistent abi.MakePersistentFunc
	Update         abi.UpdateFunc
	Drain          abi.DrainFunc // may be nil
}

// Info contains metadata about a registered unit.
type Info struct {
	ID    string
	Title string
}

var (
	units = make(map[string]Unit)
	mu    sync.RWMutex
)

// Register adds a unit to the registry.
// Panics if the ID is taken or a required entry point is missing.
func Register(u Unit) {
	mu.Lock()
	defer mu.Unlock()

	if u.MakePersistent == nil || u.Update == nil {
		panic(fmt.Sprintf("registry: unit %q lacks an entry point", u.ID))
	}
	if _, exists := units[u.ID]; exists {
		panic(fmt.Sprintf("registry: unit %q already registered", u.ID))
	}
	units[u.ID] = u
}

// List returns information about all registered units, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(units))
	for id, u := range units {
		result = append(result, Info{ID: id, Title: u.Title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the unit registered under id.
func Lookup(id string) (Unit, error) {
	mu.RLock()
	defer mu.RUnlock()

	u, ok := units[id]
	if !ok {
		return Unit{}, fmt.Errorf("registry: unknown unit %q", id)
	}
	return u, nil
}

// Exists checks if a unit with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := units[id]
	return ok
}

// unregister removes a unit. Tests use it to keep the global registry clean.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(units, id)
}
