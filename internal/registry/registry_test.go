package registry

import (
	"testing"

	"github.com/vovakirdan/comfy-wars/internal/abi"
	"github.com/vovakirdan/comfy-wars/internal/core"
)

func testUnit(id string) Unit {
	return Unit{
		ID:             id,
		Title:          "Test " + id,
		MakePersistent: func() abi.OpaqueBlock { return abi.OpaqueBlock{} },
		Update:         func(core.Context, *abi.OpaqueBlock, *abi.OpaqueBlock) {},
	}
}

func TestRegisterLookup(t *testing.T) {
	Register(testUnit("zz-b"))
	Register(testUnit("zz-a"))
	t.Cleanup(func() {
		unregister("zz-a")
		unregister("zz-b")
	})

	if !Exists("zz-a") {
		t.Fatal("Exists(zz-a) = false")
	}
	u, err := Lookup("zz-b")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if u.Title != "Test zz-b" {
		t.Errorf("Title = %q", u.Title)
	}
	if _, err := Lookup("missing"); err == nil {
		t.Error("Lookup(missing) succeeded")
	}

	// List is sorted by ID.
	var ids []string
	for _, info := range List() {
		if len(info.ID) > 3 && info.ID[:3] == "zz-" {
			ids = append(ids, info.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "zz-a" || ids[1] != "zz-b" {
		t.Errorf("List order = %v", ids)
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		unit Unit
	}{
		{"duplicate", testUnit("zz-dup")},
		{"no update", Unit{ID: "zz-broken", MakePersistent: testUnit("x").MakePersistent}},
	}
	Register(testUnit("zz-dup"))
	t.Cleanup(func() { unregister("zz-dup") })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register did not panic")
				}
			}()
			Register(tt.unit)
		})
	}
}
